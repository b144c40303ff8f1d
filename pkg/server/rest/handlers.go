package rest

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	enTranslations "github.com/go-playground/validator/v10/translations/en"

	"github.com/lintang-b-s/turnguide/pkg/datastructure"
	"github.com/lintang-b-s/turnguide/pkg/server"
	"github.com/lintang-b-s/turnguide/pkg/util"
)

type NavigationService interface {
	RouteInstructions(ctx context.Context, fromLabel, toLabel byte) (datastructure.Guidance, error)
}

type NavigationHandler struct {
	svc NavigationService
}

func NavigatorRouter(r *chi.Mux, svc NavigationService) {
	handler := &NavigationHandler{svc}

	r.Group(func(r chi.Router) {
		r.Route("/api/navigations", func(r chi.Router) {
			r.Post("/route-instructions", handler.RouteInstructions)
		})
	})
}

// RouteInstructionsRequest model info
//
//	@Description	request body for turn-by-turn route instructions over the loaded map
type RouteInstructionsRequest struct {
	From string `json:"from" validate:"required,len=1,alphanum"`
	To   string `json:"to" validate:"required,len=1,alphanum"`
}

func (s *RouteInstructionsRequest) Bind(r *http.Request) error {
	if s.From == "" || s.To == "" {
		return errors.New("invalid request")
	}
	return nil
}

// ManeuverResponse model info
//
//	@Description	one driver-facing maneuver of the final instruction list
type ManeuverResponse struct {
	Type          string                   `json:"type"`
	Modifier      string                   `json:"modifier,omitempty"`
	Instruction   string                   `json:"instruction"`
	StreetName    string                   `json:"street_name"`
	Ref           string                   `json:"ref,omitempty"`
	Mode          string                   `json:"mode"`
	Location      datastructure.Coordinate `json:"location"`
	BearingBefore float64                  `json:"bearing_before"`
	BearingAfter  float64                  `json:"bearing_after"`
}

// RouteInstructionsResponse model info
//
//	@Description	response body for turn-by-turn route instructions
type RouteInstructionsResponse struct {
	Maneuvers []ManeuverResponse `json:"maneuvers"`
	Polyline  string             `json:"polyline"`
	Distance  float64            `json:"distance"`
	Duration  float64            `json:"duration"`
}

func RenderRouteInstructionsResponse(g datastructure.Guidance) *RouteInstructionsResponse {
	maneuvers := make([]ManeuverResponse, 0, len(g.Maneuvers))
	for _, m := range g.Maneuvers {
		maneuvers = append(maneuvers, ManeuverResponse{
			Type:          m.Type.String(),
			Modifier:      m.Modifier.String(),
			Instruction:   datastructure.GetTurnDescription(m),
			StreetName:    m.Name,
			Ref:           m.Ref,
			Mode:          m.Mode.String(),
			Location:      m.Location,
			BearingBefore: util.RoundFloat(m.BearingBefore, 2),
			BearingAfter:  util.RoundFloat(m.BearingAfter, 2),
		})
	}

	return &RouteInstructionsResponse{
		Maneuvers: maneuvers,
		Polyline:  g.Polyline(),
		Distance:  util.RoundFloat(g.Distance, 2),
		Duration:  util.RoundFloat(g.Duration, 2),
	}
}

// RouteInstructions
//
//	@Summary		turn-by-turn driving instructions between two labeled nodes of the loaded map
//	@Description	walks the path between the two nodes and runs the guidance post-processing over it
//	@Tags			navigations
//	@Param			body	body	RouteInstructionsRequest	true	"request body route instructions"
//	@Accept			application/json
//	@Produce		application/json
//	@Router			/navigations/route-instructions [post]
//	@Success		200	{object}	RouteInstructionsResponse
//	@Failure		400	{object}	ErrResponse
//	@Failure		404	{object}	ErrResponse
//	@Failure		500	{object}	ErrResponse
func (h *NavigationHandler) RouteInstructions(w http.ResponseWriter, r *http.Request) {
	data := &RouteInstructionsRequest{}
	if err := render.Bind(r, data); err != nil {
		render.Render(w, r, ErrInvalidRequest(err))
		return
	}
	validate := validator.New()
	if err := validate.Struct(*data); err != nil {
		english := en.New()
		uni := ut.New(english, english)
		trans, _ := uni.GetTranslator("en")
		_ = enTranslations.RegisterDefaultTranslations(validate, trans)
		vv := translateError(err, trans)
		render.Render(w, r, ErrValidation(err, vv))
		return
	}

	guidanceResult, err := h.svc.RouteInstructions(r.Context(), data.From[0], data.To[0])
	if err != nil {
		switch server.ErrorCode(err) {
		case server.ErrNotFound:
			render.Render(w, r, ErrNotFoundRend(err))
		case server.ErrBadParamInput:
			render.Render(w, r, ErrInvalidRequest(err))
		default:
			render.Render(w, r, ErrInternalServerErrorRend(errors.New("internal server error")))
		}
		return
	}

	render.Status(r, http.StatusOK)
	render.JSON(w, r, RenderRouteInstructionsResponse(guidanceResult))
}

func ErrInvalidRequest(err error) render.Renderer {
	return &ErrResponse{
		Err:            err,
		HTTPStatusCode: 400,
		StatusText:     "Invalid request.",
		ErrorText:      err.Error(),
	}
}

// ErrResponse model info
//
//	@Description	model for error response
type ErrResponse struct {
	Err            error `json:"-"` // low-level runtime error
	HTTPStatusCode int   `json:"-"` // http response status code

	StatusText    string   `json:"status"`          // user-level status message
	AppCode       int64    `json:"code,omitempty"`  // application-specific error code
	ErrorText     string   `json:"error,omitempty"` // application-level error message, for debugging
	ErrValidation []string `json:"validation,omitempty"`
}

func (e *ErrResponse) Render(w http.ResponseWriter, r *http.Request) error {
	render.Status(r, e.HTTPStatusCode)
	return nil
}

func translateError(err error, trans ut.Translator) (errs []error) {
	if err == nil {
		return nil
	}
	validatorErrs := err.(validator.ValidationErrors)
	for _, e := range validatorErrs {
		translatedErr := fmt.Errorf(e.Translate(trans))
		errs = append(errs, translatedErr)
	}
	return errs
}

func ErrValidation(err error, errV []error) render.Renderer {
	vv := []string{}
	for _, v := range errV {
		vv = append(vv, v.Error())
	}
	return &ErrResponse{
		Err:            err,
		HTTPStatusCode: 400,
		StatusText:     "Invalid request.",
		ErrorText:      err.Error(),
		ErrValidation:  vv,
	}
}

func ErrNotFoundRend(err error) render.Renderer {
	return &ErrResponse{
		Err:            err,
		HTTPStatusCode: 404,
		StatusText:     "Resource not found.",
		ErrorText:      err.Error(),
	}
}

func ErrInternalServerErrorRend(err error) render.Renderer {
	return &ErrResponse{
		Err:            err,
		HTTPStatusCode: 500,
		StatusText:     "Internal server error.",
		ErrorText:      err.Error(),
	}
}
