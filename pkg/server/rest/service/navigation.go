package service

import (
	"context"

	"github.com/lintang-b-s/turnguide/pkg/datastructure"
	"github.com/lintang-b-s/turnguide/pkg/server"
)

type PathFinder interface {
	FindPath(fromLabel, toLabel byte) ([]int32, error)
}

type GuidanceEngine interface {
	GuidanceFromPath(path []int32) (datastructure.Guidance, error)
}

// NavigationService glues the synthetic map and the guidance core behind
// the REST handlers.
type NavigationService struct {
	graph  PathFinder
	engine GuidanceEngine
}

func NewNavigationService(graph PathFinder, engine GuidanceEngine) *NavigationService {
	return &NavigationService{graph: graph, engine: engine}
}

// RouteInstructions resolves the from/to labels on the loaded map, walks
// the path and runs the guidance post-processing over it.
func (s *NavigationService) RouteInstructions(ctx context.Context, fromLabel, toLabel byte) (datastructure.Guidance, error) {
	path, err := s.graph.FindPath(fromLabel, toLabel)
	if err != nil {
		return datastructure.Guidance{}, server.WrapErrorf(err, server.ErrNotFound,
			"no route between %q and %q on the loaded map", string(fromLabel), string(toLabel))
	}

	guidanceResult, err := s.engine.GuidanceFromPath(path)
	if err != nil {
		return datastructure.Guidance{}, server.WrapErrorf(err, server.ErrInternalServerError,
			"guidance post-processing failed")
	}
	return guidanceResult, nil
}
