package datastructure

// IntersectionRoad is one incident road at a traversed node, seen from the
// arrival edge.
type IntersectionRoad struct {
	EdgeID int32
	// Bearing leaving the node, degrees [0,360).
	Bearing float64
	// DeviationDeg is the clockwise angle from the reverse of the arrival
	// edge, [0,360). the u-turn candidate sits at 0.
	DeviationDeg float64
	// TurnDeg is the signed turn angle relative to going straight through,
	// (-180,180], clockwise positive.
	TurnDeg      float64
	EntryAllowed bool
	Priority     RoadPriority
	IsLink       bool
	Name         string
	Ref          string
	Mode         TravelMode
	Lanes        int
}

// IntersectionView is the ordered set of incident roads at one traversed
// node. Roads are sorted clockwise by deviation from the reverse of the
// arrival edge, the reverse itself at index 0. Built once per node, never
// mutated afterwards.
type IntersectionView struct {
	NodeID    int32
	InEdgeID  int32
	BearingIn float64 // arrival bearing at the node
	Roads     []IntersectionRoad
	OutIdx    int // index of the chosen departure road in Roads
}

func (v IntersectionView) Out() IntersectionRoad {
	return v.Roads[v.OutIdx]
}

// AllowedNonUTurnExits counts roads a vehicle may enter, the u-turn
// candidate excluded.
func (v IntersectionView) AllowedNonUTurnExits() int {
	count := 0
	for i, r := range v.Roads {
		if i == 0 {
			continue
		}
		if r.EntryAllowed {
			count++
		}
	}
	return count
}

// HasHigherOrEqualAlternative reports whether another allowed exit matches or
// beats the chosen exit's road priority.
func (v IntersectionView) HasHigherOrEqualAlternative() bool {
	chosen := v.Out()
	for i, r := range v.Roads {
		if i == 0 || i == v.OutIdx || !r.EntryAllowed {
			continue
		}
		if !chosen.Priority.Beats(r.Priority) {
			return true
		}
	}
	return false
}

// CrossRoadNames collects the names of incident roads other than the chosen
// exit and the arrival road, skipping empty names.
func (v IntersectionView) CrossRoadNames() map[string]struct{} {
	names := make(map[string]struct{})
	for i, r := range v.Roads {
		if i == 0 || i == v.OutIdx {
			continue
		}
		if r.Name == "" {
			continue
		}
		names[r.Name] = struct{}{}
	}
	return names
}

// Step is one pre-collapse segment of the route, bounded by traversed nodes.
// Steps are created by the step builder and mutated only by the collapsing
// engine's rewrites.
type Step struct {
	// TurnNodeID is the node of the maneuver into this step.
	TurnNodeID   int32
	TurnLocation Coordinate
	ExitNodeID   int32
	ExitLocation Coordinate

	Name string
	Ref  string
	Mode TravelMode

	Distance float64
	Duration float64

	Instruction TurnInstruction
	View        IntersectionView

	// BearingBefore is the arrival bearing at the turn node, BearingAfter
	// the departure bearing onto this step's first edge.
	BearingBefore float64
	BearingAfter  float64

	IsSliproad             bool
	IsLink                 bool
	LaneDescriptionChanged bool
	// Important marks a step whose intersection offers another allowed exit
	// of at least the chosen priority; such steps resist suppression.
	Important bool

	Geometry []Coordinate
	EdgeIDs  []int32
}

// Maneuver is one driver-facing action of the final list. Write-once output
// of the maneuver assembler.
type Maneuver struct {
	Location      Coordinate   `json:"location"`
	Type          TurnType     `json:"-"`
	Modifier      TurnModifier `json:"-"`
	Name          string       `json:"street_name"`
	Ref           string       `json:"ref,omitempty"`
	Mode          TravelMode   `json:"-"`
	BearingBefore float64      `json:"bearing_before"`
	BearingAfter  float64      `json:"bearing_after"`
}

func NewManeuver(loc Coordinate, t TurnType, mod TurnModifier, name, ref string, mode TravelMode,
	bearingBefore, bearingAfter float64) Maneuver {
	return Maneuver{
		Location:      loc,
		Type:          t,
		Modifier:      mod,
		Name:          name,
		Ref:           ref,
		Mode:          mode,
		BearingBefore: bearingBefore,
		BearingAfter:  bearingAfter,
	}
}

// Guidance is the full output of the post-processing core for one path.
type Guidance struct {
	Maneuvers []Maneuver
	Geometry  []Coordinate
	Distance  float64
	Duration  float64
}

func (g Guidance) Polyline() string {
	return CreatePolyline(g.Geometry)
}
