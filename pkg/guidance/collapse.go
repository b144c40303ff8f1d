package guidance

import (
	"github.com/lintang-b-s/turnguide/pkg/datastructure"
)

// CollapseConfig holds the empirically tuned distance thresholds of the
// collapsing engine. The defaults mirror common segregated-intersection and
// sliproad dimensions; both are configuration, not invariants.
type CollapseConfig struct {
	// MaxSegregatedLength bounds the median crossing of a segregated
	// intersection, meters.
	MaxSegregatedLength float64
	// MaxSliproadLength bounds a link step that still counts as a
	// sliproad, meters.
	MaxSliproadLength float64
}

func DefaultCollapseConfig() CollapseConfig {
	return CollapseConfig{
		MaxSegregatedLength: 30.0,
		MaxSliproadLength:   60.0,
	}
}

// collapseRule rewrites the window starting at index i. It reports how many
// steps it consumed and their replacement; ok=false leaves the window
// untouched.
type collapseRule func(steps []datastructure.Step, i int) (consumed int, replacement []datastructure.Step, ok bool)

/*
Collapse runs the local-rewrite fixed point over the step list. Rules are
tried in fixed priority order at the leftmost applicable window; each
applied rewrite restarts the scan. Every rule strictly reduces the step
count, so the fixed point is reached after at most len(steps)-1 rewrites.
*/
func (e *Engine) Collapse(steps []datastructure.Step) []datastructure.Step {
	rules := []collapseRule{
		e.collapseSegregatedTurn,       // R1 + R2
		e.collapseSliproad,             // R3
		e.collapseAcrossForeignSegment, // R4
		e.collapseSilentNameChange,     // R5
		e.collapseUnchangedUseLane,     // R6
		e.collapseRampChain,            // R9
	}

	for {
		applied := false
	scan:
		for i := 0; i < len(steps); i++ {
			for _, rule := range rules {
				consumed, replacement, ok := rule(steps, i)
				if !ok {
					continue
				}
				steps = splice(steps, i, consumed, replacement)
				applied = true
				break scan
			}
		}
		if !applied {
			return steps
		}
	}
}

func splice(steps []datastructure.Step, i, consumed int, replacement []datastructure.Step) []datastructure.Step {
	out := make([]datastructure.Step, 0, len(steps)-consumed+len(replacement))
	out = append(out, steps[:i]...)
	out = append(out, replacement...)
	out = append(out, steps[i+consumed:]...)
	return out
}

// mergeSteps folds src into dst: geometry concatenated, distance and
// duration summed, dst keeps its identity and maneuver.
func mergeSteps(dst, src datastructure.Step) datastructure.Step {
	dst.Distance += src.Distance
	dst.Duration += src.Duration
	dst.ExitNodeID = src.ExitNodeID
	dst.ExitLocation = src.ExitLocation
	dst.EdgeIDs = append(dst.EdgeIDs, src.EdgeIDs...)
	for _, p := range src.Geometry {
		if len(dst.Geometry) > 0 && dst.Geometry[len(dst.Geometry)-1] == p {
			continue
		}
		dst.Geometry = append(dst.Geometry, p)
	}
	if src.Important {
		dst.Important = true
	}
	return dst
}

// modeBoundary guards every merge: travel-mode changes are never collapsed
// away.
func modeBoundary(a, b datastructure.Step) bool {
	return a.Mode != b.Mode
}
