package space

import (
	"fmt"

	"github.com/hyperfold/polycut/cga"
)

// sanityCheckPolytope runs structural checks on a newly added polytope. Only
// called when WithChecks is enabled.
func (s *Space) sanityCheckPolytope(polytope PolytopeID) error {
	ref := NewPolytopeRef(polytope)
	ndim := s.PolytopeNDim(ref)

	for _, boundaryElem := range s.BoundaryOf(ref) {
		if ndim != s.PolytopeNDim(boundaryElem)+1 {
			return fmt.Errorf("%w: polytope %v ndim does not match boundary ndim+1", ErrTopology, polytope)
		}
	}

	// Polygon boundaries must form closed loops: every edge endpoint is
	// matched by the start of another edge.
	if ndim == 2 {
		var starting, ending []cga.Point
		for _, edge := range s.BoundaryOf(ref) {
			for _, pointPair := range s.BoundaryOf(edge) {
				a, b, err := s.ExtractPointPair(pointPair)
				if err != nil {
					return err
				}
				if i := indexOfPoint(ending, a); i >= 0 {
					ending = append(ending[:i], ending[i+1:]...)
				} else {
					starting = append(starting, a)
				}
				if i := indexOfPoint(starting, b); i >= 0 {
					starting = append(starting[:i], starting[i+1:]...)
				} else {
					ending = append(ending, b)
				}
			}
		}
		if len(starting) > 0 || len(ending) > 0 {
			s.logger.Error("invalid polygon topology",
				"polytope", polytope,
				"unmatched_starts", fmt.Sprint(starting),
				"unmatched_ends", fmt.Sprint(ending))
			return fmt.Errorf("%w: polygon %v has unmatched edge endpoints", ErrTopology, polytope)
		}
	}

	return nil
}

func indexOfPoint(points []cga.Point, p cga.Point) int {
	for i, q := range points {
		if q.ApproxEq(p) {
			return i
		}
	}
	return -1
}
