package space

import (
	"github.com/RoaringBitmap/roaring/v2"
)

// ChildrenWithNDim returns all children of root that have the given number
// of dimensions. Polytopes are signed, so the same polytope may be returned
// twice with different signs; otherwise there are no duplicates.
func (s *Space) ChildrenWithNDim(root PolytopeRef, ndim uint8) []PolytopeRef {
	queue := []PolytopeRef{root}
	seen := roaring.New()
	var results []PolytopeRef

	for len(queue) > 0 {
		polytope := queue[len(queue)-1]
		queue = queue[:len(queue)-1]

		polytopeNDim := s.PolytopeNDim(polytope)
		if polytopeNDim == ndim {
			results = append(results, polytope)
		} else if polytopeNDim > ndim {
			for _, b := range s.BoundaryOf(polytope) {
				if seen.CheckedAdd(uint32(b.ID)) {
					queue = append(queue, b)
				}
			}
		}
	}

	return results
}

// ElementsOf returns the set of unsigned elements of a polytope, of all
// ranks, including the polytope itself.
func (s *Space) ElementsOf(root PolytopeID) *roaring.Bitmap {
	ret := roaring.New()
	queue := []PolytopeID{root}
	for len(queue) > 0 {
		p := queue[len(queue)-1]
		queue = queue[:len(queue)-1]
		if ret.CheckedAdd(uint32(p)) {
			for _, elem := range s.BoundaryOf(NewPolytopeRef(p)) {
				queue = append(queue, elem.ID)
			}
		}
	}
	return ret
}
