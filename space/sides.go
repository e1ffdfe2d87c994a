package space

import "fmt"

// WhichSideHasPolytope returns which side of an oriented manifold contains a
// polytope. Results are cached.
func (s *Space) WhichSideHasPolytope(manifold ManifoldRef, polytope PolytopeID) (WhichSide, error) {
	key := whichSideKey{cut: manifold.ID, polytope: polytope}
	if result, ok := s.polytopeWhichSideCache[key]; ok {
		return result.MulSign(manifold.Sign), nil
	}
	result, err := s.whichSideHasPolytopeWithinSpace(s.Manifold(), NewManifoldRef(manifold.ID), polytope, true)
	if err != nil {
		return 0, err
	}
	s.polytopeWhichSideCache[key] = result
	return result.MulSign(manifold.Sign), nil
}

// whichSideHasPolytopeWithinSpace returns whether the inside or outside of
// the (N-1)-dimensional cut contains polytope in N-dimensional space.
func (s *Space) whichSideHasPolytopeWithinSpace(space, cut ManifoldRef, polytope PolytopeID, cache bool) (WhichSide, error) {
	if result, ok := s.polytopeWhichSideCache[whichSideKey{cut: cut.ID, polytope: polytope}]; ok {
		return result.MulSign(cut.Sign), nil
	}

	if s.ManifoldNDim(cut)+1 != s.ManifoldNDim(space) {
		return 0, fmt.Errorf("%w: cut is not an (N-1)-dimensional manifold in N-dimensional space", ErrDimension)
	}

	ref := NewPolytopeRef(polytope)
	manifoldResult, err := s.WhichSideHasManifold(space, cut, s.ManifoldOf(ref).ID)
	if err != nil {
		return 0, err
	}

	polytopeResult := manifoldResult
	if len(s.BoundaryOf(ref)) > 0 && manifoldResult == SideSplit {
		// The manifolds intersect; check whether the intersection is
		// contained in the polytope. For a boundaryless polytope (or one
		// whose manifold avoids the cut entirely) the manifold result is
		// already accurate.
		if s.PolytopeNDim(ref) == 0 {
			return 0, fmt.Errorf("%w: split point pair has a boundary", ErrTopology)
		}
		intersection, err := s.intersect(space, cut, s.ManifoldOf(ref))
		if err != nil {
			return 0, err
		}
		polytopeResult, err = s.whichSideHasPolytopeWithinPolytopeManifold(intersection, polytope, cache)
		if err != nil {
			return 0, err
		}
	}

	if cache {
		s.polytopeWhichSideCache[whichSideKey{cut: cut.ID, polytope: polytope}] = polytopeResult.MulSign(cut.Sign)
	}

	return polytopeResult, nil
}

// whichSideHasPolytopeWithinPolytopeManifold returns whether the inside or
// outside of cut contains polytope, where cut is a submanifold of the
// polytope's own manifold with one fewer dimension.
func (s *Space) whichSideHasPolytopeWithinPolytopeManifold(cut ManifoldRef, polytope PolytopeID, cache bool) (WhichSide, error) {
	ref := NewPolytopeRef(polytope)
	if s.ManifoldNDim(cut)+1 != s.PolytopeNDim(ref) {
		return 0, fmt.Errorf("%w: cut is not one dimension lower than polytope", ErrDimension)
	}
	if s.PolytopeNDim(ref) == 1 {
		return s.whichSideHasPolytope1D(cut, polytope)
	}

	space := s.ManifoldOf(ref)
	boundary := s.BoundaryOf(ref)

	// If cut is flush with a boundary element, the relative orientation
	// says which side of the cut contains the polytope.
	for _, boundaryElem := range boundary {
		elemManifold := s.ManifoldOf(boundaryElem)
		if cut.ID == elemManifold.ID {
			if cut.Sign == elemManifold.Sign {
				return SideInside, nil
			}
			return SideOutside, nil
		}
	}

	// If cut is inside all boundary elements then it is inside the
	// polytope, in which case it trivially splits it.
	isInsideAll := true
	for _, boundaryElem := range boundary {
		side, err := s.WhichSideHasManifold(space, s.ManifoldOf(boundaryElem), cut.ID)
		if err != nil {
			return 0, err
		}
		switch side {
		case SideFlush:
			return 0, fmt.Errorf("%w: manifolds are flush but not the same", ErrTopology)
		case SideOutside, SideSplit:
			// Either way, cut is not inside the polytope.
			isInsideAll = false
		}
	}
	if isInsideAll {
		return SideSplit, nil
	}

	// cut does not pass through the polytope, so the polytope is entirely
	// on one side of it. Whichever side has any boundary element has all
	// of them.
	anyInside := false
	anyOutside := false
	for _, boundaryElem := range boundary {
		side, err := s.whichSideHasPolytopeWithinSpace(space, cut, boundaryElem.ID, cache)
		if err != nil {
			return 0, err
		}
		switch side {
		case SideFlush:
			return 0, fmt.Errorf("%w: unexpected flush polytope", ErrTopology)
		case SideInside:
			anyInside = true
		case SideOutside:
			anyOutside = true
		case SideSplit:
			return SideSplit, nil
		}
		if anyInside && anyOutside {
			return SideSplit, nil
		}
	}
	switch {
	case anyInside:
		return SideInside, nil
	case anyOutside:
		return SideOutside, nil
	default:
		return 0, fmt.Errorf("%w: boundaryless polytope reached side recursion", ErrTopology)
	}
}

// whichSideHasPolytope1D returns whether the inside or outside of point pair
// cut contains a 1D polytope.
func (s *Space) whichSideHasPolytope1D(cut ManifoldRef, polytope PolytopeID) (WhichSide, error) {
	cutPolytope, err := s.addPointPair(cut)
	if err != nil {
		return 0, err
	}

	ref := NewPolytopeRef(polytope)
	space := s.ManifoldOf(ref)

	_, anyInside, err := s.incrementallySimplifyIntersectionOfIntervals(
		space, s.BoundaryOf(ref), cutPolytope)
	if err != nil {
		return 0, err
	}
	_, anyOutside, err := s.incrementallySimplifyIntersectionOfIntervals(
		space, s.BoundaryOf(ref), cutPolytope.Neg())
	if err != nil {
		return 0, err
	}

	switch {
	case anyInside && anyOutside:
		return SideSplit, nil
	case anyInside:
		return SideInside, nil
	case anyOutside:
		return SideOutside, nil
	default:
		return SideFlush, nil
	}
}
