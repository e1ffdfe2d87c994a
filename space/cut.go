package space

import (
	"fmt"
)

// Fate says what to do with the polytopes on one side of a cut.
type Fate uint8

const (
	// FateRemove discards the polytopes on that side.
	FateRemove Fate = iota
	// FateKeep retains the polytopes on that side.
	FateKeep
)

func (f Fate) String() string {
	if f == FateKeep {
		return "keep"
	}
	return "remove"
}

// CutParams describes a cutting operation.
type CutParams struct {
	// Divider is the manifold separating the inside of the cut from the
	// outside.
	Divider ManifoldRef
	// Inside is the fate of polytopes inside the cut.
	Inside Fate
	// Outside is the fate of polytopes outside the cut.
	Outside Fate
}

// CarveParams keeps the inside of the cut and removes the outside.
func CarveParams(divider ManifoldRef) CutParams {
	return CutParams{Divider: divider, Inside: FateKeep, Outside: FateRemove}
}

// SliceParams keeps both sides of the cut.
func SliceParams(divider ManifoldRef) CutParams {
	return CutParams{Divider: divider, Inside: FateKeep, Outside: FateKeep}
}

func (p CutParams) String() string {
	return fmt.Sprintf("{divider: %v, inside: %v, outside: %v}", p.Divider, p.Inside, p.Outside)
}

// AtomicCut is an in-progress cutting operation. It carries memoization
// state, so reusing one AtomicCut across many polytopes in the same Space
// avoids recomputing shared intersections.
type AtomicCut struct {
	params CutParams

	// polytopeCutOutputCache stores the result of cutting each unsigned
	// polytope.
	polytopeCutOutputCache map[PolytopeID]CutOutput
	// manifoldWhichSideCache stores which side of the cut contains each
	// manifold.
	manifoldWhichSideCache map[ManifoldID]WhichSide
	// manifoldIntersectionCache stores the intersection of the cut with
	// each manifold.
	manifoldIntersectionCache map[ManifoldID]ManifoldRef
}

// NewCut starts a cutting operation with the given parameters.
func NewCut(params CutParams) *AtomicCut {
	return &AtomicCut{
		params:                    params,
		polytopeCutOutputCache:    map[PolytopeID]CutOutput{},
		manifoldWhichSideCache:    map[ManifoldID]WhichSide{},
		manifoldIntersectionCache: map[ManifoldID]ManifoldRef{},
	}
}

// Params returns the cut parameters.
func (c *AtomicCut) Params() CutParams {
	return c.params
}

func (c *AtomicCut) String() string {
	return c.params.String()
}

// CutOutputKind classifies the result of cutting an atomic polytope.
type CutOutputKind uint8

const (
	// CutFlush means the polytope's manifold is flush with the cut.
	CutFlush CutOutputKind = iota
	// CutManifoldInside means the polytope's manifold is completely inside
	// the cut.
	CutManifoldInside
	// CutManifoldOutside means the polytope's manifold is completely
	// outside the cut.
	CutManifoldOutside
	// CutNonFlush means the polytope's manifold intersects the cut but is
	// not flush with it.
	CutNonFlush
)

// CutOutput is the result of cutting an atomic polytope. For a CutNonFlush
// result the reference fields say how the polytope decomposed; invalid
// references mean the corresponding piece does not exist or was removed.
type CutOutput struct {
	Kind CutOutputKind

	// Inside is the portion of the polytope inside the cut. If this is the
	// whole polytope then Outside is invalid.
	Inside PolytopeRef
	// Outside is the portion of the polytope outside the cut. If this is
	// the whole polytope then Inside is invalid.
	Outside PolytopeRef
	// Intersection is the (N-1)-dimensional intersection of the polytope
	// with the cut. If Inside and Outside are both valid, so is this.
	Intersection PolytopeRef
	// IntersectionIsNew reports whether Intersection was created by this
	// cut rather than reused from the polytope's own boundary.
	IntersectionIsNew bool
}

// MulSign flips the orientation of every reference when sign is negative.
func (o CutOutput) MulSign(sign Sign) CutOutput {
	if sign == Neg && o.Kind == CutNonFlush {
		o.Inside = o.Inside.Neg()
		o.Outside = o.Outside.Neg()
		o.Intersection = o.Intersection.Neg()
	}
	return o
}

func (o CutOutput) String() string {
	switch o.Kind {
	case CutFlush:
		return "flush"
	case CutManifoldInside:
		return "manifold inside"
	case CutManifoldOutside:
		return "manifold outside"
	default:
		return fmt.Sprintf("{inside: %v, outside: %v, intersection: %v}", o.Inside, o.Outside, o.Intersection)
	}
}

// whichSideOfCutHasManifold returns which side of the cut contains manifold,
// within the whole space. Results are cached in the cut.
func (s *Space) whichSideOfCutHasManifold(cut *AtomicCut, manifold ManifoldID) (WhichSide, error) {
	if side, ok := cut.manifoldWhichSideCache[manifold]; ok {
		return side, nil
	}
	side, err := s.WhichSideHasManifold(s.Manifold(), cut.params.Divider, manifold)
	if err != nil {
		return 0, err
	}
	cut.manifoldWhichSideCache[manifold] = side
	return side, nil
}

// intersectionOfManifoldAndCut returns the intersection of the cut with an
// oriented manifold. Results are cached in the cut.
func (s *Space) intersectionOfManifoldAndCut(cut *AtomicCut, manifold ManifoldRef) (ManifoldRef, error) {
	if ref, ok := cut.manifoldIntersectionCache[manifold.ID]; ok {
		return ref.MulSign(manifold.Sign), nil
	}
	ref, err := s.intersect(s.Manifold(), cut.params.Divider, NewManifoldRef(manifold.ID))
	if err != nil {
		return ManifoldRef{}, err
	}
	cut.manifoldIntersectionCache[manifold.ID] = ref
	return ref.MulSign(manifold.Sign), nil
}

// CutPolytopeSet cuts each polytope in a set, collecting the pieces whose
// fate is to be kept.
func (s *Space) CutPolytopeSet(polytopes PolytopeSet, cut *AtomicCut) (PolytopeSet, error) {
	var ret PolytopeSet
	for _, polytope := range polytopes.Refs() {
		var inside, outside PolytopeRef
		out, err := s.CutPolytope(polytope, cut)
		if err != nil {
			return PolytopeSet{}, err
		}
		switch out.Kind {
		case CutFlush:
			continue
		case CutManifoldInside:
			inside = polytope
		case CutManifoldOutside:
			outside = polytope
		case CutNonFlush:
			inside = out.Inside
			outside = out.Outside
		}
		if cut.params.Inside == FateKeep {
			ret.Insert(inside)
		}
		if cut.params.Outside == FateKeep {
			ret.Insert(outside)
		}
	}
	return ret, nil
}

// CutPolytope cuts an atomic polytope by the cut's divider.
func (s *Space) CutPolytope(polytope PolytopeRef, cut *AtomicCut) (CutOutput, error) {
	cutNDim := s.ManifoldNDim(cut.params.Divider)
	spaceNDim := s.NDim()
	if cutNDim != spaceNDim-1 {
		return CutOutput{}, fmt.Errorf("%w: expected %dD cut in %dD space; got %dD cut",
			ErrDimension, spaceNDim-1, spaceNDim, cutNDim)
	}

	if cached, ok := cut.polytopeCutOutputCache[polytope.ID]; ok {
		return cached.MulSign(polytope.Sign), nil
	}

	result, err := s.cutPolytopeUncached(polytope.ID, cut)
	if err != nil {
		return CutOutput{}, fmt.Errorf("cutting polytope %v: %w", polytope, err)
	}
	cut.polytopeCutOutputCache[polytope.ID] = result
	return result.MulSign(polytope.Sign), nil
}

func (s *Space) cutPolytopeUncached(polytope PolytopeID, cut *AtomicCut) (CutOutput, error) {
	ref := NewPolytopeRef(polytope)
	side, err := s.whichSideOfCutHasManifold(cut, s.ManifoldOf(ref).ID)
	if err != nil {
		return CutOutput{}, err
	}
	switch side {
	case SideFlush:
		return CutOutput{Kind: CutFlush}, nil
	case SideInside:
		return CutOutput{Kind: CutManifoldInside}, nil
	case SideOutside:
		return CutOutput{Kind: CutManifoldOutside}, nil
	}

	// The polytope's manifold is split; find out whether the polytope
	// itself is split too.
	intersectionManifold, err := s.intersectionOfManifoldAndCut(cut, s.ManifoldOf(ref))
	if err != nil {
		return CutOutput{}, err
	}

	// 1D polytopes may have a disconnected boundary, so they need special
	// handling.
	if s.PolytopeNDim(ref) == 1 {
		return s.cutPolytope1D(polytope, cut, intersectionManifold)
	}
	return s.cutPolytopeND(polytope, cut, intersectionManifold)
}

// cutPolytope1D cuts a 1D atomic polytope, assuming its manifold is split by
// the cut.
func (s *Space) cutPolytope1D(polytope PolytopeID, cut *AtomicCut, intersectionManifold ManifoldRef) (CutOutput, error) {
	ref := NewPolytopeRef(polytope)
	polytopeManifold := s.ManifoldOf(ref)
	polytopeBoundary := s.BoundaryOf(ref)

	// The intersection polytope is 0D, so it has no boundary.
	intersection, err := s.addPointPair(intersectionManifold)
	if err != nil {
		return CutOutput{}, err
	}

	makeSide := func(fate Fate, intervalSign Sign) (PolytopeRef, error) {
		if fate == FateRemove {
			return PolytopeRef{}, nil
		}
		boundary, exists, err := s.incrementallySimplifyIntersectionOfIntervals(
			polytopeManifold, polytopeBoundary, intersection.MulSign(intervalSign))
		if err != nil || !exists {
			return PolytopeRef{}, err
		}
		id, err := s.addSubpolytope(polytope, boundary)
		if err != nil {
			return PolytopeRef{}, err
		}
		return NewPolytopeRef(id), nil
	}

	inside, err := makeSide(cut.params.Inside, Pos)
	if err != nil {
		return CutOutput{}, err
	}
	outside, err := makeSide(cut.params.Outside, Neg)
	if err != nil {
		return CutOutput{}, err
	}

	return CutOutput{
		Kind:              CutNonFlush,
		Inside:            inside,
		Outside:           outside,
		Intersection:      intersection,
		IntersectionIsNew: true,
	}, nil
}

// cutPolytopeND cuts an N-dimensional atomic polytope for N >= 2, assuming
// its manifold is split by the cut.
func (s *Space) cutPolytopeND(polytope PolytopeID, cut *AtomicCut, intersectionManifold ManifoldRef) (CutOutput, error) {
	ref := NewPolytopeRef(polytope)
	polytopeBoundary := s.BoundaryOf(ref)

	// First, scan for a boundary polytope that is exactly on the cut. If
	// one exists the polytope is not split; it is entirely on one side.
	for _, child := range polytopeBoundary {
		childManifold := s.ManifoldOf(child)
		if childManifold.ID == intersectionManifold.ID {
			sign := childManifold.Sign.Mul(intersectionManifold.Sign)
			out := CutOutput{
				Kind:         CutNonFlush,
				Intersection: child.MulSign(sign),
			}
			if sign == Pos && cut.params.Inside == FateKeep {
				out.Inside = ref
			}
			if sign == Neg && cut.params.Outside == FateKeep {
				out.Outside = ref
			}
			return out, nil
		}
	}

	// Next, scan for a boundary polytope whose manifold excludes the cut
	// entirely; then the polytope is wholly on one side of the cut.
	for _, child := range polytopeBoundary {
		sideOfCutWithChild, err := s.whichSideOfCutHasManifold(cut, s.ManifoldOf(child).ID)
		if err != nil {
			return CutOutput{}, err
		}
		switch sideOfCutWithChild {
		case SideFlush:
			return CutOutput{}, fmt.Errorf("%w: manifold is flush with cut but has a different id", ErrTopology)
		case SideSplit:
			continue
		}

		sideOfChildWithCut, err := s.WhichSideHasManifold(
			s.ManifoldOf(ref), s.ManifoldOf(child), intersectionManifold.ID)
		if err != nil {
			return CutOutput{}, err
		}
		if sideOfChildWithCut != SideOutside {
			continue
		}

		out := CutOutput{Kind: CutNonFlush}
		if sideOfCutWithChild == SideInside {
			out.Inside = ref
		} else {
			out.Outside = ref
		}
		return out, nil
	}

	// General case: the polytope may be inside, outside, or split. Let
	// "cut" be the inside half-space, so boundary(polytope ∩ cut) =
	// boundary(polytope) ∩ cut, and similarly for the complement.
	var boundaryOfInside PolytopeSet
	var boundaryOfOutside PolytopeSet
	// intersectionBoundary collects the (N-2)-dimensional polytopes that
	// together comprise boundary(polytope ∩ boundary(cut)).
	var intersectionBoundary PolytopeSet

	for _, child := range polytopeBoundary {
		out, err := s.CutPolytope(child, cut)
		if err != nil {
			return CutOutput{}, err
		}
		switch out.Kind {
		case CutFlush:
			return CutOutput{}, fmt.Errorf("%w: manifold is flush with cut but has a different id", ErrTopology)
		case CutManifoldInside:
			boundaryOfInside.Insert(child)
		case CutManifoldOutside:
			boundaryOfOutside.Insert(child)
		case CutNonFlush:
			boundaryOfInside.Insert(out.Inside)
			boundaryOfOutside.Insert(out.Outside)
			if out.Intersection.Valid() {
				intersectionBoundary.Insert(out.Intersection.Neg())
			}
		}
	}

	intersectionBoundary, err := s.simplifyPolytopeBoundary(intersectionManifold, intersectionBoundary)
	if err != nil {
		return CutOutput{}, err
	}

	// The intersection polytope exists if it has a boundary, or if the
	// polytope completely contains the intersection manifold (in which
	// case the intersection is the whole manifold with no boundary).
	var intersection PolytopeRef
	needIntersection := !intersectionBoundary.IsEmpty()
	if !needIntersection {
		contained, err := s.polytopeCompletelyContainsManifold(polytope, intersectionManifold.ID)
		if err != nil {
			return CutOutput{}, err
		}
		needIntersection = contained
	}
	if needIntersection {
		newPolytope, err := s.addAtomicPolytope(intersectionManifold, intersectionBoundary)
		if err != nil {
			return CutOutput{}, err
		}
		// polytope ∩ boundary(cut) bounds both halves.
		boundaryOfInside.Insert(newPolytope)
		boundaryOfOutside.Insert(newPolytope.Neg())
		intersection = newPolytope
	}

	var inside PolytopeRef
	if cut.params.Inside == FateKeep && !boundaryOfInside.IsEmpty() {
		id, err := s.addSubpolytope(polytope, boundaryOfInside)
		if err != nil {
			return CutOutput{}, err
		}
		inside = NewPolytopeRef(id)
	}

	var outside PolytopeRef
	if cut.params.Outside == FateKeep && !boundaryOfOutside.IsEmpty() {
		id, err := s.addSubpolytope(polytope, boundaryOfOutside)
		if err != nil {
			return CutOutput{}, err
		}
		outside = NewPolytopeRef(id)
	}

	return CutOutput{
		Kind:              CutNonFlush,
		Inside:            inside,
		Outside:           outside,
		Intersection:      intersection,
		IntersectionIsNew: intersection.Valid(),
	}, nil
}
