// Package space implements infinite Euclidean spaces in which polytopes are
// constructed by cutting convex regions with hyperspheres and hyperplanes.
//
// In this package:
//   - A 0-dimensional manifold is always a pair of points.
//   - An N-dimensional manifold where N>0 is always closed: a hyperplane or
//     hypersphere, represented by an OPNS blade of the conformal geometric
//     algebra.
//   - The inside and outside of a manifold are the half-spaces enclosed by
//     it when embedded with an orientation into a manifold with one more
//     dimension. Orientation determines which half-space is which, not
//     which one is finite.
//   - An atomic polytope in N-dimensional space is the intersection of the
//     insides of finitely many (N-1)-dimensional manifolds.
//
// Manifolds, atomic polytopes, and isometries are memoized and given IDs,
// so approximately equal objects share an identity.
package space

import (
	"fmt"
	"log/slog"
	"math"

	"github.com/hyperfold/polycut/cga"
	"github.com/hyperfold/polycut/intern"
)

// Space is a Euclidean space in which polytopes can be constructed.
//
// A Space is not safe for concurrent use; build one Space per goroutine.
type Space struct {
	manifolds  *intern.Table[ManifoldData]
	polytopes  *intern.Table[AtomicPolytope]
	isometries *intern.Table[cga.Isometry]

	coveringManifold ManifoldID
	coveringPolytope PolytopeID

	transformReverseCache     map[IsometryID]IsometryID
	transformCompositionCache map[isometryPair]IsometryID
	manifoldTransformCache    map[isometryManifoldKey]ManifoldRef
	polytopeWhichSideCache    map[whichSideKey]WhichSide

	logger *slog.Logger
	checks bool
}

type isometryPair struct {
	a, b IsometryID
}

type isometryManifoldKey struct {
	isometry IsometryID
	manifold ManifoldID
}

type whichSideKey struct {
	cut      ManifoldID
	polytope PolytopeID
}

// New constructs an empty Euclidean space with the given number of
// dimensions.
func New(ndim uint8, opts ...Option) (*Space, error) {
	if ndim < 1 || ndim > cga.MaxNDim {
		return nil, fmt.Errorf("%w: cannot construct %dD space", ErrDimension, ndim)
	}

	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	s := &Space{
		manifolds:  intern.NewTable(cga.Epsilon, manifoldKey),
		polytopes:  intern.NewTable(cga.Epsilon, polytopeKey),
		isometries: intern.NewTable(cga.Epsilon, isometryKey),

		transformReverseCache:     map[IsometryID]IsometryID{},
		transformCompositionCache: map[isometryPair]IsometryID{},
		manifoldTransformCache:    map[isometryManifoldKey]ManifoldRef{},
		polytopeWhichSideCache:    map[whichSideKey]WhichSide{},

		logger: o.logger,
		checks: o.checks,
	}

	covering, err := newManifoldData(cga.Pseudoscalar(ndim))
	if err != nil {
		return nil, err
	}
	manifoldID, _ := s.manifolds.GetOrInsert(covering)
	s.coveringManifold = ManifoldID(manifoldID)

	polytopeID, _ := s.polytopes.GetOrInsert(wholeManifold(s.coveringManifold))
	s.coveringPolytope = PolytopeID(polytopeID)

	return s, nil
}

func manifoldKey(m ManifoldData, k *intern.KeyWriter) {
	for _, t := range m.Blade.MV().Terms() {
		k.WriteUint32(uint32(t.Axes))
		k.WriteFloat(t.Coef)
	}
}

func polytopeKey(p AtomicPolytope, k *intern.KeyWriter) {
	k.WriteUint32(uint32(p.Manifold))
	for _, ref := range p.Boundary.Refs() {
		k.WriteUint32(uint32(ref.ID))
		k.WriteUint32(uint32(uint8(ref.Sign + 2)))
	}
}

func isometryKey(i cga.Isometry, k *intern.KeyWriter) {
	for _, t := range i.MV().Terms() {
		k.WriteUint32(uint32(t.Axes))
		k.WriteFloat(t.Coef)
	}
}

// NDim returns the number of dimensions of the whole space.
func (s *Space) NDim() uint8 {
	return s.ManifoldAt(s.coveringManifold).NDim
}

// Manifold returns the manifold of the whole space.
func (s *Space) Manifold() ManifoldRef {
	return NewManifoldRef(s.coveringManifold)
}

// WholeSpace returns the boundaryless polytope covering the whole space.
func (s *Space) WholeSpace() PolytopeRef {
	return NewPolytopeRef(s.coveringPolytope)
}

// Pseudoscalar returns the blade of the whole space, which is useful when
// computing the intersection of two manifolds.
func (s *Space) Pseudoscalar() cga.Blade {
	return s.ManifoldAt(s.coveringManifold).Blade
}

// ManifoldAt returns the manifold with the given id. It panics if the id is
// out of range.
func (s *Space) ManifoldAt(id ManifoldID) ManifoldData {
	return s.manifolds.At(uint32(id))
}

// PolytopeAt returns the polytope with the given id. It panics if the id is
// out of range.
func (s *Space) PolytopeAt(id PolytopeID) AtomicPolytope {
	return s.polytopes.At(uint32(id))
}

// IsometryAt returns the isometry with the given id. It panics if the id is
// out of range.
func (s *Space) IsometryAt(id IsometryID) cga.Isometry {
	return s.isometries.At(uint32(id))
}

// ManifoldCount returns the number of memoized manifolds.
func (s *Space) ManifoldCount() int {
	return s.manifolds.Len()
}

// PolytopeCount returns the number of memoized polytopes.
func (s *Space) PolytopeCount() int {
	return s.polytopes.Len()
}

// IsometryCount returns the number of memoized isometries.
func (s *Space) IsometryCount() int {
	return s.isometries.Len()
}

// ManifoldNDim returns the number of dimensions of a manifold.
func (s *Space) ManifoldNDim(m ManifoldRef) uint8 {
	return s.ManifoldAt(m.ID).NDim
}

// PolytopeNDim returns the number of dimensions of a polytope.
func (s *Space) PolytopeNDim(p PolytopeRef) uint8 {
	return s.ManifoldAt(s.PolytopeAt(p.ID).Manifold).NDim
}

// ManifoldOf returns the oriented manifold of a polytope.
func (s *Space) ManifoldOf(p PolytopeRef) ManifoldRef {
	return NewManifoldRef(s.PolytopeAt(p.ID).Manifold).MulSign(p.Sign)
}

// ManifoldBlade returns the blade representing an oriented manifold.
func (s *Space) ManifoldBlade(m ManifoldRef) cga.Blade {
	return s.ManifoldAt(m.ID).Blade.Scale(m.Sign.Float())
}

// PolytopeBlade returns the blade representing a polytope's oriented
// manifold.
func (s *Space) PolytopeBlade(p PolytopeRef) cga.Blade {
	return s.ManifoldBlade(s.ManifoldOf(p))
}

// BoundaryOf returns the signed boundary of a polytope.
func (s *Space) BoundaryOf(p PolytopeRef) []PolytopeRef {
	refs := s.PolytopeAt(p.ID).Boundary.Refs()
	for i, r := range refs {
		refs[i] = r.MulSign(p.Sign)
	}
	return refs
}

// ExtractPointPair returns the pair of points that comprise a 0D polytope.
func (s *Space) ExtractPointPair(p PolytopeRef) (cga.Point, cga.Point, error) {
	a, b, ok := s.PolytopeBlade(p).PointPairToPoints()
	if !ok {
		return cga.Point{}, cga.Point{}, fmt.Errorf("%w: polytope %v is not a real point pair", ErrDegenerate, p)
	}
	return a, b, nil
}

// AddSphere adds a spherical manifold to the space. A negative radius gives
// an inside-out sphere.
func (s *Space) AddSphere(center cga.Vector, radius float64) (ManifoldRef, error) {
	return s.AddManifold(cga.IPNSSphere(center, radius).IpnsToOpnsIn(s.Pseudoscalar()))
}

// AddPlane adds a planar manifold to the space. If distance is positive then
// the origin is inside.
func (s *Space) AddPlane(normal cga.Vector, distance float64) (ManifoldRef, error) {
	return s.AddManifold(cga.IPNSPlane(normal, distance).IpnsToOpnsIn(s.Pseudoscalar()))
}

// AddManifold adds a manifold represented by an OPNS blade to the space.
// Approximately equal manifolds map to the same ID, with a sign recording
// their relative orientation.
func (s *Space) AddManifold(blade cga.Blade) (ManifoldRef, error) {
	if blade.NDim() > s.NDim() {
		return ManifoldRef{}, fmt.Errorf("%w: blade %v cannot fit in %dD space", ErrDimension, blade, s.NDim())
	}

	canonical, sign, err := canonicalizeBlade(blade)
	if err != nil {
		return ManifoldRef{}, err
	}

	data, err := newManifoldData(canonical)
	if err != nil {
		return ManifoldRef{}, err
	}
	if data.NDim > s.NDim() {
		return ManifoldRef{}, fmt.Errorf("%w: %v does not fit inside %dD space", ErrDimension, data, s.NDim())
	}

	id, existed := s.manifolds.GetOrInsert(data)
	if !existed {
		s.logger.Debug("added manifold", "id", ManifoldID(id), "ndim", data.NDim)
	}
	return ManifoldRef{ID: ManifoldID(id), Sign: sign}, nil
}

// AddManifolds adds a set of manifolds to the space.
func (s *Space) AddManifolds(blades []cga.Blade) ([]ManifoldRef, error) {
	refs := make([]ManifoldRef, 0, len(blades))
	for _, blade := range blades {
		ref, err := s.AddManifold(blade)
		if err != nil {
			return nil, err
		}
		refs = append(refs, ref)
	}
	return refs, nil
}

// addPointPair adds the polytope covering a 0D manifold.
func (s *Space) addPointPair(manifold ManifoldRef) (PolytopeRef, error) {
	if s.ManifoldNDim(manifold) != 0 {
		return PolytopeRef{}, fmt.Errorf("%w: point pair polytope requires a 0D manifold", ErrDimension)
	}
	id, err := s.getOrInsertPolytope(wholeManifold(manifold.ID))
	if err != nil {
		return PolytopeRef{}, err
	}
	return NewPolytopeRef(id).MulSign(manifold.Sign), nil
}

// addAtomicPolytope adds an atomic polytope with the given oriented manifold
// and boundary.
func (s *Space) addAtomicPolytope(manifold ManifoldRef, boundary PolytopeSet) (PolytopeRef, error) {
	if s.ManifoldNDim(manifold) == 0 {
		if !boundary.IsEmpty() {
			return PolytopeRef{}, fmt.Errorf("%w: point pair must have no boundary", ErrTopology)
		}
		return s.addPointPair(manifold)
	}

	// Boundary signs are stored relative to the positive orientation of the
	// manifold.
	data := AtomicPolytope{
		Manifold: manifold.ID,
		Boundary: boundary.MulSign(manifold.Sign),
	}
	id, err := s.getOrInsertPolytope(data)
	if err != nil {
		return PolytopeRef{}, err
	}
	return NewPolytopeRef(id).MulSign(manifold.Sign), nil
}

// addSubpolytope adds a polytope on the manifold of an existing polytope,
// reusing the existing polytope if the boundary is unchanged.
func (s *Space) addSubpolytope(old PolytopeID, newBoundary PolytopeSet) (PolytopeID, error) {
	oldData := s.PolytopeAt(old)
	if oldData.Boundary.Equal(newBoundary) {
		return old, nil
	}
	return s.getOrInsertPolytope(AtomicPolytope{Manifold: oldData.Manifold, Boundary: newBoundary})
}

// getOrInsertPolytope returns the ID of a polytope with certain data, adding
// it to the space if it does not already exist.
func (s *Space) getOrInsertPolytope(data AtomicPolytope) (PolytopeID, error) {
	id, existed := s.polytopes.GetOrInsert(data)
	polytope := PolytopeID(id)
	if !existed {
		s.logger.Debug("added polytope", "id", polytope, "data", data)
		if s.checks {
			if err := s.sanityCheckPolytope(polytope); err != nil {
				return 0, err
			}
		}
	}
	return polytope, nil
}

// AddIsometry adds an isometry to the space.
func (s *Space) AddIsometry(isometry cga.Isometry) IsometryID {
	id, _ := s.isometries.GetOrInsert(isometry)
	return IsometryID(id)
}

// ComposeTransforms composes two transforms a * b. Results are cached.
func (s *Space) ComposeTransforms(a, b IsometryID) IsometryID {
	key := isometryPair{a, b}
	if result, ok := s.transformCompositionCache[key]; ok {
		return result
	}
	result := s.AddIsometry(s.IsometryAt(a).Compose(s.IsometryAt(b)))
	s.transformCompositionCache[key] = result
	return result
}

// ReverseTransform inverts a transform. Results are cached.
func (s *Space) ReverseTransform(t IsometryID) IsometryID {
	if result, ok := s.transformReverseCache[t]; ok {
		return result
	}
	result := s.AddIsometry(s.IsometryAt(t).Reverse())
	s.transformReverseCache[t] = result
	return result
}

// TransformManifold transforms a manifold by an isometry. Results are
// cached.
func (s *Space) TransformManifold(isometry IsometryID, manifold ManifoldRef) (ManifoldRef, error) {
	key := isometryManifoldKey{isometry: isometry, manifold: manifold.ID}
	if result, ok := s.manifoldTransformCache[key]; ok {
		return result.MulSign(manifold.Sign), nil
	}
	blade := s.ManifoldAt(manifold.ID).Blade
	result, err := s.AddManifold(s.IsometryAt(isometry).TransformBlade(blade))
	if err != nil {
		return ManifoldRef{}, err
	}
	s.manifoldTransformCache[key] = result
	return result.MulSign(manifold.Sign), nil
}

// WhichSideHasManifold returns whether target is at least partly contained
// by either half of the N-dimensional space manifold separated by the
// (N-1)-dimensional cut. Which half counts as inside depends on the
// orientations of space and cut; the orientation of target makes no
// difference.
func (s *Space) WhichSideHasManifold(space, cut ManifoldRef, target ManifoldID) (WhichSide, error) {
	sign := space.Sign.Mul(cut.Sign)

	spaceData := s.ManifoldAt(space.ID)
	cutData := s.ManifoldAt(cut.ID)
	targetData := s.ManifoldAt(target)

	if spaceData.NDim < 1 {
		return 0, fmt.Errorf("%w: need at least a 1D space to take sides in", ErrDimension)
	}

	if targetData.NDim == spaceData.NDim {
		// target is the whole space and cut is a submanifold of it, so
		// target must be split.
		return SideSplit, nil
	}
	if targetData.NDim > spaceData.NDim {
		return 0, fmt.Errorf("%w: target is not a submanifold of space", ErrDimension)
	}

	cutIpns := cutData.Blade.OpnsToIpnsIn(spaceData.Blade)
	targetIpns := targetData.Blade.OpnsToIpnsIn(spaceData.Blade)

	// Find two points on target such that they straddle cut if target
	// intersects cut. If target is entirely on one side of cut, both points
	// end up on that side.
	var pairOnTargetAcrossCut cga.Blade
	if targetData.NDim == 0 {
		// target is already a point pair; query each of its points.
		pairOnTargetAcrossCut = targetData.Blade
	} else {
		// The dual of the intersection of target and cut is a bundle of all
		// the manifolds perpendicular to both.
		perpendicularBundle := targetIpns.Wedge(cutIpns)
		if perpendicularBundle.IsZero() {
			return SideFlush, nil
		}

		// Wedging with a point selects one perpendicular manifold; the only
		// restriction is that the wedge product must be nonzero.
		perpendicularManifold, err := nonzeroWedgeWithArbitraryPoint(perpendicularBundle)
		if err != nil {
			return 0, err
		}

		// Intersecting the perpendicular manifold with target gives the two
		// points on target closest to and farthest from cut.
		pairOnTargetAcrossCut = targetIpns.
			Wedge(perpendicularManifold.OpnsToIpnsIn(spaceData.Blade)).
			IpnsToOpnsIn(spaceData.Blade)
	}

	// If the manifolds are just barely tangent then the point pair is
	// degenerate. Pick any two distinct points on target, so that at most
	// one of them could be the tangent point.
	a, b, ok := pairOnTargetAcrossCut.PointPairToPoints()
	if !ok {
		a, b, ok = findArbitraryPointPairOnContainer(targetData.Blade, s.NDim())
		if !ok {
			return 0, fmt.Errorf("%w: no point pair on manifold %v", ErrDegenerate, targetData)
		}
	}

	result := whichSideFromPoints(
		cutIpns.IPNSQueryPointBlade(pointTo1Blade(a)),
		cutIpns.IPNSQueryPointBlade(pointTo1Blade(b)),
	)
	return result.MulSign(sign), nil
}

// intersect returns the (M-1)-dimensional intersection of the M-dimensional
// target with the (N-1)-dimensional cut, both inside the N-dimensional
// space. If target and cut do not intersect, the result is an error or
// garbage. The orientation of the result depends on the orientations of all
// three manifolds.
func (s *Space) intersect(space, cut, target ManifoldRef) (ManifoldRef, error) {
	sign := space.Sign.Mul(cut.Sign).Mul(target.Sign)

	if target.ID == space.ID {
		// target is the whole space, so the intersection is just cut.
		return ManifoldRef{ID: cut.ID, Sign: sign}, nil
	}

	spaceData := s.ManifoldAt(space.ID)
	cutData := s.ManifoldAt(cut.ID)
	targetData := s.ManifoldAt(target.ID)

	if cutData.NDim+1 != spaceData.NDim {
		return ManifoldRef{}, fmt.Errorf("%w: cut is not an (N-1)-dimensional submanifold of space", ErrDimension)
	}
	if targetData.NDim > spaceData.NDim {
		return ManifoldRef{}, fmt.Errorf("%w: target is not a submanifold of space", ErrDimension)
	}

	intersection := cga.MeetIn(cutData.Blade, targetData.Blade, spaceData.Blade)
	if !intersection.OpnsIsReal() {
		return ManifoldRef{}, fmt.Errorf("%w: %v and %v do not intersect", ErrImaginary, cutData, targetData)
	}

	ref, err := s.AddManifold(intersection)
	if err != nil {
		return ManifoldRef{}, err
	}
	return ref.MulSign(sign), nil
}

// WhichSideHasPoint returns whether the inside or outside of cut contains
// point, within space.
func (s *Space) WhichSideHasPoint(space, cut ManifoldRef, point cga.Point) cga.PointWhichSide {
	result := s.ManifoldAt(cut.ID).Blade.
		OpnsToIpnsIn(s.ManifoldAt(space.ID).Blade).
		IPNSQueryPointBlade(pointTo1Blade(point))
	return mulPointSide(result, space.Sign.Mul(cut.Sign))
}

// polytopeCompletelyContainsManifold returns whether manifold, assumed to be
// a submanifold of the polytope's manifold, is completely inside polytope.
// The manifold may be tangent to the boundary at finitely many points but
// not flush with a boundary element.
func (s *Space) polytopeCompletelyContainsManifold(polytope PolytopeID, manifold ManifoldID) (bool, error) {
	p := NewPolytopeRef(polytope)
	for _, boundaryElem := range s.BoundaryOf(p) {
		side, err := s.WhichSideHasManifold(s.ManifoldOf(p), s.ManifoldOf(boundaryElem), manifold)
		if err != nil {
			return false, err
		}
		if side != SideInside {
			return false, nil
		}
	}
	return true, nil
}

// IsPolytopeTouchingPoint returns the location of point relative to
// polytope, assuming they are in the same manifold.
func (s *Space) IsPolytopeTouchingPoint(point cga.Point, polytope PolytopeRef) cga.PointWhichSide {
	isTouchingAny := false
	for _, boundaryElem := range s.BoundaryOf(polytope) {
		switch s.WhichSideHasPoint(s.ManifoldOf(polytope), s.ManifoldOf(boundaryElem), point) {
		case cga.PointOn:
			isTouchingAny = true
		case cga.PointOutside:
			return cga.PointOutside
		}
	}
	if isTouchingAny {
		return cga.PointOn
	}
	return cga.PointInside
}

// pointTo1Blade converts a point to its OPNS 1-blade. The point at infinity
// maps to ∞ and a degenerate point maps to the zero blade.
func pointTo1Blade(p cga.Point) cga.Blade {
	switch p.Kind {
	case cga.PointFinite:
		return cga.PointBlade(p.Pos)
	case cga.PointInfinity:
		return cga.NIBlade()
	default:
		return cga.Blade{}
	}
}

// mulPointSide swaps inside and outside when sign is negative.
func mulPointSide(w cga.PointWhichSide, sign Sign) cga.PointWhichSide {
	if sign == Neg {
		switch w {
		case cga.PointInside:
			return cga.PointOutside
		case cga.PointOutside:
			return cga.PointInside
		}
	}
	return w
}

// nonzeroWedgeWithArbitraryPoint wedges an OPNS blade with whichever
// candidate point gives the product with the greatest magnitude. Returns an
// error only if every product is zero, which should only happen for a zero
// blade.
func nonzeroWedgeWithArbitraryPoint(opnsBlade cga.Blade) (cga.Blade, error) {
	ndim := opnsBlade.NDim() + 1
	candidates := make([]cga.Blade, 0, int(ndim)+2)
	for i := uint8(0); i < ndim; i++ {
		candidates = append(candidates, cga.PointBlade(cga.UnitVector(i)))
	}
	candidates = append(candidates, cga.NOBlade(), cga.NIBlade())

	var best cga.Blade
	bestMag2 := math.Inf(-1)
	for _, p := range candidates {
		wedge := opnsBlade.Wedge(p)
		if mag2 := wedge.AbsMag2(); mag2 > bestMag2 {
			best = wedge
			bestMag2 = mag2
		}
	}
	if best.IsZero() {
		return cga.Blade{}, fmt.Errorf("%w: unable to find point not on object %v", ErrDegenerate, opnsBlade)
	}
	return best, nil
}

// findArbitraryPointPairOnContainer returns an arbitrary pair of distinct
// points on the container of the manifold represented by an OPNS blade.
func findArbitraryPointPairOnContainer(opnsBlade cga.Blade, spaceNDim uint8) (cga.Point, cga.Point, bool) {
	ipns := opnsBlade.OpnsToIpns(spaceNDim)
	if radius, ok := ipns.IPNSRadius(); ok {
		center := ipns.IPNSSphereCenter()
		if center.Kind != cga.PointFinite {
			return cga.Point{}, cga.Point{}, false
		}
		offset := cga.NewVector(radius)
		return cga.FinitePoint(center.Pos.Add(offset)),
			cga.FinitePoint(center.Pos.Sub(offset)),
			true
	}
	return cga.FinitePoint(ipns.IPNSPlanePole()), cga.Infinity, true
}
