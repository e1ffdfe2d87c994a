package space

import (
	"fmt"

	"github.com/hyperfold/polycut/cga"
)

// intervalUnion is the result of taking the union of two intervals on a
// topological circle.
type intervalUnion struct {
	kind intervalUnionKind
	// ref is the polytope of the union. Only valid for unionJoined.
	ref PolytopeRef
}

type intervalUnionKind uint8

const (
	// unionJoined means the intervals intersect and their union is a single
	// interval.
	unionJoined intervalUnionKind = iota
	// unionWholeSpace means the union covers the whole circle.
	unionWholeSpace
	// unionDisconnected means the intervals do not intersect.
	unionDisconnected
)

// simplifyPolytopeBoundary removes redundant boundary elements. On 1D
// manifolds intervals are merged; on higher-dimensional manifolds elements
// present with both signs cancel.
//
// The return value does not distinguish an empty boundary from an empty
// polytope, so callers must determine polytope existence by other means.
func (s *Space) simplifyPolytopeBoundary(manifold ManifoldRef, boundary PolytopeSet) (PolytopeSet, error) {
	if s.ManifoldAt(manifold.ID).NDim == 1 {
		simplified, exists, err := s.simplifyIntersectionOfIntervals(manifold, boundary)
		if err != nil {
			return PolytopeSet{}, fmt.Errorf("simplifying boundary of 1D intersection: %w", err)
		}
		if !exists {
			return PolytopeSet{}, nil
		}
		return simplified, nil
	}

	var ret PolytopeSet
	for _, elem := range boundary.Refs() {
		if !boundary.Contains(elem.Neg()) {
			ret.Insert(elem)
		}
	}
	return ret, nil
}

// simplifyIntersectionOfIntervals simplifies a subset of a 1D manifold
// represented as the intersection of a set of intervals, where each interval
// is a point pair. The boolean result is false if the intersection is empty.
func (s *Space) simplifyIntersectionOfIntervals(space ManifoldRef, intervals PolytopeSet) (PolytopeSet, bool, error) {
	var simplified PolytopeSet
	for _, interval := range intervals.Refs() {
		next, exists, err := s.incrementallySimplifyIntersectionOfIntervals(space, simplified.Refs(), interval)
		if err != nil || !exists {
			return PolytopeSet{}, false, err
		}
		simplified = next
	}
	return simplified, true, nil
}

// incrementallySimplifyIntersectionOfIntervals intersects newInterval into
// an already-simplified set of intervals. The boolean result is false if the
// intersection is empty.
func (s *Space) incrementallySimplifyIntersectionOfIntervals(
	space ManifoldRef,
	existingIntervals []PolytopeRef,
	newInterval PolytopeRef,
) (PolytopeSet, bool, error) {
	var simplified PolytopeSet
	for _, existing := range existingIntervals {
		// The intersection of intervals is the complement of the union of
		// the complements, and negating a point pair complements its
		// interval.
		union, err := s.tryUnionIntervals(space, existing.Neg(), newInterval.Neg())
		if err != nil {
			return PolytopeSet{}, false, err
		}
		switch union.kind {
		case unionJoined:
			newInterval = union.ref.Neg()
		case unionWholeSpace:
			// The whole space is excluded; there is nothing left.
			return PolytopeSet{}, false, nil
		case unionDisconnected:
			simplified.Insert(existing)
		}
	}
	simplified.Insert(newInterval)

	if s.checks {
		if err := s.checkIntervalEndpointsDistinct(simplified); err != nil {
			return PolytopeSet{}, false, err
		}
	}

	return simplified, true, nil
}

// tryUnionIntervals returns the union of two intervals if they intersect at
// all, including at their boundaries.
func (s *Space) tryUnionIntervals(space ManifoldRef, interval1, interval2 PolytopeRef) (intervalUnion, error) {
	a, b, err := s.ExtractPointPair(interval1)
	if err != nil {
		return intervalUnion{}, err
	}
	p, q, err := s.ExtractPointPair(interval2)
	if err != nil {
		return intervalUnion{}, err
	}
	ab := s.ManifoldOf(interval1)
	pq := s.ManifoldOf(interval2)

	var start, end cga.Point

	if a.ApproxEq(p) && b.ApproxEq(q) {
		// The intervals are the same.
		start, end = a, b
	} else {
		abHasP := s.closedIntervalContainsPoint(space, ab, p)
		abHasQ := s.closedIntervalContainsPoint(space, ab, q)
		pqHasA := s.closedIntervalContainsPoint(space, pq, a)
		pqHasB := s.closedIntervalContainsPoint(space, pq, b)

		if abHasP && abHasQ && pqHasA && pqHasB {
			return intervalUnion{kind: unionWholeSpace}, nil
		}

		switch {
		case abHasP:
			start = a
		case pqHasA:
			start = p
		default:
			return intervalUnion{kind: unionDisconnected}, nil
		}

		switch {
		case abHasQ:
			end = b
		case pqHasB:
			end = q
		default:
			return intervalUnion{kind: unionDisconnected}, nil
		}
	}

	manifold, err := s.AddManifold(pointTo1Blade(start).Wedge(pointTo1Blade(end)))
	if err != nil {
		return intervalUnion{}, err
	}
	ref, err := s.addPointPair(manifold)
	if err != nil {
		return intervalUnion{}, err
	}
	return intervalUnion{kind: unionJoined, ref: ref}, nil
}

// closedIntervalContainsPoint reports whether the interval represented by a
// point pair within a 1D space contains point, including its endpoints.
func (s *Space) closedIntervalContainsPoint(space, interval ManifoldRef, point cga.Point) bool {
	return s.WhichSideHasPoint(space, interval, point) != cga.PointOutside
}

// checkIntervalEndpointsDistinct verifies that no two interval endpoints
// coincide.
func (s *Space) checkIntervalEndpointsDistinct(intervals PolytopeSet) error {
	var points []cga.Point
	for _, interval := range intervals.Refs() {
		a, b, err := s.ExtractPointPair(interval)
		if err != nil {
			return err
		}
		points = append(points, a, b)
	}
	for i, p := range points {
		for _, q := range points[i+1:] {
			if p.ApproxEq(q) {
				return fmt.Errorf("%w: intervals %v share endpoint %v", ErrTopology, intervals, p)
			}
		}
	}
	return nil
}
