package space

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hyperfold/polycut/cga"
)

func touching(s *Space, p PolytopeRef, x float64) cga.PointWhichSide {
	return s.IsPolytopeTouchingPoint(cga.FinitePoint(cga.NewVector(x)), p)
}

func TestSlicedSegment(t *testing.T) {
	s := newTestSpace(t, 1)
	set := NewPolytopeSet(s.WholeSpace())

	carveSphere(t, s, &set, cga.NewVector(), 2)
	segment := singlePolytope(t, set)
	assert.Len(t, s.BoundaryOf(segment), 1)

	divider, err := s.AddSphere(cga.NewVector(), 1)
	require.NoError(t, err)
	out, err := s.CutPolytopeSet(set, NewCut(SliceParams(divider)))
	require.NoError(t, err)
	require.Equal(t, 2, out.Len())

	var inner, outer PolytopeRef
	for _, p := range out.Refs() {
		if touching(s, p, 0) == cga.PointInside {
			inner = p
		} else {
			outer = p
		}
	}
	require.True(t, inner.Valid())
	require.True(t, outer.Valid())

	assert.Len(t, s.BoundaryOf(inner), 1)
	assert.Equal(t, cga.PointOn, touching(s, inner, 1))
	assert.Equal(t, cga.PointOutside, touching(s, inner, 1.5))

	// The outer piece is two disconnected segments sharing one polytope.
	assert.Len(t, s.BoundaryOf(outer), 2)
	assert.Equal(t, cga.PointInside, touching(s, outer, 1.5))
	assert.Equal(t, cga.PointInside, touching(s, outer, -1.5))
	assert.Equal(t, cga.PointOn, touching(s, outer, 1))
	assert.Equal(t, cga.PointOn, touching(s, outer, 2))
	assert.Equal(t, cga.PointOutside, touching(s, outer, 0))
	assert.Equal(t, cga.PointOutside, touching(s, outer, 3))
}

func TestHalfLine(t *testing.T) {
	s := newTestSpace(t, 1)
	set := NewPolytopeSet(s.WholeSpace())

	carvePlane(t, s, &set, cga.UnitVector(0), 0)
	half := singlePolytope(t, set)

	assert.Equal(t, cga.PointInside, touching(s, half, -1))
	assert.Equal(t, cga.PointOn, touching(s, half, 0))
	assert.Equal(t, cga.PointOutside, touching(s, half, 1))
	assert.Equal(t, cga.PointOn, s.IsPolytopeTouchingPoint(cga.Infinity, half))

	boundary := s.BoundaryOf(half)
	require.Len(t, boundary, 1)
	a, b, err := s.ExtractPointPair(boundary[0])
	require.NoError(t, err)
	kinds := map[cga.PointKind]cga.Point{a.Kind: a, b.Kind: b}
	require.Contains(t, kinds, cga.PointFinite)
	require.Contains(t, kinds, cga.PointInfinity)
	assert.InDelta(t, 0, kinds[cga.PointFinite].Pos.At(0), cga.Epsilon)
}

func TestMergedIntervals(t *testing.T) {
	s := newTestSpace(t, 1)
	set := NewPolytopeSet(s.WholeSpace())

	// Two overlapping carves leave a single segment with merged endpoints.
	carveSphere(t, s, &set, cga.NewVector(1), 2)
	carveSphere(t, s, &set, cga.NewVector(-1), 2)
	segment := singlePolytope(t, set)

	boundary := s.BoundaryOf(segment)
	require.Len(t, boundary, 1)
	a, b, err := s.ExtractPointPair(boundary[0])
	require.NoError(t, err)
	require.Equal(t, cga.PointFinite, a.Kind)
	require.Equal(t, cga.PointFinite, b.Kind)
	lo := min(a.Pos.At(0), b.Pos.At(0))
	hi := max(a.Pos.At(0), b.Pos.At(0))
	assert.InDelta(t, -1, lo, cga.Epsilon)
	assert.InDelta(t, 1, hi, cga.Epsilon)
}
