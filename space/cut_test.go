package space

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hyperfold/polycut/cga"
)

func carveSphere(t *testing.T, s *Space, set *PolytopeSet, center cga.Vector, radius float64) {
	t.Helper()
	divider, err := s.AddSphere(center, radius)
	require.NoError(t, err)
	carve(t, s, set, divider)
}

func carvePlane(t *testing.T, s *Space, set *PolytopeSet, normal cga.Vector, distance float64) {
	t.Helper()
	divider, err := s.AddPlane(normal, distance)
	require.NoError(t, err)
	carve(t, s, set, divider)
}

func carve(t *testing.T, s *Space, set *PolytopeSet, divider ManifoldRef) {
	t.Helper()
	out, err := s.CutPolytopeSet(*set, NewCut(CarveParams(divider)))
	require.NoError(t, err)
	*set = out
}

func slicePlane(t *testing.T, s *Space, set *PolytopeSet, normal cga.Vector, distance float64) {
	t.Helper()
	divider, err := s.AddPlane(normal, distance)
	require.NoError(t, err)
	out, err := s.CutPolytopeSet(*set, NewCut(SliceParams(divider)))
	require.NoError(t, err)
	*set = out
}

func singlePolytope(t *testing.T, set PolytopeSet) PolytopeRef {
	t.Helper()
	require.Equal(t, 1, set.Len())
	return set.Refs()[0]
}

// assertIsSphere checks that the polytope is bounded by a single boundaryless
// sphere.
func assertIsSphere(t *testing.T, s *Space, p PolytopeRef) {
	t.Helper()
	boundary := s.BoundaryOf(p)
	require.Len(t, boundary, 1)
	assert.Empty(t, s.BoundaryOf(boundary[0]))
}

// assertIsCube checks the boundary structure of an axis-aligned hypercube:
// 2n facets per n-cube, except that a segment has a single point pair.
func assertIsCube(t *testing.T, s *Space, p PolytopeRef, ndim uint8) {
	t.Helper()
	boundary := s.BoundaryOf(p)
	expected := int(ndim)
	if ndim > 1 {
		expected = int(ndim) * 2
	}
	require.Len(t, boundary, expected)
	for _, b := range boundary {
		assertIsCube(t, s, b, ndim-1)
	}
}

func intPow(base, exp int) int {
	ret := 1
	for i := 0; i < exp; i++ {
		ret *= base
	}
	return ret
}

func TestConcentricSpheres(t *testing.T) {
	for ndim := uint8(1); ndim <= 6; ndim++ {
		t.Run(fmt.Sprintf("%dD", ndim), func(t *testing.T) {
			s := newTestSpace(t, ndim)
			set := NewPolytopeSet(s.WholeSpace())

			carveSphere(t, s, &set, cga.NewVector(), 2)
			assertIsSphere(t, s, singlePolytope(t, set))

			// An inside-out sphere keeps the exterior, leaving a shell.
			carveSphere(t, s, &set, cga.NewVector(), -1)
			shell := singlePolytope(t, set)
			assert.Len(t, s.BoundaryOf(shell), 2)
		})
	}
}

func TestIdenticalSpheres(t *testing.T) {
	for ndim := uint8(1); ndim <= 6; ndim++ {
		t.Run(fmt.Sprintf("%dD", ndim), func(t *testing.T) {
			s := newTestSpace(t, ndim)
			set := NewPolytopeSet(s.WholeSpace())

			carveSphere(t, s, &set, cga.NewVector(), 1)
			prior := set
			assertIsSphere(t, s, singlePolytope(t, set))

			// Carving by the same sphere changes nothing.
			carveSphere(t, s, &set, cga.NewVector(), 1)
			assert.True(t, prior.Equal(set))
			assertIsSphere(t, s, singlePolytope(t, set))

			// Carving by the same sphere inside out removes everything.
			carveSphere(t, s, &set, cga.NewVector(), -1)
			assert.True(t, set.IsEmpty())
		})
	}
}

func TestDisjointSpheresLeaveNothing(t *testing.T) {
	for ndim := uint8(1); ndim <= 6; ndim++ {
		t.Run(fmt.Sprintf("%dD", ndim), func(t *testing.T) {
			s := newTestSpace(t, ndim)
			set := NewPolytopeSet(s.WholeSpace())

			// The lens between the first two spheres stays within 1.12 of
			// the origin, so the inside-out third sphere excludes it.
			carveSphere(t, s, &set, cga.NewVector(1), 1.5)
			carveSphere(t, s, &set, cga.NewVector(-1), 1.5)
			carveSphere(t, s, &set, cga.NewVector(), -1.15)
			assert.True(t, set.IsEmpty())
		})
	}
}

func TestPlanesAndSphereLeaveNothing(t *testing.T) {
	for ndim := uint8(2); ndim <= 6; ndim++ {
		t.Run(fmt.Sprintf("%dD", ndim), func(t *testing.T) {
			s := newTestSpace(t, ndim)
			set := NewPolytopeSet(s.WholeSpace())

			carvePlane(t, s, &set, cga.UnitVector(0), -1)
			carvePlane(t, s, &set, cga.UnitVector(1), -1)
			require.Equal(t, 1, set.Len())

			// Every remaining point is at least sqrt(2) from the origin.
			carveSphere(t, s, &set, cga.NewVector(), 1.1)
			assert.True(t, set.IsEmpty())
		})
	}
}

func carveCube(t *testing.T, s *Space, set *PolytopeSet, ndim uint8) {
	t.Helper()
	for ax := uint8(0); ax < ndim; ax++ {
		carvePlane(t, s, set, cga.UnitVector(ax), 1)
		carvePlane(t, s, set, cga.UnitVector(ax).Neg(), 1)
	}
}

func TestCubeCarveAndSlice(t *testing.T) {
	for ndim := uint8(1); ndim <= 5; ndim++ {
		t.Run(fmt.Sprintf("%dD", ndim), func(t *testing.T) {
			s := newTestSpace(t, ndim)
			set := NewPolytopeSet(s.WholeSpace())

			carveCube(t, s, &set, ndim)
			assertIsCube(t, s, singlePolytope(t, set), ndim)

			if ndim > 4 {
				return // too slow
			}
			for ax := uint8(0); ax < ndim; ax++ {
				slicePlane(t, s, &set, cga.UnitVector(ax), 0.3)
				slicePlane(t, s, &set, cga.UnitVector(ax), -0.3)
			}
			assert.Equal(t, intPow(3, int(ndim)), set.Len())
		})
	}
}

func TestCubeElements(t *testing.T) {
	s := newTestSpace(t, 3)
	set := NewPolytopeSet(s.WholeSpace())
	carveCube(t, s, &set, 3)
	cube := singlePolytope(t, set)

	assert.Len(t, s.ChildrenWithNDim(cube, 2), 6, "faces")
	assert.Len(t, s.ChildrenWithNDim(cube, 1), 12, "edges")

	pairs := s.ChildrenWithNDim(cube, 0)
	assert.Len(t, pairs, 12, "one point pair per edge")

	var vertices []cga.Point
	for _, pp := range pairs {
		a, b, err := s.ExtractPointPair(pp)
		require.NoError(t, err)
		for _, p := range []cga.Point{a, b} {
			require.Equal(t, cga.PointFinite, p.Kind)
			if indexOfPoint(vertices, p) < 0 {
				vertices = append(vertices, p)
			}
		}
	}
	assert.Len(t, vertices, 8, "vertices")

	elements := s.ElementsOf(cube.ID)
	assert.EqualValues(t, 1+6+12+12, elements.GetCardinality())
}

func TestCutFlushWithFace(t *testing.T) {
	s := newTestSpace(t, 3)
	set := NewPolytopeSet(s.WholeSpace())
	carveCube(t, s, &set, 3)
	prior := set
	priorPolytopes := s.PolytopeCount()

	// Carving along an existing face keeps the whole cube and allocates
	// nothing new.
	carvePlane(t, s, &set, cga.UnitVector(0), 1)
	assert.True(t, prior.Equal(set))
	assert.Equal(t, priorPolytopes, s.PolytopeCount())

	// Carving along the same face with the opposite orientation keeps only
	// the far side, which has no interior.
	carvePlane(t, s, &set, cga.UnitVector(0).Neg(), -1)
	assert.True(t, set.IsEmpty())
}

func TestCutOutputKinds(t *testing.T) {
	s := newTestSpace(t, 2)
	set := NewPolytopeSet(s.WholeSpace())
	carveSphere(t, s, &set, cga.NewVector(), 1)
	disk := singlePolytope(t, set)
	circle := s.BoundaryOf(disk)[0]

	t.Run("split", func(t *testing.T) {
		divider, err := s.AddPlane(cga.UnitVector(0), 0)
		require.NoError(t, err)
		out, err := s.CutPolytope(disk, NewCut(SliceParams(divider)))
		require.NoError(t, err)
		require.Equal(t, CutNonFlush, out.Kind)
		assert.True(t, out.Inside.Valid())
		assert.True(t, out.Outside.Valid())
		assert.True(t, out.Intersection.Valid())
		assert.True(t, out.IntersectionIsNew)
		assert.NotEqual(t, out.Inside.ID, out.Outside.ID)
	})

	t.Run("manifold inside", func(t *testing.T) {
		divider, err := s.AddPlane(cga.UnitVector(0), 5)
		require.NoError(t, err)
		out, err := s.CutPolytope(disk, NewCut(CarveParams(divider)))
		require.NoError(t, err)
		assert.Equal(t, CutNonFlush, out.Kind, "whole space manifold is always split")
		assert.Equal(t, disk, out.Inside)
		assert.False(t, out.Outside.Valid())

		// The circle itself is entirely inside the divider.
		circleOut, err := s.CutPolytope(circle, NewCut(CarveParams(divider)))
		require.NoError(t, err)
		assert.Equal(t, CutManifoldInside, circleOut.Kind)
	})

	t.Run("manifold outside", func(t *testing.T) {
		divider, err := s.AddPlane(cga.UnitVector(0), -5)
		require.NoError(t, err)
		circleOut, err := s.CutPolytope(circle, NewCut(CarveParams(divider)))
		require.NoError(t, err)
		assert.Equal(t, CutManifoldOutside, circleOut.Kind)
	})

	t.Run("flush", func(t *testing.T) {
		divider, err := s.AddSphere(cga.NewVector(0, 0), 1)
		require.NoError(t, err)
		circleOut, err := s.CutPolytope(circle, NewCut(SliceParams(divider)))
		require.NoError(t, err)
		assert.Equal(t, CutFlush, circleOut.Kind)
	})

	t.Run("cut reuse is cached", func(t *testing.T) {
		divider, err := s.AddPlane(cga.UnitVector(1), 0)
		require.NoError(t, err)
		cut := NewCut(SliceParams(divider))
		first, err := s.CutPolytope(disk, cut)
		require.NoError(t, err)
		second, err := s.CutPolytope(disk, cut)
		require.NoError(t, err)
		assert.Equal(t, first, second)
	})

	t.Run("wrong divider dimension", func(t *testing.T) {
		divider, err := s.AddManifold(cga.PointBlade(cga.NewVector(0, 0)).Wedge(cga.PointBlade(cga.NewVector(1, 0))))
		require.NoError(t, err)
		_, err = s.CutPolytope(disk, NewCut(SliceParams(divider)))
		assert.ErrorIs(t, err, ErrDimension)
	})
}

func TestWhichSideHasPolytope(t *testing.T) {
	s := newTestSpace(t, 3)
	set := NewPolytopeSet(s.WholeSpace())
	carveCube(t, s, &set, 3)
	cube := singlePolytope(t, set)

	tests := []struct {
		name     string
		normal   cga.Vector
		distance float64
		want     WhichSide
	}{
		{"cube inside distant cut", cga.UnitVector(0), 2, SideInside},
		{"cube outside distant cut", cga.UnitVector(0), -2, SideOutside},
		{"cut through the middle", cga.UnitVector(0), 0, SideSplit},
		{"cut along a face", cga.UnitVector(0), 1, SideInside},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			divider, err := s.AddPlane(tt.normal, tt.distance)
			require.NoError(t, err)
			side, err := s.WhichSideHasPolytope(divider, cube.ID)
			require.NoError(t, err)
			assert.Equal(t, tt.want, side)
		})
	}

	t.Run("face against its own plane", func(t *testing.T) {
		divider, err := s.AddPlane(cga.UnitVector(0), 1)
		require.NoError(t, err)
		var face PolytopeRef
		for _, f := range s.BoundaryOf(cube) {
			if s.ManifoldOf(f).ID == divider.ID {
				face = f
			}
		}
		require.True(t, face.Valid())
		side, err := s.WhichSideHasPolytope(divider, face.ID)
		require.NoError(t, err)
		assert.Equal(t, SideFlush, side)
	})
}

func TestIsPolytopeTouchingPoint(t *testing.T) {
	s := newTestSpace(t, 3)
	set := NewPolytopeSet(s.WholeSpace())
	carveCube(t, s, &set, 3)
	cube := singlePolytope(t, set)

	assert.Equal(t, cga.PointInside, s.IsPolytopeTouchingPoint(cga.FinitePoint(cga.NewVector(0, 0, 0)), cube))
	assert.Equal(t, cga.PointOn, s.IsPolytopeTouchingPoint(cga.FinitePoint(cga.NewVector(1, 0, 0)), cube))
	assert.Equal(t, cga.PointOn, s.IsPolytopeTouchingPoint(cga.FinitePoint(cga.NewVector(1, 1, 1)), cube))
	assert.Equal(t, cga.PointOutside, s.IsPolytopeTouchingPoint(cga.FinitePoint(cga.NewVector(2, 0, 0)), cube))

	// Every plane contains the conformal point at infinity, so each face of
	// the cube reports On. A sphere does not, so a ball reports Outside.
	assert.Equal(t, cga.PointOn, s.IsPolytopeTouchingPoint(cga.Infinity, cube))

	ball := NewPolytopeSet(s.WholeSpace())
	carveSphere(t, s, &ball, cga.NewVector(), 1)
	assert.Equal(t, cga.PointOutside, s.IsPolytopeTouchingPoint(cga.Infinity, singlePolytope(t, ball)))
}

func TestCarvedRegionWithHoles(t *testing.T) {
	s := newTestSpace(t, 2)
	set := NewPolytopeSet(s.WholeSpace())

	carvePlane(t, s, &set, cga.UnitVector(1), 1)
	carvePlane(t, s, &set, cga.UnitVector(1).Neg(), 1)
	carveSphere(t, s, &set, cga.NewVector(3, 0), -2)
	carveSphere(t, s, &set, cga.NewVector(-3, 0), -2)
	require.False(t, set.IsEmpty())

	carveSphere(t, s, &set, cga.NewVector(), 3)
	require.False(t, set.IsEmpty())
	for _, p := range set.Refs() {
		assert.Equal(t, cga.PointInside, s.IsPolytopeTouchingPoint(cga.FinitePoint(cga.NewVector(0, 0)), p))
	}
}
