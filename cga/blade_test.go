package cga

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func requireFinite(t *testing.T, p Point) Vector {
	t.Helper()
	require.Equal(t, PointFinite, p.Kind, "expected finite point, got %v", p)
	return p.Pos
}

func TestPointBlade(t *testing.T) {
	t.Run("origin", func(t *testing.T) {
		p := PointBlade(NewVector())
		assert.True(t, p.MV().Sub(NO()).IsZero())
	})

	t.Run("round trip", func(t *testing.T) {
		v := NewVector(1.5, -2, 0.25)
		got := requireFinite(t, PointBlade(v).ToPoint())
		assert.True(t, got.ApproxEq(v), "got %v", got)
	})

	t.Run("points are null", func(t *testing.T) {
		p := PointBlade(NewVector(3, 4))
		assert.InDelta(t, 0.0, p.Dot(p), Epsilon)
	})
}

func TestIPNSSphereQuery(t *testing.T) {
	sphere := IPNSSphere(NewVector(0, 0), 2)

	tests := []struct {
		name  string
		point Vector
		want  PointWhichSide
	}{
		{"center", NewVector(0, 0), PointInside},
		{"inside", NewVector(1, 0), PointInside},
		{"on", NewVector(2, 0), PointOn},
		{"on diagonal", NewVector(math.Sqrt2, math.Sqrt2), PointOn},
		{"outside", NewVector(3, 0), PointOutside},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, sphere.IPNSQueryPoint(tt.point))
		})
	}

	t.Run("inside-out sphere flips sides", func(t *testing.T) {
		inverted := IPNSSphere(NewVector(0, 0), -2)
		assert.Equal(t, PointOutside, inverted.IPNSQueryPoint(NewVector(0, 0)))
		assert.Equal(t, PointInside, inverted.IPNSQueryPoint(NewVector(3, 0)))
		assert.Equal(t, PointOn, inverted.IPNSQueryPoint(NewVector(2, 0)))
	})
}

func TestIPNSPlaneQuery(t *testing.T) {
	plane := IPNSPlane(NewVector(1, 0), 1)

	assert.Equal(t, PointInside, plane.IPNSQueryPoint(NewVector(0, 0)))
	assert.Equal(t, PointOn, plane.IPNSQueryPoint(NewVector(1, 5)))
	assert.Equal(t, PointOutside, plane.IPNSQueryPoint(NewVector(2, 0)))

	t.Run("zero normal gives zero blade", func(t *testing.T) {
		assert.True(t, IPNSPlane(NewVector(0, 0), 1).IsZero())
	})
}

func TestIPNSSphereProperties(t *testing.T) {
	sphere := IPNSSphere(NewVector(1, -1), 2)

	r, ok := sphere.IPNSRadius()
	require.True(t, ok)
	assert.InDelta(t, 2.0, r, Epsilon)

	center := requireFinite(t, sphere.IPNSSphereCenter())
	assert.True(t, center.ApproxEq(NewVector(1, -1)), "got %v", center)

	assert.False(t, sphere.IpnsIsFlat())

	t.Run("scale invariant", func(t *testing.T) {
		r, ok := sphere.Scale(-3).IPNSRadius()
		require.True(t, ok)
		assert.InDelta(t, 2.0, r, Epsilon)
	})

	t.Run("negative radius", func(t *testing.T) {
		r, ok := IPNSSphere(NewVector(1, -1), -2).IPNSRadius()
		require.True(t, ok)
		assert.InDelta(t, -2.0, r, Epsilon)
	})
}

func TestIPNSPlaneProperties(t *testing.T) {
	plane := IPNSPlane(NewVector(0, 3), -2)

	assert.True(t, plane.IpnsIsFlat())

	d, ok := plane.IPNSPlaneDistance()
	require.True(t, ok)
	assert.InDelta(t, -2.0, d, Epsilon)

	normal, ok := plane.IPNSPlaneNormal()
	require.True(t, ok)
	assert.True(t, normal.ApproxEq(NewVector(0, 1)), "got %v", normal)

	assert.True(t, plane.IPNSPlanePole().ApproxEq(NewVector(0, -2)))
}

func TestPointPairToPoints(t *testing.T) {
	t.Run("finite pair preserves order", func(t *testing.T) {
		a := NewVector(-1, 0)
		b := NewVector(1, 0)
		pair := PointBlade(a).Wedge(PointBlade(b))

		p1, p2, ok := pair.PointPairToPoints()
		require.True(t, ok)
		assert.True(t, requireFinite(t, p1).ApproxEq(a), "got %v", p1)
		assert.True(t, requireFinite(t, p2).ApproxEq(b), "got %v", p2)
	})

	t.Run("flat pair ends at infinity", func(t *testing.T) {
		p := NewVector(2, 1)
		pair := FlatPointBlade(p)

		p1, p2, ok := pair.PointPairToPoints()
		require.True(t, ok)
		assert.True(t, requireFinite(t, p1).ApproxEq(p))
		assert.Equal(t, PointInfinity, p2.Kind)
	})

	t.Run("reversed flat pair starts at infinity", func(t *testing.T) {
		p := NewVector(2, 1)
		pair := FlatPointBlade(p).Neg()

		p1, p2, ok := pair.PointPairToPoints()
		require.True(t, ok)
		assert.Equal(t, PointInfinity, p1.Kind)
		assert.True(t, requireFinite(t, p2).ApproxEq(p))
	})

	t.Run("zero pair", func(t *testing.T) {
		_, _, ok := Blade{}.PointPairToPoints()
		assert.False(t, ok)
	})
}

func TestMeetInSpace(t *testing.T) {
	space := Pseudoscalar(2)

	t.Run("overlapping circles", func(t *testing.T) {
		a := IPNSSphere(NewVector(-1, 0), 2).IpnsToOpnsIn(space)
		b := IPNSSphere(NewVector(1, 0), 2).IpnsToOpnsIn(space)

		pair := MeetIn(a, b, space)
		require.True(t, pair.OpnsIsReal())

		p1, p2, ok := pair.PointPairToPoints()
		require.True(t, ok)
		v1 := requireFinite(t, p1)
		v2 := requireFinite(t, p2)

		root3 := math.Sqrt(3)
		assert.InDelta(t, 0.0, v1.At(0), Epsilon)
		assert.InDelta(t, 0.0, v2.At(0), Epsilon)
		assert.InDelta(t, root3, math.Abs(v1.At(1)), Epsilon)
		assert.InDelta(t, root3, math.Abs(v2.At(1)), Epsilon)
		assert.False(t, v1.ApproxEq(v2))
	})

	t.Run("disjoint circles are imaginary", func(t *testing.T) {
		a := IPNSSphere(NewVector(-3, 0), 1).IpnsToOpnsIn(space)
		b := IPNSSphere(NewVector(3, 0), 1).IpnsToOpnsIn(space)

		pair := MeetIn(a, b, space)
		assert.True(t, pair.OpnsIsImaginary())
		_, _, ok := pair.PointPairToPoints()
		assert.False(t, ok)
	})

	t.Run("circle and line", func(t *testing.T) {
		circle := IPNSSphere(NewVector(0, 0), 1).IpnsToOpnsIn(space)
		line := IPNSPlane(NewVector(0, 1), 0).IpnsToOpnsIn(space)

		pair := MeetIn(circle, line, space)
		require.True(t, pair.OpnsIsReal())

		p1, p2, ok := pair.PointPairToPoints()
		require.True(t, ok)
		v1 := requireFinite(t, p1)
		v2 := requireFinite(t, p2)
		assert.InDelta(t, 1.0, math.Abs(v1.At(0)), Epsilon)
		assert.InDelta(t, 1.0, math.Abs(v2.At(0)), Epsilon)
	})
}

func TestIsometry(t *testing.T) {
	x := NewVector(1, 0)
	y := NewVector(0, 1)

	t.Run("rotation", func(t *testing.T) {
		rot, ok := RotationIsometry(x, y)
		require.True(t, ok)
		assert.True(t, rot.TransformVector(x).ApproxEq(y))
		assert.True(t, rot.TransformVector(y).ApproxEq(x.Neg()))
	})

	t.Run("inverse undoes rotation", func(t *testing.T) {
		rot, ok := RotationIsometry(x, y)
		require.True(t, ok)
		roundTrip := rot.Reverse().Compose(rot)
		assert.True(t, roundTrip.TransformVector(x).ApproxEq(x))
	})

	t.Run("transform sphere", func(t *testing.T) {
		rot, ok := RotationIsometry(x, y)
		require.True(t, ok)
		sphere := IPNSSphere(NewVector(2, 0), 1)
		moved := rot.TransformBlade(sphere)
		center := requireFinite(t, moved.IPNSSphereCenter())
		assert.True(t, center.ApproxEq(NewVector(0, 2)), "got %v", center)
	})

	t.Run("degenerate input", func(t *testing.T) {
		_, ok := RotationIsometry(NewVector(0, 0), y)
		assert.False(t, ok)
	})
}
