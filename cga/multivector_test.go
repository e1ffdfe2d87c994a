package cga

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGeometricProductBasis(t *testing.T) {
	x := NewMultivector(UnitTerm(EuclideanAxis(0)))
	y := NewMultivector(UnitTerm(EuclideanAxis(1)))
	eMinus := NewMultivector(UnitTerm(AxesEMinus))
	ePlus := NewMultivector(UnitTerm(AxesEPlus))

	t.Run("squares", func(t *testing.T) {
		assert.InDelta(t, 1.0, x.Mul(x).At(AxesScalar), Epsilon)
		assert.InDelta(t, -1.0, eMinus.Mul(eMinus).At(AxesScalar), Epsilon)
		assert.InDelta(t, 1.0, ePlus.Mul(ePlus).At(AxesScalar), Epsilon)
	})

	t.Run("anticommute", func(t *testing.T) {
		xy := x.Mul(y)
		yx := y.Mul(x)
		assert.True(t, xy.Add(yx).IsZero(), "expected xy = -yx")
		assert.InDelta(t, 1.0, xy.At(EuclideanAxis(0)|EuclideanAxis(1)), Epsilon)
	})
}

func TestNullVectors(t *testing.T) {
	no := NO()
	ni := NI()

	assert.InDelta(t, 0.0, no.Dot(no), Epsilon, "no is null")
	assert.InDelta(t, 0.0, ni.Dot(ni), Epsilon, "ni is null")
	assert.InDelta(t, -1.0, no.Dot(ni), Epsilon, "no . ni = -1")
}

func TestAddTermCombines(t *testing.T) {
	m := NewMultivector(
		Term{Coef: 2, Axes: EuclideanAxis(0)},
		Term{Coef: 3, Axes: EuclideanAxis(1)},
		Term{Coef: -2, Axes: EuclideanAxis(0)},
	)
	assert.Len(t, m.Terms(), 1, "exact cancellation removes the term")
	assert.InDelta(t, 3.0, m.At(EuclideanAxis(1)), Epsilon)
}

func TestReverseSigns(t *testing.T) {
	tests := []struct {
		name string
		axes Axes
		want float64
	}{
		{"scalar", AxesScalar, 1},
		{"vector", EuclideanAxis(0), 1},
		{"bivector", EuclideanAxis(0) | EuclideanAxis(1), -1},
		{"trivector", EuclideanAxis(0) | EuclideanAxis(1) | EuclideanAxis(2), -1},
		{"quadvector", pseudoscalarAxes(2), 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewMultivector(UnitTerm(tt.axes)).Reverse()
			assert.InDelta(t, tt.want, m.At(tt.axes), Epsilon)
		})
	}
}

func TestInverse(t *testing.T) {
	t.Run("vector", func(t *testing.T) {
		v := NewMultivector(Term{Coef: 2, Axes: EuclideanAxis(0)})
		inv, ok := v.Inverse()
		require.True(t, ok)
		assert.InDelta(t, 0.5, inv.At(EuclideanAxis(0)), Epsilon)

		product := v.Mul(inv)
		assert.InDelta(t, 1.0, product.At(AxesScalar), Epsilon)
	})

	t.Run("null vector has no inverse", func(t *testing.T) {
		_, ok := NI().Inverse()
		assert.False(t, ok)
	})

	t.Run("zero has no inverse", func(t *testing.T) {
		_, ok := Multivector{}.Inverse()
		assert.False(t, ok)
	})
}

func TestWedgeSharedAxisVanishes(t *testing.T) {
	x := NewMultivector(UnitTerm(EuclideanAxis(0)))
	xy := NewMultivector(UnitTerm(EuclideanAxis(0) | EuclideanAxis(1)))
	assert.True(t, x.Wedge(xy).IsZero())
}

func TestDotMatchesProductScalarPart(t *testing.T) {
	a := NewMultivector(
		Term{Coef: 1, Axes: EuclideanAxis(0)},
		Term{Coef: 2, Axes: AxesEMinus},
	)
	b := NewMultivector(
		Term{Coef: 3, Axes: EuclideanAxis(0)},
		Term{Coef: -1, Axes: AxesEMinus},
	)
	assert.InDelta(t, a.Mul(b).At(AxesScalar), a.Dot(b), Epsilon)
}

func TestMostSignificantTerm(t *testing.T) {
	m := NewMultivector(
		Term{Coef: 0.5, Axes: EuclideanAxis(0)},
		Term{Coef: -3, Axes: EuclideanAxis(1)},
		Term{Coef: 2, Axes: AxesEMinus},
	)
	assert.Equal(t, EuclideanAxis(1), m.MostSignificantTerm().Axes)
}
