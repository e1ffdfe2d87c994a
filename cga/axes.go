package cga

import (
	"math/bits"
	"strings"
)

// Axes is a bitmask of basis vectors. Bit 0 is e₋, bit 1 is e₊, and bit i+2
// is the i-th Euclidean axis. A set of basis vectors identifies a basis blade
// in canonical (ascending) order.
type Axes uint32

const (
	// AxesScalar is the empty basis, identifying a scalar term.
	AxesScalar Axes = 0
	// AxesEMinus is the conformal basis vector that squares to -1.
	AxesEMinus Axes = 1 << 0
	// AxesEPlus is the conformal basis vector that squares to +1.
	AxesEPlus Axes = 1 << 1
	// AxesEPlane is the Minkowski plane e₋∧e₊.
	AxesEPlane Axes = AxesEMinus | AxesEPlus
)

// MaxNDim is the largest number of Euclidean dimensions supported.
const MaxNDim = 7

// axisNames are the display names for Euclidean axes, following the usual
// puzzle convention of X, Y, Z, W and then descending from V.
const axisNames = "xyzwvut"

// EuclideanAxis returns the basis vector for the i-th Euclidean axis.
func EuclideanAxis(i uint8) Axes {
	return 1 << (i + 2)
}

// pseudoscalarAxes returns every basis vector of the conformal algebra over
// ndim Euclidean dimensions.
func pseudoscalarAxes(ndim uint8) Axes {
	return 1<<(ndim+2) - 1
}

// Grade returns the number of basis vectors in the mask.
func (a Axes) Grade() uint8 {
	return uint8(bits.OnesCount32(uint32(a)))
}

// MinEuclideanNDim returns the smallest number of Euclidean dimensions whose
// conformal algebra contains all axes in the mask.
func (a Axes) MinEuclideanNDim() uint8 {
	return uint8(bits.Len32(uint32(a >> 2)))
}

func (a Axes) String() string {
	if a == AxesScalar {
		return "s"
	}
	var sb strings.Builder
	if a&AxesEMinus != 0 {
		sb.WriteByte('-')
	}
	if a&AxesEPlus != 0 {
		sb.WriteByte('+')
	}
	for i := 0; uint8(i) < a.MinEuclideanNDim(); i++ {
		if a&EuclideanAxis(uint8(i)) != 0 {
			if i < len(axisNames) {
				sb.WriteByte(axisNames[i])
			} else {
				sb.WriteByte('?')
			}
		}
	}
	return sb.String()
}

// signOfReverse is the sign acquired by writing the basis vectors of the
// blade in reverse order: (-1)^(g(g-1)/2).
func (a Axes) signOfReverse() float64 {
	g := uint32(a.Grade())
	if (g*(g-1)/2)%2 == 0 {
		return 1
	}
	return -1
}

// reorderSign is the sign acquired by interleaving two canonically ordered
// basis sequences into a single canonically ordered sequence.
func reorderSign(a, b Axes) float64 {
	x := a >> 1
	swaps := 0
	for x != 0 {
		swaps += bits.OnesCount32(uint32(x & b))
		x >>= 1
	}
	if swaps%2 == 0 {
		return 1
	}
	return -1
}
