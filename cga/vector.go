package cga

import (
	"math"
	"strconv"
	"strings"
)

// Vector is a Euclidean vector. Component i corresponds to axis i; trailing
// zero components are insignificant, so vectors of different lengths may
// compare equal.
type Vector []float64

// NewVector returns a vector with the given components.
func NewVector(components ...float64) Vector {
	return Vector(components)
}

// UnitVector returns a unit vector along the given axis.
func UnitVector(axis uint8) Vector {
	v := make(Vector, axis+1)
	v[axis] = 1
	return v
}

// At returns the component along the given axis, or 0 if out of range.
func (v Vector) At(axis uint8) float64 {
	if int(axis) < len(v) {
		return v[axis]
	}
	return 0
}

// NDim returns the number of dimensions of the vector, ignoring trailing
// zero components.
func (v Vector) NDim() uint8 {
	for i := len(v); i > 0; i-- {
		if v[i-1] != 0 {
			return uint8(i)
		}
	}
	return 0
}

// Mag2 returns the squared magnitude of the vector.
func (v Vector) Mag2() float64 {
	ret := 0.0
	for _, x := range v {
		ret += x * x
	}
	return ret
}

// Mag returns the magnitude of the vector.
func (v Vector) Mag() float64 {
	return math.Sqrt(v.Mag2())
}

// Dot returns the dot product of two vectors.
func (v Vector) Dot(o Vector) float64 {
	n := len(v)
	if len(o) < n {
		n = len(o)
	}
	ret := 0.0
	for i := 0; i < n; i++ {
		ret += v[i] * o[i]
	}
	return ret
}

// Add returns the componentwise sum of two vectors.
func (v Vector) Add(o Vector) Vector {
	n := len(v)
	if len(o) > n {
		n = len(o)
	}
	ret := make(Vector, n)
	for i := range ret {
		ret[i] = v.At(uint8(i)) + o.At(uint8(i))
	}
	return ret
}

// Sub returns the componentwise difference of two vectors.
func (v Vector) Sub(o Vector) Vector {
	n := len(v)
	if len(o) > n {
		n = len(o)
	}
	ret := make(Vector, n)
	for i := range ret {
		ret[i] = v.At(uint8(i)) - o.At(uint8(i))
	}
	return ret
}

// Neg returns the negated vector.
func (v Vector) Neg() Vector {
	ret := make(Vector, len(v))
	for i, x := range v {
		ret[i] = -x
	}
	return ret
}

// Scale returns the vector multiplied by s.
func (v Vector) Scale(s float64) Vector {
	ret := make(Vector, len(v))
	for i, x := range v {
		ret[i] = x * s
	}
	return ret
}

// Normalized returns the unit vector in the same direction, or false if the
// vector is approximately zero.
func (v Vector) Normalized() (Vector, bool) {
	recip, ok := tryRecip(v.Mag())
	if !ok {
		return nil, false
	}
	return v.Scale(recip), true
}

// IsZero reports whether every component is approximately zero.
func (v Vector) IsZero() bool {
	for _, x := range v {
		if !ApproxZero(x) {
			return false
		}
	}
	return true
}

// ApproxEq reports whether two vectors are approximately equal.
func (v Vector) ApproxEq(o Vector) bool {
	n := len(v)
	if len(o) > n {
		n = len(o)
	}
	for i := 0; i < n; i++ {
		if !ApproxEq(v.At(uint8(i)), o.At(uint8(i))) {
			return false
		}
	}
	return true
}

func (v Vector) String() string {
	var sb strings.Builder
	sb.WriteByte('[')
	for i, x := range v {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(strconv.FormatFloat(x, 'g', 4, 64))
	}
	sb.WriteByte(']')
	return sb.String()
}
