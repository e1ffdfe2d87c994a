package cga

import (
	"fmt"
	"strconv"
)

// Term is a single term of a multivector: a real coefficient times a basis
// blade. Terms are mostly constructed transiently during products.
type Term struct {
	// Coef is the real coefficient.
	Coef float64
	// Axes is the basis blade, as a bitmask of basis vectors.
	Axes Axes
}

// ScalarTerm returns a term with no basis vectors.
func ScalarTerm(x float64) Term {
	return Term{Coef: x, Axes: AxesScalar}
}

// UnitTerm returns a term with coefficient 1.
func UnitTerm(axes Axes) Term {
	return Term{Coef: 1, Axes: axes}
}

// PseudoscalarTerm returns the unit pseudoscalar of the conformal algebra
// over ndim Euclidean dimensions.
func PseudoscalarTerm(ndim uint8) Term {
	return UnitTerm(pseudoscalarAxes(ndim))
}

// InversePseudoscalarTerm returns the multiplicative inverse of the unit
// pseudoscalar over ndim Euclidean dimensions.
func InversePseudoscalarTerm(ndim uint8) Term {
	ps := PseudoscalarTerm(ndim)
	rev := ps.Reverse()
	// ps · rev(ps) is ±1 for a unit basis blade.
	return rev.Scale(1 / ps.Mul(rev).Coef)
}

// Grade returns the number of basis vectors in the term.
func (t Term) Grade() uint8 {
	return t.Axes.Grade()
}

// IsZero reports whether the coefficient is approximately zero.
func (t Term) IsZero() bool {
	return ApproxZero(t.Coef)
}

// Neg returns the term with its coefficient negated.
func (t Term) Neg() Term {
	t.Coef = -t.Coef
	return t
}

// Scale returns the term with its coefficient multiplied by s.
func (t Term) Scale(s float64) Term {
	t.Coef *= s
	return t
}

// Reverse returns the term with its basis vectors written in reverse order,
// which in practice just flips the sign for some grades.
func (t Term) Reverse() Term {
	t.Coef *= t.Axes.signOfReverse()
	return t
}

// Mul returns the geometric product of two terms. Shared basis vectors
// square to their metric: e₋² = -1, everything else squares to +1.
func (t Term) Mul(o Term) Term {
	sign := reorderSign(t.Axes, o.Axes)
	if t.Axes&o.Axes&AxesEMinus != 0 {
		sign = -sign
	}
	return Term{
		Coef: t.Coef * o.Coef * sign,
		Axes: t.Axes ^ o.Axes,
	}
}

// Wedge returns the outer product of two terms, or false if it is
// structurally zero (the terms share a basis vector).
func (t Term) Wedge(o Term) (Term, bool) {
	if t.Axes&o.Axes != 0 {
		return Term{}, false
	}
	return t.Mul(o), true
}

// LeftContract returns the left contraction t ⌋ o, or false if it is
// structurally zero (t has a basis vector that o lacks).
func (t Term) LeftContract(o Term) (Term, bool) {
	if o.Axes&t.Axes != t.Axes {
		return Term{}, false
	}
	return t.Mul(o), true
}

func (t Term) String() string {
	return fmt.Sprintf("%s %s", strconv.FormatFloat(t.Coef, 'g', -1, 64), t.Axes)
}
