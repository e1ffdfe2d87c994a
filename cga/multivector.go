package cga

import (
	"math"
	"sort"
	"strconv"
	"strings"
)

// Multivector is a sum of terms of the conformal geometric algebra. Terms are
// stored sorted by their axes bitmask, with no two terms sharing the same
// basis blade. The zero value is the zero multivector.
//
// Multivectors are immutable: every operation returns a new value.
type Multivector struct {
	terms []Term
}

// NewMultivector builds a multivector from a list of terms, combining terms
// with the same basis blade.
func NewMultivector(terms ...Term) Multivector {
	var m Multivector
	for _, t := range terms {
		m = m.AddTerm(t)
	}
	return m
}

// ScalarMV returns a multivector with a single scalar term.
func ScalarMV(x float64) Multivector {
	return Multivector{terms: []Term{ScalarTerm(x)}}
}

// NO returns the null vector representing the point at the origin:
// nₒ = (e₋ - e₊)/2.
func NO() Multivector {
	return NewMultivector(
		Term{Coef: 0.5, Axes: AxesEMinus},
		Term{Coef: -0.5, Axes: AxesEPlus},
	)
}

// NI returns the null vector representing the point at infinity:
// ∞ = e₋ + e₊.
func NI() Multivector {
	return NewMultivector(
		Term{Coef: 1, Axes: AxesEMinus},
		Term{Coef: 1, Axes: AxesEPlus},
	)
}

// VectorMV returns the multivector with one term per nonzero component of v.
func VectorMV(v Vector) Multivector {
	var m Multivector
	for i, x := range v {
		if x != 0 {
			m = m.AddTerm(Term{Coef: x, Axes: EuclideanAxis(uint8(i))})
		}
	}
	return m
}

// Terms returns the terms of the multivector in canonical order. The caller
// must not modify the returned slice.
func (m Multivector) Terms() []Term {
	return m.terms
}

// At returns the coefficient of the given basis blade, or 0 if absent.
func (m Multivector) At(axes Axes) float64 {
	i := sort.Search(len(m.terms), func(i int) bool { return m.terms[i].Axes >= axes })
	if i < len(m.terms) && m.terms[i].Axes == axes {
		return m.terms[i].Coef
	}
	return 0
}

// Get returns the coefficient of the given basis blade and whether a term
// with that blade is present.
func (m Multivector) Get(axes Axes) (float64, bool) {
	i := sort.Search(len(m.terms), func(i int) bool { return m.terms[i].Axes >= axes })
	if i < len(m.terms) && m.terms[i].Axes == axes {
		return m.terms[i].Coef, true
	}
	return 0, false
}

// getNo returns the component of the multivector parallel to nₒ times the
// given Euclidean blade.
func (m Multivector) getNo(axes Axes) float64 {
	return m.At(axes|AxesEMinus) - m.At(axes|AxesEPlus)
}

// getNi returns the component of the multivector parallel to ∞ times the
// given Euclidean blade.
func (m Multivector) getNi(axes Axes) float64 {
	return (m.At(axes|AxesEMinus) + m.At(axes|AxesEPlus)) / 2
}

// IsZero reports whether every term is approximately zero.
func (m Multivector) IsZero() bool {
	for _, t := range m.terms {
		if !t.IsZero() {
			return false
		}
	}
	return true
}

// NDim returns the minimum number of Euclidean dimensions required to contain
// the multivector.
func (m Multivector) NDim() uint8 {
	if len(m.terms) == 0 {
		return 0
	}
	// Terms are sorted by axes, so the last term has the highest axis.
	return m.terms[len(m.terms)-1].Axes.MinEuclideanNDim()
}

// Neg returns the negated multivector.
func (m Multivector) Neg() Multivector {
	terms := make([]Term, len(m.terms))
	for i, t := range m.terms {
		terms[i] = t.Neg()
	}
	return Multivector{terms: terms}
}

// Scale returns the multivector with every coefficient multiplied by s.
func (m Multivector) Scale(s float64) Multivector {
	terms := make([]Term, len(m.terms))
	for i, t := range m.terms {
		terms[i] = t.Scale(s)
	}
	return Multivector{terms: terms}
}

// AddTerm returns the sum of the multivector and a single term.
func (m Multivector) AddTerm(t Term) Multivector {
	i := sort.Search(len(m.terms), func(i int) bool { return m.terms[i].Axes >= t.Axes })
	if i < len(m.terms) && m.terms[i].Axes == t.Axes {
		coef := m.terms[i].Coef + t.Coef
		terms := make([]Term, 0, len(m.terms))
		terms = append(terms, m.terms[:i]...)
		if coef != 0 {
			terms = append(terms, Term{Coef: coef, Axes: t.Axes})
		}
		terms = append(terms, m.terms[i+1:]...)
		return Multivector{terms: terms}
	}
	if t.Coef == 0 {
		return m
	}
	terms := make([]Term, 0, len(m.terms)+1)
	terms = append(terms, m.terms[:i]...)
	terms = append(terms, t)
	terms = append(terms, m.terms[i:]...)
	return Multivector{terms: terms}
}

// Add returns the sum of two multivectors.
func (m Multivector) Add(o Multivector) Multivector {
	ret := m
	for _, t := range o.terms {
		ret = ret.AddTerm(t)
	}
	return ret
}

// Sub returns the difference of two multivectors.
func (m Multivector) Sub(o Multivector) Multivector {
	ret := m
	for _, t := range o.terms {
		ret = ret.AddTerm(t.Neg())
	}
	return ret
}

// Mul returns the geometric product of two multivectors.
func (m Multivector) Mul(o Multivector) Multivector {
	var ret Multivector
	for _, a := range m.terms {
		for _, b := range o.terms {
			ret = ret.AddTerm(a.Mul(b))
		}
	}
	return ret
}

// Wedge returns the outer product of two multivectors.
func (m Multivector) Wedge(o Multivector) Multivector {
	var ret Multivector
	for _, a := range m.terms {
		for _, b := range o.terms {
			if t, ok := a.Wedge(b); ok {
				ret = ret.AddTerm(t)
			}
		}
	}
	return ret
}

// LeftContract returns the left contraction m ⌋ o.
func (m Multivector) LeftContract(o Multivector) Multivector {
	var ret Multivector
	for _, a := range m.terms {
		for _, b := range o.terms {
			if t, ok := a.LeftContract(b); ok {
				ret = ret.AddTerm(t)
			}
		}
	}
	return ret
}

// Reverse returns the multivector with the basis vectors of every term
// written in reverse order.
func (m Multivector) Reverse() Multivector {
	terms := make([]Term, len(m.terms))
	for i, t := range m.terms {
		terms[i] = t.Reverse()
	}
	return Multivector{terms: terms}
}

// Inverse returns the multiplicative inverse of the multivector, or false if
// it has none.
func (m Multivector) Inverse() (Multivector, bool) {
	rev := m.Reverse()
	recip, ok := tryRecip(m.Dot(rev))
	if !ok {
		return Multivector{}, false
	}
	return rev.Scale(recip), true
}

// Dot returns the scalar product of two multivectors.
func (m Multivector) Dot(o Multivector) float64 {
	ret := 0.0
	i, j := 0, 0
	for i < len(m.terms) && j < len(o.terms) {
		a, b := m.terms[i], o.terms[j]
		switch {
		case a.Axes < b.Axes:
			i++
		case a.Axes > b.Axes:
			j++
		default:
			ret += a.Mul(b).Coef
			i++
			j++
		}
	}
	return ret
}

// Sandwich returns the sandwich product m · o · rev(m).
func (m Multivector) Sandwich(o Multivector) Multivector {
	return m.Mul(o).Mul(m.Reverse())
}

// MostSignificantTerm returns the term with the greatest absolute
// coefficient, or a scalar zero term if the multivector is zero.
func (m Multivector) MostSignificantTerm() Term {
	best := ScalarTerm(0)
	bestAbs := math.Inf(-1)
	for _, t := range m.terms {
		if abs := math.Abs(t.Coef); abs > bestAbs {
			best = t
			bestAbs = abs
		}
	}
	return best
}

// FirstNonzeroTerm returns the first term (in canonical axis order) whose
// coefficient is not approximately zero.
func (m Multivector) FirstNonzeroTerm() (Term, bool) {
	for _, t := range m.terms {
		if !t.IsZero() {
			return t, true
		}
	}
	return Term{}, false
}

// filterTerms returns a multivector containing only the terms for which keep
// returns true.
func (m Multivector) filterTerms(keep func(Term) bool) Multivector {
	var terms []Term
	for _, t := range m.terms {
		if keep(t) {
			terms = append(terms, t)
		}
	}
	return Multivector{terms: terms}
}

// String renders the multivector in terms of nₒ, ∞, and the Minkowski plane
// E, which reads better than raw e₋/e₊ coefficients.
func (m Multivector) String() string {
	var parts []string
	seen := map[Axes]bool{}
	for _, term := range m.terms {
		axes := term.Axes &^ AxesEPlane
		if seen[axes] {
			continue
		}
		seen[axes] = true
		for _, c := range []struct {
			prefix string
			coef   float64
		}{
			{"", m.At(axes)},
			{"no", m.getNo(axes)},
			{"ni", m.getNi(axes)},
			// E = ∞∧nₒ = -e₋e₊
			{"E", -m.At(axes | AxesEPlane)},
		} {
			if ApproxZero(c.coef) {
				continue
			}
			s := strconv.FormatFloat(c.coef, 'g', 4, 64)
			if c.prefix != "" || axes != AxesScalar {
				s += " " + c.prefix + axes.String()
			}
			parts = append(parts, s)
		}
	}
	if len(parts) == 0 {
		return "0"
	}
	return strings.Join(parts, " + ")
}
