package space

import (
	"fmt"
	"math"

	"github.com/hyperfold/polycut/cga"
)

// ManifoldData is a memoized unoriented manifold: a hypersphere or
// hyperplane represented by a canonicalized OPNS blade, or a point pair for
// 0-dimensional manifolds.
type ManifoldData struct {
	// NDim is the dimensionality of the manifold itself, not the space it
	// lives in. A point pair is 0-dimensional.
	NDim uint8
	// Blade is the canonicalized OPNS blade representing the manifold.
	Blade cga.Blade
}

// newManifoldData wraps a canonicalized blade. A blade of grade g represents
// a (g-2)-dimensional manifold.
func newManifoldData(blade cga.Blade) (ManifoldData, error) {
	grade := blade.Grade()
	if grade < 2 {
		return ManifoldData{}, fmt.Errorf("%w: blade %v of grade %d is not a manifold", ErrDegenerate, blade, grade)
	}
	return ManifoldData{NDim: grade - 2, Blade: blade}, nil
}

func (m ManifoldData) String() string {
	if m.NDim == 0 {
		if a, b, ok := m.Blade.PointPairToPoints(); ok {
			return fmt.Sprintf("point pair %v..%v", a, b)
		}
	}
	return fmt.Sprintf("%dD manifold %v", m.NDim, m.Blade)
}

// canonicalizeBlade normalizes a blade to a canonical scale and sign,
// returning the sign difference between the blade and its canonical form.
// Scale is fixed by the most significant term and sign by the first nonzero
// term, both of which are robust against small float variations.
func canonicalizeBlade(blade cga.Blade) (cga.Blade, Sign, error) {
	scale := 1 / math.Abs(blade.MV().MostSignificantTerm().Coef)
	first, ok := blade.MV().FirstNonzeroTerm()
	if !ok {
		return cga.Blade{}, 0, fmt.Errorf("%w: zero blade is not a manifold", ErrDegenerate)
	}
	sign := SignOf(first.Coef)
	return blade.Scale(scale * sign.Float()), sign, nil
}
