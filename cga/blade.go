package cga

// PointWhichSide locates a point relative to an IPNS hypersphere or
// hyperplane.
type PointWhichSide uint8

const (
	PointOn PointWhichSide = iota
	PointInside
	PointOutside
)

func (w PointWhichSide) String() string {
	switch w {
	case PointOn:
		return "on"
	case PointInside:
		return "inside"
	case PointOutside:
		return "outside"
	default:
		return "unknown"
	}
}

// Blade is a multivector whose terms all have the same grade. Blades
// represent geometric objects in either OPNS (outer product null space) or
// IPNS (inner product null space) form; the interpretation is up to the
// caller. The zero value is the zero blade.
type Blade struct {
	mv Multivector
}

// gradeProjectFrom keeps only the terms of m with the given grade, discarding
// exact zeros.
func gradeProjectFrom(m Multivector, grade uint8) Blade {
	return Blade{mv: m.filterTerms(func(t Term) bool {
		return t.Grade() == grade && t.Coef != 0
	})}
}

// BladeFromMV wraps a multivector as a blade. Returns false if the terms do
// not all share one grade.
func BladeFromMV(m Multivector) (Blade, bool) {
	terms := m.Terms()
	for _, t := range terms {
		if t.Grade() != terms[0].Grade() {
			return Blade{}, false
		}
	}
	return Blade{mv: m}, true
}

// ScalarBlade returns a grade-0 blade.
func ScalarBlade(s float64) Blade {
	return gradeProjectFrom(ScalarMV(s), 0)
}

// Pseudoscalar returns the unit pseudoscalar for a space with the given
// number of Euclidean dimensions. This is the OPNS blade representing the
// whole space.
func Pseudoscalar(ndim uint8) Blade {
	return Blade{mv: NewMultivector(PseudoscalarTerm(ndim))}
}

// InversePseudoscalar returns the inverse of the unit pseudoscalar for a
// space with the given number of Euclidean dimensions.
func InversePseudoscalar(ndim uint8) Blade {
	return Blade{mv: NewMultivector(InversePseudoscalarTerm(ndim))}
}

// VectorBlade returns the grade-1 blade with the components of v.
func VectorBlade(v Vector) Blade {
	return Blade{mv: VectorMV(v)}
}

// NOBlade returns nₒ, the null vector representing the point at the origin.
func NOBlade() Blade {
	return Blade{mv: NO()}
}

// NIBlade returns ∞, the null vector representing the point at infinity.
func NIBlade() Blade {
	return Blade{mv: NI()}
}

// PointBlade returns the normalized OPNS blade representing a point:
// p + nₒ + ½|p|² ∞.
func PointBlade(p Vector) Blade {
	mv := VectorMV(p).Add(NO()).Add(NI().Scale(p.Mag2() / 2))
	return gradeProjectFrom(mv, 1)
}

// FlatPointBlade returns the OPNS blade representing the pair of p and the
// point at infinity.
func FlatPointBlade(p Vector) Blade {
	return PointBlade(p).Wedge(NIBlade())
}

// IPNSSphere returns the IPNS blade representing a hypersphere. A negative
// radius constructs an "inside-out" sphere.
func IPNSSphere(center Vector, radius float64) Blade {
	mv := PointBlade(center).mv.Sub(NI().Scale(radius * radius / 2))
	if radius < 0 {
		mv = mv.Neg()
	}
	return gradeProjectFrom(mv, 1)
}

// IPNSPlane returns the IPNS blade representing a hyperplane with the given
// normal vector at the given distance from the origin. If distance is
// positive then the origin is inside. Returns the zero blade if the normal
// vector is approximately zero.
func IPNSPlane(normal Vector, distance float64) Blade {
	unit, ok := normal.Normalized()
	if !ok {
		return Blade{}
	}
	// Negate so that the origin is inside.
	mv := VectorMV(unit).Neg().Sub(NI().Scale(distance))
	return gradeProjectFrom(mv, 1)
}

// MV returns the underlying multivector.
func (b Blade) MV() Multivector {
	return b.mv
}

// IsZero reports whether the blade approximately equals zero.
func (b Blade) IsZero() bool {
	return b.mv.IsZero()
}

// IsDegenerate reports whether the blade is zero or represents an object
// with zero radius.
func (b Blade) IsDegenerate() bool {
	return ApproxZero(b.mag2())
}

// Grade returns the number of basis vectors in each term, or 0 if the blade
// is degenerate.
func (b Blade) Grade() uint8 {
	if t, ok := b.mv.FirstNonzeroTerm(); ok {
		return t.Grade()
	}
	return 0
}

// NDim returns the minimum number of Euclidean dimensions of the space
// containing the object represented by the blade.
func (b Blade) NDim() uint8 {
	return b.mv.NDim()
}

// Neg returns the negated blade.
func (b Blade) Neg() Blade {
	return Blade{mv: b.mv.Neg()}
}

// Scale returns the blade multiplied by s.
func (b Blade) Scale(s float64) Blade {
	return Blade{mv: b.mv.Scale(s)}
}

// Reverse returns the blade with the basis vectors of every term written in
// reverse order.
func (b Blade) Reverse() Blade {
	return Blade{mv: b.mv.Reverse()}
}

// Inverse returns the multiplicative inverse of the blade, or false if it
// has none.
func (b Blade) Inverse() (Blade, bool) {
	mv, ok := b.mv.Inverse()
	if !ok {
		return Blade{}, false
	}
	return Blade{mv: mv}, true
}

// Wedge returns the outer product of two blades.
func (b Blade) Wedge(o Blade) Blade {
	return Blade{mv: b.mv.Wedge(o.mv)}
}

// LeftContract returns the left contraction b ⌋ o.
func (b Blade) LeftContract(o Blade) Blade {
	return Blade{mv: b.mv.LeftContract(o.mv)}
}

// Dot returns the scalar product of two blades.
func (b Blade) Dot(o Blade) float64 {
	return b.mv.Dot(o.mv)
}

// OpnsToIpns converts an OPNS blade to an IPNS blade, given the number of
// dimensions of the whole space.
func (b Blade) OpnsToIpns(ndim uint8) Blade {
	return b.LeftContract(InversePseudoscalar(ndim))
}

// IpnsToOpns converts an IPNS blade to an OPNS blade, given the number of
// dimensions of the whole space.
func (b Blade) IpnsToOpns(ndim uint8) Blade {
	return b.LeftContract(Pseudoscalar(ndim))
}

// OpnsToIpnsIn converts an OPNS blade to an IPNS blade, given an OPNS blade
// representing the space it inhabits. Returns zero if the space blade cannot
// be inverted.
func (b Blade) OpnsToIpnsIn(opnsSpace Blade) Blade {
	inv, ok := opnsSpace.Inverse()
	if !ok {
		return Blade{}
	}
	return b.LeftContract(inv)
}

// IpnsToOpnsIn converts an IPNS blade to an OPNS blade, given an OPNS blade
// representing the space it inhabits.
func (b Blade) IpnsToOpnsIn(opnsSpace Blade) Blade {
	return b.LeftContract(opnsSpace)
}

// MeetIn returns the meet of two OPNS blades, given an OPNS blade
// representing the space they inhabit. This is the dual of the wedge
// operator.
func MeetIn(a, b, opnsSpace Blade) Blade {
	aIpns := a.OpnsToIpnsIn(opnsSpace)
	bIpns := b.OpnsToIpnsIn(opnsSpace)
	return aIpns.Wedge(bIpns).IpnsToOpnsIn(opnsSpace)
}

// OpnsIsFlat reports whether an OPNS hypersphere or hyperplane is flat.
// Hyperplanes contain the point at infinity while hyperspheres do not.
func (b Blade) OpnsIsFlat() bool {
	return b.Wedge(NIBlade()).IsZero()
}

// IpnsIsFlat reports whether an IPNS hypersphere or hyperplane is flat.
func (b Blade) IpnsIsFlat() bool {
	return NIBlade().LeftContract(b).IsZero()
}

// IPNSQueryPoint reports whether a point is inside, outside, or on an IPNS
// hypersphere or hyperplane.
func (b Blade) IPNSQueryPoint(p Vector) PointWhichSide {
	return b.IPNSQueryPointBlade(PointBlade(p))
}

// IPNSQueryPointBlade is like IPNSQueryPoint but takes an OPNS point blade.
func (b Blade) IPNSQueryPointBlade(point Blade) PointWhichSide {
	if point.mv.At(AxesEMinus) < 0 {
		point = point.Neg() // Normalize sign.
	}
	dot := b.Dot(point)
	switch {
	case ApproxNegative(dot):
		return PointOutside
	case ApproxPositive(dot):
		return PointInside
	default:
		return PointOn
	}
}

// OpnsContainsPoint reports whether a point lies on an OPNS manifold.
func (b Blade) OpnsContainsPoint(point Blade) bool {
	return b.Wedge(point).IsZero()
}

// Ni returns the ∞ component of a 1-blade.
func (b Blade) Ni() float64 {
	return b.mv.getNi(AxesScalar)
}

// No returns the nₒ component of a 1-blade.
func (b Blade) No() float64 {
	return b.mv.getNo(AxesScalar)
}

// IpnsIsReal reports whether the object represented by an IPNS blade is real
// (has positive magnitude).
func (b Blade) IpnsIsReal() bool {
	return ApproxPositive(b.ipnsMag2())
}

// IpnsIsImaginary reports whether the object represented by an IPNS blade is
// imaginary (has negative magnitude).
func (b Blade) IpnsIsImaginary() bool {
	return ApproxNegative(b.ipnsMag2())
}

// OpnsIsReal reports whether the object represented by an OPNS blade is real.
func (b Blade) OpnsIsReal() bool {
	return ApproxPositive(b.opnsMag2())
}

// OpnsIsImaginary reports whether the object represented by an OPNS blade is
// imaginary.
func (b Blade) OpnsIsImaginary() bool {
	return ApproxNegative(b.opnsMag2())
}

// IPNSRadius returns the radius of the hypersphere represented by an IPNS
// 1-blade, or false if the object is flat or imaginary. The radius is
// negative for inside-out spheres.
func (b Blade) IPNSRadius() (float64, bool) {
	if b.IpnsIsFlat() {
		return 0, false
	}
	mag, ok := trySqrt(b.mag2())
	if !ok {
		return 0, false
	}
	recip, ok := tryRecip(b.No())
	if !ok {
		return 0, false
	}
	return mag * recip, true
}

// IPNSSphereCenter returns the point at the center of the hypersphere
// represented by an IPNS 1-blade.
func (b Blade) IPNSSphereCenter() Point {
	return b.ToPoint()
}

// IPNSPlaneDistance returns the distance from the origin to the closest
// point on the hyperplane represented by an IPNS 1-blade. The distance is
// negative if the plane's normal vector faces toward the origin. Returns
// false if the object is a hypersphere centered at the origin.
func (b Blade) IPNSPlaneDistance() (float64, bool) {
	recip, ok := tryRecip(b.ToVector().Mag())
	if !ok {
		return 0, false
	}
	return -b.Ni() * recip, true
}

// IPNSPlanePole returns the vector from the origin to the closest point on
// the hyperplane represented by an IPNS 1-blade.
func (b Blade) IPNSPlanePole() Vector {
	v := b.ToVector()
	recip, ok := tryRecip(v.Mag2())
	if !ok {
		return nil
	}
	return v.Scale(b.Ni() * recip)
}

// IPNSPlaneNormal returns the normal vector of the hyperplane represented by
// an IPNS 1-blade, or false if it has none.
func (b Blade) IPNSPlaneNormal() (Vector, bool) {
	return b.ToVector().Neg().Normalized()
}

// ToVector returns the Euclidean components of a 1-blade.
func (b Blade) ToVector() Vector {
	ndim := b.NDim()
	v := make(Vector, ndim)
	for i := uint8(0); i < ndim; i++ {
		v[i] = b.mv.At(EuclideanAxis(i))
	}
	return v
}

// ToPoint converts a 1-blade to a point.
func (b Blade) ToPoint() Point {
	if b.IsZero() {
		return Point{}
	}
	recip, ok := tryRecip(b.No())
	if !ok {
		return Infinity
	}
	return FinitePoint(b.ToVector().Scale(recip))
}

// FlatPointToPoint converts an OPNS flat point (a point pair containing the
// point at infinity) to a point.
func (b Blade) FlatPointToPoint() Point {
	if b.IsZero() {
		return Point{}
	}
	return NOBlade().LeftContract(b).ToPoint()
}

// PointPairToPoints factors an OPNS point pair into two points. Returns
// false if the point pair is degenerate or imaginary.
func (b Blade) PointPairToPoints() (Point, Point, bool) {
	if b.IsZero() {
		return Point{}, Point{}, false
	}
	if b.OpnsIsFlat() {
		finitePoint := b.FlatPointToPoint()
		if b.mv.At(AxesEPlane) < 0 {
			return Infinity, finitePoint, true
		}
		return finitePoint, Infinity, true
	}
	mag, ok := trySqrt(b.mag2())
	if !ok {
		return Point{}, Point{}, false
	}
	multiplier, ok := NIBlade().LeftContract(b).Inverse()
	if !ok {
		return Point{}, Point{}, false
	}
	radius := ScalarMV(mag)
	// These aren't actually valid blades, but ToPoint only looks at the
	// grade-1 part.
	p1 := Blade{mv: b.mv.Sub(radius).Mul(multiplier.mv)}.ToPoint()
	p2 := Blade{mv: b.mv.Add(radius).Mul(multiplier.mv)}.ToPoint()
	return p1, p2, true
}

// opnsMag2 returns a squared magnitude of an OPNS blade that is negative iff
// the object is imaginary.
func (b Blade) opnsMag2() float64 {
	return -b.ipnsMag2()
}

// ipnsMag2 returns a squared magnitude of an IPNS blade that is negative iff
// the object is imaginary.
func (b Blade) ipnsMag2() float64 {
	switch b.Grade() % 4 {
	case 0, 1:
		return b.mag2()
	default:
		return -b.mag2()
	}
}

// AbsMag2 returns the absolute value of the squared magnitude of the blade.
func (b Blade) AbsMag2() float64 {
	m := b.mag2()
	if m < 0 {
		return -m
	}
	return m
}

func (b Blade) mag2() float64 {
	return b.Dot(b)
}

func (b Blade) String() string {
	return b.mv.String()
}
