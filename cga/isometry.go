package cga

// Isometry is a rotation or reflection of Euclidean space, represented by a
// versor of the conformal geometric algebra. The zero value is not valid;
// use IdentityIsometry.
type Isometry struct {
	mv Multivector
}

// IdentityIsometry returns the identity isometry.
func IdentityIsometry() Isometry {
	return Isometry{mv: ScalarMV(1)}
}

// IsometryFromMV constructs an isometry from a versor multivector without
// normalizing it. The caller is responsible for ensuring the multivector is
// a versor.
func IsometryFromMV(m Multivector) Isometry {
	return Isometry{mv: m}
}

// VectorProductIsometry returns the isometry that performs a reflection
// through a, followed by a reflection through b. If a and b are unit
// vectors, this is a rotation taking a to b, doubled. Returns false if
// either vector is approximately zero.
func VectorProductIsometry(a, b Vector) (Isometry, bool) {
	ua, ok := a.Normalized()
	if !ok {
		return Isometry{}, false
	}
	ub, ok := b.Normalized()
	if !ok {
		return Isometry{}, false
	}
	return Isometry{mv: VectorMV(ub).Mul(VectorMV(ua))}, true
}

// RotationIsometry returns the rotation taking the direction of a to the
// direction of b, or false if either vector is approximately zero or the
// vectors are opposite.
func RotationIsometry(a, b Vector) (Isometry, bool) {
	ua, ok := a.Normalized()
	if !ok {
		return Isometry{}, false
	}
	ub, ok := b.Normalized()
	if !ok {
		return Isometry{}, false
	}
	// Rotating from a to the midpoint of a and b gives half the rotation
	// from a to b, and the vector product doubles it.
	return VectorProductIsometry(ua, ua.Add(ub))
}

// ReflectionIsometry returns the reflection through the hyperplane with the
// given normal vector, or false if the normal is approximately zero.
func ReflectionIsometry(normal Vector) (Isometry, bool) {
	unit, ok := normal.Normalized()
	if !ok {
		return Isometry{}, false
	}
	return Isometry{mv: VectorMV(unit)}, true
}

// MV returns the underlying versor multivector.
func (i Isometry) MV() Multivector {
	return i.mv
}

// Reverse returns the inverse of a normalized isometry.
func (i Isometry) Reverse() Isometry {
	return Isometry{mv: i.mv.Reverse()}
}

// Compose returns the isometry equivalent to applying o first and then i.
func (i Isometry) Compose(o Isometry) Isometry {
	return Isometry{mv: i.mv.Mul(o.mv)}
}

// TransformBlade applies the isometry to a blade.
func (i Isometry) TransformBlade(b Blade) Blade {
	sandwiched := i.mv.Mul(b.MV()).Mul(i.mv.Reverse())
	return gradeProjectFrom(sandwiched, b.Grade())
}

// TransformVector applies the isometry to a Euclidean vector.
func (i Isometry) TransformVector(v Vector) Vector {
	return i.TransformBlade(VectorBlade(v)).ToVector()
}

func (i Isometry) String() string {
	return i.mv.String()
}
