// Package cga implements the conformal geometric algebra primitives used by
// the polytope engine.
//
// Objects such as points, hyperplanes, and hyperspheres are represented as
// blades: multivectors of a single grade. A blade is either in OPNS (outer
// product null space) form, where its wedge product with a point is zero iff
// the point is on the object, or in IPNS (inner product null space) form,
// where its dot product with a point is zero iff the point is on the object.
// OPNS form is easy to construct by wedging points together; IPNS form makes
// inside/outside queries cheap. Conversion between the two is contraction by
// the pseudoscalar of the containing space.
//
// The two extra basis vectors of the conformal model are e₋ (squares to -1)
// and e₊ (squares to +1); the null vectors nₒ (the origin) and ∞ (the point at
// infinity) are linear combinations of them.
//
// All comparisons against zero are approximate, within Epsilon, because every
// value in this package is the result of a chain of floating-point products.
package cga
