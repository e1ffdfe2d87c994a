package space

import "fmt"

// AtomicPolytope is a memoized unoriented atomic polytope: an N-dimensional
// manifold restricted to the intersection of the insides of the oriented
// (N-1)-dimensional polytopes that bound it. A polytope with an empty
// boundary covers its whole manifold.
type AtomicPolytope struct {
	// Manifold is the manifold the polytope lives on.
	Manifold ManifoldID
	// Boundary is the set of oriented polytopes bounding this one, with
	// signs relative to the positive orientation of Manifold.
	Boundary PolytopeSet
}

// wholeManifold returns the boundaryless polytope covering a manifold.
func wholeManifold(manifold ManifoldID) AtomicPolytope {
	return AtomicPolytope{Manifold: manifold}
}

// Equal reports whether two polytopes have the same manifold and boundary.
func (p AtomicPolytope) Equal(o AtomicPolytope) bool {
	return p.Manifold == o.Manifold && p.Boundary.Equal(o.Boundary)
}

func (p AtomicPolytope) String() string {
	return fmt.Sprintf("{manifold: %v, boundary: %v}", p.Manifold, p.Boundary)
}
