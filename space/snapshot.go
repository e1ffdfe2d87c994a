package space

import (
	"errors"
	"fmt"

	"github.com/hyperfold/polycut/cga"
	"github.com/hyperfold/polycut/intern"
)

// ErrSnapshot is returned when a snapshot cannot be restored.
var ErrSnapshot = errors.New("space: invalid snapshot")

// Snapshot is the serializable state of a Space. IDs are preserved across a
// snapshot and restore round trip, so external references into the space
// stay valid. Memoization caches are not part of the snapshot; they are
// rebuilt lazily.
type Snapshot struct {
	NDim       uint8
	Manifolds  []BladeState
	Polytopes  []PolytopeState
	Isometries []BladeState
}

// BladeState is a serialized multivector: one entry per term.
type BladeState struct {
	Axes  []uint32
	Coefs []float64
}

// PolytopeState is a serialized atomic polytope.
type PolytopeState struct {
	Manifold uint32
	Boundary []BoundaryState
}

// BoundaryState is one signed element of a polytope boundary.
type BoundaryState struct {
	ID       uint32
	Negative bool
}

func bladeState(m cga.Multivector) BladeState {
	terms := m.Terms()
	state := BladeState{
		Axes:  make([]uint32, len(terms)),
		Coefs: make([]float64, len(terms)),
	}
	for i, t := range terms {
		state.Axes[i] = uint32(t.Axes)
		state.Coefs[i] = t.Coef
	}
	return state
}

func (b BladeState) multivector() (cga.Multivector, error) {
	if len(b.Axes) != len(b.Coefs) {
		return cga.Multivector{}, fmt.Errorf("%w: term axes and coefficients differ in length", ErrSnapshot)
	}
	terms := make([]cga.Term, len(b.Axes))
	for i := range b.Axes {
		terms[i] = cga.Term{Coef: b.Coefs[i], Axes: cga.Axes(b.Axes[i])}
	}
	return cga.NewMultivector(terms...), nil
}

// Snapshot captures the current state of the space.
func (s *Space) Snapshot() *Snapshot {
	snap := &Snapshot{NDim: s.NDim()}

	for _, m := range s.manifolds.Items() {
		snap.Manifolds = append(snap.Manifolds, bladeState(m.Blade.MV()))
	}
	for _, p := range s.polytopes.Items() {
		state := PolytopeState{Manifold: uint32(p.Manifold)}
		for _, ref := range p.Boundary.Refs() {
			state.Boundary = append(state.Boundary, BoundaryState{
				ID:       uint32(ref.ID),
				Negative: ref.Sign == Neg,
			})
		}
		snap.Polytopes = append(snap.Polytopes, state)
	}
	for _, iso := range s.isometries.Items() {
		snap.Isometries = append(snap.Isometries, bladeState(iso.MV()))
	}

	return snap
}

// FromSnapshot reconstructs a space from a snapshot, preserving all IDs.
func FromSnapshot(snap *Snapshot, opts ...Option) (*Space, error) {
	if snap.NDim < 1 || snap.NDim > cga.MaxNDim {
		return nil, fmt.Errorf("%w: bad dimension %d", ErrSnapshot, snap.NDim)
	}
	if len(snap.Manifolds) == 0 || len(snap.Polytopes) == 0 {
		return nil, fmt.Errorf("%w: missing covering manifold or polytope", ErrSnapshot)
	}

	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	s := &Space{
		manifolds:  intern.NewTable(cga.Epsilon, manifoldKey),
		polytopes:  intern.NewTable(cga.Epsilon, polytopeKey),
		isometries: intern.NewTable(cga.Epsilon, isometryKey),

		transformReverseCache:     map[IsometryID]IsometryID{},
		transformCompositionCache: map[isometryPair]IsometryID{},
		manifoldTransformCache:    map[isometryManifoldKey]ManifoldRef{},
		polytopeWhichSideCache:    map[whichSideKey]WhichSide{},

		logger: o.logger,
		checks: o.checks,
	}

	for i, state := range snap.Manifolds {
		mv, err := state.multivector()
		if err != nil {
			return nil, err
		}
		blade, ok := cga.BladeFromMV(mv)
		if !ok {
			return nil, fmt.Errorf("%w: manifold %d has mixed grades", ErrSnapshot, i)
		}
		data, err := newManifoldData(blade)
		if err != nil {
			return nil, fmt.Errorf("%w: manifold %d: %v", ErrSnapshot, i, err)
		}
		id, existed := s.manifolds.GetOrInsert(data)
		if existed || id != uint32(i) {
			return nil, fmt.Errorf("%w: manifold %d interned as %d", ErrSnapshot, i, id)
		}
	}

	for i, state := range snap.Polytopes {
		if int(state.Manifold) >= s.manifolds.Len() {
			return nil, fmt.Errorf("%w: polytope %d references unknown manifold %d", ErrSnapshot, i, state.Manifold)
		}
		data := AtomicPolytope{Manifold: ManifoldID(state.Manifold)}
		for _, b := range state.Boundary {
			if int(b.ID) >= i {
				return nil, fmt.Errorf("%w: polytope %d references later polytope %d", ErrSnapshot, i, b.ID)
			}
			sign := Pos
			if b.Negative {
				sign = Neg
			}
			data.Boundary.Insert(PolytopeRef{ID: PolytopeID(b.ID), Sign: sign})
		}
		id, existed := s.polytopes.GetOrInsert(data)
		if existed || id != uint32(i) {
			return nil, fmt.Errorf("%w: polytope %d interned as %d", ErrSnapshot, i, id)
		}
	}

	for i, state := range snap.Isometries {
		mv, err := state.multivector()
		if err != nil {
			return nil, err
		}
		id, existed := s.isometries.GetOrInsert(cga.IsometryFromMV(mv))
		if existed || id != uint32(i) {
			return nil, fmt.Errorf("%w: isometry %d interned as %d", ErrSnapshot, i, id)
		}
	}

	s.coveringManifold = 0
	s.coveringPolytope = 0
	if s.ManifoldAt(s.coveringManifold).NDim != snap.NDim {
		return nil, fmt.Errorf("%w: covering manifold is not %dD", ErrSnapshot, snap.NDim)
	}
	if !s.PolytopeAt(s.coveringPolytope).Boundary.IsEmpty() {
		return nil, fmt.Errorf("%w: covering polytope has a boundary", ErrSnapshot)
	}

	return s, nil
}
