package space

import (
	"sort"
	"strconv"
)

// ManifoldID identifies a memoized unoriented manifold in a Space.
type ManifoldID uint32

// PolytopeID identifies a memoized unoriented atomic polytope in a Space.
type PolytopeID uint32

// IsometryID identifies a memoized isometry in a Space.
type IsometryID uint32

func (id ManifoldID) String() string { return "M" + strconv.FormatUint(uint64(id), 10) }
func (id PolytopeID) String() string { return "P" + strconv.FormatUint(uint64(id), 10) }
func (id IsometryID) String() string { return "T" + strconv.FormatUint(uint64(id), 10) }

// Sign is an orientation: +1 or -1. The zero value marks an absent reference.
type Sign int8

const (
	Pos Sign = 1
	Neg Sign = -1
)

// SignOf returns Pos for non-negative x and Neg otherwise.
func SignOf(x float64) Sign {
	if x < 0 {
		return Neg
	}
	return Pos
}

// Mul returns the product of two signs.
func (s Sign) Mul(o Sign) Sign {
	return s * o
}

// Float returns the sign as +1.0 or -1.0.
func (s Sign) Float() float64 {
	return float64(s)
}

func (s Sign) String() string {
	switch s {
	case Pos:
		return "+"
	case Neg:
		return "-"
	default:
		return "?"
	}
}

// ManifoldRef is a reference to an oriented manifold in a Space.
type ManifoldRef struct {
	ID   ManifoldID
	Sign Sign
}

// NewManifoldRef returns a positively oriented reference to id.
func NewManifoldRef(id ManifoldID) ManifoldRef {
	return ManifoldRef{ID: id, Sign: Pos}
}

// Neg returns the same manifold with the opposite orientation.
func (r ManifoldRef) Neg() ManifoldRef {
	return ManifoldRef{ID: r.ID, Sign: -r.Sign}
}

// MulSign returns the reference with its sign multiplied by s.
func (r ManifoldRef) MulSign(s Sign) ManifoldRef {
	return ManifoldRef{ID: r.ID, Sign: r.Sign * s}
}

func (r ManifoldRef) String() string {
	return r.Sign.String() + r.ID.String()
}

// PolytopeRef is a reference to an oriented atomic polytope in a Space. The
// zero value is an absent reference; check Valid before use.
type PolytopeRef struct {
	ID   PolytopeID
	Sign Sign
}

// NewPolytopeRef returns a positively oriented reference to id.
func NewPolytopeRef(id PolytopeID) PolytopeRef {
	return PolytopeRef{ID: id, Sign: Pos}
}

// Valid reports whether the reference points at a polytope.
func (r PolytopeRef) Valid() bool {
	return r.Sign != 0
}

// Neg returns the same polytope with the opposite orientation.
func (r PolytopeRef) Neg() PolytopeRef {
	return PolytopeRef{ID: r.ID, Sign: -r.Sign}
}

// MulSign returns the reference with its sign multiplied by s.
func (r PolytopeRef) MulSign(s Sign) PolytopeRef {
	return PolytopeRef{ID: r.ID, Sign: r.Sign * s}
}

func (r PolytopeRef) String() string {
	if !r.Valid() {
		return "<none>"
	}
	return r.Sign.String() + r.ID.String()
}

// key packs the reference into an integer that orders sets deterministically.
func (r PolytopeRef) key() uint64 {
	k := uint64(r.ID) << 1
	if r.Sign == Neg {
		k |= 1
	}
	return k
}

func refFromKey(k uint64) PolytopeRef {
	sign := Pos
	if k&1 != 0 {
		sign = Neg
	}
	return PolytopeRef{ID: PolytopeID(k >> 1), Sign: sign}
}

// PolytopeSet is a set of oriented atomic polytopes. The same polytope may
// appear with both orientations. The zero value is an empty set.
type PolytopeSet struct {
	keys []uint64 // sorted
}

// NewPolytopeSet returns a set with the given members.
func NewPolytopeSet(refs ...PolytopeRef) PolytopeSet {
	var set PolytopeSet
	for _, r := range refs {
		set.Insert(r)
	}
	return set
}

// Insert adds r to the set. It reports whether r was newly added.
func (s *PolytopeSet) Insert(r PolytopeRef) bool {
	if !r.Valid() {
		return false
	}
	k := r.key()
	i := sort.Search(len(s.keys), func(i int) bool { return s.keys[i] >= k })
	if i < len(s.keys) && s.keys[i] == k {
		return false
	}
	s.keys = append(s.keys, 0)
	copy(s.keys[i+1:], s.keys[i:])
	s.keys[i] = k
	return true
}

// Extend adds every member of o to the set.
func (s *PolytopeSet) Extend(o PolytopeSet) {
	for _, k := range o.keys {
		s.Insert(refFromKey(k))
	}
}

// Contains reports whether r is a member of the set.
func (s PolytopeSet) Contains(r PolytopeRef) bool {
	k := r.key()
	i := sort.Search(len(s.keys), func(i int) bool { return s.keys[i] >= k })
	return i < len(s.keys) && s.keys[i] == k
}

// Len returns the number of members.
func (s PolytopeSet) Len() int {
	return len(s.keys)
}

// IsEmpty reports whether the set has no members.
func (s PolytopeSet) IsEmpty() bool {
	return len(s.keys) == 0
}

// Refs returns the members in a deterministic order.
func (s PolytopeSet) Refs() []PolytopeRef {
	refs := make([]PolytopeRef, len(s.keys))
	for i, k := range s.keys {
		refs[i] = refFromKey(k)
	}
	return refs
}

// MulSign returns a set with every member's sign multiplied by sign.
func (s PolytopeSet) MulSign(sign Sign) PolytopeSet {
	if sign == Pos {
		return PolytopeSet{keys: append([]uint64(nil), s.keys...)}
	}
	var ret PolytopeSet
	for _, k := range s.keys {
		ret.Insert(refFromKey(k).Neg())
	}
	return ret
}

// Equal reports whether two sets have the same members.
func (s PolytopeSet) Equal(o PolytopeSet) bool {
	if len(s.keys) != len(o.keys) {
		return false
	}
	for i, k := range s.keys {
		if o.keys[i] != k {
			return false
		}
	}
	return true
}

func (s PolytopeSet) String() string {
	str := "{"
	for i, r := range s.Refs() {
		if i > 0 {
			str += ", "
		}
		str += r.String()
	}
	return str + "}"
}
