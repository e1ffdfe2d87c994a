// Package intern provides insertion-ordered interning tables keyed by
// structures containing floating-point values. Floats within a small
// tolerance of a previously seen value are treated as identical, so
// structures that are approximately equal intern to the same id.
package intern

import (
	"encoding/binary"
	"sort"
)

// FloatMemo assigns stable ids to floats. Values within the tolerance of a
// previously memoized value share its id.
//
// Tolerance comparisons are made against stored values, so chains of nearby
// floats may or may not collapse to one id depending on insertion order.
// That is fine for interning: equal ids imply approximate equality, never
// the reverse.
type FloatMemo struct {
	eps     float64
	entries []floatEntry // sorted by value
	next    uint32
}

type floatEntry struct {
	value float64
	id    uint32
}

// NewFloatMemo returns a FloatMemo with the given tolerance.
func NewFloatMemo(eps float64) *FloatMemo {
	return &FloatMemo{eps: eps}
}

// ID returns the id for x, assigning a new one if no memoized value is
// within the tolerance.
func (m *FloatMemo) ID(x float64) uint32 {
	lo := sort.Search(len(m.entries), func(i int) bool {
		return m.entries[i].value >= x-m.eps
	})
	if lo < len(m.entries) && m.entries[lo].value <= x+m.eps {
		return m.entries[lo].id
	}
	id := m.next
	m.next++
	m.entries = append(m.entries, floatEntry{})
	copy(m.entries[lo+1:], m.entries[lo:])
	m.entries[lo] = floatEntry{value: x, id: id}
	return id
}

// KeyWriter accumulates a byte key for one structure. Floats are written as
// memoized ids, so approximately equal structures produce identical keys.
type KeyWriter struct {
	buf  []byte
	memo *FloatMemo
}

// WriteUint32 appends an exact integer to the key.
func (k *KeyWriter) WriteUint32(u uint32) {
	k.buf = binary.LittleEndian.AppendUint32(k.buf, u)
}

// WriteFloat appends a memoized float id to the key.
func (k *KeyWriter) WriteFloat(x float64) {
	k.WriteUint32(k.memo.ID(x))
}

// Table is an insertion-ordered interning table. Each distinct key is
// assigned a sequential uint32 id starting at 0.
type Table[T any] struct {
	keyFn func(T, *KeyWriter)
	memo  *FloatMemo
	items []T
	index map[string]uint32
}

// NewTable returns a table that keys items with keyFn. Floats written
// through the KeyWriter are compared with the given tolerance.
func NewTable[T any](eps float64, keyFn func(T, *KeyWriter)) *Table[T] {
	return &Table[T]{
		keyFn: keyFn,
		memo:  NewFloatMemo(eps),
		index: map[string]uint32{},
	}
}

// GetOrInsert returns the id for item, inserting it if no equivalent item is
// present. The second return value reports whether the item already existed.
func (t *Table[T]) GetOrInsert(item T) (uint32, bool) {
	kw := KeyWriter{memo: t.memo}
	t.keyFn(item, &kw)
	key := string(kw.buf)
	if id, ok := t.index[key]; ok {
		return id, true
	}
	id := uint32(len(t.items))
	t.items = append(t.items, item)
	t.index[key] = id
	return id, false
}

// At returns the item with the given id. It panics if the id is out of
// range.
func (t *Table[T]) At(id uint32) T {
	return t.items[id]
}

// Len returns the number of interned items.
func (t *Table[T]) Len() int {
	return len(t.items)
}

// Items returns all interned items in insertion order. The caller must not
// modify the returned slice.
func (t *Table[T]) Items() []T {
	return t.items
}
