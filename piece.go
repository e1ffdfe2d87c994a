package polycut

import (
	"sort"
	"strconv"

	"github.com/hyperfold/polycut/space"
)

// PieceID identifies a piece within a ShapeBuilder. Pieces are never
// removed: cutting deactivates the old piece and records its replacements,
// so stale IDs can be resolved with UpdatePieceSet.
type PieceID uint32

// NoPiece is returned by point location when no active piece contains the
// point.
const NoPiece = PieceID(1<<32 - 1)

func (id PieceID) String() string {
	if id == NoPiece {
		return "<none>"
	}
	return "piece" + strconv.FormatUint(uint64(id), 10)
}

// Sticker is a labeled facet of a piece.
type Sticker[T any] struct {
	// Facet is the facet polytope carrying the label.
	Facet space.PolytopeID
	// Label identifies the cut that produced the facet.
	Label T
}

// Piece is a read-only view of one piece of the shape.
type Piece[T any] struct {
	ID       PieceID
	Polytope space.PolytopeRef
	Stickers []Sticker[T]
}

type pieceData[T any] struct {
	polytope space.PolytopeRef
	stickers map[space.PolytopeID]T
	// cutResult lists the replacement pieces once this piece is defunct.
	cutResult []PieceID
}

func (p pieceData[T]) view(id PieceID) Piece[T] {
	stickers := make([]Sticker[T], 0, len(p.stickers))
	for facet, label := range p.stickers {
		stickers = append(stickers, Sticker[T]{Facet: facet, Label: label})
	}
	sort.Slice(stickers, func(i, j int) bool { return stickers[i].Facet < stickers[j].Facet })
	return Piece[T]{ID: id, Polytope: p.polytope, Stickers: stickers}
}
