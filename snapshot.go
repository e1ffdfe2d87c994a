package polycut

import (
	"errors"
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/RoaringBitmap/roaring/v2"

	"github.com/hyperfold/polycut/persist"
	"github.com/hyperfold/polycut/space"
)

// ErrSnapshot is returned when a builder snapshot cannot be restored.
var ErrSnapshot = errors.New("polycut: invalid snapshot")

// shapeState is the persisted form of a ShapeBuilder.
type shapeState[T any] struct {
	Space  *space.Snapshot
	Pieces []pieceState[T]
	Active []uint32
}

type pieceState[T any] struct {
	Polytope  uint32
	Negative  bool
	Stickers  []Sticker[T]
	CutResult []uint32
}

// Save writes the builder and its space to w in the persist snapshot
// format. The sticker label type T must be encodable by the configured
// codec.
func (sb *ShapeBuilder[T]) Save(w io.Writer) error {
	start := time.Now()
	err := sb.save(w)
	sb.opts.metricsCollector.RecordSnapshot(time.Since(start), err)
	return err
}

func (sb *ShapeBuilder[T]) save(w io.Writer) error {
	sb.mu.RLock()
	defer sb.mu.RUnlock()
	return persist.Save(w, sb.stateLocked(), sb.opts.persistOptions...)
}

// SaveFile writes the builder atomically to a snapshot file. An empty path
// uses the path configured with WithSnapshotPath.
func (sb *ShapeBuilder[T]) SaveFile(path string) error {
	if path == "" {
		path = sb.opts.snapshotPath
	}
	if path == "" {
		return fmt.Errorf("%w: no snapshot path configured", ErrSnapshot)
	}
	start := time.Now()
	err := sb.saveFile(path)
	sb.opts.metricsCollector.RecordSnapshot(time.Since(start), err)
	sb.opts.logger.LogSnapshot(path, err)
	return err
}

func (sb *ShapeBuilder[T]) saveFile(path string) error {
	sb.mu.RLock()
	defer sb.mu.RUnlock()
	return persist.SaveFile(path, sb.stateLocked(), sb.opts.persistOptions...)
}

func (sb *ShapeBuilder[T]) stateLocked() shapeState[T] {
	state := shapeState[T]{
		Space:  sb.space.Snapshot(),
		Pieces: make([]pieceState[T], len(sb.pieces)),
		Active: sb.active.ToArray(),
	}
	for i, piece := range sb.pieces {
		ps := pieceState[T]{
			Polytope: uint32(piece.polytope.ID),
			Negative: piece.polytope.Sign == space.Neg,
		}
		for facet, label := range piece.stickers {
			ps.Stickers = append(ps.Stickers, Sticker[T]{Facet: facet, Label: label})
		}
		sort.Slice(ps.Stickers, func(a, b int) bool { return ps.Stickers[a].Facet < ps.Stickers[b].Facet })
		for _, id := range piece.cutResult {
			ps.CutResult = append(ps.CutResult, uint32(id))
		}
		state.Pieces[i] = ps
	}
	return state
}

// LoadShapeBuilder restores a builder written by Save.
func LoadShapeBuilder[T any](r io.Reader, optFns ...Option) (*ShapeBuilder[T], error) {
	var state shapeState[T]
	if err := persist.Load(r, &state); err != nil {
		return nil, err
	}
	return shapeBuilderFromState(state, optFns)
}

// LoadShapeBuilderFile restores a builder from a snapshot file written by
// SaveFile.
func LoadShapeBuilderFile[T any](path string, optFns ...Option) (*ShapeBuilder[T], error) {
	var state shapeState[T]
	if err := persist.LoadFile(path, &state); err != nil {
		return nil, err
	}
	return shapeBuilderFromState(state, optFns)
}

func shapeBuilderFromState[T any](state shapeState[T], optFns []Option) (*ShapeBuilder[T], error) {
	start := time.Now()
	opts := applyOptions(optFns)

	sb, err := restoreShapeBuilder[T](state, opts)
	opts.metricsCollector.RecordRestore(time.Since(start), err)
	pieces := 0
	if sb != nil {
		pieces = int(sb.active.GetCardinality())
	}
	opts.logger.LogRestore(pieces, err)
	return sb, err
}

func restoreShapeBuilder[T any](state shapeState[T], opts options) (*ShapeBuilder[T], error) {
	if state.Space == nil {
		return nil, fmt.Errorf("%w: missing space", ErrSnapshot)
	}

	spaceOpts := []space.Option{space.WithLogger(opts.logger.Logger)}
	if opts.checks {
		spaceOpts = append(spaceOpts, space.WithChecks())
	}
	s, err := space.FromSnapshot(state.Space, spaceOpts...)
	if err != nil {
		return nil, err
	}

	sb := &ShapeBuilder[T]{
		space:  s,
		active: roaring.New(),
		opts:   opts,
	}

	polytopeCount := uint32(s.PolytopeCount())
	pieceCount := uint32(len(state.Pieces))
	for i, ps := range state.Pieces {
		if ps.Polytope >= polytopeCount {
			return nil, fmt.Errorf("%w: piece %d references unknown polytope %d", ErrSnapshot, i, ps.Polytope)
		}
		ref := space.NewPolytopeRef(space.PolytopeID(ps.Polytope))
		if ps.Negative {
			ref = ref.Neg()
		}
		data := pieceData[T]{
			polytope: ref,
			stickers: make(map[space.PolytopeID]T, len(ps.Stickers)),
		}
		for _, sticker := range ps.Stickers {
			if uint32(sticker.Facet) >= polytopeCount {
				return nil, fmt.Errorf("%w: piece %d references unknown facet %d", ErrSnapshot, i, sticker.Facet)
			}
			data.stickers[sticker.Facet] = sticker.Label
		}
		for _, id := range ps.CutResult {
			if id >= pieceCount {
				return nil, fmt.Errorf("%w: piece %d references unknown piece %d", ErrSnapshot, i, id)
			}
			data.cutResult = append(data.cutResult, PieceID(id))
		}
		sb.pieces = append(sb.pieces, data)
	}

	for _, id := range state.Active {
		if id >= pieceCount {
			return nil, fmt.Errorf("%w: active set references unknown piece %d", ErrSnapshot, id)
		}
		sb.active.Add(id)
	}
	if len(sb.pieces) == 0 {
		return nil, fmt.Errorf("%w: no pieces", ErrSnapshot)
	}
	return sb, nil
}
