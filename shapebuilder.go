package polycut

import (
	"fmt"
	"sync"
	"time"

	"github.com/RoaringBitmap/roaring/v2"

	"github.com/hyperfold/polycut/cga"
	"github.com/hyperfold/polycut/space"
)

// ShapeBuilder cuts a shape out of N-dimensional space. It starts with a
// single piece covering all of space; Carve and Slice subdivide the active
// pieces with spherical or planar cuts.
//
// The type parameter T is the sticker label type, typically a color or
// facet name. Labels must be encodable by the configured persist codec if
// snapshots are used.
type ShapeBuilder[T any] struct {
	mu     sync.RWMutex
	space  *space.Space
	pieces []pieceData[T]
	active *roaring.Bitmap

	opts options
}

// NewShapeBuilder creates a builder for an ndim-dimensional shape with a
// single piece covering all of space.
func NewShapeBuilder[T any](ndim uint8, optFns ...Option) (*ShapeBuilder[T], error) {
	opts := applyOptions(optFns)

	spaceOpts := []space.Option{space.WithLogger(opts.logger.Logger)}
	if opts.checks {
		spaceOpts = append(spaceOpts, space.WithChecks())
	}
	s, err := space.New(ndim, spaceOpts...)
	if err != nil {
		return nil, &ErrInvalidDimension{NDim: ndim, cause: err}
	}

	sb := &ShapeBuilder[T]{
		space:  s,
		active: roaring.New(),
		opts:   opts,
	}
	sb.pieces = append(sb.pieces, pieceData[T]{
		polytope: s.WholeSpace(),
		stickers: map[space.PolytopeID]T{},
	})
	sb.active.Add(0)
	return sb, nil
}

// NDim returns the number of dimensions of the underlying space.
func (sb *ShapeBuilder[T]) NDim() uint8 {
	return sb.space.NDim()
}

// Space returns the underlying space. Callers may add manifolds and run
// queries, but must not cut polytopes behind the builder's back.
func (sb *ShapeBuilder[T]) Space() *space.Space {
	return sb.space
}

// PieceCount returns the number of active pieces.
func (sb *ShapeBuilder[T]) PieceCount() int {
	sb.mu.RLock()
	defer sb.mu.RUnlock()
	return int(sb.active.GetCardinality())
}

// Pieces returns the active pieces in ID order.
func (sb *ShapeBuilder[T]) Pieces() []Piece[T] {
	sb.mu.RLock()
	defer sb.mu.RUnlock()

	pieces := make([]Piece[T], 0, sb.active.GetCardinality())
	it := sb.active.Iterator()
	for it.HasNext() {
		id := PieceID(it.Next())
		pieces = append(pieces, sb.pieces[id].view(id))
	}
	return pieces
}

// PieceAt returns the piece with the given ID, active or not.
func (sb *ShapeBuilder[T]) PieceAt(id PieceID) (Piece[T], error) {
	sb.mu.RLock()
	defer sb.mu.RUnlock()

	if int(id) >= len(sb.pieces) {
		return Piece[T]{}, fmt.Errorf("%w: %v", ErrUnknownPiece, id)
	}
	return sb.pieces[id].view(id), nil
}

// IsActive reports whether the piece is part of the current shape.
func (sb *ShapeBuilder[T]) IsActive(id PieceID) bool {
	sb.mu.RLock()
	defer sb.mu.RUnlock()
	return sb.active.Contains(uint32(id))
}

// UpdatePieceSet replaces defunct pieces with the pieces they were cut
// into. Call this before operating on piece IDs retained across cuts.
func (sb *ShapeBuilder[T]) UpdatePieceSet(ids []PieceID) []PieceID {
	sb.mu.RLock()
	defer sb.mu.RUnlock()
	return sb.updatePieceSetLocked(ids)
}

func (sb *ShapeBuilder[T]) updatePieceSetLocked(ids []PieceID) []PieceID {
	queue := append([]PieceID(nil), ids...)
	seen := roaring.New()
	out := roaring.New()
	for len(queue) > 0 {
		id := queue[len(queue)-1]
		queue = queue[:len(queue)-1]
		if int(id) >= len(sb.pieces) || !seen.CheckedAdd(uint32(id)) {
			continue
		}
		if sb.active.Contains(uint32(id)) {
			out.Add(uint32(id))
		} else {
			queue = append(queue, sb.pieces[id].cutResult...)
		}
	}

	result := make([]PieceID, 0, out.GetCardinality())
	it := out.Iterator()
	for it.HasNext() {
		result = append(result, PieceID(it.Next()))
	}
	return result
}

// AddSphere interns a spherical cutting manifold. A negative radius flips
// the orientation, so carving keeps the outside of the sphere.
func (sb *ShapeBuilder[T]) AddSphere(center cga.Vector, radius float64) (space.ManifoldRef, error) {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	ref, err := sb.space.AddSphere(center, radius)
	return ref, translateError(err)
}

// AddPlane interns a planar cutting manifold. If distance is positive the
// origin is inside.
func (sb *ShapeBuilder[T]) AddPlane(normal cga.Vector, distance float64) (space.ManifoldRef, error) {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	ref, err := sb.space.AddPlane(normal, distance)
	return ref, translateError(err)
}

// Carve cuts every active piece by the divider, throwing away the portions
// outside it.
func (sb *ShapeBuilder[T]) Carve(divider space.ManifoldRef) error {
	return sb.cut("carve", space.CarveParams(divider), nil, nil, nil)
}

// CarveLabeled is Carve with the new facets labeled.
func (sb *ShapeBuilder[T]) CarveLabeled(divider space.ManifoldRef, inside T) error {
	return sb.cut("carve", space.CarveParams(divider), nil, &inside, nil)
}

// CarvePieces is Carve restricted to a set of pieces. Defunct IDs are
// resolved to their cut results first.
func (sb *ShapeBuilder[T]) CarvePieces(pieces []PieceID, divider space.ManifoldRef) error {
	return sb.cut("carve", space.CarveParams(divider), pieces, nil, nil)
}

// Slice cuts every active piece by the divider, keeping both sides.
func (sb *ShapeBuilder[T]) Slice(divider space.ManifoldRef) error {
	return sb.cut("slice", space.SliceParams(divider), nil, nil, nil)
}

// SliceLabeled is Slice with the new facets labeled on both sides.
func (sb *ShapeBuilder[T]) SliceLabeled(divider space.ManifoldRef, inside, outside T) error {
	return sb.cut("slice", space.SliceParams(divider), nil, &inside, &outside)
}

// SlicePieces is Slice restricted to a set of pieces. Defunct IDs are
// resolved to their cut results first.
func (sb *ShapeBuilder[T]) SlicePieces(pieces []PieceID, divider space.ManifoldRef) error {
	return sb.cut("slice", space.SliceParams(divider), pieces, nil, nil)
}

// CarveSphere carves with a sphere, keeping the inside.
func (sb *ShapeBuilder[T]) CarveSphere(center cga.Vector, radius float64) error {
	return sb.cutBlade("carve", cga.IPNSSphere(center, radius), nil, nil)
}

// CarveSphereLabeled is CarveSphere with the new facets labeled.
func (sb *ShapeBuilder[T]) CarveSphereLabeled(center cga.Vector, radius float64, inside T) error {
	return sb.cutBlade("carve", cga.IPNSSphere(center, radius), &inside, nil)
}

// CarvePlane carves with a hyperplane. If distance is positive the origin
// is kept.
func (sb *ShapeBuilder[T]) CarvePlane(normal cga.Vector, distance float64) error {
	return sb.cutBlade("carve", cga.IPNSPlane(normal, distance), nil, nil)
}

// CarvePlaneLabeled is CarvePlane with the new facets labeled.
func (sb *ShapeBuilder[T]) CarvePlaneLabeled(normal cga.Vector, distance float64, inside T) error {
	return sb.cutBlade("carve", cga.IPNSPlane(normal, distance), &inside, nil)
}

// SliceSphere slices with a sphere, keeping both sides.
func (sb *ShapeBuilder[T]) SliceSphere(center cga.Vector, radius float64) error {
	return sb.cutBlade("slice", cga.IPNSSphere(center, radius), nil, nil)
}

// SlicePlane slices with a hyperplane, keeping both sides.
func (sb *ShapeBuilder[T]) SlicePlane(normal cga.Vector, distance float64) error {
	return sb.cutBlade("slice", cga.IPNSPlane(normal, distance), nil, nil)
}

// cutBlade interns an IPNS cutting blade and applies the cut.
func (sb *ShapeBuilder[T]) cutBlade(op string, ipns cga.Blade, insideLabel, outsideLabel *T) error {
	sb.mu.Lock()
	defer sb.mu.Unlock()

	divider, err := sb.space.AddManifold(ipns.IpnsToOpnsIn(sb.space.Pseudoscalar()))
	if err != nil {
		return translateError(err)
	}
	params := space.CarveParams(divider)
	if op == "slice" {
		params = space.SliceParams(divider)
	}
	return sb.cutLocked(op, params, nil, insideLabel, outsideLabel)
}

func (sb *ShapeBuilder[T]) cut(op string, params space.CutParams, pieces []PieceID, insideLabel, outsideLabel *T) error {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	return sb.cutLocked(op, params, pieces, insideLabel, outsideLabel)
}

func (sb *ShapeBuilder[T]) cutLocked(op string, params space.CutParams, pieces []PieceID, insideLabel, outsideLabel *T) error {
	start := time.Now()
	before := int(sb.active.GetCardinality())

	var targets []PieceID
	if pieces == nil {
		it := sb.active.Iterator()
		for it.HasNext() {
			targets = append(targets, PieceID(it.Next()))
		}
	} else {
		targets = sb.updatePieceSetLocked(pieces)
	}

	err := sb.cutPieces(params, targets, insideLabel, outsideLabel)

	sb.opts.metricsCollector.RecordCut(len(targets), time.Since(start), err)
	sb.opts.logger.LogCut(op, int(params.Divider.ID), before, int(sb.active.GetCardinality()), err)
	return translateError(err)
}

// cutPieces cuts each target piece, deactivating it and activating its
// replacements. Stickers are cut along with their piece; new facets get the
// given labels.
func (sb *ShapeBuilder[T]) cutPieces(params space.CutParams, targets []PieceID, insideLabel, outsideLabel *T) error {
	cut := space.NewCut(params)

	for _, pieceID := range targets {
		piece := sb.pieces[pieceID]

		out, err := sb.space.CutPolytope(piece.polytope, cut)
		if err != nil {
			return fmt.Errorf("error cutting piece %v: %w", pieceID, err)
		}

		var insidePolytope, outsidePolytope space.PolytopeRef
		insideStickers := map[space.PolytopeID]T{}
		outsideStickers := map[space.PolytopeID]T{}

		switch out.Kind {
		case space.CutFlush:
			return fmt.Errorf("%w: %v", ErrFlushPiece, pieceID)
		case space.CutManifoldInside, space.CutManifoldOutside:
			// Pieces span the whole space, so their manifold is always
			// split. Be lenient anyway.
			continue
		default:
			if !out.Intersection.Valid() &&
				(out.Inside == piece.polytope || out.Outside == piece.polytope) {
				continue // piece is unchanged
			}
			insidePolytope = out.Inside
			outsidePolytope = out.Outside
			if out.Intersection.Valid() {
				facet := out.Intersection.ID
				if insideLabel != nil {
					insideStickers[facet] = *insideLabel
				}
				if outsideLabel != nil {
					outsideStickers[facet] = *outsideLabel
				}
			}
		}

		// Cut the old stickers. A sticker flush with the cut coincides with
		// the new facet, which already carries the new label.
		for facet, label := range piece.stickers {
			sout, err := sb.space.CutPolytope(space.NewPolytopeRef(facet), cut)
			if err != nil {
				return fmt.Errorf("error cutting sticker %v: %w", facet, err)
			}
			switch sout.Kind {
			case space.CutFlush:
			case space.CutManifoldInside:
				insideStickers[facet] = label
			case space.CutManifoldOutside:
				outsideStickers[facet] = label
			default:
				if sout.Inside.Valid() {
					insideStickers[sout.Inside.ID] = label
				}
				if sout.Outside.Valid() {
					outsideStickers[sout.Outside.ID] = label
				}
			}
		}

		var newIDs []PieceID
		if insidePolytope.Valid() {
			newIDs = append(newIDs, sb.addPiece(pieceData[T]{
				polytope: insidePolytope,
				stickers: insideStickers,
			}))
		}
		if outsidePolytope.Valid() {
			newIDs = append(newIDs, sb.addPiece(pieceData[T]{
				polytope: outsidePolytope,
				stickers: outsideStickers,
			}))
		}

		sb.active.Remove(uint32(pieceID))
		for _, id := range newIDs {
			sb.active.Add(uint32(id))
		}
		sb.pieces[pieceID].cutResult = newIDs
	}
	return nil
}

func (sb *ShapeBuilder[T]) addPiece(data pieceData[T]) PieceID {
	id := PieceID(len(sb.pieces))
	sb.pieces = append(sb.pieces, data)
	return id
}

// PieceContaining returns the active piece strictly containing the point.
func (sb *ShapeBuilder[T]) PieceContaining(point cga.Point) (Piece[T], bool) {
	sb.mu.RLock()
	defer sb.mu.RUnlock()

	id := sb.locateLocked(point)
	if id == NoPiece {
		return Piece[T]{}, false
	}
	return sb.pieces[id].view(id), true
}

func (sb *ShapeBuilder[T]) locateLocked(point cga.Point) PieceID {
	it := sb.active.Iterator()
	for it.HasNext() {
		id := PieceID(it.Next())
		if sb.space.IsPolytopeTouchingPoint(point, sb.pieces[id].polytope) == cga.PointInside {
			return id
		}
	}
	return NoPiece
}

// ShapeStats summarizes a builder and its underlying space.
type ShapeStats struct {
	NDim         uint8
	ActivePieces int
	TotalPieces  int
	Manifolds    int
	Polytopes    int
	Isometries   int
}

// Stats returns counters describing the builder and its space.
func (sb *ShapeBuilder[T]) Stats() ShapeStats {
	sb.mu.RLock()
	defer sb.mu.RUnlock()
	return ShapeStats{
		NDim:         sb.space.NDim(),
		ActivePieces: int(sb.active.GetCardinality()),
		TotalPieces:  len(sb.pieces),
		Manifolds:    sb.space.ManifoldCount(),
		Polytopes:    sb.space.PolytopeCount(),
		Isometries:   sb.space.IsometryCount(),
	}
}
