package polycut

import (
	"context"
	"fmt"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/hyperfold/polycut/cga"
)

// BuildShapes builds several independent shapes concurrently, one builder
// and one space per shape. The build functions must not share state.
//
// Example:
//
//	builders, err := polycut.BuildShapes(ctx, 3, []func(*polycut.ShapeBuilder[string]) error{
//	    func(sb *polycut.ShapeBuilder[string]) error { return sb.CarveSphere(cga.NewVector(), 1) },
//	    func(sb *polycut.ShapeBuilder[string]) error { return sb.CarvePlane(cga.UnitVector(0), 1) },
//	})
func BuildShapes[T any](ctx context.Context, ndim uint8, builds []func(*ShapeBuilder[T]) error, optFns ...Option) ([]*ShapeBuilder[T], error) {
	out := make([]*ShapeBuilder[T], len(builds))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, build := range builds {
		i, build := i, build
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			sb, err := NewShapeBuilder[T](ndim, optFns...)
			if err != nil {
				return fmt.Errorf("shape %d: %w", i, err)
			}
			if err := build(sb); err != nil {
				return fmt.Errorf("shape %d: %w", i, err)
			}
			out[i] = sb
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// LocatePoints locates many points concurrently. The result has one entry
// per point: the ID of the active piece strictly containing it, or NoPiece.
func (sb *ShapeBuilder[T]) LocatePoints(ctx context.Context, points []cga.Point) ([]PieceID, error) {
	sb.mu.RLock()
	defer sb.mu.RUnlock()
	start := time.Now()

	results := make([]PieceID, len(points))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, p := range points {
		i, p := i, p
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			results[i] = sb.locateLocked(p)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	sb.opts.metricsCollector.RecordLocate(time.Since(start))
	return results, nil
}
