// Package polycut builds shapes by cutting convex regions of space with
// spheres and hyperplanes.
//
// The root package offers a high-level ShapeBuilder: start from all of
// space, then carve (keep one side) or slice (keep both sides) with cutting
// manifolds. Pieces track labeled stickers on their facets, so a sliced
// shape remembers which cut produced each facet.
//
//	sb, err := polycut.NewShapeBuilder[string](3)
//	if err != nil { ... }
//	for ax := uint8(0); ax < 3; ax++ {
//	    sb.CarvePlaneLabeled(cga.UnitVector(ax), 1, "outer")
//	    sb.CarvePlaneLabeled(cga.UnitVector(ax).Neg(), 1, "outer")
//	}
//	sb.SlicePlane(cga.UnitVector(0), 0.3) // 2 pieces
//	pieces := sb.Pieces()
//
// The heavy lifting happens in the space package, which represents
// manifolds and polytopes as conformal geometric algebra blades; the cga
// package provides the blade arithmetic. Use the persist package (or
// ShapeBuilder.Save/LoadShapeBuilder) to cache expensive builds on disk.
//
// A ShapeBuilder is safe for concurrent use: cuts take a write lock and
// queries a read lock. Building many independent shapes concurrently is
// better done with BuildShapes, which gives each shape its own builder.
package polycut
