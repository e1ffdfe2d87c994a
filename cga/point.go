package cga

// PointKind distinguishes the outcomes of projecting a blade to a point.
type PointKind uint8

const (
	// PointDegenerate is the result of projecting a zero or degenerate blade.
	PointDegenerate PointKind = iota
	// PointFinite is an ordinary Euclidean point.
	PointFinite
	// PointInfinity is the point at infinity.
	PointInfinity
)

// Point is a possibly-degenerate, possibly-infinite point.
type Point struct {
	Kind PointKind
	// Pos is the location of the point. Only meaningful for finite points.
	Pos Vector
}

// FinitePoint returns a finite point at the given location.
func FinitePoint(pos Vector) Point {
	return Point{Kind: PointFinite, Pos: pos}
}

// Infinity is the point at infinity.
var Infinity = Point{Kind: PointInfinity}

// IsDegenerate reports whether the point is degenerate.
func (p Point) IsDegenerate() bool {
	return p.Kind == PointDegenerate
}

// ApproxEq reports whether two points are approximately equal. Degenerate
// points compare unequal to everything, including each other.
func (p Point) ApproxEq(o Point) bool {
	if p.Kind == PointDegenerate || o.Kind == PointDegenerate {
		return false
	}
	if p.Kind != o.Kind {
		return false
	}
	return p.Kind == PointInfinity || p.Pos.ApproxEq(o.Pos)
}

func (p Point) String() string {
	switch p.Kind {
	case PointFinite:
		return p.Pos.String()
	case PointInfinity:
		return "∞"
	default:
		return "<degenerate>"
	}
}
