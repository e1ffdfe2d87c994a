package space

import "github.com/hyperfold/polycut/cga"

// WhichSide locates a manifold or polytope relative to the half-spaces on
// either side of a cut.
type WhichSide uint8

const (
	// SideFlush means every point of the object is on the cut.
	SideFlush WhichSide = iota
	// SideInside means the object is inside the cut, possibly touching it.
	SideInside
	// SideOutside means the object is outside the cut, possibly touching it.
	SideOutside
	// SideSplit means the object has points strictly on both sides.
	SideSplit
)

// Neg swaps inside and outside.
func (w WhichSide) Neg() WhichSide {
	switch w {
	case SideInside:
		return SideOutside
	case SideOutside:
		return SideInside
	default:
		return w
	}
}

// MulSign returns the side with inside and outside swapped if s is negative.
func (w WhichSide) MulSign(s Sign) WhichSide {
	if s == Neg {
		return w.Neg()
	}
	return w
}

// whichSideFromPoints combines the locations of representative points.
func whichSideFromPoints(points ...cga.PointWhichSide) WhichSide {
	anyInside := false
	anyOutside := false
	for _, p := range points {
		switch p {
		case cga.PointInside:
			anyInside = true
		case cga.PointOutside:
			anyOutside = true
		}
	}
	switch {
	case anyInside && anyOutside:
		return SideSplit
	case anyInside:
		return SideInside
	case anyOutside:
		return SideOutside
	default:
		return SideFlush
	}
}

func (w WhichSide) String() string {
	switch w {
	case SideFlush:
		return "flush"
	case SideInside:
		return "inside"
	case SideOutside:
		return "outside"
	case SideSplit:
		return "split"
	default:
		return "unknown"
	}
}
