package space

import (
	"fmt"
	"strings"
)

// PolytopeString returns a multiline indented representation of a polytope
// and its elements for debugging.
func (s *Space) PolytopeString(polytope PolytopeRef) string {
	var sb strings.Builder
	s.writePolytope(&sb, polytope, 0)
	return sb.String()
}

func (s *Space) writePolytope(sb *strings.Builder, polytope PolytopeRef, indent int) {
	sb.WriteString(strings.Repeat("  ", indent))
	fmt.Fprintf(sb, "%v#%-5d", polytope.Sign, polytope.ID)

	manifold := s.ManifoldOf(polytope)
	blade := s.ManifoldBlade(manifold)
	if s.ManifoldAt(manifold.ID).NDim == 0 {
		if a, b, ok := blade.PointPairToPoints(); ok {
			fmt.Fprintf(sb, "%v..%v", a, b)
		} else {
			fmt.Fprintf(sb, "degenerate point pair %v", blade)
		}
	} else {
		sb.WriteString(blade.String())
	}
	sb.WriteByte('\n')

	for _, child := range s.BoundaryOf(polytope) {
		s.writePolytope(sb, child, indent+1)
	}
}
