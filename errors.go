package polycut

import (
	"errors"
	"fmt"

	"github.com/hyperfold/polycut/space"
)

var (
	// ErrFlushPiece is returned when a piece lies exactly on the cutting
	// manifold, which leaves nothing to cut.
	ErrFlushPiece = errors.New("piece is flush with cut")

	// ErrUnknownPiece is returned when a piece ID does not refer to a piece
	// of this builder.
	ErrUnknownPiece = errors.New("unknown piece")
)

// ErrInvalidDimension indicates an unsupported number of dimensions.
//
// The original underlying error (if any) can be accessed via errors.Unwrap.
type ErrInvalidDimension struct {
	NDim  uint8
	cause error
}

func (e *ErrInvalidDimension) Error() string {
	return fmt.Sprintf("invalid dimension: %d", e.NDim)
}

func (e *ErrInvalidDimension) Unwrap() error { return e.cause }

// translateError normalizes engine errors at the API boundary.
func translateError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, space.ErrDegenerate) {
		return fmt.Errorf("degenerate cutting manifold: %w", err)
	}
	return err
}
