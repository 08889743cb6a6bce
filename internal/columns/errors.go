package columns

import (
	"errors"
	"fmt"
)

// Selector failure kinds. A *ColumnError unwraps to exactly one of these.
var (
	ErrColumnZero         = errors.New("column zero invalid")
	ErrColumnOutOfRange   = errors.New("column out of range")
	ErrRangeNotIncreasing = errors.New("range not increasing")
	ErrRangeOutOfBounds   = errors.New("range out of bounds")
	ErrColumnNotFound     = errors.New("column not found")
)

// ColumnError reports a selector token that could not be resolved against a header.
type ColumnError struct {
	Kind  error
	Token string
	// Column is the offending 1-based (or negative) index for ColumnOutOfRange.
	Column int
	// Lo and Hi are the range bounds for the range kinds.
	Lo, Hi int
	// Width is the header width the token was resolved against.
	Width int
	// Name is the missing column name for ColumnNotFound.
	Name string
}

func (e *ColumnError) Error() string {
	switch e.Kind {
	case ErrColumnZero:
		return "Column 0 is invalid. Columns are 1-based."
	case ErrColumnOutOfRange:
		return fmt.Sprintf("Column %d is invalid. There are %d columns.", e.Column, e.Width)
	case ErrRangeNotIncreasing:
		return fmt.Sprintf("Invalid range. Must be increasing: %d-%d", e.Lo, e.Hi)
	case ErrRangeOutOfBounds:
		return fmt.Sprintf("Invalid range. There are only %d columns: %d-%d", e.Width, e.Lo, e.Hi)
	case ErrColumnNotFound:
		return fmt.Sprintf("Column '%s' not found in input file", e.Name)
	default:
		return fmt.Sprintf("invalid column selector %q", e.Token)
	}
}

func (e *ColumnError) Unwrap() error { return e.Kind }
