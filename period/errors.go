package period

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidPeriod is returned when a token matches none of the supported shapes.
	ErrInvalidPeriod = errors.New("invalid date period")
	// ErrInvalidDate is returned when a token has a supported shape but the
	// calendar date or the offset it names cannot be constructed.
	ErrInvalidDate = errors.New("invalid date")
)

// ParseError records a failed resolution and the token and offset that caused it.
type ParseError struct {
	Token  string
	Offset string
	Err    error
}

func (e *ParseError) Error() string {
	if e.Offset == "" {
		return fmt.Sprintf("resolving period %q: %v", e.Token, e.Err)
	}
	return fmt.Sprintf("resolving period %q at offset %q: %v", e.Token, e.Offset, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
