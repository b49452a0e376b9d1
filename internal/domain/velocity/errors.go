package velocity

import (
	"errors"
	"fmt"
)

// Sentinel error kinds for velocity parsing. These allow errors.Is/As from callers.
// The messages are shown to the user verbatim.
var (
	ErrInvalidUnit          = errors.New("A valid unit was not entered!")
	ErrParse                = errors.New("could not convert string to float")
	ErrVelocityExceedsLimit = errors.New("Entered velocity exceeds Warp Drive theoretical limits!")
)

// ParseError reports a magnitude that is not a valid decimal number.
type ParseError struct {
	// Text is the magnitude as it appeared in the input.
	Text string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: '%s'", ErrParse.Error(), e.Text)
}

// Unwrap exposes both the ErrParse kind and the underlying cause.
func (e *ParseError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrParse}
	}
	return []error{ErrParse, e.Err}
}
