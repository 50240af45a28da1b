package conversation

import (
	"errors"
	"fmt"
)

// ErrInvalidTransition marks inputs that match no accepted pattern of the
// current state. It is recovered locally: the session is left untouched and
// the user gets the state's guidance message.
var ErrInvalidTransition = errors.New("invalid transition")

// InvalidTransitionError carries the guidance template for the state that
// rejected the input.
type InvalidTransitionError struct {
	State       string
	Input       string
	GuidanceKey string
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("invalid transition: state %s does not accept %q", e.State, e.Input)
}

func (e *InvalidTransitionError) Unwrap() error {
	return ErrInvalidTransition
}
