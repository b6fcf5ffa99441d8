package orders

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidTransition  = errors.New("invalid transition")
	ErrPreconditionFailed = errors.New("precondition failed")
	ErrAlreadyTerminal    = errors.New("order already in a terminal state")
	ErrForbidden          = errors.New("forbidden")
	ErrEmptyOrder         = errors.New("order has no line items")
	ErrItemUnavailable    = errors.New("item unavailable")
)

// TransitionError carries the current and attempted states for diagnostics.
// errors.Is(err, ErrInvalidTransition) matches it.
type TransitionError struct {
	Entity string // "order", "advance payment", "final payment"
	From   string
	To     string
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("%s: invalid transition %s -> %s", e.Entity, e.From, e.To)
}

func (e *TransitionError) Is(target error) bool { return target == ErrInvalidTransition }
