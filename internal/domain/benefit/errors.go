package benefit

import "errors"

var (
	ErrLinkNotFound           = errors.New("benefit link not found")
	ErrLinkAlreadyExists      = errors.New("employee already has a link for this benefit type")
	ErrInvalidStateTransition = errors.New("benefit link does not permit this transition")
	ErrBreakdownMismatch      = errors.New("termination breakdown does not sum to total amount")
)
