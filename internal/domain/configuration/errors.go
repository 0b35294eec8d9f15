package configuration

import "errors"

var (
	ErrItemNotFound           = errors.New("configuration item not found")
	ErrInvalidKind            = errors.New("unknown configuration kind")
	ErrInvalidStateTransition = errors.New("configuration item does not permit this transition")
	ErrNoActiveSettings       = errors.New("no approved company settings")
)
