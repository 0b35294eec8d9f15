package approval

import "errors"

var (
	ErrPermissionDenied = errors.New("actor lacks the capability for this operation")
	ErrDeleteNotAllowed = errors.New("approved items of this kind cannot be deleted")
)
