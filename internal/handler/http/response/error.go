package response

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/Starlord12336/payrol-ltracking-sub002/internal/domain/approval"
	"github.com/Starlord12336/payrol-ltracking-sub002/internal/domain/benefit"
	"github.com/Starlord12336/payrol-ltracking-sub002/internal/domain/configuration"
	"github.com/Starlord12336/payrol-ltracking-sub002/internal/domain/employee"
	"github.com/Starlord12336/payrol-ltracking-sub002/internal/domain/payrollrun"
	"github.com/Starlord12336/payrol-ltracking-sub002/internal/pkg/validator"
)

// HandleError maps service errors to HTTP responses.
func HandleError(w http.ResponseWriter, err error) {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	case errors.Is(err, configuration.ErrItemNotFound),
		errors.Is(err, configuration.ErrNoActiveSettings),
		errors.Is(err, benefit.ErrLinkNotFound),
		errors.Is(err, employee.ErrEmployeeNotFound),
		errors.Is(err, payrollrun.ErrRunNotFound):
		NotFound(w, err.Error())
	case errors.Is(err, configuration.ErrInvalidKind):
		BadRequest(w, err.Error(), nil)
	case errors.Is(err, configuration.ErrInvalidStateTransition),
		errors.Is(err, benefit.ErrInvalidStateTransition),
		errors.Is(err, benefit.ErrLinkAlreadyExists),
		errors.Is(err, benefit.ErrBreakdownMismatch):
		Conflict(w, err.Error())
	case errors.Is(err, approval.ErrPermissionDenied),
		errors.Is(err, approval.ErrDeleteNotAllowed):
		Forbidden(w, err.Error())
	default:
		slog.Error("unhandled service error", "error", err)
		InternalServerError(w, "Internal server error")
	}
}
