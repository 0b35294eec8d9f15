package configuration

import (
	"encoding/json"
	"time"

	"github.com/Starlord12336/payrol-ltracking-sub002/internal/pkg/validator"
)

type CreateItemRequest struct {
	Kind    Kind            `json:"-"`
	Payload json.RawMessage `json:"payload"`
}

func (r *CreateItemRequest) Validate() error {
	var errs validator.ValidationErrors

	if !IsValidKind(string(r.Kind)) {
		errs = append(errs, validator.ValidationError{Field: "kind", Message: "unknown configuration kind"})
	}
	if len(r.Payload) == 0 {
		errs = append(errs, validator.ValidationError{Field: "payload", Message: "is required"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type RejectItemRequest struct {
	Reason string `json:"reason"`
}

func (r *RejectItemRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Reason) {
		errs = append(errs, validator.ValidationError{Field: "reason", Message: "is required"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type EditItemRequest struct {
	Kind    Kind            `json:"-"`
	ID      string          `json:"-"`
	Payload json.RawMessage `json:"payload"`
}

func (r *EditItemRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ID) {
		errs = append(errs, validator.ValidationError{Field: "id", Message: "is required"})
	}
	if len(r.Payload) == 0 {
		errs = append(errs, validator.ValidationError{Field: "payload", Message: "is required"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type ItemResponse struct {
	ID              string  `json:"id"`
	Kind            string  `json:"kind"`
	Status          string  `json:"status"`
	AwaitingReview  bool    `json:"awaiting_review"`
	Payload         Payload `json:"payload"`
	CreatedBy       string  `json:"created_by"`
	ApprovedBy      *string `json:"approved_by,omitempty"`
	ApprovedAt      *string `json:"approved_at,omitempty"`
	RejectionReason *string `json:"rejection_reason,omitempty"`
	CreatedAt       string  `json:"created_at"`
	UpdatedAt       string  `json:"updated_at"`
}

// ToResponse maps an item to its API shape.
func ToResponse(i Item) ItemResponse {
	var approvedAt *string
	if i.ApprovedAt != nil {
		str := i.ApprovedAt.Format(time.RFC3339)
		approvedAt = &str
	}

	return ItemResponse{
		ID:              i.ID,
		Kind:            string(i.Kind),
		Status:          string(i.Status),
		AwaitingReview:  i.AwaitingReview(),
		Payload:         i.Payload,
		CreatedBy:       i.CreatedBy,
		ApprovedBy:      i.ApprovedBy,
		ApprovedAt:      approvedAt,
		RejectionReason: i.RejectionReason,
		CreatedAt:       i.CreatedAt.Format(time.RFC3339),
		UpdatedAt:       i.UpdatedAt.Format(time.RFC3339),
	}
}

// ToResponses maps a list of items.
func ToResponses(items []Item) []ItemResponse {
	result := make([]ItemResponse, 0, len(items))
	for _, i := range items {
		result = append(result, ToResponse(i))
	}
	return result
}
