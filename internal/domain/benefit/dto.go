package benefit

import (
	"time"

	"github.com/Starlord12336/payrol-ltracking-sub002/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type CreateLinkRequest struct {
	EmployeeID           string           `json:"employee_id"`
	TemplateID           string           `json:"template_id"`
	Type                 string           `json:"type"`
	TerminationRequestID *string          `json:"termination_request_id,omitempty"`
	GivenAmount          *decimal.Decimal `json:"given_amount,omitempty"`

	// Termination breakdown. Leave encashment may be omitted; it is then
	// computed from the leave service.
	LeaveEncashment      *decimal.Decimal `json:"leave_encashment,omitempty"`
	SeverancePay         *decimal.Decimal `json:"severance_pay,omitempty"`
	EndOfServiceGratuity *decimal.Decimal `json:"end_of_service_gratuity,omitempty"`
}

func (r *CreateLinkRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{Field: "employee_id", Message: "is required"})
	}
	if validator.IsEmpty(r.TemplateID) {
		errs = append(errs, validator.ValidationError{Field: "template_id", Message: "is required"})
	}
	if r.Type != string(LinkTypeSigningBonus) && r.Type != string(LinkTypeTerminationBenefit) {
		errs = append(errs, validator.ValidationError{Field: "type", Message: "must be 'signing_bonus' or 'termination_benefit'"})
	}
	if r.Type == string(LinkTypeTerminationBenefit) && (r.TerminationRequestID == nil || validator.IsEmpty(*r.TerminationRequestID)) {
		errs = append(errs, validator.ValidationError{Field: "termination_request_id", Message: "is required for termination benefits"})
	}
	if r.GivenAmount != nil && r.GivenAmount.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "given_amount", Message: "must be non-negative"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type RejectLinkRequest struct {
	Reason string `json:"reason"`
}

func (r *RejectLinkRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Reason) {
		errs = append(errs, validator.ValidationError{Field: "reason", Message: "is required"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type LinkResponse struct {
	ID                   string           `json:"id"`
	EmployeeID           string           `json:"employee_id"`
	TemplateID           string           `json:"template_id"`
	Type                 string           `json:"type"`
	TerminationRequestID *string          `json:"termination_request_id,omitempty"`
	Status               string           `json:"status"`
	GivenAmount          *decimal.Decimal `json:"given_amount,omitempty"`
	LeaveEncashment      *decimal.Decimal `json:"leave_encashment,omitempty"`
	SeverancePay         *decimal.Decimal `json:"severance_pay,omitempty"`
	EndOfServiceGratuity *decimal.Decimal `json:"end_of_service_gratuity,omitempty"`
	TotalAmount          *decimal.Decimal `json:"total_amount,omitempty"`
	ApprovedBy           *string          `json:"approved_by,omitempty"`
	ApprovedAt           *string          `json:"approved_at,omitempty"`
	RejectionReason      *string          `json:"rejection_reason,omitempty"`
	CreatedAt            string           `json:"created_at"`
}

// ToResponse maps a link to its API shape.
func ToResponse(l Link) LinkResponse {
	var approvedAt *string
	if l.ApprovedAt != nil {
		str := l.ApprovedAt.Format(time.RFC3339)
		approvedAt = &str
	}

	return LinkResponse{
		ID:                   l.ID,
		EmployeeID:           l.EmployeeID,
		TemplateID:           l.TemplateID,
		Type:                 string(l.Type),
		TerminationRequestID: l.TerminationRequestID,
		Status:               string(l.Status),
		GivenAmount:          l.GivenAmount,
		LeaveEncashment:      l.LeaveEncashment,
		SeverancePay:         l.SeverancePay,
		EndOfServiceGratuity: l.EndOfServiceGratuity,
		TotalAmount:          l.TotalAmount,
		ApprovedBy:           l.ApprovedBy,
		ApprovedAt:           approvedAt,
		RejectionReason:      l.RejectionReason,
		CreatedAt:            l.CreatedAt.Format(time.RFC3339),
	}
}

// ToResponses maps a list of links.
func ToResponses(links []Link) []LinkResponse {
	result := make([]LinkResponse, 0, len(links))
	for _, l := range links {
		result = append(result, ToResponse(l))
	}
	return result
}
