package benefit

import (
	"time"

	"github.com/shopspring/decimal"
)

// LinkType enum
type LinkType string

const (
	LinkTypeSigningBonus       LinkType = "signing_bonus"
	LinkTypeTerminationBenefit LinkType = "termination_benefit"
)

// Status enum. Link approval is independent of the template's approval:
// each employee's link must separately reach approved before the draft
// generator includes its amount.
type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
	StatusPaid     Status = "paid"
)

// Link ties an employee to a signing-bonus or termination-benefit template.
type Link struct {
	ID                   string
	EmployeeID           string
	TemplateID           string
	Type                 LinkType
	TerminationRequestID *string
	Status               Status
	GivenAmount          *decimal.Decimal

	// Termination breakdown; the three parts must sum to TotalAmount.
	LeaveEncashment      *decimal.Decimal
	SeverancePay         *decimal.Decimal
	EndOfServiceGratuity *decimal.Decimal
	TotalAmount          *decimal.Decimal

	ApprovedBy      *string
	ApprovedAt      *time.Time
	RejectionReason *string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
