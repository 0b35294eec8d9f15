package configuration

import (
	"time"
)

// Status enum. SUBMITTED is not a distinct status: a draft item awaiting
// review carries a non-nil SubmittedAt marker instead.
type Status string

const (
	StatusDraft    Status = "draft"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

// Kind enum - the closed set of configuration record kinds.
type Kind string

const (
	KindPayGrade           Kind = "pay_grade"
	KindAllowance          Kind = "allowance"
	KindTaxRule            Kind = "tax_rule"
	KindInsuranceBracket   Kind = "insurance_bracket"
	KindPayrollPolicy      Kind = "payroll_policy"
	KindSigningBonus       Kind = "signing_bonus"
	KindPayType            Kind = "pay_type"
	KindTerminationBenefit Kind = "termination_benefit"
	KindCompanySettings    Kind = "company_settings"
)

// Kinds lists every configuration kind, in the order they are administered.
var Kinds = []Kind{
	KindPayGrade,
	KindAllowance,
	KindTaxRule,
	KindInsuranceBracket,
	KindPayrollPolicy,
	KindSigningBonus,
	KindPayType,
	KindTerminationBenefit,
	KindCompanySettings,
}

// IsValidKind reports whether s names a known configuration kind.
func IsValidKind(s string) bool {
	for _, k := range Kinds {
		if string(k) == s {
			return true
		}
	}
	return false
}

// Item is the lifecycle envelope shared by all configuration kinds.
type Item struct {
	ID              string
	Kind            Kind
	Payload         Payload
	Status          Status
	SubmittedAt     *time.Time
	CreatedBy       string
	ApprovedBy      *string
	ApprovedAt      *time.Time
	RejectionReason *string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// AwaitingReview reports whether the item has been submitted and not yet
// approved or rejected.
func (i Item) AwaitingReview() bool {
	return i.Status == StatusDraft && i.SubmittedAt != nil
}
