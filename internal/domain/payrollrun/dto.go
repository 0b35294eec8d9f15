package payrollrun

import (
	"time"

	"github.com/Starlord12336/payrol-ltracking-sub002/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type GenerateDraftRequest struct {
	RunID       string `json:"run_id,omitempty"` // assigned when empty
	PeriodMonth int    `json:"period_month"`
	PeriodYear  int    `json:"period_year"`
}

func (r *GenerateDraftRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.PeriodMonth < 1 || r.PeriodMonth > 12 {
		errs = append(errs, validator.ValidationError{Field: "period_month", Message: "must be between 1 and 12"})
	}
	if r.PeriodYear < 2000 {
		errs = append(errs, validator.ValidationError{Field: "period_year", Message: "must be 2000 or later"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type RunFilter struct {
	PeriodMonth *int `json:"period_month,omitempty"`
	PeriodYear  *int `json:"period_year,omitempty"`
}

type RunResponse struct {
	ID             string          `json:"id"`
	PeriodMonth    int             `json:"period_month"`
	PeriodYear     int             `json:"period_year"`
	Status         string          `json:"status"`
	EmployeeCount  int             `json:"employee_count"`
	ExceptionCount int             `json:"exception_count"`
	TotalNetPay    decimal.Decimal `json:"total_net_pay"`
	InitiatedBy    string          `json:"initiated_by"`
	CreatedAt      string          `json:"created_at"`
}

type DetailResponse struct {
	ID                 string           `json:"id"`
	RunID              string           `json:"run_id"`
	EmployeeID         string           `json:"employee_id"`
	Gross              decimal.Decimal  `json:"gross"`
	TaxTotal           decimal.Decimal  `json:"tax_total"`
	InsuranceTotal     decimal.Decimal  `json:"insurance_total"`
	PenaltiesTotal     decimal.Decimal  `json:"penalties_total"`
	Net                decimal.Decimal  `json:"net"`
	Final              decimal.Decimal  `json:"final"`
	IsException        bool             `json:"is_exception"`
	EventCategory      string           `json:"event_category"`
	SigningBonus       *decimal.Decimal `json:"signing_bonus,omitempty"`
	TerminationBenefit *decimal.Decimal `json:"termination_benefit,omitempty"`
	Breakdown          Breakdown        `json:"breakdown"`
}

// ToRunResponse maps a run record to its API shape.
func ToRunResponse(r RunRecord) RunResponse {
	return RunResponse{
		ID:             r.ID,
		PeriodMonth:    r.PeriodMonth,
		PeriodYear:     r.PeriodYear,
		Status:         string(r.Status),
		EmployeeCount:  r.EmployeeCount,
		ExceptionCount: r.ExceptionCount,
		TotalNetPay:    r.TotalNetPay,
		InitiatedBy:    r.InitiatedBy,
		CreatedAt:      r.CreatedAt.Format(time.RFC3339),
	}
}

// ToRunResponses maps a list of run records.
func ToRunResponses(runs []RunRecord) []RunResponse {
	result := make([]RunResponse, 0, len(runs))
	for _, r := range runs {
		result = append(result, ToRunResponse(r))
	}
	return result
}

// ToDetailResponse maps a detail row to its API shape.
func ToDetailResponse(d Detail) DetailResponse {
	return DetailResponse{
		ID:                 d.ID,
		RunID:              d.RunID,
		EmployeeID:         d.EmployeeID,
		Gross:              d.Gross,
		TaxTotal:           d.TaxTotal,
		InsuranceTotal:     d.InsuranceTotal,
		PenaltiesTotal:     d.PenaltiesTotal,
		Net:                d.Net,
		Final:              d.Final,
		IsException:        d.IsException,
		EventCategory:      string(d.EventCategory),
		SigningBonus:       d.SigningBonus,
		TerminationBenefit: d.TerminationBenefit,
		Breakdown:          d.Breakdown,
	}
}

// ToDetailResponses maps a list of detail rows.
func ToDetailResponses(details []Detail) []DetailResponse {
	result := make([]DetailResponse, 0, len(details))
	for _, d := range details {
		result = append(result, ToDetailResponse(d))
	}
	return result
}
