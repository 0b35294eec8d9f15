package payrollrun

import (
	"time"

	"github.com/shopspring/decimal"
)

// RunStatus enum
type RunStatus string

const (
	RunStatusDraft RunStatus = "draft"
)

// RunRecord is the aggregate result of one draft generation. The generator
// creates it once and never mutates it afterwards.
type RunRecord struct {
	ID             string
	PeriodMonth    int
	PeriodYear     int
	Status         RunStatus
	EmployeeCount  int
	ExceptionCount int
	TotalNetPay    decimal.Decimal
	InitiatedBy    string
	CreatedAt      time.Time
}

// EventCategory classifies the employment event a detail row was generated
// under.
type EventCategory string

const (
	EventRegular     EventCategory = "regular"
	EventProbation   EventCategory = "probation"
	EventRetirement  EventCategory = "retirement"
	EventTermination EventCategory = "termination"
)

// Detail is one employee's row in a run; immutable after generation.
type Detail struct {
	ID                 string
	RunID              string
	EmployeeID         string
	Gross              decimal.Decimal
	TaxTotal           decimal.Decimal
	InsuranceTotal     decimal.Decimal
	PenaltiesTotal     decimal.Decimal
	Net                decimal.Decimal
	Final              decimal.Decimal
	IsException        bool
	EventCategory      EventCategory
	SigningBonus       *decimal.Decimal
	TerminationBenefit *decimal.Decimal
	Breakdown          Breakdown
	CreatedAt          time.Time
}

// Breakdown mirrors the detail figures for display; stored as JSONB.
type Breakdown struct {
	Gross              decimal.Decimal  `json:"gross"`
	TaxTotal           decimal.Decimal  `json:"tax_total"`
	InsuranceTotal     decimal.Decimal  `json:"insurance_total"`
	PenaltiesTotal     decimal.Decimal  `json:"penalties_total"`
	Net                decimal.Decimal  `json:"net"`
	Final              decimal.Decimal  `json:"final"`
	SigningBonus       *decimal.Decimal `json:"signing_bonus,omitempty"`
	TerminationBenefit *decimal.Decimal `json:"termination_benefit,omitempty"`
}
