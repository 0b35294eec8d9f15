package configuration

import (
	"encoding/json"
	"fmt"

	"github.com/Starlord12336/payrol-ltracking-sub002/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

// Payload is the kind-specific body of a configuration item. The set of
// implementations is closed; UnmarshalPayload is the only constructor from
// stored data.
type Payload interface {
	PayloadKind() Kind
	Validate() error
}

// PayGrade - base monthly salary attached to a grade name
type PayGrade struct {
	Name          string          `json:"name"`
	MonthlySalary decimal.Decimal `json:"monthly_salary"`
}

func (p PayGrade) PayloadKind() Kind { return KindPayGrade }

func (p PayGrade) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(p.Name) {
		errs = append(errs, validator.ValidationError{Field: "name", Message: "is required"})
	}
	if p.MonthlySalary.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "monthly_salary", Message: "must be non-negative"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// Allowance - fixed recurring amount on top of base salary
type Allowance struct {
	Name   string          `json:"name"`
	Amount decimal.Decimal `json:"amount"`
}

func (p Allowance) PayloadKind() Kind { return KindAllowance }

func (p Allowance) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(p.Name) {
		errs = append(errs, validator.ValidationError{Field: "name", Message: "is required"})
	}
	if p.Amount.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "amount", Message: "must be non-negative"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// TaxRule - a named rate applied against gross salary
type TaxRule struct {
	Name       string          `json:"name"`
	Rate       decimal.Decimal `json:"rate"` // fraction of gross, e.g. 0.05
	SalaryFrom decimal.Decimal `json:"salary_from"`
	SalaryTo   decimal.Decimal `json:"salary_to"`
}

func (p TaxRule) PayloadKind() Kind { return KindTaxRule }

func (p TaxRule) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(p.Name) {
		errs = append(errs, validator.ValidationError{Field: "name", Message: "is required"})
	}
	if p.Rate.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "rate", Message: "must be non-negative"})
	}
	if p.SalaryTo.LessThan(p.SalaryFrom) {
		errs = append(errs, validator.ValidationError{Field: "salary_to", Message: "must not be below salary_from"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// InsuranceBracket - fixed contribution for a salary range
type InsuranceBracket struct {
	Name        string          `json:"name"`
	SalaryFrom  decimal.Decimal `json:"salary_from"`
	SalaryTo    decimal.Decimal `json:"salary_to"`
	FixedAmount decimal.Decimal `json:"fixed_amount"`
}

func (p InsuranceBracket) PayloadKind() Kind { return KindInsuranceBracket }

func (p InsuranceBracket) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(p.Name) {
		errs = append(errs, validator.ValidationError{Field: "name", Message: "is required"})
	}
	if p.FixedAmount.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "fixed_amount", Message: "must be non-negative"})
	}
	if p.SalaryTo.LessThan(p.SalaryFrom) {
		errs = append(errs, validator.ValidationError{Field: "salary_to", Message: "must not be below salary_from"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// PayrollPolicy - free-form rule definition applied by payroll operators
type PayrollPolicy struct {
	Name           string `json:"name"`
	RuleDefinition string `json:"rule_definition"`
}

func (p PayrollPolicy) PayloadKind() Kind { return KindPayrollPolicy }

func (p PayrollPolicy) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(p.Name) {
		errs = append(errs, validator.ValidationError{Field: "name", Message: "is required"})
	}
	if validator.IsEmpty(p.RuleDefinition) {
		errs = append(errs, validator.ValidationError{Field: "rule_definition", Message: "is required"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// SigningBonus - template amount granted to probation hires
type SigningBonus struct {
	Name   string          `json:"name"`
	Amount decimal.Decimal `json:"amount"`
}

func (p SigningBonus) PayloadKind() Kind { return KindSigningBonus }

func (p SigningBonus) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(p.Name) {
		errs = append(errs, validator.ValidationError{Field: "name", Message: "is required"})
	}
	if p.Amount.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "amount", Message: "must be non-negative"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// PayType - payout schedule definition
type PayType struct {
	Name     string `json:"name"`
	Schedule string `json:"schedule"` // "monthly", "semi_monthly", "weekly"
}

var payTypeSchedules = []string{"monthly", "semi_monthly", "weekly"}

func (p PayType) PayloadKind() Kind { return KindPayType }

func (p PayType) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(p.Name) {
		errs = append(errs, validator.ValidationError{Field: "name", Message: "is required"})
	}
	if !validator.IsInSlice(p.Schedule, payTypeSchedules) {
		errs = append(errs, validator.ValidationError{Field: "schedule", Message: "must be one of monthly, semi_monthly, weekly"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// TerminationBenefit - template amount paid on termination or resignation
type TerminationBenefit struct {
	Name   string          `json:"name"`
	Amount decimal.Decimal `json:"amount"`
}

func (p TerminationBenefit) PayloadKind() Kind { return KindTerminationBenefit }

func (p TerminationBenefit) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(p.Name) {
		errs = append(errs, validator.ValidationError{Field: "name", Message: "is required"})
	}
	if p.Amount.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "amount", Message: "must be non-negative"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// CompanySettings - company-wide payroll settings. At most one instance is
// active: the most recently approved one.
type CompanySettings struct {
	CompanyName  string `json:"company_name"`
	Currency     string `json:"currency"`
	PayDay       int    `json:"pay_day"` // day of month salaries are released
	WorkingDays  int    `json:"working_days"`
	Timezone     string `json:"timezone"`
	FiscalMonth  int    `json:"fiscal_month"`
	EmailAlerts  bool   `json:"email_alerts"`
	RoundNetPay  bool   `json:"round_net_pay"`
	PolicyRemark string `json:"policy_remark,omitempty"`
}

func (p CompanySettings) PayloadKind() Kind { return KindCompanySettings }

func (p CompanySettings) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(p.CompanyName) {
		errs = append(errs, validator.ValidationError{Field: "company_name", Message: "is required"})
	}
	if validator.IsEmpty(p.Currency) {
		errs = append(errs, validator.ValidationError{Field: "currency", Message: "is required"})
	}
	if p.PayDay < 1 || p.PayDay > 31 {
		errs = append(errs, validator.ValidationError{Field: "pay_day", Message: "must be between 1 and 31"})
	}
	if p.FiscalMonth < 1 || p.FiscalMonth > 12 {
		errs = append(errs, validator.ValidationError{Field: "fiscal_month", Message: "must be between 1 and 12"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// UnmarshalPayload decodes a stored payload body for the given kind.
func UnmarshalPayload(kind Kind, data []byte) (Payload, error) {
	var (
		p   Payload
		err error
	)

	switch kind {
	case KindPayGrade:
		var v PayGrade
		err = json.Unmarshal(data, &v)
		p = v
	case KindAllowance:
		var v Allowance
		err = json.Unmarshal(data, &v)
		p = v
	case KindTaxRule:
		var v TaxRule
		err = json.Unmarshal(data, &v)
		p = v
	case KindInsuranceBracket:
		var v InsuranceBracket
		err = json.Unmarshal(data, &v)
		p = v
	case KindPayrollPolicy:
		var v PayrollPolicy
		err = json.Unmarshal(data, &v)
		p = v
	case KindSigningBonus:
		var v SigningBonus
		err = json.Unmarshal(data, &v)
		p = v
	case KindPayType:
		var v PayType
		err = json.Unmarshal(data, &v)
		p = v
	case KindTerminationBenefit:
		var v TerminationBenefit
		err = json.Unmarshal(data, &v)
		p = v
	case KindCompanySettings:
		var v CompanySettings
		err = json.Unmarshal(data, &v)
		p = v
	default:
		return nil, fmt.Errorf("unknown configuration kind %q", kind)
	}

	if err != nil {
		return nil, fmt.Errorf("failed to decode %s payload: %w", kind, err)
	}
	return p, nil
}

// Amount returns the monetary amount a payload contributes to payroll, when
// the kind has one.
func Amount(p Payload) (decimal.Decimal, bool) {
	switch v := p.(type) {
	case PayGrade:
		return v.MonthlySalary, true
	case Allowance:
		return v.Amount, true
	case InsuranceBracket:
		return v.FixedAmount, true
	case SigningBonus:
		return v.Amount, true
	case TerminationBenefit:
		return v.Amount, true
	default:
		return decimal.Zero, false
	}
}
