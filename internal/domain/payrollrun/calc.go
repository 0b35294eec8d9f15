package payrollrun

import "github.com/shopspring/decimal"

type CalcInput struct {
	Gross          decimal.Decimal
	TaxTotal       decimal.Decimal
	InsuranceTotal decimal.Decimal
	PenaltiesTotal decimal.Decimal
}

type CalcResult struct {
	Net         decimal.Decimal
	Final       decimal.Decimal
	IsException bool
}

// Calculate derives net and final salary from the aggregated inputs. A
// negative final salary marks the employee as a payroll exception; it is
// counted on the run, never raised as an error.
func Calculate(in CalcInput) CalcResult {
	net := in.Gross.Sub(in.TaxTotal).Sub(in.InsuranceTotal)
	final := net.Sub(in.PenaltiesTotal)

	return CalcResult{
		Net:         net,
		Final:       final,
		IsException: final.IsNegative(),
	}
}
