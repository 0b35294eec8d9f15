package leave

import "time"

// Balance is the per-employee, per-period leave snapshot maintained by the
// leave-management system. This service only reads it.
type Balance struct {
	EmployeeID    string
	PeriodMonth   int
	PeriodYear    int
	RemainingDays int
	UnpaidDays    int
	UpdatedAt     time.Time
}
