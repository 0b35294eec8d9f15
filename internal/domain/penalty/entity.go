package penalty

import (
	"time"

	"github.com/shopspring/decimal"
)

// Penalty is a deduction recorded against an employee; owned by the
// disciplinary subsystem, read-only here.
type Penalty struct {
	ID         string
	EmployeeID string
	Amount     decimal.Decimal
	Reason     string
	AppliedAt  time.Time
}
