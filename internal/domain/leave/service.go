package leave

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// Service is the leave-management collaborator consumed by termination
// benefit computation. Leave balances themselves are owned elsewhere.
type Service interface {
	GetUnpaidLeaveDays(ctx context.Context, employeeID string, periodDate time.Time) (int, error)
	CalculateLeaveEncashment(ctx context.Context, employeeID string, dailyRate decimal.Decimal) (decimal.Decimal, error)
}
