package leave

import (
	"context"
	"errors"
	"time"

	"github.com/Starlord12336/payrol-ltracking-sub002/internal/domain/leave"
	"github.com/shopspring/decimal"
)

// BalanceService reads leave balances maintained by the leave-management
// system. A missing balance is treated as zero days on both counters.
type BalanceService struct {
	leaveRepo leave.Repository
}

func NewBalanceService(leaveRepo leave.Repository) leave.Service {
	return &BalanceService{leaveRepo: leaveRepo}
}

func (s *BalanceService) GetUnpaidLeaveDays(ctx context.Context, employeeID string, periodDate time.Time) (int, error) {
	balance, err := s.leaveRepo.GetBalance(ctx, employeeID, periodDate)
	if err != nil {
		if errors.Is(err, leave.ErrBalanceNotFound) {
			return 0, nil
		}
		return 0, err
	}
	return balance.UnpaidDays, nil
}

func (s *BalanceService) CalculateLeaveEncashment(ctx context.Context, employeeID string, dailyRate decimal.Decimal) (decimal.Decimal, error) {
	balance, err := s.leaveRepo.GetBalance(ctx, employeeID, time.Now())
	if err != nil {
		if errors.Is(err, leave.ErrBalanceNotFound) {
			return decimal.Zero, nil
		}
		return decimal.Zero, err
	}
	return dailyRate.Mul(decimal.NewFromInt(int64(balance.RemainingDays))), nil
}
