package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Starlord12336/payrol-ltracking-sub002/internal/domain/leave"
	"github.com/Starlord12336/payrol-ltracking-sub002/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

// leaveRepository is a read-only view over leave balances synced in from the
// leave-management system.
type leaveRepository struct {
	db *database.DB
}

func NewLeaveRepository(db *database.DB) leave.Repository {
	return &leaveRepository{db: db}
}

func (r *leaveRepository) GetBalance(ctx context.Context, employeeID string, periodDate time.Time) (leave.Balance, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT employee_id, period_month, period_year, remaining_days, unpaid_days, updated_at
		FROM leave_balances
		WHERE employee_id = $1 AND period_month = $2 AND period_year = $3
	`

	var b leave.Balance
	err := q.QueryRow(ctx, query, employeeID, int(periodDate.Month()), periodDate.Year()).Scan(
		&b.EmployeeID,
		&b.PeriodMonth,
		&b.PeriodYear,
		&b.RemainingDays,
		&b.UnpaidDays,
		&b.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return leave.Balance{}, leave.ErrBalanceNotFound
		}
		return leave.Balance{}, fmt.Errorf("failed to get leave balance: %w", err)
	}

	return b, nil
}
