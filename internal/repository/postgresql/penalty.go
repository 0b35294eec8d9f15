package postgresql

import (
	"context"
	"fmt"

	"github.com/Starlord12336/payrol-ltracking-sub002/internal/domain/penalty"
	"github.com/Starlord12336/payrol-ltracking-sub002/internal/pkg/database"
)

// penaltyRepository is a read-only view over disciplinary penalty records.
type penaltyRepository struct {
	db *database.DB
}

func NewPenaltyRepository(db *database.DB) penalty.Repository {
	return &penaltyRepository{db: db}
}

func (r *penaltyRepository) ListByEmployee(ctx context.Context, employeeID string) ([]penalty.Penalty, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, employee_id, amount, reason, applied_at
		FROM penalties
		WHERE employee_id = $1
		ORDER BY applied_at
	`

	rows, err := q.Query(ctx, query, employeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to list penalties: %w", err)
	}
	defer rows.Close()

	var penalties []penalty.Penalty
	for rows.Next() {
		var p penalty.Penalty
		if err := rows.Scan(&p.ID, &p.EmployeeID, &p.Amount, &p.Reason, &p.AppliedAt); err != nil {
			return nil, fmt.Errorf("failed to scan penalty: %w", err)
		}
		penalties = append(penalties, p)
	}

	return penalties, rows.Err()
}
