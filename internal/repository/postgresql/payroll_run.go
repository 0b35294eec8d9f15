package postgresql

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/Starlord12336/payrol-ltracking-sub002/internal/domain/payrollrun"
	"github.com/Starlord12336/payrol-ltracking-sub002/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type payrollRunRepository struct {
	db *database.DB
}

func NewPayrollRunRepository(db *database.DB) payrollrun.Repository {
	return &payrollRunRepository{db: db}
}

const runColumns = `id, period_month, period_year, status, employee_count,
	exception_count, total_net_pay, initiated_by, created_at`

func scanRun(row pgx.Row) (payrollrun.RunRecord, error) {
	var r payrollrun.RunRecord
	err := row.Scan(
		&r.ID, &r.PeriodMonth, &r.PeriodYear, &r.Status, &r.EmployeeCount,
		&r.ExceptionCount, &r.TotalNetPay, &r.InitiatedBy, &r.CreatedAt,
	)
	return r, err
}

// CreateRunWithDetails persists the run and every detail row in one
// transaction; a failure on any row rolls everything back.
func (r *payrollRunRepository) CreateRunWithDetails(ctx context.Context, run payrollrun.RunRecord, details []payrollrun.Detail) (payrollrun.RunRecord, error) {
	var created payrollrun.RunRecord

	err := WithTransaction(ctx, r.db, func(txCtx context.Context) error {
		q := GetQuerier(txCtx, r.db)

		query := fmt.Sprintf(`
			INSERT INTO payroll_runs (
				id, period_month, period_year, status, employee_count,
				exception_count, total_net_pay, initiated_by
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			RETURNING %s
		`, runColumns)

		var err error
		created, err = scanRun(q.QueryRow(txCtx, query,
			run.ID, run.PeriodMonth, run.PeriodYear, run.Status, run.EmployeeCount,
			run.ExceptionCount, run.TotalNetPay, run.InitiatedBy,
		))
		if err != nil {
			return fmt.Errorf("failed to create payroll run: %w", err)
		}

		for _, d := range details {
			breakdown, err := json.Marshal(d.Breakdown)
			if err != nil {
				return fmt.Errorf("failed to encode breakdown for employee %s: %w", d.EmployeeID, err)
			}

			_, err = q.Exec(txCtx, `
				INSERT INTO payroll_run_details (
					id, run_id, employee_id, gross, tax_total, insurance_total,
					penalties_total, net, final, is_exception, event_category,
					signing_bonus, termination_benefit, breakdown
				) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
			`,
				d.ID, created.ID, d.EmployeeID, d.Gross, d.TaxTotal, d.InsuranceTotal,
				d.PenaltiesTotal, d.Net, d.Final, d.IsException, d.EventCategory,
				d.SigningBonus, d.TerminationBenefit, breakdown,
			)
			if err != nil {
				return fmt.Errorf("failed to create payroll detail for employee %s: %w", d.EmployeeID, err)
			}
		}

		return nil
	})
	if err != nil {
		return payrollrun.RunRecord{}, err
	}

	return created, nil
}

func (r *payrollRunRepository) GetRunByID(ctx context.Context, id string) (payrollrun.RunRecord, error) {
	q := GetQuerier(ctx, r.db)

	query := fmt.Sprintf(`
		SELECT %s
		FROM payroll_runs
		WHERE id = $1
	`, runColumns)

	run, err := scanRun(q.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return payrollrun.RunRecord{}, payrollrun.ErrRunNotFound
		}
		return payrollrun.RunRecord{}, fmt.Errorf("failed to get payroll run: %w", err)
	}

	return run, nil
}

func (r *payrollRunRepository) ListRuns(ctx context.Context, filter payrollrun.RunFilter) ([]payrollrun.RunRecord, error) {
	q := GetQuerier(ctx, r.db)

	query := fmt.Sprintf(`
		SELECT %s
		FROM payroll_runs
		WHERE ($1::int IS NULL OR period_month = $1)
		  AND ($2::int IS NULL OR period_year = $2)
		ORDER BY created_at DESC
	`, runColumns)

	rows, err := q.Query(ctx, query, filter.PeriodMonth, filter.PeriodYear)
	if err != nil {
		return nil, fmt.Errorf("failed to list payroll runs: %w", err)
	}
	defer rows.Close()

	var runs []payrollrun.RunRecord
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan payroll run: %w", err)
		}
		runs = append(runs, run)
	}

	return runs, rows.Err()
}

func (r *payrollRunRepository) ListDetails(ctx context.Context, runID string) ([]payrollrun.Detail, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, run_id, employee_id, gross, tax_total, insurance_total,
			penalties_total, net, final, is_exception, event_category,
			signing_bonus, termination_benefit, breakdown, created_at
		FROM payroll_run_details
		WHERE run_id = $1
		ORDER BY employee_id
	`

	rows, err := q.Query(ctx, query, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to list payroll details: %w", err)
	}
	defer rows.Close()

	var details []payrollrun.Detail
	for rows.Next() {
		var (
			d         payrollrun.Detail
			breakdown []byte
		)
		err := rows.Scan(
			&d.ID, &d.RunID, &d.EmployeeID, &d.Gross, &d.TaxTotal, &d.InsuranceTotal,
			&d.PenaltiesTotal, &d.Net, &d.Final, &d.IsException, &d.EventCategory,
			&d.SigningBonus, &d.TerminationBenefit, &breakdown, &d.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan payroll detail: %w", err)
		}
		if err := json.Unmarshal(breakdown, &d.Breakdown); err != nil {
			return nil, fmt.Errorf("failed to decode breakdown: %w", err)
		}
		details = append(details, d)
	}

	return details, rows.Err()
}
