package postgresql

import (
	"context"
	"fmt"
	"strings"

	"github.com/Starlord12336/payrol-ltracking-sub002/internal/domain/benefit"
	"github.com/Starlord12336/payrol-ltracking-sub002/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type benefitRepository struct {
	db *database.DB
}

func NewBenefitRepository(db *database.DB) benefit.Repository {
	return &benefitRepository{db: db}
}

const linkColumns = `id, employee_id, template_id, link_type, termination_request_id,
	status, given_amount, leave_encashment, severance_pay, end_of_service_gratuity,
	total_amount, approved_by, approved_at, rejection_reason, created_at, updated_at`

func scanLink(row pgx.Row) (benefit.Link, error) {
	var l benefit.Link
	err := row.Scan(
		&l.ID, &l.EmployeeID, &l.TemplateID, &l.Type, &l.TerminationRequestID,
		&l.Status, &l.GivenAmount, &l.LeaveEncashment, &l.SeverancePay, &l.EndOfServiceGratuity,
		&l.TotalAmount, &l.ApprovedBy, &l.ApprovedAt, &l.RejectionReason, &l.CreatedAt, &l.UpdatedAt,
	)
	return l, err
}

func (r *benefitRepository) Create(ctx context.Context, link benefit.Link) (benefit.Link, error) {
	q := GetQuerier(ctx, r.db)

	query := fmt.Sprintf(`
		INSERT INTO employee_benefit_links (
			employee_id, template_id, link_type, termination_request_id,
			status, given_amount, leave_encashment, severance_pay,
			end_of_service_gratuity, total_amount
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING %s
	`, linkColumns)

	created, err := scanLink(q.QueryRow(ctx, query,
		link.EmployeeID, link.TemplateID, link.Type, link.TerminationRequestID,
		link.Status, link.GivenAmount, link.LeaveEncashment, link.SeverancePay,
		link.EndOfServiceGratuity, link.TotalAmount,
	))
	if err != nil {
		if strings.Contains(err.Error(), "uk_benefit_link_employee_type") {
			return benefit.Link{}, benefit.ErrLinkAlreadyExists
		}
		return benefit.Link{}, fmt.Errorf("failed to create benefit link: %w", err)
	}

	return created, nil
}

func (r *benefitRepository) GetByID(ctx context.Context, id string) (benefit.Link, error) {
	q := GetQuerier(ctx, r.db)

	query := fmt.Sprintf(`
		SELECT %s
		FROM employee_benefit_links
		WHERE id = $1
	`, linkColumns)

	link, err := scanLink(q.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return benefit.Link{}, benefit.ErrLinkNotFound
		}
		return benefit.Link{}, fmt.Errorf("failed to get benefit link: %w", err)
	}

	return link, nil
}

func (r *benefitRepository) ListByEmployee(ctx context.Context, employeeID string) ([]benefit.Link, error) {
	q := GetQuerier(ctx, r.db)

	query := fmt.Sprintf(`
		SELECT %s
		FROM employee_benefit_links
		WHERE employee_id = $1
		ORDER BY created_at
	`, linkColumns)

	rows, err := q.Query(ctx, query, employeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to list benefit links: %w", err)
	}
	defer rows.Close()

	var links []benefit.Link
	for rows.Next() {
		link, err := scanLink(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan benefit link: %w", err)
		}
		links = append(links, link)
	}

	return links, rows.Err()
}

func (r *benefitRepository) GetByEmployeeAndType(ctx context.Context, employeeID string, linkType benefit.LinkType, status benefit.Status) (benefit.Link, error) {
	q := GetQuerier(ctx, r.db)

	query := fmt.Sprintf(`
		SELECT %s
		FROM employee_benefit_links
		WHERE employee_id = $1 AND link_type = $2 AND status = $3
		ORDER BY created_at DESC
		LIMIT 1
	`, linkColumns)

	link, err := scanLink(q.QueryRow(ctx, query, employeeID, linkType, status))
	if err != nil {
		if err == pgx.ErrNoRows {
			return benefit.Link{}, benefit.ErrLinkNotFound
		}
		return benefit.Link{}, fmt.Errorf("failed to get benefit link: %w", err)
	}

	return link, nil
}

// transition mirrors the configuration repository: conditional update that
// loses races loudly.
func (r *benefitRepository) transition(ctx context.Context, id string, set string, expected benefit.Status, args ...interface{}) (benefit.Link, error) {
	q := GetQuerier(ctx, r.db)

	query := fmt.Sprintf(`
		UPDATE employee_benefit_links
		SET %s, updated_at = NOW()
		WHERE id = $1 AND status = $2
		RETURNING %s
	`, set, linkColumns)

	allArgs := append([]interface{}{id, expected}, args...)
	link, err := scanLink(q.QueryRow(ctx, query, allArgs...))
	if err != nil {
		if err == pgx.ErrNoRows {
			if _, getErr := r.GetByID(ctx, id); getErr != nil {
				return benefit.Link{}, getErr
			}
			return benefit.Link{}, benefit.ErrInvalidStateTransition
		}
		return benefit.Link{}, fmt.Errorf("failed to update benefit link: %w", err)
	}

	return link, nil
}

func (r *benefitRepository) Approve(ctx context.Context, id string, approverID string) (benefit.Link, error) {
	return r.transition(ctx, id,
		"status = $3, approved_by = $4, approved_at = NOW()",
		benefit.StatusPending,
		benefit.StatusApproved, approverID,
	)
}

func (r *benefitRepository) Reject(ctx context.Context, id string, reason string) (benefit.Link, error) {
	return r.transition(ctx, id,
		"status = $3, rejection_reason = $4",
		benefit.StatusPending,
		benefit.StatusRejected, reason,
	)
}

func (r *benefitRepository) MarkPaid(ctx context.Context, id string) (benefit.Link, error) {
	return r.transition(ctx, id,
		"status = $3",
		benefit.StatusApproved,
		benefit.StatusPaid,
	)
}

func (r *benefitRepository) Delete(ctx context.Context, id string, expected benefit.Status) error {
	q := GetQuerier(ctx, r.db)

	query := `
		DELETE FROM employee_benefit_links
		WHERE id = $1 AND status = $2
		RETURNING id
	`

	var deletedID string
	err := q.QueryRow(ctx, query, id, expected).Scan(&deletedID)
	if err != nil {
		if err == pgx.ErrNoRows {
			if _, getErr := r.GetByID(ctx, id); getErr != nil {
				return getErr
			}
			return benefit.ErrInvalidStateTransition
		}
		return fmt.Errorf("failed to delete benefit link: %w", err)
	}

	return nil
}
