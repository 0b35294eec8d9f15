package postgresql

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/Starlord12336/payrol-ltracking-sub002/internal/domain/configuration"
	"github.com/Starlord12336/payrol-ltracking-sub002/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type configurationRepository struct {
	db *database.DB
}

func NewConfigurationRepository(db *database.DB) configuration.Repository {
	return &configurationRepository{db: db}
}

const itemColumns = `id, kind, payload, status, submitted_at, created_by,
	approved_by, approved_at, rejection_reason, created_at, updated_at`

func scanItem(row pgx.Row) (configuration.Item, error) {
	var (
		i       configuration.Item
		payload []byte
	)
	err := row.Scan(
		&i.ID, &i.Kind, &payload, &i.Status, &i.SubmittedAt, &i.CreatedBy,
		&i.ApprovedBy, &i.ApprovedAt, &i.RejectionReason, &i.CreatedAt, &i.UpdatedAt,
	)
	if err != nil {
		return configuration.Item{}, err
	}

	i.Payload, err = configuration.UnmarshalPayload(i.Kind, payload)
	if err != nil {
		return configuration.Item{}, err
	}
	return i, nil
}

func (r *configurationRepository) Create(ctx context.Context, item configuration.Item) (configuration.Item, error) {
	q := GetQuerier(ctx, r.db)

	payload, err := json.Marshal(item.Payload)
	if err != nil {
		return configuration.Item{}, fmt.Errorf("failed to encode payload: %w", err)
	}

	query := fmt.Sprintf(`
		INSERT INTO configuration_items (kind, payload, status, created_by)
		VALUES ($1, $2, $3, $4)
		RETURNING %s
	`, itemColumns)

	created, err := scanItem(q.QueryRow(ctx, query, item.Kind, payload, item.Status, item.CreatedBy))
	if err != nil {
		return configuration.Item{}, fmt.Errorf("failed to create configuration item: %w", err)
	}

	return created, nil
}

func (r *configurationRepository) GetByID(ctx context.Context, kind configuration.Kind, id string) (configuration.Item, error) {
	q := GetQuerier(ctx, r.db)

	query := fmt.Sprintf(`
		SELECT %s
		FROM configuration_items
		WHERE id = $1 AND kind = $2
	`, itemColumns)

	item, err := scanItem(q.QueryRow(ctx, query, id, kind))
	if err != nil {
		if err == pgx.ErrNoRows {
			return configuration.Item{}, configuration.ErrItemNotFound
		}
		return configuration.Item{}, fmt.Errorf("failed to get configuration item: %w", err)
	}

	return item, nil
}

func (r *configurationRepository) listWhere(ctx context.Context, condition string, args ...interface{}) ([]configuration.Item, error) {
	q := GetQuerier(ctx, r.db)

	query := fmt.Sprintf(`
		SELECT %s
		FROM configuration_items
		WHERE %s
		ORDER BY created_at
	`, itemColumns, condition)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list configuration items: %w", err)
	}
	defer rows.Close()

	var items []configuration.Item
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan configuration item: %w", err)
		}
		items = append(items, item)
	}

	return items, rows.Err()
}

func (r *configurationRepository) ListByKind(ctx context.Context, kind configuration.Kind) ([]configuration.Item, error) {
	return r.listWhere(ctx, "kind = $1", kind)
}

func (r *configurationRepository) ListApproved(ctx context.Context, kind configuration.Kind) ([]configuration.Item, error) {
	return r.listWhere(ctx, "kind = $1 AND status = $2", kind, configuration.StatusApproved)
}

// transition runs a conditional update. When no row matches, the item either
// does not exist (ErrItemNotFound) or is not in the state the transition
// requires (ErrInvalidStateTransition); the race loses loudly either way.
func (r *configurationRepository) transition(ctx context.Context, kind configuration.Kind, id string, set string, condition string, args ...interface{}) (configuration.Item, error) {
	q := GetQuerier(ctx, r.db)

	query := fmt.Sprintf(`
		UPDATE configuration_items
		SET %s, updated_at = NOW()
		WHERE id = $1 AND kind = $2 AND %s
		RETURNING %s
	`, set, condition, itemColumns)

	item, err := scanItem(q.QueryRow(ctx, query, args...))
	if err != nil {
		if err == pgx.ErrNoRows {
			if _, getErr := r.GetByID(ctx, kind, id); getErr != nil {
				return configuration.Item{}, getErr
			}
			return configuration.Item{}, configuration.ErrInvalidStateTransition
		}
		return configuration.Item{}, fmt.Errorf("failed to update configuration item: %w", err)
	}

	return item, nil
}

func (r *configurationRepository) MarkSubmitted(ctx context.Context, kind configuration.Kind, id string) (configuration.Item, error) {
	return r.transition(ctx, kind, id,
		"submitted_at = NOW()",
		"status = $3 AND submitted_at IS NULL",
		id, kind, configuration.StatusDraft,
	)
}

func (r *configurationRepository) Approve(ctx context.Context, kind configuration.Kind, id string, approverID string) (configuration.Item, error) {
	return r.transition(ctx, kind, id,
		"status = $3, approved_by = $4, approved_at = NOW()",
		"status = $5 AND submitted_at IS NOT NULL",
		id, kind, configuration.StatusApproved, approverID, configuration.StatusDraft,
	)
}

func (r *configurationRepository) Reject(ctx context.Context, kind configuration.Kind, id string, reason string) (configuration.Item, error) {
	return r.transition(ctx, kind, id,
		"status = $3, rejection_reason = $4",
		"status = $5 AND submitted_at IS NOT NULL",
		id, kind, configuration.StatusRejected, reason, configuration.StatusDraft,
	)
}

func (r *configurationRepository) ResetToDraft(ctx context.Context, kind configuration.Kind, id string, payload configuration.Payload) (configuration.Item, error) {
	encoded, err := json.Marshal(payload)
	if err != nil {
		return configuration.Item{}, fmt.Errorf("failed to encode payload: %w", err)
	}

	return r.transition(ctx, kind, id,
		"status = $3, payload = $4, rejection_reason = NULL, submitted_at = NULL",
		"status = $5",
		id, kind, configuration.StatusDraft, encoded, configuration.StatusRejected,
	)
}

func (r *configurationRepository) Delete(ctx context.Context, kind configuration.Kind, id string, expected configuration.Status) error {
	q := GetQuerier(ctx, r.db)

	query := `
		DELETE FROM configuration_items
		WHERE id = $1 AND kind = $2 AND status = $3
		RETURNING id
	`

	var deletedID string
	err := q.QueryRow(ctx, query, id, kind, expected).Scan(&deletedID)
	if err != nil {
		if err == pgx.ErrNoRows {
			if _, getErr := r.GetByID(ctx, kind, id); getErr != nil {
				return getErr
			}
			return configuration.ErrInvalidStateTransition
		}
		return fmt.Errorf("failed to delete configuration item: %w", err)
	}

	return nil
}

// GetActiveCompanySettings resolves the active settings as the most recently
// approved company_settings row; superseded rows stay stored for audit.
func (r *configurationRepository) GetActiveCompanySettings(ctx context.Context) (configuration.Item, error) {
	q := GetQuerier(ctx, r.db)

	query := fmt.Sprintf(`
		SELECT %s
		FROM configuration_items
		WHERE kind = $1 AND status = $2
		ORDER BY approved_at DESC
		LIMIT 1
	`, itemColumns)

	item, err := scanItem(q.QueryRow(ctx, query, configuration.KindCompanySettings, configuration.StatusApproved))
	if err != nil {
		if err == pgx.ErrNoRows {
			return configuration.Item{}, configuration.ErrNoActiveSettings
		}
		return configuration.Item{}, fmt.Errorf("failed to get active company settings: %w", err)
	}

	return item, nil
}
