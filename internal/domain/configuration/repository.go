package configuration

import "context"

// Repository defines data access for configuration items. Status transitions
// are conditional updates: each takes the precondition the caller observed and
// fails with ErrInvalidStateTransition when the stored row no longer matches,
// so racing approvals fail loudly instead of double-applying.
type Repository interface {
	Create(ctx context.Context, item Item) (Item, error)
	GetByID(ctx context.Context, kind Kind, id string) (Item, error)
	ListByKind(ctx context.Context, kind Kind) ([]Item, error)
	ListApproved(ctx context.Context, kind Kind) ([]Item, error)

	// MarkSubmitted sets the submitted marker on a draft item that has not
	// been submitted yet.
	MarkSubmitted(ctx context.Context, kind Kind, id string) (Item, error)
	// Approve transitions a submitted draft to approved.
	Approve(ctx context.Context, kind Kind, id string, approverID string) (Item, error)
	// Reject transitions a submitted draft to rejected with a reason.
	Reject(ctx context.Context, kind Kind, id string, reason string) (Item, error)
	// ResetToDraft replaces the payload of a rejected item and returns it to
	// draft, clearing rejection metadata and the submitted marker.
	ResetToDraft(ctx context.Context, kind Kind, id string, payload Payload) (Item, error)

	// Delete removes an item only while its status matches expected.
	Delete(ctx context.Context, kind Kind, id string, expected Status) error

	// GetActiveCompanySettings resolves the most recently approved
	// company_settings item.
	GetActiveCompanySettings(ctx context.Context) (Item, error)
}
