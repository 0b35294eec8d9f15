package benefit

import "context"

// Repository defines data access for employee benefit links. Status
// transitions are conditional on the expected current status, mirroring the
// configuration repository.
type Repository interface {
	Create(ctx context.Context, link Link) (Link, error)
	GetByID(ctx context.Context, id string) (Link, error)
	ListByEmployee(ctx context.Context, employeeID string) ([]Link, error)

	// GetByEmployeeAndType finds the employee's link of the given type in the
	// given status.
	GetByEmployeeAndType(ctx context.Context, employeeID string, linkType LinkType, status Status) (Link, error)

	Approve(ctx context.Context, id string, approverID string) (Link, error)
	Reject(ctx context.Context, id string, reason string) (Link, error)
	MarkPaid(ctx context.Context, id string) (Link, error)

	// Delete removes a link only while its status matches expected.
	Delete(ctx context.Context, id string, expected Status) error
}
