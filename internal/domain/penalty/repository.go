package penalty

import "context"

type Repository interface {
	ListByEmployee(ctx context.Context, employeeID string) ([]Penalty, error)
}
