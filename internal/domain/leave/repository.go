package leave

import (
	"context"
	"time"
)

type Repository interface {
	GetBalance(ctx context.Context, employeeID string, periodDate time.Time) (Balance, error)
}
