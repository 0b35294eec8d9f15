package payrollrun

import "context"

type Repository interface {
	// CreateRunWithDetails persists the run record and all its detail rows
	// atomically; nothing is written if any insert fails.
	CreateRunWithDetails(ctx context.Context, run RunRecord, details []Detail) (RunRecord, error)

	GetRunByID(ctx context.Context, id string) (RunRecord, error)
	ListRuns(ctx context.Context, filter RunFilter) ([]RunRecord, error)
	ListDetails(ctx context.Context, runID string) ([]Detail, error)
}
