package repository

import (
	"context"

	"scopeapi/internal/model"
)

// SubmissionRepository defines data access for the submission metadata
// index. No business logic here — strictly persistence operations.
// Submissions are immutable once created, so there are no update or
// delete operations.
type SubmissionRepository interface {
	// Create inserts a new submission metadata row.
	// Returns the stored row (may include values set by the DB).
	Create(ctx context.Context, sub *model.Submission) (*model.Submission, error)

	// FindByID returns a submission metadata row by its ID.
	FindByID(ctx context.Context, id string) (*model.Submission, error)

	// List returns a paginated list of submissions, newest first, and the total row count.
	List(ctx context.Context, pq PageQuery) (*PageResult[model.Submission], error)
}
