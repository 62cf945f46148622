package postgres

import (
	"context"
	"database/sql"

	"scopeapi/internal/model"
	"scopeapi/internal/repository"
)

// SubmissionPostgres is a PostgreSQL implementation of repository.SubmissionRepository.
// It uses database/sql with parameterized queries and contains no business logic.
type SubmissionPostgres struct {
	db *sql.DB
}

// NewSubmissionPostgres creates a new SubmissionPostgres repository.
func NewSubmissionPostgres(db *sql.DB) *SubmissionPostgres {
	return &SubmissionPostgres{db: db}
}

var _ repository.SubmissionRepository = (*SubmissionPostgres)(nil)

// Create inserts a new submission metadata row and returns the stored record.
func (r *SubmissionPostgres) Create(ctx context.Context, sub *model.Submission) (*model.Submission, error) {
	const q = `
		INSERT INTO submissions (id, user_email, storage_key, file_count, submitted_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, user_email, storage_key, file_count, submitted_at
	`
	row := r.db.QueryRowContext(ctx, q,
		sub.ID,
		sub.UserEmail,
		sub.StorageKey,
		sub.FileCount,
		sub.SubmittedAt,
	)
	var out model.Submission
	if err := row.Scan(
		&out.ID,
		&out.UserEmail,
		&out.StorageKey,
		&out.FileCount,
		&out.SubmittedAt,
	); err != nil {
		return nil, err
	}
	return &out, nil
}

// FindByID fetches a single submission metadata row by its ID.
func (r *SubmissionPostgres) FindByID(ctx context.Context, id string) (*model.Submission, error) {
	const q = `
		SELECT id, user_email, storage_key, file_count, submitted_at
		FROM submissions
		WHERE id = $1
	`
	row := r.db.QueryRowContext(ctx, q, id)
	var s model.Submission
	if err := row.Scan(
		&s.ID,
		&s.UserEmail,
		&s.StorageKey,
		&s.FileCount,
		&s.SubmittedAt,
	); err != nil {
		return nil, err
	}
	return &s, nil
}

// List returns submissions using LIMIT/OFFSET pagination and a total count.
func (r *SubmissionPostgres) List(ctx context.Context, pq repository.PageQuery) (*repository.PageResult[model.Submission], error) {
	// Count total rows
	const qCount = `SELECT COUNT(*) FROM submissions`
	var total int
	if err := r.db.QueryRowContext(ctx, qCount).Scan(&total); err != nil {
		return nil, err
	}

	// Fetch page
	const qList = `
		SELECT id, user_email, storage_key, file_count, submitted_at
		FROM submissions
		ORDER BY submitted_at DESC, id DESC
		LIMIT $1 OFFSET $2
	`
	rows, err := r.db.QueryContext(ctx, qList, pq.Limit, pq.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.Submission, 0)
	for rows.Next() {
		var s model.Submission
		if err := rows.Scan(
			&s.ID,
			&s.UserEmail,
			&s.StorageKey,
			&s.FileCount,
			&s.SubmittedAt,
		); err != nil {
			return nil, err
		}
		items = append(items, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &repository.PageResult[model.Submission]{
		Items: items,
		Total: total,
	}, nil
}
