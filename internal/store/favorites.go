package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/Alifouanne/job-forge/pkg/models"
)

// SaveJob records a job post in the user's favorites. Saving the same post
// twice returns ErrDuplicate; a missing post returns ErrNotFound via the
// foreign key.
func (s *Store) SaveJob(ctx context.Context, userID, jobID string) (*models.SavedJob, error) {
	var sj models.SavedJob
	err := s.pool.QueryRow(ctx,
		`INSERT INTO saved_jobs (user_id, job_post_id)
		 VALUES ($1, $2)
		 RETURNING id, user_id, job_post_id, created_at`,
		userID, jobID,
	).Scan(&sj.ID, &sj.UserID, &sj.JobPostID, &sj.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrDuplicate
		}
		if isForeignKeyViolation(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("saveJob: %w", err)
	}
	return &sj, nil
}

// UnsaveJob deletes a saved record by its own id, scoped to the user who
// created it, and returns the job post the record pointed at so callers can
// invalidate its cached detail view. Zero matched rows is ErrNotFound.
func (s *Store) UnsaveJob(ctx context.Context, userID, savedID string) (string, error) {
	var jobID string
	err := s.pool.QueryRow(ctx,
		`DELETE FROM saved_jobs WHERE id = $1 AND user_id = $2
		 RETURNING job_post_id`,
		savedID, userID,
	).Scan(&jobID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("unsaveJob: %w", err)
	}
	return jobID, nil
}

// SavedRecord looks up the user's saved record for a job post, if any.
// ErrNotFound here simply means "not saved".
func (s *Store) SavedRecord(ctx context.Context, userID, jobID string) (*models.SavedJob, error) {
	var sj models.SavedJob
	err := s.pool.QueryRow(ctx,
		`SELECT id, user_id, job_post_id, created_at
		 FROM saved_jobs
		 WHERE user_id = $1 AND job_post_id = $2`,
		userID, jobID,
	).Scan(&sj.ID, &sj.UserID, &sj.JobPostID, &sj.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("savedRecord: %w", err)
	}
	return &sj, nil
}

// isForeignKeyViolation reports whether err is a PostgreSQL foreign-key
// violation (SQLSTATE 23503).
func isForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23503"
}
