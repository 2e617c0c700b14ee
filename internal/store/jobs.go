package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/Alifouanne/job-forge/internal/jobpost"
	"github.com/Alifouanne/job-forge/pkg/models"
)

const jobPostColumns = `id, company_id, title, employment_type, location,
	salary_from, salary_to, description, listing_duration, benefits,
	status, created_at, updated_at`

// CreateJob inserts a new job post in DRAFT status for the given company.
// Activation happens later through the payment webhook.
func (s *Store) CreateJob(ctx context.Context, companyID string, req models.CreateJobRequest) (*models.JobPost, error) {
	var jp models.JobPost
	err := s.pool.QueryRow(ctx,
		`INSERT INTO job_posts
		   (company_id, title, employment_type, location, salary_from, salary_to,
		    description, listing_duration, benefits, status)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, 'DRAFT')
		 RETURNING `+jobPostColumns,
		companyID, req.Title, req.EmploymentType, req.Location, req.SalaryFrom,
		req.SalaryTo, req.Description, req.ListingDuration, req.Benefits,
	).Scan(
		&jp.ID, &jp.CompanyID, &jp.Title, &jp.EmploymentType, &jp.Location,
		&jp.SalaryFrom, &jp.SalaryTo, &jp.Description, &jp.ListingDuration,
		&jp.Benefits, &jp.Status, &jp.CreatedAt, &jp.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("createJob: %w", err)
	}
	return &jp, nil
}

// UpdateJob replaces every editable field of a job post. The update is
// scoped to posts whose company belongs to userID; zero matched rows is
// ErrNotFound whether the post is missing or owned by someone else.
func (s *Store) UpdateJob(ctx context.Context, userID, jobID string, req models.UpdateJobRequest) (*models.JobPost, error) {
	var jp models.JobPost
	err := s.pool.QueryRow(ctx,
		`UPDATE job_posts
		 SET title = $1, employment_type = $2, location = $3, salary_from = $4,
		     salary_to = $5, description = $6, listing_duration = $7,
		     benefits = $8, updated_at = NOW()
		 WHERE id = $9
		   AND company_id IN (SELECT id FROM companies WHERE user_id = $10)
		 RETURNING `+jobPostColumns,
		req.Title, req.EmploymentType, req.Location, req.SalaryFrom, req.SalaryTo,
		req.Description, req.ListingDuration, req.Benefits, jobID, userID,
	).Scan(
		&jp.ID, &jp.CompanyID, &jp.Title, &jp.EmploymentType, &jp.Location,
		&jp.SalaryFrom, &jp.SalaryTo, &jp.Description, &jp.ListingDuration,
		&jp.Benefits, &jp.Status, &jp.CreatedAt, &jp.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("updateJob: %w", err)
	}
	return &jp, nil
}

// DeleteJob removes a job post under the same ownership scope as UpdateJob.
func (s *Store) DeleteJob(ctx context.Context, userID, jobID string) error {
	tag, err := s.pool.Exec(ctx,
		`DELETE FROM job_posts
		 WHERE id = $1
		   AND company_id IN (SELECT id FROM companies WHERE user_id = $2)`,
		jobID, userID,
	)
	if err != nil {
		return fmt.Errorf("deleteJob: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// GetActiveJob returns the detail view of a single ACTIVE job post. Posts in
// any other status are invisible to job seekers.
func (s *Store) GetActiveJob(ctx context.Context, jobID string) (*models.JobDetail, error) {
	var jd models.JobDetail
	err := s.pool.QueryRow(ctx,
		`SELECT jp.id, jp.company_id, jp.title, jp.employment_type, jp.location,
		        jp.salary_from, jp.salary_to, jp.description, jp.listing_duration,
		        jp.benefits, jp.status, jp.created_at, jp.updated_at,
		        c.name, c.logo_url, c.location, c.about
		 FROM job_posts jp
		 JOIN companies c ON c.id = jp.company_id
		 WHERE jp.id = $1 AND jp.status = 'ACTIVE'`,
		jobID,
	).Scan(
		&jd.ID, &jd.CompanyID, &jd.Title, &jd.EmploymentType, &jd.Location,
		&jd.SalaryFrom, &jd.SalaryTo, &jd.Description, &jd.ListingDuration,
		&jd.Benefits, &jd.Status, &jd.CreatedAt, &jd.UpdatedAt,
		&jd.CompanyName, &jd.CompanyLogo, &jd.CompanyLocation, &jd.CompanyAbout,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("getActiveJob: %w", err)
	}
	return &jd, nil
}

// activateQuery carries the DRAFT guard in the statement itself so the
// transition check and the write are atomic; a concurrent expiration can
// never be overwritten back to ACTIVE.
const activateQuery = `UPDATE job_posts SET status = 'ACTIVE', updated_at = NOW()
	 WHERE id = $1 AND company_id = $2 AND status = 'DRAFT'`

// ActivateJob moves a job post to ACTIVE after payment confirmation, scoped
// by post id and owning company. A redelivered webhook for an already
// active post is a no-op.
func (s *Store) ActivateJob(ctx context.Context, companyID, jobID string) error {
	tag, err := s.pool.Exec(ctx, activateQuery, jobID, companyID)
	if err != nil {
		return fmt.Errorf("activateJob: %w", err)
	}
	if tag.RowsAffected() == 1 {
		return nil
	}

	// Zero rows: missing, not ours, already active, or expired. Read back
	// to tell them apart.
	var currentStr string
	err = s.pool.QueryRow(ctx,
		`SELECT status FROM job_posts WHERE id = $1 AND company_id = $2`,
		jobID, companyID,
	).Scan(&currentStr)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNotFound
		}
		return fmt.Errorf("activateJob status read: %w", err)
	}

	current, err := jobpost.ParseStatus(currentStr)
	if err != nil {
		return fmt.Errorf("activateJob: %w", err)
	}
	switch {
	case current == jobpost.StatusActive:
		return nil // webhook redelivery
	case jobpost.IsTransitionAllowed(current, jobpost.StatusActive):
		// The guarded update lost a race against another writer but the
		// post is activatable again; retrying converges.
		return s.ActivateJob(ctx, companyID, jobID)
	default:
		return ErrInvalidTransition
	}
}

const expireQuery = `UPDATE job_posts SET status = 'EXPIRE', updated_at = NOW()
	 WHERE id = $1 AND status <> 'EXPIRE'`

// ExpireJob marks a job post EXPIRE when its listing duration has elapsed.
// Expiring a deleted or already expired post is a no-op; the scheduler's
// queue is at-least-once.
func (s *Store) ExpireJob(ctx context.Context, jobID string) error {
	_, err := s.pool.Exec(ctx, expireQuery, jobID)
	if err != nil {
		return fmt.Errorf("expireJob: %w", err)
	}
	return nil
}
