package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/Alifouanne/job-forge/pkg/models"
)

// EnsureUser inserts the user row on first sign-in or refreshes the identity
// fields on subsequent calls.
func (s *Store) EnsureUser(ctx context.Context, id, email, name string) (models.User, error) {
	var u models.User
	err := s.pool.QueryRow(ctx,
		`INSERT INTO users (id, email, name)
		 VALUES ($1, $2, $3)
		 ON CONFLICT (id) DO UPDATE SET email = EXCLUDED.email, name = EXCLUDED.name
		 RETURNING id, email, name, onboarding_completed,
		           COALESCE(user_type, ''), COALESCE(payment_customer_id, ''), created_at`,
		id, email, name,
	).Scan(&u.ID, &u.Email, &u.Name, &u.OnboardingCompleted, &u.UserType, &u.PaymentCustomerID, &u.CreatedAt)
	if err != nil {
		return models.User{}, fmt.Errorf("ensureUser: %w", err)
	}
	return u, nil
}

// GetAccount returns the user together with whichever profile exists.
func (s *Store) GetAccount(ctx context.Context, userID string) (*models.Account, error) {
	var (
		a         models.Account
		company   models.Company
		seeker    models.JobSeeker
		companyID *string
		seekerID  *string
	)
	err := s.pool.QueryRow(ctx,
		`SELECT u.id, u.email, u.name, u.onboarding_completed,
		        COALESCE(u.user_type, ''), COALESCE(u.payment_customer_id, ''), u.created_at,
		        c.id, COALESCE(c.name, ''), COALESCE(c.location, ''), COALESCE(c.about, ''),
		        COALESCE(c.logo_url, ''), COALESCE(c.website, ''), COALESCE(c.x_account, ''),
		        js.id, COALESCE(js.name, ''), COALESCE(js.about, ''), COALESCE(js.resume_url, '')
		 FROM users u
		 LEFT JOIN companies c ON c.user_id = u.id
		 LEFT JOIN job_seekers js ON js.user_id = u.id
		 WHERE u.id = $1`,
		userID,
	).Scan(
		&a.User.ID, &a.User.Email, &a.User.Name, &a.User.OnboardingCompleted,
		&a.User.UserType, &a.User.PaymentCustomerID, &a.User.CreatedAt,
		&companyID, &company.Name, &company.Location, &company.About,
		&company.LogoURL, &company.Website, &company.XAccount,
		&seekerID, &seeker.Name, &seeker.About, &seeker.ResumeURL,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("getAccount: %w", err)
	}

	if companyID != nil {
		company.ID = *companyID
		company.UserID = a.User.ID
		a.Company = &company
	}
	if seekerID != nil {
		seeker.ID = *seekerID
		seeker.UserID = a.User.ID
		a.JobSeeker = &seeker
	}
	return &a, nil
}

// CreateCompany creates the employer profile and completes onboarding.
// The onboarding flow keeps profiles mutually exclusive; a job seeker
// profile on the same user rejects the insert with ErrProfileConflict.
func (s *Store) CreateCompany(ctx context.Context, userID string, req models.CompanyOnboardingRequest) (*models.Company, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("createCompany begin: %w", err)
	}
	defer tx.Rollback(ctx)

	var seekerExists bool
	if err := tx.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM job_seekers WHERE user_id = $1)`, userID,
	).Scan(&seekerExists); err != nil {
		return nil, fmt.Errorf("createCompany profile check: %w", err)
	}
	if seekerExists {
		return nil, ErrProfileConflict
	}

	var c models.Company
	err = tx.QueryRow(ctx,
		`INSERT INTO companies (user_id, name, location, about, logo_url, website, x_account)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING id, user_id, name, location, about, logo_url, website, COALESCE(x_account, '')`,
		userID, req.Name, req.Location, req.About, req.LogoURL, req.Website, req.XAccount,
	).Scan(&c.ID, &c.UserID, &c.Name, &c.Location, &c.About, &c.LogoURL, &c.Website, &c.XAccount)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrDuplicate
		}
		return nil, fmt.Errorf("createCompany insert: %w", err)
	}

	if _, err := tx.Exec(ctx,
		`UPDATE users SET onboarding_completed = true, user_type = 'COMPANY' WHERE id = $1`,
		userID,
	); err != nil {
		return nil, fmt.Errorf("createCompany user update: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("createCompany commit: %w", err)
	}
	return &c, nil
}

// CreateJobSeeker creates the candidate profile and completes onboarding.
func (s *Store) CreateJobSeeker(ctx context.Context, userID string, req models.JobSeekerOnboardingRequest) (*models.JobSeeker, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("createJobSeeker begin: %w", err)
	}
	defer tx.Rollback(ctx)

	var companyExists bool
	if err := tx.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM companies WHERE user_id = $1)`, userID,
	).Scan(&companyExists); err != nil {
		return nil, fmt.Errorf("createJobSeeker profile check: %w", err)
	}
	if companyExists {
		return nil, ErrProfileConflict
	}

	var js models.JobSeeker
	err = tx.QueryRow(ctx,
		`INSERT INTO job_seekers (user_id, name, about, resume_url)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, user_id, name, about, resume_url`,
		userID, req.Name, req.About, req.ResumeURL,
	).Scan(&js.ID, &js.UserID, &js.Name, &js.About, &js.ResumeURL)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrDuplicate
		}
		return nil, fmt.Errorf("createJobSeeker insert: %w", err)
	}

	if _, err := tx.Exec(ctx,
		`UPDATE users SET onboarding_completed = true, user_type = 'JOB_SEEKER' WHERE id = $1`,
		userID,
	); err != nil {
		return nil, fmt.Errorf("createJobSeeker user update: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("createJobSeeker commit: %w", err)
	}
	return &js, nil
}

// SetPaymentCustomer links the processor's customer reference to the user.
func (s *Store) SetPaymentCustomer(ctx context.Context, userID, customerID string) error {
	tag, err := s.pool.Exec(ctx,
		`UPDATE users SET payment_customer_id = $1 WHERE id = $2`,
		customerID, userID,
	)
	if err != nil {
		return fmt.Errorf("setPaymentCustomer: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// CompanyByPaymentCustomer resolves the company owned by the user linked to
// the given payment customer reference. Used by the payment webhook.
func (s *Store) CompanyByPaymentCustomer(ctx context.Context, customerID string) (*models.Company, error) {
	var c models.Company
	err := s.pool.QueryRow(ctx,
		`SELECT c.id, c.user_id, c.name, c.location, c.about, c.logo_url, c.website, COALESCE(c.x_account, '')
		 FROM companies c
		 JOIN users u ON u.id = c.user_id
		 WHERE u.payment_customer_id = $1`,
		customerID,
	).Scan(&c.ID, &c.UserID, &c.Name, &c.Location, &c.About, &c.LogoURL, &c.Website, &c.XAccount)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("companyByPaymentCustomer: %w", err)
	}
	return &c, nil
}

// isUniqueViolation reports whether err is a PostgreSQL unique-constraint
// violation (SQLSTATE 23505).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
