package models

import (
	"encoding/json"
	"time"
)

// JobPost is a job posting as persisted in the job_posts table.
// Description is an opaque versioned rich-text document; only the renderer
// understands its internals, the API just checks that it parses as JSON.
type JobPost struct {
	ID              string          `json:"id"`
	CompanyID       string          `json:"company_id"`
	Title           string          `json:"title"`
	EmploymentType  string          `json:"employment_type"`
	Location        string          `json:"location"`
	SalaryFrom      int             `json:"salary_from"`
	SalaryTo        int             `json:"salary_to"`
	Description     json.RawMessage `json:"description"`
	ListingDuration int             `json:"listing_duration"`
	Benefits        []string        `json:"benefits"`
	Status          string          `json:"status"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// JobSummary is the listing-row projection of a job post joined with the
// minimal company display fields.
type JobSummary struct {
	ID             string    `json:"id"`
	Title          string    `json:"title"`
	EmploymentType string    `json:"employment_type"`
	Location       string    `json:"location"`
	SalaryFrom     int       `json:"salary_from"`
	SalaryTo       int       `json:"salary_to"`
	CreatedAt      time.Time `json:"created_at"`
	CompanyName    string    `json:"company_name"`
	CompanyLogo    string    `json:"company_logo"`
}

// JobDetail is the full job post plus the owning company's display fields,
// as served on the job detail view.
type JobDetail struct {
	JobPost
	CompanyName     string `json:"company_name"`
	CompanyLogo     string `json:"company_logo"`
	CompanyLocation string `json:"company_location"`
	CompanyAbout    string `json:"company_about"`
}

// SavedJob records a user's interest in a job post. Unique per (user, job).
type SavedJob struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	JobPostID string    `json:"job_post_id"`
	CreatedAt time.Time `json:"created_at"`
}
