package models

import "encoding/json"

// CreateJobRequest is the payload for posting a new job. The salary range is
// not cross-validated (salary_from <= salary_to is not enforced anywhere).
type CreateJobRequest struct {
	Title           string          `json:"title" validate:"required,max=120"`
	EmploymentType  string          `json:"employment_type" validate:"required,oneof=full-time part-time contract internship"`
	Location        string          `json:"location" validate:"required"`
	SalaryFrom      int             `json:"salary_from" validate:"gte=0"`
	SalaryTo        int             `json:"salary_to" validate:"gte=0"`
	Description     json.RawMessage `json:"description" validate:"required"`
	ListingDuration int             `json:"listing_duration" validate:"required,gte=1,lte=365"`
	Benefits        []string        `json:"benefits"`
}

// UpdateJobRequest replaces every editable field of a job post. Status is
// never editable through this path.
type UpdateJobRequest struct {
	Title           string          `json:"title" validate:"required,max=120"`
	EmploymentType  string          `json:"employment_type" validate:"required,oneof=full-time part-time contract internship"`
	Location        string          `json:"location" validate:"required"`
	SalaryFrom      int             `json:"salary_from" validate:"gte=0"`
	SalaryTo        int             `json:"salary_to" validate:"gte=0"`
	Description     json.RawMessage `json:"description" validate:"required"`
	ListingDuration int             `json:"listing_duration" validate:"required,gte=1,lte=365"`
	Benefits        []string        `json:"benefits"`
}

// CompanyOnboardingRequest creates the employer profile during onboarding.
type CompanyOnboardingRequest struct {
	Name     string `json:"name" validate:"required,min=2,max=100"`
	Location string `json:"location" validate:"required"`
	About    string `json:"about" validate:"required,min=10"`
	LogoURL  string `json:"logo_url" validate:"required,url"`
	Website  string `json:"website" validate:"required,url"`
	XAccount string `json:"x_account" validate:"omitempty,max=100"`
}

// JobSeekerOnboardingRequest creates the candidate profile during onboarding.
type JobSeekerOnboardingRequest struct {
	Name      string `json:"name" validate:"required,min=2,max=100"`
	About     string `json:"about" validate:"required,min=10"`
	ResumeURL string `json:"resume_url" validate:"required,url"`
}
