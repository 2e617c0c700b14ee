package models

import "time"

// ProfileKind tags which onboarding profile an account carries.
type ProfileKind string

const (
	ProfileCompany   ProfileKind = "COMPANY"
	ProfileJobSeeker ProfileKind = "JOB_SEEKER"
	ProfileUnset     ProfileKind = "UNSET"
)

// User is the identity record created on first external sign-in.
type User struct {
	ID                  string    `json:"id"`
	Email               string    `json:"email"`
	Name                string    `json:"name"`
	OnboardingCompleted bool      `json:"onboarding_completed"`
	UserType            string    `json:"user_type"`
	PaymentCustomerID   string    `json:"-"`
	CreatedAt           time.Time `json:"created_at"`
}

// Company is an employer profile, owned by exactly one user.
type Company struct {
	ID       string `json:"id"`
	UserID   string `json:"user_id"`
	Name     string `json:"name"`
	Location string `json:"location"`
	About    string `json:"about"`
	LogoURL  string `json:"logo_url"`
	Website  string `json:"website"`
	XAccount string `json:"x_account,omitempty"`
}

// JobSeeker is a candidate profile, owned by exactly one user.
type JobSeeker struct {
	ID        string `json:"id"`
	UserID    string `json:"user_id"`
	Name      string `json:"name"`
	About     string `json:"about"`
	ResumeURL string `json:"resume_url"`
}

// Account is a user together with at most one profile. The onboarding flow
// keeps Company and JobSeeker mutually exclusive; the schema does not, so
// Profile treats a row with both as a company account.
type Account struct {
	User      User       `json:"user"`
	Company   *Company   `json:"company,omitempty"`
	JobSeeker *JobSeeker `json:"job_seeker,omitempty"`
}

// Profile returns the tagged variant for this account.
func (a *Account) Profile() ProfileKind {
	switch {
	case a.Company != nil:
		return ProfileCompany
	case a.JobSeeker != nil:
		return ProfileJobSeeker
	default:
		return ProfileUnset
	}
}
