package models

import "time"

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error     string    `json:"error"`
	Message   string    `json:"message"`
	RequestID string    `json:"request_id"`
	Timestamp time.Time `json:"timestamp"`
}

// HealthResponse represents the health check response
type HealthResponse struct {
	Status    string            `json:"status"`
	Timestamp time.Time         `json:"timestamp"`
	Version   string            `json:"version"`
	Uptime    time.Duration     `json:"uptime"`
	Checks    map[string]string `json:"checks,omitempty"`
}

// ListingResponse is one page of active job postings.
type ListingResponse struct {
	Jobs       []JobSummary `json:"jobs"`
	Page       int          `json:"page"`
	PageSize   int          `json:"page_size"`
	TotalPages int          `json:"total_pages"`
}

// JobDetailResponse is the detail view plus the caller's saved state.
// SavedID is empty when the caller has not saved the job (or is anonymous).
type JobDetailResponse struct {
	Job     JobDetail `json:"job"`
	Saved   bool      `json:"saved"`
	SavedID string    `json:"saved_id,omitempty"`
}

// CreateJobResponse carries the freshly created (still inactive) post and
// the payment page the caller must be redirected to.
type CreateJobResponse struct {
	Job         JobPost `json:"job"`
	CheckoutURL string  `json:"checkout_url"`
}
