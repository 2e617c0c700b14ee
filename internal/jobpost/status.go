// Package jobpost defines the lifecycle state machine for job postings.
//
// Valid status graph:
//
//	DRAFT ──► ACTIVE ──► EXPIRE
//	  │                    ▲
//	  └────────────────────┘
//
// A post is created as DRAFT pending payment, moves to ACTIVE on a
// confirmed payment webhook, and to EXPIRE when the scheduled expiration
// fires. EXPIRE is terminal. Deletion removes the row outright and is not
// a status transition.
package jobpost

import "fmt"

// Status values as persisted in job_posts.status.
type Status string

const (
	StatusDraft  Status = "DRAFT"
	StatusActive Status = "ACTIVE"
	StatusExpire Status = "EXPIRE"
)

// validTransitions lists every allowed (from → to) pair.
var validTransitions = map[Status][]Status{
	StatusDraft:  {StatusActive, StatusExpire},
	StatusActive: {StatusExpire},
	// EXPIRE is terminal
}

// ParseStatus converts a raw string to a Status, returning an error for
// unknown values.
func ParseStatus(s string) (Status, error) {
	st := Status(s)
	switch st {
	case StatusDraft, StatusActive, StatusExpire:
		return st, nil
	}
	return "", fmt.Errorf("unknown job post status %q", s)
}

// IsTransitionAllowed returns true when moving from → to is permitted by the
// state machine.
func IsTransitionAllowed(from, to Status) bool {
	allowed, ok := validTransitions[from]
	if !ok {
		return false // terminal state
	}
	for _, s := range allowed {
		if s == to {
			return true
		}
	}
	return false
}

// IsTerminal returns true when status has no outgoing transitions.
func IsTerminal(s Status) bool {
	_, ok := validTransitions[s]
	return !ok
}
