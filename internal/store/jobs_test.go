package store

import (
	"strings"
	"testing"
)

// Status correctness relies on the guard living inside the statement, not
// on a read-then-write sequence in Go. A payment webhook racing the
// expiration sweep must never resurrect an EXPIRE post.
func TestActivateQueryGuardsInStatement(t *testing.T) {
	if !strings.Contains(activateQuery, "status = 'DRAFT'") {
		t.Errorf("activate statement must only match DRAFT posts: %s", activateQuery)
	}
	if !strings.Contains(activateQuery, "company_id = $2") {
		t.Errorf("activate statement must be ownership-scoped: %s", activateQuery)
	}
}

func TestExpireQueryGuardsInStatement(t *testing.T) {
	if !strings.Contains(expireQuery, "status <> 'EXPIRE'") {
		t.Errorf("expire statement must skip already expired posts: %s", expireQuery)
	}
}
