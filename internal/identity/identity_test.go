package identity_test

import (
	"testing"
	"time"

	"github.com/dgrijalva/jwt-go"

	"github.com/Alifouanne/job-forge/internal/identity"
)

const testSecret = "test-session-secret"

func signSession(t *testing.T, claims identity.SessionClaims, secret string) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("signing session token: %v", err)
	}
	return signed
}

func TestVerifySession_Valid(t *testing.T) {
	tokenStr := signSession(t, identity.SessionClaims{
		Email: "ava@example.com",
		Name:  "Ava",
		StandardClaims: jwt.StandardClaims{
			Subject:   "user-123",
			ExpiresAt: time.Now().Add(time.Hour).Unix(),
		},
	}, testSecret)

	ident, err := identity.VerifySession(tokenStr, testSecret)
	if err != nil {
		t.Fatalf("VerifySession returned unexpected error: %v", err)
	}
	if ident.UserID != "user-123" {
		t.Errorf("UserID = %q, want %q", ident.UserID, "user-123")
	}
	if ident.Email != "ava@example.com" {
		t.Errorf("Email = %q, want %q", ident.Email, "ava@example.com")
	}
	if ident.Name != "Ava" {
		t.Errorf("Name = %q, want %q", ident.Name, "Ava")
	}
}

func TestVerifySession_WrongSecret(t *testing.T) {
	tokenStr := signSession(t, identity.SessionClaims{
		StandardClaims: jwt.StandardClaims{
			Subject:   "user-123",
			ExpiresAt: time.Now().Add(time.Hour).Unix(),
		},
	}, "another-secret")

	if _, err := identity.VerifySession(tokenStr, testSecret); err == nil {
		t.Error("VerifySession with wrong secret expected error, got nil")
	}
}

func TestVerifySession_Expired(t *testing.T) {
	tokenStr := signSession(t, identity.SessionClaims{
		StandardClaims: jwt.StandardClaims{
			Subject:   "user-123",
			ExpiresAt: time.Now().Add(-time.Minute).Unix(),
		},
	}, testSecret)

	if _, err := identity.VerifySession(tokenStr, testSecret); err == nil {
		t.Error("VerifySession with expired token expected error, got nil")
	}
}

func TestVerifySession_MissingSubject(t *testing.T) {
	tokenStr := signSession(t, identity.SessionClaims{
		Email: "no-subject@example.com",
		StandardClaims: jwt.StandardClaims{
			ExpiresAt: time.Now().Add(time.Hour).Unix(),
		},
	}, testSecret)

	if _, err := identity.VerifySession(tokenStr, testSecret); err == nil {
		t.Error("VerifySession without subject expected error, got nil")
	}
}

func TestVerifySession_Garbage(t *testing.T) {
	if _, err := identity.VerifySession("not-a-token", testSecret); err == nil {
		t.Error("VerifySession with garbage input expected error, got nil")
	}
}
