// Package identity resolves the external identity provider's session tokens
// into an explicit per-request identity. Handlers receive the identity
// through the request context instead of reading ambient globals.
package identity

import (
	"errors"
	"fmt"

	"github.com/dgrijalva/jwt-go"
)

// Identity is the resolved caller of a request.
type Identity struct {
	UserID string
	Email  string
	Name   string
}

// SessionClaims is the JWT payload issued by the identity provider.
// Subject carries the user id.
type SessionClaims struct {
	Email string `json:"email"`
	Name  string `json:"name"`
	jwt.StandardClaims
}

var ErrInvalidSession = errors.New("invalid session token")

// VerifySession validates an HS256 session token against the shared secret
// and returns the identity it carries.
func VerifySession(tokenStr, secret string) (*Identity, error) {
	claims := &SessionClaims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidSession
	}
	if claims.Subject == "" {
		return nil, ErrInvalidSession
	}

	return &Identity{
		UserID: claims.Subject,
		Email:  claims.Email,
		Name:   claims.Name,
	}, nil
}
