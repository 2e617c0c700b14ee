package middleware

import (
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/Alifouanne/job-forge/internal/identity"
	"github.com/Alifouanne/job-forge/pkg/models"
)

// identityKey is the echo context key holding the resolved identity.
const identityKey = "identity"

// RequireAuth rejects requests without a valid Bearer session token. The 401
// response carries the login URL so clients know where to send the user.
func RequireAuth(sessionSecret, loginURL string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token := bearerToken(c)
			if token == "" {
				return unauthorized(c, loginURL)
			}

			id, err := identity.VerifySession(token, sessionSecret)
			if err != nil {
				return unauthorized(c, loginURL)
			}

			c.Set(identityKey, id)
			return next(c)
		}
	}
}

// OptionalAuth resolves the identity when a valid token is present but lets
// anonymous requests through. Used on the public job detail route, where the
// saved state is only meaningful for signed-in users.
func OptionalAuth(sessionSecret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if token := bearerToken(c); token != "" {
				if id, err := identity.VerifySession(token, sessionSecret); err == nil {
					c.Set(identityKey, id)
				}
			}
			return next(c)
		}
	}
}

// IdentityFrom returns the authenticated identity set by RequireAuth or
// OptionalAuth, or nil for anonymous requests.
func IdentityFrom(c echo.Context) *identity.Identity {
	id, _ := c.Get(identityKey).(*identity.Identity)
	return id
}

func bearerToken(c echo.Context) string {
	header := c.Request().Header.Get(echo.HeaderAuthorization)
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

func unauthorized(c echo.Context, loginURL string) error {
	requestID, _ := c.Get("request_id").(string)
	c.Response().Header().Set("Location", loginURL)
	return c.JSON(http.StatusUnauthorized, models.ErrorResponse{
		Error:     "unauthorized",
		Message:   "Sign in to continue",
		RequestID: requestID,
		Timestamp: time.Now(),
	})
}
