package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/Alifouanne/job-forge/internal/api/middleware"
)

func doLimited(t *testing.T, mw echo.MiddlewareFunc, ip string) int {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(echo.HeaderXRealIP, ip)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := mw(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})
	if err := handler(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	return rec.Code
}

func TestRateLimiter_AllowsWithinBurst(t *testing.T) {
	mw := middleware.NewRateLimiter(60, 3).Middleware()

	for i := 0; i < 3; i++ {
		if code := doLimited(t, mw, "10.0.0.1"); code != http.StatusOK {
			t.Fatalf("request %d: status = %d, want 200", i+1, code)
		}
	}
}

func TestRateLimiter_RejectsOverBurst(t *testing.T) {
	mw := middleware.NewRateLimiter(60, 2).Middleware()

	doLimited(t, mw, "10.0.0.2")
	doLimited(t, mw, "10.0.0.2")
	if code := doLimited(t, mw, "10.0.0.2"); code != http.StatusForbidden {
		t.Fatalf("third request: status = %d, want 403", code)
	}
}

func TestRateLimiter_PerClientBuckets(t *testing.T) {
	mw := middleware.NewRateLimiter(60, 1).Middleware()

	doLimited(t, mw, "10.0.0.3")
	if code := doLimited(t, mw, "10.0.0.3"); code != http.StatusForbidden {
		t.Fatalf("exhausted client: status = %d, want 403", code)
	}
	if code := doLimited(t, mw, "10.0.0.4"); code != http.StatusOK {
		t.Fatalf("fresh client: status = %d, want 200", code)
	}
}
