// Package handlers contains the echo HTTP handlers. Each handler takes its
// dependencies as narrow interfaces so tests can substitute fakes; the
// concrete store, cache, scheduler and payments client satisfy them.
package handlers

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"github.com/Alifouanne/job-forge/pkg/models"
	"github.com/Alifouanne/job-forge/pkg/utils"
)

var validate = validator.New()

// requestIDFrom returns the request id set by the validation middleware,
// generating one for requests that bypassed it.
func requestIDFrom(c echo.Context) string {
	if id, ok := c.Get("request_id").(string); ok && id != "" {
		return id
	}
	return utils.GenerateRequestID()
}

func errorResponse(code, message, requestID string) models.ErrorResponse {
	return models.ErrorResponse{
		Error:     code,
		Message:   message,
		RequestID: requestID,
		Timestamp: time.Now(),
	}
}
