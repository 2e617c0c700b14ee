package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Alifouanne/job-forge/internal/api/middleware"
	"github.com/Alifouanne/job-forge/internal/logging"
	"github.com/Alifouanne/job-forge/internal/store"
	"github.com/Alifouanne/job-forge/pkg/models"
)

// AccountStore covers the onboarding operations.
type AccountStore interface {
	EnsureUser(ctx context.Context, id, email, name string) (models.User, error)
	CreateCompany(ctx context.Context, userID string, req models.CompanyOnboardingRequest) (*models.Company, error)
	CreateJobSeeker(ctx context.Context, userID string, req models.JobSeekerOnboardingRequest) (*models.JobSeeker, error)
}

// CompanyOnboardingHandler creates the employer profile and completes
// onboarding. A user can hold one profile; the opposite kind conflicts.
func CompanyOnboardingHandler(st AccountStore) echo.HandlerFunc {
	return func(c echo.Context) error {
		requestID := requestIDFrom(c)
		logger := logging.GetGlobalLogger()
		id := middleware.IdentityFrom(c)
		ctx := c.Request().Context()

		var req models.CompanyOnboardingRequest
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, errorResponse(
				"invalid_request", "Invalid request format", requestID))
		}
		if err := validate.Struct(&req); err != nil {
			return c.JSON(http.StatusBadRequest, errorResponse(
				"validation_failed", err.Error(), requestID))
		}

		// First write for a fresh sign-in; refreshes identity fields otherwise.
		if _, err := st.EnsureUser(ctx, id.UserID, id.Email, id.Name); err != nil {
			logger.Error("Failed to ensure user", map[string]interface{}{
				"request_id": requestID,
				"user_id":    id.UserID,
				"error":      err.Error(),
			})
			return c.JSON(http.StatusInternalServerError, errorResponse(
				"onboarding_failed", "Failed to complete onboarding", requestID))
		}

		company, err := st.CreateCompany(ctx, id.UserID, req)
		if err != nil {
			switch {
			case errors.Is(err, store.ErrProfileConflict):
				return c.JSON(http.StatusConflict, errorResponse(
					"profile_conflict", "Account already onboarded as a job seeker", requestID))
			case errors.Is(err, store.ErrDuplicate):
				return c.JSON(http.StatusConflict, errorResponse(
					"already_onboarded", "Company profile already exists", requestID))
			}
			logger.Error("Failed to create company profile", map[string]interface{}{
				"request_id": requestID,
				"user_id":    id.UserID,
				"error":      err.Error(),
			})
			return c.JSON(http.StatusInternalServerError, errorResponse(
				"onboarding_failed", "Failed to complete onboarding", requestID))
		}

		logger.Info("Company onboarded", map[string]interface{}{
			"request_id": requestID,
			"user_id":    id.UserID,
			"company_id": company.ID,
		})

		return c.JSON(http.StatusCreated, company)
	}
}

// JobSeekerOnboardingHandler creates the candidate profile and completes
// onboarding.
func JobSeekerOnboardingHandler(st AccountStore) echo.HandlerFunc {
	return func(c echo.Context) error {
		requestID := requestIDFrom(c)
		logger := logging.GetGlobalLogger()
		id := middleware.IdentityFrom(c)
		ctx := c.Request().Context()

		var req models.JobSeekerOnboardingRequest
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, errorResponse(
				"invalid_request", "Invalid request format", requestID))
		}
		if err := validate.Struct(&req); err != nil {
			return c.JSON(http.StatusBadRequest, errorResponse(
				"validation_failed", err.Error(), requestID))
		}

		if _, err := st.EnsureUser(ctx, id.UserID, id.Email, id.Name); err != nil {
			logger.Error("Failed to ensure user", map[string]interface{}{
				"request_id": requestID,
				"user_id":    id.UserID,
				"error":      err.Error(),
			})
			return c.JSON(http.StatusInternalServerError, errorResponse(
				"onboarding_failed", "Failed to complete onboarding", requestID))
		}

		seeker, err := st.CreateJobSeeker(ctx, id.UserID, req)
		if err != nil {
			switch {
			case errors.Is(err, store.ErrProfileConflict):
				return c.JSON(http.StatusConflict, errorResponse(
					"profile_conflict", "Account already onboarded as a company", requestID))
			case errors.Is(err, store.ErrDuplicate):
				return c.JSON(http.StatusConflict, errorResponse(
					"already_onboarded", "Job seeker profile already exists", requestID))
			}
			logger.Error("Failed to create job seeker profile", map[string]interface{}{
				"request_id": requestID,
				"user_id":    id.UserID,
				"error":      err.Error(),
			})
			return c.JSON(http.StatusInternalServerError, errorResponse(
				"onboarding_failed", "Failed to complete onboarding", requestID))
		}

		logger.Info("Job seeker onboarded", map[string]interface{}{
			"request_id": requestID,
			"user_id":    id.UserID,
			"seeker_id":  seeker.ID,
		})

		return c.JSON(http.StatusCreated, seeker)
	}
}
