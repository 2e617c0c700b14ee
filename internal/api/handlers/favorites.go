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

// FavoriteStore covers the saved-jobs operations. UnsaveJob reports which
// job post the deleted record pointed at.
type FavoriteStore interface {
	SaveJob(ctx context.Context, userID, jobID string) (*models.SavedJob, error)
	UnsaveJob(ctx context.Context, userID, savedID string) (string, error)
}

// SaveJobHandler adds a job post to the caller's favorites.
func SaveJobHandler(st FavoriteStore, invalidator CacheInvalidator) echo.HandlerFunc {
	return func(c echo.Context) error {
		requestID := requestIDFrom(c)
		logger := logging.GetGlobalLogger()
		id := middleware.IdentityFrom(c)
		jobID := c.Param("id")
		ctx := c.Request().Context()

		saved, err := st.SaveJob(ctx, id.UserID, jobID)
		if err != nil {
			switch {
			case errors.Is(err, store.ErrDuplicate):
				return c.JSON(http.StatusConflict, errorResponse(
					"already_saved", "Job posting already saved", requestID))
			case errors.Is(err, store.ErrNotFound):
				return c.JSON(http.StatusNotFound, errorResponse(
					"not_found", "Job posting not found", requestID))
			}
			logger.Error("Failed to save job post", map[string]interface{}{
				"request_id": requestID,
				"job_id":     jobID,
				"error":      err.Error(),
			})
			return c.JSON(http.StatusInternalServerError, errorResponse(
				"save_failed", "Failed to save job posting", requestID))
		}

		invalidator.InvalidateJobDetail(ctx, jobID)

		return c.JSON(http.StatusCreated, saved)
	}
}

// UnsaveJobHandler removes a saved record by its own id, scoped to the
// caller. Someone else's record answers the same 404 as a missing one.
func UnsaveJobHandler(st FavoriteStore, invalidator CacheInvalidator) echo.HandlerFunc {
	return func(c echo.Context) error {
		requestID := requestIDFrom(c)
		logger := logging.GetGlobalLogger()
		id := middleware.IdentityFrom(c)
		savedID := c.Param("id")
		ctx := c.Request().Context()

		jobID, err := st.UnsaveJob(ctx, id.UserID, savedID)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return c.JSON(http.StatusNotFound, errorResponse(
					"not_found", "Saved record not found", requestID))
			}
			logger.Error("Failed to unsave job post", map[string]interface{}{
				"request_id": requestID,
				"saved_id":   savedID,
				"error":      err.Error(),
			})
			return c.JSON(http.StatusInternalServerError, errorResponse(
				"unsave_failed", "Failed to remove saved job", requestID))
		}

		invalidator.InvalidateJobDetail(ctx, jobID)

		return c.NoContent(http.StatusNoContent)
	}
}
