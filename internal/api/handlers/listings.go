package handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"
	"golang.org/x/sync/errgroup"

	"github.com/Alifouanne/job-forge/internal/api/middleware"
	"github.com/Alifouanne/job-forge/internal/config"
	"github.com/Alifouanne/job-forge/internal/jobpost"
	"github.com/Alifouanne/job-forge/internal/logging"
	"github.com/Alifouanne/job-forge/internal/store"
	"github.com/Alifouanne/job-forge/pkg/models"
)

// ListingStore serves the public listing page.
type ListingStore interface {
	ListActiveJobs(ctx context.Context, f store.ListingFilter) ([]models.JobSummary, int, error)
}

// DetailStore serves the job detail view and the caller's saved state.
type DetailStore interface {
	GetActiveJob(ctx context.Context, jobID string) (*models.JobDetail, error)
	SavedRecord(ctx context.Context, userID, jobID string) (*models.SavedJob, error)
}

// DetailCache fronts the detail view reads.
type DetailCache interface {
	GetJobDetail(ctx context.Context, jobID string) (*models.JobDetail, error)
	SetJobDetail(ctx context.Context, jd *models.JobDetail)
}

// ListJobsHandler serves one page of ACTIVE postings, filtered by employment
// type and location.
func ListJobsHandler(cfg *config.Config, st ListingStore) echo.HandlerFunc {
	return func(c echo.Context) error {
		requestID := requestIDFrom(c)
		logger := logging.GetGlobalLogger()

		page, _ := strconv.Atoi(c.QueryParam("page"))

		var jobTypes []string
		if raw := c.QueryParam("jobTypes"); raw != "" {
			for _, t := range strings.Split(raw, ",") {
				// Unrecognized types are dropped, not rejected.
				if jobpost.ValidEmploymentType(t) {
					jobTypes = append(jobTypes, t)
				}
			}
		}

		filter := store.ListingFilter{
			Page:     page,
			PageSize: cfg.Listings.PageSize,
			JobTypes: jobTypes,
			Location: c.QueryParam("location"),
		}
		filter.Normalize()

		jobs, totalPages, err := st.ListActiveJobs(c.Request().Context(), filter)
		if err != nil {
			logger.Error("Failed to list jobs", map[string]interface{}{
				"request_id": requestID,
				"error":      err.Error(),
			})
			return c.JSON(http.StatusInternalServerError, errorResponse(
				"listing_failed", "Failed to load job listings", requestID))
		}

		return c.JSON(http.StatusOK, models.ListingResponse{
			Jobs:       jobs,
			Page:       filter.Page,
			PageSize:   filter.PageSize,
			TotalPages: totalPages,
		})
	}
}

// JobDetailHandler serves a single ACTIVE post plus, for signed-in callers,
// whether they saved it. The detail and the saved lookup run concurrently;
// the cache only fronts the detail half.
func JobDetailHandler(st DetailStore, dc DetailCache) echo.HandlerFunc {
	return func(c echo.Context) error {
		requestID := requestIDFrom(c)
		logger := logging.GetGlobalLogger()
		jobID := c.Param("id")

		var (
			detail *models.JobDetail
			saved  *models.SavedJob
		)

		g, gctx := errgroup.WithContext(c.Request().Context())

		g.Go(func() error {
			if cached, err := dc.GetJobDetail(gctx, jobID); err == nil {
				detail = cached
				return nil
			}
			jd, err := st.GetActiveJob(gctx, jobID)
			if err != nil {
				return err
			}
			dc.SetJobDetail(gctx, jd)
			detail = jd
			return nil
		})

		if id := middleware.IdentityFrom(c); id != nil {
			userID := id.UserID
			g.Go(func() error {
				sj, err := st.SavedRecord(gctx, userID, jobID)
				if err != nil {
					if errors.Is(err, store.ErrNotFound) {
						return nil // not saved
					}
					return err
				}
				saved = sj
				return nil
			})
		}

		if err := g.Wait(); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return c.JSON(http.StatusNotFound, errorResponse(
					"not_found", "Job posting not found", requestID))
			}
			logger.Error("Failed to load job detail", map[string]interface{}{
				"request_id": requestID,
				"job_id":     jobID,
				"error":      err.Error(),
			})
			return c.JSON(http.StatusInternalServerError, errorResponse(
				"detail_failed", "Failed to load job posting", requestID))
		}

		resp := models.JobDetailResponse{Job: *detail}
		if saved != nil {
			resp.Saved = true
			resp.SavedID = saved.ID
		}
		return c.JSON(http.StatusOK, resp)
	}
}
