package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/Alifouanne/job-forge/internal/api/middleware"
	"github.com/Alifouanne/job-forge/internal/config"
	"github.com/Alifouanne/job-forge/internal/logging"
	"github.com/Alifouanne/job-forge/internal/payments"
	"github.com/Alifouanne/job-forge/internal/store"
	"github.com/Alifouanne/job-forge/pkg/models"
)

// JobStore covers the employer-side job post operations.
type JobStore interface {
	GetAccount(ctx context.Context, userID string) (*models.Account, error)
	CreateJob(ctx context.Context, companyID string, req models.CreateJobRequest) (*models.JobPost, error)
	UpdateJob(ctx context.Context, userID, jobID string, req models.UpdateJobRequest) (*models.JobPost, error)
	DeleteJob(ctx context.Context, userID, jobID string) error
	SetPaymentCustomer(ctx context.Context, userID, customerID string) error
}

// CheckoutClient opens checkout sessions and registers payment customers.
type CheckoutClient interface {
	CreateCheckoutSession(ctx context.Context, params payments.CheckoutParams) (*payments.CheckoutSession, error)
	CreateCustomer(ctx context.Context, email, name string) (string, error)
}

// ExpirationQueue schedules and cancels deferred job expirations.
// Both calls are fire-and-forget.
type ExpirationQueue interface {
	Submit(ctx context.Context, jobID string, dueAt time.Time)
	Cancel(ctx context.Context, jobID string)
}

// CacheInvalidator drops a cached detail view after a mutation.
type CacheInvalidator interface {
	InvalidateJobDetail(ctx context.Context, jobID string)
}

// CreateJobHandler creates a DRAFT job post for the caller's company and
// opens a checkout session; the post only goes live once the payment
// completes and the webhook confirms it.
func CreateJobHandler(cfg *config.Config, st JobStore, checkout CheckoutClient, queue ExpirationQueue) echo.HandlerFunc {
	return func(c echo.Context) error {
		requestID := requestIDFrom(c)
		logger := logging.GetGlobalLogger()
		id := middleware.IdentityFrom(c)
		ctx := c.Request().Context()

		var req models.CreateJobRequest
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, errorResponse(
				"invalid_request", "Invalid request format", requestID))
		}
		if err := validate.Struct(&req); err != nil {
			return c.JSON(http.StatusBadRequest, errorResponse(
				"validation_failed", err.Error(), requestID))
		}

		account, err := st.GetAccount(ctx, id.UserID)
		if err != nil {
			logger.Error("Failed to load account", map[string]interface{}{
				"request_id": requestID,
				"user_id":    id.UserID,
				"error":      err.Error(),
			})
			return c.JSON(http.StatusInternalServerError, errorResponse(
				"account_lookup_failed", "Failed to load account", requestID))
		}
		if account.Company == nil {
			return c.JSON(http.StatusForbidden, errorResponse(
				"company_required", "Only company accounts can post jobs", requestID))
		}

		job, err := st.CreateJob(ctx, account.Company.ID, req)
		if err != nil {
			logger.Error("Failed to create job post", map[string]interface{}{
				"request_id": requestID,
				"company_id": account.Company.ID,
				"error":      err.Error(),
			})
			return c.JSON(http.StatusInternalServerError, errorResponse(
				"create_failed", "Failed to create job posting", requestID))
		}

		// The expiration clock starts at creation, not activation.
		dueAt := job.CreatedAt.Add(time.Duration(job.ListingDuration) * 24 * time.Hour)
		queue.Submit(ctx, job.ID, dueAt)

		customerID := account.User.PaymentCustomerID
		if customerID == "" {
			customerID, err = checkout.CreateCustomer(ctx, account.User.Email, account.User.Name)
			if err != nil {
				logger.Error("Failed to create payment customer", map[string]interface{}{
					"request_id": requestID,
					"user_id":    id.UserID,
					"error":      err.Error(),
				})
				return c.JSON(http.StatusInternalServerError, errorResponse(
					"payment_setup_failed", "Failed to set up payment", requestID))
			}
			if err := st.SetPaymentCustomer(ctx, id.UserID, customerID); err != nil {
				logger.Error("Failed to store payment customer", map[string]interface{}{
					"request_id": requestID,
					"user_id":    id.UserID,
					"error":      err.Error(),
				})
				return c.JSON(http.StatusInternalServerError, errorResponse(
					"payment_setup_failed", "Failed to set up payment", requestID))
			}
		}

		session, err := checkout.CreateCheckoutSession(ctx, payments.CheckoutParams{
			JobID:       job.ID,
			CustomerID:  customerID,
			AmountCents: cfg.Payments.PriceCentsDay * int64(job.ListingDuration),
		})
		if err != nil {
			// The draft stays in place; the owner can retry checkout later.
			logger.Error("Failed to open checkout session", map[string]interface{}{
				"request_id": requestID,
				"job_id":     job.ID,
				"error":      err.Error(),
			})
			return c.JSON(http.StatusInternalServerError, errorResponse(
				"checkout_failed", "Failed to open checkout session", requestID))
		}

		logger.Info("Job post created", map[string]interface{}{
			"request_id": requestID,
			"job_id":     job.ID,
			"company_id": account.Company.ID,
		})

		return c.JSON(http.StatusCreated, models.CreateJobResponse{
			Job:         *job,
			CheckoutURL: session.URL,
		})
	}
}

// UpdateJobHandler replaces every editable field of a post owned by the
// caller. A missing post and someone else's post answer the same 404.
func UpdateJobHandler(st JobStore, invalidator CacheInvalidator) echo.HandlerFunc {
	return func(c echo.Context) error {
		requestID := requestIDFrom(c)
		logger := logging.GetGlobalLogger()
		id := middleware.IdentityFrom(c)
		jobID := c.Param("id")
		ctx := c.Request().Context()

		var req models.UpdateJobRequest
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, errorResponse(
				"invalid_request", "Invalid request format", requestID))
		}
		if err := validate.Struct(&req); err != nil {
			return c.JSON(http.StatusBadRequest, errorResponse(
				"validation_failed", err.Error(), requestID))
		}

		job, err := st.UpdateJob(ctx, id.UserID, jobID, req)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return c.JSON(http.StatusNotFound, errorResponse(
					"not_found", "Job posting not found", requestID))
			}
			logger.Error("Failed to update job post", map[string]interface{}{
				"request_id": requestID,
				"job_id":     jobID,
				"error":      err.Error(),
			})
			return c.JSON(http.StatusInternalServerError, errorResponse(
				"update_failed", "Failed to update job posting", requestID))
		}

		invalidator.InvalidateJobDetail(ctx, jobID)

		return c.JSON(http.StatusOK, job)
	}
}

// DeleteJobHandler removes a post owned by the caller and withdraws its
// queued expiration.
func DeleteJobHandler(st JobStore, queue ExpirationQueue, invalidator CacheInvalidator) echo.HandlerFunc {
	return func(c echo.Context) error {
		requestID := requestIDFrom(c)
		logger := logging.GetGlobalLogger()
		id := middleware.IdentityFrom(c)
		jobID := c.Param("id")
		ctx := c.Request().Context()

		if err := st.DeleteJob(ctx, id.UserID, jobID); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return c.JSON(http.StatusNotFound, errorResponse(
					"not_found", "Job posting not found", requestID))
			}
			logger.Error("Failed to delete job post", map[string]interface{}{
				"request_id": requestID,
				"job_id":     jobID,
				"error":      err.Error(),
			})
			return c.JSON(http.StatusInternalServerError, errorResponse(
				"delete_failed", "Failed to delete job posting", requestID))
		}

		queue.Cancel(ctx, jobID)
		invalidator.InvalidateJobDetail(ctx, jobID)

		logger.Info("Job post deleted", map[string]interface{}{
			"request_id": requestID,
			"job_id":     jobID,
		})

		return c.NoContent(http.StatusNoContent)
	}
}
