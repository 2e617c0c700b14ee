package handlers

import (
	"context"
	"io"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Alifouanne/job-forge/internal/logging"
	"github.com/Alifouanne/job-forge/internal/payments"
	"github.com/Alifouanne/job-forge/pkg/models"
)

// ActivationStore resolves webhook events back to job posts.
type ActivationStore interface {
	CompanyByPaymentCustomer(ctx context.Context, customerID string) (*models.Company, error)
	ActivateJob(ctx context.Context, companyID, jobID string) error
}

// PaymentWebhookHandler receives the processor's webhooks. The signature is
// verified against the raw body before anything is parsed; any failure
// answers 400 with a plain-text reason so the processor retries. Event types
// other than checkout completion are acknowledged and dropped.
func PaymentWebhookHandler(webhookSecret string, st ActivationStore) echo.HandlerFunc {
	return func(c echo.Context) error {
		logger := logging.GetGlobalLogger()

		body, err := io.ReadAll(c.Request().Body)
		if err != nil {
			return c.String(http.StatusBadRequest, "unreadable body")
		}

		signature := c.Request().Header.Get(payments.SignatureHeader)
		if !payments.VerifySignature(body, signature, webhookSecret) {
			logger.Warn("Webhook signature verification failed")
			return c.String(http.StatusBadRequest, "invalid signature")
		}

		event, err := payments.ParseEvent(body)
		if err != nil {
			logger.Warn("Webhook payload rejected", map[string]interface{}{
				"error": err.Error(),
			})
			return c.String(http.StatusBadRequest, "invalid payload")
		}

		if event.Type != payments.EventCheckoutCompleted {
			logger.Debug("Ignoring webhook event", map[string]interface{}{
				"event_id":   event.ID,
				"event_type": event.Type,
			})
			return c.NoContent(http.StatusOK)
		}

		jobID := event.Data.JobID()
		if jobID == "" {
			logger.Warn("Checkout event without job correlation", map[string]interface{}{
				"event_id": event.ID,
			})
			return c.String(http.StatusBadRequest, "missing job metadata")
		}

		ctx := c.Request().Context()
		company, err := st.CompanyByPaymentCustomer(ctx, event.Data.CustomerID)
		if err != nil {
			logger.Warn("Webhook customer not resolvable", map[string]interface{}{
				"event_id": event.ID,
				"customer": event.Data.CustomerID,
				"error":    err.Error(),
			})
			return c.String(http.StatusBadRequest, "unknown customer")
		}

		if err := st.ActivateJob(ctx, company.ID, jobID); err != nil {
			logger.Error("Failed to activate job post", map[string]interface{}{
				"event_id":   event.ID,
				"job_id":     jobID,
				"company_id": company.ID,
				"error":      err.Error(),
			})
			return c.String(http.StatusBadRequest, "activation failed")
		}

		logger.Info("Job post activated by payment", map[string]interface{}{
			"event_id": event.ID,
			"job_id":   jobID,
		})

		return c.NoContent(http.StatusOK)
	}
}
