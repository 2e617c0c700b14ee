// Package payments integrates with the external payment processor: creating
// checkout sessions for job-post activation and verifying its webhooks.
package payments

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/Alifouanne/job-forge/internal/config"
	"github.com/Alifouanne/job-forge/internal/logging"
	"github.com/Alifouanne/job-forge/pkg/utils"
)

// Client is a thin HTTP client for the payment processor's API. Calls are
// single-shot: a failed call surfaces as a rejected request, there is no
// automatic retry.
type Client struct {
	baseURL    string
	apiKey     string
	successURL string
	cancelURL  string
	httpClient *http.Client
	logger     logging.Logger
}

// NewClient returns a configured payments client.
func NewClient(cfg *config.Config) *Client {
	timeout := cfg.Payments.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}

	return &Client{
		baseURL:    cfg.Payments.BaseURL,
		apiKey:     cfg.Payments.APIKey,
		successURL: cfg.Payments.SuccessURL,
		cancelURL:  cfg.Payments.CancelURL,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logging.GetGlobalLogger(),
	}
}

// CheckoutParams describes a checkout session for one job post. JobID is
// embedded as correlation metadata so the completion webhook can be joined
// back to its post.
type CheckoutParams struct {
	JobID       string
	CustomerID  string
	AmountCents int64
	Currency    string
}

// CheckoutSession is the processor's session handle; URL is the hosted
// payment page the caller is redirected to.
type CheckoutSession struct {
	ID  string `json:"id"`
	URL string `json:"url"`
}

// CreateCheckoutSession opens a checkout session with the job id attached as
// metadata.
func (c *Client) CreateCheckoutSession(ctx context.Context, params CheckoutParams) (*CheckoutSession, error) {
	currency := utils.GetStringOrDefault(params.Currency, "usd")

	body := map[string]interface{}{
		"customer":    params.CustomerID,
		"amount":      params.AmountCents,
		"currency":    currency,
		"success_url": c.successURL,
		"cancel_url":  c.cancelURL,
		"metadata": map[string]string{
			"jobId": params.JobID,
		},
	}

	var session CheckoutSession
	if err := c.post(ctx, "/v1/checkout/sessions", body, &session); err != nil {
		return nil, fmt.Errorf("create checkout session: %w", err)
	}

	c.logger.Info("Checkout session created", map[string]interface{}{
		"job_id":     params.JobID,
		"session_id": session.ID,
	})

	return &session, nil
}

// CreateCustomer registers a payment customer for a user and returns the
// processor's customer reference.
func (c *Client) CreateCustomer(ctx context.Context, email, name string) (string, error) {
	body := map[string]interface{}{
		"email": email,
		"name":  name,
	}

	var customer struct {
		ID string `json:"id"`
	}
	if err := c.post(ctx, "/v1/customers", body, &customer); err != nil {
		return "", fmt.Errorf("create customer: %w", err)
	}

	return customer.ID, nil
}

func (c *Client) post(ctx context.Context, path string, body interface{}, out interface{}) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		// CustomError so upstream can distinguish processor rejections
		// from transport failures.
		return &utils.CustomError{
			Code:    http.StatusBadGateway,
			Message: fmt.Sprintf("payment API %s returned %d", path, resp.StatusCode),
			Detail:  string(data),
		}
	}

	return json.NewDecoder(resp.Body).Decode(out)
}
