package handlers_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/Alifouanne/job-forge/internal/api/handlers"
	"github.com/Alifouanne/job-forge/internal/config"
	"github.com/Alifouanne/job-forge/internal/identity"
	"github.com/Alifouanne/job-forge/internal/payments"
	"github.com/Alifouanne/job-forge/internal/store"
	"github.com/Alifouanne/job-forge/pkg/models"
)

type fakeJobStore struct {
	account      *models.Account
	created      *models.JobPost
	updateErr    error
	deleteErr    error
	deletedJob   string
	customerID   string
	customerUser string
}

func (f *fakeJobStore) GetAccount(ctx context.Context, userID string) (*models.Account, error) {
	return f.account, nil
}

func (f *fakeJobStore) CreateJob(ctx context.Context, companyID string, req models.CreateJobRequest) (*models.JobPost, error) {
	f.created = &models.JobPost{
		ID:              "job_1",
		CompanyID:       companyID,
		Title:           req.Title,
		EmploymentType:  req.EmploymentType,
		Location:        req.Location,
		Description:     req.Description,
		ListingDuration: req.ListingDuration,
		Status:          "DRAFT",
		CreatedAt:       time.Now(),
	}
	return f.created, nil
}

func (f *fakeJobStore) UpdateJob(ctx context.Context, userID, jobID string, req models.UpdateJobRequest) (*models.JobPost, error) {
	if f.updateErr != nil {
		return nil, f.updateErr
	}
	return &models.JobPost{ID: jobID, Title: req.Title, Status: "ACTIVE"}, nil
}

func (f *fakeJobStore) DeleteJob(ctx context.Context, userID, jobID string) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.deletedJob = jobID
	return nil
}

func (f *fakeJobStore) SetPaymentCustomer(ctx context.Context, userID, customerID string) error {
	f.customerUser = userID
	f.customerID = customerID
	return nil
}

type fakeCheckout struct {
	customers int
}

func (f *fakeCheckout) CreateCheckoutSession(ctx context.Context, params payments.CheckoutParams) (*payments.CheckoutSession, error) {
	return &payments.CheckoutSession{ID: "cs_1", URL: "https://pay.example.com/cs_1"}, nil
}

func (f *fakeCheckout) CreateCustomer(ctx context.Context, email, name string) (string, error) {
	f.customers++
	return "cus_new", nil
}

type fakeQueue struct {
	submitted []string
	cancelled []string
}

func (f *fakeQueue) Submit(ctx context.Context, jobID string, dueAt time.Time) {
	f.submitted = append(f.submitted, jobID)
}

func (f *fakeQueue) Cancel(ctx context.Context, jobID string) {
	f.cancelled = append(f.cancelled, jobID)
}

type fakeInvalidator struct {
	invalidated []string
}

func (f *fakeInvalidator) InvalidateJobDetail(ctx context.Context, jobID string) {
	f.invalidated = append(f.invalidated, jobID)
}

func newContext(t *testing.T, method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("identity", &identity.Identity{UserID: "user_1", Email: "owner@example.com", Name: "Owner"})
	return c, rec
}

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.Payments.PriceCentsDay = 500
	cfg.Listings.PageSize = 7
	return cfg
}

const validJobBody = `{
	"title": "Backend Engineer",
	"employment_type": "full-time",
	"location": "Berlin",
	"salary_from": 60000,
	"salary_to": 80000,
	"description": {"version": 1, "blocks": []},
	"listing_duration": 30,
	"benefits": ["remote"]
}`

func companyAccount() *models.Account {
	return &models.Account{
		User:    models.User{ID: "user_1", Email: "owner@example.com", Name: "Owner", PaymentCustomerID: "cus_1"},
		Company: &models.Company{ID: "comp_1", UserID: "user_1"},
	}
}

func TestCreateJob_HappyPath(t *testing.T) {
	st := &fakeJobStore{account: companyAccount()}
	checkout := &fakeCheckout{}
	queue := &fakeQueue{}

	c, rec := newContext(t, http.MethodPost, "/api/v1/jobs", validJobBody)
	if err := handlers.CreateJobHandler(testConfig(), st, checkout, queue)(c); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201: %s", rec.Code, rec.Body.String())
	}

	var resp models.CreateJobResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if resp.Job.Status != "DRAFT" {
		t.Errorf("new post status = %q, want DRAFT", resp.Job.Status)
	}
	if resp.CheckoutURL != "https://pay.example.com/cs_1" {
		t.Errorf("checkout URL = %q", resp.CheckoutURL)
	}
	if len(queue.submitted) != 1 || queue.submitted[0] != "job_1" {
		t.Errorf("expiration queue = %v, want [job_1]", queue.submitted)
	}
	if checkout.customers != 0 {
		t.Error("existing payment customer should be reused")
	}
}

func TestCreateJob_CreatesPaymentCustomerOnce(t *testing.T) {
	account := companyAccount()
	account.User.PaymentCustomerID = ""
	st := &fakeJobStore{account: account}
	checkout := &fakeCheckout{}

	c, rec := newContext(t, http.MethodPost, "/api/v1/jobs", validJobBody)
	if err := handlers.CreateJobHandler(testConfig(), st, checkout, &fakeQueue{})(c); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201", rec.Code)
	}
	if checkout.customers != 1 {
		t.Errorf("CreateCustomer calls = %d, want 1", checkout.customers)
	}
	if st.customerID != "cus_new" || st.customerUser != "user_1" {
		t.Errorf("stored customer = %q for %q", st.customerID, st.customerUser)
	}
}

func TestCreateJob_RequiresCompanyProfile(t *testing.T) {
	st := &fakeJobStore{account: &models.Account{
		User:      models.User{ID: "user_1"},
		JobSeeker: &models.JobSeeker{ID: "js_1", UserID: "user_1"},
	}}
	queue := &fakeQueue{}

	c, rec := newContext(t, http.MethodPost, "/api/v1/jobs", validJobBody)
	if err := handlers.CreateJobHandler(testConfig(), st, &fakeCheckout{}, queue)(c); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}

	if rec.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want 403", rec.Code)
	}
	if st.created != nil {
		t.Error("no job post should be created without a company profile")
	}
	if len(queue.submitted) != 0 {
		t.Error("nothing should be queued without a company profile")
	}
}

func TestCreateJob_RejectsInvalidBody(t *testing.T) {
	st := &fakeJobStore{account: companyAccount()}

	body := `{"title": "", "employment_type": "gig", "listing_duration": 0}`
	c, rec := newContext(t, http.MethodPost, "/api/v1/jobs", body)
	if err := handlers.CreateJobHandler(testConfig(), st, &fakeCheckout{}, &fakeQueue{})(c); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestUpdateJob_NotOwnedAnswers404(t *testing.T) {
	st := &fakeJobStore{updateErr: store.ErrNotFound}
	inv := &fakeInvalidator{}

	c, rec := newContext(t, http.MethodPut, "/api/v1/jobs/job_9", validJobBody)
	c.SetParamNames("id")
	c.SetParamValues("job_9")
	if err := handlers.UpdateJobHandler(st, inv)(c); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
	if len(inv.invalidated) != 0 {
		t.Error("cache should stay untouched on a failed update")
	}
}

func TestUpdateJob_InvalidatesCache(t *testing.T) {
	st := &fakeJobStore{}
	inv := &fakeInvalidator{}

	c, rec := newContext(t, http.MethodPut, "/api/v1/jobs/job_1", validJobBody)
	c.SetParamNames("id")
	c.SetParamValues("job_1")
	if err := handlers.UpdateJobHandler(st, inv)(c); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if len(inv.invalidated) != 1 || inv.invalidated[0] != "job_1" {
		t.Errorf("invalidated = %v, want [job_1]", inv.invalidated)
	}
}

func TestDeleteJob_CancelsExpirationAndCache(t *testing.T) {
	st := &fakeJobStore{}
	queue := &fakeQueue{}
	inv := &fakeInvalidator{}

	c, rec := newContext(t, http.MethodDelete, "/api/v1/jobs/job_1", "")
	c.SetParamNames("id")
	c.SetParamValues("job_1")
	if err := handlers.DeleteJobHandler(st, queue, inv)(c); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}

	if rec.Code != http.StatusNoContent {
		t.Fatalf("status = %d, want 204", rec.Code)
	}
	if st.deletedJob != "job_1" {
		t.Errorf("deleted job = %q, want job_1", st.deletedJob)
	}
	if len(queue.cancelled) != 1 || queue.cancelled[0] != "job_1" {
		t.Errorf("cancelled = %v, want [job_1]", queue.cancelled)
	}
	if len(inv.invalidated) != 1 {
		t.Errorf("invalidated = %v, want one entry", inv.invalidated)
	}
}

func TestDeleteJob_NotOwnedAnswers404(t *testing.T) {
	st := &fakeJobStore{deleteErr: store.ErrNotFound}
	queue := &fakeQueue{}

	c, rec := newContext(t, http.MethodDelete, "/api/v1/jobs/job_9", "")
	c.SetParamNames("id")
	c.SetParamValues("job_9")
	if err := handlers.DeleteJobHandler(st, queue, &fakeInvalidator{})(c); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
	if len(queue.cancelled) != 0 {
		t.Error("no cancellation should happen for a failed delete")
	}
}
