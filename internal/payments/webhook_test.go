package payments_test

import (
	"testing"

	"github.com/Alifouanne/job-forge/internal/payments"
)

const webhookSecret = "whsec_test"

func TestVerifySignature_Valid(t *testing.T) {
	payload := []byte(`{"type":"checkout.completed"}`)
	sig := payments.Sign(payload, webhookSecret)

	if !payments.VerifySignature(payload, sig, webhookSecret) {
		t.Error("VerifySignature should accept a signature produced by Sign")
	}
}

func TestVerifySignature_WrongSecret(t *testing.T) {
	payload := []byte(`{"type":"checkout.completed"}`)
	sig := payments.Sign(payload, "whsec_other")

	if payments.VerifySignature(payload, sig, webhookSecret) {
		t.Error("VerifySignature should reject a signature under a different secret")
	}
}

func TestVerifySignature_TamperedPayload(t *testing.T) {
	payload := []byte(`{"type":"checkout.completed"}`)
	sig := payments.Sign(payload, webhookSecret)

	tampered := []byte(`{"type":"checkout.completed","data":{"metadata":{"jobId":"evil"}}}`)
	if payments.VerifySignature(tampered, sig, webhookSecret) {
		t.Error("VerifySignature should reject a tampered payload")
	}
}

func TestVerifySignature_EmptyInputs(t *testing.T) {
	payload := []byte(`{}`)
	if payments.VerifySignature(payload, "", webhookSecret) {
		t.Error("VerifySignature should reject an empty signature")
	}
	if payments.VerifySignature(payload, payments.Sign(payload, ""), "") {
		t.Error("VerifySignature should reject an empty secret")
	}
}

func TestParseEvent(t *testing.T) {
	payload := []byte(`{
		"id": "evt_1",
		"type": "checkout.completed",
		"data": {
			"customer": "cus_42",
			"metadata": {"jobId": "job_7"}
		}
	}`)

	event, err := payments.ParseEvent(payload)
	if err != nil {
		t.Fatalf("ParseEvent returned unexpected error: %v", err)
	}
	if event.Type != payments.EventCheckoutCompleted {
		t.Errorf("Type = %q, want %q", event.Type, payments.EventCheckoutCompleted)
	}
	if event.Data.CustomerID != "cus_42" {
		t.Errorf("CustomerID = %q, want %q", event.Data.CustomerID, "cus_42")
	}
	if got := event.Data.JobID(); got != "job_7" {
		t.Errorf("JobID() = %q, want %q", got, "job_7")
	}
}

func TestParseEvent_MissingJobID(t *testing.T) {
	payload := []byte(`{"id":"evt_2","type":"checkout.completed","data":{"customer":"cus_42"}}`)

	event, err := payments.ParseEvent(payload)
	if err != nil {
		t.Fatalf("ParseEvent returned unexpected error: %v", err)
	}
	if got := event.Data.JobID(); got != "" {
		t.Errorf("JobID() = %q, want empty string", got)
	}
}

func TestParseEvent_Malformed(t *testing.T) {
	if _, err := payments.ParseEvent([]byte(`{not json`)); err == nil {
		t.Error("ParseEvent with malformed JSON expected error, got nil")
	}
	if _, err := payments.ParseEvent([]byte(`{"data":{}}`)); err == nil {
		t.Error("ParseEvent without event type expected error, got nil")
	}
}
