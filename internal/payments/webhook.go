package payments

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
)

// SignatureHeader carries the processor's HMAC signature of the raw body.
const SignatureHeader = "X-Payment-Signature"

// EventCheckoutCompleted is the only event type that mutates job state.
const EventCheckoutCompleted = "checkout.completed"

// Event is a webhook payload from the payment processor.
type Event struct {
	ID   string    `json:"id"`
	Type string    `json:"type"`
	Data EventData `json:"data"`
}

// EventData carries the customer reference and the correlation metadata.
type EventData struct {
	CustomerID string            `json:"customer"`
	Metadata   map[string]string `json:"metadata"`
}

// JobID returns the job correlation id embedded in the event metadata,
// or "" when absent.
func (d EventData) JobID() string {
	return d.Metadata["jobId"]
}

// Sign computes the hex-encoded HMAC-SHA256 signature of payload under
// secret. Used by tests and by the processor on its side.
func Sign(payload []byte, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(payload)
	return hex.EncodeToString(mac.Sum(nil))
}

// VerifySignature checks the signature header against the raw request body
// in constant time.
func VerifySignature(payload []byte, signature, secret string) bool {
	if signature == "" || secret == "" {
		return false
	}
	expected := Sign(payload, secret)
	return hmac.Equal([]byte(expected), []byte(signature))
}

// ParseEvent decodes a verified webhook body.
func ParseEvent(payload []byte) (*Event, error) {
	var event Event
	if err := json.Unmarshal(payload, &event); err != nil {
		return nil, fmt.Errorf("malformed webhook payload: %w", err)
	}
	if event.Type == "" {
		return nil, fmt.Errorf("webhook payload missing event type")
	}
	return &event, nil
}
