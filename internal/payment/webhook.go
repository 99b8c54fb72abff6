package payment

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/stripe/stripe-go/v76/webhook"
)

const (
	SignatureHeader = "Stripe-Signature"

	EventPaymentSucceeded = "payment_intent.succeeded"
	EventPaymentFailed    = "payment_intent.payment_failed"

	DefaultTolerance = 5 * time.Minute
)

var (
	ErrMissingSignature = errors.New("missing webhook signature")
	ErrInvalidSignature = errors.New("webhook signature does not match")
	ErrStaleSignature   = errors.New("webhook timestamp outside tolerance")
)

// Event is the subset of a processor event the service reacts to
type Event struct {
	ID   string
	Type string
	Data struct {
		Object IntentObject
	}
}

// IntentObject is the payment intent carried in an event's data.object
type IntentObject struct {
	ID               string `json:"id"`
	Object           string `json:"object"`
	LastPaymentError *struct {
		Message string `json:"message"`
	} `json:"last_payment_error"`
}

// IntentID is the payment intent the event refers to
func (e *Event) IntentID() string {
	return e.Data.Object.ID
}

// WebhookVerifier authenticates Stripe-Signature headers with the endpoint secret
type WebhookVerifier struct {
	secret    string
	tolerance time.Duration
}

func NewWebhookVerifier(secret string, tolerance time.Duration) *WebhookVerifier {
	if tolerance <= 0 {
		tolerance = DefaultTolerance
	}
	return &WebhookVerifier{secret: secret, tolerance: tolerance}
}

// ParseEvent authenticates payload against the signature header and decodes it.
// Events from any API version are accepted; only the intent fields are read.
func (v *WebhookVerifier) ParseEvent(payload []byte, header string) (*Event, error) {
	ev, err := webhook.ConstructEventWithOptions(payload, header, v.secret, webhook.ConstructEventOptions{
		Tolerance:                v.tolerance,
		IgnoreAPIVersionMismatch: true,
	})
	if err != nil {
		return nil, signatureError(err)
	}

	event := &Event{ID: ev.ID, Type: string(ev.Type)}
	if ev.Data != nil && len(ev.Data.Raw) > 0 {
		if err := json.Unmarshal(ev.Data.Raw, &event.Data.Object); err != nil {
			return nil, fmt.Errorf("failed to decode webhook event: %w", err)
		}
	}
	return event, nil
}

func signatureError(err error) error {
	switch {
	case errors.Is(err, webhook.ErrNotSigned):
		return ErrMissingSignature
	case errors.Is(err, webhook.ErrTooOld):
		return ErrStaleSignature
	case errors.Is(err, webhook.ErrInvalidHeader), errors.Is(err, webhook.ErrNoValidSignature):
		return ErrInvalidSignature
	}
	return fmt.Errorf("failed to decode webhook event: %w", err)
}
