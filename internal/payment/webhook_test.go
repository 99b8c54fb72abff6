package payment

import (
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stripe/stripe-go/v76/webhook"
)

const succeededPayload = `{"id":"evt_1","object":"event","type":"payment_intent.succeeded","data":{"object":{"id":"pi_123","object":"payment_intent"}}}`

func signedHeader(payload []byte, secret string, at time.Time) string {
	return webhook.GenerateTestSignedPayload(&webhook.UnsignedPayload{
		Payload:   payload,
		Secret:    secret,
		Timestamp: at,
	}).Header
}

func TestWebhookVerifier_ParseEvent(t *testing.T) {
	v := NewWebhookVerifier("whsec_test", 0)
	header := signedHeader([]byte(succeededPayload), "whsec_test", time.Now())

	event, err := v.ParseEvent([]byte(succeededPayload), header)
	require.NoError(t, err)
	assert.Equal(t, "evt_1", event.ID)
	assert.Equal(t, EventPaymentSucceeded, event.Type)
	assert.Equal(t, "pi_123", event.IntentID())
	assert.Nil(t, event.Data.Object.LastPaymentError)
}

func TestWebhookVerifier_FailedEventCarriesReason(t *testing.T) {
	v := NewWebhookVerifier("whsec_test", 0)
	payload := []byte(`{"id":"evt_2","object":"event","type":"payment_intent.payment_failed","data":{"object":{"id":"pi_9","object":"payment_intent","last_payment_error":{"message":"card declined"}}}}`)

	event, err := v.ParseEvent(payload, signedHeader(payload, "whsec_test", time.Now()))
	require.NoError(t, err)
	assert.Equal(t, EventPaymentFailed, event.Type)
	require.NotNil(t, event.Data.Object.LastPaymentError)
	assert.Equal(t, "card declined", event.Data.Object.LastPaymentError.Message)
}

func TestWebhookVerifier_Rejections(t *testing.T) {
	v := NewWebhookVerifier("whsec_test", 0)
	payload := []byte(succeededPayload)

	t.Run("Missing header", func(t *testing.T) {
		_, err := v.ParseEvent(payload, "")
		assert.ErrorIs(t, err, ErrMissingSignature)
	})

	t.Run("Malformed header", func(t *testing.T) {
		_, err := v.ParseEvent(payload, "t=notanumber,v1=abc")
		assert.ErrorIs(t, err, ErrInvalidSignature)
	})

	t.Run("Wrong secret", func(t *testing.T) {
		_, err := v.ParseEvent(payload, signedHeader(payload, "whsec_other", time.Now()))
		assert.ErrorIs(t, err, ErrInvalidSignature)
	})

	t.Run("Tampered payload", func(t *testing.T) {
		header := signedHeader(payload, "whsec_test", time.Now())
		tampered := []byte(`{"id":"evt_1","object":"event","type":"payment_intent.succeeded","data":{"object":{"id":"pi_999"}}}`)
		_, err := v.ParseEvent(tampered, header)
		assert.ErrorIs(t, err, ErrInvalidSignature)
	})

	t.Run("Stale timestamp", func(t *testing.T) {
		_, err := v.ParseEvent(payload, signedHeader(payload, "whsec_test", time.Now().Add(-10*time.Minute)))
		assert.ErrorIs(t, err, ErrStaleSignature)
	})
}

func TestWebhookVerifier_AcceptsAnyMatchingV1(t *testing.T) {
	v := NewWebhookVerifier("whsec_test", time.Minute)
	payload := []byte(succeededPayload)
	now := time.Now()
	valid := strings.SplitN(signedHeader(payload, "whsec_test", now), ",", 2)[1]

	rotated := "t=" + strconv.FormatInt(now.Unix(), 10) + ",v1=deadbeef," + valid
	_, err := v.ParseEvent(payload, rotated)
	assert.NoError(t, err)
}
