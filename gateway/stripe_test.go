package gateway_test

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	stripe "github.com/stripe/stripe-go/v79"

	"grocery-api/gateway"
)

const testSecret = "whsec_test"

// signPayload builds a Stripe-Signature header for the payload, the way
// Stripe signs deliveries: HMAC-SHA256 of "<timestamp>.<payload>".
func signPayload(payload []byte, secret string, at time.Time) string {
	mac := hmac.New(sha256.New, []byte(secret))
	fmt.Fprintf(mac, "%d.%s", at.Unix(), payload)
	return fmt.Sprintf("t=%d,v1=%s", at.Unix(), hex.EncodeToString(mac.Sum(nil)))
}

func completedEventPayload(orderID, userID, intentID string) []byte {
	return []byte(fmt.Sprintf(`{
		"id": "evt_1",
		"type": "checkout.session.completed",
		"api_version": %q,
		"data": {
			"object": {
				"id": "cs_1",
				"object": "checkout.session",
				"metadata": {"orderId": %q, "userId": %q},
				"payment_intent": %q
			}
		}
	}`, stripe.APIVersion, orderID, userID, intentID))
}

func TestVerifyEventCheckoutCompleted(t *testing.T) {
	g := gateway.NewStripeGateway("sk_test", testSecret)
	payload := completedEventPayload("order-1", "user-1", "pi_123")

	event, err := g.VerifyEvent(payload, signPayload(payload, testSecret, time.Now()))
	require.NoError(t, err)

	assert.Equal(t, gateway.EventCheckoutCompleted, event.Type)
	assert.Equal(t, "order-1", event.OrderID)
	assert.Equal(t, "user-1", event.UserID)
	assert.Equal(t, "pi_123", event.PaymentIntentID)
}

func TestVerifyEventRejectsBadSignature(t *testing.T) {
	g := gateway.NewStripeGateway("sk_test", testSecret)
	payload := completedEventPayload("order-1", "user-1", "pi_123")

	tests := []struct {
		name   string
		header string
	}{
		{"wrong secret", signPayload(payload, "whsec_other", time.Now())},
		{"stale timestamp", signPayload(payload, testSecret, time.Now().Add(-time.Hour))},
		{"empty header", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := g.VerifyEvent(payload, tt.header)
			assert.Error(t, err)
		})
	}
}

func TestVerifyEventRejectsTamperedPayload(t *testing.T) {
	g := gateway.NewStripeGateway("sk_test", testSecret)
	payload := completedEventPayload("order-1", "user-1", "pi_123")
	header := signPayload(payload, testSecret, time.Now())

	tampered := completedEventPayload("order-2", "user-1", "pi_123")
	_, err := g.VerifyEvent(tampered, header)
	assert.Error(t, err)
}

func TestVerifyEventOtherKind(t *testing.T) {
	g := gateway.NewStripeGateway("sk_test", testSecret)
	payload := []byte(fmt.Sprintf(`{
		"id": "evt_2",
		"type": "payment_intent.created",
		"api_version": %q,
		"data": {"object": {"id": "pi_1", "object": "payment_intent"}}
	}`, stripe.APIVersion))

	event, err := g.VerifyEvent(payload, signPayload(payload, testSecret, time.Now()))
	require.NoError(t, err)
	assert.Equal(t, "payment_intent.created", event.Type)
	assert.Empty(t, event.OrderID)
}
