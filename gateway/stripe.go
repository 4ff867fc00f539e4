package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	stripe "github.com/stripe/stripe-go/v79"
	"github.com/stripe/stripe-go/v79/checkout/session"
	"github.com/stripe/stripe-go/v79/webhook"

	"grocery-api/services"
)

// EventCheckoutCompleted is the gateway event kind that triggers
// payment reconciliation.
const EventCheckoutCompleted = "checkout.session.completed"

// SessionError carries the gateway's own message for a failed
// checkout-session creation; it is the one collaborator error whose
// text is surfaced to the caller.
type SessionError struct {
	Msg string
	Err error
}

func (e *SessionError) Error() string { return e.Msg }

func (e *SessionError) Unwrap() error { return e.Err }

// CheckoutEvent is a verified webhook notification. OrderID, UserID and
// PaymentIntentID are filled only for checkout-completed events.
type CheckoutEvent struct {
	Type            string
	OrderID         string
	UserID          string
	PaymentIntentID string
}

// WebhookVerifier authenticates a raw webhook delivery before it is
// interpreted.
type WebhookVerifier interface {
	VerifyEvent(payload []byte, signatureHeader string) (CheckoutEvent, error)
}

// StripeGateway creates hosted checkout sessions and verifies webhook
// deliveries against the endpoint's signing secret.
type StripeGateway struct {
	webhookSecret string
}

// NewStripeGateway configures the Stripe client with the secret API key
// and keeps the webhook signing secret for verification.
func NewStripeGateway(apiKey, webhookSecret string) *StripeGateway {
	stripe.Key = apiKey
	return &StripeGateway{webhookSecret: webhookSecret}
}

// CreateCheckoutSession builds a card-payment checkout session with the
// order and user ids bound as metadata for webhook correlation.
func (g *StripeGateway) CreateCheckoutSession(ctx context.Context, p services.CheckoutParams) (*services.CheckoutSession, error) {
	lineItems := make([]*stripe.CheckoutSessionLineItemParams, 0, len(p.LineItems))
	for _, item := range p.LineItems {
		lineItems = append(lineItems, &stripe.CheckoutSessionLineItemParams{
			PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
				Currency: stripe.String(string(stripe.CurrencyINR)),
				ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
					Name: stripe.String(item.Name),
				},
				UnitAmount: stripe.Int64(item.UnitAmount),
			},
			Quantity: stripe.Int64(int64(item.Quantity)),
		})
	}

	params := &stripe.CheckoutSessionParams{
		Mode:               stripe.String(string(stripe.CheckoutSessionModePayment)),
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
		LineItems:          lineItems,
		SuccessURL:         stripe.String(p.SuccessURL),
		CancelURL:          stripe.String(p.CancelURL),
		ClientReferenceID:  stripe.String(p.OrderID),
	}
	params.Context = ctx
	params.AddMetadata("orderId", p.OrderID)
	params.AddMetadata("userId", p.UserID)

	s, err := session.New(params)
	if err != nil {
		msg := "checkout session failed"
		var stripeErr *stripe.Error
		if errors.As(err, &stripeErr) && stripeErr.Msg != "" {
			msg = stripeErr.Msg
		}
		return nil, &SessionError{Msg: msg, Err: err}
	}
	return &services.CheckoutSession{ID: s.ID, URL: s.URL}, nil
}

// VerifyEvent checks the delivery's signature against the raw body and,
// for checkout-completed events, extracts the correlation metadata.
func (g *StripeGateway) VerifyEvent(payload []byte, signatureHeader string) (CheckoutEvent, error) {
	event, err := webhook.ConstructEvent(payload, signatureHeader, g.webhookSecret)
	if err != nil {
		return CheckoutEvent{}, err
	}

	parsed := CheckoutEvent{Type: string(event.Type)}
	if parsed.Type != EventCheckoutCompleted {
		return parsed, nil
	}

	var checkout stripe.CheckoutSession
	if err := json.Unmarshal(event.Data.Raw, &checkout); err != nil {
		return CheckoutEvent{}, fmt.Errorf("parse checkout session: %w", err)
	}
	parsed.OrderID = checkout.Metadata["orderId"]
	parsed.UserID = checkout.Metadata["userId"]
	if checkout.PaymentIntent != nil {
		parsed.PaymentIntentID = checkout.PaymentIntent.ID
	}
	return parsed, nil
}
