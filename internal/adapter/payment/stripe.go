// Package payment adapts external payment processors to port.PaymentProcessor.
package payment

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/client"

	"toolfacturer-backend/internal/port"
)

var ErrProcessorUnavailable = errors.New("payment processor unavailable")

type StripeProcessor struct {
	api *client.API
}

func NewStripeProcessor(secretKey string) *StripeProcessor {
	return newStripeProcessor(secretKey, nil)
}

// newStripeProcessor uses the default Stripe backends when backends is nil.
func newStripeProcessor(secretKey string, backends *stripe.Backends) *StripeProcessor {
	return &StripeProcessor{api: client.New(secretKey, backends)}
}

// CreateIntent opens a card payment intent. Each call carries its own
// idempotency key.
func (p *StripeProcessor) CreateIntent(ctx context.Context, amount int64, currency string) (string, error) {
	params := &stripe.PaymentIntentParams{
		Amount:             stripe.Int64(amount),
		Currency:           stripe.String(currency),
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
	}
	params.Context = ctx
	params.SetIdempotencyKey(uuid.NewString())

	pi, err := p.api.PaymentIntents.New(params)
	if err != nil {
		return "", fmt.Errorf("create payment intent: %w", err)
	}
	return pi.ClientSecret, nil
}

// Disabled stands in when no processor is configured.
type Disabled struct{}

func (Disabled) CreateIntent(ctx context.Context, amount int64, currency string) (string, error) {
	return "", ErrProcessorUnavailable
}

var (
	_ port.PaymentProcessor = (*StripeProcessor)(nil)
	_ port.PaymentProcessor = Disabled{}
)
