package payments

import (
	"context"
	"errors"
	"strings"

	stripe "github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/client"
)

// StripeClient creates card payment intents with Stripe.
type StripeClient struct {
	api *client.API
}

// NewStripeClient constructs a Stripe client for the given secret key.
func NewStripeClient(secretKey string) (*StripeClient, error) {
	if strings.TrimSpace(secretKey) == "" {
		return nil, errors.New("stripe secret key is required")
	}
	api := &client.API{}
	api.Init(secretKey, nil)
	return &StripeClient{api: api}, nil
}

// CreateIntent requests a card payment intent for the given minor-unit
// amount and returns the intent's client secret verbatim. No idempotency key
// and no retries; the amount is passed through unvalidated.
func (c *StripeClient) CreateIntent(ctx context.Context, amount int64, currency string) (string, error) {
	params := &stripe.PaymentIntentParams{
		Amount:             stripe.Int64(amount),
		Currency:           stripe.String(currency),
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
	}
	params.Context = ctx

	intent, err := c.api.PaymentIntents.New(params)
	if err != nil {
		return "", err
	}
	return intent.ClientSecret, nil
}
