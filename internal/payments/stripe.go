package payments

import (
	"context"
	"fmt"
	"math"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/client"

	"github.com/brightstay/brightstay-api/internal/domain"
	"github.com/brightstay/brightstay-api/pkg/logger"
)

// IntentCreator is the slice of the Stripe API the workflow needs. The
// production implementation is the Stripe client; tests substitute a stub.
type IntentCreator interface {
	New(params *stripe.PaymentIntentParams) (*stripe.PaymentIntent, error)
}

type Service struct {
	intents  IntentCreator
	currency string
}

func New(secretKey, currency string) *Service {
	sc := &client.API{}
	sc.Init(secretKey, nil)
	return &Service{intents: sc.PaymentIntents, currency: currency}
}

// NewWithCreator is used by tests to inject a stub processor.
func NewWithCreator(intents IntentCreator, currency string) *Service {
	return &Service{intents: intents, currency: currency}
}

// MinorUnits converts a decimal price to the processor's minor-unit integer.
// Fractional cents are truncated, not rounded: 19.999 becomes 1999.
func MinorUnits(price float64) int64 {
	return int64(price * 100)
}

// CreateIntent authorizes a charge for price and returns the client-facing
// secret. It never records a booking; persisting the booking is a separate
// step the client performs after confirming with the processor.
func (s *Service) CreateIntent(ctx context.Context, price float64) (string, error) {
	if price <= 0 || math.IsNaN(price) || math.IsInf(price, 0) {
		return "", fmt.Errorf("%w: price must be a positive number", domain.ErrInvalidInput)
	}

	params := &stripe.PaymentIntentParams{
		Params:   stripe.Params{Context: ctx},
		Amount:   stripe.Int64(MinorUnits(price)),
		Currency: stripe.String(s.currency),
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled: stripe.Bool(true),
		},
	}

	pi, err := s.intents.New(params)
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrPaymentProvider, err)
	}

	logger.InfoContext(ctx, "payment intent created", "amount", MinorUnits(price), "currency", s.currency)
	return pi.ClientSecret, nil
}
