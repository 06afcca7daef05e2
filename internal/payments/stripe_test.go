package payments

import (
	"context"
	"errors"
	"testing"

	"github.com/stripe/stripe-go/v76"

	"github.com/brightstay/brightstay-api/internal/domain"
)

type stubIntents struct {
	lastParams *stripe.PaymentIntentParams
	calls      int
	err        error
}

func (s *stubIntents) New(params *stripe.PaymentIntentParams) (*stripe.PaymentIntent, error) {
	s.calls++
	s.lastParams = params
	if s.err != nil {
		return nil, s.err
	}
	return &stripe.PaymentIntent{ClientSecret: "pi_secret_123"}, nil
}

func TestMinorUnitsTruncates(t *testing.T) {
	cases := []struct {
		price float64
		want  int64
	}{
		{19.999, 1999},
		{10, 1000},
		{0.01, 1},
		{99.995, 9999},
		{123.456, 12345},
	}
	for _, c := range cases {
		if got := MinorUnits(c.price); got != c.want {
			t.Errorf("MinorUnits(%v) = %d, want %d", c.price, got, c.want)
		}
	}
}

func TestCreateIntentReturnsClientSecret(t *testing.T) {
	stub := &stubIntents{}
	svc := NewWithCreator(stub, "usd")

	secret, err := svc.CreateIntent(context.Background(), 19.999)
	if err != nil {
		t.Fatalf("CreateIntent: %v", err)
	}
	if secret != "pi_secret_123" {
		t.Errorf("secret = %q", secret)
	}
	if got := *stub.lastParams.Amount; got != 1999 {
		t.Errorf("amount = %d, want 1999 (truncated)", got)
	}
	if got := *stub.lastParams.Currency; got != "usd" {
		t.Errorf("currency = %q", got)
	}
	if ap := stub.lastParams.AutomaticPaymentMethods; ap == nil || !*ap.Enabled {
		t.Error("automatic payment methods must be enabled")
	}
}

func TestCreateIntentRejectsBadPrice(t *testing.T) {
	stub := &stubIntents{}
	svc := NewWithCreator(stub, "usd")

	for _, price := range []float64{0, -5} {
		if _, err := svc.CreateIntent(context.Background(), price); !errors.Is(err, domain.ErrInvalidInput) {
			t.Errorf("price %v: err = %v, want ErrInvalidInput", price, err)
		}
	}
	if stub.calls != 0 {
		t.Errorf("processor called %d times for invalid prices", stub.calls)
	}
}

func TestCreateIntentProviderFailure(t *testing.T) {
	stub := &stubIntents{err: errors.New("stripe is down")}
	svc := NewWithCreator(stub, "usd")

	_, err := svc.CreateIntent(context.Background(), 50)
	if !errors.Is(err, domain.ErrPaymentProvider) {
		t.Errorf("err = %v, want ErrPaymentProvider", err)
	}
}
