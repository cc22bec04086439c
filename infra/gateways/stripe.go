package gateways

import (
	"context"
	"errors"

	"github.com/giovaniif/locallawnpro/domain/payment"
	protocols "github.com/giovaniif/locallawnpro/protocols"
	"github.com/stripe/stripe-go/v81"
	"github.com/stripe/stripe-go/v81/client"
)

type StripeGatewayOptions struct {
	// APIBase overrides the Stripe API URL (e.g. a stripe-mock instance).
	APIBase string
	Logger  stripe.LeveledLoggerInterface
}

// StripeGateway talks to Stripe through a client bound to one secret key.
// The SDK's own network retries are disabled: each call is a single attempt.
type StripeGateway struct {
	client *client.API
}

func NewStripeGateway(secretKey string, opts StripeGatewayOptions) *StripeGateway {
	cfg := &stripe.BackendConfig{
		MaxNetworkRetries: stripe.Int64(0),
		EnableTelemetry:   stripe.Bool(false),
	}
	if opts.APIBase != "" {
		cfg.URL = stripe.String(opts.APIBase)
	}
	if opts.Logger != nil {
		cfg.LeveledLogger = opts.Logger
	}
	backend := stripe.GetBackendWithConfig(stripe.APIBackend, cfg)

	sc := &client.API{}
	sc.Init(secretKey, &stripe.Backends{
		API:     backend,
		Connect: backend,
		Uploads: backend,
	})
	return &StripeGateway{client: sc}
}

func (s *StripeGateway) CreatePaymentIntent(ctx context.Context, input protocols.PaymentIntentInput) (*protocols.PaymentIntent, error) {
	params := &stripe.PaymentIntentParams{
		Amount:      stripe.Int64(input.AmountCents),
		Currency:    stripe.String(input.Currency),
		Description: stripe.String(input.Description),
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled: stripe.Bool(input.AutomaticPaymentMethodsEnabled),
		},
	}
	params.Context = ctx
	for k, v := range input.Metadata {
		params.AddMetadata(k, v)
	}
	if input.IdempotencyKey != "" {
		params.SetIdempotencyKey(input.IdempotencyKey)
	}

	pi, err := s.client.PaymentIntents.New(params)
	if err != nil {
		return nil, processorError(err)
	}
	return &protocols.PaymentIntent{ID: pi.ID, ClientSecret: pi.ClientSecret}, nil
}

func (s *StripeGateway) CreateCustomer(ctx context.Context, input protocols.CustomerInput) (*protocols.Customer, error) {
	params := &stripe.CustomerParams{
		Name: stripe.String(input.Name),
	}
	params.Context = ctx
	if input.Email != "" {
		params.Email = stripe.String(input.Email)
	}

	c, err := s.client.Customers.New(params)
	if err != nil {
		return nil, processorError(err)
	}
	return &protocols.Customer{ID: c.ID}, nil
}

// processorError surfaces Stripe's human readable message; stripe.Error's own
// Error() is a JSON dump of the whole payload.
func processorError(err error) error {
	var stripeErr *stripe.Error
	if errors.As(err, &stripeErr) && stripeErr.Msg != "" {
		return payment.NewProcessorError(stripeErr.Msg, err)
	}
	return payment.NewProcessorError(err.Error(), err)
}
