package protocols

import "context"

type PaymentIntentInput struct {
	AmountCents                    int64
	Currency                       string
	Description                    string
	Metadata                       map[string]string
	AutomaticPaymentMethodsEnabled bool
	IdempotencyKey                 string
}

type PaymentIntent struct {
	ID           string
	ClientSecret string
}

type CustomerInput struct {
	Name  string
	Email string
}

type Customer struct {
	ID string
}

// PaymentGateway is the payment processor. Implementations make a single
// attempt per call and return processor failures as payment.ErrProcessor.
type PaymentGateway interface {
	CreatePaymentIntent(ctx context.Context, input PaymentIntentInput) (*PaymentIntent, error)
	CreateCustomer(ctx context.Context, input CustomerInput) (*Customer, error)
}
