package gateways

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/giovaniif/locallawnpro/domain/payment"
	protocols "github.com/giovaniif/locallawnpro/protocols"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeStripe struct {
	calls  atomic.Int32
	status int
	body   string
	check  func(t *testing.T, r *http.Request)
}

func (f *fakeStripe) server(t *testing.T) *httptest.Server {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		f.calls.Add(1)
		assert.NoError(t, r.ParseForm())
		if f.check != nil {
			f.check(t, r)
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(f.status)
		_, _ = w.Write([]byte(f.body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestStripeCreatePaymentIntent(t *testing.T) {
	fake := &fakeStripe{
		status: http.StatusOK,
		body:   `{"id":"pi_123","object":"payment_intent","client_secret":"pi_123_secret_456","amount":2500,"currency":"usd"}`,
		check: func(t *testing.T, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "/v1/payment_intents", r.URL.Path)
			assert.Equal(t, "Bearer sk_test_123", r.Header.Get("Authorization"))
			assert.Equal(t, "2500", r.PostForm.Get("amount"))
			assert.Equal(t, "usd", r.PostForm.Get("currency"))
			assert.Equal(t, "Mow", r.PostForm.Get("description"))
			assert.Equal(t, "true", r.PostForm.Get("automatic_payment_methods[enabled]"))
			assert.Equal(t, "front", r.PostForm.Get("metadata[yard]"))
			assert.Equal(t, "key-1", r.Header.Get("Idempotency-Key"))
		},
	}
	gateway := NewStripeGateway("sk_test_123", StripeGatewayOptions{APIBase: fake.server(t).URL})

	intent, err := gateway.CreatePaymentIntent(context.Background(), protocols.PaymentIntentInput{
		AmountCents:                    2500,
		Currency:                       "usd",
		Description:                    "Mow",
		Metadata:                       map[string]string{"yard": "front"},
		AutomaticPaymentMethodsEnabled: true,
		IdempotencyKey:                 "key-1",
	})

	require.NoError(t, err)
	assert.Equal(t, "pi_123", intent.ID)
	assert.Equal(t, "pi_123_secret_456", intent.ClientSecret)
	assert.EqualValues(t, 1, fake.calls.Load())
}

func TestStripeCreatePaymentIntentSurfacesProcessorMessage(t *testing.T) {
	fake := &fakeStripe{
		status: http.StatusPaymentRequired,
		body:   `{"error":{"type":"card_error","code":"card_declined","message":"Your card was declined."}}`,
	}
	gateway := NewStripeGateway("sk_test_123", StripeGatewayOptions{APIBase: fake.server(t).URL})

	_, err := gateway.CreatePaymentIntent(context.Background(), protocols.PaymentIntentInput{
		AmountCents: 2500,
		Currency:    "usd",
		Description: "Mow",
	})

	require.Error(t, err)
	assert.True(t, errors.Is(err, payment.ErrProcessor))
	assert.Equal(t, "Your card was declined.", payment.Message(err))
}

func TestStripeServerErrorIsNotRetried(t *testing.T) {
	fake := &fakeStripe{
		status: http.StatusInternalServerError,
		body:   `{"error":{"type":"api_error","message":"Something went wrong on Stripe's end."}}`,
	}
	gateway := NewStripeGateway("sk_test_123", StripeGatewayOptions{APIBase: fake.server(t).URL})

	_, err := gateway.CreatePaymentIntent(context.Background(), protocols.PaymentIntentInput{
		AmountCents: 100,
		Currency:    "usd",
		Description: "Edge",
	})

	require.Error(t, err)
	assert.Equal(t, "Something went wrong on Stripe's end.", payment.Message(err))
	assert.EqualValues(t, 1, fake.calls.Load())
}

func TestStripeCreateCustomer(t *testing.T) {
	fake := &fakeStripe{
		status: http.StatusOK,
		body:   `{"id":"cus_123","object":"customer"}`,
		check: func(t *testing.T, r *http.Request) {
			assert.Equal(t, "/v1/customers", r.URL.Path)
			assert.Equal(t, "LocalLawnPro Customer", r.PostForm.Get("name"))
			_, hasEmail := r.PostForm["email"]
			assert.False(t, hasEmail)
		},
	}
	gateway := NewStripeGateway("sk_test_123", StripeGatewayOptions{APIBase: fake.server(t).URL})

	customer, err := gateway.CreateCustomer(context.Background(), protocols.CustomerInput{Name: "LocalLawnPro Customer"})

	require.NoError(t, err)
	assert.Equal(t, "cus_123", customer.ID)
}

func TestStripeCreateCustomerWithEmail(t *testing.T) {
	fake := &fakeStripe{
		status: http.StatusOK,
		body:   `{"id":"cus_456","object":"customer"}`,
		check: func(t *testing.T, r *http.Request) {
			assert.Equal(t, "jo@example.com", r.PostForm.Get("email"))
		},
	}
	gateway := NewStripeGateway("sk_test_123", StripeGatewayOptions{APIBase: fake.server(t).URL})

	customer, err := gateway.CreateCustomer(context.Background(), protocols.CustomerInput{Name: "Jo", Email: "jo@example.com"})

	require.NoError(t, err)
	assert.Equal(t, "cus_456", customer.ID)
}

func TestStripeUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close()
	gateway := NewStripeGateway("sk_test_123", StripeGatewayOptions{APIBase: srv.URL})

	_, err := gateway.CreateCustomer(context.Background(), protocols.CustomerInput{Name: "Jo"})

	require.Error(t, err)
	assert.True(t, errors.Is(err, payment.ErrProcessor))
	assert.NotEmpty(t, payment.Message(err))
}
