package metrics

import (
	"context"
	"time"

	protocols "github.com/giovaniif/locallawnpro/protocols"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const (
	operationCreatePaymentIntent = "create_payment_intent"
	operationCreateCustomer      = "create_customer"
	tracerName                   = "payment-processor"
)

// InstrumentedPaymentGateway records a counter, a latency histogram and a
// client span around every processor call.
type InstrumentedPaymentGateway struct {
	next   protocols.PaymentGateway
	tracer trace.Tracer
}

func NewInstrumentedPaymentGateway(next protocols.PaymentGateway) *InstrumentedPaymentGateway {
	return &InstrumentedPaymentGateway{next: next, tracer: otel.Tracer(tracerName)}
}

func (g *InstrumentedPaymentGateway) CreatePaymentIntent(ctx context.Context, input protocols.PaymentIntentInput) (*protocols.PaymentIntent, error) {
	ctx, span := g.tracer.Start(ctx, "processor."+operationCreatePaymentIntent,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.Int64("payment.amount_cents", input.AmountCents),
			attribute.String("payment.currency", input.Currency),
		),
	)
	defer span.End()

	start := time.Now()
	intent, err := g.next.CreatePaymentIntent(ctx, input)
	observe(operationCreatePaymentIntent, start, err)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	span.SetAttributes(attribute.String("payment.intent_id", intent.ID))
	return intent, nil
}

func (g *InstrumentedPaymentGateway) CreateCustomer(ctx context.Context, input protocols.CustomerInput) (*protocols.Customer, error) {
	ctx, span := g.tracer.Start(ctx, "processor."+operationCreateCustomer, trace.WithSpanKind(trace.SpanKindClient))
	defer span.End()

	start := time.Now()
	customer, err := g.next.CreateCustomer(ctx, input)
	observe(operationCreateCustomer, start, err)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	span.SetAttributes(attribute.String("payment.customer_id", customer.ID))
	return customer, nil
}

func observe(operation string, start time.Time, err error) {
	outcome := "success"
	if err != nil {
		outcome = "error"
	}
	ProcessorRequests.WithLabelValues(operation, outcome).Inc()
	ProcessorDuration.WithLabelValues(operation).Observe(time.Since(start).Seconds())
}
