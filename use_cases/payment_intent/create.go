package paymentintent

import (
	"context"
	"errors"

	"github.com/giovaniif/locallawnpro/domain/payment"
	"github.com/giovaniif/locallawnpro/infra/logging"
	protocols "github.com/giovaniif/locallawnpro/protocols"
	"go.uber.org/zap"
)

func NewCreatePaymentIntent(paymentGateway protocols.PaymentGateway, idempotencyGateway protocols.IdempotencyGateway) *CreatePaymentIntent {
	return &CreatePaymentIntent{
		paymentGateway:     paymentGateway,
		idempotencyGateway: idempotencyGateway,
	}
}

func (c *CreatePaymentIntent) Create(ctx context.Context, input Input) (*payment.ChargeConfirmation, error) {
	logger := logging.FromContext(ctx).With(zap.String("use_case", "create_payment_intent"))

	request, err := payment.NewChargeRequest(input.AmountCents, input.Description, input.Metadata)
	if err != nil {
		logger.Info("payment_intent_rejected",
			zap.Int64("amount_cents", input.AmountCents),
			zap.String("reason", payment.Message(err)),
		)
		return nil, err
	}

	if input.IdempotencyKey != "" && c.idempotencyGateway != nil {
		release, err := c.reserve(ctx, logger, input.IdempotencyKey)
		if err != nil {
			return nil, err
		}
		defer release()
	}

	logger.Info("payment_intent_attempt",
		zap.Int64("amount_cents", request.AmountCents),
		zap.String("currency", payment.Currency),
	)
	intent, err := c.paymentGateway.CreatePaymentIntent(ctx, protocols.PaymentIntentInput{
		AmountCents:                    request.AmountCents,
		Currency:                       payment.Currency,
		Description:                    request.Description,
		Metadata:                       request.Metadata,
		AutomaticPaymentMethodsEnabled: true,
		IdempotencyKey:                 input.IdempotencyKey,
	})
	if err != nil {
		if !errors.Is(err, payment.ErrProcessor) {
			err = payment.NewProcessorError(err.Error(), err)
		}
		logger.Error("payment_intent_failed", zap.Error(err))
		return nil, err
	}

	logger.Info("payment_intent_created", zap.String("payment_intent_id", intent.ID))
	return &payment.ChargeConfirmation{
		ClientSecret:    intent.ClientSecret,
		PaymentIntentID: intent.ID,
	}, nil
}

// reserve holds the idempotency key for the duration of the request. When the
// store is unavailable the request proceeds unguarded.
func (c *CreatePaymentIntent) reserve(ctx context.Context, logger *zap.Logger, key string) (func(), error) {
	err := c.idempotencyGateway.ReserveIdempotencyKey(ctx, key)
	if errors.Is(err, payment.ErrInFlight) {
		logger.Info("payment_intent_in_flight", zap.String("idempotency_key", key))
		return nil, err
	}
	if err != nil {
		logger.Warn("idempotency_reserve_failed", zap.String("idempotency_key", key), zap.Error(err))
		return func() {}, nil
	}
	return func() {
		if err := c.idempotencyGateway.ReleaseIdempotencyKey(context.WithoutCancel(ctx), key); err != nil {
			logger.Warn("idempotency_release_failed", zap.String("idempotency_key", key), zap.Error(err))
		}
	}, nil
}

type Input struct {
	AmountCents    int64
	Description    string
	Metadata       map[string]string
	IdempotencyKey string
}

type CreatePaymentIntent struct {
	paymentGateway     protocols.PaymentGateway
	idempotencyGateway protocols.IdempotencyGateway
}
