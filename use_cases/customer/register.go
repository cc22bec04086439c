package customer

import (
	"context"
	"errors"

	"github.com/giovaniif/locallawnpro/domain/payment"
	"github.com/giovaniif/locallawnpro/infra/logging"
	protocols "github.com/giovaniif/locallawnpro/protocols"
	"go.uber.org/zap"
)

func NewRegisterCustomer(paymentGateway protocols.PaymentGateway) *RegisterCustomer {
	return &RegisterCustomer{paymentGateway: paymentGateway}
}

// Register creates a processor-side customer. Identical inputs create
// distinct customers.
func (r *RegisterCustomer) Register(ctx context.Context, input Input) (*payment.CustomerConfirmation, error) {
	logger := logging.FromContext(ctx).With(zap.String("use_case", "register_customer"))
	request := payment.NewCustomerRequest(input.Name, input.Email)

	logger.Info("customer_create_attempt", zap.Bool("has_email", request.Email != ""))
	customer, err := r.paymentGateway.CreateCustomer(ctx, protocols.CustomerInput{
		Name:  request.Name,
		Email: request.Email,
	})
	if err != nil {
		if !errors.Is(err, payment.ErrProcessor) {
			err = payment.NewProcessorError(err.Error(), err)
		}
		logger.Error("customer_create_failed", zap.Error(err))
		return nil, err
	}

	logger.Info("customer_created", zap.String("customer_id", customer.ID))
	return &payment.CustomerConfirmation{CustomerID: customer.ID}, nil
}

type Input struct {
	Name  string
	Email string
}

type RegisterCustomer struct {
	paymentGateway protocols.PaymentGateway
}
