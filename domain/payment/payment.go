package payment

const (
	Currency            = "usd"
	DefaultDescription  = "Lawn care service"
	DefaultCustomerName = "LocalLawnPro Customer"
)

type ChargeRequest struct {
	AmountCents int64
	Description string
	Metadata    map[string]string
}

// NewChargeRequest applies the description and metadata defaults and rejects
// amounts that are not strictly positive.
func NewChargeRequest(amountCents int64, description string, metadata map[string]string) (ChargeRequest, error) {
	if amountCents <= 0 {
		return ChargeRequest{}, ErrInvalidAmount
	}
	if description == "" {
		description = DefaultDescription
	}
	if metadata == nil {
		metadata = map[string]string{}
	}
	return ChargeRequest{
		AmountCents: amountCents,
		Description: description,
		Metadata:    metadata,
	}, nil
}

type ChargeConfirmation struct {
	ClientSecret    string `json:"clientSecret"`
	PaymentIntentID string `json:"paymentIntentId"`
}

type CustomerRequest struct {
	Name  string
	Email string
}

// NewCustomerRequest fills in the fallback name. Email is kept as given; an
// empty email means the processor receives none.
func NewCustomerRequest(name, email string) CustomerRequest {
	if name == "" {
		name = DefaultCustomerName
	}
	return CustomerRequest{Name: name, Email: email}
}

type CustomerConfirmation struct {
	CustomerID string `json:"customerId"`
}
