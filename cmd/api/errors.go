package api

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/giovaniif/locallawnpro/domain/payment"
	"github.com/go-playground/validator/v10"
)

const (
	invalidBodyMessage        = "Invalid request body."
	invalidJSONMessage        = "Invalid JSON body."
	invalidDescriptionMessage = "Invalid description. Must be a string."
	invalidMetadataMessage    = "Invalid metadata. Must be an object of string values."
)

type errorResponse struct {
	Error string `json:"error"`
}

func httpStatus(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, payment.ErrInFlight):
		return http.StatusConflict
	case errors.Is(err, payment.ErrClient):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func writeError(c *gin.Context, err error) {
	_ = c.Error(err)
	c.JSON(httpStatus(err), errorResponse{Error: payment.Message(err)})
}

// paymentIntentBindError turns a binding failure into a ClientError. Anything
// that leaves amount_cents missing or unusable reports the amount message.
func paymentIntentBindError(err error) error {
	var typeErr *json.UnmarshalTypeError
	var syntaxErr *json.SyntaxError
	var validationErrs validator.ValidationErrors
	switch {
	case errors.Is(err, io.EOF), errors.As(err, &validationErrs):
		return payment.NewClientError(payment.InvalidAmountMessage, err)
	case errors.As(err, &syntaxErr), errors.Is(err, io.ErrUnexpectedEOF):
		return payment.NewClientError(invalidJSONMessage, err)
	case errors.As(err, &typeErr):
		switch {
		case typeErr.Field == "amount_cents":
			return payment.NewClientError(payment.InvalidAmountMessage, err)
		case typeErr.Field == "description":
			return payment.NewClientError(invalidDescriptionMessage, err)
		case strings.HasPrefix(typeErr.Field, "metadata"):
			return payment.NewClientError(invalidMetadataMessage, err)
		}
	}
	return payment.NewClientError(invalidBodyMessage, err)
}

func customerBindError(err error) error {
	var syntaxErr *json.SyntaxError
	if errors.As(err, &syntaxErr) || errors.Is(err, io.ErrUnexpectedEOF) {
		return payment.NewClientError(invalidJSONMessage, err)
	}
	return payment.NewClientError(invalidBodyMessage, err)
}
