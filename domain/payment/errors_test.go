package payment

import (
	"errors"
	"fmt"
	"testing"
)

func TestClientErrorClassification(t *testing.T) {
	err := fmt.Errorf("create payment intent: %w", ErrInvalidAmount)

	if !errors.Is(err, ErrClient) {
		t.Fatalf("expected wrapped invalid amount to be a client error")
	}
	if errors.Is(err, ErrProcessor) {
		t.Fatalf("expected invalid amount not to be a processor error")
	}
	if !errors.Is(err, ErrInvalidAmount) {
		t.Fatalf("expected errors.Is to match the sentinel itself")
	}
	if got := Message(err); got != InvalidAmountMessage {
		t.Fatalf("expected message %q, got %q", InvalidAmountMessage, got)
	}
}

func TestProcessorErrorKeepsMessageVerbatim(t *testing.T) {
	cause := errors.New("raw transport detail")
	err := NewProcessorError("Your card was declined.", cause)

	if !errors.Is(err, ErrProcessor) {
		t.Fatalf("expected processor error kind")
	}
	if !errors.Is(err, cause) {
		t.Fatalf("expected cause to be reachable through Unwrap")
	}
	if got := Message(err); got != "Your card was declined." {
		t.Fatalf("expected verbatim processor message, got %q", got)
	}
	if err.Error() != "Your card was declined.: raw transport detail" {
		t.Fatalf("unexpected Error() %q", err.Error())
	}
}

func TestMessageOfUnclassifiedError(t *testing.T) {
	if got := Message(errors.New("boom")); got != "boom" {
		t.Fatalf("expected boom, got %q", got)
	}
	if got := Message(nil); got != "" {
		t.Fatalf("expected empty message for nil, got %q", got)
	}
}

func TestNewChargeRequest(t *testing.T) {
	testCases := []struct {
		name        string
		amount      int64
		description string
		metadata    map[string]string
		wantErr     bool
		wantDesc    string
	}{
		{"zero amount", 0, "", nil, true, ""},
		{"negative amount", -10, "", nil, true, ""},
		{"defaults", 2500, "", nil, false, DefaultDescription},
		{"explicit description", 2500, "Mow", map[string]string{"yard": "front"}, false, "Mow"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			req, err := NewChargeRequest(tc.amount, tc.description, tc.metadata)
			if tc.wantErr {
				if !errors.Is(err, ErrInvalidAmount) {
					t.Fatalf("expected ErrInvalidAmount, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("expected nil error, got %v", err)
			}
			if req.AmountCents != tc.amount {
				t.Fatalf("expected amount %d, got %d", tc.amount, req.AmountCents)
			}
			if req.Description != tc.wantDesc {
				t.Fatalf("expected description %q, got %q", tc.wantDesc, req.Description)
			}
			if req.Metadata == nil {
				t.Fatalf("expected non-nil metadata")
			}
			if len(req.Metadata) != len(tc.metadata) {
				t.Fatalf("expected %d metadata entries, got %d", len(tc.metadata), len(req.Metadata))
			}
		})
	}
}

func TestNewCustomerRequest(t *testing.T) {
	req := NewCustomerRequest("", "")
	if req.Name != DefaultCustomerName {
		t.Fatalf("expected default name, got %q", req.Name)
	}
	if req.Email != "" {
		t.Fatalf("expected no email, got %q", req.Email)
	}

	req = NewCustomerRequest("Ana", "ana@example.com")
	if req.Name != "Ana" || req.Email != "ana@example.com" {
		t.Fatalf("expected values passed through, got %+v", req)
	}
}
