// Package payment abstracts the payment providers the order workflow talks
// to. Two implementations exist: a PayPal REST client and an in-process mock
// simulator for running without real credentials.
package payment

import (
	"errors"

	"walkup/internal/models"
)

// ErrDeclined is returned by Capture when the provider processed the request
// but did not complete the payment. Callers treat it as a clean payment
// failure, not an infrastructure error.
var ErrDeclined = errors.New("payment was not completed")

// Intent is the result of authorizing a payment: the provider-side payment
// identifier and the URL the buyer must be redirected to for approval.
type Intent struct {
	PaymentID   string
	PayerID     string
	ApprovalURL string
}

// Provider drives an external (or simulated) payment flow.
type Provider interface {
	// Authorize registers the order with the provider and returns the
	// redirect intent. No money moves yet.
	Authorize(order *models.Order) (*Intent, error)
	// Capture finalizes a previously authorized payment. A nil return means
	// the payment completed; ErrDeclined means the provider declined it.
	Capture(paymentID string) error
}
