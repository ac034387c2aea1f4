// Package gateway wraps the external payment gateway behind a narrow
// interface so handlers and tests never touch the SDK directly.
package gateway

import (
	"context"

	"github.com/azniosman/Project-Fortress/internal/models"
)

// Gateway is the capability surface the payment handlers need. All calls are
// single-attempt; failures are classified and surfaced, never retried.
type Gateway interface {
	// CreatePaymentMethod submits card details and returns the gateway's
	// opaque payment method reference.
	CreatePaymentMethod(ctx context.Context, card models.CardDetails) (string, error)
	// CreateAndConfirmIntent converts amount to minor units, creates an
	// intent with the given method and confirms it synchronously.
	CreateAndConfirmIntent(ctx context.Context, amount float64, currency, methodID string) (*models.PaymentIntent, error)
	// RetrieveIntent fetches the current state of an intent by id.
	RetrieveIntent(ctx context.Context, id string) (*models.PaymentIntent, error)
}
