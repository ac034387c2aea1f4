package gateway

import (
	"context"
	"errors"
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/client"
	"go.uber.org/zap"

	"github.com/azniosman/Project-Fortress/internal/apperrors"
	"github.com/azniosman/Project-Fortress/internal/models"
)

// StripeGateway is the Stripe-backed Gateway. It owns its own API client with
// a bounded timeout and network retries disabled, so every call is a single
// attempt.
type StripeGateway struct {
	client *client.API
	logger *zap.Logger
}

func NewStripeGateway(secretKey string, timeout time.Duration, logger *zap.Logger) *StripeGateway {
	backend := stripe.GetBackendWithConfig(stripe.APIBackend, &stripe.BackendConfig{
		HTTPClient:        &http.Client{Timeout: timeout},
		MaxNetworkRetries: stripe.Int64(0),
		LeveledLogger:     &stripe.LeveledLogger{Level: stripe.LevelError},
	})

	sc := &client.API{}
	sc.Init(secretKey, &stripe.Backends{API: backend, Connect: backend, Uploads: backend})

	return &StripeGateway{client: sc, logger: logger}
}

func (g *StripeGateway) CreatePaymentMethod(ctx context.Context, card models.CardDetails) (string, error) {
	month, year, err := parseExpiry(card.ExpiryDate)
	if err != nil {
		return "", apperrors.Validation("Invalid expiry date")
	}

	params := &stripe.PaymentMethodParams{
		Type: stripe.String(string(stripe.PaymentMethodTypeCard)),
		Card: &stripe.PaymentMethodCardParams{
			Number:   stripe.String(stripCardNumber(card.CardNumber)),
			ExpMonth: stripe.Int64(month),
			ExpYear:  stripe.Int64(year),
			CVC:      stripe.String(card.CVV),
		},
	}
	params.Context = ctx

	method, err := g.client.PaymentMethods.New(params)
	if err != nil {
		g.logger.Warn("gateway rejected payment method", zap.Error(err))
		return "", mapStripeError(err)
	}

	return method.ID, nil
}

func (g *StripeGateway) CreateAndConfirmIntent(ctx context.Context, amount float64, currency, methodID string) (*models.PaymentIntent, error) {
	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(MinorUnits(amount)),
		Currency: stripe.String(strings.ToLower(currency)),
		Confirm:  stripe.Bool(true),
		// Synchronous flows only: the gateway rejects any method that would
		// need a redirect instead of handing back a next action.
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled:        stripe.Bool(true),
			AllowRedirects: stripe.String(string(stripe.PaymentIntentAutomaticPaymentMethodsAllowRedirectsNever)),
		},
	}
	if methodID != "" {
		params.PaymentMethod = stripe.String(methodID)
	}
	params.Context = ctx

	intent, err := g.client.PaymentIntents.New(params)
	if err != nil {
		g.logger.Warn("gateway rejected payment intent", zap.Error(err))
		return nil, mapStripeError(err)
	}

	return intentFromStripe(intent), nil
}

func (g *StripeGateway) RetrieveIntent(ctx context.Context, id string) (*models.PaymentIntent, error) {
	params := &stripe.PaymentIntentParams{}
	params.Context = ctx

	intent, err := g.client.PaymentIntents.Get(id, params)
	if err != nil {
		return nil, mapStripeError(err)
	}

	return intentFromStripe(intent), nil
}

// MinorUnits converts a major-unit amount to integer minor units, rounding to
// the nearest cent.
func MinorUnits(amount float64) int64 {
	return int64(math.Round(amount * 100))
}

func intentFromStripe(intent *stripe.PaymentIntent) *models.PaymentIntent {
	return &models.PaymentIntent{
		ID:       intent.ID,
		Status:   string(intent.Status),
		Amount:   intent.Amount,
		Currency: string(intent.Currency),
	}
}

func stripCardNumber(number string) string {
	return strings.NewReplacer(" ", "", "-", "").Replace(number)
}

func parseExpiry(expiry string) (month, year int64, err error) {
	parts := strings.Split(expiry, "/")
	if len(parts) != 2 {
		return 0, 0, errors.New("expiry must be MM/YY")
	}
	m, err := strconv.ParseInt(parts[0], 10, 64)
	if err != nil {
		return 0, 0, err
	}
	y, err := strconv.ParseInt(parts[1], 10, 64)
	if err != nil {
		return 0, 0, err
	}
	return m, 2000 + y, nil
}

// mapStripeError classifies an SDK error: card rejections become declines,
// unknown ids become not-found, everything else means the gateway itself
// failed us.
func mapStripeError(err error) error {
	var stripeErr *stripe.Error
	if !errors.As(err, &stripeErr) {
		return apperrors.GatewayUnavailable(err)
	}

	switch {
	case stripeErr.Code == stripe.ErrorCodeResourceMissing:
		return apperrors.NotFound("Payment not found")
	case stripeErr.Type == stripe.ErrorTypeCard:
		msg := stripeErr.Msg
		if msg == "" {
			msg = "Your card was declined"
		}
		return apperrors.GatewayDeclined(msg, err)
	default:
		return apperrors.GatewayUnavailable(err)
	}
}
