package gateway

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/client"
	"go.uber.org/zap"

	"github.com/azniosman/Project-Fortress/internal/apperrors"
	"github.com/azniosman/Project-Fortress/internal/models"
)

func TestMinorUnits(t *testing.T) {
	tests := []struct {
		amount float64
		want   int64
	}{
		{100.00, 10000},
		{0.01, 1},
		{19.99, 1999},
		{10.555, 1056},
		{0.1 + 0.2, 30},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, MinorUnits(tt.amount), "MinorUnits(%v)", tt.amount)
	}
}

func TestParseExpiry(t *testing.T) {
	month, year, err := parseExpiry("09/27")
	require.NoError(t, err)
	assert.Equal(t, int64(9), month)
	assert.Equal(t, int64(2027), year)

	_, _, err = parseExpiry("0927")
	assert.Error(t, err)

	_, _, err = parseExpiry("aa/bb")
	assert.Error(t, err)
}

func TestIntentFromStripe(t *testing.T) {
	intent := intentFromStripe(&stripe.PaymentIntent{
		ID:       "pi_1",
		Status:   stripe.PaymentIntentStatusSucceeded,
		Amount:   2500,
		Currency: stripe.Currency("gbp"),
	})

	assert.Equal(t, &models.PaymentIntent{
		ID:       "pi_1",
		Status:   "succeeded",
		Amount:   2500,
		Currency: "gbp",
	}, intent)
}

func TestMapStripeError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantKind apperrors.Kind
	}{
		{
			name:     "card declined",
			err:      &stripe.Error{Type: stripe.ErrorTypeCard, Code: stripe.ErrorCodeCardDeclined, Msg: "Your card was declined."},
			wantKind: apperrors.KindGatewayDeclined,
		},
		{
			name:     "unknown intent",
			err:      &stripe.Error{Type: stripe.ErrorTypeInvalidRequest, Code: stripe.ErrorCodeResourceMissing, Msg: "No such payment_intent"},
			wantKind: apperrors.KindNotFound,
		},
		{
			name:     "api error",
			err:      &stripe.Error{Type: stripe.ErrorTypeAPI, Msg: "internal"},
			wantKind: apperrors.KindGatewayUnavailable,
		},
		{
			name:     "plain network error",
			err:      errors.New("dial tcp: connection refused"),
			wantKind: apperrors.KindGatewayUnavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := mapStripeError(tt.err)
			var appErr *apperrors.Error
			require.ErrorAs(t, got, &appErr)
			assert.Equal(t, tt.wantKind, appErr.Kind)
		})
	}
}

func TestMapStripeErrorDeclineMessage(t *testing.T) {
	got := mapStripeError(&stripe.Error{Type: stripe.ErrorTypeCard})
	var appErr *apperrors.Error
	require.ErrorAs(t, got, &appErr)
	assert.Equal(t, "Your card was declined", appErr.Message)
}

// newTestGateway points the SDK at a local server so the full request path is
// exercised without touching Stripe.
func newTestGateway(t *testing.T, handler http.Handler) *StripeGateway {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	backend := stripe.GetBackendWithConfig(stripe.APIBackend, &stripe.BackendConfig{
		URL:               stripe.String(server.URL),
		HTTPClient:        server.Client(),
		MaxNetworkRetries: stripe.Int64(0),
		LeveledLogger:     &stripe.LeveledLogger{Level: stripe.LevelError},
	})

	sc := &client.API{}
	sc.Init("sk_test_123", &stripe.Backends{API: backend, Connect: backend, Uploads: backend})

	return &StripeGateway{client: sc, logger: zap.NewNop()}
}

func TestCreateAndConfirmIntent(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/v1/payment_intents", func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "10000", r.Form.Get("amount"))
		assert.Equal(t, "usd", r.Form.Get("currency"))
		assert.Equal(t, "true", r.Form.Get("confirm"))
		assert.Equal(t, "pm_123", r.Form.Get("payment_method"))
		assert.Equal(t, "true", r.Form.Get("automatic_payment_methods[enabled]"))
		assert.Equal(t, "never", r.Form.Get("automatic_payment_methods[allow_redirects]"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":"pi_123","object":"payment_intent","status":"succeeded","amount":10000,"currency":"usd"}`))
	})

	gw := newTestGateway(t, mux)
	intent, err := gw.CreateAndConfirmIntent(context.Background(), 100.00, "USD", "pm_123")
	require.NoError(t, err)

	assert.Equal(t, &models.PaymentIntent{
		ID:       "pi_123",
		Status:   "succeeded",
		Amount:   10000,
		Currency: "usd",
	}, intent)
}

func TestCreatePaymentMethod(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/v1/payment_methods", func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "card", r.Form.Get("type"))
		assert.Equal(t, "4242424242424242", r.Form.Get("card[number]"))
		assert.Equal(t, "12", r.Form.Get("card[exp_month]"))
		assert.Equal(t, "2030", r.Form.Get("card[exp_year]"))
		assert.Equal(t, "123", r.Form.Get("card[cvc]"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":"pm_456","object":"payment_method"}`))
	})

	gw := newTestGateway(t, mux)
	id, err := gw.CreatePaymentMethod(context.Background(), models.CardDetails{
		CardNumber: "4242 4242 4242 4242",
		ExpiryDate: "12/30",
		CVV:        "123",
	})
	require.NoError(t, err)
	assert.Equal(t, "pm_456", id)
}

func TestRetrieveIntentNotFound(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/v1/payment_intents/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"error":{"type":"invalid_request_error","code":"resource_missing","message":"No such payment_intent: 'pi_missing'"}}`))
	})

	gw := newTestGateway(t, mux)
	_, err := gw.RetrieveIntent(context.Background(), "pi_missing")

	var appErr *apperrors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.KindNotFound, appErr.Kind)
	assert.Equal(t, "Payment not found", appErr.Message)
}
