package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/azniosman/Project-Fortress/internal/apperrors"
	"github.com/azniosman/Project-Fortress/internal/gateway"
	"github.com/azniosman/Project-Fortress/internal/metrics"
	"github.com/azniosman/Project-Fortress/internal/middleware"
	"github.com/azniosman/Project-Fortress/internal/models"
)

type PaymentHandler struct {
	gateway gateway.Gateway
	metrics *metrics.Metrics
	logger  *zap.Logger
}

func NewPaymentHandler(gw gateway.Gateway, m *metrics.Metrics, logger *zap.Logger) *PaymentHandler {
	return &PaymentHandler{
		gateway: gw,
		metrics: m,
		logger:  logger,
	}
}

// CreatePayment handles POST /api/v1/payments. The body has already passed
// validation; what remains is the gateway round-trip: payment method first
// for card payments, then a create-and-confirm of the intent.
func (h *PaymentHandler) CreatePayment(c *gin.Context) {
	req := middleware.PaymentRequestFrom(c)
	if req == nil {
		c.Error(apperrors.Internal(errors.New("payment request missing from context")))
		return
	}

	ctx := c.Request.Context()

	var methodID string
	if *req.PaymentMethod == models.PaymentMethodCreditCard {
		id, err := h.gateway.CreatePaymentMethod(ctx, *req.CardDetails)
		if err != nil {
			h.metrics.PaymentsTotal.WithLabelValues("failed").Inc()
			c.Error(err)
			return
		}
		methodID = id
	}

	intent, err := h.gateway.CreateAndConfirmIntent(ctx, *req.Amount, *req.Currency, methodID)
	if err != nil {
		h.metrics.PaymentsTotal.WithLabelValues("failed").Inc()
		c.Error(err)
		return
	}

	h.metrics.PaymentsTotal.WithLabelValues("succeeded").Inc()
	h.logger.Info("payment created",
		zap.String("intent_id", intent.ID),
		zap.String("status", intent.Status),
		zap.String("currency", intent.Currency),
	)

	c.JSON(http.StatusCreated, models.NewSuccessResponse(models.PaymentDataFromIntent(intent)))
}

// GetPayment handles GET /api/v1/payments/:paymentIntentId.
func (h *PaymentHandler) GetPayment(c *gin.Context) {
	intent, err := h.gateway.RetrieveIntent(c.Request.Context(), c.Param("paymentIntentId"))
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, models.NewSuccessResponse(models.PaymentDataFromIntent(intent)))
}
