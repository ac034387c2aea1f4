package middleware

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/azniosman/Project-Fortress/internal/apperrors"
	"github.com/azniosman/Project-Fortress/internal/models"
	"github.com/azniosman/Project-Fortress/internal/validation"
)

const paymentRequestKey = "payment_request"

// Validation messages, in check order.
const (
	MsgInvalidBody          = "Invalid request body"
	MsgMissingFields        = "Missing required fields"
	MsgAmountNotPositive    = "Amount must be a positive number"
	MsgInvalidCurrency      = "Invalid currency. Valid options are: USD, EUR, GBP"
	MsgInvalidPaymentMethod = "Invalid payment method. Valid options are: credit_card, bank_transfer"
	MsgCardDetailsRequired  = "Card details are required for credit card payments"
	MsgInvalidCardNumber    = "Invalid card number"
	MsgInvalidExpiry        = "Card expiry date is invalid or in the past"
	MsgInvalidCVV           = "Invalid CVV"
)

// ValidatePayment checks the payment body in order, short-circuiting on the
// first failure with a validation error for ErrorHandler to format. A request
// that passes is stashed in the context for the handler. Rejections are logged
// with the offending field only, never card contents.
func ValidatePayment(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.PaymentRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			logger.Warn("payment request body rejected", zap.String("field", "body"), zap.Error(err))
			rejectValidation(c, MsgInvalidBody)
			return
		}

		if req.Amount == nil || req.Currency == nil || req.PaymentMethod == nil {
			logger.Warn("payment request rejected",
				zap.String("field", "required"),
				zap.Bool("has_amount", req.Amount != nil),
				zap.Bool("has_currency", req.Currency != nil),
				zap.Bool("has_payment_method", req.PaymentMethod != nil),
			)
			rejectValidation(c, MsgMissingFields)
			return
		}

		if *req.Amount <= 0 {
			logger.Warn("payment request rejected", zap.String("field", "amount"), zap.Float64("amount", *req.Amount))
			rejectValidation(c, MsgAmountNotPositive)
			return
		}

		if !models.IsValidCurrency(*req.Currency) {
			logger.Warn("payment request rejected", zap.String("field", "currency"), zap.String("currency", *req.Currency))
			rejectValidation(c, MsgInvalidCurrency)
			return
		}

		if !models.IsValidPaymentMethod(*req.PaymentMethod) {
			logger.Warn("payment request rejected", zap.String("field", "paymentMethod"), zap.String("payment_method", *req.PaymentMethod))
			rejectValidation(c, MsgInvalidPaymentMethod)
			return
		}

		if *req.PaymentMethod == models.PaymentMethodCreditCard {
			card := req.CardDetails
			if card == nil || card.CardNumber == "" || card.ExpiryDate == "" || card.CVV == "" {
				logger.Warn("payment request rejected", zap.String("field", "cardDetails"))
				rejectValidation(c, MsgCardDetailsRequired)
				return
			}
			if !validation.ValidateCardNumber(card.CardNumber) {
				logger.Warn("payment request rejected", zap.String("field", "cardDetails.cardNumber"))
				rejectValidation(c, MsgInvalidCardNumber)
				return
			}
			if !validation.ValidateExpiry(card.ExpiryDate) {
				logger.Warn("payment request rejected", zap.String("field", "cardDetails.expiryDate"))
				rejectValidation(c, MsgInvalidExpiry)
				return
			}
			if !validation.ValidateCVV(card.CVV) {
				logger.Warn("payment request rejected", zap.String("field", "cardDetails.cvv"))
				rejectValidation(c, MsgInvalidCVV)
				return
			}
		}

		c.Set(paymentRequestKey, &req)
		c.Next()
	}
}

// PaymentRequestFrom returns the request ValidatePayment accepted, or nil if
// validation did not run.
func PaymentRequestFrom(c *gin.Context) *models.PaymentRequest {
	v, ok := c.Get(paymentRequestKey)
	if !ok {
		return nil
	}
	req, _ := v.(*models.PaymentRequest)
	return req
}

func rejectValidation(c *gin.Context, message string) {
	c.Error(apperrors.Validation(message))
	c.Abort()
}
