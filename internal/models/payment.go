package models

import "strings"

// Supported currencies and payment methods.
const (
	CurrencyUSD = "USD"
	CurrencyEUR = "EUR"
	CurrencyGBP = "GBP"

	PaymentMethodCreditCard   = "credit_card"
	PaymentMethodBankTransfer = "bank_transfer"
)

var (
	ValidCurrencies     = []string{CurrencyUSD, CurrencyEUR, CurrencyGBP}
	ValidPaymentMethods = []string{PaymentMethodCreditCard, PaymentMethodBankTransfer}
)

// CardDetails carries raw card input. It is validated once, forwarded to the
// gateway, and never persisted or logged.
type CardDetails struct {
	CardNumber string `json:"cardNumber"`
	ExpiryDate string `json:"expiryDate"`
	CVV        string `json:"cvv"`
}

// PaymentRequest is the POST /payments body. Required fields are pointers so
// the validator can distinguish "absent" from a zero value.
type PaymentRequest struct {
	Amount        *float64     `json:"amount"`
	Currency      *string      `json:"currency"`
	PaymentMethod *string      `json:"paymentMethod"`
	CardDetails   *CardDetails `json:"cardDetails,omitempty"`
}

// PaymentIntent mirrors the gateway-side intent. The gateway owns the
// authoritative copy; amount is kept in minor units as the gateway reports it.
type PaymentIntent struct {
	ID       string
	Status   string
	Amount   int64
	Currency string
}

// PaymentData is the intent as returned to API callers: amount back in major
// units, currency lowercase.
type PaymentData struct {
	ID       string  `json:"id"`
	Status   string  `json:"status"`
	Amount   float64 `json:"amount"`
	Currency string  `json:"currency"`
}

func PaymentDataFromIntent(intent *PaymentIntent) PaymentData {
	return PaymentData{
		ID:       intent.ID,
		Status:   intent.Status,
		Amount:   float64(intent.Amount) / 100,
		Currency: strings.ToLower(intent.Currency),
	}
}

// SuccessResponse is the envelope for all successful API responses.
type SuccessResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data"`
}

// ErrorResponse is the envelope for all failed API responses.
type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

func NewSuccessResponse(data interface{}) SuccessResponse {
	return SuccessResponse{Success: true, Data: data}
}

func NewErrorResponse(message string) ErrorResponse {
	return ErrorResponse{Success: false, Error: message}
}

func IsValidCurrency(currency string) bool {
	for _, c := range ValidCurrencies {
		if currency == c {
			return true
		}
	}
	return false
}

func IsValidPaymentMethod(method string) bool {
	for _, m := range ValidPaymentMethods {
		if method == m {
			return true
		}
	}
	return false
}
