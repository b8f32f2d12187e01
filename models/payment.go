package models

import "strings"

// PaymentMethod is the instrument chosen at checkout
type PaymentMethod string

const (
	PaymentMethodCard       PaymentMethod = "card"
	PaymentMethodUPI        PaymentMethod = "upi"
	PaymentMethodNetBanking PaymentMethod = "netbanking"
)

// ParsePaymentMethod normalizes s and checks it is a supported method
func ParsePaymentMethod(s string) (PaymentMethod, error) {
	method := PaymentMethod(strings.ToLower(strings.TrimSpace(s)))
	switch method {
	case PaymentMethodCard, PaymentMethodUPI, PaymentMethodNetBanking:
		return method, nil
	}
	return "", ValidationError("unsupported payment method %q", s)
}

// PaymentResult is the outcome of a successful authorization
type PaymentResult struct {
	OrderID   string        `json:"orderId"`
	PaymentID string        `json:"paymentId"`
	Method    PaymentMethod `json:"method"`
	Amount    int64         `json:"amount"`
}
