package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentMethod is how a sale was paid.
type PaymentMethod string

const (
	PaymentCash     PaymentMethod = "Cash"
	PaymentCard     PaymentMethod = "Card"
	PaymentTransfer PaymentMethod = "Transfer"
)

// PaymentMethods lists every accepted method in display order.
var PaymentMethods = []PaymentMethod{PaymentCash, PaymentCard, PaymentTransfer}

// IsValidPaymentMethod checks if the provided string is an accepted payment method.
func IsValidPaymentMethod(method string) bool {
	switch PaymentMethod(method) {
	case PaymentCash, PaymentCard, PaymentTransfer:
		return true
	default:
		return false
	}
}

// Sale is an immutable record of a paid order.
type Sale struct {
	ID            string          `json:"id"`
	Order         Order           `json:"order"`
	Total         decimal.Decimal `json:"total"`
	Timestamp     time.Time       `json:"timestamp"`
	PaymentMethod PaymentMethod   `json:"payment_method"`
}

// Clone returns a deep copy so the embedded order can never be mutated through a returned value.
func (s Sale) Clone() Sale {
	out := s
	out.Order = s.Order.Clone()
	return out
}
