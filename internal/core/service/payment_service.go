package service

import (
	"context"

	"github.com/shopspring/decimal"

	"toolfacturer-backend/internal/port"
)

var hundred = decimal.NewFromInt(100)

type PaymentService struct {
	processor port.PaymentProcessor
	currency  string
}

func NewPaymentService(processor port.PaymentProcessor, currency string) *PaymentService {
	return &PaymentService{processor: processor, currency: currency}
}

// MinorUnits converts a price in major units to the processor's integer
// minor units, rounding half away from zero.
func MinorUnits(price decimal.Decimal) int64 {
	return price.Mul(hundred).Round(0).IntPart()
}

// CreateIntent opens a payment intent for price and returns its client
// secret.
func (s *PaymentService) CreateIntent(ctx context.Context, price decimal.Decimal) (string, error) {
	amount := MinorUnits(price)
	if amount <= 0 {
		return "", ErrInvalidAmount
	}
	return s.processor.CreateIntent(ctx, amount, s.currency)
}
