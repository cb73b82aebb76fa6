package service

import (
	"math"
	"strconv"
	"strings"

	"github.com/pharmaweb/pharmapos-api/internal/domain/enum"
	"github.com/pharmaweb/pharmapos-api/pkg/apperror"
)

// maxTenderedAmount caps parsed amounts so the centime conversion below can
// never overflow int64. ParseFloat happily returns "inf" and "nan", and a
// float-to-int conversion of those is not defined, so both are rejected
// before converting.
const maxTenderedAmount = math.MaxInt64 / 100

// ValidatedPayment is the outcome of a successful payment validation.
// Amounts are in centimes.
type ValidatedPayment struct {
	Method    enum.PaymentMethod
	Tendered  int64
	ChangeDue int64
}

// ValidatePayment checks a payment intent against the sale total. It is a
// pure function: it reads nothing but its arguments and changes no state, so
// callers may invoke it any number of times before committing.
//
// The tendered amount arrives as the raw string the cashier typed; parsing
// is part of validation, not the transport layer's job.
func ValidatePayment(method string, tenderedRaw string, totalCentimes int64) (*ValidatedPayment, error) {
	paymentMethod := enum.PaymentMethod(strings.TrimSpace(method))
	if !paymentMethod.IsValid() {
		return nil, apperror.ErrMissingPaymentMethod
	}

	tendered, err := parseAmount(tenderedRaw)
	if err != nil {
		return nil, apperror.ErrInvalidAmount
	}

	if tendered < totalCentimes {
		return nil, apperror.ErrInsufficientPayment
	}

	return &ValidatedPayment{
		Method:    paymentMethod,
		Tendered:  tendered,
		ChangeDue: tendered - totalCentimes,
	}, nil
}

// parseAmount converts a decimal amount string to centimes. Comma is
// accepted as the decimal separator since that is what the cashiers type.
func parseAmount(raw string) (int64, error) {
	cleaned := strings.ReplaceAll(strings.TrimSpace(raw), ",", ".")
	if cleaned == "" {
		return 0, strconv.ErrSyntax
	}

	value, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0, err
	}
	if math.IsInf(value, 0) || math.IsNaN(value) {
		return 0, strconv.ErrSyntax
	}
	if value < 0 || value > maxTenderedAmount {
		return 0, strconv.ErrRange
	}

	return int64(value*100 + 0.5), nil
}
