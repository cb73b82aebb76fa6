package service

import (
	"testing"

	"github.com/pharmaweb/pharmapos-api/internal/domain/enum"
	"github.com/pharmaweb/pharmapos-api/pkg/apperror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidatePayment(t *testing.T) {
	t.Run("exact payment has no change", func(t *testing.T) {
		payment, err := ValidatePayment("cash", "20.00", 2000)
		require.NoError(t, err)
		assert.Equal(t, enum.PaymentCash, payment.Method)
		assert.Equal(t, int64(2000), payment.Tendered)
		assert.Equal(t, int64(0), payment.ChangeDue)
	})

	t.Run("overpayment yields change", func(t *testing.T) {
		// Two items at 10.00 each, cashier receives 25.00
		payment, err := ValidatePayment("cash", "25.00", 2000)
		require.NoError(t, err)
		assert.Equal(t, int64(2500), payment.Tendered)
		assert.Equal(t, int64(500), payment.ChangeDue)
	})

	t.Run("missing payment method", func(t *testing.T) {
		_, err := ValidatePayment("", "25.00", 2000)
		assert.ErrorIs(t, err, apperror.ErrMissingPaymentMethod)
	})

	t.Run("unknown payment method", func(t *testing.T) {
		_, err := ValidatePayment("bitcoin", "25.00", 2000)
		assert.ErrorIs(t, err, apperror.ErrMissingPaymentMethod)
	})

	t.Run("unparseable amount", func(t *testing.T) {
		for _, raw := range []string{"abc", "", "12.3.4", "  "} {
			_, err := ValidatePayment("cash", raw, 2000)
			assert.ErrorIs(t, err, apperror.ErrInvalidAmount, "amount %q", raw)
		}
	})

	t.Run("negative amount", func(t *testing.T) {
		_, err := ValidatePayment("cash", "-5.00", 2000)
		assert.ErrorIs(t, err, apperror.ErrInvalidAmount)
	})

	t.Run("non-finite amount", func(t *testing.T) {
		// ParseFloat accepts these, the validator must not
		for _, raw := range []string{"inf", "+inf", "-inf", "Infinity", "nan", "NaN"} {
			_, err := ValidatePayment("cash", raw, 2000)
			assert.ErrorIs(t, err, apperror.ErrInvalidAmount, "amount %q", raw)
		}
	})

	t.Run("amount too large to convert", func(t *testing.T) {
		// Anything past the int64 centime ceiling would overflow the conversion
		for _, raw := range []string{"92233720368547758.08", "1e30"} {
			_, err := ValidatePayment("cash", raw, 2000)
			assert.ErrorIs(t, err, apperror.ErrInvalidAmount, "amount %q", raw)
		}
	})

	t.Run("insufficient payment", func(t *testing.T) {
		_, err := ValidatePayment("cash", "19.99", 2000)
		assert.ErrorIs(t, err, apperror.ErrInsufficientPayment)
	})

	t.Run("comma accepted as decimal separator", func(t *testing.T) {
		payment, err := ValidatePayment("card", "25,50", 2000)
		require.NoError(t, err)
		assert.Equal(t, int64(2550), payment.Tendered)
	})

	t.Run("every recognized method is accepted", func(t *testing.T) {
		for _, method := range enum.PaymentMethods() {
			payment, err := ValidatePayment(method.String(), "20.00", 2000)
			require.NoError(t, err, "method %s", method)
			assert.Equal(t, method, payment.Method)
		}
	})

	t.Run("validation is repeatable", func(t *testing.T) {
		// Pure function: same inputs, same outcome, no state to consume
		first, err := ValidatePayment("cash", "25.00", 2000)
		require.NoError(t, err)
		second, err := ValidatePayment("cash", "25.00", 2000)
		require.NoError(t, err)
		assert.Equal(t, first, second)
	})

	t.Run("zero total accepts zero tender", func(t *testing.T) {
		payment, err := ValidatePayment("cash", "0", 0)
		require.NoError(t, err)
		assert.Equal(t, int64(0), payment.ChangeDue)
	})
}
