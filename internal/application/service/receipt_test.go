package service

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/pharmaweb/pharmapos-api/internal/domain/entity"
	"github.com/pharmaweb/pharmapos-api/internal/domain/enum"
	"github.com/pharmaweb/pharmapos-api/pkg/apperror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSale() *entity.Sale {
	return &entity.Sale{
		ID:          uuid.MustParse("9f2c1e4a-0000-0000-0000-000000000001"),
		TicketNo:    "TKT-000042",
		SaleDate:    time.Date(2026, 3, 14, 10, 30, 0, 0, time.UTC),
		CashierName: "Marie Kabongo",
		Lines: []entity.SaleLine{
			{Name: "Paracetamol 500mg", Quantity: 2, UnitPrice: 1000, LineTotal: 2000},
			{Name: "Sirop toux 125ml", Quantity: 1, UnitPrice: 3550, LineTotal: 3550},
		},
		Total:          5550,
		TenderedAmount: 6000,
		ChangeDue:      450,
		PaymentMethod:  enum.PaymentCash,
	}
}

func testPharmacy() *entity.Pharmacy {
	vat := "CD123456"
	return &entity.Pharmacy{
		Name:      "Pharmacie du Centre",
		Street:    "12 Avenue Kasavubu",
		City:      "Kinshasa",
		Phone:     "+243 81 000 0000",
		VATNumber: &vat,
		Greeting:  "Merci de votre visite !",
	}
}

func TestFormatAmount(t *testing.T) {
	assert.Equal(t, "0.00 Fc", FormatAmount(0))
	assert.Equal(t, "25.00 Fc", FormatAmount(2500))
	assert.Equal(t, "5.00 Fc", FormatAmount(500))
	assert.Equal(t, "35.50 Fc", FormatAmount(3550))
	assert.Equal(t, "0.05 Fc", FormatAmount(5))
	assert.Equal(t, "1234.56 Fc", FormatAmount(123456))
}

func TestBuildTicket(t *testing.T) {
	t.Run("projects every sale field", func(t *testing.T) {
		ticket, err := BuildTicket(testSale(), testPharmacy())
		require.NoError(t, err)

		assert.Equal(t, "Pharmacie du Centre", ticket.Header.PharmacyName)
		assert.Equal(t, "12 Avenue Kasavubu, Kinshasa", ticket.Header.Address)
		assert.Equal(t, "CD123456", ticket.Header.VATNumber)
		assert.Equal(t, "TKT-000042", ticket.Number)
		assert.Equal(t, "14/03/2026 10:30", ticket.Date)
		assert.Equal(t, "Marie Kabongo", ticket.Cashier)
		assert.Equal(t, "Especes", ticket.PaymentMethod)

		require.Len(t, ticket.Lines, 2)
		assert.Equal(t, "Paracetamol 500mg", ticket.Lines[0].Name)
		assert.Equal(t, 2, ticket.Lines[0].Quantity)
		assert.Equal(t, "10.00 Fc", ticket.Lines[0].UnitPrice)
		assert.Equal(t, "20.00 Fc", ticket.Lines[0].LineTotal)

		assert.Equal(t, "55.50 Fc", ticket.Total)
		assert.Equal(t, "60.00 Fc", ticket.Tendered)
		assert.Equal(t, "4.50 Fc", ticket.ChangeDue)
		assert.Equal(t, "Merci de votre visite !", ticket.Footer)
	})

	t.Run("line order follows the sale", func(t *testing.T) {
		ticket, err := BuildTicket(testSale(), testPharmacy())
		require.NoError(t, err)
		assert.Equal(t, "Paracetamol 500mg", ticket.Lines[0].Name)
		assert.Equal(t, "Sirop toux 125ml", ticket.Lines[1].Name)
	})

	t.Run("same sale always yields the same ticket", func(t *testing.T) {
		sale := testSale()
		pharmacy := testPharmacy()
		first, err := BuildTicket(sale, pharmacy)
		require.NoError(t, err)
		second, err := BuildTicket(sale, pharmacy)
		require.NoError(t, err)
		assert.Equal(t, first, second)
	})

	t.Run("nil pharmacy yields an empty header", func(t *testing.T) {
		ticket, err := BuildTicket(testSale(), nil)
		require.NoError(t, err)
		assert.Empty(t, ticket.Header.PharmacyName)
		assert.Empty(t, ticket.Footer)
		assert.Equal(t, "TKT-000042", ticket.Number)
	})

	t.Run("patient name appears when linked", func(t *testing.T) {
		sale := testSale()
		sale.Patient = &entity.Patient{FirstName: "Jean", LastName: "Mbuyi"}
		ticket, err := BuildTicket(sale, testPharmacy())
		require.NoError(t, err)
		assert.Equal(t, "Jean Mbuyi", ticket.Patient)
	})

	t.Run("nil sale is rejected", func(t *testing.T) {
		_, err := BuildTicket(nil, testPharmacy())
		assert.ErrorIs(t, err, apperror.ErrInvalidSale)
	})

	t.Run("sale without ticket number is rejected", func(t *testing.T) {
		sale := testSale()
		sale.TicketNo = ""
		_, err := BuildTicket(sale, testPharmacy())
		assert.ErrorIs(t, err, apperror.ErrInvalidSale)
	})

	t.Run("sale without lines is rejected", func(t *testing.T) {
		sale := testSale()
		sale.Lines = nil
		_, err := BuildTicket(sale, testPharmacy())
		assert.ErrorIs(t, err, apperror.ErrInvalidSale)
	})
}
