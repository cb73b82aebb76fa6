package service

import (
	"fmt"

	"github.com/pharmaweb/pharmapos-api/internal/domain/entity"
	"github.com/pharmaweb/pharmapos-api/pkg/apperror"
)

// currencyLabel is the fixed currency suffix on every printed amount
const currencyLabel = "Fc"

// ticketDateLayout is the timestamp format printed on tickets
const ticketDateLayout = "02/01/2006 15:04"

// FormatAmount renders centimes as a printable amount: "25.00 Fc"
func FormatAmount(centimes int64) string {
	return fmt.Sprintf("%.2f %s", float64(centimes)/100, currencyLabel)
}

// BuildTicket projects a finalized sale into its printable ticket. It is a
// pure projection: no persistence, no clock, no randomness. Rendering the
// same sale twice yields the same ticket, which is what makes reprints
// trustworthy. A sale without a ticket number or without lines is malformed
// and is rejected here rather than rendered half-empty.
func BuildTicket(sale *entity.Sale, pharmacy *entity.Pharmacy) (*entity.Ticket, error) {
	if sale == nil || sale.TicketNo == "" || len(sale.Lines) == 0 {
		return nil, apperror.ErrInvalidSale
	}

	header := entity.TicketHeader{}
	footer := ""
	if pharmacy != nil {
		header.PharmacyName = pharmacy.Name
		header.Address = joinAddress(pharmacy)
		header.Phone = pharmacy.Phone
		if pharmacy.VATNumber != nil {
			header.VATNumber = *pharmacy.VATNumber
		}
		footer = pharmacy.Greeting
	}

	lines := make([]entity.TicketLine, len(sale.Lines))
	for i, line := range sale.Lines {
		lines[i] = entity.TicketLine{
			Name:      line.Name,
			Quantity:  line.Quantity,
			UnitPrice: FormatAmount(line.UnitPrice),
			LineTotal: FormatAmount(line.LineTotal),
		}
	}

	patient := ""
	if sale.Patient != nil {
		patient = sale.Patient.FullName()
	}

	return &entity.Ticket{
		Header:        header,
		Number:        sale.TicketNo,
		Date:          sale.SaleDate.Format(ticketDateLayout),
		Cashier:       sale.CashierName,
		Patient:       patient,
		PaymentMethod: sale.PaymentMethod.Label(),
		Lines:         lines,
		Total:         FormatAmount(sale.Total),
		Tendered:      FormatAmount(sale.TenderedAmount),
		ChangeDue:     FormatAmount(sale.ChangeDue),
		Footer:        footer,
	}, nil
}

func joinAddress(pharmacy *entity.Pharmacy) string {
	address := pharmacy.Street
	if pharmacy.City != "" {
		if address != "" {
			address += ", "
		}
		address += pharmacy.City
	}
	if pharmacy.PostalCode != "" {
		if address != "" {
			address += " "
		}
		address += pharmacy.PostalCode
	}
	return address
}
