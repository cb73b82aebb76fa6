package service

import (
	"context"
	"log"

	"github.com/google/uuid"
	"github.com/pharmaweb/pharmapos-api/internal/domain/entity"
	"github.com/pharmaweb/pharmapos-api/internal/domain/repository"
	"github.com/pharmaweb/pharmapos-api/pkg/apperror"
	"github.com/pharmaweb/pharmapos-api/pkg/printer"
)

// PrinterService renders tickets to ESC/POS and drives the thermal printer.
// When no printer is configured the ticket is still returned to the caller
// so the front end can display it.
type PrinterService struct {
	printer      printer.Printer
	saleRepo     repository.SaleRepository
	pharmacyRepo repository.PharmacyRepository
	printerType  string
	width        int
}

// NewPrinterService creates a new printer service
func NewPrinterService(
	p printer.Printer,
	saleRepo repository.SaleRepository,
	pharmacyRepo repository.PharmacyRepository,
	printerType string,
	width int,
) *PrinterService {
	if width <= 0 {
		width = 32
	}
	return &PrinterService{
		printer:      p,
		saleRepo:     saleRepo,
		pharmacyRepo: pharmacyRepo,
		printerType:  printerType,
		width:        width,
	}
}

// PrinterStatus returns the current printer status information
type PrinterStatus struct {
	Configured bool   `json:"configured"`
	Connected  bool   `json:"connected"`
	Type       string `json:"type"`
}

// GetStatus returns printer connection status
func (s *PrinterService) GetStatus() *PrinterStatus {
	return &PrinterStatus{
		Configured: s.printerType != "none" && s.printerType != "",
		Connected:  s.printer.IsConnected(),
		Type:       s.printerType,
	}
}

// PrintSaleTicket fetches a sale and prints its ticket. Reprinting is safe:
// the ticket is rebuilt from the immutable sale, so every print of the same
// sale is identical.
func (s *PrinterService) PrintSaleTicket(ctx context.Context, saleID uuid.UUID) (*entity.Ticket, error) {
	sale, err := s.saleRepo.GetWithLines(ctx, saleID)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, apperror.NewNotFoundError("Sale")
	}

	pharmacy, err := s.pharmacyRepo.Get(ctx)
	if err != nil {
		return nil, err
	}

	ticket, err := BuildTicket(sale, pharmacy)
	if err != nil {
		return nil, err
	}

	data := s.FormatTicket(ticket)
	if err := s.printer.Print(data); err != nil {
		log.Printf("Printer error (sale %s): %v", saleID, err)
		return ticket, apperror.NewAppError(500, "Failed to print ticket")
	}

	return ticket, nil
}

// FormatTicket converts a Ticket into ESC/POS bytes
func (s *PrinterService) FormatTicket(t *entity.Ticket) []byte {
	doc := printer.NewDocument(s.width)

	// Header
	doc.SetAlign(printer.AlignCenter).
		SetBold(true).
		SetFontSize(printer.FontDouble).
		Text(t.Header.PharmacyName).
		SetFontSize(printer.FontNormal).
		SetBold(false)

	if t.Header.Address != "" {
		doc.Text(t.Header.Address)
	}
	if t.Header.Phone != "" {
		doc.Text(t.Header.Phone)
	}
	if t.Header.VATNumber != "" {
		doc.TextF("TVA: %s", t.Header.VATNumber)
	}

	doc.SetAlign(printer.AlignLeft).
		Separator('-')

	// Ticket info
	doc.KeyValue("Ticket:", t.Number).
		KeyValue("Date:", t.Date).
		KeyValue("Caissier:", t.Cashier)

	if t.Patient != "" {
		doc.KeyValue("Patient:", t.Patient)
	}
	doc.KeyValue("Paiement:", t.PaymentMethod)

	doc.Separator('-')

	// Items
	for _, line := range t.Lines {
		doc.ItemLine(line.Quantity, line.Name, line.LineTotal)
		if line.Quantity > 1 {
			doc.TextF("  @ %s", line.UnitPrice)
		}
	}

	doc.Separator('-')

	// Totals
	doc.SetBold(true).
		KeyValue("TOTAL:", t.Total).
		SetBold(false).
		KeyValue("Recu:", t.Tendered).
		KeyValue("Rendu:", t.ChangeDue)

	doc.Separator('-')

	// Footer
	if t.Footer != "" {
		doc.SetAlign(printer.AlignCenter).
			FeedLines(1).
			Text(t.Footer).
			SetAlign(printer.AlignLeft)
	}

	doc.FeedLines(3).
		Cut()

	return doc.Bytes()
}
