package entity

// TicketHeader holds the pharmacy header shown at the top of a ticket.
type TicketHeader struct {
	PharmacyName string `json:"pharmacy_name"`
	Address      string `json:"address,omitempty"`
	Phone        string `json:"phone,omitempty"`
	VATNumber    string `json:"vat_number,omitempty"`
}

// TicketLine represents a single line item on a ticket.
type TicketLine struct {
	Name      string `json:"name"`
	Quantity  int    `json:"quantity"`
	UnitPrice string `json:"unit_price"`
	LineTotal string `json:"line_total"`
}

// Ticket is a value object: the display-oriented projection of a finalized
// Sale. It is NOT persisted; it is rebuilt from the Sale every time it is
// rendered, and rendering the same Sale always yields the same Ticket.
// All amounts are pre-formatted with two decimals and the "Fc" label.
type Ticket struct {
	Header        TicketHeader `json:"header"`
	Number        string       `json:"number"`
	Date          string       `json:"date"`
	Cashier       string       `json:"cashier"`
	Patient       string       `json:"patient,omitempty"`
	PaymentMethod string       `json:"payment_method"`
	Lines         []TicketLine `json:"lines"`
	Total         string       `json:"total"`
	Tendered      string       `json:"tendered"`
	ChangeDue     string       `json:"change_due"`
	Footer        string       `json:"footer"`
}
