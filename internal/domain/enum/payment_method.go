package enum

import "database/sql/driver"

// PaymentMethod is the payment mode selected at checkout.
// The recognized set mirrors the pharmacy's accepted modes.
type PaymentMethod string

const (
	PaymentCash       PaymentMethod = "cash"
	PaymentCard       PaymentMethod = "card"
	PaymentCheque     PaymentMethod = "cheque"
	PaymentTransfer   PaymentMethod = "transfer"
	PaymentThirdParty PaymentMethod = "third_party"
)

// PaymentMethods lists every recognized payment method.
func PaymentMethods() []PaymentMethod {
	return []PaymentMethod{
		PaymentCash,
		PaymentCard,
		PaymentCheque,
		PaymentTransfer,
		PaymentThirdParty,
	}
}

// IsValid reports whether m is a recognized, non-empty payment method.
func (m PaymentMethod) IsValid() bool {
	for _, known := range PaymentMethods() {
		if m == known {
			return true
		}
	}
	return false
}

func (m PaymentMethod) String() string {
	return string(m)
}

// Label returns the human-readable name printed on receipts.
func (m PaymentMethod) Label() string {
	switch m {
	case PaymentCash:
		return "Especes"
	case PaymentCard:
		return "Carte bancaire"
	case PaymentCheque:
		return "Cheque"
	case PaymentTransfer:
		return "Virement"
	case PaymentThirdParty:
		return "Tiers payant"
	default:
		return string(m)
	}
}

func (m PaymentMethod) Value() (driver.Value, error) {
	return string(m), nil
}

func (m *PaymentMethod) Scan(value interface{}) error {
	switch v := value.(type) {
	case string:
		*m = PaymentMethod(v)
	case []byte:
		*m = PaymentMethod(v)
	}
	return nil
}
