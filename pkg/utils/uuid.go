package utils

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// NewUUID generates a new UUID
func NewUUID() uuid.UUID {
	return uuid.New()
}

// ParseUUID parses a string into a UUID
func ParseUUID(s string) (uuid.UUID, error) {
	return uuid.Parse(s)
}

// FormatTicketNo renders a sale counter value as a printable ticket number
func FormatTicketNo(seq int64) string {
	return fmt.Sprintf("TKT-%06d", seq)
}

// GenerateReferenceNo generates a unique reference number (proformas)
func GenerateReferenceNo(prefix string) string {
	return prefix + "-" + strings.ToUpper(uuid.New().String()[:8])
}
