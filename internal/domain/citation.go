package domain

import "time"

// CitationStatus enumerates lifecycle states for citations.
type CitationStatus string

const (
	CitationStatusPaid    CitationStatus = "PAID"
	CitationStatusUnpaid  CitationStatus = "UNPAID"
	CitationStatusOverdue CitationStatus = "OVERDUE"
	CitationStatusWarning CitationStatus = "WARNING"
)

// ValidCitationStatus reports whether s is a known status value.
func ValidCitationStatus(s CitationStatus) bool {
	switch s {
	case CitationStatusPaid, CitationStatusUnpaid, CitationStatusOverdue, CitationStatusWarning:
		return true
	}
	return false
}

// Citation is the aggregate for issued pet-waste citations.
// A Warning citation carries no fine: Amount is always 0.
type Citation struct {
	ID             string
	FirstName      string
	LastName       string
	Date           time.Time
	Amount         float64
	Status         CitationStatus
	Violation      string
	Location       string
	PetDescription string
	PropertyID     string
	CreatedAt      time.Time
}
