package events

import (
	"time"

	"github.com/poopticket/citation-service/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventCitationCreated EventType = "citation_created"
	EventPropertyCreated EventType = "property_created"
	EventLoginBlocked    EventType = "login_blocked"
	EventSearchBlocked   EventType = "citation_search_blocked"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// CitationCreatedPayload payload.
type CitationCreatedPayload struct {
	CitationID string                `json:"citation_id"`
	PropertyID string                `json:"property_id"`
	Status     domain.CitationStatus `json:"status"`
	Amount     float64               `json:"amount"`
	IssuedBy   string                `json:"issued_by"`
}

// PropertyCreatedPayload payload.
type PropertyCreatedPayload struct {
	PropertyID string `json:"property_id"`
	Name       string `json:"name"`
	CreatedBy  string `json:"created_by"`
}

// ThrottleBlockedPayload payload for login_blocked and
// citation_search_blocked.
type ThrottleBlockedPayload struct {
	Key      string `json:"key"`
	Attempts int    `json:"attempts"`
}
