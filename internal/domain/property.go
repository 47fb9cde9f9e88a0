package domain

import "time"

// Property is a managed site (park, common area) that citations are
// issued against and that managers are assigned to.
type Property struct {
	ID        string
	Name      string
	CreatedAt time.Time
}
