package persistence

import (
	"time"

	"github.com/poopticket/citation-service/internal/auth"
	"github.com/poopticket/citation-service/internal/domain"
)

// SeedData holds the fixture records loaded into the in-memory store at
// process start. All entities are created once here; the citation set
// is read-only afterwards except for admin-issued additions.
type SeedData struct {
	Citations  []domain.Citation
	Users      []domain.User
	Properties []domain.Property
}

// Seed builds the demo fixtures. Dates are relative to startup so the
// overdue and revenue-window behavior stays visible. Demo passwords are
// hashed here; hashing four accounts at boot is acceptable.
func Seed(bcryptCost int) (*SeedData, error) {
	now := time.Now()
	daysAgo := func(days int) time.Time { return now.AddDate(0, 0, -days) }

	properties := []domain.Property{
		{ID: "prop-1", Name: "Willow Creek Commons", CreatedAt: now},
		{ID: "prop-2", Name: "Maple Grove Apartments", CreatedAt: now},
		{ID: "prop-3", Name: "Cedar Park Estates", CreatedAt: now},
	}

	citations := []domain.Citation{
		{
			ID:             "PW12345",
			FirstName:      "John",
			LastName:       "Smith",
			Date:           daysAgo(45),
			Amount:         75.50,
			Status:         domain.CitationStatusOverdue,
			Violation:      "Failure to remove pet waste",
			Location:       "Dog run, north entrance",
			PetDescription: "Golden Retriever, brown",
			PropertyID:     "prop-1",
			CreatedAt:      now,
		},
		{
			ID:             "PW67890",
			FirstName:      "Jane",
			LastName:       "Doe",
			Date:           daysAgo(10),
			Amount:         50.00,
			Status:         domain.CitationStatusUnpaid,
			Violation:      "Pet waste left on walking trail",
			Location:       "East walking trail, mile marker 2",
			PetDescription: "Beagle, tricolor",
			PropertyID:     "prop-2",
			CreatedAt:      now,
		},
		{
			ID:             "PW24680",
			FirstName:      "Robert",
			LastName:       "Johnson",
			Date:           daysAgo(90),
			Amount:         120.00,
			Status:         domain.CitationStatusPaid,
			Violation:      "Repeat offense: pet waste in playground area",
			Location:       "Playground, south lawn",
			PetDescription: "German Shepherd, black and tan",
			PropertyID:     "prop-1",
			CreatedAt:      now,
		},
		{
			ID:             "PW13579",
			FirstName:      "Emily",
			LastName:       "Williams",
			Date:           daysAgo(5),
			Amount:         0,
			Status:         domain.CitationStatusWarning,
			Violation:      "First offense: pet waste near clubhouse",
			Location:       "Clubhouse entrance",
			PetDescription: "Poodle, white",
			PropertyID:     "prop-3",
			CreatedAt:      now,
		},
		{
			ID:             "PW98765",
			FirstName:      "Michael",
			LastName:       "Brown",
			Date:           daysAgo(62),
			Amount:         250.00,
			Status:         domain.CitationStatusOverdue,
			Violation:      "Repeated failure to remove pet waste",
			Location:       "Courtyard, building C",
			PetDescription: "Husky, gray",
			PropertyID:     "prop-2",
			CreatedAt:      now,
		},
		{
			ID:             "PW54321",
			FirstName:      "Sarah",
			LastName:       "Jones",
			Date:           daysAgo(200),
			Amount:         65.00,
			Status:         domain.CitationStatusPaid,
			Violation:      "Pet waste in common garden",
			Location:       "Community garden",
			PetDescription: "Dachshund, brown",
			PropertyID:     "prop-3",
			CreatedAt:      now,
		},
		{
			ID:             "PW11223",
			FirstName:      "Ana",
			LastName:       "Martinez",
			Date:           daysAgo(12),
			Amount:         40.00,
			Status:         domain.CitationStatusPaid,
			Violation:      "Failure to remove pet waste",
			Location:       "Pool deck perimeter",
			PetDescription: "Corgi, tan",
			PropertyID:     "prop-2",
			CreatedAt:      now,
		},
	}

	type account struct {
		id, email, password, first, last string
		role                             domain.Role
		properties                       []string
	}
	accounts := []account{
		{"user-1", "admin@poopticket.com", "password123", "Alex", "Rivera", domain.RoleSuperAdmin, nil},
		{"user-2", "maria.garcia@poopticket.com", "manager123", "Maria", "Garcia", domain.RoleManager, []string{"prop-1", "prop-2"}},
		{"user-3", "david.lee@poopticket.com", "manager123", "David", "Lee", domain.RoleManager, []string{"prop-3"}},
		{"user-4", "resident@poopticket.com", "resident123", "Chris", "Nguyen", domain.RoleRegularUser, nil},
	}

	users := make([]domain.User, 0, len(accounts))
	for _, acct := range accounts {
		hash, err := auth.HashPassword(acct.password, bcryptCost)
		if err != nil {
			return nil, err
		}
		users = append(users, domain.User{
			ID:                 acct.id,
			Email:              acct.email,
			PasswordHash:       hash,
			Role:               acct.role,
			FirstName:          acct.first,
			LastName:           acct.last,
			AssignedProperties: acct.properties,
			CreatedAt:          now,
			UpdatedAt:          now,
		})
	}

	return &SeedData{Citations: citations, Users: users, Properties: properties}, nil
}
