package service

import (
	"context"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/poopticket/citation-service/internal/domain"
	"github.com/poopticket/citation-service/internal/repository"
	apperrors "github.com/poopticket/citation-service/pkg/util/errorutil"
)

func newLookupFixture(t *testing.T) *LookupService {
	t.Helper()
	citations := []domain.Citation{
		{ID: "PW12345", FirstName: "John", LastName: "Smith", Status: domain.CitationStatusOverdue, Amount: 75.50, PropertyID: "prop-1", Date: time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC)},
		{ID: "PW67890", FirstName: "Jane", LastName: "Doe", Status: domain.CitationStatusUnpaid, Amount: 50, PropertyID: "prop-2", Date: time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)},
		{ID: "PW24680", FirstName: "Robert", LastName: "Johnson", Status: domain.CitationStatusPaid, Amount: 120, PropertyID: "prop-1", Date: time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)},
	}
	users := []domain.User{
		{ID: "user-1", Email: "admin@poopticket.com", Role: domain.RoleSuperAdmin},
	}
	properties := []domain.Property{
		{ID: "prop-1", Name: "Willow Creek Commons"},
		{ID: "prop-2", Name: "Maple Grove Apartments"},
	}
	return NewLookupService(LookupDependencies{
		CitationRepo: repository.NewMemoryCitationRepository(citations),
		UserRepo:     repository.NewMemoryUserRepository(users),
		PropertyRepo: repository.NewMemoryPropertyRepository(properties),
	}, zap.NewNop())
}

func TestFindCitation(t *testing.T) {
	svc := newLookupFixture(t)
	ctx := context.Background()

	tests := []struct {
		name     string
		id       string
		lastName string
		wantID   string
		wantErr  bool
	}{
		{"exact match", "PW12345", "Smith", "PW12345", false},
		{"lowercase id and name", "pw12345", "smith", "PW12345", false},
		{"mixed case", "Pw67890", "dOe", "PW67890", false},
		{"wrong last name", "PW12345", "Doe", "", true},
		{"unknown id", "PW00000", "Smith", "", true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			citation, err := svc.FindCitation(ctx, tc.id, tc.lastName)
			if tc.wantErr {
				if !apperrors.IsCode(err, "NOT_FOUND") {
					t.Fatalf("got err %v, want NOT_FOUND", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if citation.ID != tc.wantID {
				t.Fatalf("got citation %s, want %s", citation.ID, tc.wantID)
			}
		})
	}
}

func TestListCitationsForProperties(t *testing.T) {
	svc := newLookupFixture(t)
	ctx := context.Background()

	got, err := svc.ListCitationsForProperties(ctx, []string{"prop-1"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("prop-1: got %d citations, want 2", len(got))
	}
	for _, citation := range got {
		if citation.PropertyID != "prop-1" {
			t.Fatalf("citation %s belongs to %s", citation.ID, citation.PropertyID)
		}
	}

	empty, err := svc.ListCitationsForProperties(ctx, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(empty) != 0 {
		t.Fatalf("empty property set: got %d citations, want 0", len(empty))
	}
}

func TestFindUserByEmail(t *testing.T) {
	svc := newLookupFixture(t)
	ctx := context.Background()

	user, err := svc.FindUserByEmail(ctx, "ADMIN@POOPTICKET.COM")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if user.ID != "user-1" {
		t.Fatalf("got user %s, want user-1", user.ID)
	}

	_, err = svc.FindUserByEmail(ctx, "nobody@poopticket.com")
	if !apperrors.IsCode(err, "NOT_FOUND") {
		t.Fatalf("got err %v, want NOT_FOUND", err)
	}
}
