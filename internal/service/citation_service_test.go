package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/poopticket/citation-service/internal/domain"
	"github.com/poopticket/citation-service/internal/events"
	"github.com/poopticket/citation-service/internal/observability"
	"github.com/poopticket/citation-service/internal/repository"
	"github.com/poopticket/citation-service/internal/throttle"
	apperrors "github.com/poopticket/citation-service/pkg/util/errorutil"
)

func newCitationFixture(t *testing.T, searchLimit int) (*CitationService, *throttle.Registry) {
	t.Helper()
	citations := []domain.Citation{
		{ID: "PW12345", FirstName: "John", LastName: "Smith", Status: domain.CitationStatusOverdue, Amount: 75.50, PropertyID: "prop-1", Date: time.Now().Add(-45 * 24 * time.Hour)},
		{ID: "PW67890", FirstName: "Jane", LastName: "Doe", Status: domain.CitationStatusUnpaid, Amount: 50, PropertyID: "prop-2", Date: time.Now().Add(-10 * 24 * time.Hour)},
	}
	properties := []domain.Property{
		{ID: "prop-1", Name: "Willow Creek Commons"},
		{ID: "prop-2", Name: "Maple Grove Apartments"},
	}
	citationRepo := repository.NewMemoryCitationRepository(citations)
	propertyRepo := repository.NewMemoryPropertyRepository(properties)
	lookup := NewLookupService(LookupDependencies{
		CitationRepo: citationRepo,
		UserRepo:     repository.NewMemoryUserRepository(nil),
		PropertyRepo: propertyRepo,
	}, zap.NewNop())

	registry := throttle.NewRegistry(throttle.Config{
		Mode:        throttle.ModeSlidingWindow,
		MaxAttempts: searchLimit,
		Window:      time.Minute,
		BlockFor:    time.Hour,
	})
	t.Cleanup(registry.StopAll)

	svc := NewCitationService(CitationDependencies{
		CitationRepo: citationRepo,
		PropertyRepo: propertyRepo,
		Lookup:       lookup,
		Revenue:      NewRevenueService(),
		Throttles:    registry,
		Dispatcher:   events.NewInMemoryDispatcher(),
		Metrics:      observability.NewMetrics(),
	}, zap.NewNop())
	return svc, registry
}

func TestSearchReturnsCitationWithOverdueDays(t *testing.T) {
	svc, _ := newCitationFixture(t, 5)

	result, err := svc.Search(context.Background(), "10.0.0.1", "pw12345", "SMITH")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Citation.ID != "PW12345" {
		t.Fatalf("got citation %s, want PW12345", result.Citation.ID)
	}
	if result.DaysOverdue != 15 {
		t.Fatalf("got %d overdue days, want 15", result.DaysOverdue)
	}
}

func TestSearchNotFoundStillConsumesAttempt(t *testing.T) {
	svc, registry := newCitationFixture(t, 3)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := svc.Search(ctx, "10.0.0.1", "PW00000", "Nobody")
		if !apperrors.IsCode(err, "NOT_FOUND") {
			t.Fatalf("search %d: got err %v, want NOT_FOUND", i+1, err)
		}
	}

	// Limit reached: the next search is blocked before any lookup runs.
	_, err := svc.Search(ctx, "10.0.0.1", "PW12345", "Smith")
	if !apperrors.IsCode(err, "RATE_LIMITED") {
		t.Fatalf("got err %v, want RATE_LIMITED", err)
	}
	if !registry.Get("10.0.0.1").IsBlocked() {
		t.Fatal("expected client to be blocked")
	}
}

func TestSearchValidationDoesNotConsumeAttempt(t *testing.T) {
	svc, registry := newCitationFixture(t, 2)
	ctx := context.Background()

	for i := 0; i < 10; i++ {
		_, err := svc.Search(ctx, "10.0.0.1", "", "Smith")
		if !apperrors.IsCode(err, "VALIDATION_FAILED") {
			t.Fatalf("got err %v, want VALIDATION_FAILED", err)
		}
	}
	if got := registry.Get("10.0.0.1").Remaining(); got != 2 {
		t.Fatalf("remaining after invalid searches: got %d, want 2", got)
	}

	result, err := svc.Search(ctx, "10.0.0.1", "PW12345", "Smith")
	if err != nil {
		t.Fatalf("valid search after invalid ones: %v", err)
	}
	if result.Citation.ID != "PW12345" {
		t.Fatalf("got citation %s, want PW12345", result.Citation.ID)
	}
}

func TestSearchBlockedShortCircuitsValidation(t *testing.T) {
	svc, registry := newCitationFixture(t, 1)
	ctx := context.Background()

	svc.Search(ctx, "10.0.0.1", "PW12345", "Smith") //nolint:errcheck
	_, err := svc.Search(ctx, "10.0.0.1", "PW12345", "Smith")
	if !apperrors.IsCode(err, "RATE_LIMITED") {
		t.Fatalf("got err %v, want RATE_LIMITED", err)
	}
	if !registry.Get("10.0.0.1").IsBlocked() {
		t.Fatal("expected client to be blocked")
	}

	// Even an invalid request reports the block, not a validation error.
	_, err = svc.Search(ctx, "10.0.0.1", "", "")
	if !apperrors.IsCode(err, "RATE_LIMITED") {
		t.Fatalf("blocked invalid search: got err %v, want RATE_LIMITED", err)
	}
}

func TestSearchThrottleIsPerClient(t *testing.T) {
	svc, _ := newCitationFixture(t, 1)
	ctx := context.Background()

	svc.Search(ctx, "10.0.0.1", "PW12345", "Smith") //nolint:errcheck
	if _, err := svc.Search(ctx, "10.0.0.1", "PW12345", "Smith"); !apperrors.IsCode(err, "RATE_LIMITED") {
		t.Fatalf("first client: got err %v, want RATE_LIMITED", err)
	}

	if _, err := svc.Search(ctx, "10.0.0.2", "PW12345", "Smith"); err != nil {
		t.Fatalf("second client should be unaffected: %v", err)
	}
}

func TestIssueRoleScoping(t *testing.T) {
	admin := &domain.User{ID: "user-1", Role: domain.RoleSuperAdmin}
	manager := &domain.User{ID: "user-2", Role: domain.RoleManager, AssignedProperties: []string{"prop-1"}}
	resident := &domain.User{ID: "user-4", Role: domain.RoleRegularUser}

	input := CitationCreateInput{
		FirstName:  "Alice",
		LastName:   "Walker",
		Violation:  "Failure to clean up pet waste",
		Location:   "Building C lawn",
		Amount:     75,
		PropertyID: "prop-2",
	}

	tests := []struct {
		name     string
		issuer   *domain.User
		wantCode string
	}{
		{"super admin issues anywhere", admin, ""},
		{"manager off assigned property", manager, "FORBIDDEN"},
		{"regular user", resident, "FORBIDDEN"},
		{"nil issuer", nil, "UNAUTHORIZED"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			svc, _ := newCitationFixture(t, 5)
			citation, err := svc.Issue(context.Background(), tc.issuer, input)
			if tc.wantCode != "" {
				if !apperrors.IsCode(err, tc.wantCode) {
					t.Fatalf("got err %v, want %s", err, tc.wantCode)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !strings.HasPrefix(citation.ID, "PW-") {
				t.Fatalf("generated key %q missing PW- prefix", citation.ID)
			}
		})
	}

	// Managers may issue against their own property.
	svc, _ := newCitationFixture(t, 5)
	onAssigned := input
	onAssigned.PropertyID = "prop-1"
	if _, err := svc.Issue(context.Background(), manager, onAssigned); err != nil {
		t.Fatalf("manager on assigned property: %v", err)
	}
}

func TestIssueValidation(t *testing.T) {
	admin := &domain.User{ID: "user-1", Role: domain.RoleSuperAdmin}

	valid := CitationCreateInput{
		FirstName:  "Alice",
		LastName:   "Walker",
		Violation:  "Failure to clean up pet waste",
		Location:   "Building C lawn",
		Amount:     75,
		PropertyID: "prop-1",
	}

	tests := []struct {
		name     string
		mutate   func(*CitationCreateInput)
		wantCode string
	}{
		{"missing violation", func(in *CitationCreateInput) { in.Violation = " " }, "VALIDATION_FAILED"},
		{"negative amount", func(in *CitationCreateInput) { in.Amount = -5 }, "VALIDATION_FAILED"},
		{"warning with a fine", func(in *CitationCreateInput) { in.Status = domain.CitationStatusWarning }, "VALIDATION_FAILED"},
		{"unknown status", func(in *CitationCreateInput) { in.Status = "VOID" }, "VALIDATION_FAILED"},
		{"unknown property", func(in *CitationCreateInput) { in.PropertyID = "prop-9" }, "NOT_FOUND"},
		{"duplicate id case-insensitive", func(in *CitationCreateInput) { in.ID = "pw12345" }, "CONFLICT"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			svc, _ := newCitationFixture(t, 5)
			input := valid
			tc.mutate(&input)
			_, err := svc.Issue(context.Background(), admin, input)
			if !apperrors.IsCode(err, tc.wantCode) {
				t.Fatalf("got err %v, want %s", err, tc.wantCode)
			}
		})
	}

	// A warning with no fine is fine.
	svc, _ := newCitationFixture(t, 5)
	warning := valid
	warning.Status = domain.CitationStatusWarning
	warning.Amount = 0
	citation, err := svc.Issue(context.Background(), admin, warning)
	if err != nil {
		t.Fatalf("zero-amount warning: %v", err)
	}
	if citation.Status != domain.CitationStatusWarning {
		t.Fatalf("got status %s, want %s", citation.Status, domain.CitationStatusWarning)
	}
}

func TestListForUser(t *testing.T) {
	ctx := context.Background()
	admin := &domain.User{ID: "user-1", Role: domain.RoleSuperAdmin}
	manager := &domain.User{ID: "user-2", Role: domain.RoleManager, AssignedProperties: []string{"prop-1"}}
	resident := &domain.User{ID: "user-4", Role: domain.RoleRegularUser}

	svc, _ := newCitationFixture(t, 5)

	all, err := svc.ListForUser(ctx, admin, ListFilter{})
	if err != nil {
		t.Fatalf("admin list: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("admin sees %d citations, want 2", len(all))
	}

	scoped, err := svc.ListForUser(ctx, manager, ListFilter{})
	if err != nil {
		t.Fatalf("manager list: %v", err)
	}
	if len(scoped) != 1 || scoped[0].PropertyID != "prop-1" {
		t.Fatalf("manager list scoped wrong: %+v", scoped)
	}

	if _, err := svc.ListForUser(ctx, resident, ListFilter{}); !apperrors.IsCode(err, "FORBIDDEN") {
		t.Fatalf("resident list: got err %v, want FORBIDDEN", err)
	}

	unpaid := domain.CitationStatusUnpaid
	filtered, err := svc.ListForUser(ctx, admin, ListFilter{Status: &unpaid})
	if err != nil {
		t.Fatalf("filtered list: %v", err)
	}
	if len(filtered) != 1 || filtered[0].ID != "PW67890" {
		t.Fatalf("status filter wrong: %+v", filtered)
	}

	byName, err := svc.ListForUser(ctx, admin, ListFilter{SearchTerm: "doe"})
	if err != nil {
		t.Fatalf("term list: %v", err)
	}
	if len(byName) != 1 || byName[0].ID != "PW67890" {
		t.Fatalf("search term filter wrong: %+v", byName)
	}
}
