package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/poopticket/citation-service/internal/domain"
	"github.com/poopticket/citation-service/internal/events"
	"github.com/poopticket/citation-service/internal/observability"
	"github.com/poopticket/citation-service/internal/repository"
	"github.com/poopticket/citation-service/internal/throttle"
	apperrors "github.com/poopticket/citation-service/pkg/util/errorutil"
)

// CitationService coordinates the public citation search and the admin
// issuing workflow.
type CitationService struct {
	citations  repository.CitationRepository
	properties repository.PropertyRepository
	lookup     *LookupService
	revenue    *RevenueService
	throttles  *throttle.Registry
	dispatcher events.Dispatcher
	metrics    *observability.Metrics
	logger     *zap.Logger
}

// CitationDependencies bundles requirements for the citation service.
type CitationDependencies struct {
	CitationRepo repository.CitationRepository
	PropertyRepo repository.PropertyRepository
	Lookup       *LookupService
	Revenue      *RevenueService
	Throttles    *throttle.Registry
	Dispatcher   events.Dispatcher
	Metrics      *observability.Metrics
}

// NewCitationService builds the service.
func NewCitationService(deps CitationDependencies, logger *zap.Logger) *CitationService {
	return &CitationService{
		citations:  deps.CitationRepo,
		properties: deps.PropertyRepo,
		lookup:     deps.Lookup,
		revenue:    deps.Revenue,
		throttles:  deps.Throttles,
		dispatcher: deps.Dispatcher,
		metrics:    deps.Metrics,
		logger:     logger,
	}
}

// SearchResult pairs a citation with its derived overdue figure.
type SearchResult struct {
	Citation    domain.Citation
	DaysOverdue int
}

// Search runs the throttled public lookup. Order matters: a blocked
// caller short-circuits before anything else, missing fields are
// rejected before an attempt is consumed, then the attempt counts
// against the sliding window and the lookup runs.
func (s *CitationService) Search(ctx context.Context, clientKey, citationID, lastName string) (*SearchResult, error) {
	gate := s.throttles.Get(clientKey)
	if gate.IsBlocked() {
		return nil, apperrors.NewRateLimited("too many search attempts, wait before trying again", nil)
	}

	citationID = strings.TrimSpace(citationID)
	lastName = strings.TrimSpace(lastName)
	if citationID == "" || lastName == "" {
		return nil, apperrors.NewValidationError("citation number and last name required", nil)
	}

	if gate.Attempt() == throttle.Blocked {
		s.metrics.RecordThrottleBlock("search")
		s.publishEvent(ctx, events.Event{
			Type:    events.EventSearchBlocked,
			Payload: events.ThrottleBlockedPayload{Key: clientKey},
		})
		s.logger.Warn("citation search blocked", zap.String("client", clientKey))
		return nil, apperrors.NewRateLimited("too many search attempts, wait before trying again", nil)
	}

	citation, err := s.lookup.FindCitation(ctx, citationID, lastName)
	if err != nil {
		return nil, err
	}
	return &SearchResult{
		Citation:    *citation,
		DaysOverdue: s.revenue.DaysOverdue(*citation, time.Now()),
	}, nil
}

// CitationCreateInput describes the admin issuing payload. ID is
// optional; a PW key is generated when absent.
type CitationCreateInput struct {
	ID             string
	FirstName      string
	LastName       string
	Date           time.Time
	Amount         float64
	Status         domain.CitationStatus
	Violation      string
	Location       string
	PetDescription string
	PropertyID     string
}

// Issue creates a citation on behalf of an admin or manager. Managers
// may only issue against their assigned properties. A Warning citation
// must carry no fine.
func (s *CitationService) Issue(ctx context.Context, issuer *domain.User, input CitationCreateInput) (*domain.Citation, error) {
	if issuer == nil {
		return nil, apperrors.NewUnauthorized("authenticated user required")
	}
	switch issuer.Role {
	case domain.RoleSuperAdmin:
	case domain.RoleManager:
		if !containsString(issuer.AssignedProperties, input.PropertyID) {
			return nil, apperrors.NewForbidden("property not assigned to manager")
		}
	case domain.RoleRegularUser:
		return nil, apperrors.NewForbidden("insufficient role")
	default:
		return nil, apperrors.NewForbidden("insufficient role")
	}

	if err := validateCitationInput(&input); err != nil {
		return nil, err
	}

	if _, err := s.properties.GetByID(ctx, input.PropertyID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NewNotFound("property", map[string]any{"property_id": input.PropertyID})
		}
		return nil, err
	}

	if input.ID == "" {
		input.ID = generateCitationKey()
	} else {
		existing, err := s.lookup.ListAllCitations(ctx)
		if err != nil {
			return nil, err
		}
		for _, other := range existing {
			if strings.EqualFold(other.ID, input.ID) {
				return nil, apperrors.NewConflict("citation id already exists", map[string]any{"citation_id": input.ID})
			}
		}
	}
	if input.Date.IsZero() {
		input.Date = time.Now()
	}

	citation := &domain.Citation{
		ID:             input.ID,
		FirstName:      input.FirstName,
		LastName:       input.LastName,
		Date:           input.Date,
		Amount:         input.Amount,
		Status:         input.Status,
		Violation:      input.Violation,
		Location:       input.Location,
		PetDescription: input.PetDescription,
		PropertyID:     input.PropertyID,
		CreatedAt:      time.Now(),
	}
	if err := s.citations.Create(ctx, citation); err != nil {
		return nil, err
	}

	s.publishEvent(ctx, events.Event{
		Type: events.EventCitationCreated,
		Payload: events.CitationCreatedPayload{
			CitationID: citation.ID,
			PropertyID: citation.PropertyID,
			Status:     citation.Status,
			Amount:     citation.Amount,
			IssuedBy:   issuer.ID,
		},
	})
	s.logger.Info("citation issued",
		zap.String("citation_id", citation.ID),
		zap.String("property_id", citation.PropertyID),
		zap.String("issued_by", issuer.ID))
	return citation, nil
}

// ListFilter narrows admin citation listings.
type ListFilter struct {
	Status     *domain.CitationStatus
	SearchTerm string
}

// ListForUser returns citations visible to the caller: super admins see
// everything, managers only their assigned properties.
func (s *CitationService) ListForUser(ctx context.Context, viewer *domain.User, filter ListFilter) ([]domain.Citation, error) {
	if viewer == nil {
		return nil, apperrors.NewUnauthorized("authenticated user required")
	}

	var citations []domain.Citation
	var err error
	switch viewer.Role {
	case domain.RoleSuperAdmin:
		citations, err = s.lookup.ListAllCitations(ctx)
	case domain.RoleManager:
		citations, err = s.lookup.ListCitationsForProperties(ctx, viewer.AssignedProperties)
	case domain.RoleRegularUser:
		return nil, apperrors.NewForbidden("insufficient role")
	default:
		return nil, apperrors.NewForbidden("insufficient role")
	}
	if err != nil {
		return nil, err
	}
	return applyListFilter(citations, filter), nil
}

func applyListFilter(citations []domain.Citation, filter ListFilter) []domain.Citation {
	term := strings.ToLower(strings.TrimSpace(filter.SearchTerm))
	if filter.Status == nil && term == "" {
		return citations
	}
	filtered := []domain.Citation{}
	for _, citation := range citations {
		if filter.Status != nil && citation.Status != *filter.Status {
			continue
		}
		if term != "" && !citationMatches(citation, term) {
			continue
		}
		filtered = append(filtered, citation)
	}
	return filtered
}

func citationMatches(citation domain.Citation, term string) bool {
	for _, field := range []string{
		citation.ID,
		citation.FirstName,
		citation.LastName,
		citation.Violation,
		citation.Location,
		citation.PetDescription,
	} {
		if strings.Contains(strings.ToLower(field), term) {
			return true
		}
	}
	return false
}

func validateCitationInput(input *CitationCreateInput) error {
	input.FirstName = strings.TrimSpace(input.FirstName)
	input.LastName = strings.TrimSpace(input.LastName)
	input.Violation = strings.TrimSpace(input.Violation)
	input.Location = strings.TrimSpace(input.Location)
	input.PetDescription = strings.TrimSpace(input.PetDescription)

	if input.FirstName == "" || input.LastName == "" || input.Violation == "" || input.Location == "" || input.PropertyID == "" {
		return apperrors.NewValidationError("first_name, last_name, violation, location, property_id required", nil)
	}
	if input.Status == "" {
		input.Status = domain.CitationStatusUnpaid
	}
	if !domain.ValidCitationStatus(input.Status) {
		return apperrors.NewValidationError("unknown citation status", map[string]any{"status": input.Status})
	}
	if input.Amount < 0 {
		return apperrors.NewValidationError("amount must not be negative", nil)
	}
	if input.Status == domain.CitationStatusWarning && input.Amount != 0 {
		return apperrors.NewValidationError("warning citations carry no fine", nil)
	}
	return nil
}

func generateCitationKey() string {
	return "PW-" + strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
}

func containsString(values []string, wanted string) bool {
	for _, value := range values {
		if value == wanted {
			return true
		}
	}
	return false
}

func (s *CitationService) publishEvent(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	_ = s.dispatcher.Publish(ctx, event)
}
