package service

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/poopticket/citation-service/internal/domain"
	"github.com/poopticket/citation-service/internal/repository"
	apperrors "github.com/poopticket/citation-service/pkg/util/errorutil"
)

// LookupService answers the read queries against citations, users and
// properties. Results hold regardless of the backing store.
type LookupService struct {
	citations  repository.CitationRepository
	users      repository.UserRepository
	properties repository.PropertyRepository
	logger     *zap.Logger
}

// LookupDependencies bundles repo requirements for the lookup service.
type LookupDependencies struct {
	CitationRepo repository.CitationRepository
	UserRepo     repository.UserRepository
	PropertyRepo repository.PropertyRepository
}

// NewLookupService builds the service.
func NewLookupService(deps LookupDependencies, logger *zap.Logger) *LookupService {
	return &LookupService{
		citations:  deps.CitationRepo,
		users:      deps.UserRepo,
		properties: deps.PropertyRepo,
		logger:     logger,
	}
}

// FindCitation matches a citation by number and last name, both
// case-insensitive exact matches. Citation ids are unique, so more than
// one match is a data-integrity anomaly; the first match is returned
// either way.
func (s *LookupService) FindCitation(ctx context.Context, id, lastName string) (*domain.Citation, error) {
	matches, err := s.citations.FindByNumberAndLastName(ctx, id, lastName)
	if err != nil {
		return nil, err
	}
	if len(matches) == 0 {
		return nil, apperrors.NewNotFound("citation", map[string]any{"citation_id": id})
	}
	if len(matches) > 1 {
		s.logger.Warn("duplicate citation id in store",
			zap.String("citation_id", id),
			zap.Int("matches", len(matches)))
	}
	citation := matches[0]
	return &citation, nil
}

// ListAllCitations returns every citation in store order.
func (s *LookupService) ListAllCitations(ctx context.Context) ([]domain.Citation, error) {
	return s.citations.ListAll(ctx)
}

// ListCitationsForProperties returns citations issued against any of
// the given properties. An empty set yields an empty result.
func (s *LookupService) ListCitationsForProperties(ctx context.Context, propertyIDs []string) ([]domain.Citation, error) {
	if len(propertyIDs) == 0 {
		return []domain.Citation{}, nil
	}
	return s.citations.ListByProperties(ctx, propertyIDs)
}

// FindUserByEmail matches a user by email, case-insensitive.
func (s *LookupService) FindUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, apperrors.NewNotFound("user", nil)
	}
	if err != nil {
		return nil, err
	}
	return user, nil
}

// ListAllProperties returns every managed property in store order.
func (s *LookupService) ListAllProperties(ctx context.Context) ([]domain.Property, error) {
	return s.properties.ListAll(ctx)
}

// ListAllUsers returns every account in store order.
func (s *LookupService) ListAllUsers(ctx context.Context) ([]domain.User, error) {
	return s.users.ListAll(ctx)
}
