package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/poopticket/citation-service/internal/auth"
	"github.com/poopticket/citation-service/internal/domain"
	"github.com/poopticket/citation-service/internal/events"
	"github.com/poopticket/citation-service/internal/repository"
	apperrors "github.com/poopticket/citation-service/pkg/util/errorutil"
)

// DirectoryService manages users and properties for the admin
// dashboard and builds the revenue overviews shown there.
type DirectoryService struct {
	users      repository.UserRepository
	properties repository.PropertyRepository
	lookup     *LookupService
	revenue    *RevenueService
	dispatcher events.Dispatcher
	logger     *zap.Logger
	bcryptCost int
}

// DirectoryDependencies bundles requirements for the directory service.
type DirectoryDependencies struct {
	UserRepo     repository.UserRepository
	PropertyRepo repository.PropertyRepository
	Lookup       *LookupService
	Revenue      *RevenueService
	Dispatcher   events.Dispatcher
}

// NewDirectoryService builds the service.
func NewDirectoryService(deps DirectoryDependencies, bcryptCost int, logger *zap.Logger) *DirectoryService {
	return &DirectoryService{
		users:      deps.UserRepo,
		properties: deps.PropertyRepo,
		lookup:     deps.Lookup,
		revenue:    deps.Revenue,
		dispatcher: deps.Dispatcher,
		logger:     logger,
		bcryptCost: bcryptCost,
	}
}

// ListUsers returns all accounts with RevenueGenerated derived for
// managers from their assigned properties' paid citations.
func (s *DirectoryService) ListUsers(ctx context.Context) ([]domain.User, error) {
	users, err := s.lookup.ListAllUsers(ctx)
	if err != nil {
		return nil, err
	}
	citations, err := s.lookup.ListAllCitations(ctx)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	for i := range users {
		users[i].RevenueGenerated = s.revenue.RevenueGeneratedFor(users[i], citations, now)
	}
	return users, nil
}

// UserCreateInput describes a new account.
type UserCreateInput struct {
	Email              string
	Password           string
	Role               domain.Role
	FirstName          string
	LastName           string
	AssignedProperties []string
}

// CreateUser registers a new account with a unique email.
func (s *DirectoryService) CreateUser(ctx context.Context, input UserCreateInput) (*domain.User, error) {
	input.Email = strings.TrimSpace(input.Email)
	if input.Email == "" || input.Password == "" || input.FirstName == "" || input.LastName == "" {
		return nil, apperrors.NewValidationError("email, password, first_name, last_name required", nil)
	}
	if !domain.ValidRole(input.Role) {
		return nil, apperrors.NewValidationError("unknown role", map[string]any{"role": input.Role})
	}
	if input.Role != domain.RoleManager && len(input.AssignedProperties) > 0 {
		return nil, apperrors.NewValidationError("only managers carry property assignments", nil)
	}

	if _, err := s.users.GetByEmail(ctx, input.Email); err == nil {
		return nil, apperrors.NewConflict("email already registered", nil)
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	if err := s.validateProperties(ctx, input.AssignedProperties); err != nil {
		return nil, err
	}

	hash, err := auth.HashPassword(input.Password, s.bcryptCost)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		ID:                 uuid.NewString(),
		Email:              input.Email,
		PasswordHash:       hash,
		Role:               input.Role,
		FirstName:          input.FirstName,
		LastName:           input.LastName,
		AssignedProperties: input.AssignedProperties,
		CreatedAt:          time.Now(),
		UpdatedAt:          time.Now(),
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}
	s.logger.Info("user created", zap.String("user_id", user.ID), zap.String("role", string(user.Role)))
	return user, nil
}

// AssignProperties replaces a manager's property assignments. Only
// manager accounts carry assignments.
func (s *DirectoryService) AssignProperties(ctx context.Context, userID string, propertyIDs []string) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NewNotFound("user", map[string]any{"user_id": userID})
		}
		return nil, err
	}

	switch user.Role {
	case domain.RoleManager:
	case domain.RoleSuperAdmin, domain.RoleRegularUser:
		return nil, apperrors.NewValidationError("only managers carry property assignments", map[string]any{"role": user.Role})
	default:
		return nil, apperrors.NewValidationError("only managers carry property assignments", map[string]any{"role": user.Role})
	}

	if err := s.validateProperties(ctx, propertyIDs); err != nil {
		return nil, err
	}
	if err := s.users.UpdateAssignedProperties(ctx, userID, propertyIDs); err != nil {
		return nil, err
	}
	user.AssignedProperties = propertyIDs
	s.logger.Info("property assignments updated",
		zap.String("user_id", userID),
		zap.Int("properties", len(propertyIDs)))
	return user, nil
}

// CreateProperty registers a new managed property.
func (s *DirectoryService) CreateProperty(ctx context.Context, name, createdBy string) (*domain.Property, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperrors.NewValidationError("name required", nil)
	}
	property := &domain.Property{
		ID:        "prop-" + strings.ToLower(strings.ReplaceAll(uuid.NewString(), "-", "")[:8]),
		Name:      name,
		CreatedAt: time.Now(),
	}
	if err := s.properties.Create(ctx, property); err != nil {
		return nil, err
	}
	if s.dispatcher != nil {
		_ = s.dispatcher.Publish(ctx, events.Event{
			ID:        uuid.NewString(),
			Type:      events.EventPropertyCreated,
			Timestamp: time.Now(),
			Payload: events.PropertyCreatedPayload{
				PropertyID: property.ID,
				Name:       property.Name,
				CreatedBy:  createdBy,
			},
		})
	}
	s.logger.Info("property created", zap.String("property_id", property.ID))
	return property, nil
}

// PropertySummaries computes the five revenue figures for every
// property.
func (s *DirectoryService) PropertySummaries(ctx context.Context) ([]PropertySummary, error) {
	properties, err := s.lookup.ListAllProperties(ctx)
	if err != nil {
		return nil, err
	}
	citations, err := s.lookup.ListAllCitations(ctx)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	summaries := make([]PropertySummary, 0, len(properties))
	for _, property := range properties {
		summaries = append(summaries, s.revenue.SummarizeProperty(property, citations, now))
	}
	return summaries, nil
}

// Overview carries the dashboard headline figures.
type Overview struct {
	TotalRevenue  float64
	CitationCount int
	PropertyCount int
}

// BuildOverview computes the dashboard totals.
func (s *DirectoryService) BuildOverview(ctx context.Context) (*Overview, error) {
	citations, err := s.lookup.ListAllCitations(ctx)
	if err != nil {
		return nil, err
	}
	properties, err := s.lookup.ListAllProperties(ctx)
	if err != nil {
		return nil, err
	}
	return &Overview{
		TotalRevenue:  s.revenue.TotalRevenue(citations),
		CitationCount: len(citations),
		PropertyCount: len(properties),
	}, nil
}

// RequestPasswordReset is a stub: delivery is out of scope, the request
// is only logged.
func (s *DirectoryService) RequestPasswordReset(ctx context.Context, userID string) error {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperrors.NewNotFound("user", map[string]any{"user_id": userID})
		}
		return err
	}
	s.logger.Info("password reset requested", zap.String("user_id", user.ID), zap.String("email", user.Email))
	return nil
}

func (s *DirectoryService) validateProperties(ctx context.Context, propertyIDs []string) error {
	for _, propertyID := range propertyIDs {
		if _, err := s.properties.GetByID(ctx, propertyID); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return apperrors.NewNotFound("property", map[string]any{"property_id": propertyID})
			}
			return err
		}
	}
	return nil
}
