package repository

import (
	"context"
	"strings"
	"sync"

	"github.com/poopticket/citation-service/internal/domain"
)

// Memory-backed repositories hold seeded fixture data and serve reads
// in insertion order. Used when no Postgres DSN is configured.

type memoryCitationRepository struct {
	mu        sync.RWMutex
	citations []domain.Citation
}

// NewMemoryCitationRepository seeds an in-memory citation store.
func NewMemoryCitationRepository(seed []domain.Citation) CitationRepository {
	return &memoryCitationRepository{citations: append([]domain.Citation{}, seed...)}
}

func (r *memoryCitationRepository) Create(_ context.Context, citation *domain.Citation) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.citations = append(r.citations, *citation)
	return nil
}

func (r *memoryCitationRepository) ListAll(_ context.Context) ([]domain.Citation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]domain.Citation{}, r.citations...), nil
}

func (r *memoryCitationRepository) ListByProperties(_ context.Context, propertyIDs []string) ([]domain.Citation, error) {
	wanted := make(map[string]struct{}, len(propertyIDs))
	for _, id := range propertyIDs {
		wanted[id] = struct{}{}
	}

	r.mu.RLock()
	defer r.mu.RUnlock()
	matched := []domain.Citation{}
	for _, citation := range r.citations {
		if _, ok := wanted[citation.PropertyID]; ok {
			matched = append(matched, citation)
		}
	}
	return matched, nil
}

func (r *memoryCitationRepository) FindByNumberAndLastName(_ context.Context, id, lastName string) ([]domain.Citation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	matched := []domain.Citation{}
	for _, citation := range r.citations {
		if strings.EqualFold(citation.ID, id) && strings.EqualFold(citation.LastName, lastName) {
			matched = append(matched, citation)
		}
	}
	return matched, nil
}

type memoryUserRepository struct {
	mu    sync.RWMutex
	users []domain.User
}

// NewMemoryUserRepository seeds an in-memory user store.
func NewMemoryUserRepository(seed []domain.User) UserRepository {
	return &memoryUserRepository{users: append([]domain.User{}, seed...)}
}

func (r *memoryUserRepository) Create(_ context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.users = append(r.users, *user)
	return nil
}

func (r *memoryUserRepository) GetByID(_ context.Context, id string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for i := range r.users {
		if r.users[i].ID == id {
			user := r.users[i]
			return &user, nil
		}
	}
	return nil, ErrNotFound
}

func (r *memoryUserRepository) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for i := range r.users {
		if strings.EqualFold(r.users[i].Email, email) {
			user := r.users[i]
			return &user, nil
		}
	}
	return nil, ErrNotFound
}

func (r *memoryUserRepository) ListAll(_ context.Context) ([]domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]domain.User{}, r.users...), nil
}

func (r *memoryUserRepository) UpdateAssignedProperties(_ context.Context, userID string, propertyIDs []string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.users {
		if r.users[i].ID == userID {
			r.users[i].AssignedProperties = append([]string{}, propertyIDs...)
			return nil
		}
	}
	return ErrNotFound
}

type memoryPropertyRepository struct {
	mu         sync.RWMutex
	properties []domain.Property
}

// NewMemoryPropertyRepository seeds an in-memory property store.
func NewMemoryPropertyRepository(seed []domain.Property) PropertyRepository {
	return &memoryPropertyRepository{properties: append([]domain.Property{}, seed...)}
}

func (r *memoryPropertyRepository) Create(_ context.Context, property *domain.Property) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.properties = append(r.properties, *property)
	return nil
}

func (r *memoryPropertyRepository) GetByID(_ context.Context, id string) (*domain.Property, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for i := range r.properties {
		if r.properties[i].ID == id {
			property := r.properties[i]
			return &property, nil
		}
	}
	return nil, ErrNotFound
}

func (r *memoryPropertyRepository) ListAll(_ context.Context) ([]domain.Property, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]domain.Property{}, r.properties...), nil
}
