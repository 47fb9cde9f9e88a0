package service

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/poopticket/citation-service/internal/auth"
	"github.com/poopticket/citation-service/internal/config"
	"github.com/poopticket/citation-service/internal/domain"
	"github.com/poopticket/citation-service/internal/events"
	"github.com/poopticket/citation-service/internal/observability"
	"github.com/poopticket/citation-service/internal/repository"
	"github.com/poopticket/citation-service/internal/session"
	"github.com/poopticket/citation-service/internal/throttle"
	apperrors "github.com/poopticket/citation-service/pkg/util/errorutil"
)

// AuthService coordinates the login flow. Login is gated per caller by
// a consecutive-failure throttle: a success resets the counter, the
// tenth unbroken failure locks the caller out for the block duration.
type AuthService struct {
	users      repository.UserRepository
	sessions   session.Store
	tokenMgr   *auth.TokenManager
	throttles  *throttle.Registry
	dispatcher events.Dispatcher
	metrics    *observability.Metrics
	logger     *zap.Logger
	sessionTTL time.Duration
}

// AuthDependencies encapsulates requirements for the auth service.
type AuthDependencies struct {
	UserRepo   repository.UserRepository
	Sessions   session.Store
	Throttles  *throttle.Registry
	Dispatcher events.Dispatcher
	Metrics    *observability.Metrics
}

// NewAuthService builds the service.
func NewAuthService(cfg config.Config, deps AuthDependencies, logger *zap.Logger) *AuthService {
	return &AuthService{
		users:      deps.UserRepo,
		sessions:   deps.Sessions,
		tokenMgr:   auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTLMinutes),
		throttles:  deps.Throttles,
		dispatcher: deps.Dispatcher,
		metrics:    deps.Metrics,
		logger:     logger,
		sessionTTL: cfg.Auth.SessionTTL(),
	}
}

// LoginResult is returned on successful authentication.
type LoginResult struct {
	User      *domain.User
	Token     string
	ExpiresAt time.Time
	Session   *session.Session
}

// Login authenticates a user. While the caller is blocked the guarded
// action short-circuits before any validation or lookup work, with a
// result distinct from invalid credentials.
func (s *AuthService) Login(ctx context.Context, clientKey, email, password string) (*LoginResult, error) {
	gate := s.throttles.Get(clientKey)
	if gate.IsBlocked() {
		return nil, apperrors.NewRateLimited("too many failed login attempts, try again later", nil)
	}

	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return nil, apperrors.NewValidationError("email and password required", nil)
	}

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, s.recordFailure(ctx, gate, clientKey)
		}
		return nil, err
	}
	if err := auth.ComparePassword(user.PasswordHash, password); err != nil {
		return nil, s.recordFailure(ctx, gate, clientKey)
	}

	gate.RecordSuccess()

	sess, err := s.sessions.Create(ctx, user.ID, user.Role, s.sessionTTL)
	if err != nil {
		return nil, err
	}
	token, exp, err := s.tokenMgr.GenerateToken(user.ID, user.Role, sess.ID)
	if err != nil {
		return nil, err
	}

	s.logger.Info("login succeeded", zap.String("user_id", user.ID), zap.String("role", string(user.Role)))
	return &LoginResult{User: user, Token: token, ExpiresAt: exp, Session: sess}, nil
}

// Logout discards the server-side session.
func (s *AuthService) Logout(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return nil
	}
	return s.sessions.Delete(ctx, sessionID)
}

// TokenManager exposes the underlying token manager for middleware usage.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokenMgr
}

// recordFailure counts a failed attempt and returns either the
// invalid-credentials error with the remaining attempt count or, once
// the limit latches, the distinct rate-limited error.
func (s *AuthService) recordFailure(ctx context.Context, gate *throttle.Throttle, clientKey string) error {
	if gate.RecordFailure() == throttle.Blocked {
		s.metrics.RecordThrottleBlock("login")
		s.publishBlocked(ctx, events.EventLoginBlocked, clientKey)
		s.logger.Warn("login blocked", zap.String("client", clientKey))
		return apperrors.NewRateLimited("too many failed login attempts, try again later", nil)
	}
	return apperrors.NewDomainError("UNAUTHORIZED", "invalid email or password", http.StatusUnauthorized, map[string]any{
		"attempts_remaining": gate.Remaining(),
	})
}

func (s *AuthService) publishBlocked(ctx context.Context, eventType events.EventType, key string) {
	if s.dispatcher == nil {
		return
	}
	_ = s.dispatcher.Publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		Timestamp: time.Now(),
		Payload:   events.ThrottleBlockedPayload{Key: key},
	})
}
