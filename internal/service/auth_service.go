package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spec-kit/modular-api/internal/auth"
	"github.com/spec-kit/modular-api/internal/domain"
	"github.com/spec-kit/modular-api/internal/events"
	"github.com/spec-kit/modular-api/internal/repository"
	apperrors "github.com/spec-kit/modular-api/pkg/util/errorutil"
)

// Client-facing messages. They never reveal which check failed.
const (
	MsgEmailRegistered    = "Email already registered"
	MsgBadCredentials     = "Incorrect username or password"
	MsgInvalidCredentials = "Could not validate credentials"
	MsgInactiveUser       = "Inactive user"
)

// fallbackDecoyDigest is a cost-12 bcrypt digest of no known password.
const fallbackDecoyDigest = "$2a$12$lnL04PfVXTCbUSU2CcywreL7/lANDLgKXhb33ODJSbi/RVJfqWoIO"

// TokenCodec issues and verifies access tokens.
type TokenCodec interface {
	IssueDefault(subject string) (string, time.Time, error)
	Verify(token string) (*auth.Claims, error)
}

// AuthService coordinates registration, login and identity resolution.
type AuthService struct {
	store  repository.Store
	hasher auth.PasswordHasher
	tokens TokenCodec
	events events.Dispatcher
	logger *zap.Logger
	now    func() time.Time

	decoyMu     sync.Mutex
	decoyDigest string
}

// AuthDependencies encapsulates collaborators for the auth service.
type AuthDependencies struct {
	Store      repository.Store
	Hasher     auth.PasswordHasher
	Tokens     TokenCodec
	Dispatcher events.Dispatcher
	Logger     *zap.Logger
}

// NewAuthService builds the service.
func NewAuthService(deps AuthDependencies) *AuthService {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuthService{
		store:  deps.Store,
		hasher: deps.Hasher,
		tokens: deps.Tokens,
		events: deps.Dispatcher,
		logger: logger,
		now:    time.Now,
	}
}

// Register creates a new active, non-superuser account.
func (s *AuthService) Register(ctx context.Context, email, password string) (*domain.User, error) {
	scope, err := s.store.Acquire(ctx)
	if err != nil {
		return nil, fmt.Errorf("acquire store: %w", err)
	}
	defer scope.Release()

	users := scope.Users()
	if _, err := users.FindByEmail(ctx, email); err == nil {
		return nil, apperrors.NewConflict(MsgEmailRegistered)
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	// The pre-check above is advisory; the unique constraint decides races.
	user, err := users.Insert(ctx, email, hash)
	if err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return nil, apperrors.NewConflict(MsgEmailRegistered)
		}
		return nil, err
	}

	s.publish(ctx, events.EventUserRegistered, user.Email, user.ID)
	return user, nil
}

// Login checks credentials and issues an access token keyed on the email.
// Unknown emails and wrong passwords produce the same error.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, time.Time, error) {
	scope, err := s.store.Acquire(ctx)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("acquire store: %w", err)
	}
	defer scope.Release()

	user, err := scope.Users().FindByEmail(ctx, email)
	switch {
	case errors.Is(err, repository.ErrNotFound):
		// Spend the same hashing work as a real check.
		s.hasher.Verify(password, s.decoy())
		s.logger.Debug("login rejected", zap.String("reason", "unknown email"))
		s.publish(ctx, events.EventLoginFailed, email, "")
		return "", time.Time{}, apperrors.NewUnauthorized(MsgBadCredentials)
	case err != nil:
		return "", time.Time{}, err
	}

	if !s.hasher.Verify(password, user.PasswordHash) {
		s.logger.Debug("login rejected", zap.String("reason", "password mismatch"), zap.String("user_id", user.ID))
		s.publish(ctx, events.EventLoginFailed, email, user.ID)
		return "", time.Time{}, apperrors.NewUnauthorized(MsgBadCredentials)
	}

	token, exp, err := s.tokens.IssueDefault(user.Email)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("issue token: %w", err)
	}

	s.publish(ctx, events.EventLoginSucceeded, user.Email, user.ID)
	return token, exp, nil
}

// Resolve verifies a bearer token and re-fetches its user on every call, so
// deactivation takes effect before the token expires.
func (s *AuthService) Resolve(ctx context.Context, token string) (*domain.User, error) {
	claims, err := s.tokens.Verify(token)
	if err != nil {
		s.logger.Debug("token rejected", zap.Error(err))
		return nil, apperrors.NewUnauthorized(MsgInvalidCredentials)
	}

	scope, err := s.store.Acquire(ctx)
	if err != nil {
		return nil, fmt.Errorf("acquire store: %w", err)
	}
	defer scope.Release()

	user, err := scope.Users().FindByEmail(ctx, claims.Subject)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			s.logger.Debug("token subject not found")
			return nil, apperrors.NewUnauthorized(MsgInvalidCredentials)
		}
		return nil, err
	}

	if !user.IsActive {
		return nil, apperrors.NewForbidden(MsgInactiveUser)
	}
	return user, nil
}

// SetActive toggles the active flag of the account registered under email.
func (s *AuthService) SetActive(ctx context.Context, email string, active bool) error {
	scope, err := s.store.Acquire(ctx)
	if err != nil {
		return fmt.Errorf("acquire store: %w", err)
	}
	defer scope.Release()

	users := scope.Users()
	user, err := users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperrors.NewNotFound("User")
		}
		return err
	}
	return users.SetActive(ctx, user.ID, active)
}

// decoy returns a digest to verify unknown emails against. A failed hash is
// retried on the next call; until then the fixed digest keeps the cost.
func (s *AuthService) decoy() string {
	s.decoyMu.Lock()
	defer s.decoyMu.Unlock()

	if s.decoyDigest != "" {
		return s.decoyDigest
	}
	digest, err := s.hasher.Hash(uuid.NewString())
	if err != nil {
		s.logger.Warn("decoy digest unavailable", zap.Error(err))
		return fallbackDecoyDigest
	}
	s.decoyDigest = digest
	return digest
}

func (s *AuthService) publish(ctx context.Context, eventType events.EventType, email, userID string) {
	if s.events == nil {
		return
	}
	event := events.Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		Email:     email,
		UserID:    userID,
		Timestamp: s.now().UTC(),
	}
	if err := s.events.Publish(ctx, event); err != nil {
		s.logger.Warn("publish auth event", zap.String("type", string(eventType)), zap.Error(err))
	}
}
