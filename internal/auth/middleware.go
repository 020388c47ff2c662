package auth

import (
	"context"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/modular-api/internal/domain"
	apperrors "github.com/spec-kit/modular-api/pkg/util/errorutil"
)

const userKey = "auth_user"

// MsgNotAuthenticated is returned when no bearer credentials are presented.
const MsgNotAuthenticated = "Not authenticated"

// IdentityResolver turns a bearer token into the current user.
type IdentityResolver interface {
	Resolve(ctx context.Context, token string) (*domain.User, error)
}

// AuthMiddleware validates bearer tokens and loads the caller.
type AuthMiddleware struct {
	resolver IdentityResolver
}

// NewAuthMiddleware constructs middleware.
func NewAuthMiddleware(resolver IdentityResolver) *AuthMiddleware {
	return &AuthMiddleware{resolver: resolver}
}

// Handle enforces authentication for protected routes.
func (m *AuthMiddleware) Handle(c *fiber.Ctx) error {
	authHeader := c.Get(fiber.HeaderAuthorization)
	if authHeader == "" {
		return apperrors.NewUnauthorized(MsgNotAuthenticated)
	}

	// An empty credential after the scheme still reaches the resolver and
	// fails validation there.
	scheme, token, _ := strings.Cut(authHeader, " ")
	if !strings.EqualFold(scheme, "Bearer") {
		return apperrors.NewUnauthorized(MsgNotAuthenticated)
	}

	user, err := m.resolver.Resolve(c.UserContext(), strings.TrimSpace(token))
	if err != nil {
		return err
	}

	c.Locals(userKey, user)
	return c.Next()
}

// UserFromContext retrieves the authenticated user.
func UserFromContext(c *fiber.Ctx) (*domain.User, bool) {
	val := c.Locals(userKey)
	if val == nil {
		return nil, false
	}
	user, ok := val.(*domain.User)
	return user, ok
}
