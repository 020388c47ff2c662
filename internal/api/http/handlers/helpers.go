package handlers

import (
	"errors"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/modular-api/internal/auth"
	"github.com/spec-kit/modular-api/internal/domain"
	apperrors "github.com/spec-kit/modular-api/pkg/util/errorutil"
)

type validatable interface {
	Validate() error
}

// parseAndValidate decodes the request body into req and runs its rules.
func parseAndValidate(c *fiber.Ctx, req validatable) error {
	if err := c.BodyParser(req); err != nil {
		return apperrors.NewValidationError("Invalid request body", nil)
	}
	return validate(req)
}

func validate(req validatable) error {
	err := req.Validate()
	if err == nil {
		return nil
	}

	var errs validation.Errors
	if !errors.As(err, &errs) {
		return apperrors.NewValidationError(err.Error(), nil)
	}
	details := make(map[string]any, len(errs))
	for field, fieldErr := range errs {
		details[field] = fieldErr.Error()
	}
	return apperrors.NewValidationError("Validation error", details)
}

// currentUser returns the user placed in the context by the auth middleware.
func currentUser(c *fiber.Ctx) (*domain.User, error) {
	user, ok := auth.UserFromContext(c)
	if !ok {
		return nil, apperrors.NewUnauthorized(auth.MsgNotAuthenticated)
	}
	return user, nil
}
