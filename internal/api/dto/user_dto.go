package dto

import (
	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"

	"github.com/spec-kit/modular-api/internal/domain"
)

// bcrypt only reads the first 72 bytes of a password.
const maxPasswordLength = 72

// UserRegisterRequest payload for new users.
type UserRegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Validate checks the registration payload.
func (r UserRegisterRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Email, validation.Required, validation.Length(3, 320), is.Email),
		validation.Field(&r.Password, validation.Required, validation.Length(1, maxPasswordLength)),
	)
}

// TokenRequest is the form-encoded password grant; username carries the email.
type TokenRequest struct {
	Username string `form:"username" json:"username"`
	Password string `form:"password" json:"password"`
}

// Validate checks the token request.
func (r TokenRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Username, validation.Required),
		validation.Field(&r.Password, validation.Required),
	)
}

// TokenResponse standard response for the token endpoint.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// UserResponse is the public view of a user.
type UserResponse struct {
	Email       string `json:"email"`
	IsActive    bool   `json:"is_active"`
	IsSuperuser bool   `json:"is_superuser"`
}

// NewUserResponse maps a domain user.
func NewUserResponse(u *domain.User) UserResponse {
	return UserResponse{Email: u.Email, IsActive: u.IsActive, IsSuperuser: u.IsSuperuser}
}
