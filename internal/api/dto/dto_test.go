package dto

import (
	"strings"
	"testing"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserRegisterRequestValidate(t *testing.T) {
	require.NoError(t, UserRegisterRequest{Email: "a@x.com", Password: "secret123"}.Validate())

	err := UserRegisterRequest{Email: "not-an-email", Password: ""}.Validate()
	require.Error(t, err)
	errs, ok := err.(validation.Errors)
	require.True(t, ok)
	assert.Contains(t, errs, "email")
	assert.Contains(t, errs, "password")

	long := strings.Repeat("p", maxPasswordLength+1)
	require.Error(t, UserRegisterRequest{Email: "a@x.com", Password: long}.Validate())
}

func TestTokenRequestValidate(t *testing.T) {
	require.NoError(t, TokenRequest{Username: "a@x.com", Password: "x"}.Validate())
	require.Error(t, TokenRequest{Username: "a@x.com"}.Validate())
}

func TestItemRequestsValidate(t *testing.T) {
	require.NoError(t, ItemCreateRequest{Name: "lamp"}.Validate())
	require.Error(t, ItemCreateRequest{}.Validate())

	require.NoError(t, ItemUpdateRequest{}.Validate())
	empty := ""
	require.Error(t, ItemUpdateRequest{Name: &empty}.Validate())
}
