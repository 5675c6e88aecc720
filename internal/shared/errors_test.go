package shared

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/stretchr/testify/assert"
)

func TestAsAppError(t *testing.T) {
	notFound := NewNotFound("Tool not found", nil)
	wrapped := fmt.Errorf("get tool: %w", notFound)
	assert.Same(t, notFound, AsAppError(wrapped))

	verrs := validation.Errors{"toolName": errors.New("the length must be between 2 and 100")}
	appErr := AsAppError(verrs)
	assert.Equal(t, CodeValidation, appErr.Code)
	assert.Equal(t, http.StatusBadRequest, appErr.HTTPStatus)
	assert.Equal(t, "Validation error", appErr.Message)
	assert.Equal(t, map[string]string{"toolName": "the length must be between 2 and 100"}, appErr.Details)

	internal := AsAppError(errors.New("boom"))
	assert.Equal(t, CodeInternal, internal.Code)
	assert.Equal(t, "Internal server error", internal.Message)
}

func TestPrincipal_RequireAdmin(t *testing.T) {
	assert.ErrorIs(t, Principal{}.RequireAdmin(), ErrUnauthorized)
	assert.ErrorIs(t, Principal{UserID: "u1", Role: RoleUser}.RequireAdmin(), ErrForbidden)
	assert.NoError(t, Principal{UserID: "u1", Role: RoleAdmin}.RequireAdmin())
}

func TestHTTPURL(t *testing.T) {
	assert.NoError(t, validation.Validate("https://foo.dev", HTTPURL))
	assert.NoError(t, validation.Validate("", HTTPURL))
	assert.Error(t, validation.Validate("foo.dev", HTTPURL))
	assert.Error(t, validation.Validate("ftp://foo.dev", HTTPURL))
	assert.Error(t, validation.Validate("https://", HTTPURL))
}
