package model

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

// IssueRequest là body của PUT /api/submissions
type IssueRequest struct {
	Email string `json:"email"`
}

func (r IssueRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Email, validation.Required, is.EmailFormat),
	)
}

// NormalizeEmail dùng chung cho issue và verify
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
