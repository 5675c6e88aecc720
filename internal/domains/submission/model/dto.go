package model

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"

	toolmodel "toolsail-backend/internal/domains/tool/model"
	"toolsail-backend/internal/shared"
)

// SubmitRequest là body của POST /api/submissions (guest)
type SubmitRequest struct {
	ToolName         string `json:"toolName"`
	ToolURL          string `json:"toolUrl"`
	LogoURL          string `json:"logoUrl"`
	Description      string `json:"description"`
	CategoryID       string `json:"categoryId"`
	Pricing          string `json:"pricing"`
	SubmitterEmail   string `json:"submitterEmail"`
	VerificationCode string `json:"verificationCode"`
}

// Normalize trim input và chuẩn hoá email; phải chạy trước Validate
func (r *SubmitRequest) Normalize() {
	shared.TrimFields(&r.ToolName, &r.ToolURL, &r.LogoURL, &r.Description, &r.CategoryID, &r.Pricing, &r.VerificationCode)
	r.SubmitterEmail = strings.ToLower(strings.TrimSpace(r.SubmitterEmail))
}

func (r SubmitRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.ToolName, validation.Required, validation.RuneLength(2, 100)),
		validation.Field(&r.ToolURL, validation.Required, shared.HTTPURL),
		validation.Field(&r.LogoURL, shared.HTTPURL),
		validation.Field(&r.Description, validation.Required, validation.RuneLength(20, 200)),
		validation.Field(&r.CategoryID, validation.Required),
		validation.Field(&r.Pricing, validation.Required, validation.In(toolmodel.PricingValues...)),
		validation.Field(&r.SubmitterEmail, validation.Required, is.EmailFormat),
		validation.Field(&r.VerificationCode, validation.Required, validation.RuneLength(6, 0)),
	)
}

// UserSubmitRequest là body của POST /api/user/submissions.
// Không cần mã xác minh; email mặc định lấy từ token.
type UserSubmitRequest struct {
	ToolName       string `json:"toolName"`
	ToolURL        string `json:"toolUrl"`
	LogoURL        string `json:"logoUrl"`
	Description    string `json:"description"`
	CategoryID     string `json:"categoryId"`
	Pricing        string `json:"pricing"`
	SubmitterEmail string `json:"submitterEmail"`
}

func (r *UserSubmitRequest) Normalize() {
	shared.TrimFields(&r.ToolName, &r.ToolURL, &r.LogoURL, &r.Description, &r.CategoryID, &r.Pricing)
	r.SubmitterEmail = strings.ToLower(strings.TrimSpace(r.SubmitterEmail))
}

func (r UserSubmitRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.ToolName, validation.Required, validation.RuneLength(2, 100)),
		validation.Field(&r.ToolURL, validation.Required, shared.HTTPURL),
		validation.Field(&r.LogoURL, shared.HTTPURL),
		validation.Field(&r.Description, validation.Required, validation.RuneLength(20, 200)),
		validation.Field(&r.CategoryID, validation.Required),
		validation.Field(&r.Pricing, validation.Required, validation.In(toolmodel.PricingValues...)),
		validation.Field(&r.SubmitterEmail, validation.Required, is.EmailFormat),
	)
}

type RejectRequest struct {
	Reason string `json:"reason"`
}

func (r RejectRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Reason, validation.Required, shared.NotBlank, validation.RuneLength(0, 2000)),
	)
}

type RequestChangesRequest struct {
	Feedback string `json:"feedback"`
}

func (r RequestChangesRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Feedback, validation.Required, shared.NotBlank, validation.RuneLength(0, 2000)),
	)
}

// ListQuery là query string của GET /api/admin/submissions
type ListQuery struct {
	Status string
	Page   string
	Limit  string
}

func (q ListQuery) Validate() error {
	return validation.ValidateStruct(&q,
		validation.Field(&q.Status, validation.In(StatusValues...)),
	)
}
