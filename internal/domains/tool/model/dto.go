package model

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"

	"toolsail-backend/internal/shared"
)

// ListQuery là query string của GET /api/tools
type ListQuery struct {
	Category string
	Search   string
	Sort     string
	Featured string
	Page     string
	Limit    string
}

// AdminListQuery thêm filter published cho admin
type AdminListQuery struct {
	ListQuery
	Published string
}

type CreateToolRequest struct {
	Name        string `json:"name"`
	URL         string `json:"url"`
	Description string `json:"description"`
	LogoURL     string `json:"logoUrl"`
	CategoryID  string `json:"categoryId"`
	Pricing     string `json:"pricing"`
	IsFeatured  bool   `json:"isFeatured"`
	IsPublished *bool  `json:"isPublished"`
}

func (r *CreateToolRequest) Normalize() {
	shared.TrimFields(&r.Name, &r.URL, &r.Description, &r.LogoURL, &r.CategoryID, &r.Pricing)
}

func (r CreateToolRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.Required, validation.RuneLength(2, 100)),
		validation.Field(&r.URL, validation.Required, shared.HTTPURL),
		validation.Field(&r.Description, validation.Required, validation.RuneLength(20, 1000)),
		validation.Field(&r.LogoURL, shared.HTTPURL),
		validation.Field(&r.CategoryID, validation.Required),
		validation.Field(&r.Pricing, validation.Required, validation.In(PricingValues...)),
	)
}

type UpdateToolRequest struct {
	Name        *string `json:"name"`
	URL         *string `json:"url"`
	Description *string `json:"description"`
	LogoURL     *string `json:"logoUrl"`
	CategoryID  *string `json:"categoryId"`
	Pricing     *string `json:"pricing"`
	IsFeatured  *bool   `json:"isFeatured"`
	IsPublished *bool   `json:"isPublished"`
}

func (r *UpdateToolRequest) Normalize() {
	shared.TrimFields(&r.Name, &r.URL, &r.Description, &r.LogoURL, &r.CategoryID, &r.Pricing)
}

func (r UpdateToolRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.NilOrNotEmpty, validation.RuneLength(2, 100)),
		validation.Field(&r.URL, validation.NilOrNotEmpty, shared.HTTPURL),
		validation.Field(&r.Description, validation.NilOrNotEmpty, validation.RuneLength(20, 1000)),
		validation.Field(&r.LogoURL, shared.HTTPURL),
		validation.Field(&r.CategoryID, validation.NilOrNotEmpty),
		validation.Field(&r.Pricing, validation.NilOrNotEmpty, validation.In(PricingValues...)),
	)
}
