package model

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"

	"toolsail-backend/internal/shared"
)

type CreateCategoryRequest struct {
	Name         string  `json:"name"`
	Slug         string  `json:"slug"`
	Icon         string  `json:"icon"`
	Description  string  `json:"description"`
	ParentID     *string `json:"parentId"`
	DisplayOrder int     `json:"displayOrder"`
}

func (r *CreateCategoryRequest) Normalize() {
	shared.TrimFields(&r.Name, &r.Slug, &r.Icon, &r.Description, &r.ParentID)
}

func (r CreateCategoryRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.Required, validation.RuneLength(2, 100)),
		validation.Field(&r.Slug, validation.RuneLength(0, 120)),
		validation.Field(&r.Icon, validation.RuneLength(0, 100)),
		validation.Field(&r.Description, validation.RuneLength(0, 1000)),
		validation.Field(&r.DisplayOrder, validation.Min(0), validation.Max(9999)),
	)
}

// UpdateCategoryRequest: field nil = giữ nguyên.
// ParentID = "" nghĩa là chuyển thành root.
type UpdateCategoryRequest struct {
	Name         *string `json:"name"`
	Slug         *string `json:"slug"`
	Icon         *string `json:"icon"`
	Description  *string `json:"description"`
	ParentID     *string `json:"parentId"`
	DisplayOrder *int    `json:"displayOrder"`
}

func (r *UpdateCategoryRequest) Normalize() {
	shared.TrimFields(&r.Name, &r.Slug, &r.Icon, &r.Description, &r.ParentID)
}

func (r UpdateCategoryRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.NilOrNotEmpty, validation.RuneLength(2, 100)),
		validation.Field(&r.Slug, validation.NilOrNotEmpty, validation.RuneLength(1, 120)),
		validation.Field(&r.Icon, validation.RuneLength(0, 100)),
		validation.Field(&r.Description, validation.RuneLength(0, 1000)),
		validation.Field(&r.DisplayOrder, validation.Min(0), validation.Max(9999)),
	)
}
