package model

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"

	"toolsail-backend/internal/shared"
)

// PostListQuery là query string của GET /api/blog/posts
type PostListQuery struct {
	Category string
	Tag      string
	Sort     string
	Page     string
	Limit    string
}

type CreatePostRequest struct {
	Title       string   `json:"title"`
	Slug        string   `json:"slug"`
	Excerpt     string   `json:"excerpt"`
	Content     string   `json:"content"`
	CoverImage  string   `json:"coverImage"`
	CategoryID  string   `json:"categoryId"`
	Tags        []string `json:"tags"`
	AuthorName  string   `json:"authorName"`
	IsPublished bool     `json:"isPublished"`
}

func (r *CreatePostRequest) Normalize() {
	shared.TrimFields(&r.Title, &r.Slug, &r.Excerpt, &r.CoverImage, &r.CategoryID, &r.AuthorName)
}

func (r CreatePostRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title, validation.Required, validation.RuneLength(3, 200)),
		validation.Field(&r.Slug, validation.RuneLength(0, 200)),
		validation.Field(&r.Excerpt, validation.RuneLength(0, 500)),
		validation.Field(&r.Content, validation.Required, shared.NotBlank),
		validation.Field(&r.CoverImage, shared.HTTPURL),
		validation.Field(&r.Tags, validation.Length(0, 20), validation.Each(validation.Required, validation.RuneLength(1, 50))),
		validation.Field(&r.AuthorName, validation.RuneLength(0, 100)),
	)
}

type UpdatePostRequest struct {
	Title       *string   `json:"title"`
	Slug        *string   `json:"slug"`
	Excerpt     *string   `json:"excerpt"`
	Content     *string   `json:"content"`
	CoverImage  *string   `json:"coverImage"`
	CategoryID  *string   `json:"categoryId"`
	Tags        *[]string `json:"tags"`
	AuthorName  *string   `json:"authorName"`
	IsPublished *bool     `json:"isPublished"`
}

func (r *UpdatePostRequest) Normalize() {
	shared.TrimFields(&r.Title, &r.Slug, &r.Excerpt, &r.CoverImage, &r.CategoryID, &r.AuthorName)
}

func (r UpdatePostRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title, validation.NilOrNotEmpty, validation.RuneLength(3, 200)),
		validation.Field(&r.Slug, validation.RuneLength(0, 200)),
		validation.Field(&r.Excerpt, validation.RuneLength(0, 500)),
		validation.Field(&r.Content, validation.NilOrNotEmpty),
		validation.Field(&r.CoverImage, shared.HTTPURL),
		validation.Field(&r.AuthorName, validation.RuneLength(0, 100)),
	)
}

type CreateCategoryRequest struct {
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	Description string `json:"description"`
}

func (r *CreateCategoryRequest) Normalize() {
	shared.TrimFields(&r.Name, &r.Slug, &r.Description)
}

func (r CreateCategoryRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.Required, validation.RuneLength(2, 100)),
		validation.Field(&r.Slug, validation.RuneLength(0, 100)),
		validation.Field(&r.Description, validation.RuneLength(0, 500)),
	)
}

type UpdateCategoryRequest struct {
	Name        *string `json:"name"`
	Slug        *string `json:"slug"`
	Description *string `json:"description"`
}

func (r *UpdateCategoryRequest) Normalize() {
	shared.TrimFields(&r.Name, &r.Slug, &r.Description)
}

func (r UpdateCategoryRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.NilOrNotEmpty, validation.RuneLength(2, 100)),
		validation.Field(&r.Slug, validation.RuneLength(0, 100)),
		validation.Field(&r.Description, validation.RuneLength(0, 500)),
	)
}
