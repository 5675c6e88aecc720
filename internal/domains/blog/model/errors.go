package model

import "toolsail-backend/internal/shared"

var (
	ErrPostNotFound     = shared.NewNotFound("Blog post not found", nil)
	ErrCategoryNotFound = shared.NewNotFound("Blog category not found", nil)
	ErrCategoryMissing  = shared.NewFieldError("categoryId", "blog category does not exist")
	ErrSlugExists       = shared.NewConflict("slug already exists", nil)
	ErrCategoryInUse    = shared.NewConflict("blog category still has posts", nil)
	ErrInvalidSlug      = shared.NewFieldError("slug", "must contain letters or digits")
)
