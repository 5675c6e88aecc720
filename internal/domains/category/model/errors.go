package model

import "toolsail-backend/internal/shared"

var (
	ErrCategoryNotFound = shared.NewNotFound("Category not found", nil)
	ErrSlugExists       = shared.NewConflict("Category slug already exists", nil)
	ErrHasChildren      = shared.NewConflict("Category has child categories", nil)
	ErrHasTools         = shared.NewConflict("Category has tools attached", nil)

	ErrParentNotFound = shared.NewFieldError("parentId", "parent category does not exist")
	ErrParentNotRoot  = shared.NewFieldError("parentId", "parent must be a top-level category")
	ErrSelfParent     = shared.NewFieldError("parentId", "category cannot be its own parent")
	ErrParentHasKids  = shared.NewFieldError("parentId", "a category with children cannot become a child")
	ErrInvalidSlug    = shared.NewFieldError("slug", "slug must contain letters or digits")
)
