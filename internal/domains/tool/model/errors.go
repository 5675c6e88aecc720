package model

import "toolsail-backend/internal/shared"

var (
	ErrToolNotFound     = shared.NewNotFound("Tool not found", nil)
	ErrCategoryNotFound = shared.NewFieldError("categoryId", "category does not exist")
	ErrLogoMissing      = shared.NewFieldError("file", "logo file is required")
	ErrStorageDisabled  = shared.NewServiceUnavailable("Logo storage is not configured", nil)
)
