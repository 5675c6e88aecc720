package model

import "toolsail-backend/internal/shared"

var (
	ErrPromotionNotFound = shared.NewNotFound("Promotion not found", nil)
	ErrToolNotFound      = shared.NewFieldError("toolId", "tool does not exist")
	ErrInvalidPlacement  = shared.NewFieldError("placement", "must be a valid value")
)
