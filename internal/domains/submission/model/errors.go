package model

import "toolsail-backend/internal/shared"

var (
	ErrSubmissionNotFound = shared.NewNotFound("Submission not found", nil)
	ErrNotPending         = shared.NewConflict("submission is not pending", nil)
	ErrInvalidCode        = shared.NewFieldError("verificationCode", "invalid or expired verification code")
	ErrCategoryNotFound   = shared.NewFieldError("categoryId", "category does not exist")
)
