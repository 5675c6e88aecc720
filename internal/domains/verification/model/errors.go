package model

import "toolsail-backend/internal/shared"

var ErrRateLimited = shared.NewTooManyRequests("Too many verification code requests, please try again later")
