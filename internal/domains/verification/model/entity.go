package model

import "time"

// Token là một mã xác minh đã phát cho email.
// TokenHash là bcrypt hash của mã 6 chữ số, plaintext chỉ nằm trong email.
type Token struct {
	ID        string
	Email     string
	TokenHash string
	Attempts  int
	ExpiresAt time.Time
	CreatedAt time.Time
}

func (t *Token) Expired(now time.Time) bool {
	return !now.Before(t.ExpiresAt)
}
