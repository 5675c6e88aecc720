package shared

import "strings"

// Role của người gọi, do auth provider cấp trong JWT claim "role"
type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

// Principal là danh tính đã xác thực của request.
// Zero value = guest (chưa đăng nhập).
type Principal struct {
	UserID string
	Email  string
	Role   Role
}

func (p Principal) IsAuthenticated() bool {
	return p.UserID != ""
}

func (p Principal) IsAdmin() bool {
	return p.IsAuthenticated() && Role(strings.ToLower(string(p.Role))) == RoleAdmin
}

// RequireAdmin là authorization gate cho moderation và admin CRUD
func (p Principal) RequireAdmin() error {
	if !p.IsAuthenticated() {
		return ErrUnauthorized
	}
	if !p.IsAdmin() {
		return ErrForbidden
	}
	return nil
}

// RequireUser chặn guest
func (p Principal) RequireUser() error {
	if !p.IsAuthenticated() {
		return ErrUnauthorized
	}
	return nil
}

// Asynq task types
const (
	TypeSendVerificationEmail     = "email:verification"
	TypeSendApprovalEmail         = "email:submission_approved"
	TypeSendRejectionEmail        = "email:submission_rejected"
	TypeSendChangesRequestedEmail = "email:submission_changes_requested"

	TypeCleanupExpiredVerification = "verification:cleanup_expired"
	TypeDeactivateExpiredPromotion = "promotion:deactivate_expired"
)

// Asynq queue names
const (
	QueueCritical = "critical"
	QueueDefault  = "default"
	QueueLow      = "low"
)

// Cache key prefixes, invalidated by admin mutations
const (
	CacheKeyToolList  = "tools:list:"
	CacheKeyBlogList  = "blog:list:"
	CacheKeyCategory  = "categories:"
	CacheKeyPromotion = "promotions:active:"
)
