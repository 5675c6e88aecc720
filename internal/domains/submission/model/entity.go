package model

import "time"

type Status string

const (
	StatusPending          Status = "pending"
	StatusApproved         Status = "approved"
	StatusRejected         Status = "rejected"
	StatusChangesRequested Status = "changes_requested"
)

// StatusValues dùng cho validation.In của filter status
var StatusValues = []interface{}{
	string(StatusPending), string(StatusApproved), string(StatusRejected), string(StatusChangesRequested),
}

// Submission là tool do guest/user gửi, chờ admin duyệt.
// SubmittedByUserID nil = guest.
type Submission struct {
	ID                string     `json:"id"`
	ToolName          string     `json:"toolName"`
	ToolURL           string     `json:"toolUrl"`
	ToolLogo          *string    `json:"toolLogo"`
	ToolDescription   string     `json:"toolDescription"`
	CategoryID        string     `json:"categoryId"`
	PricingType       string     `json:"pricingType"`
	SubmitterEmail    string     `json:"submitterEmail"`
	SubmittedByUserID *string    `json:"submittedByUserId"`
	Status            Status     `json:"status"`
	ReviewNote        *string    `json:"reviewNote,omitempty"`
	ReviewedBy        *string    `json:"reviewedBy,omitempty"`
	ReviewedAt        *time.Time `json:"reviewedAt,omitempty"`
	ToolID            *string    `json:"toolId,omitempty"`
	CreatedAt         time.Time  `json:"createdAt"`
	UpdatedAt         time.Time  `json:"updatedAt"`
}

func (s *Submission) IsPending() bool {
	return s.Status == StatusPending
}

// Decision là một chuyển trạng thái ra khỏi pending
type Decision struct {
	Status     Status
	Note       *string
	ReviewerID string
	At         time.Time
}

type ListFilter struct {
	Status      string
	SubmittedBy string
	Limit       int
	Offset      int
}
