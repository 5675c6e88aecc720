package email

// Kind phân loại email thông báo, cũng là label "kind" của metrics
type Kind string

const (
	KindVerification     Kind = "verification"
	KindApproval         Kind = "approval"
	KindRejection        Kind = "rejection"
	KindChangesRequested Kind = "changes_requested"
)

// Message là một email đã render, sẵn sàng gửi
type Message struct {
	To       string
	Subject  string
	TextBody string
	HTMLBody string
}

// Payload là dữ liệu của một notification, dùng chung cho gửi trực tiếp và asynq task
type Payload struct {
	Kind     Kind   `json:"kind"`
	To       string `json:"to"`
	Code     string `json:"code,omitempty"`
	ToolName string `json:"toolName,omitempty"`
	ToolURL  string `json:"toolUrl,omitempty"`
	Note     string `json:"note,omitempty"` // reason hoặc feedback
}
