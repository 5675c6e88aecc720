package email

import (
	"fmt"
	"html"
)

const htmlLayout = `<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif; color: #1f2937;">
  <div style="max-width: 560px; margin: 0 auto; padding: 16px;">
    <h2>Toolsail</h2>
    %s
    <p style="margin-top: 24px; font-size: 12px; color: #6b7280;">You received this email because of activity on toolsail.</p>
  </div>
</body>
</html>`

// Render dựng Message cho từng loại notification
func Render(p Payload) (Message, error) {
	switch p.Kind {
	case KindVerification:
		return Message{
			To:      p.To,
			Subject: "Your Toolsail verification code",
			TextBody: fmt.Sprintf("Your verification code is %s.\n\n"+
				"It expires in 10 minutes. If you did not request it, ignore this email.", p.Code),
			HTMLBody: fmt.Sprintf(htmlLayout, fmt.Sprintf(
				`<p>Your verification code is:</p>
    <div style="font-size: 28px; font-weight: bold; letter-spacing: 3px;">%s</div>
    <p>It expires in 10 minutes.</p>`, html.EscapeString(p.Code))),
		}, nil

	case KindApproval:
		return Message{
			To:      p.To,
			Subject: fmt.Sprintf("%s is now listed on Toolsail", p.ToolName),
			TextBody: fmt.Sprintf("Good news! Your submission %q has been approved and is now live:\n%s",
				p.ToolName, p.ToolURL),
			HTMLBody: fmt.Sprintf(htmlLayout, fmt.Sprintf(
				`<p>Good news! Your submission <strong>%s</strong> has been approved.</p>
    <p><a href="%s">View it on Toolsail</a></p>`,
				html.EscapeString(p.ToolName), html.EscapeString(p.ToolURL))),
		}, nil

	case KindRejection:
		return Message{
			To:      p.To,
			Subject: fmt.Sprintf("Update on your submission: %s", p.ToolName),
			TextBody: fmt.Sprintf("Thanks for submitting %q. After review we could not list it.\n\nReason: %s",
				p.ToolName, p.Note),
			HTMLBody: fmt.Sprintf(htmlLayout, fmt.Sprintf(
				`<p>Thanks for submitting <strong>%s</strong>. After review we could not list it.</p>
    <p><strong>Reason:</strong> %s</p>`,
				html.EscapeString(p.ToolName), html.EscapeString(p.Note))),
		}, nil

	case KindChangesRequested:
		return Message{
			To:      p.To,
			Subject: fmt.Sprintf("Changes requested for %s", p.ToolName),
			TextBody: fmt.Sprintf("Our reviewers asked for changes to %q before it can be listed.\n\nFeedback: %s\n\n"+
				"Please submit the tool again once it is updated.", p.ToolName, p.Note),
			HTMLBody: fmt.Sprintf(htmlLayout, fmt.Sprintf(
				`<p>Our reviewers asked for changes to <strong>%s</strong> before it can be listed.</p>
    <p><strong>Feedback:</strong> %s</p>
    <p>Please submit the tool again once it is updated.</p>`,
				html.EscapeString(p.ToolName), html.EscapeString(p.Note))),
		}, nil
	}

	return Message{}, fmt.Errorf("unknown notification kind %q", p.Kind)
}
