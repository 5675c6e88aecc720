package email

import (
	"context"
	"fmt"
	"strings"

	"gopkg.in/gomail.v2"

	"toolsail-backend/pkg/logger"
)

// Sender gửi một Message đã render
type Sender interface {
	Send(ctx context.Context, msg Message) error
}

// SMTPConfig tách khỏi internal/config để package này không phụ thuộc config loader
type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

type smtpSender struct {
	cfg    SMTPConfig
	dialer *gomail.Dialer
}

// NewSender trả SMTP sender khi đã cấu hình, ngược lại trả sender chỉ log nội dung
func NewSender(cfg SMTPConfig) Sender {
	if cfg.Host == "" || cfg.From == "" {
		logger.Warn("SMTP not configured, emails will be logged only", nil)
		return logSender{}
	}
	return &smtpSender{
		cfg:    cfg,
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
	}
}

func (s *smtpSender) Send(ctx context.Context, msg Message) error {
	if strings.TrimSpace(msg.To) == "" {
		return fmt.Errorf("empty recipient")
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.cfg.From)
	m.SetHeader("To", msg.To)
	m.SetHeader("Subject", msg.Subject)
	m.SetBody("text/plain", msg.TextBody)
	if msg.HTMLBody != "" {
		m.AddAlternative("text/html", msg.HTMLBody)
	}

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("send email: %w", err)
	}

	logger.Info("Email sent", map[string]interface{}{
		"to":      msg.To,
		"subject": msg.Subject,
	})
	return nil
}

type logSender struct{}

func (logSender) Send(_ context.Context, msg Message) error {
	logger.Info("Email (not sent, SMTP disabled)", map[string]interface{}{
		"to":      msg.To,
		"subject": msg.Subject,
		"body":    msg.TextBody,
	})
	return nil
}
