package notification

import (
	"fmt"

	"go.uber.org/zap"
	"gopkg.in/gomail.v2"
)

// SMTPConfig is process-wide mail configuration.
type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

// SMTPSender implements EmailSender over SMTP.
type SMTPSender struct {
	cfg    SMTPConfig
	dialer *gomail.Dialer
	logger *zap.Logger
}

// NewSMTPSender creates an SMTP-backed e-mail sender.
func NewSMTPSender(cfg SMTPConfig, logger *zap.Logger) *SMTPSender {
	return &SMTPSender{
		cfg:    cfg,
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
		logger: logger,
	}
}

func (s *SMTPSender) send(recipient, subject, contentType, body string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.cfg.From)
	m.SetHeader("To", recipient)
	m.SetHeader("Subject", subject)
	m.SetBody(contentType, body)

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email to %s: %w", recipient, err)
	}
	s.logger.Info("email sent", zap.String("to", recipient), zap.String("subject", subject))
	return nil
}

// SendHTML sends an HTML e-mail.
func (s *SMTPSender) SendHTML(recipient, subject, htmlBody string) error {
	return s.send(recipient, subject, "text/html", htmlBody)
}

// SendTemplate renders a named template and sends it as HTML.
func (s *SMTPSender) SendTemplate(recipient, templateName string, data map[string]any) error {
	subject, body, err := renderTemplate(templateName, data)
	if err != nil {
		return err
	}
	return s.send(recipient, subject, "text/html", body)
}

// SendText sends a plain-text e-mail.
func (s *SMTPSender) SendText(recipient, subject, text string) error {
	return s.send(recipient, subject, "text/plain", text)
}
