package infra

import (
	"bytes"
	"fmt"
	"net/smtp"

	"github.com/jordan-wright/email"

	"github.com/FredesVirginia/captus-back/internal/config"
)

// Mailer wraps SMTP configuration for sending emails with PDF attachments.
type Mailer struct {
	host     string
	port     int
	user     string
	password string
	addr     string
}

func NewMailer(cfg *config.Config) *Mailer {
	return &Mailer{
		host:     cfg.SMTPHost,
		port:     cfg.SMTPPort,
		user:     cfg.SMTPUser,
		password: cfg.SMTPPassword,
		addr:     fmt.Sprintf("%s:%d", cfg.SMTPHost, cfg.SMTPPort),
	}
}

// Send delivers a plain-text email, optionally attaching an in-memory PDF.
// Receipts never touch disk, so the attachment rides a byte slice.
func (m *Mailer) Send(to, subject, body, attachName string, pdf []byte) error {
	e := email.NewEmail()
	e.From = m.user
	e.To = []string{to}
	e.Subject = subject
	e.Text = []byte(body)

	if len(pdf) > 0 {
		if _, err := e.Attach(bytes.NewReader(pdf), attachName, "application/pdf"); err != nil {
			return fmt.Errorf("mailer: attach PDF: %w", err)
		}
	}

	auth := smtp.PlainAuth("", m.user, m.password, m.host)
	return e.Send(m.addr, auth)
}
