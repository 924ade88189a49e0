package notify

import (
	"bytes"
	"context"
	"fmt"
	"html/template"

	"gopkg.in/gomail.v2"

	"github.com/Skotchmaster/leave_management/internal/logging"
)

const resetSubject = "Password Reset"

var resetTmpl = template.Must(template.New("reset").Parse(`<!DOCTYPE html>
<html>
  <body style="font-family: Arial, sans-serif; color: #333;">
    <h2>Leave Management System</h2>
    <p>You requested a password reset. The link below is valid for one hour.</p>
    <p>
      <a href="{{.Link}}" style="display:inline-block;padding:10px 20px;background:#4f46e5;color:#fff;text-decoration:none;border-radius:4px;">Reset Password</a>
    </p>
    <p>If the button does not work, copy this address into your browser:<br>{{.Link}}</p>
    <p>If you did not request a reset, ignore this email.</p>
  </body>
</html>`))

type Mailer interface {
	SendPasswordReset(ctx context.Context, to, token string) error
}

// Sender delivers fully built messages; *gomail.Dialer implements it.
type Sender interface {
	DialAndSend(m ...*gomail.Message) error
}

type SMTPMailer struct {
	Sender       Sender
	From         string
	ResetURLBase string
}

func NewSMTPMailer(host string, port int, username, password, from, resetURLBase string) *SMTPMailer {
	return &SMTPMailer{
		Sender:       gomail.NewDialer(host, port, username, password),
		From:         from,
		ResetURLBase: resetURLBase,
	}
}

func (m *SMTPMailer) ResetLink(token string) string {
	return m.ResetURLBase + token
}

func (m *SMTPMailer) SendPasswordReset(ctx context.Context, to, token string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	body, err := renderReset(m.ResetLink(token))
	if err != nil {
		return fmt.Errorf("render reset email: %w", err)
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.From)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", resetSubject)
	msg.SetBody("text/html", body)

	if err := m.Sender.DialAndSend(msg); err != nil {
		return fmt.Errorf("send reset email: %w", err)
	}
	return nil
}

func renderReset(link string) (string, error) {
	var body bytes.Buffer
	if err := resetTmpl.Execute(&body, struct{ Link string }{Link: link}); err != nil {
		return "", err
	}
	return body.String(), nil
}

// LogMailer stands in when SMTP is not configured: it records the attempt without delivering.
type LogMailer struct{}

func (LogMailer) SendPasswordReset(ctx context.Context, to, _ string) error {
	logging.FromContext(ctx).Warn("mail_disabled", "reason", "smtp not configured", "to", to)
	return nil
}
