// Package mailer sends account emails.
package mailer

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"net/url"

	"github.com/sirupsen/logrus"
	"gopkg.in/gomail.v2"
)

const verificationSubject = "Verifica tu email"

var verificationTemplate = template.Must(template.New("verification").Parse(`<!DOCTYPE html>
<html lang="es">
<body style="font-family: Arial, sans-serif; background-color: #f4f4f5; padding: 24px;">
	<div style="max-width: 520px; margin: 0 auto; background: #ffffff; border-radius: 12px; padding: 32px;">
		<h1 style="color: #6366f1; font-size: 22px;">Hola {{.Name}}</h1>
		<p>Gracias por registrarte. Confirma tu dirección de email para empezar a usar tu cuenta.</p>
		<p style="text-align: center; margin: 32px 0;">
			<a href="{{.Link}}" style="background: #6366f1; color: #ffffff; padding: 12px 24px; border-radius: 8px; text-decoration: none;">Verificar email</a>
		</p>
		<p style="color: #71717a; font-size: 12px;">Si no has creado esta cuenta puedes ignorar este mensaje.</p>
	</div>
</body>
</html>`))

// Mailer delivers account emails.
type Mailer interface {
	SendVerification(ctx context.Context, to, name, token string) error
}

// VerificationLink is the frontend URL that confirms token.
func VerificationLink(appURL, token string) string {
	return appURL + "/verify-email?token=" + url.QueryEscape(token)
}

func renderVerification(name, link string) (string, error) {
	var body bytes.Buffer
	err := verificationTemplate.Execute(&body, struct {
		Name string
		Link string
	}{Name: name, Link: link})
	if err != nil {
		return "", fmt.Errorf("render verification email: %w", err)
	}
	return body.String(), nil
}

// SMTPMailer sends through an SMTP relay.
type SMTPMailer struct {
	dialer *gomail.Dialer
	from   string
	appURL string
}

func NewSMTPMailer(host string, port int, username, password, from, appURL string) *SMTPMailer {
	return &SMTPMailer{
		dialer: gomail.NewDialer(host, port, username, password),
		from:   from,
		appURL: appURL,
	}
}

func (m *SMTPMailer) SendVerification(ctx context.Context, to, name, token string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	body, err := renderVerification(name, VerificationLink(m.appURL, token))
	if err != nil {
		return err
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", verificationSubject)
	msg.SetBody("text/html", body)

	if err := m.dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("send verification email: %w", err)
	}
	return nil
}

// LogMailer logs the verification link instead of sending it. Used when no
// SMTP relay is configured.
type LogMailer struct {
	Logger logrus.FieldLogger
	AppURL string
}

func (m *LogMailer) SendVerification(_ context.Context, to, _, token string) error {
	m.Logger.WithFields(logrus.Fields{
		"to":   to,
		"link": VerificationLink(m.AppURL, token),
	}).Info("LogMailer.SendVerification")
	return nil
}
