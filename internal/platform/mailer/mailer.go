// Copyright (c) 2026 Tienda. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package mailer is the outbound notification gateway.

It renders transactional messages (currently the password-reset email) and
hands them to a [Sender]. Two senders exist:

  - [SMTPSender]: delivers through an SMTP relay using go-mail.
  - [LogSender]: writes the message to the structured log. Used when no SMTP
    host is configured, typically in development.

Delivery is best-effort. Callers are expected to log failures, not surface them.
*/
package mailer

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"net/url"
	"strings"
	"time"
)

// Message is a rendered email ready for delivery.
type Message struct {
	To      string
	Subject string
	HTML    string
	Text    string
}

// Sender delivers a rendered [Message].
type Sender interface {
	Send(ctx context.Context, message Message) error
}

// # Templates

const resetSubject = "Recuperación de contraseña"

var resetTemplate = template.Must(template.New("reset").Parse(`<!DOCTYPE html>
<html>
  <body style="font-family: sans-serif;">
    <h2>Recuperación de contraseña</h2>
    <p>Recibimos una solicitud para restablecer la contraseña de tu cuenta.</p>
    <p><a href="{{.Link}}">Restablecer contraseña</a></p>
    <p>Este enlace expira en {{.ExpiresIn}}.</p>
    <p>Si no solicitaste el cambio, puedes ignorar este mensaje.</p>
  </body>
</html>
`))

type resetData struct {
	Link      string
	ExpiresIn string
}

// Gateway renders notifications and delivers them through a [Sender].
type Gateway struct {
	sender      Sender
	frontendURL string
}

// NewGateway creates a gateway. frontendURL is the base of links in outgoing mail.
func NewGateway(sender Sender, frontendURL string) *Gateway {
	return &Gateway{
		sender:      sender,
		frontendURL: strings.TrimRight(frontendURL, "/"),
	}
}

// ResetLink builds the storefront URL that lets the holder of token choose a new password.
func (gateway *Gateway) ResetLink(token string) string {
	return gateway.frontendURL + "/reset-password?token=" + url.QueryEscape(token)
}

/*
SendPasswordReset emails a password-reset link to the given address.

Parameters:
  - context: Bounds the delivery attempt
  - to: Recipient address
  - token: Signed reset token embedded in the link
  - expiresIn: Token lifetime, rendered in the body

Returns:
  - error: Rendering or delivery failure
*/
func (gateway *Gateway) SendPasswordReset(context context.Context, to, token string, expiresIn time.Duration) error {
	link := gateway.ResetLink(token)

	var body bytes.Buffer
	if err := resetTemplate.Execute(&body, resetData{Link: link, ExpiresIn: humanize(expiresIn)}); err != nil {
		return fmt.Errorf("mailer: render reset template: %w", err)
	}

	message := Message{
		To:      to,
		Subject: resetSubject,
		HTML:    body.String(),
		Text:    "Restablece tu contraseña en " + link + " (expira en " + humanize(expiresIn) + ").",
	}

	if err := gateway.sender.Send(context, message); err != nil {
		return fmt.Errorf("mailer: deliver reset email: %w", err)
	}
	return nil
}

// humanize renders whole hours or minutes in Spanish.
func humanize(duration time.Duration) string {
	if duration >= time.Hour && duration%time.Hour == 0 {
		hours := int(duration / time.Hour)
		if hours == 1 {
			return "1 hora"
		}
		return fmt.Sprintf("%d horas", hours)
	}

	minutes := int(duration.Round(time.Minute) / time.Minute)
	if minutes == 1 {
		return "1 minuto"
	}
	return fmt.Sprintf("%d minutos", minutes)
}
