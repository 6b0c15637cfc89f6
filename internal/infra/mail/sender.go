package mail

import (
	"context"
	"fmt"

	domainMail "github.com/jordan-barrett-jm/gym-payment-notifications/internal/domain/mail"

	"gopkg.in/gomail.v2"
)

// customIDHeader tags messages sent through the Mailjet SMTP relay.
const customIDHeader = "X-MJ-CustomID"

// messageSender is the part of gomail.Dialer the sender needs.
type messageSender interface {
	DialAndSend(m ...*gomail.Message) error
}

// EmailSender delivers messages through an SMTP relay. With Mailjet the API key and
// secret are the SMTP user and password.
type EmailSender struct {
	dialer messageSender
}

func NewEmailSender(host string, port int, user, password string) *EmailSender {
	return &EmailSender{dialer: gomail.NewDialer(host, port, user, password)}
}

// Send opens one SMTP session per message.
func (s *EmailSender) Send(ctx context.Context, msg domainMail.Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if msg.To.Email == "" {
		return fmt.Errorf("email has no recipient")
	}
	if err := s.dialer.DialAndSend(buildMessage(msg)); err != nil {
		return fmt.Errorf("error sending email via SMTP to %s: %w", msg.To.Email, err)
	}
	return nil
}

func buildMessage(msg domainMail.Message) *gomail.Message {
	m := gomail.NewMessage()
	m.SetAddressHeader("From", msg.From.Email, msg.From.Name)
	m.SetAddressHeader("To", msg.To.Email, msg.To.Name)
	m.SetHeader("Subject", msg.Subject)
	if msg.CustomID != "" {
		m.SetHeader(customIDHeader, msg.CustomID)
	}
	m.SetBody("text/html", msg.HTMLBody)
	return m
}
