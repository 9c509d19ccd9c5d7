package mailer

import (
	"fmt"
	"net/smtp"
	"strings"
)

// SMTPMailer implements Mailer using net/smtp.
type SMTPMailer struct {
	host     string
	port     int
	username string
	password string
	from     string // The "From" address for the email header
}

// NewSMTPMailer creates a new SMTPMailer.
func NewSMTPMailer(host string, port int, username, password, from string) *SMTPMailer {
	return &SMTPMailer{
		host:     host,
		port:     port,
		username: username,
		password: password,
		from:     from,
	}
}

// Send delivers a plain-text email to a single recipient.
func (m *SMTPMailer) Send(recipient, subject, body string) error {
	auth := smtp.PlainAuth("", m.username, m.password, m.host)

	var msg strings.Builder
	msg.WriteString(fmt.Sprintf("From: %s\r\n", m.from))
	msg.WriteString(fmt.Sprintf("To: %s\r\n", recipient))
	msg.WriteString(fmt.Sprintf("Subject: %s\r\n", subject))
	msg.WriteString("MIME-Version: 1.0\r\n")
	msg.WriteString("Content-Type: text/plain; charset=\"utf-8\"\r\n")
	msg.WriteString("\r\n")
	msg.WriteString(body)
	msg.WriteString("\r\n")

	addr := fmt.Sprintf("%s:%d", m.host, m.port)
	if err := smtp.SendMail(addr, auth, m.from, []string{recipient}, []byte(msg.String())); err != nil {
		return &DeliveryError{Recipient: recipient, Err: err}
	}
	return nil
}
