package mailer

import "log"

// LogMailer is the fallback used when no SMTP server is configured. It
// pretends delivery succeeded and logs that a message would have been sent.
// Bodies are not logged: they contain one-time codes.
type LogMailer struct{}

// NewLogMailer creates a new LogMailer.
func NewLogMailer() *LogMailer {
	return &LogMailer{}
}

// Send logs the delivery attempt and reports success.
func (m *LogMailer) Send(recipient, subject, _ string) error {
	log.Printf("mailer: no SMTP configured, dropping mail to %s (subject: %q)", recipient, subject)
	return nil
}
