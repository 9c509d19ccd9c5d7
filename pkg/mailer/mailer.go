// Package mailer delivers the one-time codes issued during registration and
// vendor activation. Delivery failures are reported as *DeliveryError so
// callers can treat them as non-fatal: the flow that triggered the email
// continues, only the delivery is reported back.
package mailer

import "fmt"

// Mailer defines the interface for sending emails.
type Mailer interface {
	Send(recipient, subject, body string) error
}

// DeliveryError wraps a transport failure. The message body (which contains
// the code) is intentionally not carried here, only the recipient, so error
// text can be logged without leaking codes.
type DeliveryError struct {
	Recipient string
	Err       error
}

func (e *DeliveryError) Error() string {
	return fmt.Sprintf("mail delivery to %s failed: %v", e.Recipient, e.Err)
}

func (e *DeliveryError) Unwrap() error {
	return e.Err
}
