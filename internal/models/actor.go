package models

// Actor identifies the authenticated caller of a lifecycle operation. It is
// built from JWT claims by the auth middleware; IsAdmin is the capability
// every privileged transition is gated on.
type Actor struct {
	AccountID string
	IsAdmin   bool
}
