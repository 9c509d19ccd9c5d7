package models

import "time"

// RegistrationSession is the transient pre-account state created when a
// visitor submits the registration form. It lives in the session store only,
// keyed by an opaque token, and is destroyed the moment the code is
// confirmed and the durable User is created. The password travels in
// cleartext inside this value for the lifetime of the session only; the
// durable User never sees it unhashed.
type RegistrationSession struct {
	Username string    `json:"username"`
	Email    string    `json:"email"`
	Password string    `json:"password"`
	Code     string    `json:"code"`
	IssuedAt time.Time `json:"issued_at"`
}
