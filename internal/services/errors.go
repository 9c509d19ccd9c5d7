package services

import "errors"

// The error kinds the lifecycle operations can fail with. Handlers map
// these to HTTP statuses; none of them is ever wrapped into a panic.
var (
	// ErrDuplicateUsername rejects a registration for a taken username.
	ErrDuplicateUsername = errors.New("username already taken")

	// ErrNoSuchSession covers unknown, expired, and already-consumed
	// registration tokens. The three cases are deliberately one error so
	// a caller cannot probe which tokens once existed.
	ErrNoSuchSession = errors.New("registration session unknown or expired")

	// ErrCodeMismatch means the submitted code differs from the issued
	// one. The underlying session or profile is left untouched.
	ErrCodeMismatch = errors.New("code does not match")

	// ErrProfileAlreadyExists rejects a second vendor profile for the
	// same account.
	ErrProfileAlreadyExists = errors.New("vendor profile already exists")

	// ErrNotPending means an approve or reject lost to a transition that
	// already moved the profile out of pending.
	ErrNotPending = errors.New("vendor profile is not pending review")

	// ErrNotApproved means the profile is not in the approved,
	// awaiting-activation state the operation requires.
	ErrNotApproved = errors.New("vendor profile is not approved")

	// ErrForbidden rejects a privileged operation invoked without the
	// admin capability. Nothing is mutated when it is returned.
	ErrForbidden = errors.New("admin capability required")
)
