package repositories

import (
	"errors"

	"pasar/internal/models"
)

// ErrVendorNotFound is returned by lookups when no matching profile exists.
var ErrVendorNotFound = errors.New("vendor profile not found")

// VendorRepository defines the interface for vendor profile data access.
//
// The conditional mutations (Approve, Reject, ConsumeActivationCode,
// SetBlocked) return false when no row matched the required current state.
// That is how concurrent transitions are serialized: of two racing approvals
// exactly one matches the pending row, the loser gets false and re-reads.
type VendorRepository interface {
	Create(vendor *models.VendorProfile) error
	GetByID(id string) (*models.VendorProfile, error)
	GetByUserID(userID string) (*models.VendorProfile, error)
	GetAll() ([]models.VendorProfile, error)

	// Approve moves a pending profile to approved and stores the freshly
	// issued activation code in the same update.
	Approve(id, activationCode string) (bool, error)
	// Reject moves a pending profile to rejected with the given reason.
	Reject(id, reason string) (bool, error)
	// ConsumeActivationCode clears the stored code and marks the vendor
	// activated, but only if the profile is approved, not yet activated,
	// and still holds exactly this code.
	ConsumeActivationCode(userID, code string) (bool, error)
	// SetBlocked flips the block flag. Blocking never matches a rejected
	// profile; unblocking matches any existing profile.
	SetBlocked(id string, blocked bool, reason string) (bool, error)
}
