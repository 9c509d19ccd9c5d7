package repositories

import (
	"sync"

	"pasar/internal/models"

	"github.com/google/uuid"
)

// MockVendorRepository is an in-memory implementation of VendorRepository.
// The single mutex gives it the same exactly-one-winner semantics the GORM
// implementation gets from conditional UPDATEs, which is what the lifecycle
// tests lean on.
type MockVendorRepository struct {
	vendors map[string]models.VendorProfile
	mu      sync.RWMutex
}

// NewMockVendorRepository creates a new instance of MockVendorRepository.
func NewMockVendorRepository() *MockVendorRepository {
	return &MockVendorRepository{
		vendors: make(map[string]models.VendorProfile),
	}
}

// Create adds a new vendor profile.
func (r *MockVendorRepository) Create(vendor *models.VendorProfile) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if vendor.ID == "" {
		vendor.ID = uuid.New().String()
	}
	r.vendors[vendor.ID] = *vendor
	return nil
}

// GetByID returns a vendor profile by its ID.
func (r *MockVendorRepository) GetByID(id string) (*models.VendorProfile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	vendor, ok := r.vendors[id]
	if !ok {
		return nil, ErrVendorNotFound
	}
	return &vendor, nil
}

// GetByUserID returns the vendor profile owned by an account.
func (r *MockVendorRepository) GetByUserID(userID string) (*models.VendorProfile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, vendor := range r.vendors {
		if vendor.UserID == userID {
			v := vendor
			return &v, nil
		}
	}
	return nil, ErrVendorNotFound
}

// GetAll returns all vendor profiles.
func (r *MockVendorRepository) GetAll() ([]models.VendorProfile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	vendorList := make([]models.VendorProfile, 0, len(r.vendors))
	for _, v := range r.vendors {
		vendorList = append(vendorList, v)
	}
	return vendorList, nil
}

// Approve moves a pending profile to approved and stores the activation code.
func (r *MockVendorRepository) Approve(id, activationCode string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	vendor, ok := r.vendors[id]
	if !ok || vendor.ApprovalStatus != models.ApprovalPending {
		return false, nil
	}
	vendor.ApprovalStatus = models.ApprovalApproved
	vendor.ActivationCode = activationCode
	r.vendors[id] = vendor
	return true, nil
}

// Reject moves a pending profile to rejected with the given reason.
func (r *MockVendorRepository) Reject(id, reason string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	vendor, ok := r.vendors[id]
	if !ok || vendor.ApprovalStatus != models.ApprovalPending {
		return false, nil
	}
	vendor.ApprovalStatus = models.ApprovalRejected
	vendor.RejectionReason = reason
	r.vendors[id] = vendor
	return true, nil
}

// ConsumeActivationCode clears the stored code and marks the vendor activated.
func (r *MockVendorRepository) ConsumeActivationCode(userID, code string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for id, vendor := range r.vendors {
		if vendor.UserID != userID {
			continue
		}
		if vendor.ApprovalStatus != models.ApprovalApproved || vendor.Activated ||
			vendor.ActivationCode == "" || vendor.ActivationCode != code {
			return false, nil
		}
		vendor.ActivationCode = ""
		vendor.Activated = true
		r.vendors[id] = vendor
		return true, nil
	}
	return false, nil
}

// SetBlocked flips the block flag on a profile.
func (r *MockVendorRepository) SetBlocked(id string, blocked bool, reason string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	vendor, ok := r.vendors[id]
	if !ok {
		return false, nil
	}
	if blocked && vendor.ApprovalStatus == models.ApprovalRejected {
		return false, nil
	}
	vendor.IsBlocked = blocked
	vendor.BlockedReason = reason
	r.vendors[id] = vendor
	return true, nil
}
