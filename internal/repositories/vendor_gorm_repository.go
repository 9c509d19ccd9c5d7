package repositories

import (
	"errors"
	"fmt"

	"pasar/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMVendorRepository is a GORM implementation of VendorRepository.
//
// All state transitions are single conditional UPDATEs with the required
// current state in the WHERE clause, so the row-level lock taken by the
// database is the mutual-exclusion boundary. RowsAffected tells the caller
// whether this transition won.
type GORMVendorRepository struct {
	db *gorm.DB
}

// NewGORMVendorRepository creates a new instance of GORMVendorRepository.
func NewGORMVendorRepository(db *gorm.DB) *GORMVendorRepository {
	return &GORMVendorRepository{
		db: db,
	}
}

// Create creates a new vendor profile in the database.
func (r *GORMVendorRepository) Create(vendor *models.VendorProfile) error {
	if vendor.ID == "" {
		vendor.ID = uuid.New().String()
	}
	if err := r.db.Create(vendor).Error; err != nil {
		return fmt.Errorf("failed to create vendor profile: %w", err)
	}
	return nil
}

// GetByID retrieves a vendor profile by its ID from the database.
func (r *GORMVendorRepository) GetByID(id string) (*models.VendorProfile, error) {
	var vendor models.VendorProfile
	if err := r.db.First(&vendor, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrVendorNotFound
		}
		return nil, fmt.Errorf("failed to get vendor profile by ID %s: %w", id, err)
	}
	return &vendor, nil
}

// GetByUserID retrieves the vendor profile owned by an account.
func (r *GORMVendorRepository) GetByUserID(userID string) (*models.VendorProfile, error) {
	var vendor models.VendorProfile
	if err := r.db.First(&vendor, "user_id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrVendorNotFound
		}
		return nil, fmt.Errorf("failed to get vendor profile for user %s: %w", userID, err)
	}
	return &vendor, nil
}

// GetAll retrieves all vendor profiles from the database.
func (r *GORMVendorRepository) GetAll() ([]models.VendorProfile, error) {
	var vendors []models.VendorProfile
	if err := r.db.Find(&vendors).Error; err != nil {
		return nil, fmt.Errorf("failed to get all vendor profiles: %w", err)
	}
	return vendors, nil
}

// Approve moves a pending profile to approved and stores the activation code.
func (r *GORMVendorRepository) Approve(id, activationCode string) (bool, error) {
	res := r.db.Model(&models.VendorProfile{}).
		Where("id = ? AND approval_status = ?", id, models.ApprovalPending).
		Updates(map[string]interface{}{
			"approval_status": models.ApprovalApproved,
			"activation_code": activationCode,
		})
	if res.Error != nil {
		return false, fmt.Errorf("failed to approve vendor %s: %w", id, res.Error)
	}
	return res.RowsAffected > 0, nil
}

// Reject moves a pending profile to rejected with the given reason.
func (r *GORMVendorRepository) Reject(id, reason string) (bool, error) {
	res := r.db.Model(&models.VendorProfile{}).
		Where("id = ? AND approval_status = ?", id, models.ApprovalPending).
		Updates(map[string]interface{}{
			"approval_status":  models.ApprovalRejected,
			"rejection_reason": reason,
		})
	if res.Error != nil {
		return false, fmt.Errorf("failed to reject vendor %s: %w", id, res.Error)
	}
	return res.RowsAffected > 0, nil
}

// ConsumeActivationCode clears the stored code and marks the vendor
// activated if the code still matches. A second confirmation with the same
// code finds no row (the code column is already empty) and returns false.
func (r *GORMVendorRepository) ConsumeActivationCode(userID, code string) (bool, error) {
	res := r.db.Model(&models.VendorProfile{}).
		Where("user_id = ? AND approval_status = ? AND activated = ? AND activation_code = ?",
			userID, models.ApprovalApproved, false, code).
		Updates(map[string]interface{}{
			"activation_code": "",
			"activated":       true,
		})
	if res.Error != nil {
		return false, fmt.Errorf("failed to consume activation code for user %s: %w", userID, res.Error)
	}
	return res.RowsAffected > 0, nil
}

// SetBlocked flips the block flag on a profile.
func (r *GORMVendorRepository) SetBlocked(id string, blocked bool, reason string) (bool, error) {
	query := r.db.Model(&models.VendorProfile{}).Where("id = ?", id)
	if blocked {
		// A rejected vendor has nothing left to block.
		query = query.Where("approval_status <> ?", models.ApprovalRejected)
	}
	res := query.Updates(map[string]interface{}{
		"is_blocked":     blocked,
		"blocked_reason": reason,
	})
	if res.Error != nil {
		return false, fmt.Errorf("failed to update block flag for vendor %s: %w", id, res.Error)
	}
	return res.RowsAffected > 0, nil
}
