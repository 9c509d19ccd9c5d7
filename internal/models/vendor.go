package models

import "gorm.io/gorm"

// ApprovalStatus is the administrative review state of a vendor profile.
type ApprovalStatus string

const (
	ApprovalPending  ApprovalStatus = "pending"
	ApprovalApproved ApprovalStatus = "approved"
	ApprovalRejected ApprovalStatus = "rejected"
)

// Business types a vendor can register as.
const (
	BusinessRetail       = "retail"
	BusinessWholesale    = "wholesale"
	BusinessManufacturer = "manufacturer"
	BusinessService      = "service"
)

// Identity document types accepted for vendor verification.
const (
	IDProofGST = "gst"
	IDProofPAN = "pan"
)

// VendorProfile holds the business details a user submits to become a
// vendor, bound 1:1 to a User. ApprovalStatus tracks the admin review;
// Activated is only set once the vendor confirms the activation code that
// was issued on approval. IsBlocked is orthogonal to both: an approved and
// activated vendor can still be blocked, and unblocking restores the
// previous state untouched.
type VendorProfile struct {
	ID              string         `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	UserID          string         `json:"user_id" gorm:"uniqueIndex;type:varchar(36)" validate:"required"`
	ShopName        string         `json:"shop_name" gorm:"type:varchar(100)" validate:"required,min=3,max=100"`
	ShopDescription string         `json:"shop_description" validate:"omitempty,max=1000"`
	Address         string         `json:"address" validate:"required,max=500"`
	BusinessType    string         `json:"business_type" gorm:"type:varchar(20)" validate:"required,oneof=retail wholesale manufacturer service"`
	IDType          string         `json:"id_type" gorm:"type:varchar(10)" validate:"required,oneof=gst pan"`
	IDNumber        string         `json:"id_number" gorm:"type:varchar(50)" validate:"required,max=50"`
	IDProofFile     string         `json:"id_proof_file" gorm:"type:varchar(255)" validate:"omitempty,max=255"`
	ApprovalStatus  ApprovalStatus `json:"approval_status" gorm:"type:varchar(10);default:'pending'"`
	RejectionReason string         `json:"rejection_reason,omitempty"`
	ActivationCode  string         `json:"-" gorm:"type:varchar(10)"` // Never serialized
	Activated       bool           `json:"activated"`
	IsBlocked       bool           `json:"is_blocked"`
	BlockedReason   string         `json:"blocked_reason,omitempty"`
	gorm.Model
}

// IsActive reports whether the vendor has completed the full onboarding
// sequence and is not blocked. This is the only way "active" is derived;
// there is deliberately no stored boolean for it.
func (v *VendorProfile) IsActive() bool {
	return v.ApprovalStatus == ApprovalApproved && v.Activated && !v.IsBlocked
}

// AwaitingActivation reports whether the vendor was approved but has not
// yet confirmed the emailed activation code.
func (v *VendorProfile) AwaitingActivation() bool {
	return v.ApprovalStatus == ApprovalApproved && !v.Activated
}
