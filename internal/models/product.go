package models

import "gorm.io/gorm"

// Product listing states controlled by the owning vendor.
const (
	ProductActive   = "active"
	ProductInactive = "inactive"
)

// Product represents a listing owned by exactly one vendor. Status is the
// vendor's own toggle; IsBlocked is the administrative override and hides
// the product from the public catalog no matter what Status says.
type Product struct {
	ID            string  `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	VendorID      string  `json:"vendor_id" gorm:"index;type:varchar(36)"`
	Name          string  `json:"name" validate:"required,min=3,max=100"`
	Description   string  `json:"description" validate:"omitempty,max=500"`
	Price         float64 `json:"price" validate:"gte=0"`
	Stock         int     `json:"stock" validate:"gte=0"`
	ImageFile     string  `json:"image_file" gorm:"type:varchar(255)" validate:"omitempty,max=255"`
	Status        string  `json:"status" gorm:"type:varchar(10);default:'active'" validate:"omitempty,oneof=active inactive"`
	IsBlocked     bool    `json:"is_blocked"`
	BlockedReason string  `json:"blocked_reason,omitempty"`
	gorm.Model            // Embed gorm.Model for CreatedAt, UpdatedAt, DeletedAt
}
