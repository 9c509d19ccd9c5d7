package repositories

import (
	"errors"

	"pasar/internal/models"
)

// ErrProductNotFound is returned by lookups when no matching product exists.
var ErrProductNotFound = errors.New("product not found")

// ProductRepository defines the interface for product data access.
type ProductRepository interface {
	GetAll() ([]models.Product, error)
	// GetVisible returns the products eligible for the public catalog:
	// active and not administratively blocked. Vendor-level blocking is
	// filtered a layer up, where the vendor profile is at hand.
	GetVisible() ([]models.Product, error)
	GetByVendor(vendorID string) ([]models.Product, error)
	GetByID(id string) (*models.Product, error)
	Create(product *models.Product) error
	Update(product *models.Product) error
	Delete(id string) error
	// SetBlocked flips the admin block flag; reports false when the
	// product does not exist.
	SetBlocked(id string, blocked bool, reason string) (bool, error)
}
