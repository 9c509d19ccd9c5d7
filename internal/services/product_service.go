package services

import (
	"errors"
	"fmt"
	"log"

	"pasar/internal/models"
	"pasar/internal/repositories"
	"pasar/pkg/rabbitmq"
)

// ProductService handles product listings. Vendors manage their own
// products, but only while they are fully active; admins can block any
// product, which removes it from the catalog regardless of its status.
type ProductService struct {
	productRepo repositories.ProductRepository
	vendorRepo  repositories.VendorRepository
	mqClient    *rabbitmq.Client
}

// NewProductService creates a new ProductService.
func NewProductService(productRepo repositories.ProductRepository, vendorRepo repositories.VendorRepository, mqClient *rabbitmq.Client) *ProductService {
	return &ProductService{
		productRepo: productRepo,
		vendorRepo:  vendorRepo,
		mqClient:    mqClient,
	}
}

// ListCatalog returns the products visible to shoppers: active, not
// blocked, and owned by a vendor that is itself active and not blocked.
func (s *ProductService) ListCatalog() ([]models.Product, error) {
	products, err := s.productRepo.GetVisible()
	if err != nil {
		return nil, err
	}

	vendorOK := make(map[string]bool)
	catalog := make([]models.Product, 0, len(products))
	for _, p := range products {
		ok, known := vendorOK[p.VendorID]
		if !known {
			vendor, err := s.vendorRepo.GetByID(p.VendorID)
			ok = err == nil && vendor.IsActive()
			vendorOK[p.VendorID] = ok
		}
		if ok {
			catalog = append(catalog, p)
		}
	}
	return catalog, nil
}

// GetProduct returns a single catalog product. Blocked products and
// products of non-active vendors are reported as not found rather than
// revealing why they are hidden.
func (s *ProductService) GetProduct(id string) (*models.Product, error) {
	product, err := s.productRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product.IsBlocked || product.Status != models.ProductActive {
		return nil, repositories.ErrProductNotFound
	}
	vendor, err := s.vendorRepo.GetByID(product.VendorID)
	if err != nil || !vendor.IsActive() {
		return nil, repositories.ErrProductNotFound
	}
	return product, nil
}

// ListOwnProducts returns every product of the caller's vendor profile,
// including inactive and blocked ones.
func (s *ProductService) ListOwnProducts(accountID string) ([]models.Product, error) {
	vendor, err := s.vendorRepo.GetByUserID(accountID)
	if err != nil {
		return nil, err
	}
	return s.productRepo.GetByVendor(vendor.ID)
}

// CreateProduct adds a listing for the caller's vendor profile.
func (s *ProductService) CreateProduct(accountID string, product *models.Product) error {
	vendor, err := s.activeVendor(accountID)
	if err != nil {
		return err
	}

	product.ID = ""
	product.VendorID = vendor.ID
	product.IsBlocked = false
	product.BlockedReason = ""
	if product.Status == "" {
		product.Status = models.ProductActive
	}
	return s.productRepo.Create(product)
}

// UpdateProduct modifies one of the caller's own listings. The admin block
// fields cannot be touched this way.
func (s *ProductService) UpdateProduct(accountID string, product *models.Product) error {
	vendor, err := s.activeVendor(accountID)
	if err != nil {
		return err
	}

	existing, err := s.productRepo.GetByID(product.ID)
	if err != nil {
		return err
	}
	if existing.VendorID != vendor.ID {
		return ErrForbidden
	}

	product.VendorID = existing.VendorID
	product.IsBlocked = existing.IsBlocked
	product.BlockedReason = existing.BlockedReason
	if product.Status == "" {
		product.Status = existing.Status
	}
	return s.productRepo.Update(product)
}

// DeleteProduct removes one of the caller's own listings.
func (s *ProductService) DeleteProduct(accountID, productID string) error {
	vendor, err := s.activeVendor(accountID)
	if err != nil {
		return err
	}

	existing, err := s.productRepo.GetByID(productID)
	if err != nil {
		return err
	}
	if existing.VendorID != vendor.ID {
		return ErrForbidden
	}
	return s.productRepo.Delete(productID)
}

// BlockProduct hides a product from the catalog until it is unblocked.
func (s *ProductService) BlockProduct(productID string, actor models.Actor, reason string) error {
	if !actor.IsAdmin {
		return ErrForbidden
	}

	won, err := s.productRepo.SetBlocked(productID, true, reason)
	if err != nil {
		return err
	}
	if !won {
		return repositories.ErrProductNotFound
	}

	s.publishEvent(rabbitmq.EventProductBlocked, map[string]interface{}{
		"product_id": productID,
		"admin_id":   actor.AccountID,
		"reason":     reason,
	})
	return nil
}

// UnblockProduct restores a blocked product. The vendor's own status field
// is untouched, so the listing reappears in whatever state it was blocked in.
func (s *ProductService) UnblockProduct(productID string, actor models.Actor) error {
	if !actor.IsAdmin {
		return ErrForbidden
	}

	won, err := s.productRepo.SetBlocked(productID, false, "")
	if err != nil {
		return err
	}
	if !won {
		return repositories.ErrProductNotFound
	}

	s.publishEvent(rabbitmq.EventProductUnblocked, map[string]interface{}{
		"product_id": productID,
		"admin_id":   actor.AccountID,
	})
	return nil
}

// activeVendor loads the caller's vendor profile and checks it may manage
// products right now.
func (s *ProductService) activeVendor(accountID string) (*models.VendorProfile, error) {
	vendor, err := s.vendorRepo.GetByUserID(accountID)
	if err != nil {
		if errors.Is(err, repositories.ErrVendorNotFound) {
			return nil, ErrNotApproved
		}
		return nil, fmt.Errorf("failed to load vendor profile: %w", err)
	}
	if !vendor.IsActive() {
		return nil, ErrNotApproved
	}
	return vendor, nil
}

func (s *ProductService) publishEvent(event string, payload map[string]interface{}) {
	if s.mqClient == nil {
		return
	}
	if err := s.mqClient.PublishVendorEvent(event, payload); err != nil {
		log.Printf("Warning: failed to publish %s event: %v", event, err)
	}
}
