package handlers

import (
	"log"

	"pasar/internal/models"
	"pasar/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// ProductHandler handles the public catalog and the vendor's own product
// management routes.
type ProductHandler struct {
	productService *services.ProductService
	validate       *validator.Validate
}

// NewProductHandler creates a new ProductHandler.
func NewProductHandler(productService *services.ProductService) *ProductHandler {
	return &ProductHandler{
		productService: productService,
		validate:       validator.New(),
	}
}

// RegisterPublicRoutes registers the unauthenticated catalog routes.
func (h *ProductHandler) RegisterPublicRoutes(router fiber.Router) {
	productRoutes := router.Group("/products")
	productRoutes.Get("/", h.HandleListCatalog)
	productRoutes.Get("/:id", h.HandleGetProduct)
}

// RegisterVendorRoutes registers the product-management routes for the
// authenticated vendor.
func (h *ProductHandler) RegisterVendorRoutes(router fiber.Router) {
	productRoutes := router.Group("/vendor/products")
	productRoutes.Get("/", h.HandleListOwnProducts)
	productRoutes.Post("/", h.HandleCreateProduct)
	productRoutes.Put("/:id", h.HandleUpdateProduct)
	productRoutes.Delete("/:id", h.HandleDeleteProduct)
}

// HandleListCatalog returns the products visible to shoppers.
func (h *ProductHandler) HandleListCatalog(c *fiber.Ctx) error {
	products, err := h.productService.ListCatalog()
	if err != nil {
		log.Printf("Error listing catalog: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve products",
			"error":   err.Error(),
		})
	}
	return c.JSON(products)
}

// HandleGetProduct returns one catalog product.
func (h *ProductHandler) HandleGetProduct(c *fiber.Ctx) error {
	productID := c.Params("id")
	product, err := h.productService.GetProduct(productID)
	if err != nil {
		return c.Status(statusForError(err)).JSON(fiber.Map{
			"message": "Could not retrieve product",
			"error":   err.Error(),
		})
	}
	return c.JSON(product)
}

// HandleListOwnProducts returns all of the caller's products, including
// inactive and blocked ones.
func (h *ProductHandler) HandleListOwnProducts(c *fiber.Ctx) error {
	actor := actorFromCtx(c)
	products, err := h.productService.ListOwnProducts(actor.AccountID)
	if err != nil {
		return c.Status(statusForError(err)).JSON(fiber.Map{
			"message": "Could not retrieve products",
			"error":   err.Error(),
		})
	}
	return c.JSON(products)
}

// ProductRequest represents the payload for creating or updating a listing.
type ProductRequest struct {
	Name        string  `json:"name" validate:"required,min=3,max=100"`
	Description string  `json:"description" validate:"omitempty,max=500"`
	Price       float64 `json:"price" validate:"gte=0"`
	Stock       int     `json:"stock" validate:"gte=0"`
	ImageFile   string  `json:"image_file" validate:"omitempty,max=255"`
	Status      string  `json:"status" validate:"omitempty,oneof=active inactive"`
}

// HandleCreateProduct adds a listing for the caller's vendor profile.
func (h *ProductHandler) HandleCreateProduct(c *fiber.Ctx) error {
	var req ProductRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing product request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	if err := h.validate.Struct(req); err != nil {
		return validationErrorResponse(c, err)
	}

	actor := actorFromCtx(c)
	product := models.Product{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Stock:       req.Stock,
		ImageFile:   req.ImageFile,
		Status:      req.Status,
	}
	if err := h.productService.CreateProduct(actor.AccountID, &product); err != nil {
		log.Printf("Error creating product for %s: %v", actor.AccountID, err)
		return c.Status(statusForError(err)).JSON(fiber.Map{
			"message": "Could not create product",
			"error":   err.Error(),
		})
	}

	return c.Status(fiber.StatusCreated).JSON(product)
}

// HandleUpdateProduct modifies one of the caller's own listings.
func (h *ProductHandler) HandleUpdateProduct(c *fiber.Ctx) error {
	var req ProductRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing product request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	if err := h.validate.Struct(req); err != nil {
		return validationErrorResponse(c, err)
	}

	actor := actorFromCtx(c)
	product := models.Product{
		ID:          c.Params("id"),
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Stock:       req.Stock,
		ImageFile:   req.ImageFile,
		Status:      req.Status,
	}
	if err := h.productService.UpdateProduct(actor.AccountID, &product); err != nil {
		log.Printf("Error updating product %s for %s: %v", product.ID, actor.AccountID, err)
		return c.Status(statusForError(err)).JSON(fiber.Map{
			"message": "Could not update product",
			"error":   err.Error(),
		})
	}

	return c.JSON(product)
}

// HandleDeleteProduct removes one of the caller's own listings.
func (h *ProductHandler) HandleDeleteProduct(c *fiber.Ctx) error {
	actor := actorFromCtx(c)
	productID := c.Params("id")
	if err := h.productService.DeleteProduct(actor.AccountID, productID); err != nil {
		log.Printf("Error deleting product %s for %s: %v", productID, actor.AccountID, err)
		return c.Status(statusForError(err)).JSON(fiber.Map{
			"message": "Could not delete product",
			"error":   err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"message": "Product deleted",
	})
}
