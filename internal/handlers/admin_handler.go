package handlers

import (
	"log"

	"pasar/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// AdminHandler handles the privileged lifecycle routes: the vendor
// dashboard, approve/reject decisions, and block/unblock for vendors and
// products. Routes are registered behind the AdminRequired middleware, and
// every service call passes the actor again so the capability check is
// enforced where the mutation happens.
type AdminHandler struct {
	vendorService  *services.VendorService
	productService *services.ProductService
	validate       *validator.Validate
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(vendorService *services.VendorService, productService *services.ProductService) *AdminHandler {
	return &AdminHandler{
		vendorService:  vendorService,
		productService: productService,
		validate:       validator.New(),
	}
}

// RegisterRoutes registers the admin routes with the Fiber app.
func (h *AdminHandler) RegisterRoutes(router fiber.Router) {
	adminRoutes := router.Group("/admin")
	adminRoutes.Get("/vendors", h.HandleListVendors)
	adminRoutes.Post("/vendors/:id/approve", h.HandleApproveVendor)
	adminRoutes.Post("/vendors/:id/reject", h.HandleRejectVendor)
	adminRoutes.Post("/vendors/:id/block", h.HandleBlockVendor)
	adminRoutes.Post("/vendors/:id/unblock", h.HandleUnblockVendor)
	adminRoutes.Post("/products/:id/block", h.HandleBlockProduct)
	adminRoutes.Post("/products/:id/unblock", h.HandleUnblockProduct)
}

// HandleListVendors returns every vendor profile for the dashboard.
func (h *AdminHandler) HandleListVendors(c *fiber.Ctx) error {
	vendors, err := h.vendorService.ListVendors(actorFromCtx(c))
	if err != nil {
		log.Printf("Error listing vendors: %v", err)
		return c.Status(statusForError(err)).JSON(fiber.Map{
			"message": "Could not retrieve vendors",
			"error":   err.Error(),
		})
	}
	return c.JSON(vendors)
}

// HandleApproveVendor approves a pending vendor and triggers the
// activation-code email.
func (h *AdminHandler) HandleApproveVendor(c *fiber.Ctx) error {
	vendorID := c.Params("id")
	if err := h.vendorService.Approve(vendorID, actorFromCtx(c)); err != nil {
		log.Printf("Error approving vendor %s: %v", vendorID, err)
		return c.Status(statusForError(err)).JSON(fiber.Map{
			"message": "Could not approve vendor",
			"error":   err.Error(),
		})
	}
	return c.JSON(fiber.Map{
		"message": "Vendor approved, activation code sent",
	})
}

// ReasonRequest carries the reason attached to a reject or block decision.
type ReasonRequest struct {
	Reason string `json:"reason" validate:"required,max=500"`
}

// HandleRejectVendor rejects a pending vendor with a reason.
func (h *AdminHandler) HandleRejectVendor(c *fiber.Ctx) error {
	var req ReasonRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if err := h.validate.Struct(req); err != nil {
		return validationErrorResponse(c, err)
	}

	vendorID := c.Params("id")
	if err := h.vendorService.Reject(vendorID, actorFromCtx(c), req.Reason); err != nil {
		log.Printf("Error rejecting vendor %s: %v", vendorID, err)
		return c.Status(statusForError(err)).JSON(fiber.Map{
			"message": "Could not reject vendor",
			"error":   err.Error(),
		})
	}
	return c.JSON(fiber.Map{
		"message": "Vendor rejected",
	})
}

// HandleBlockVendor blocks a vendor with a reason.
func (h *AdminHandler) HandleBlockVendor(c *fiber.Ctx) error {
	var req ReasonRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if err := h.validate.Struct(req); err != nil {
		return validationErrorResponse(c, err)
	}

	vendorID := c.Params("id")
	if err := h.vendorService.Block(vendorID, actorFromCtx(c), req.Reason); err != nil {
		log.Printf("Error blocking vendor %s: %v", vendorID, err)
		return c.Status(statusForError(err)).JSON(fiber.Map{
			"message": "Could not block vendor",
			"error":   err.Error(),
		})
	}
	return c.JSON(fiber.Map{
		"message": "Vendor blocked",
	})
}

// HandleUnblockVendor lifts the block on a vendor.
func (h *AdminHandler) HandleUnblockVendor(c *fiber.Ctx) error {
	vendorID := c.Params("id")
	if err := h.vendorService.Unblock(vendorID, actorFromCtx(c)); err != nil {
		log.Printf("Error unblocking vendor %s: %v", vendorID, err)
		return c.Status(statusForError(err)).JSON(fiber.Map{
			"message": "Could not unblock vendor",
			"error":   err.Error(),
		})
	}
	return c.JSON(fiber.Map{
		"message": "Vendor unblocked",
	})
}

// HandleBlockProduct hides a product from the catalog.
func (h *AdminHandler) HandleBlockProduct(c *fiber.Ctx) error {
	var req ReasonRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if err := h.validate.Struct(req); err != nil {
		return validationErrorResponse(c, err)
	}

	productID := c.Params("id")
	if err := h.productService.BlockProduct(productID, actorFromCtx(c), req.Reason); err != nil {
		log.Printf("Error blocking product %s: %v", productID, err)
		return c.Status(statusForError(err)).JSON(fiber.Map{
			"message": "Could not block product",
			"error":   err.Error(),
		})
	}
	return c.JSON(fiber.Map{
		"message": "Product blocked",
	})
}

// HandleUnblockProduct restores a blocked product.
func (h *AdminHandler) HandleUnblockProduct(c *fiber.Ctx) error {
	productID := c.Params("id")
	if err := h.productService.UnblockProduct(productID, actorFromCtx(c)); err != nil {
		log.Printf("Error unblocking product %s: %v", productID, err)
		return c.Status(statusForError(err)).JSON(fiber.Map{
			"message": "Could not unblock product",
			"error":   err.Error(),
		})
	}
	return c.JSON(fiber.Map{
		"message": "Product unblocked",
	})
}
