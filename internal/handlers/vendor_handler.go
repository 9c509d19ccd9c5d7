package handlers

import (
	"log"

	"pasar/internal/models"
	"pasar/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// VendorHandler handles the vendor-facing lifecycle routes: submitting the
// business profile, confirming the activation code, and the home check.
type VendorHandler struct {
	vendorService *services.VendorService
	validate      *validator.Validate
}

// NewVendorHandler creates a new VendorHandler.
func NewVendorHandler(vendorService *services.VendorService) *VendorHandler {
	return &VendorHandler{
		vendorService: vendorService,
		validate:      validator.New(),
	}
}

// RegisterRoutes registers the vendor routes with the Fiber app. The group
// is expected to already be behind AuthRequired.
func (h *VendorHandler) RegisterRoutes(router fiber.Router) {
	vendorRoutes := router.Group("/vendor")
	vendorRoutes.Post("/profile", h.HandleSubmitProfile)
	vendorRoutes.Get("/profile", h.HandleGetProfile)
	vendorRoutes.Post("/activate", h.HandleActivate)
	vendorRoutes.Get("/home", h.HandleHome)
}

// ProfileRequest represents the business details submitted by a vendor.
type ProfileRequest struct {
	ShopName        string `json:"shop_name" validate:"required,min=3,max=100"`
	ShopDescription string `json:"shop_description" validate:"omitempty,max=1000"`
	Address         string `json:"address" validate:"required,max=500"`
	BusinessType    string `json:"business_type" validate:"required,oneof=retail wholesale manufacturer service"`
	IDType          string `json:"id_type" validate:"required,oneof=gst pan"`
	IDNumber        string `json:"id_number" validate:"required,max=50"`
	IDProofFile     string `json:"id_proof_file" validate:"omitempty,max=255"`
}

// HandleSubmitProfile files the vendor profile for the caller's account.
func (h *VendorHandler) HandleSubmitProfile(c *fiber.Ctx) error {
	var req ProfileRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing profile request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	if err := h.validate.Struct(req); err != nil {
		return validationErrorResponse(c, err)
	}

	actor := actorFromCtx(c)
	profile, err := h.vendorService.SubmitProfile(actor.AccountID, models.VendorProfile{
		ShopName:        req.ShopName,
		ShopDescription: req.ShopDescription,
		Address:         req.Address,
		BusinessType:    req.BusinessType,
		IDType:          req.IDType,
		IDNumber:        req.IDNumber,
		IDProofFile:     req.IDProofFile,
	})
	if err != nil {
		log.Printf("Error submitting vendor profile for %s: %v", actor.AccountID, err)
		return c.Status(statusForError(err)).JSON(fiber.Map{
			"message": "Could not submit vendor profile",
			"error":   err.Error(),
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Vendor profile submitted, awaiting review",
		"vendor":  profile,
	})
}

// HandleGetProfile returns the caller's own vendor profile.
func (h *VendorHandler) HandleGetProfile(c *fiber.Ctx) error {
	actor := actorFromCtx(c)
	profile, err := h.vendorService.GetProfile(actor.AccountID)
	if err != nil {
		return c.Status(statusForError(err)).JSON(fiber.Map{
			"message": "Could not load vendor profile",
			"error":   err.Error(),
		})
	}
	return c.JSON(profile)
}

// ActivateRequest represents the activation code submission.
type ActivateRequest struct {
	Code string `json:"code" validate:"required,len=6,numeric"`
}

// HandleActivate confirms the activation code issued on approval.
func (h *VendorHandler) HandleActivate(c *fiber.Ctx) error {
	var req ActivateRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing activation request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	if err := h.validate.Struct(req); err != nil {
		return validationErrorResponse(c, err)
	}

	actor := actorFromCtx(c)
	if err := h.vendorService.ConfirmActivation(actor.AccountID, req.Code); err != nil {
		log.Printf("Error activating vendor for %s: %v", actor.AccountID, err)
		return c.Status(statusForError(err)).JSON(fiber.Map{
			"message": "Activation failed",
			"error":   err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"message": "Vendor account activated",
	})
}

// HandleHome answers the vendor "home" reachability question: full access,
// activation still required, not approved, or blocked.
func (h *VendorHandler) HandleHome(c *fiber.Ctx) error {
	actor := actorFromCtx(c)
	access, err := h.vendorService.HomeFor(actor.AccountID)
	if err != nil {
		log.Printf("Error checking home access for %s: %v", actor.AccountID, err)
		return c.Status(statusForError(err)).JSON(fiber.Map{
			"message": "Could not determine access",
			"error":   err.Error(),
		})
	}

	switch access {
	case services.HomeGranted:
		return c.JSON(fiber.Map{"access": access})
	case services.HomeActivationRequired:
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"access":   access,
			"redirect": "/api/v1/vendor/activate",
		})
	case services.HomeBlocked:
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"access": access})
	default:
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"access": access})
	}
}
