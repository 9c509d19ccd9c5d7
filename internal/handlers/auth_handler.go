package handlers

import (
	"errors"
	"fmt"
	"log"

	"pasar/internal/services"
	"pasar/pkg/mailer"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// AuthHandler handles HTTP requests for registration and login.
type AuthHandler struct {
	authService         *services.AuthService
	registrationService *services.RegistrationService
	validate            *validator.Validate
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService *services.AuthService, registrationService *services.RegistrationService) *AuthHandler {
	return &AuthHandler{
		authService:         authService,
		registrationService: registrationService,
		validate:            validator.New(),
	}
}

// RegisterRoutes registers the authentication routes with the Fiber app.
func (h *AuthHandler) RegisterRoutes(router fiber.Router) {
	authRoutes := router.Group("/auth")
	authRoutes.Post("/register", h.HandleRegister)
	authRoutes.Post("/register/verify", h.HandleVerifyRegistration)
	authRoutes.Post("/register/resend", h.HandleResendCode)
	authRoutes.Post("/login", h.HandleLogin)
}

// RegisterRequest represents the request body for starting a registration.
type RegisterRequest struct {
	Username string `json:"username" validate:"required,min=3,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

// HandleRegister starts a registration: it stores a pending session and
// emails the verification code. No account exists until the code is
// confirmed.
func (h *AuthHandler) HandleRegister(c *fiber.Ctx) error {
	var req RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing register request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	if err := h.validate.Struct(req); err != nil {
		return validationErrorResponse(c, err)
	}

	token, err := h.registrationService.BeginRegistration(c.Context(), req.Username, req.Email, req.Password)
	if err != nil {
		var deliveryErr *mailer.DeliveryError
		if errors.As(err, &deliveryErr) {
			// The session exists, only the email bounced. The client can
			// ask for a resend with the same token.
			return c.Status(fiber.StatusAccepted).JSON(fiber.Map{
				"message": "Registration started, but the verification email could not be delivered",
				"token":   token,
			})
		}
		log.Printf("Error starting registration for %s: %v", req.Username, err)
		return c.Status(statusForError(err)).JSON(fiber.Map{
			"message": "Registration failed",
			"error":   err.Error(),
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Verification code sent",
		"token":   token,
	})
}

// VerifyRequest represents the request body for confirming a registration.
type VerifyRequest struct {
	Token string `json:"token" validate:"required"`
	Code  string `json:"code" validate:"required,len=6,numeric"`
}

// HandleVerifyRegistration confirms the emailed code and creates the account.
func (h *AuthHandler) HandleVerifyRegistration(c *fiber.Ctx) error {
	var req VerifyRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing verify request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	if err := h.validate.Struct(req); err != nil {
		return validationErrorResponse(c, err)
	}

	accountID, err := h.registrationService.ConfirmRegistration(c.Context(), req.Token, req.Code)
	if err != nil {
		log.Printf("Error confirming registration: %v", err)
		return c.Status(statusForError(err)).JSON(fiber.Map{
			"message": "Verification failed",
			"error":   err.Error(),
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Account created",
		"user_id": accountID,
	})
}

// ResendRequest represents the request body for re-sending the code.
type ResendRequest struct {
	Token string `json:"token" validate:"required"`
}

// HandleResendCode re-sends the verification code of a pending session.
func (h *AuthHandler) HandleResendCode(c *fiber.Ctx) error {
	var req ResendRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing resend request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	if err := h.validate.Struct(req); err != nil {
		return validationErrorResponse(c, err)
	}

	if err := h.registrationService.ResendCode(c.Context(), req.Token); err != nil {
		var deliveryErr *mailer.DeliveryError
		if errors.As(err, &deliveryErr) {
			return c.Status(fiber.StatusAccepted).JSON(fiber.Map{
				"message": "Verification email could not be delivered, try again later",
			})
		}
		log.Printf("Error resending verification code: %v", err)
		return c.Status(statusForError(err)).JSON(fiber.Map{
			"message": "Resend failed",
			"error":   err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"message": "Verification code sent",
	})
}

// LoginRequest represents the request body for login.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// HandleLogin handles user login and issues a JWT token.
func (h *AuthHandler) HandleLogin(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing login request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	if err := h.validate.Struct(req); err != nil {
		return validationErrorResponse(c, err)
	}

	token, err := h.authService.LoginUser(req.Username, req.Password)
	if err != nil {
		log.Printf("Error during login for user %s: %v", req.Username, err)
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"message": "Authentication failed",
			"error":   err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"message": "Login successful",
		"token":   token,
	})
}

// validationErrorResponse renders validator failures field-by-field.
func validationErrorResponse(c *fiber.Ctx, err error) error {
	validationErrors := err.(validator.ValidationErrors)
	errorMessages := make(map[string]string)
	for _, e := range validationErrors {
		errorMessages[e.Field()] = fmt.Sprintf("Field '%s' failed on the '%s' tag", e.Field(), e.Tag())
	}
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"message": "Validation failed",
		"errors":  errorMessages,
	})
}
