package handlers

import (
	"github.com/devcamper/api/internal/services"
	"github.com/gofiber/fiber/v2"
)

type AuthHandler struct {
	svc *services.AuthService
}

func NewAuthHandler(svc *services.AuthService) *AuthHandler {
	return &AuthHandler{svc: svc}
}

func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var request struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Password string `json:"password"`
		Role     string `json:"role"`
	}

	if err := c.BodyParser(&request); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	user, err := h.svc.Register(c.Context(), request.Name, request.Email, request.Password, request.Role)
	if err != nil {
		return errorResponse(c, err)
	}

	return c.JSON(fiber.Map{"message": "User registered successfully", "user": user})
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var request struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}

	if err := c.BodyParser(&request); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	token, role, err := h.svc.Login(c.Context(), request.Email, request.Password)
	if err != nil {
		return errorResponse(c, err)
	}

	return c.JSON(fiber.Map{
		"token": token,
		"role":  role,
	})
}
