package handlers

import (
	"errors"

	"github.com/devcamper/api/internal/models"
	"github.com/devcamper/api/internal/services"
	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// errorResponse translates the service error taxonomy into HTTP statuses.
func errorResponse(c *fiber.Ctx, err error) error {
	var verr *models.ValidationError
	switch {
	case errors.As(err, &verr):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":  "validation failed",
			"fields": verr.Fields,
		})
	case errors.Is(err, services.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, services.ErrNotOwner):
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, services.ErrDuplicateName),
		errors.Is(err, services.ErrDuplicateReview),
		errors.Is(err, services.ErrEmailInUse):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, services.ErrAddressNotFound):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, services.ErrGeocodingUnavailable):
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, services.ErrInvalidCredentials):
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": err.Error()})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
}

// requestUser extracts the authenticated user id and role set by the auth
// middleware.
func requestUser(c *fiber.Ctx) (primitive.ObjectID, string, error) {
	raw, ok := c.Locals("user_id").(string)
	if !ok || raw == "" {
		return primitive.NilObjectID, "", errors.New("missing authenticated user")
	}
	userID, err := primitive.ObjectIDFromHex(raw)
	if err != nil {
		return primitive.NilObjectID, "", errors.New("invalid authenticated user id")
	}
	role, _ := c.Locals("role").(string)
	return userID, role, nil
}

func parseID(c *fiber.Ctx, param string) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(c.Params(param))
	if err != nil {
		return primitive.NilObjectID, errors.New("invalid id")
	}
	return id, nil
}
