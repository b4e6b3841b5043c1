package routes

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/travigo/revenue/pkg/registry"
)

var errODNotFound = errors.New("Could not find OD matching Origin and Destination")

func sendError(c *fiber.Ctx, err error) error {
	status := fiber.StatusInternalServerError

	if errors.Is(err, registry.ErrServiceNotFound) || errors.Is(err, errODNotFound) {
		status = fiber.StatusNotFound
	}

	return sendErrorStatus(c, status, err.Error())
}

func sendErrorStatus(c *fiber.Ctx, status int, message string) error {
	c.Status(status)
	return c.JSON(fiber.Map{
		"error": message,
	})
}
