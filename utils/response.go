// utils/response.go
package utils

import "github.com/gofiber/fiber/v2"

// Every handler responds with the same envelope: {status: OK|NOK, message?, data?}.
// Persistence and evaluation errors never cross the boundary as exceptions.
const (
	StatusOK  = "OK"
	StatusNOK = "NOK"
)

// OK wraps data in a success envelope.
func OK(c *fiber.Ctx, data interface{}) error {
	return c.JSON(fiber.Map{
		"status": StatusOK,
		"data":   data,
	})
}

// OKMessage is a success envelope with a message and no data.
func OKMessage(c *fiber.Ctx, message string) error {
	return c.JSON(fiber.Map{
		"status":  StatusOK,
		"message": message,
	})
}

// NOK is a failure envelope with the given HTTP status.
func NOK(c *fiber.Ctx, httpStatus int, message string) error {
	return c.Status(httpStatus).JSON(fiber.Map{
		"status":  StatusNOK,
		"message": message,
	})
}
