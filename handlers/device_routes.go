// handlers/device_routes.go
package handlers

import (
	"errors"

	"quizlearn-backend/middleware"
	"quizlearn-backend/models"
	"quizlearn-backend/services"
	"quizlearn-backend/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// SetupDeviceRoutes registers push tokens for the delivery worker.
func SetupDeviceRoutes(app *fiber.App, db *gorm.DB, notifications *services.NotificationService) {
	secured := app.Group("/s", middleware.UserContextMiddleware())

	secured.Post("/devices", func(c *fiber.Ctx) error {
		uid := c.Locals("learner_uid").(string)

		type Req struct {
			Token    string `json:"token"`
			Platform string `json:"platform"`
		}
		var req Req
		if err := c.BodyParser(&req); err != nil {
			return utils.NOK(c, fiber.StatusBadRequest, "invalid JSON")
		}
		if req.Token == "" {
			return utils.NOK(c, fiber.StatusBadRequest, "token is required")
		}

		var learner models.Learner
		if err := db.Where("uid = ?", uid).First(&learner).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return utils.NOK(c, fiber.StatusNotFound, services.ErrLearnerNotFound.Error())
			}
			return utils.NOK(c, fiber.StatusInternalServerError, "internal error")
		}

		if err := notifications.RegisterDevice(learner.ID, req.Token, req.Platform); err != nil {
			return utils.NOK(c, fiber.StatusInternalServerError, "failed to register device")
		}
		return utils.OKMessage(c, "device registered")
	})
}
