// handlers/streak_routes.go
package handlers

import (
	"errors"

	"quizlearn-backend/middleware"
	"quizlearn-backend/services"
	"quizlearn-backend/utils"

	"github.com/gofiber/fiber/v2"
)

// SetupStreakRoutes exposes the daily-goal streak: track one answered
// question, read the current state.
func SetupStreakRoutes(app *fiber.App, streaks *services.LearnerStreakService, usage *services.UsageService) {
	secured := app.Group("/s", middleware.UserContextMiddleware())

	secured.Post("/streak/track", func(c *fiber.Ctx) error {
		uid := c.Locals("learner_uid").(string)
		info, err := streaks.TrackQuestionAnswered(uid)
		if err != nil {
			return streakError(c, err)
		}
		return utils.OK(c, info)
	})

	secured.Get("/streak", func(c *fiber.Ctx) error {
		uid := c.Locals("learner_uid").(string)
		info, err := streaks.GetStreakInfo(uid)
		if err != nil {
			return streakError(c, err)
		}
		return utils.OK(c, info)
	})

	secured.Post("/usage/question", func(c *fiber.Ctx) error {
		uid := c.Locals("learner_uid").(string)
		status, err := usage.TrackQuestion(uid)
		if err != nil {
			return streakError(c, err)
		}
		return utils.OK(c, status)
	})

	secured.Post("/usage/ad", func(c *fiber.Ctx) error {
		uid := c.Locals("learner_uid").(string)
		status, err := usage.TrackAdWatched(uid)
		if err != nil {
			return streakError(c, err)
		}
		return utils.OK(c, status)
	})

	secured.Get("/usage", func(c *fiber.Ctx) error {
		uid := c.Locals("learner_uid").(string)
		status, err := usage.GetStatus(uid)
		if err != nil {
			return streakError(c, err)
		}
		return utils.OK(c, status)
	})
}

func streakError(c *fiber.Ctx, err error) error {
	if errors.Is(err, services.ErrLearnerNotFound) {
		return utils.NOK(c, fiber.StatusNotFound, err.Error())
	}
	return utils.NOK(c, fiber.StatusInternalServerError, "internal error")
}
