// handlers/answer_routes.go
package handlers

import (
	"errors"

	"quizlearn-backend/middleware"
	"quizlearn-backend/services"
	"quizlearn-backend/utils"

	"github.com/gofiber/fiber/v2"
)

// SetupAnswerRoutes wires the answer-check endpoint. The gateway forwards
// learner identity in headers; the request body carries the attempt.
func SetupAnswerRoutes(app *fiber.App, checkAnswer *services.CheckAnswerService) {
	secured := app.Group("/s", middleware.UserContextMiddleware())

	secured.Post("/answers/check", func(c *fiber.Ctx) error {
		uid := c.Locals("learner_uid").(string)

		type Req struct {
			QuestionID  uint   `json:"question_id"`
			Answer      string `json:"answer"`
			DurationSec int    `json:"duration_sec"`
		}
		var req Req
		if err := c.BodyParser(&req); err != nil {
			return utils.NOK(c, fiber.StatusBadRequest, "invalid JSON")
		}
		if req.QuestionID == 0 {
			return utils.NOK(c, fiber.StatusBadRequest, "question_id is required")
		}

		result, err := checkAnswer.CheckAnswer(uid, req.QuestionID, req.Answer, req.DurationSec)
		if err != nil {
			if errors.Is(err, services.ErrLearnerNotFound) || errors.Is(err, services.ErrQuestionNotFound) {
				return utils.NOK(c, fiber.StatusNotFound, err.Error())
			}
			return utils.NOK(c, fiber.StatusInternalServerError, "error checking answer")
		}
		return utils.OK(c, result)
	})
}
