// handlers/question_routes.go
package handlers

import (
	"errors"
	"strconv"

	"quizlearn-backend/middleware"
	"quizlearn-backend/models"
	"quizlearn-backend/services"
	"quizlearn-backend/utils"

	"github.com/gofiber/fiber/v2"
)

// SetupQuestionRoutes wires subject/question/exam-paper browsing for
// learners and the content-management flows for admins.
func SetupQuestionRoutes(app *fiber.App, questions *services.QuestionService) {
	secured := app.Group("/s", middleware.UserContextMiddleware())

	secured.Post("/questions/:id/favorite", func(c *fiber.Ctx) error {
		return toggleFavorite(c, questions, true)
	})

	secured.Delete("/questions/:id/favorite", func(c *fiber.Ctx) error {
		return toggleFavorite(c, questions, false)
	})

	secured.Get("/subjects", func(c *fiber.Ctx) error {
		subjects, err := questions.ListSubjects()
		if err != nil {
			return utils.NOK(c, fiber.StatusInternalServerError, "internal error")
		}
		return utils.OK(c, subjects)
	})

	secured.Get("/questions", func(c *fiber.Ctx) error {
		subjectID, _ := strconv.Atoi(c.Query("subject_id", "0"))
		page, _ := strconv.Atoi(c.Query("page", "1"))
		size, _ := strconv.Atoi(c.Query("size", "20"))

		list, total, err := questions.ListQuestions(uint(subjectID), page, size)
		if err != nil {
			return utils.NOK(c, fiber.StatusInternalServerError, "internal error")
		}
		return utils.OK(c, fiber.Map{
			"questions": list,
			"total":     total,
			"page":      page,
			"size":      size,
		})
	})

	secured.Get("/exam-papers", func(c *fiber.Ctx) error {
		subjectID, _ := strconv.Atoi(c.Query("subject_id", "0"))
		papers, err := questions.ListExamPapers(uint(subjectID))
		if err != nil {
			return utils.NOK(c, fiber.StatusInternalServerError, "internal error")
		}
		return utils.OK(c, papers)
	})

	admin := app.Group("/s/admin", middleware.UserContextMiddleware(), middleware.RequireAdmin())

	admin.Post("/subjects", func(c *fiber.Ctx) error {
		type Req struct {
			Name  string `json:"name"`
			Grade string `json:"grade"`
		}
		var req Req
		if err := c.BodyParser(&req); err != nil {
			return utils.NOK(c, fiber.StatusBadRequest, "invalid JSON")
		}
		if req.Name == "" {
			return utils.NOK(c, fiber.StatusBadRequest, "name is required")
		}

		subject, err := questions.CreateSubject(req.Name, req.Grade)
		if err != nil {
			return utils.NOK(c, fiber.StatusInternalServerError, "failed to create subject")
		}
		return utils.OK(c, subject)
	})

	admin.Post("/questions", func(c *fiber.Ctx) error {
		var q models.Question
		if err := c.BodyParser(&q); err != nil {
			return utils.NOK(c, fiber.StatusBadRequest, "invalid JSON")
		}
		if q.SubjectID == 0 || q.Text == "" || q.Answer == "" {
			return utils.NOK(c, fiber.StatusBadRequest, "subject_id, text and answer are required")
		}

		if err := questions.CreateQuestion(&q); err != nil {
			if errors.Is(err, services.ErrSubjectNotFound) {
				return utils.NOK(c, fiber.StatusNotFound, err.Error())
			}
			return utils.NOK(c, fiber.StatusInternalServerError, "failed to create question")
		}
		return utils.OK(c, q)
	})

	admin.Put("/questions/:id", func(c *fiber.Ctx) error {
		id, err := strconv.Atoi(c.Params("id"))
		if err != nil {
			return utils.NOK(c, fiber.StatusBadRequest, "invalid question id")
		}

		var updates models.Question
		if err := c.BodyParser(&updates); err != nil {
			return utils.NOK(c, fiber.StatusBadRequest, "invalid JSON")
		}

		q, err := questions.UpdateQuestion(uint(id), &updates)
		if err != nil {
			if errors.Is(err, services.ErrQuestionNotFound) {
				return utils.NOK(c, fiber.StatusNotFound, err.Error())
			}
			return utils.NOK(c, fiber.StatusInternalServerError, "failed to update question")
		}
		return utils.OK(c, q)
	})

	admin.Delete("/questions/:id", func(c *fiber.Ctx) error {
		id, err := strconv.Atoi(c.Params("id"))
		if err != nil {
			return utils.NOK(c, fiber.StatusBadRequest, "invalid question id")
		}
		if err := questions.DeleteQuestion(uint(id)); err != nil {
			if errors.Is(err, services.ErrQuestionNotFound) {
				return utils.NOK(c, fiber.StatusNotFound, err.Error())
			}
			return utils.NOK(c, fiber.StatusInternalServerError, "failed to delete question")
		}
		return utils.OKMessage(c, "question deleted")
	})

	admin.Post("/exam-papers", func(c *fiber.Ctx) error {
		var paper models.ExamPaper
		if err := c.BodyParser(&paper); err != nil {
			return utils.NOK(c, fiber.StatusBadRequest, "invalid JSON")
		}
		if paper.SubjectID == 0 || paper.Name == "" {
			return utils.NOK(c, fiber.StatusBadRequest, "subject_id and name are required")
		}

		if err := questions.CreateExamPaper(&paper); err != nil {
			if errors.Is(err, services.ErrSubjectNotFound) {
				return utils.NOK(c, fiber.StatusNotFound, err.Error())
			}
			return utils.NOK(c, fiber.StatusInternalServerError, "failed to create exam paper")
		}
		return utils.OK(c, paper)
	})
}

func toggleFavorite(c *fiber.Ctx, questions *services.QuestionService, favorite bool) error {
	uid := c.Locals("learner_uid").(string)
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.NOK(c, fiber.StatusBadRequest, "invalid question id")
	}

	if favorite {
		err = questions.FavoriteQuestion(uid, uint(id))
	} else {
		err = questions.UnfavoriteQuestion(uid, uint(id))
	}
	if err != nil {
		if errors.Is(err, services.ErrLearnerNotFound) || errors.Is(err, services.ErrQuestionNotFound) {
			return utils.NOK(c, fiber.StatusNotFound, err.Error())
		}
		return utils.NOK(c, fiber.StatusInternalServerError, "internal error")
	}
	if favorite {
		return utils.OKMessage(c, "question favorited")
	}
	return utils.OKMessage(c, "question unfavorited")
}
