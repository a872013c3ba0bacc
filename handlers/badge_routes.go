// handlers/badge_routes.go
package handlers

import (
	"errors"
	"fmt"
	"path/filepath"
	"strconv"

	"quizlearn-backend/middleware"
	"quizlearn-backend/models"
	"quizlearn-backend/services"
	"quizlearn-backend/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/gosimple/slug"
	"gorm.io/gorm"
)

// SetupBadgeRoutes wires badge evaluation and the admin badge catalogue.
func SetupBadgeRoutes(app *fiber.App, db *gorm.DB, badges *services.BadgeService) {
	secured := app.Group("/s", middleware.UserContextMiddleware())

	// Re-evaluate the caller's badges; returns only newly granted ones.
	secured.Post("/badges/check", func(c *fiber.Ctx) error {
		uid := c.Locals("learner_uid").(string)

		var learner models.Learner
		if err := db.Where("uid = ?", uid).First(&learner).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return utils.NOK(c, fiber.StatusNotFound, services.ErrLearnerNotFound.Error())
			}
			return utils.NOK(c, fiber.StatusInternalServerError, "internal error")
		}

		granted, err := badges.CheckAndAssignBadges(&learner)
		if err != nil {
			return utils.NOK(c, fiber.StatusInternalServerError, "error evaluating badges")
		}
		if granted == nil {
			granted = []models.Badge{}
		}
		return utils.OK(c, fiber.Map{"new_badges": granted})
	})

	secured.Get("/badges", func(c *fiber.Ctx) error {
		uid := c.Locals("learner_uid").(string)

		var learner models.Learner
		if err := db.Where("uid = ?", uid).First(&learner).Error; err != nil {
			return utils.NOK(c, fiber.StatusNotFound, services.ErrLearnerNotFound.Error())
		}

		var held []models.LearnerBadge
		if err := db.Preload("Badge").
			Where("learner_id = ?", learner.ID).
			Order("awarded_at DESC").
			Find(&held).Error; err != nil {
			return utils.NOK(c, fiber.StatusInternalServerError, "internal error")
		}
		return utils.OK(c, held)
	})

	secured.Get("/leaderboard", func(c *fiber.Ctx) error {
		uid := c.Locals("learner_uid").(string)

		var learner models.Learner
		if err := db.Where("uid = ?", uid).First(&learner).Error; err != nil {
			return utils.NOK(c, fiber.StatusNotFound, services.ErrLearnerNotFound.Error())
		}

		limit, _ := strconv.Atoi(c.Query("limit", "20"))
		entries, err := badges.GradeLeaderboard(learner.Grade, limit)
		if err != nil {
			return utils.NOK(c, fiber.StatusInternalServerError, "internal error")
		}
		return utils.OK(c, fiber.Map{"grade": learner.Grade, "entries": entries})
	})

	admin := app.Group("/s/admin", middleware.UserContextMiddleware(), middleware.RequireAdmin())

	// Seed or update a badge definition; the image goes to R2.
	admin.Post("/badges", func(c *fiber.Ctx) error {
		name := c.FormValue("name")
		rules := c.FormValue("rules")
		if name == "" {
			return utils.NOK(c, fiber.StatusBadRequest, "name is required")
		}

		badge := models.Badge{Name: name, Rules: rules}
		if file, err := c.FormFile("image"); err == nil {
			key := fmt.Sprintf("badges/%s%s", slug.Make(name), filepath.Ext(file.Filename))
			url, err := utils.UploadFileToR2(file, key)
			if err != nil {
				return utils.NOK(c, fiber.StatusInternalServerError, "image upload failed")
			}
			badge.ImageURL = url
		}

		if err := db.Create(&badge).Error; err != nil {
			return utils.NOK(c, fiber.StatusInternalServerError, "failed to create badge")
		}
		return utils.OK(c, badge)
	})

	// Manual trigger for the nightly sweep.
	admin.Post("/badges/sweep", func(c *fiber.Ctx) error {
		go badges.CheckAndAssignBadgesToAllLearners()
		return utils.OKMessage(c, "badge sweep started")
	})
}
