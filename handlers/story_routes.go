// handlers/story_routes.go
package handlers

import (
	"errors"
	"fmt"
	"path/filepath"
	"strconv"
	"time"

	"quizlearn-backend/middleware"
	"quizlearn-backend/models"
	"quizlearn-backend/services"
	"quizlearn-backend/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/gosimple/slug"
)

// SetupStoryRoutes wires story reading for learners and authoring for
// admins.
func SetupStoryRoutes(app *fiber.App, stories *services.StoryService) {
	secured := app.Group("/s", middleware.UserContextMiddleware())

	secured.Get("/stories", func(c *fiber.Ctx) error {
		list, err := stories.ListStories()
		if err != nil {
			return utils.NOK(c, fiber.StatusInternalServerError, "internal error")
		}
		return utils.OK(c, list)
	})

	secured.Get("/stories/:slug", func(c *fiber.Ctx) error {
		story, err := stories.GetStory(c.Params("slug"))
		if err != nil {
			if errors.Is(err, services.ErrStoryNotFound) {
				return utils.NOK(c, fiber.StatusNotFound, err.Error())
			}
			return utils.NOK(c, fiber.StatusInternalServerError, "internal error")
		}
		return utils.OK(c, story)
	})

	admin := app.Group("/s/admin", middleware.UserContextMiddleware(), middleware.RequireAdmin())

	admin.Post("/stories", func(c *fiber.Ctx) error {
		type Req struct {
			Title    string `json:"title"`
			Synopsis string `json:"synopsis"`
		}
		var req Req
		if err := c.BodyParser(&req); err != nil {
			return utils.NOK(c, fiber.StatusBadRequest, "invalid JSON")
		}
		if req.Title == "" {
			return utils.NOK(c, fiber.StatusBadRequest, "title is required")
		}

		story, err := stories.CreateStory(req.Title, req.Synopsis)
		if err != nil {
			return utils.NOK(c, fiber.StatusInternalServerError, "failed to create story")
		}
		return utils.OK(c, story)
	})

	// Multipart: chapter fields plus an optional illustration.
	admin.Post("/stories/:id/chapters", func(c *fiber.Ctx) error {
		storyID, err := strconv.Atoi(c.Params("id"))
		if err != nil {
			return utils.NOK(c, fiber.StatusBadRequest, "invalid story id")
		}

		number, _ := strconv.Atoi(c.FormValue("number"))
		chapter := models.StoryChapter{
			Number: number,
			Title:  c.FormValue("title"),
			Body:   c.FormValue("body"),
		}
		if raw := c.FormValue("publish_at"); raw != "" {
			t, err := time.Parse(time.RFC3339, raw)
			if err != nil {
				return utils.NOK(c, fiber.StatusBadRequest, "publish_at must be RFC3339")
			}
			chapter.PublishAt = &t
		}

		if file, err := c.FormFile("image"); err == nil {
			key := fmt.Sprintf("stories/%d/%s%s", storyID, slug.Make(chapter.Title), filepath.Ext(file.Filename))
			url, err := utils.UploadFileToR2(file, key)
			if err != nil {
				return utils.NOK(c, fiber.StatusInternalServerError, "image upload failed")
			}
			chapter.ImageURL = url
		}

		if err := stories.AddChapter(uint(storyID), &chapter); err != nil {
			if errors.Is(err, services.ErrStoryNotFound) {
				return utils.NOK(c, fiber.StatusNotFound, err.Error())
			}
			return utils.NOK(c, fiber.StatusInternalServerError, "failed to add chapter")
		}
		return utils.OK(c, chapter)
	})
}
