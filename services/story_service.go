package services

import (
	"errors"
	"fmt"
	"log"
	"time"

	"quizlearn-backend/models"

	"github.com/gosimple/slug"
	"gorm.io/gorm"
)

// StoryService manages serialized stories and their chapter release
// schedule.
type StoryService struct {
	DB *gorm.DB

	now func() time.Time
}

func NewStoryService(db *gorm.DB) *StoryService {
	return &StoryService{DB: db, now: time.Now}
}

func (s *StoryService) CreateStory(title, synopsis string) (*models.Story, error) {
	story := models.Story{
		Title:    title,
		Slug:     slug.Make(title),
		Synopsis: synopsis,
	}
	if err := s.DB.Create(&story).Error; err != nil {
		return nil, fmt.Errorf("create story: %w", err)
	}
	return &story, nil
}

// AddChapter appends a chapter. A future PublishAt schedules it; otherwise
// it goes live immediately.
func (s *StoryService) AddChapter(storyID uint, chapter *models.StoryChapter) error {
	var story models.Story
	if err := s.DB.First(&story, storyID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrStoryNotFound
		}
		return err
	}

	chapter.StoryID = story.ID
	if chapter.PublishAt != nil && chapter.PublishAt.After(s.now()) {
		chapter.Status = "scheduled"
	} else {
		chapter.Status = "published"
	}
	return s.DB.Create(chapter).Error
}

func (s *StoryService) ListStories() ([]models.Story, error) {
	var stories []models.Story
	err := s.DB.Order("title ASC").Find(&stories).Error
	return stories, err
}

// GetStory returns a story with its published chapters only.
func (s *StoryService) GetStory(storySlug string) (*models.Story, error) {
	var story models.Story
	err := s.DB.Where("slug = ?", storySlug).
		Preload("Chapters", func(db *gorm.DB) *gorm.DB {
			return db.Where("status = ?", "published").Order("number ASC")
		}).
		First(&story).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrStoryNotFound
	}
	if err != nil {
		return nil, err
	}
	return &story, nil
}

// PublishDueChapters flips scheduled chapters whose time has come. Called by
// the scheduler every minute.
func (s *StoryService) PublishDueChapters() {
	now := s.now()
	var chapters []models.StoryChapter
	err := s.DB.Where("status = ? AND publish_at <= ?", "scheduled", now).
		Find(&chapters).Error
	if err != nil {
		log.Printf("[stories] publish query failed: %v", err)
		return
	}

	for _, c := range chapters {
		c.Status = "published"
		if err := s.DB.Save(&c).Error; err != nil {
			log.Printf("[stories] failed to publish chapter %d: %v", c.ID, err)
		} else {
			log.Printf("[stories] auto-published chapter %d of story %d", c.Number, c.StoryID)
		}
	}
}
