// services/scheduler.go
package services

import (
	"log"
	"time"

	"quizlearn-backend/models"

	"github.com/go-co-op/gocron/v2"
)

// StartSchedulers wires the periodic jobs: chapter/paper publishing every
// minute, the nightly badge sweep, and the evening daily-goal reminder.
func StartSchedulers(stories *StoryService, questions *QuestionService, badges *BadgeService, notifications *NotificationService) {
	sched, err := gocron.NewScheduler()
	if err != nil {
		log.Printf("[scheduler] init failed: %v", err)
		return
	}
	sched.Start()

	_, _ = sched.NewJob(
		gocron.DurationJob(1*time.Minute),
		gocron.NewTask(func() {
			stories.PublishDueChapters()
			questions.PublishDuePapers()
		}),
	)

	_, _ = sched.NewJob(
		gocron.CronJob("0 2 * * *", false),
		gocron.NewTask(badges.CheckAndAssignBadgesToAllLearners),
	)

	_, _ = sched.NewJob(
		gocron.CronJob("0 18 * * *", false),
		gocron.NewTask(notifications.SendDailyGoalReminders),
	)
}

// PublishDuePapers flips scheduled exam papers whose publish time passed.
func (s *QuestionService) PublishDuePapers() {
	var papers []models.ExamPaper
	now := time.Now()
	err := s.DB.Where("published = ? AND publish_at IS NOT NULL AND publish_at <= ?", false, now).
		Find(&papers).Error
	if err != nil {
		log.Printf("[scheduler] paper query failed: %v", err)
		return
	}

	for _, p := range papers {
		p.Published = true
		p.PublishAt = nil
		if err := s.DB.Save(&p).Error; err != nil {
			log.Printf("[scheduler] failed to publish paper %d: %v", p.ID, err)
		} else {
			log.Printf("[scheduler] auto-published exam paper: %s", p.Name)
		}
	}
}
