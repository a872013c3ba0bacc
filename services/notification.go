package services

import (
	"fmt"
	"log"
	"time"

	"quizlearn-backend/models"

	"github.com/gosimple/unidecode"
	"gorm.io/gorm"
)

// NotificationService queues push and SMS messages for the delivery worker.
// It satisfies NotificationSink, so enqueue failures surface to the badge
// path as notification failures only, never as grant failures.
type NotificationService struct {
	DB *gorm.DB

	now func() time.Time
}

func NewNotificationService(db *gorm.DB) *NotificationService {
	return &NotificationService{DB: db, now: time.Now}
}

// SendBadgeNotification queues a push message announcing the grant.
func (s *NotificationService) SendBadgeNotification(learner *models.Learner, badgeName string) error {
	return s.EnqueuePush(learner.ID, "New badge earned!",
		fmt.Sprintf("You earned the %q badge. Keep it up!", badgeName))
}

// EnqueuePush stores a pending push row for the worker.
func (s *NotificationService) EnqueuePush(learnerID, title, body string) error {
	n := models.NotificationLog{
		LearnerID: learnerID,
		Channel:   "push",
		Title:     title,
		Body:      body,
		Status:    models.NotificationPending,
	}
	return s.DB.Create(&n).Error
}

// EnqueueSMS stores a pending SMS row. Bodies are transliterated to plain
// ASCII so they fit a single GSM-7 segment regardless of learner names or
// story titles.
func (s *NotificationService) EnqueueSMS(learnerID, body string) error {
	n := models.NotificationLog{
		LearnerID: learnerID,
		Channel:   "sms",
		Body:      unidecode.Unidecode(body),
		Status:    models.NotificationPending,
	}
	return s.DB.Create(&n).Error
}

// SendDailyGoalReminders queues an SMS for every learner with a phone number
// who has not met today's question quota. Called by the evening scheduler.
func (s *NotificationService) SendDailyGoalReminders() {
	now := s.now()
	var learners []models.Learner
	err := s.DB.Raw(`
		SELECT l.* FROM learners l
		LEFT JOIN daily_goal_streaks d ON d.learner_id = l.id
		WHERE l.role = ? AND l.phone <> ''
		  AND (d.id IS NULL OR d.last_quota_met_at IS NULL OR d.last_quota_met_at < ?)
	`, models.RoleLearner, startOfDay(now)).Scan(&learners).Error
	if err != nil {
		log.Printf("[notify] reminder query failed: %v", err)
		return
	}

	for _, l := range learners {
		body := fmt.Sprintf("Hi %s, answer %d questions today to keep your streak alive!",
			l.Name, models.DailyGoalQuestions)
		if err := s.EnqueueSMS(l.ID, body); err != nil {
			log.Printf("[notify] failed to queue reminder for %s: %v", l.UID, err)
		}
	}
}

// RegisterDevice upserts a push token for the learner.
func (s *NotificationService) RegisterDevice(learnerID, token, platform string) error {
	var existing models.DeviceToken
	err := s.DB.Where("token = ?", token).First(&existing).Error
	if err == nil {
		existing.LearnerID = learnerID
		existing.Platform = platform
		return s.DB.Save(&existing).Error
	}
	if err != gorm.ErrRecordNotFound {
		return err
	}
	return s.DB.Create(&models.DeviceToken{
		LearnerID: learnerID,
		Token:     token,
		Platform:  platform,
	}).Error
}
