package services

import (
	"errors"
	"fmt"
	"time"

	"quizlearn-backend/models"

	"gorm.io/gorm"
)

// UsageStatus reports today's counters and whether a rewarded ad is due
// before the learner may continue.
type UsageStatus struct {
	QuestionsAnswered int  `json:"questions_answered"`
	AdsWatched        int  `json:"ads_watched"`
	AdRequired        bool `json:"ad_required"`
}

// UsageService maintains the per-day activity counters that gate free usage
// behind rewarded ads.
type UsageService struct {
	DB *gorm.DB

	now func() time.Time
}

func NewUsageService(db *gorm.DB) *UsageService {
	return &UsageService{DB: db, now: time.Now}
}

// TrackQuestion increments today's question counter for the learner.
func (s *UsageService) TrackQuestion(learnerUID string) (*UsageStatus, error) {
	return s.track(learnerUID, func(u *models.DailyUsage) { u.QuestionsAnswered++ })
}

// TrackAdWatched credits a completed rewarded ad.
func (s *UsageService) TrackAdWatched(learnerUID string) (*UsageStatus, error) {
	return s.track(learnerUID, func(u *models.DailyUsage) { u.AdsWatched++ })
}

// GetStatus returns today's counters without mutating them.
func (s *UsageService) GetStatus(learnerUID string) (*UsageStatus, error) {
	learner, err := s.learnerByUID(learnerUID)
	if err != nil {
		return nil, err
	}
	var usage models.DailyUsage
	err = s.DB.Where("learner_id = ? AND day = ?", learner.ID, s.today()).First(&usage).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return &UsageStatus{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("error reading usage: %w", err)
	}
	return statusFrom(&usage), nil
}

func (s *UsageService) track(learnerUID string, bump func(*models.DailyUsage)) (*UsageStatus, error) {
	learner, err := s.learnerByUID(learnerUID)
	if err != nil {
		return nil, err
	}

	var status *UsageStatus
	err = s.DB.Transaction(func(tx *gorm.DB) error {
		var usage models.DailyUsage
		if err := tx.Where(models.DailyUsage{LearnerID: learner.ID, Day: s.today()}).
			FirstOrCreate(&usage).Error; err != nil {
			return err
		}
		bump(&usage)
		if err := tx.Save(&usage).Error; err != nil {
			return err
		}
		status = statusFrom(&usage)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("error tracking usage: %w", err)
	}
	return status, nil
}

func (s *UsageService) learnerByUID(uid string) (*models.Learner, error) {
	var learner models.Learner
	if err := s.DB.Where("uid = ?", uid).First(&learner).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrLearnerNotFound
		}
		return nil, fmt.Errorf("error reading usage: %w", err)
	}
	return &learner, nil
}

func (s *UsageService) today() time.Time {
	return startOfDay(s.now())
}

// statusFrom derives the ad gate: every AdGateInterval questions must be
// matched by one watched ad before the next block unlocks.
func statusFrom(u *models.DailyUsage) *UsageStatus {
	return &UsageStatus{
		QuestionsAnswered: u.QuestionsAnswered,
		AdsWatched:        u.AdsWatched,
		AdRequired:        u.QuestionsAnswered-u.AdsWatched*models.AdGateInterval >= models.AdGateInterval,
	}
}
