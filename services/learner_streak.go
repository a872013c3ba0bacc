package services

import (
	"errors"
	"fmt"
	"time"

	"quizlearn-backend/models"

	"gorm.io/gorm"
)

// StreakInfo is the daily-goal view returned to clients.
type StreakInfo struct {
	CurrentStreak          int  `json:"current_streak"`
	LongestStreak          int  `json:"longest_streak"`
	QuestionsAnsweredToday int  `json:"questions_answered_today"`
	QuestionsNeededToday   int  `json:"questions_needed_today"`
	StreakMaintained       bool `json:"streak_maintained"`
}

// LearnerStreakService maintains the daily-goal streak: answer at least
// models.DailyGoalQuestions per day to keep it, miss a day and it resets to
// zero. Deliberately separate from the correct-answer streak the scoring
// path maintains on the Learner row; the two track different behaviors.
type LearnerStreakService struct {
	DB *gorm.DB

	now func() time.Time
}

func NewLearnerStreakService(db *gorm.DB) *LearnerStreakService {
	return &LearnerStreakService{DB: db, now: time.Now}
}

// TrackQuestionAnswered records one answered question against today's quota
// and extends or resets the streak as the day boundary dictates.
func (s *LearnerStreakService) TrackQuestionAnswered(learnerUID string) (*StreakInfo, error) {
	learner, err := s.findLearner(learnerUID)
	if err != nil {
		return nil, err
	}

	var info *StreakInfo
	err = s.DB.Transaction(func(tx *gorm.DB) error {
		var row models.DailyGoalStreak
		if err := lockForUpdate(tx).
			Where(models.DailyGoalStreak{LearnerID: learner.ID}).
			FirstOrCreate(&row).Error; err != nil {
			return err
		}

		now := s.now()
		if row.LastAnsweredAt == nil || !sameDay(*row.LastAnsweredAt, now) {
			// Day rolled over. The streak survives only if yesterday's quota
			// was met (or today's already was, for clock-skewed rows).
			if !quotaMetOn(row.LastQuotaMetAt, now, -1) && !quotaMetOn(row.LastQuotaMetAt, now, 0) {
				row.CurrentStreak = 0
			}
			row.QuestionsToday = 0
		}

		row.QuestionsToday++

		if row.QuestionsToday >= models.DailyGoalQuestions && !quotaMetOn(row.LastQuotaMetAt, now, 0) {
			row.CurrentStreak++
			row.LastQuotaMetAt = &now
			if row.CurrentStreak > row.LongestStreak {
				row.LongestStreak = row.CurrentStreak
			}
		}
		row.LastAnsweredAt = &now

		if err := tx.Save(&row).Error; err != nil {
			return err
		}
		info = s.infoFromRow(&row, now)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("error tracking streak: %w", err)
	}
	return info, nil
}

// GetStreakInfo returns the learner's daily-goal state without mutating it.
// A streak whose quota lapsed yesterday reads as zero even before the next
// TrackQuestionAnswered persists the reset.
func (s *LearnerStreakService) GetStreakInfo(learnerUID string) (*StreakInfo, error) {
	learner, err := s.findLearner(learnerUID)
	if err != nil {
		return nil, err
	}

	var row models.DailyGoalStreak
	err = s.DB.Where("learner_id = ?", learner.ID).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return &StreakInfo{QuestionsNeededToday: models.DailyGoalQuestions}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("error reading streak: %w", err)
	}

	now := s.now()
	if row.LastAnsweredAt == nil || !sameDay(*row.LastAnsweredAt, now) {
		row.QuestionsToday = 0
		if !quotaMetOn(row.LastQuotaMetAt, now, -1) && !quotaMetOn(row.LastQuotaMetAt, now, 0) {
			row.CurrentStreak = 0
		}
	}
	return s.infoFromRow(&row, now), nil
}

func (s *LearnerStreakService) infoFromRow(row *models.DailyGoalStreak, now time.Time) *StreakInfo {
	needed := models.DailyGoalQuestions - row.QuestionsToday
	if needed < 0 {
		needed = 0
	}
	return &StreakInfo{
		CurrentStreak:          row.CurrentStreak,
		LongestStreak:          row.LongestStreak,
		QuestionsAnsweredToday: row.QuestionsToday,
		QuestionsNeededToday:   needed,
		StreakMaintained:       quotaMetOn(row.LastQuotaMetAt, now, 0),
	}
}

func (s *LearnerStreakService) findLearner(uid string) (*models.Learner, error) {
	var learner models.Learner
	if err := s.DB.Where("uid = ?", uid).First(&learner).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrLearnerNotFound
		}
		return nil, fmt.Errorf("error reading streak: %w", err)
	}
	return &learner, nil
}

// quotaMetOn reports whether t falls on now shifted by dayOffset days.
func quotaMetOn(t *time.Time, now time.Time, dayOffset int) bool {
	if t == nil {
		return false
	}
	return sameDay(*t, now.AddDate(0, 0, dayOffset))
}
