package models

import "time"

// DailyGoalStreak is the daily-quota streak: answer at least
// DailyGoalQuestions per day to keep it alive, miss a day and it resets.
// This is a separate feature from Learner.Streak (the correct-answer streak
// maintained by the scoring path); the two are intentionally not merged.
type DailyGoalStreak struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	LearnerID string `gorm:"uniqueIndex;not null" json:"learner_id"`

	CurrentStreak  int `gorm:"default:0" json:"current_streak"`
	LongestStreak  int `gorm:"default:0" json:"longest_streak"`
	QuestionsToday int `gorm:"default:0" json:"questions_today"`

	LastAnsweredAt *time.Time `json:"last_answered_at,omitempty"`
	LastQuotaMetAt *time.Time `json:"last_quota_met_at,omitempty"`

	Timestamps
}

// DailyGoalQuestions is the quota that keeps a DailyGoalStreak alive.
const DailyGoalQuestions = 5
