package models

import "time"

// DailyUsage counts a learner's activity for one calendar day. One row per
// (learner, day), created lazily on first activity.
type DailyUsage struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	LearnerID string    `gorm:"uniqueIndex:idx_learner_day;not null" json:"learner_id"`
	Day       time.Time `gorm:"uniqueIndex:idx_learner_day;type:date;not null" json:"day"`

	QuestionsAnswered int `gorm:"default:0" json:"questions_answered"`
	AdsWatched        int `gorm:"default:0" json:"ads_watched"`

	Timestamps
}

// AdGateInterval: a rewarded ad unlocks this many further questions.
const AdGateInterval = 10
