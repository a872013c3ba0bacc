package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Learner roles. Admins and reviewers can answer questions for QA purposes
// but never earn points or appear on leaderboards.
const (
	RoleLearner  = "learner"
	RoleAdmin    = "admin"
	RoleReviewer = "reviewer"
)

// Learner is an end-user account taking quizzes. UID is assigned by the
// identity provider and is the key every external caller uses.
type Learner struct {
	ID  string `gorm:"primaryKey;type:uuid" json:"id"`
	UID string `gorm:"uniqueIndex;not null" json:"uid"`

	Name  string `json:"name"`
	Phone string `json:"phone,omitempty"`
	Grade string `gorm:"index" json:"grade"`
	Role  string `gorm:"type:varchar(16);default:'learner'" json:"role"`

	// Gamification state, mutated only by CheckAnswerService.
	Points            int        `gorm:"default:0" json:"points"`
	Streak            int        `gorm:"default:0" json:"streak"`
	StreakLastUpdated *time.Time `json:"streak_last_updated,omitempty"`

	Timestamps
}

// BeforeCreate assigns the UUID client-side so the model works on any
// dialect.
func (l *Learner) BeforeCreate(_ *gorm.DB) error {
	if l.ID == "" {
		l.ID = uuid.NewString()
	}
	return nil
}

// Timestamps adds GORM auto-times
type Timestamps struct {
	CreatedAt time.Time      `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time      `json:"updated_at" gorm:"autoUpdateTime"`
	DeletedAt gorm.DeletedAt `json:"deleted_at,omitempty" gorm:"index"`
}
