package models

// Result outcomes.
const (
	OutcomeCorrect   = "correct"
	OutcomeIncorrect = "incorrect"
)

// Result is one recorded answer attempt. Append-only: never updated or
// deleted by the scoring path. No row is written for admin/reviewer attempts
// or for favorited questions.
type Result struct {
	ID         uint   `gorm:"primaryKey" json:"id"`
	LearnerID  string `gorm:"index:idx_result_learner_created;not null" json:"learner_id"`
	QuestionID uint   `gorm:"index;not null" json:"question_id"`
	Outcome    string `gorm:"type:varchar(16);check:outcome IN ('correct','incorrect')" json:"outcome"`

	// Seconds spent on the question; forced to 0 on an incorrect outcome.
	DurationSec int `gorm:"default:0" json:"duration_sec"`

	Question *Question `gorm:"foreignKey:QuestionID" json:"question,omitempty"`

	Timestamps
}
