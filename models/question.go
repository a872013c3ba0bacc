package models

import "time"

// Question is an authored quiz item. Answer holds either a JSON-encoded array
// of acceptable strings or a single string; either form may pack alternative
// spellings separated by "|". Immutable from the scoring path's perspective.
type Question struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	SubjectID   uint   `gorm:"index;not null" json:"subject_id"`
	ExamPaperID *uint  `gorm:"index" json:"exam_paper_id,omitempty"`
	Text        string `gorm:"type:text;not null" json:"text"`
	Answer      string `gorm:"type:text;not null" json:"answer"`
	Explanation string `gorm:"type:text" json:"explanation"`
	ImageURL    string `json:"image_url,omitempty"`

	Subject   *Subject   `gorm:"foreignKey:SubjectID" json:"subject,omitempty"`
	ExamPaper *ExamPaper `gorm:"foreignKey:ExamPaperID" json:"exam_paper,omitempty"`

	Timestamps
}

// ExamPaper bundles questions into a past paper (e.g. "November 2023 P1").
type ExamPaper struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	SubjectID uint       `gorm:"index;not null" json:"subject_id"`
	Name      string     `gorm:"not null" json:"name"`
	Year      int        `json:"year"`
	PublishAt *time.Time `json:"publish_at,omitempty"`
	Published bool       `gorm:"default:true" json:"published"`

	Subject *Subject `gorm:"foreignKey:SubjectID" json:"subject,omitempty"`

	Timestamps
}

// FavoriteQuestion marks a question the learner saved for revision.
// Favorited questions are excluded from scoring entirely.
type FavoriteQuestion struct {
	ID         uint   `gorm:"primaryKey" json:"id"`
	LearnerID  string `gorm:"uniqueIndex:idx_learner_favorite;not null" json:"learner_id"`
	QuestionID uint   `gorm:"uniqueIndex:idx_learner_favorite;not null" json:"question_id"`

	Timestamps
}
