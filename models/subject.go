package models

// Subject groups questions (e.g. "Mathematics Grade 10").
type Subject struct {
	ID    uint   `gorm:"primaryKey" json:"id"`
	Name  string `gorm:"index;not null" json:"name"`
	Slug  string `gorm:"uniqueIndex" json:"slug"`
	Grade string `gorm:"index" json:"grade,omitempty"`

	Timestamps
}

// SubjectPoints is the per-(learner, subject) point subtotal. One row per
// pair, enforced by a composite unique index rather than lookup-before-insert.
type SubjectPoints struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	LearnerID string `gorm:"uniqueIndex:idx_learner_subject;not null" json:"learner_id"`
	SubjectID uint   `gorm:"uniqueIndex:idx_learner_subject;not null" json:"subject_id"`
	Points    int    `gorm:"default:0" json:"points"`

	Subject *Subject `gorm:"foreignKey:SubjectID" json:"subject,omitempty"`

	Timestamps
}
