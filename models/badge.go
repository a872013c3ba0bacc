package models

import "time"

// Badge: static reward definitions (seeded by admins, never created by the
// scoring path).
type Badge struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	Name     string `gorm:"uniqueIndex;not null" json:"name"`
	Rules    string `gorm:"type:text" json:"rules"`
	ImageURL string `json:"image_url,omitempty"`

	Timestamps
}

// LearnerBadge: awarded instance. At most one row per (learner, badge),
// enforced by the composite unique index.
type LearnerBadge struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	LearnerID string    `gorm:"uniqueIndex:idx_learner_badge;not null" json:"learner_id"`
	BadgeID   uint      `gorm:"uniqueIndex:idx_learner_badge;not null" json:"badge_id"`
	AwardedAt time.Time `gorm:"autoCreateTime" json:"awarded_at"`

	Badge *Badge `gorm:"foreignKey:BadgeID" json:"badge,omitempty"`
}

// SubjectMasteryRule grants a badge once a learner has answered enough
// questions in matching subjects at a high enough correct rate. The rule set
// is configuration passed into BadgeService so tests can substitute fixtures.
type SubjectMasteryRule struct {
	SubjectMatch string // substring matched against Subject.Name
	BadgeName    string
}

// DefaultSubjectMasteryRules covers the eleven curriculum subjects.
var DefaultSubjectMasteryRules = []SubjectMasteryRule{
	{SubjectMatch: "Mathematics", BadgeName: "Mathematics"},
	{SubjectMatch: "Mathematical Literacy", BadgeName: "Mathematical Literacy"},
	{SubjectMatch: "Physical Sciences", BadgeName: "Physical Sciences"},
	{SubjectMatch: "Life Sciences", BadgeName: "Life Sciences"},
	{SubjectMatch: "Geography", BadgeName: "Geography"},
	{SubjectMatch: "History", BadgeName: "History"},
	{SubjectMatch: "English", BadgeName: "English"},
	{SubjectMatch: "Accounting", BadgeName: "Accounting"},
	{SubjectMatch: "Economics", BadgeName: "Economics"},
	{SubjectMatch: "Business Studies", BadgeName: "Business Studies"},
	{SubjectMatch: "Agricultural Sciences", BadgeName: "Agricultural Sciences"},
}
