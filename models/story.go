package models

import "time"

// Story is a serialized fiction title learners read between quizzes.
type Story struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	Title    string `gorm:"not null" json:"title"`
	Slug     string `gorm:"uniqueIndex" json:"slug"`
	Synopsis string `gorm:"type:text" json:"synopsis"`
	CoverURL string `json:"cover_url,omitempty"`

	Chapters []StoryChapter `gorm:"foreignKey:StoryID" json:"chapters,omitempty"`

	Timestamps
}

// StoryChapter is released on a schedule: rows with a future PublishAt stay
// hidden until the publish job flips Status.
type StoryChapter struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	StoryID  uint   `gorm:"index;not null" json:"story_id"`
	Number   int    `gorm:"not null" json:"number"`
	Title    string `json:"title"`
	Body     string `gorm:"type:text" json:"body"`
	ImageURL string `json:"image_url,omitempty"`

	Status    string     `gorm:"type:varchar(16);default:'draft'" json:"status"` // draft, scheduled, published
	PublishAt *time.Time `json:"publish_at,omitempty"`

	Timestamps
}
