package models

import "time"

// DeviceToken registers a learner device for push delivery.
type DeviceToken struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	LearnerID string `gorm:"index;not null" json:"learner_id"`
	Token     string `gorm:"uniqueIndex;not null" json:"token"`
	Platform  string `gorm:"type:varchar(16)" json:"platform"` // android, ios

	Timestamps
}

// Notification delivery states.
const (
	NotificationPending = "pending"
	NotificationSent    = "sent"
	NotificationFailed  = "failed"
)

// NotificationLog queues outbound push/SMS messages. The scoring and badge
// paths only insert rows; the delivery worker owns the state transitions.
type NotificationLog struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	LearnerID string `gorm:"index;not null" json:"learner_id"`
	Channel   string `gorm:"type:varchar(8)" json:"channel"` // push, sms
	Title     string `json:"title"`
	Body      string `gorm:"type:text" json:"body"`
	Status    string `gorm:"type:varchar(16);default:'pending';index" json:"status"`
	Attempts  int    `gorm:"default:0" json:"attempts"`
	SentAt    *time.Time `json:"sent_at,omitempty"`

	Timestamps
}
