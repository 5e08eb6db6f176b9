package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Notification types
const (
	NotificationTypeIntakeSubmission = "intake_submission"
)

// NotificationEvent is written once per new intake and consumed by the lawyer
// dashboard's live indicator.
type NotificationEvent struct {
	ID          string    `gorm:"type:uuid;primarykey" json:"id"`
	Message     string    `gorm:"type:text;not null" json:"message"`
	ClientEmail string    `gorm:"not null" json:"clientEmail"`
	Timestamp   time.Time `gorm:"not null;index" json:"timestamp"`
	Type        string    `gorm:"not null;default:intake_submission" json:"type"`
	Read        bool      `gorm:"not null;default:false" json:"read"`
}

func (n *NotificationEvent) BeforeCreate(tx *gorm.DB) error {
	if n.ID == "" {
		n.ID = uuid.New().String()
	}
	if n.Timestamp.IsZero() {
		n.Timestamp = time.Now().UTC()
	}
	return nil
}

func (NotificationEvent) TableName() string {
	return "notifications"
}
