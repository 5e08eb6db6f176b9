package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TimeEntry is a block of work a lawyer logged against a client
type TimeEntry struct {
	ID        string    `gorm:"type:uuid;primarykey" json:"id"`
	CreatedAt time.Time `json:"createdAt"`

	ClientID    string    `gorm:"type:uuid;not null;index" json:"clientId"`
	LawyerID    string    `gorm:"type:uuid;index" json:"lawyerId"`
	Date        time.Time `gorm:"not null;index" json:"date"`
	Description string    `gorm:"type:text;not null" json:"description"`
	Hours       float64   `gorm:"not null" json:"hours"`
	Billable    bool      `gorm:"not null;default:true" json:"billable"`
	Rate        float64   `gorm:"not null;default:0" json:"rate"`

	// Set once the entry has been billed
	InvoiceID *string `gorm:"type:uuid;index" json:"invoiceId,omitempty"`

	Client ClientRecord `gorm:"foreignKey:ClientID" json:"-"`
}

func (t *TimeEntry) BeforeCreate(tx *gorm.DB) error {
	if t.ID == "" {
		t.ID = uuid.New().String()
	}
	return nil
}

func (TimeEntry) TableName() string {
	return "time_entries"
}

// Amount is the billable value of the entry
func (t TimeEntry) Amount() float64 {
	if !t.Billable {
		return 0
	}
	return t.Hours * t.Rate
}
