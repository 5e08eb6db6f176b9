package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Invoice status
const (
	InvoiceStatusUnpaid = "unpaid"
	InvoiceStatusPaid   = "paid"
)

type Invoice struct {
	ID        string    `gorm:"type:uuid;primarykey" json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	Number     string     `gorm:"uniqueIndex;not null" json:"number"` // INV-YYYY-NNNN
	ClientID   string     `gorm:"type:uuid;not null;index" json:"clientId"`
	ClientName string     `gorm:"not null" json:"clientName"`
	IssueDate  time.Time  `gorm:"not null;index" json:"date"`
	DueDate    time.Time  `gorm:"not null" json:"dueDate"`
	Hours      float64    `gorm:"not null" json:"hours"`
	Amount     float64    `gorm:"not null" json:"amount"`
	Status     string     `gorm:"not null;default:unpaid;index" json:"status"`
	PaidAt     *time.Time `json:"paidAt,omitempty"`

	// Storage key of the rendered PDF, empty until first download
	PDFKey string `json:"-"`

	Entries []TimeEntry `gorm:"foreignKey:InvoiceID" json:"entries,omitempty"`
}

func (i *Invoice) BeforeCreate(tx *gorm.DB) error {
	if i.ID == "" {
		i.ID = uuid.New().String()
	}
	if i.Status == "" {
		i.Status = InvoiceStatusUnpaid
	}
	return nil
}

func (Invoice) TableName() string {
	return "invoices"
}

func (i *Invoice) IsPaid() bool {
	return i.Status == InvoiceStatusPaid
}

// IsOverdue reports an unpaid invoice past its due date
func (i *Invoice) IsOverdue(now time.Time) bool {
	return !i.IsPaid() && now.After(i.DueDate)
}
