package models

import (
	"strings"
	"time"
)

// LegacyClient is the flat record shape written by the first version of the
// intake screen. It is read only by the legacy migration.
type LegacyClient struct {
	ID          string    `gorm:"type:uuid;primarykey" json:"id"`
	CreatedAt   time.Time `json:"createdAt"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	Phone       string    `json:"phone"`
	CaseType    string    `json:"caseType"`
	Description string    `gorm:"type:text" json:"description"`
	DateOfBirth string    `json:"dateOfBirth"`
	Address     string    `json:"address"`
	Children    string    `gorm:"type:text" json:"children"`
	Employment  string    `json:"employment"`
	Income      string    `json:"income"`
	Notes       string    `gorm:"type:text" json:"notes"`

	Status        string     `json:"status"`
	Priority      string     `json:"priority"`
	BillableHours float64    `json:"billableHours"`
	LastActivity  *time.Time `json:"lastActivity,omitempty"`

	// MigratedTo holds the id of the nested record created from this one
	MigratedTo *string `gorm:"type:uuid" json:"migratedTo,omitempty"`
}

// TableName specifies the table name for LegacyClient model
func (LegacyClient) TableName() string {
	return "legacy_clients"
}

// LegacyOwnerID is the owner id given to records migrated from the flat shape
func LegacyOwnerID(legacyID string) string {
	return "legacy:" + legacyID
}

// ToClientRecord maps the flat shape onto the nested one. Fields with no nested
// counterpart (case type, description) are folded into the lawyer notes.
func (l *LegacyClient) ToClientRecord() ClientRecord {
	rec := NewClientRecord()
	rec.OwnerID = LegacyOwnerID(l.ID)
	rec.CreatedAt = l.CreatedAt
	rec.BillableHours = l.BillableHours
	rec.LastActivity = l.LastActivity

	if IsValidClientStatus(l.Status) {
		rec.Status = l.Status
	}
	if IsValidPriority(l.Priority) {
		rec.Priority = l.Priority
	}

	rec.ClientInfo.Name = l.Name
	rec.ClientInfo.Email = l.Email
	rec.ClientInfo.Mobile = l.Phone
	rec.ClientInfo.DateOfBirth = l.DateOfBirth
	rec.ClientInfo.Address = l.Address
	rec.ClientInfo.Occupation = l.Employment
	rec.ClientInfo.AnnualIncome = l.Income
	rec.Children.Details = l.Children

	var notes []string
	if l.CaseType != "" {
		notes = append(notes, "Case type: "+l.CaseType)
	}
	if l.Description != "" {
		notes = append(notes, "Case details: "+l.Description)
	}
	if l.Notes != "" {
		notes = append(notes, l.Notes)
	}
	rec.Notes = strings.Join(notes, "\n\n")

	return rec
}
