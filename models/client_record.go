package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Client record status
const (
	ClientStatusPending = "pending"
	ClientStatusActive  = "active"
	ClientStatusClosed  = "closed"
)

// Priority levels
const (
	PriorityHigh   = "high"
	PriorityMedium = "medium"
	PriorityLow    = "low"
)

// ClientStatuses lists the statuses in dashboard tab order
var ClientStatuses = []string{ClientStatusPending, ClientStatusActive, ClientStatusClosed}

type ClientInfo struct {
	HowHeard       string `json:"howHeard"`
	Name           string `gorm:"index" json:"name"`
	DateOfBirth    string `json:"dateOfBirth"`
	PlaceOfBirth   string `json:"placeOfBirth"`
	Citizenship    string `json:"citizenship"`
	SurnameAtBirth string `json:"surnameAtBirth"`
	ArrivedInBC    string `json:"arrivedInBC"`
	USCitizen      string `json:"usCitizen"`
	Address        string `json:"address"`
	MailingAddress string `json:"mailingAddress"`
	Home           string `json:"home"`
	Work           string `json:"work"`
	Mobile         string `json:"mobile"`
	Email          string `json:"email"`
	Occupation     string `json:"occupation"`
	Employer       string `json:"employer"`
	AnnualIncome   string `json:"annualIncome"`
	OtherIncome    string `json:"otherIncome"`
}

type OpposingLawyer struct {
	Name    string `json:"name"`
	Firm    string `json:"firm"`
	Address string `json:"address"`
	Phone   string `json:"phone"`
	Fax     string `json:"fax"`
	Email   string `json:"email"`
}

type AdverseParty struct {
	Name           string         `json:"name"`
	SurnameAtBirth string         `json:"surnameAtBirth"`
	OtherNames     string         `json:"otherNames"`
	DateOfBirth    string         `json:"dateOfBirth"`
	PlaceOfBirth   string         `json:"placeOfBirth"`
	Address        string         `json:"address"`
	ArrivedInBC    string         `json:"arrivedInBC"`
	Occupation     string         `json:"occupation"`
	Employer       string         `json:"employer"`
	Income         string         `json:"income"`
	OtherIncome    string         `json:"otherIncome"`
	Lawyer         OpposingLawyer `gorm:"embedded;embeddedPrefix:lawyer_" json:"lawyer"`
}

type Relationship struct {
	CohabitationDate       string `json:"cohabitationDate"`
	MarriageDate           string `json:"marriageDate"`
	MarriagePlace          string `json:"marriagePlace"`
	SeparationDate         string `json:"separationDate"`
	HasAgreement           string `json:"hasAgreement"`
	Divorced               string `json:"divorced"`
	HasMarriageCertificate string `json:"hasMarriageCertificate"`
}

type Children struct {
	Details       string `gorm:"type:text" json:"details"`
	CustodySought string `gorm:"type:text" json:"custodySought"`
	CustodyTerms  string `gorm:"type:text" json:"custodyTerms"`
}

type Assets struct {
	Summary           string `gorm:"type:text" json:"summary"`
	RRSP              string `json:"rrsp"`
	PrivatePensions   string `json:"privatePensions"`
	Investments       string `json:"investments"`
	BusinessInterests string `json:"businessInterests"`
	Automobiles       string `json:"automobiles"`
	Debts             string `gorm:"type:text" json:"debts"`
}

// ClientRecord is one client's intake document. Every nested block is always
// present; unanswered questions are empty strings.
type ClientRecord struct {
	ID        string    `gorm:"type:uuid;primarykey" json:"id"`
	OwnerID   string    `gorm:"type:varchar(64);uniqueIndex;not null" json:"ownerId"`
	CreatedAt time.Time `gorm:"index" json:"createdAt"`

	Status        string     `gorm:"not null;default:pending;index" json:"status"`
	Priority      string     `json:"priority,omitempty"`
	BillableHours float64    `gorm:"not null;default:0" json:"billableHours"`
	LastActivity  *time.Time `json:"lastActivity,omitempty"`

	ClientInfo   ClientInfo   `gorm:"embedded;embeddedPrefix:client_" json:"clientInfo"`
	AdverseParty AdverseParty `gorm:"embedded;embeddedPrefix:adverse_" json:"adverseParty"`
	Relationship Relationship `gorm:"embedded;embeddedPrefix:relationship_" json:"relationship"`
	Children     Children     `gorm:"embedded;embeddedPrefix:children_" json:"children"`
	Assets       Assets       `gorm:"embedded;embeddedPrefix:assets_" json:"assets"`

	// Lawyer-only, never rendered back to the client
	Notes string `gorm:"type:text" json:"notes"`
}

// NewClientRecord returns a record carrying the intake form defaults
func NewClientRecord() ClientRecord {
	return ClientRecord{
		Status:     ClientStatusPending,
		ClientInfo: ClientInfo{USCitizen: "No"},
		Relationship: Relationship{
			HasAgreement:           "No",
			Divorced:               "No",
			HasMarriageCertificate: "Client will order",
		},
	}
}

// BeforeCreate hook to generate UUID
func (r *ClientRecord) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.New().String()
	}
	if r.Status == "" {
		r.Status = ClientStatusPending
	}
	return nil
}

// TableName specifies the table name for ClientRecord model
func (ClientRecord) TableName() string {
	return "clients"
}

// CaseLabel is the short case description shown on client cards
func (r *ClientRecord) CaseLabel() string {
	rel := r.Relationship
	switch {
	case strings.EqualFold(rel.Divorced, "yes"):
		return "Divorced"
	case rel.SeparationDate != "" && rel.MarriageDate != "":
		return "Divorce"
	case rel.SeparationDate != "":
		return "Separation"
	case strings.TrimSpace(r.Children.CustodySought) != "":
		return "Custody"
	default:
		return "Family Law"
	}
}

// Initials returns up to two initials of the client's name for avatars
func (r *ClientRecord) Initials() string {
	var initials []rune
	for _, part := range strings.Fields(r.ClientInfo.Name) {
		initials = append(initials, []rune(strings.ToUpper(part))[0])
		if len(initials) == 2 {
			break
		}
	}
	return string(initials)
}

// IsValidClientStatus checks if the status is valid
func IsValidClientStatus(status string) bool {
	for _, s := range ClientStatuses {
		if s == status {
			return true
		}
	}
	return false
}

// IsValidPriority checks if the priority is valid. Empty means unset.
func IsValidPriority(priority string) bool {
	switch priority {
	case "", PriorityHigh, PriorityMedium, PriorityLow:
		return true
	}
	return false
}
