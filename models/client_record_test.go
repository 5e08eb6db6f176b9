package models

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	dbName := "mem_" + uuid.New().String()
	testDB, err := gorm.Open(sqlite.Open("file:"+dbName+"?mode=memory&cache=shared&_busy_timeout=5000"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, testDB.AutoMigrate(&ClientRecord{}, &LegacyClient{}, &TimeEntry{}, &Invoice{}))
	return testDB
}

func TestNewClientRecordDefaults(t *testing.T) {
	rec := NewClientRecord()

	assert.Equal(t, ClientStatusPending, rec.Status)
	assert.Equal(t, "No", rec.ClientInfo.USCitizen)
	assert.Equal(t, "No", rec.Relationship.HasAgreement)
	assert.Equal(t, "No", rec.Relationship.Divorced)
	assert.Equal(t, "Client will order", rec.Relationship.HasMarriageCertificate)
	assert.Empty(t, rec.ClientInfo.Name)
	assert.Empty(t, rec.AdverseParty.Lawyer.Firm)
}

func TestClientRecordPersistsNestedBlocks(t *testing.T) {
	testDB := setupTestDB(t)

	rec := NewClientRecord()
	rec.OwnerID = "owner-1"
	rec.ClientInfo.Name = "Jane Doe"
	rec.ClientInfo.Email = "jane@example.com"
	rec.AdverseParty.Lawyer.Firm = "Smith & Co"
	rec.Assets.RRSP = "40,000"
	require.NoError(t, testDB.Create(&rec).Error)
	assert.NotEmpty(t, rec.ID)

	var loaded ClientRecord
	require.NoError(t, testDB.First(&loaded, "id = ?", rec.ID).Error)
	assert.Equal(t, "Jane Doe", loaded.ClientInfo.Name)
	assert.Equal(t, "Smith & Co", loaded.AdverseParty.Lawyer.Firm)
	assert.Equal(t, "40,000", loaded.Assets.RRSP)
	assert.Equal(t, "Client will order", loaded.Relationship.HasMarriageCertificate)
	assert.Equal(t, ClientStatusPending, loaded.Status)
}

func TestClientRecordOwnerIsUnique(t *testing.T) {
	testDB := setupTestDB(t)

	first := NewClientRecord()
	first.OwnerID = "owner-1"
	require.NoError(t, testDB.Create(&first).Error)

	second := NewClientRecord()
	second.OwnerID = "owner-1"
	assert.Error(t, testDB.Create(&second).Error)
}

func TestCaseLabel(t *testing.T) {
	tests := []struct {
		name string
		edit func(*ClientRecord)
		want string
	}{
		{"no information", func(r *ClientRecord) {}, "Family Law"},
		{"separated after marriage", func(r *ClientRecord) {
			r.Relationship.MarriageDate = "2010-06-01"
			r.Relationship.SeparationDate = "2023-01-15"
		}, "Divorce"},
		{"separated common law", func(r *ClientRecord) {
			r.Relationship.SeparationDate = "2023-01-15"
		}, "Separation"},
		{"divorce granted", func(r *ClientRecord) {
			r.Relationship.Divorced = "Yes"
		}, "Divorced"},
		{"custody only", func(r *ClientRecord) {
			r.Children.CustodySought = "Joint"
		}, "Custody"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := NewClientRecord()
			tt.edit(&rec)
			assert.Equal(t, tt.want, rec.CaseLabel())
		})
	}
}

func TestInitials(t *testing.T) {
	rec := NewClientRecord()
	assert.Equal(t, "", rec.Initials())

	rec.ClientInfo.Name = "jane ann doe"
	assert.Equal(t, "JA", rec.Initials())

	rec.ClientInfo.Name = "Émile"
	assert.Equal(t, "É", rec.Initials())
}

func TestStatusAndPriorityValidators(t *testing.T) {
	for _, s := range ClientStatuses {
		assert.True(t, IsValidClientStatus(s))
	}
	assert.False(t, IsValidClientStatus(""))
	assert.False(t, IsValidClientStatus("archived"))

	assert.True(t, IsValidPriority(""))
	assert.True(t, IsValidPriority(PriorityHigh))
	assert.False(t, IsValidPriority("urgent"))
}
