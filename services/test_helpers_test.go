package services

import (
	"context"
	"testing"

	"family_law_portal_go/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) *gorm.DB {
	dbName := "mem_" + uuid.New().String()
	testDB, err := gorm.Open(sqlite.Open("file:"+dbName+"?mode=memory&cache=shared&_busy_timeout=5000"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, testDB.AutoMigrate(
		&models.User{},
		&models.Session{},
		&models.ClientRecord{},
		&models.NotificationEvent{},
		&models.TimeEntry{},
		&models.Invoice{},
	))

	t.Cleanup(func() {
		if sqlDB, err := testDB.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return testDB
}

func createClient(t *testing.T, db *gorm.DB, owner, name string) *models.ClientRecord {
	rec := models.NewClientRecord()
	rec.OwnerID = owner
	rec.ClientInfo.Name = name
	rec.ClientInfo.Email = owner + "@example.com"
	require.NoError(t, db.Create(&rec).Error)
	return &rec
}

type mockMailer struct {
	mock.Mock
}

func (m *mockMailer) Send(ctx context.Context, email *Email) error {
	args := m.Called(ctx, email)
	return args.Error(0)
}

type mockNotifier struct {
	mock.Mock
}

func (m *mockNotifier) NotifyLawyer(ctx context.Context, clientName, clientEmail string) (*models.NotificationEvent, error) {
	args := m.Called(ctx, clientName, clientEmail)
	event, _ := args.Get(0).(*models.NotificationEvent)
	return event, args.Error(1)
}
