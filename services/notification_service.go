package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"family_law_portal_go/config"
	"family_law_portal_go/models"

	"gorm.io/gorm"
)

// ErrMissingNotifyFields is returned when the client name or email is absent
var ErrMissingNotifyFields = errors.New("Missing clientName or clientEmail in request body")

type NotificationService struct {
	DB     *gorm.DB
	Mailer Mailer
	Bus    NotificationBus
	Config *config.Config
}

func NewNotificationService(db *gorm.DB, cfg *config.Config, mailer Mailer, bus NotificationBus) *NotificationService {
	return &NotificationService{DB: db, Config: cfg, Mailer: mailer, Bus: bus}
}

// NotifyLawyer emails the lawyer about a new intake and records a notification
// event. The two writes are independent: a stored event after a failed email
// never happens, but a sent email followed by a failed insert can.
func (s *NotificationService) NotifyLawyer(ctx context.Context, clientName, clientEmail string) (*models.NotificationEvent, error) {
	clientName = strings.TrimSpace(clientName)
	clientEmail = strings.TrimSpace(clientEmail)
	if clientName == "" || clientEmail == "" {
		NotificationsSent.WithLabelValues(OutcomeValidation).Inc()
		return nil, ErrMissingNotifyFields
	}

	if s.Config == nil || !s.Config.MailConfigured() {
		NotificationsSent.WithLabelValues(OutcomeError).Inc()
		return nil, ErrMailNotConfigured
	}

	email := BuildIntakeNotificationEmail(s.Config.LawyerEmail, IntakeNotificationEmailData{
		ClientName:   clientName,
		ClientEmail:  clientEmail,
		DashboardURL: dashboardURL(s.Config),
	})
	if err := s.Mailer.Send(ctx, email); err != nil {
		NotificationsSent.WithLabelValues(OutcomeError).Inc()
		return nil, fmt.Errorf("failed to send lawyer notification: %w", err)
	}

	event := models.NotificationEvent{
		Message:     "New client added: " + clientName,
		ClientEmail: clientEmail,
		Type:        models.NotificationTypeIntakeSubmission,
		Read:        false,
	}
	if err := s.DB.WithContext(ctx).Create(&event).Error; err != nil {
		StoreErrors.WithLabelValues("create_notification").Inc()
		NotificationsSent.WithLabelValues(OutcomeError).Inc()
		return nil, fmt.Errorf("failed to store notification: %w", err)
	}

	if s.Bus != nil {
		if err := s.Bus.Publish(ctx, event); err != nil {
			log.Printf("[NOTIFY] Failed to publish notification %s: %v", event.ID, err)
		}
	}

	NotificationsSent.WithLabelValues(OutcomeSuccess).Inc()
	log.Printf("[NOTIFY] Lawyer notified of new client %s", clientEmail)
	return &event, nil
}

// Latest returns the most recent notification event, or nil when there is none
func (s *NotificationService) Latest(ctx context.Context) (*models.NotificationEvent, error) {
	var events []models.NotificationEvent
	err := s.DB.WithContext(ctx).
		Order("timestamp DESC").
		Limit(1).
		Find(&events).Error
	if err != nil {
		StoreErrors.WithLabelValues("latest_notification").Inc()
		return nil, fmt.Errorf("failed to load latest notification: %w", err)
	}
	if len(events) == 0 {
		return nil, nil
	}
	return &events[0], nil
}

func (s *NotificationService) GetUnread(ctx context.Context, limit int) ([]models.NotificationEvent, error) {
	var events []models.NotificationEvent
	err := s.DB.WithContext(ctx).
		Where("read = ?", false).
		Order("timestamp DESC").
		Limit(limit).
		Find(&events).Error
	return events, err
}

func (s *NotificationService) UnreadCount(ctx context.Context) (int64, error) {
	var count int64
	err := s.DB.WithContext(ctx).Model(&models.NotificationEvent{}).
		Where("read = ?", false).
		Count(&count).Error
	return count, err
}

func (s *NotificationService) MarkAllAsRead(ctx context.Context) error {
	return s.DB.WithContext(ctx).Model(&models.NotificationEvent{}).
		Where("read = ?", false).
		Update("read", true).Error
}

func dashboardURL(cfg *config.Config) string {
	if cfg.AppURL == "" {
		return ""
	}
	return strings.TrimRight(cfg.AppURL, "/") + "/dashboard"
}
