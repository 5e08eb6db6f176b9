package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"family_law_portal_go/models"

	"gorm.io/gorm"
)

var (
	ErrClientNotFound  = errors.New("Client not found")
	ErrInvalidStatus   = errors.New("invalid client status")
	ErrInvalidPriority = errors.New("invalid client priority")
)

// Dashboard tabs
const (
	TabAll = "all"
)

type ClientService struct {
	DB *gorm.DB
}

func NewClientService(db *gorm.DB) *ClientService {
	return &ClientService{DB: db}
}

// ListClients returns every record, newest first
func (s *ClientService) ListClients(ctx context.Context) ([]models.ClientRecord, error) {
	var records []models.ClientRecord
	if err := s.DB.WithContext(ctx).Order("created_at DESC").Find(&records).Error; err != nil {
		StoreErrors.WithLabelValues("list_clients").Inc()
		return nil, fmt.Errorf("failed to list clients: %w", err)
	}
	return records, nil
}

// GetClient loads one record. A missing id yields ErrClientNotFound.
func (s *ClientService) GetClient(ctx context.Context, id string) (*models.ClientRecord, error) {
	var rec models.ClientRecord
	if err := s.DB.WithContext(ctx).First(&rec, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrClientNotFound
		}
		StoreErrors.WithLabelValues("get_client").Inc()
		return nil, fmt.Errorf("failed to load client: %w", err)
	}
	return &rec, nil
}

// UpdateClient overwrites the editable content of a record with edited. The
// id, owner, creation time and billed hours are kept from the stored record.
// Concurrent edits are last-writer-wins.
func (s *ClientService) UpdateClient(ctx context.Context, id string, edited *models.ClientRecord) (*models.ClientRecord, error) {
	if !models.IsValidClientStatus(edited.Status) {
		return nil, ErrInvalidStatus
	}
	if !models.IsValidPriority(edited.Priority) {
		return nil, ErrInvalidPriority
	}

	var saved models.ClientRecord
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing models.ClientRecord
		if err := tx.First(&existing, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrClientNotFound
			}
			return err
		}

		next := *edited
		next.ID = existing.ID
		next.OwnerID = existing.OwnerID
		next.CreatedAt = existing.CreatedAt
		next.BillableHours = existing.BillableHours
		touched := NextActivity(existing.LastActivity, time.Now())
		next.LastActivity = &touched

		if err := tx.Save(&next).Error; err != nil {
			return err
		}
		saved = next
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrClientNotFound) {
			return nil, err
		}
		StoreErrors.WithLabelValues("update_client").Inc()
		return nil, fmt.Errorf("failed to update client: %w", err)
	}
	return &saved, nil
}

// NextActivity returns now, or a microsecond past previous when the clock has
// not moved forward, so successive saves always order.
func NextActivity(previous *time.Time, now time.Time) time.Time {
	now = now.UTC().Truncate(time.Microsecond)
	if previous != nil && !now.After(*previous) {
		return previous.UTC().Add(time.Microsecond)
	}
	return now
}

// AddBillableHours adds hours to the record's running total
func (s *ClientService) AddBillableHours(ctx context.Context, id string, hours float64) error {
	return addBillableHours(s.DB.WithContext(ctx), id, hours)
}

func addBillableHours(tx *gorm.DB, id string, hours float64) error {
	result := tx.Model(&models.ClientRecord{}).
		Where("id = ?", id).
		Update("billable_hours", gorm.Expr("billable_hours + ?", hours))
	if result.Error != nil {
		StoreErrors.WithLabelValues("add_billable_hours").Inc()
		return fmt.Errorf("failed to add billable hours: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrClientNotFound
	}
	return nil
}

// ListPending returns records still awaiting review, oldest first
func (s *ClientService) ListPending(ctx context.Context) ([]models.ClientRecord, error) {
	var records []models.ClientRecord
	err := s.DB.WithContext(ctx).
		Where("status = ?", models.ClientStatusPending).
		Order("created_at ASC").
		Find(&records).Error
	if err != nil {
		StoreErrors.WithLabelValues("list_pending").Inc()
		return nil, fmt.Errorf("failed to list pending clients: %w", err)
	}
	return records, nil
}

// FilterClients applies the dashboard search and tab. The name search runs
// first, then the status partition; input order is preserved.
func FilterClients(records []models.ClientRecord, query, tab string) []models.ClientRecord {
	query = strings.ToLower(strings.TrimSpace(query))
	out := make([]models.ClientRecord, 0, len(records))
	for _, r := range records {
		if query != "" && !strings.Contains(strings.ToLower(r.ClientInfo.Name), query) {
			continue
		}
		if tab != "" && tab != TabAll && r.Status != tab {
			continue
		}
		out = append(out, r)
	}
	return out
}

// TabCounts counts search matches per status tab, plus TabAll
func TabCounts(records []models.ClientRecord, query string) map[string]int {
	counts := map[string]int{TabAll: 0}
	for _, s := range models.ClientStatuses {
		counts[s] = 0
	}
	for _, r := range FilterClients(records, query, TabAll) {
		counts[TabAll]++
		counts[r.Status]++
	}
	return counts
}

// NormalizeTab maps unknown tab values to TabAll
func NormalizeTab(tab string) string {
	if models.IsValidClientStatus(tab) {
		return tab
	}
	return TabAll
}
