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
	ErrMissingFields     = errors.New("Missing required fields")
	ErrInvalidHours      = errors.New("Hours must be between 0 and 24")
	ErrTimeEntryNotFound = errors.New("Time entry not found")
	ErrTimeEntryInvoiced = errors.New("Time entry has already been invoiced")
)

// Time entry tabs
const (
	TimeTabBillable    = "billable"
	TimeTabNonBillable = "non-billable"
)

// Reporting periods
const (
	PeriodToday   = "today"
	PeriodWeek    = "week"
	PeriodMonth   = "month"
	PeriodQuarter = "quarter"
	PeriodYear    = "year"
	PeriodAll     = "all"
)

// DateLayout is the wire format of dates entered on forms
const DateLayout = "2006-01-02"

// TimeEntryInput is what the lawyer fills in on the time tracking form
type TimeEntryInput struct {
	ClientID    string
	LawyerID    string
	Date        string
	Description string
	Hours       float64
	Billable    bool
	Rate        float64
}

// TimeEntryFilter narrows the time tracking list
type TimeEntryFilter struct {
	Query  string
	Tab    string
	Period string
}

// TimeSummary is the overview shown above the time entry table
type TimeSummary struct {
	TotalHours     float64
	BillableHours  float64
	BillableAmount float64
	HoursThisWeek  float64
	UnbilledAmount float64
}

type TimeEntryService struct {
	DB          *gorm.DB
	DefaultRate float64
}

func NewTimeEntryService(db *gorm.DB, defaultRate float64) *TimeEntryService {
	return &TimeEntryService{DB: db, DefaultRate: defaultRate}
}

// CreateTimeEntry logs work against a client. Billable hours are added to the
// client's running total in the same transaction.
func (s *TimeEntryService) CreateTimeEntry(ctx context.Context, input TimeEntryInput) (*models.TimeEntry, error) {
	description := strings.TrimSpace(input.Description)
	if input.ClientID == "" || description == "" || input.Date == "" || input.Hours == 0 {
		return nil, ErrMissingFields
	}
	if input.Hours < 0 || input.Hours > 24 {
		return nil, ErrInvalidHours
	}
	date, err := time.Parse(DateLayout, input.Date)
	if err != nil {
		return nil, fmt.Errorf("invalid date %q: %w", input.Date, err)
	}

	rate := input.Rate
	if rate <= 0 {
		rate = s.DefaultRate
	}

	entry := &models.TimeEntry{
		ClientID:    input.ClientID,
		LawyerID:    input.LawyerID,
		Date:        date,
		Description: description,
		Hours:       input.Hours,
		Billable:    input.Billable,
		Rate:        rate,
	}

	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.ClientRecord{}).Where("id = ?", input.ClientID).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return ErrClientNotFound
		}
		if err := tx.Omit("Client").Create(entry).Error; err != nil {
			return err
		}
		if entry.Billable {
			return addBillableHours(tx, entry.ClientID, entry.Hours)
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrClientNotFound) {
			return nil, err
		}
		StoreErrors.WithLabelValues("create_time_entry").Inc()
		return nil, fmt.Errorf("failed to create time entry: %w", err)
	}
	return entry, nil
}

// DeleteTimeEntry removes an entry that has not been invoiced yet
func (s *TimeEntryService) DeleteTimeEntry(ctx context.Context, id string) error {
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var entry models.TimeEntry
		if err := tx.First(&entry, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrTimeEntryNotFound
			}
			return err
		}
		if entry.InvoiceID != nil {
			return ErrTimeEntryInvoiced
		}
		if err := tx.Delete(&entry).Error; err != nil {
			return err
		}
		if entry.Billable {
			if err := addBillableHours(tx, entry.ClientID, -entry.Hours); err != nil && !errors.Is(err, ErrClientNotFound) {
				return err
			}
		}
		return nil
	})
}

// ListTimeEntries returns entries newest first with their client preloaded
func (s *TimeEntryService) ListTimeEntries(ctx context.Context, filter TimeEntryFilter, now time.Time) ([]models.TimeEntry, error) {
	query := s.DB.WithContext(ctx).Preload("Client").Order("date DESC, created_at DESC")

	if start, ok := PeriodStart(filter.Period, now); ok {
		query = query.Where("date >= ?", start)
	}
	switch filter.Tab {
	case TimeTabBillable:
		query = query.Where("billable = ?", true)
	case TimeTabNonBillable:
		query = query.Where("billable = ?", false)
	}

	var entries []models.TimeEntry
	if err := query.Find(&entries).Error; err != nil {
		StoreErrors.WithLabelValues("list_time_entries").Inc()
		return nil, fmt.Errorf("failed to list time entries: %w", err)
	}

	q := strings.ToLower(strings.TrimSpace(filter.Query))
	if q == "" {
		return entries, nil
	}
	out := entries[:0]
	for _, e := range entries {
		if strings.Contains(strings.ToLower(e.Client.ClientInfo.Name), q) ||
			strings.Contains(strings.ToLower(e.Description), q) {
			out = append(out, e)
		}
	}
	return out, nil
}

// SummarizeTime computes the overview cards for a set of entries
func SummarizeTime(entries []models.TimeEntry, now time.Time) TimeSummary {
	var sum TimeSummary
	weekStart, _ := PeriodStart(PeriodWeek, now)
	for _, e := range entries {
		sum.TotalHours += e.Hours
		if e.Billable {
			sum.BillableHours += e.Hours
			sum.BillableAmount += e.Amount()
			if e.InvoiceID == nil {
				sum.UnbilledAmount += e.Amount()
			}
		}
		if !e.Date.Before(weekStart) {
			sum.HoursThisWeek += e.Hours
		}
	}
	return sum
}

// PeriodStart returns the first instant of the period containing now. Weeks
// start on Monday. ok is false for PeriodAll and unknown periods.
func PeriodStart(period string, now time.Time) (time.Time, bool) {
	y, m, d := now.Date()
	loc := now.Location()
	today := time.Date(y, m, d, 0, 0, 0, 0, loc)

	switch period {
	case PeriodToday:
		return today, true
	case PeriodWeek:
		offset := (int(today.Weekday()) + 6) % 7
		return today.AddDate(0, 0, -offset), true
	case PeriodMonth:
		return time.Date(y, m, 1, 0, 0, 0, 0, loc), true
	case PeriodQuarter:
		qm := time.Month((int(m)-1)/3*3 + 1)
		return time.Date(y, qm, 1, 0, 0, 0, 0, loc), true
	case PeriodYear:
		return time.Date(y, 1, 1, 0, 0, 0, 0, loc), true
	}
	return time.Time{}, false
}
