package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"strconv"
	"strings"
	"time"

	"family_law_portal_go/models"

	"gorm.io/gorm"
)

var (
	ErrInvoiceNotFound = errors.New("Invoice not found")
	ErrNothingToBill   = errors.New("No unbilled billable time for this client")
)

// InvoiceFilter narrows the invoice list
type InvoiceFilter struct {
	Query  string
	Tab    string
	Period string
}

// InvoiceStats is the overview shown above the invoice table
type InvoiceStats struct {
	Outstanding  float64
	Paid         float64
	OverdueCount int
	Count        int
}

type InvoiceService struct {
	DB       *gorm.DB
	DueDays  int
	FirmName string
	Storage  StorageProvider
	Render   PDFRenderer
}

func NewInvoiceService(db *gorm.DB, dueDays int, storage StorageProvider) *InvoiceService {
	return &InvoiceService{
		DB:       db,
		DueDays:  dueDays,
		FirmName: "Family Law Portal",
		Storage:  storage,
		Render:   GeneratePDF,
	}
}

// CreateInvoice bills every billable, not yet invoiced entry of the client
func (s *InvoiceService) CreateInvoice(ctx context.Context, clientID string, now time.Time) (*models.Invoice, error) {
	var invoice models.Invoice

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var client models.ClientRecord
		if err := tx.First(&client, "id = ?", clientID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrClientNotFound
			}
			return err
		}

		var entries []models.TimeEntry
		if err := tx.Where("client_id = ? AND billable = ? AND invoice_id IS NULL", clientID, true).
			Order("date ASC").
			Find(&entries).Error; err != nil {
			return err
		}
		if len(entries) == 0 {
			return ErrNothingToBill
		}

		number, err := nextInvoiceNumber(tx, now.Year())
		if err != nil {
			return err
		}

		invoice = models.Invoice{
			Number:     number,
			ClientID:   client.ID,
			ClientName: client.ClientInfo.Name,
			IssueDate:  now,
			DueDate:    now.AddDate(0, 0, s.DueDays),
			Status:     models.InvoiceStatusUnpaid,
		}
		ids := make([]string, 0, len(entries))
		for _, e := range entries {
			invoice.Hours += e.Hours
			invoice.Amount += e.Amount()
			ids = append(ids, e.ID)
		}

		if err := tx.Create(&invoice).Error; err != nil {
			return err
		}
		return tx.Model(&models.TimeEntry{}).Where("id IN ?", ids).Update("invoice_id", invoice.ID).Error
	})
	if err != nil {
		if errors.Is(err, ErrClientNotFound) || errors.Is(err, ErrNothingToBill) {
			return nil, err
		}
		StoreErrors.WithLabelValues("create_invoice").Inc()
		return nil, fmt.Errorf("failed to create invoice: %w", err)
	}

	log.Printf("[INFO] Invoice %s created for client %s (%.2f hours)", invoice.Number, clientID, invoice.Hours)
	return &invoice, nil
}

// nextInvoiceNumber returns INV-<year>-NNNN, one past the highest of the year
func nextInvoiceNumber(tx *gorm.DB, year int) (string, error) {
	prefix := fmt.Sprintf("INV-%d-", year)

	var last []string
	if err := tx.Model(&models.Invoice{}).
		Where("number LIKE ?", prefix+"%").
		Order("LENGTH(number) DESC, number DESC").
		Limit(1).
		Pluck("number", &last).Error; err != nil {
		return "", fmt.Errorf("failed to read invoice sequence: %w", err)
	}

	seq := 1
	if len(last) > 0 {
		n, err := strconv.Atoi(strings.TrimPrefix(last[0], prefix))
		if err != nil {
			return "", fmt.Errorf("malformed invoice number %q", last[0])
		}
		seq = n + 1
	}
	return fmt.Sprintf("%s%04d", prefix, seq), nil
}

// GetInvoice loads an invoice with its billed entries
func (s *InvoiceService) GetInvoice(ctx context.Context, id string) (*models.Invoice, error) {
	var invoice models.Invoice
	err := s.DB.WithContext(ctx).
		Preload("Entries", func(db *gorm.DB) *gorm.DB { return db.Order("date ASC") }).
		First(&invoice, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvoiceNotFound
		}
		StoreErrors.WithLabelValues("get_invoice").Inc()
		return nil, fmt.Errorf("failed to load invoice: %w", err)
	}
	return &invoice, nil
}

// MarkPaid records payment. Paying a paid invoice is a no-op.
func (s *InvoiceService) MarkPaid(ctx context.Context, id string, now time.Time) (*models.Invoice, error) {
	invoice, err := s.GetInvoice(ctx, id)
	if err != nil {
		return nil, err
	}
	if invoice.IsPaid() {
		return invoice, nil
	}

	invoice.Status = models.InvoiceStatusPaid
	invoice.PaidAt = &now
	if err := s.DB.WithContext(ctx).Model(invoice).Updates(map[string]interface{}{
		"status":  models.InvoiceStatusPaid,
		"paid_at": now,
	}).Error; err != nil {
		StoreErrors.WithLabelValues("mark_paid").Inc()
		return nil, fmt.Errorf("failed to mark invoice paid: %w", err)
	}
	return invoice, nil
}

// ListInvoices returns invoices newest first
func (s *InvoiceService) ListInvoices(ctx context.Context, filter InvoiceFilter, now time.Time) ([]models.Invoice, error) {
	query := s.DB.WithContext(ctx).Order("issue_date DESC, number DESC")
	if start, ok := PeriodStart(filter.Period, now); ok {
		query = query.Where("issue_date >= ?", start)
	}
	if filter.Tab == models.InvoiceStatusPaid || filter.Tab == models.InvoiceStatusUnpaid {
		query = query.Where("status = ?", filter.Tab)
	}
	if q := strings.TrimSpace(filter.Query); q != "" {
		like := "%" + strings.ToLower(q) + "%"
		query = query.Where("LOWER(client_name) LIKE ? OR LOWER(number) LIKE ?", like, like)
	}

	var invoices []models.Invoice
	if err := query.Find(&invoices).Error; err != nil {
		StoreErrors.WithLabelValues("list_invoices").Inc()
		return nil, fmt.Errorf("failed to list invoices: %w", err)
	}
	return invoices, nil
}

// SummarizeInvoices computes the overview cards
func SummarizeInvoices(invoices []models.Invoice, now time.Time) InvoiceStats {
	var stats InvoiceStats
	for _, inv := range invoices {
		stats.Count++
		if inv.IsPaid() {
			stats.Paid += inv.Amount
			continue
		}
		stats.Outstanding += inv.Amount
		if inv.IsOverdue(now) {
			stats.OverdueCount++
		}
	}
	return stats
}

// InvoicePDF returns the stored PDF, rendering and storing it on first use
func (s *InvoiceService) InvoicePDF(ctx context.Context, id string) ([]byte, *models.Invoice, error) {
	invoice, err := s.GetInvoice(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	if invoice.PDFKey != "" && s.Storage != nil {
		if rc, _, err := s.Storage.Get(ctx, invoice.PDFKey); err == nil {
			defer rc.Close()
			data, err := io.ReadAll(rc)
			if err == nil {
				return data, invoice, nil
			}
		}
		log.Printf("[WARNING] Stored PDF for invoice %s unavailable, regenerating", invoice.Number)
	}

	html, err := RenderInvoiceHTML(InvoiceDocument{
		FirmName: s.FirmName,
		Invoice:  *invoice,
		Entries:  invoice.Entries,
	})
	if err != nil {
		return nil, nil, err
	}

	data, err := s.Render(ctx, html, DefaultPDFOptions())
	if err != nil {
		return nil, nil, err
	}

	if s.Storage != nil {
		key := InvoicePDFKey(invoice.Number)
		if err := s.Storage.Put(ctx, key, data, "application/pdf"); err != nil {
			log.Printf("[WARNING] Failed to store PDF for invoice %s: %v", invoice.Number, err)
		} else if err := s.DB.WithContext(ctx).Model(invoice).Update("pdf_key", key).Error; err != nil {
			log.Printf("[WARNING] Failed to record PDF key for invoice %s: %v", invoice.Number, err)
		} else {
			invoice.PDFKey = key
		}
	}

	return data, invoice, nil
}

// SendInvoice emails the invoice summary to the client on file
func (s *InvoiceService) SendInvoice(ctx context.Context, id string, mailer Mailer) error {
	_, invoice, err := s.InvoicePDF(ctx, id)
	if err != nil {
		return err
	}

	var client models.ClientRecord
	if err := s.DB.WithContext(ctx).First(&client, "id = ?", invoice.ClientID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrClientNotFound
		}
		return fmt.Errorf("failed to load client: %w", err)
	}
	if client.ClientInfo.Email == "" {
		return fmt.Errorf("client %s has no email address", client.ID)
	}

	var link string
	if s.Storage != nil && invoice.PDFKey != "" {
		link, err = s.Storage.LinkFor(ctx, invoice.PDFKey, 7*24*time.Hour)
		if err != nil {
			log.Printf("[WARNING] No download link for invoice %s: %v", invoice.Number, err)
		}
	}

	email := BuildInvoiceEmail(client.ClientInfo.Email, InvoiceEmailData{Invoice: *invoice, PDFURL: link})
	if err := mailer.Send(ctx, email); err != nil {
		return fmt.Errorf("failed to send invoice: %w", err)
	}
	return nil
}
