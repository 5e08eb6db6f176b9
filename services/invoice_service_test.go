package services

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"family_law_portal_go/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type stubRenderer struct {
	calls int
	html  string
}

func (r *stubRenderer) render(ctx context.Context, html string, options PDFOptions) ([]byte, error) {
	r.calls++
	r.html = html
	return []byte("%PDF-1.4 stub"), nil
}

func setupBilling(t *testing.T) (*InvoiceService, *TimeEntryService, *models.ClientRecord, *stubRenderer) {
	db := setupTestDB(t)
	storage := NewLocalStorage(t.TempDir())
	invoices := NewInvoiceService(db, 30, storage)
	renderer := &stubRenderer{}
	invoices.Render = renderer.render
	entries := NewTimeEntryService(db, 200)
	client := createClient(t, db, "owner-1", "Alice")
	return invoices, entries, client, renderer
}

func logTime(t *testing.T, svc *TimeEntryService, clientID, date string, hours float64, billable bool) *models.TimeEntry {
	entry, err := svc.CreateTimeEntry(context.Background(), TimeEntryInput{
		ClientID: clientID, Date: date, Description: "Work on file", Hours: hours, Billable: billable,
	})
	require.NoError(t, err)
	return entry
}

func TestCreateInvoice(t *testing.T) {
	invoices, entries, client, _ := setupBilling(t)
	ctx := context.Background()
	now := time.Date(2024, 4, 2, 10, 0, 0, 0, time.UTC)

	billed := logTime(t, entries, client.ID, "2024-03-01", 2, true)
	logTime(t, entries, client.ID, "2024-03-02", 1.5, true)
	unbillable := logTime(t, entries, client.ID, "2024-03-03", 4, false)

	inv, err := invoices.CreateInvoice(ctx, client.ID, now)
	require.NoError(t, err)
	assert.Equal(t, "INV-2024-0001", inv.Number)
	assert.Equal(t, "Alice", inv.ClientName)
	assert.Equal(t, 3.5, inv.Hours)
	assert.Equal(t, 700.0, inv.Amount)
	assert.Equal(t, models.InvoiceStatusUnpaid, inv.Status)
	assert.Equal(t, now.AddDate(0, 0, 30), inv.DueDate)

	var stored models.TimeEntry
	require.NoError(t, invoices.DB.First(&stored, "id = ?", billed.ID).Error)
	require.NotNil(t, stored.InvoiceID)
	assert.Equal(t, inv.ID, *stored.InvoiceID)

	require.NoError(t, invoices.DB.First(&stored, "id = ?", unbillable.ID).Error)
	assert.Nil(t, stored.InvoiceID)

	_, err = invoices.CreateInvoice(ctx, client.ID, now)
	assert.ErrorIs(t, err, ErrNothingToBill)

	logTime(t, entries, client.ID, "2024-04-01", 1, true)
	second, err := invoices.CreateInvoice(ctx, client.ID, now)
	require.NoError(t, err)
	assert.Equal(t, "INV-2024-0002", second.Number)

	_, err = invoices.CreateInvoice(ctx, "missing", now)
	assert.ErrorIs(t, err, ErrClientNotFound)
}

func TestGetInvoiceAndMarkPaid(t *testing.T) {
	invoices, entries, client, _ := setupBilling(t)
	ctx := context.Background()
	now := time.Date(2024, 4, 2, 10, 0, 0, 0, time.UTC)

	logTime(t, entries, client.ID, "2024-03-01", 2, true)
	inv, err := invoices.CreateInvoice(ctx, client.ID, now)
	require.NoError(t, err)

	got, err := invoices.GetInvoice(ctx, inv.ID)
	require.NoError(t, err)
	assert.Len(t, got.Entries, 1)

	_, err = invoices.GetInvoice(ctx, "missing")
	assert.ErrorIs(t, err, ErrInvoiceNotFound)

	paidAt := now.Add(48 * time.Hour)
	paid, err := invoices.MarkPaid(ctx, inv.ID, paidAt)
	require.NoError(t, err)
	assert.True(t, paid.IsPaid())
	require.NotNil(t, paid.PaidAt)

	again, err := invoices.MarkPaid(ctx, inv.ID, paidAt.Add(time.Hour))
	require.NoError(t, err)
	assert.True(t, paidAt.Equal(*again.PaidAt))
}

func TestListInvoicesAndSummary(t *testing.T) {
	invoices, entries, alice, _ := setupBilling(t)
	ctx := context.Background()
	bob := createClient(t, invoices.DB, "owner-2", "Bob")

	logTime(t, entries, alice.ID, "2024-01-05", 1, true)
	old, err := invoices.CreateInvoice(ctx, alice.ID, time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	logTime(t, entries, bob.ID, "2024-03-05", 2, true)
	recent, err := invoices.CreateInvoice(ctx, bob.ID, time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	_, err = invoices.MarkPaid(ctx, recent.ID, time.Date(2024, 3, 12, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	now := time.Date(2024, 3, 20, 0, 0, 0, 0, time.UTC)

	all, err := invoices.ListInvoices(ctx, InvoiceFilter{}, now)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, recent.ID, all[0].ID)

	unpaid, err := invoices.ListInvoices(ctx, InvoiceFilter{Tab: models.InvoiceStatusUnpaid}, now)
	require.NoError(t, err)
	require.Len(t, unpaid, 1)
	assert.Equal(t, old.ID, unpaid[0].ID)

	month, err := invoices.ListInvoices(ctx, InvoiceFilter{Period: PeriodMonth}, now)
	require.NoError(t, err)
	assert.Len(t, month, 1)

	byName, err := invoices.ListInvoices(ctx, InvoiceFilter{Query: "ali"}, now)
	require.NoError(t, err)
	assert.Len(t, byName, 1)

	stats := SummarizeInvoices(all, now)
	assert.Equal(t, 2, stats.Count)
	assert.Equal(t, 200.0, stats.Outstanding)
	assert.Equal(t, 400.0, stats.Paid)
	assert.Equal(t, 1, stats.OverdueCount)
}

func TestInvoicePDF_RendersOnceAndStores(t *testing.T) {
	invoices, entries, client, renderer := setupBilling(t)
	ctx := context.Background()

	logTime(t, entries, client.ID, "2024-03-01", 2, true)
	inv, err := invoices.CreateInvoice(ctx, client.ID, time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	data, got, err := invoices.InvoicePDF(ctx, inv.ID)
	require.NoError(t, err)
	assert.Equal(t, "%PDF-1.4 stub", string(data))
	assert.Equal(t, "invoices/2024/INV-2024-0001.pdf", got.PDFKey)
	assert.Contains(t, renderer.html, "INV-2024-0001")
	assert.Contains(t, renderer.html, "Alice")

	data, _, err = invoices.InvoicePDF(ctx, inv.ID)
	require.NoError(t, err)
	assert.Equal(t, "%PDF-1.4 stub", string(data))
	assert.Equal(t, 1, renderer.calls)
}

func TestInvoicePDF_RenderFailure(t *testing.T) {
	invoices, entries, client, _ := setupBilling(t)
	ctx := context.Background()
	invoices.Render = func(ctx context.Context, html string, options PDFOptions) ([]byte, error) {
		return nil, errors.New("chrome missing")
	}

	logTime(t, entries, client.ID, "2024-03-01", 2, true)
	inv, err := invoices.CreateInvoice(ctx, client.ID, time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	_, _, err = invoices.InvoicePDF(ctx, inv.ID)
	assert.Error(t, err)
}

func TestSendInvoice(t *testing.T) {
	invoices, entries, client, _ := setupBilling(t)
	ctx := context.Background()

	logTime(t, entries, client.ID, "2024-03-01", 2, true)
	inv, err := invoices.CreateInvoice(ctx, client.ID, time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	mailer := new(mockMailer)
	mailer.On("Send", mock.Anything, mock.MatchedBy(func(e *Email) bool {
		return e.To[0] == client.ClientInfo.Email &&
			strings.Contains(e.Subject, inv.Number) &&
			strings.Contains(e.TextBody, "400.00")
	})).Return(nil).Once()

	require.NoError(t, invoices.SendInvoice(ctx, inv.ID, mailer))
	mailer.AssertExpectations(t)
}

func TestNextInvoiceNumber(t *testing.T) {
	db := setupTestDB(t)
	issued := time.Date(2024, 3, 14, 0, 0, 0, 0, time.UTC)
	seed := func(number string) {
		require.NoError(t, db.Create(&models.Invoice{
			Number:     number,
			ClientID:   "00000000-0000-0000-0000-000000000001",
			ClientName: "Alice",
			IssueDate:  issued,
			DueDate:    issued,
		}).Error)
	}

	next, err := nextInvoiceNumber(db, 2024)
	require.NoError(t, err)
	assert.Equal(t, "INV-2024-0001", next)

	seed("INV-2024-9999")
	next, err = nextInvoiceNumber(db, 2024)
	require.NoError(t, err)
	assert.Equal(t, "INV-2024-10000", next)

	seed("INV-2024-10000")
	seed("INV-2025-0042")
	next, err = nextInvoiceNumber(db, 2024)
	require.NoError(t, err)
	assert.Equal(t, "INV-2024-10001", next)
}
