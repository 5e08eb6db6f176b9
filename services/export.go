package services

import (
	"bytes"
	"fmt"
	"time"

	"family_law_portal_go/models"

	"github.com/xuri/excelize/v2"
)

const (
	sheetClients  = "Clients"
	sheetInvoices = "Invoices"
	xlsxTimestamp = "2006-01-02 15:04"
)

// ExportClientsXLSX writes one row per record with a column per registry field
func ExportClientsXLSX(records []models.ClientRecord) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	f.SetSheetName("Sheet1", sheetClients)

	fields := models.Fields()
	headers := []string{"ID", "Submitted", "Status", "Priority", "Case", "Billable Hours", "Last Activity"}
	for _, spec := range fields {
		headers = append(headers, spec.Section+": "+spec.Label)
	}
	if err := writeHeader(f, sheetClients, headers); err != nil {
		return nil, err
	}

	for i := range records {
		r := &records[i]
		lastActivity := ""
		if r.LastActivity != nil {
			lastActivity = r.LastActivity.Format(xlsxTimestamp)
		}
		row := []interface{}{
			r.ID,
			r.CreatedAt.Format(xlsxTimestamp),
			r.Status,
			r.Priority,
			r.CaseLabel(),
			r.BillableHours,
			lastActivity,
		}
		for _, spec := range fields {
			row = append(row, spec.Get(r))
		}
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := f.SetSheetRow(sheetClients, cell, &row); err != nil {
			return nil, fmt.Errorf("failed to write client row: %w", err)
		}
	}

	return writeWorkbook(f)
}

// ExportInvoicesXLSX writes the invoice list with a totals row
func ExportInvoicesXLSX(invoices []models.Invoice, now time.Time) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	f.SetSheetName("Sheet1", sheetInvoices)

	headers := []string{"Number", "Client", "Date", "Due Date", "Hours", "Amount", "Status", "Overdue"}
	if err := writeHeader(f, sheetInvoices, headers); err != nil {
		return nil, err
	}

	for i, inv := range invoices {
		overdue := ""
		if inv.IsOverdue(now) {
			overdue = "Yes"
		}
		row := []interface{}{
			inv.Number,
			inv.ClientName,
			inv.IssueDate.Format("2006-01-02"),
			inv.DueDate.Format("2006-01-02"),
			inv.Hours,
			inv.Amount,
			inv.Status,
			overdue,
		}
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := f.SetSheetRow(sheetInvoices, cell, &row); err != nil {
			return nil, fmt.Errorf("failed to write invoice row: %w", err)
		}
	}

	if len(invoices) > 0 {
		last := len(invoices) + 1
		totalRow := last + 1
		f.SetCellValue(sheetInvoices, fmt.Sprintf("A%d", totalRow), "Total")
		f.SetCellFormula(sheetInvoices, fmt.Sprintf("E%d", totalRow), fmt.Sprintf("SUM(E2:E%d)", last))
		f.SetCellFormula(sheetInvoices, fmt.Sprintf("F%d", totalRow), fmt.Sprintf("SUM(F2:F%d)", last))
	}

	return writeWorkbook(f)
}

func writeHeader(f *excelize.File, sheet string, headers []string) error {
	style, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E5E7EB"}, Pattern: 1},
	})
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}

	row := make([]interface{}, len(headers))
	for i, h := range headers {
		row[i] = h
	}
	if err := f.SetSheetRow(sheet, "A1", &row); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	lastCol, _ := excelize.ColumnNumberToName(len(headers))
	f.SetCellStyle(sheet, "A1", lastCol+"1", style)
	f.SetPanes(sheet, &excelize.Panes{Freeze: true, YSplit: 1, TopLeftCell: "A2", ActivePane: "bottomLeft"})
	return nil
}

func writeWorkbook(f *excelize.File) ([]byte, error) {
	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	return buf.Bytes(), nil
}
