package services

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"html/template"
	"os"
	"time"

	"family_law_portal_go/models"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
)

//go:embed documents/*
var documentTemplates embed.FS

// PDFRenderer turns a full HTML document into PDF bytes
type PDFRenderer func(ctx context.Context, htmlContent string, options PDFOptions) ([]byte, error)

// PDFOptions contains options for PDF generation
type PDFOptions struct {
	PageOrientation string // portrait, landscape
	PageSize        string // letter, legal, A4
	MarginTop       int    // points (72 = 1 inch)
	MarginBottom    int
	MarginLeft      int
	MarginRight     int
	Timeout         time.Duration
}

// DefaultPDFOptions returns letter portrait with half-inch margins
func DefaultPDFOptions() PDFOptions {
	return PDFOptions{
		PageOrientation: "portrait",
		PageSize:        "letter",
		MarginTop:       36,
		MarginBottom:    36,
		MarginLeft:      36,
		MarginRight:     36,
		Timeout:         30 * time.Second,
	}
}

func paperSize(options PDFOptions) (width, height float64) {
	switch options.PageSize {
	case "legal":
		width, height = 8.5, 14.0
	case "A4":
		width, height = 8.27, 11.69
	default:
		width, height = 8.5, 11.0
	}
	if options.PageOrientation == "landscape" {
		width, height = height, width
	}
	return width, height
}

// GeneratePDF renders HTML content to PDF using headless Chrome. CHROME_PATH
// selects the browser binary when set.
func GeneratePDF(ctx context.Context, htmlContent string, options PDFOptions) ([]byte, error) {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.NoSandbox,
		chromedp.DisableGPU,
	)
	if chromePath := os.Getenv("CHROME_PATH"); chromePath != "" {
		opts = append(opts, chromedp.ExecPath(chromePath))
	}

	if options.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, options.Timeout)
		defer cancel()
	}

	allocCtx, allocCancel := chromedp.NewExecAllocator(ctx, opts...)
	defer allocCancel()

	browserCtx, cancel := chromedp.NewContext(allocCtx)
	defer cancel()

	width, height := paperSize(options)
	var pdfBuf []byte

	err := chromedp.Run(browserCtx,
		chromedp.Navigate("about:blank"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			frameTree, err := page.GetFrameTree().Do(ctx)
			if err != nil {
				return err
			}
			return page.SetDocumentContent(frameTree.Frame.ID, htmlContent).Do(ctx)
		}),
		chromedp.ActionFunc(func(ctx context.Context) error {
			buf, _, err := page.PrintToPDF().
				WithPaperWidth(width).
				WithPaperHeight(height).
				WithMarginTop(float64(options.MarginTop) / 72.0).
				WithMarginBottom(float64(options.MarginBottom) / 72.0).
				WithMarginLeft(float64(options.MarginLeft) / 72.0).
				WithMarginRight(float64(options.MarginRight) / 72.0).
				WithPrintBackground(true).
				WithDisplayHeaderFooter(false).
				Do(ctx)
			if err != nil {
				return err
			}
			pdfBuf = buf
			return nil
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to generate PDF: %w", err)
	}

	return pdfBuf, nil
}

// InvoiceDocument is the data behind the printable invoice
type InvoiceDocument struct {
	FirmName string
	Invoice  models.Invoice
	Entries  []models.TimeEntry
}

// RenderInvoiceHTML renders the printable invoice page
func RenderInvoiceHTML(doc InvoiceDocument) (string, error) {
	tmpl, err := template.ParseFS(documentTemplates, "documents/invoice.html")
	if err != nil {
		return "", fmt.Errorf("failed to parse invoice template: %w", err)
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, doc); err != nil {
		return "", fmt.Errorf("failed to render invoice: %w", err)
	}
	return buf.String(), nil
}
