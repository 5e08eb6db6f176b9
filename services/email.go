package services

import (
	"bytes"
	"context"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"log"
	"strings"
	texttemplate "text/template"

	"family_law_portal_go/config"
	"family_law_portal_go/models"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	sestypes "github.com/aws/aws-sdk-go-v2/service/ses/types"
	"github.com/resend/resend-go/v2"
)

//go:embed emails/*
var emailTemplates embed.FS

// ErrMailNotConfigured is returned when the sender or the lawyer recipient is missing
var ErrMailNotConfigured = errors.New("Email configuration missing in environment variables")

// Email represents an email message
type Email struct {
	To       []string
	Subject  string
	HTMLBody string
	TextBody string
}

// Mailer delivers a single message
type Mailer interface {
	Send(ctx context.Context, email *Email) error
}

// NewMailer picks the transport from configuration. Test mode always wins so
// development never sends real mail.
func NewMailer(cfg *config.Config) (Mailer, error) {
	from := cfg.EmailFrom
	if cfg.EmailFromName != "" && from != "" {
		from = fmt.Sprintf("%s <%s>", cfg.EmailFromName, cfg.EmailFrom)
	}

	if cfg.EmailTestMode {
		return &ConsoleMailer{}, nil
	}

	switch cfg.EmailProvider {
	case config.EmailProviderSES:
		awsCfg, err := awsconfig.LoadDefaultConfig(context.Background(), awsconfig.WithRegion(cfg.AWSRegion))
		if err != nil {
			return nil, fmt.Errorf("failed to load AWS config: %w", err)
		}
		return &SESMailer{client: ses.NewFromConfig(awsCfg), from: from}, nil
	default:
		if cfg.ResendAPIKey == "" {
			return nil, fmt.Errorf("RESEND_API_KEY not configured")
		}
		return &ResendMailer{client: resend.NewClient(cfg.ResendAPIKey), from: from}, nil
	}
}

func validateEmail(email *Email) error {
	if len(email.To) == 0 {
		return fmt.Errorf("email has no recipients")
	}
	if email.Subject == "" {
		return fmt.Errorf("email has no subject")
	}
	if email.HTMLBody == "" && email.TextBody == "" {
		return fmt.Errorf("email must have either HTMLBody or TextBody")
	}
	return nil
}

// ResendMailer sends through the Resend API
type ResendMailer struct {
	client *resend.Client
	from   string
}

func (m *ResendMailer) Send(ctx context.Context, email *Email) error {
	if err := validateEmail(email); err != nil {
		return err
	}

	params := &resend.SendEmailRequest{
		From:    m.from,
		To:      email.To,
		Subject: email.Subject,
		Html:    email.HTMLBody,
		Text:    email.TextBody,
	}

	sent, err := m.client.Emails.Send(params)
	if err != nil {
		return fmt.Errorf("failed to send email via Resend: %w", err)
	}

	log.Printf("Email sent successfully via Resend (ID: %s) to: %v", sent.Id, email.To)
	return nil
}

// SESService is the subset of the SES client used here
type SESService interface {
	SendEmail(ctx context.Context, params *ses.SendEmailInput, optFns ...func(*ses.Options)) (*ses.SendEmailOutput, error)
}

// SESMailer sends through Amazon SES
type SESMailer struct {
	client SESService
	from   string
}

// NewSESMailer wraps an existing SES client
func NewSESMailer(client SESService, from string) *SESMailer {
	return &SESMailer{client: client, from: from}
}

func (m *SESMailer) Send(ctx context.Context, email *Email) error {
	if err := validateEmail(email); err != nil {
		return err
	}

	body := &sestypes.Body{}
	if email.TextBody != "" {
		body.Text = &sestypes.Content{Data: aws.String(email.TextBody)}
	}
	if email.HTMLBody != "" {
		body.Html = &sestypes.Content{Data: aws.String(email.HTMLBody)}
	}

	out, err := m.client.SendEmail(ctx, &ses.SendEmailInput{
		Destination: &sestypes.Destination{ToAddresses: email.To},
		Message: &sestypes.Message{
			Subject: &sestypes.Content{Data: aws.String(email.Subject)},
			Body:    body,
		},
		Source: aws.String(m.from),
	})
	if err != nil {
		return fmt.Errorf("failed to send email via SES: %w", err)
	}

	log.Printf("Email sent successfully via SES (ID: %s) to: %v", aws.ToString(out.MessageId), email.To)
	return nil
}

// ConsoleMailer logs messages instead of sending them
type ConsoleMailer struct{}

func (ConsoleMailer) Send(ctx context.Context, email *Email) error {
	if err := validateEmail(email); err != nil {
		return err
	}
	logEmailToConsole(email)
	log.Printf("Email logged successfully (test mode - not actually sent)")
	return nil
}

// logEmailToConsole logs email details to console in development mode
func logEmailToConsole(email *Email) {
	separator := strings.Repeat("=", 80)
	log.Printf("\n%s\nEMAIL (Test Mode - Not Actually Sent)\n%s", separator, separator)
	log.Printf("To: %v", email.To)
	log.Printf("Subject: %s", email.Subject)
	log.Printf("\n--- TEXT BODY ---\n%s", email.TextBody)
	log.Printf("\n--- HTML BODY (first 500 chars) ---\n%s...", truncate(email.HTMLBody, 500))
	log.Printf("%s\n", separator)
}

// truncate truncates a string to a maximum length
func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen]
}

// renderEmail executes the embedded <name>.html and <name>.txt templates
func renderEmail(name string, data interface{}) (htmlBody, textBody string, err error) {
	htmlTmpl, err := template.ParseFS(emailTemplates, "emails/"+name+".html")
	if err != nil {
		return "", "", fmt.Errorf("failed to parse template %s.html: %w", name, err)
	}
	var htmlBuf bytes.Buffer
	if err := htmlTmpl.Execute(&htmlBuf, data); err != nil {
		return "", "", fmt.Errorf("failed to execute template %s.html: %w", name, err)
	}

	textTmpl, err := texttemplate.ParseFS(emailTemplates, "emails/"+name+".txt")
	if err != nil {
		return "", "", fmt.Errorf("failed to parse template %s.txt: %w", name, err)
	}
	var textBuf bytes.Buffer
	if err := textTmpl.Execute(&textBuf, data); err != nil {
		return "", "", fmt.Errorf("failed to execute template %s.txt: %w", name, err)
	}

	return htmlBuf.String(), textBuf.String(), nil
}

// buildEmail renders a template pair. On failure both bodies are empty and Send rejects the message.
func buildEmail(templateName string, data interface{}, to string, subject string) *Email {
	htmlBody, textBody, err := renderEmail(templateName, data)
	if err != nil {
		log.Printf("Error loading %s email template: %v", templateName, err)
	}
	return &Email{
		To:       []string{to},
		Subject:  subject,
		HTMLBody: htmlBody,
		TextBody: textBody,
	}
}

// IntakeNotificationEmailData contains data for the lawyer notification
type IntakeNotificationEmailData struct {
	ClientName   string
	ClientEmail  string
	DashboardURL string
}

// BuildIntakeNotificationEmail tells the lawyer a new client submitted the intake form
func BuildIntakeNotificationEmail(lawyerEmail string, data IntakeNotificationEmailData) *Email {
	return buildEmail("intake_notification", data, lawyerEmail, "New Client Intake Submitted: "+data.ClientName)
}

// PendingDigestEmailData contains data for the daily pending digest
type PendingDigestEmailData struct {
	Clients      []models.ClientRecord
	DashboardURL string
}

// BuildPendingDigestEmail summarises intakes still awaiting review
func BuildPendingDigestEmail(lawyerEmail string, data PendingDigestEmailData) *Email {
	subject := fmt.Sprintf("%d pending client intake(s)", len(data.Clients))
	return buildEmail("pending_digest", data, lawyerEmail, subject)
}

// InvoiceEmailData contains data for the invoice email
type InvoiceEmailData struct {
	Invoice models.Invoice
	PDFURL  string
}

// BuildInvoiceEmail sends an invoice summary to the client
func BuildInvoiceEmail(clientEmail string, data InvoiceEmailData) *Email {
	return buildEmail("invoice", data, clientEmail, "Invoice "+data.Invoice.Number)
}
