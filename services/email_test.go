package services

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"family_law_portal_go/config"
	"family_law_portal_go/models"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockSES struct {
	mock.Mock
}

func (m *mockSES) SendEmail(ctx context.Context, params *ses.SendEmailInput, optFns ...func(*ses.Options)) (*ses.SendEmailOutput, error) {
	args := m.Called(ctx, params)
	out, _ := args.Get(0).(*ses.SendEmailOutput)
	return out, args.Error(1)
}

func TestIntakeNotificationEmail(t *testing.T) {
	email := BuildIntakeNotificationEmail("lawyer@example.com", IntakeNotificationEmailData{
		ClientName:   "Jane <Doe>",
		ClientEmail:  "jane@example.com",
		DashboardURL: "https://portal.example.com/dashboard",
	})

	assert.Equal(t, []string{"lawyer@example.com"}, email.To)
	assert.Equal(t, "New Client Intake Submitted: Jane <Doe>", email.Subject)
	assert.Equal(t, "A new client has submitted an intake form.\n\nName: Jane <Doe>\nEmail: jane@example.com", email.TextBody)
	assert.Contains(t, email.HTMLBody, "Jane &lt;Doe&gt;")
	assert.Contains(t, email.HTMLBody, "https://portal.example.com/dashboard")
}

func TestPendingDigestEmail(t *testing.T) {
	clients := []models.ClientRecord{
		{ClientInfo: models.ClientInfo{Name: "Alice", Email: "alice@example.com"}, CreatedAt: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)},
		{ClientInfo: models.ClientInfo{Name: "Bob", Email: "bob@example.com"}, CreatedAt: time.Date(2024, 3, 2, 0, 0, 0, 0, time.UTC)},
	}
	email := BuildPendingDigestEmail("lawyer@example.com", PendingDigestEmailData{Clients: clients})

	assert.Equal(t, "2 pending client intake(s)", email.Subject)
	assert.Contains(t, email.TextBody, "Alice <alice@example.com> submitted Mar 1, 2024")
	assert.Contains(t, email.TextBody, "Bob <bob@example.com>")
	assert.Contains(t, email.HTMLBody, "Alice")
}

func TestInvoiceEmail(t *testing.T) {
	email := BuildInvoiceEmail("jane@example.com", InvoiceEmailData{
		Invoice: models.Invoice{
			Number:     "INV-2024-0007",
			ClientName: "Jane",
			Hours:      2.5,
			Amount:     625,
			DueDate:    time.Date(2024, 4, 30, 0, 0, 0, 0, time.UTC),
		},
		PDFURL: "https://files.example.com/invoices/2024/INV-2024-0007.pdf",
	})

	assert.Equal(t, "Invoice INV-2024-0007", email.Subject)
	assert.Contains(t, email.TextBody, "Amount due: $625.00")
	assert.Contains(t, email.TextBody, "Due date: Apr 30, 2024")
	assert.Contains(t, email.TextBody, "Download: https://files.example.com")
}

func TestRenderEmail_UnknownTemplate(t *testing.T) {
	_, _, err := renderEmail("does_not_exist", nil)
	assert.Error(t, err)

	email := buildEmail("does_not_exist", nil, "a@example.com", "Subject")
	assert.Empty(t, email.HTMLBody)
	assert.Error(t, ConsoleMailer{}.Send(context.Background(), email))
}

func TestConsoleMailer(t *testing.T) {
	email := &Email{To: []string{"a@example.com"}, Subject: "Hi", TextBody: "Hello"}
	assert.NoError(t, ConsoleMailer{}.Send(context.Background(), email))

	assert.Error(t, ConsoleMailer{}.Send(context.Background(), &Email{Subject: "Hi", TextBody: "x"}))
	assert.Error(t, ConsoleMailer{}.Send(context.Background(), &Email{To: []string{"a@example.com"}, TextBody: "x"}))
}

func TestSESMailer(t *testing.T) {
	client := new(mockSES)
	client.On("SendEmail", mock.Anything, mock.MatchedBy(func(in *ses.SendEmailInput) bool {
		return aws.ToString(in.Source) == "portal@example.com" &&
			in.Destination.ToAddresses[0] == "lawyer@example.com" &&
			aws.ToString(in.Message.Subject.Data) == "Hello" &&
			aws.ToString(in.Message.Body.Text.Data) == "Plain" &&
			aws.ToString(in.Message.Body.Html.Data) == "<p>Rich</p>"
	})).Return(&ses.SendEmailOutput{MessageId: aws.String("msg-1")}, nil).Once()

	mailer := NewSESMailer(client, "portal@example.com")
	err := mailer.Send(context.Background(), &Email{
		To:       []string{"lawyer@example.com"},
		Subject:  "Hello",
		TextBody: "Plain",
		HTMLBody: "<p>Rich</p>",
	})
	require.NoError(t, err)
	client.AssertExpectations(t)
}

func TestSESMailer_Error(t *testing.T) {
	client := new(mockSES)
	client.On("SendEmail", mock.Anything, mock.Anything).Return(nil, errors.New("throttled"))

	err := NewSESMailer(client, "portal@example.com").Send(context.Background(), &Email{
		To: []string{"lawyer@example.com"}, Subject: "Hello", TextBody: "Plain",
	})
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "SES"))
}

func TestNewMailer(t *testing.T) {
	m, err := NewMailer(&config.Config{EmailTestMode: true})
	require.NoError(t, err)
	assert.IsType(t, &ConsoleMailer{}, m)

	_, err = NewMailer(&config.Config{EmailProvider: config.EmailProviderResend})
	assert.Error(t, err)

	m, err = NewMailer(&config.Config{EmailProvider: config.EmailProviderResend, ResendAPIKey: "re_test", EmailFrom: "portal@example.com"})
	require.NoError(t, err)
	assert.IsType(t, &ResendMailer{}, m)
}
