package services

import (
	"context"
	"errors"
	"net/url"
	"testing"
	"time"

	"family_law_portal_go/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func validAnswers() *models.ClientRecord {
	rec := models.NewClientRecord()
	rec.ClientInfo.Name = "Jane Doe"
	rec.ClientInfo.Email = "jane@example.com"
	rec.Relationship.MarriageDate = "2010-06-01"
	return &rec
}

func TestValidateIntake(t *testing.T) {
	assert.Nil(t, ValidateIntake(validAnswers()))

	missing := models.NewClientRecord()
	verrs := ValidateIntake(&missing)
	require.Len(t, verrs, 2)
	assert.Equal(t, "Name is required", verrs[models.FieldClientName])
	assert.Contains(t, verrs, models.FieldClientEmail)

	blank := validAnswers()
	blank.ClientInfo.Name = "   "
	verrs = ValidateIntake(blank)
	assert.Equal(t, "Name is required", verrs[models.FieldClientName])

	unformatted := validAnswers()
	unformatted.ClientInfo.Email = "call me at the office"
	assert.Nil(t, ValidateIntake(unformatted))
}

func TestValidationErrorsMessage(t *testing.T) {
	verrs := ValidationErrors{
		models.FieldClientName:  "Name is required",
		models.FieldClientEmail: "Email is required",
	}
	assert.Equal(t, "Email is required; Name is required", verrs.Error())
}

func TestSubmitIntake(t *testing.T) {
	db := setupTestDB(t)
	notifier := new(mockNotifier)
	notifier.On("NotifyLawyer", mock.Anything, "Jane Doe", "jane@example.com").
		Return(&models.NotificationEvent{ID: "n1"}, nil).Once()
	svc := NewIntakeService(db, notifier)
	ctx := context.Background()

	answers := validAnswers()
	answers.Status = models.ClientStatusClosed
	answers.Notes = "client cannot write notes"
	answers.BillableHours = 10
	answers.ClientInfo.Address = "  Unit 4 <rear entrance>\n  1 Main St"

	rec, err := svc.SubmitIntake(ctx, "user-1", answers)
	require.NoError(t, err)
	assert.NotEmpty(t, rec.ID)
	assert.Equal(t, "user-1", rec.OwnerID)
	assert.Equal(t, models.ClientStatusPending, rec.Status)
	assert.Empty(t, rec.Notes)
	assert.Zero(t, rec.BillableHours)
	assert.Equal(t, "  Unit 4 <rear entrance>\n  1 Main St", rec.ClientInfo.Address)

	var stored models.ClientRecord
	require.NoError(t, db.First(&stored, "id = ?", rec.ID).Error)
	assert.Equal(t, "  Unit 4 <rear entrance>\n  1 Main St", stored.ClientInfo.Address)
	assert.Equal(t, "No", rec.ClientInfo.USCitizen)
	assert.WithinDuration(t, time.Now(), rec.CreatedAt, 5*time.Second)

	submitted, err := svc.HasSubmitted(ctx, "user-1")
	require.NoError(t, err)
	assert.True(t, submitted)

	notifier.AssertExpectations(t)
}

func TestSubmitIntake_OncePerOwner(t *testing.T) {
	db := setupTestDB(t)
	notifier := new(mockNotifier)
	notifier.On("NotifyLawyer", mock.Anything, mock.Anything, mock.Anything).
		Return(&models.NotificationEvent{}, nil)
	svc := NewIntakeService(db, notifier)
	ctx := context.Background()

	_, err := svc.SubmitIntake(ctx, "user-1", validAnswers())
	require.NoError(t, err)

	_, err = svc.SubmitIntake(ctx, "user-1", validAnswers())
	assert.ErrorIs(t, err, ErrAlreadySubmitted)

	var count int64
	db.Model(&models.ClientRecord{}).Where("owner_id = ?", "user-1").Count(&count)
	assert.Equal(t, int64(1), count)
	notifier.AssertNumberOfCalls(t, "NotifyLawyer", 1)
}

func TestSubmitIntake_ValidationStoresNothing(t *testing.T) {
	db := setupTestDB(t)
	notifier := new(mockNotifier)
	svc := NewIntakeService(db, notifier)

	answers := validAnswers()
	answers.ClientInfo.Name = "   "

	_, err := svc.SubmitIntake(context.Background(), "user-1", answers)
	var verrs ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Contains(t, verrs, models.FieldClientName)

	var count int64
	db.Model(&models.ClientRecord{}).Count(&count)
	assert.Zero(t, count)
	notifier.AssertNotCalled(t, "NotifyLawyer", mock.Anything, mock.Anything, mock.Anything)
}

func TestSubmitIntake_NotifyFailureKeepsRecord(t *testing.T) {
	db := setupTestDB(t)
	notifier := new(mockNotifier)
	notifier.On("NotifyLawyer", mock.Anything, mock.Anything, mock.Anything).
		Return(nil, errors.New("smtp down"))
	svc := NewIntakeService(db, notifier)

	rec, err := svc.SubmitIntake(context.Background(), "user-1", validAnswers())
	require.NoError(t, err)
	assert.NotEmpty(t, rec.ID)

	var count int64
	db.Model(&models.ClientRecord{}).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestSubmitIntake_NotifyIsBounded(t *testing.T) {
	db := setupTestDB(t)
	notifier := new(mockNotifier)
	notifier.On("NotifyLawyer", mock.MatchedBy(func(ctx context.Context) bool {
		_, ok := ctx.Deadline()
		return ok && ctx.Err() == nil
	}), "Jane Doe", "jane@example.com").Return(&models.NotificationEvent{}, nil)
	svc := NewIntakeService(db, notifier)
	svc.NotifyTimeout = time.Second

	_, err := svc.SubmitIntake(context.Background(), "user-1", validAnswers())
	require.NoError(t, err)
	notifier.AssertExpectations(t)
}

func TestIntakeFromForm(t *testing.T) {
	values := url.Values{}
	values.Set(string(models.FieldClientName), "Jane Doe")
	values.Set(string(models.FieldClientEmail), "jane@example.com")
	values.Set(string(models.FieldAdverseLawyerEmail), "counsel@example.com")
	values.Set(string(models.FieldNotes), "sneaky")
	values.Set("unknown.field", "ignored")

	rec := IntakeFromForm(values)
	assert.Equal(t, "Jane Doe", rec.ClientInfo.Name)
	assert.Equal(t, "counsel@example.com", rec.AdverseParty.Lawyer.Email)
	assert.Empty(t, rec.Notes)
	assert.Equal(t, "No", rec.Relationship.Divorced)
}

func TestApplyForm_LawyerFields(t *testing.T) {
	rec := validAnswers()
	values := url.Values{}
	values.Set(string(models.FieldNotes), "Follow up")
	values.Set(string(models.FieldMarriageDate), "")

	ApplyForm(rec, values, true)
	assert.Equal(t, "Follow up", rec.Notes)
	assert.Empty(t, rec.Relationship.MarriageDate)
	assert.Equal(t, "Jane Doe", rec.ClientInfo.Name)
}
