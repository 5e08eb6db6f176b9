package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/url"
	"sort"
	"strings"
	"time"

	"family_law_portal_go/models"

	"gorm.io/gorm"
)

// ErrAlreadySubmitted is returned when the identity already owns a record
var ErrAlreadySubmitted = errors.New("You have already submitted the intake form.")

// ValidationErrors maps a field key to its message. The empty key holds
// errors that are not tied to a single field.
type ValidationErrors map[models.FieldKey]string

func (v ValidationErrors) Error() string {
	keys := make([]string, 0, len(v))
	for k := range v {
		keys = append(keys, string(k))
	}
	sort.Strings(keys)

	msgs := make([]string, 0, len(keys))
	for _, k := range keys {
		msgs = append(msgs, v[models.FieldKey(k)])
	}
	return "validation failed: " + strings.Join(msgs, "; ")
}

// LawyerNotifier is the side channel fired after a successful intake
type LawyerNotifier interface {
	NotifyLawyer(ctx context.Context, clientName, clientEmail string) (*models.NotificationEvent, error)
}

type IntakeService struct {
	DB       *gorm.DB
	Notifier LawyerNotifier
	// NotifyTimeout bounds the side channel so a slow mail provider cannot hold the request
	NotifyTimeout time.Duration
}

func NewIntakeService(db *gorm.DB, notifier LawyerNotifier) *IntakeService {
	return &IntakeService{DB: db, Notifier: notifier, NotifyTimeout: 10 * time.Second}
}

// ValidateIntake checks the required answers. It returns nil when the record
// may be submitted.
func ValidateIntake(rec *models.ClientRecord) ValidationErrors {
	verrs := ValidationErrors{}
	for _, f := range models.RequiredFields() {
		if strings.TrimSpace(f.Get(rec)) == "" {
			verrs[f.Key] = f.Label + " is required"
		}
	}
	if len(verrs) == 0 {
		return nil
	}
	return verrs
}

// HasSubmitted reports whether ownerID already owns a record
func (s *IntakeService) HasSubmitted(ctx context.Context, ownerID string) (bool, error) {
	var count int64
	err := s.DB.WithContext(ctx).Model(&models.ClientRecord{}).
		Where("owner_id = ?", ownerID).
		Count(&count).Error
	if err != nil {
		StoreErrors.WithLabelValues("has_submitted").Inc()
		return false, fmt.Errorf("failed to check existing intake: %w", err)
	}
	return count > 0, nil
}

// SubmitIntake stores the answers as a new pending record owned by ownerID and
// then notifies the lawyer. Notification failures are logged only.
func (s *IntakeService) SubmitIntake(ctx context.Context, ownerID string, answers *models.ClientRecord) (*models.ClientRecord, error) {
	rec := *answers

	if verrs := ValidateIntake(&rec); verrs != nil {
		IntakeSubmissions.WithLabelValues(OutcomeValidation).Inc()
		return nil, verrs
	}

	submitted, err := s.HasSubmitted(ctx, ownerID)
	if err != nil {
		IntakeSubmissions.WithLabelValues(OutcomeError).Inc()
		return nil, err
	}
	if submitted {
		IntakeSubmissions.WithLabelValues(OutcomeAlreadySubmitted).Inc()
		return nil, ErrAlreadySubmitted
	}

	rec.ID = ""
	rec.OwnerID = ownerID
	rec.Status = models.ClientStatusPending
	rec.Priority = ""
	rec.BillableHours = 0
	rec.Notes = ""
	rec.LastActivity = nil
	rec.CreatedAt = time.Now().UTC()

	if err := s.DB.WithContext(ctx).Create(&rec).Error; err != nil {
		if isUniqueViolation(err) {
			IntakeSubmissions.WithLabelValues(OutcomeAlreadySubmitted).Inc()
			return nil, ErrAlreadySubmitted
		}
		StoreErrors.WithLabelValues("create_client").Inc()
		IntakeSubmissions.WithLabelValues(OutcomeError).Inc()
		return nil, fmt.Errorf("failed to save intake: %w", err)
	}

	IntakeSubmissions.WithLabelValues(OutcomeSuccess).Inc()
	log.Printf("[INFO] Intake submitted for owner %s (client %s)", ownerID, rec.ID)

	s.notify(ctx, &rec)
	return &rec, nil
}

func (s *IntakeService) notify(ctx context.Context, rec *models.ClientRecord) {
	if s.Notifier == nil {
		return
	}
	timeout := s.NotifyTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	notifyCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), timeout)
	defer cancel()

	if _, err := s.Notifier.NotifyLawyer(notifyCtx, rec.ClientInfo.Name, rec.ClientInfo.Email); err != nil {
		log.Printf("[WARNING] Intake %s saved but lawyer notification failed: %v", rec.ID, err)
	}
}

func isUniqueViolation(err error) bool {
	return errors.Is(err, gorm.ErrDuplicatedKey) || strings.Contains(err.Error(), "UNIQUE constraint failed")
}

// IntakeFromForm builds a record from submitted form values keyed by field
// key. Absent fields keep their intake default; lawyer-only fields are ignored.
func IntakeFromForm(values url.Values) *models.ClientRecord {
	rec := models.NewClientRecord()
	ApplyForm(&rec, values, false)
	return &rec
}

// ApplyForm copies the present form values onto rec
func ApplyForm(rec *models.ClientRecord, values url.Values, includeLawyerOnly bool) {
	for _, f := range models.Fields() {
		if f.LawyerOnly && !includeLawyerOnly {
			continue
		}
		if v, ok := values[string(f.Key)]; ok && len(v) > 0 {
			f.Set(rec, v[0])
		}
	}
}
