package jobs

import (
	"context"
	"log"

	"family_law_portal_go/config"
	"family_law_portal_go/services"

	"gorm.io/gorm"
)

// SendPendingDigest emails the lawyer a list of intakes still awaiting review.
// Nothing is sent when mail is not configured or nothing is pending. It
// returns the number of pending records reported.
func SendPendingDigest(ctx context.Context, database *gorm.DB, cfg *config.Config, mailer services.Mailer) (int, error) {
	if !cfg.MailConfigured() {
		log.Println("[CRON] Pending digest skipped: mail not configured")
		return 0, nil
	}

	pending, err := services.NewClientService(database).ListPending(ctx)
	if err != nil {
		return 0, err
	}
	if len(pending) == 0 {
		return 0, nil
	}

	dashboard := ""
	if cfg.AppURL != "" {
		dashboard = cfg.AppURL + "/dashboard?tab=pending"
	}
	email := services.BuildPendingDigestEmail(cfg.LawyerEmail, services.PendingDigestEmailData{
		Clients:      pending,
		DashboardURL: dashboard,
	})
	if err := mailer.Send(ctx, email); err != nil {
		return 0, err
	}

	log.Printf("[CRON] Pending digest sent (%d clients)", len(pending))
	return len(pending), nil
}
