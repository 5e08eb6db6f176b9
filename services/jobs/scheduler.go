package jobs

import (
	"context"
	"log"
	"time"

	"family_law_portal_go/config"
	"family_law_portal_go/services"

	"github.com/robfig/cron/v3"
	"gorm.io/gorm"
)

const (
	sessionCleanupSpec = "0 * * * *"
	pendingDigestSpec  = "0 8 * * *"
)

// StartScheduler registers the periodic jobs and starts the cron runner. The
// caller stops it on shutdown.
func StartScheduler(database *gorm.DB, cfg *config.Config, mailer services.Mailer) (*cron.Cron, error) {
	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		log.Printf("[CRON] Unknown timezone %q, using UTC: %v", cfg.Timezone, err)
		loc = time.UTC
	}
	c := cron.New(cron.WithLocation(loc))

	if _, err := c.AddFunc(sessionCleanupSpec, func() {
		CleanupSessions(database)
	}); err != nil {
		return nil, err
	}

	if _, err := c.AddFunc(pendingDigestSpec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()
		if _, err := SendPendingDigest(ctx, database, cfg, mailer); err != nil {
			log.Printf("[CRON] Pending digest failed: %v", err)
		}
	}); err != nil {
		return nil, err
	}

	c.Start()
	log.Printf("[CRON] Scheduler started (%s)", loc)
	return c, nil
}

// CleanupSessions deletes expired login sessions
func CleanupSessions(database *gorm.DB) {
	removed, err := services.CleanupExpiredSessions(database)
	if err != nil {
		log.Printf("[CRON] %v", err)
		return
	}
	if removed > 0 {
		log.Printf("[CRON] Cleaned up %d expired sessions", removed)
	}
}
