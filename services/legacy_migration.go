package services

import (
	"context"
	"errors"
	"fmt"
	"log"

	"family_law_portal_go/models"

	"gorm.io/gorm"
)

// LegacyMigrationResult counts what one migration run did
type LegacyMigrationResult struct {
	Migrated int
	Linked   int
	Skipped  int
}

// MigrateLegacyClients copies every flat legacy record that has not been
// migrated yet into the nested shape. A legacy row whose owner id already has
// a record is linked to it instead, so reruns never duplicate.
func MigrateLegacyClients(ctx context.Context, db *gorm.DB) (LegacyMigrationResult, error) {
	var result LegacyMigrationResult

	var legacy []models.LegacyClient
	if err := db.WithContext(ctx).Where("migrated_to IS NULL").Order("created_at ASC").Find(&legacy).Error; err != nil {
		return result, fmt.Errorf("failed to load legacy clients: %w", err)
	}

	for i := range legacy {
		old := &legacy[i]
		err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			var existing models.ClientRecord
			err := tx.Where("owner_id = ?", models.LegacyOwnerID(old.ID)).First(&existing).Error
			switch {
			case err == nil:
				result.Linked++
				return tx.Model(old).Update("migrated_to", existing.ID).Error
			case !errors.Is(err, gorm.ErrRecordNotFound):
				return err
			}

			rec := old.ToClientRecord()
			if err := tx.Create(&rec).Error; err != nil {
				return err
			}
			result.Migrated++
			return tx.Model(old).Update("migrated_to", rec.ID).Error
		})
		if err != nil {
			log.Printf("[MIGRATE] Legacy client %s skipped: %v", old.ID, err)
			result.Skipped++
		}
	}

	return result, nil
}
