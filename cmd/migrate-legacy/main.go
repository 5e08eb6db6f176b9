package main

import (
	"context"
	"log"

	"family_law_portal_go/config"
	"family_law_portal_go/db"
	"family_law_portal_go/models"
	"family_law_portal_go/services"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize database
	if err := db.Initialize(db.Options{
		Path:        cfg.DBPath,
		TursoURL:    cfg.TursoDatabaseURL,
		TursoToken:  cfg.TursoAuthToken,
		Environment: cfg.Environment,
	}); err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	if err := db.AutoMigrate(&models.LegacyClient{}, &models.ClientRecord{}); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	log.Println("Migrating legacy client records...")

	result, err := services.MigrateLegacyClients(context.Background(), db.DB)
	if err != nil {
		log.Fatalf("Legacy migration failed: %v", err)
	}

	log.Printf("Legacy migration completed: %d migrated, %d linked, %d skipped", result.Migrated, result.Linked, result.Skipped)
}
