package db

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"strings"

	_ "github.com/tursodatabase/libsql-client-go/libsql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

// Options selects the backing store. A non-empty TursoURL wins over Path.
type Options struct {
	Path        string
	TursoURL    string
	TursoToken  string
	Environment string
}

// Initialize sets up the database connection. Local files run in WAL mode;
// a Turso URL is opened through the libSQL driver and handed to gorm's sqlite dialect.
func Initialize(opts Options) error {
	logLevel := logger.Info
	if opts.Environment == "production" {
		logLevel = logger.Warn
	}
	gormCfg := &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
	}

	var err error
	if opts.TursoURL != "" {
		conn, openErr := sql.Open("libsql", tursoDSN(opts.TursoURL, opts.TursoToken))
		if openErr != nil {
			return fmt.Errorf("failed to open libsql connection: %w", openErr)
		}
		DB, err = gorm.Open(sqlite.Dialector{DriverName: "libsql", Conn: conn}, gormCfg)
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		log.Println("Database connection established (Turso/libSQL)")
		return nil
	}

	dsn := opts.Path + "?_journal_mode=WAL&_busy_timeout=5000"
	DB, err = gorm.Open(sqlite.Open(dsn), gormCfg)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	log.Println("Database connection established (WAL mode enabled)")
	return nil
}

func tursoDSN(url, token string) string {
	if token == "" {
		return url
	}
	sep := "?"
	if strings.Contains(url, "?") {
		sep = "&"
	}
	return url + sep + "authToken=" + token
}

// AutoMigrate runs database migrations for the provided models
func AutoMigrate(models ...interface{}) error {
	if DB == nil {
		return fmt.Errorf("database not initialized")
	}

	if err := DB.AutoMigrate(models...); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	log.Println("Database migrations completed")
	return nil
}

// Ping checks that the database answers
func Ping(ctx context.Context) error {
	if DB == nil {
		return fmt.Errorf("database not initialized")
	}
	sqlDB, err := DB.DB()
	if err != nil {
		return fmt.Errorf("failed to get database instance: %w", err)
	}
	return sqlDB.PingContext(ctx)
}

// Close closes the database connection
func Close() error {
	if DB == nil {
		return nil
	}

	sqlDB, err := DB.DB()
	if err != nil {
		return fmt.Errorf("failed to get database instance: %w", err)
	}

	return sqlDB.Close()
}
