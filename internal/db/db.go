package db

import (
	"log"
	"strings"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/barber-booking/internal/config"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

const sqlitePrefix = "sqlite://"

// NewDB opens postgres, or a sqlite file when DATABASE_URL starts with
// sqlite:// (local runs).
func NewDB(cfg *config.Config) *gorm.DB {
	dialector, maxOpen := dialectorFor(cfg.DBUrl)

	db, err := gorm.Open(dialector, &gorm.Config{
		PrepareStmt: true,
	})
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		log.Fatalf("failed to get sql.DB: %v", err)
	}

	sqlDB.SetMaxOpenConns(maxOpen)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetConnMaxIdleTime(10 * time.Minute)

	if err := Migrate(db); err != nil {
		log.Fatalf("failed to migrate: %v", err)
	}

	return db
}

func dialectorFor(url string) (gorm.Dialector, int) {
	if path, ok := strings.CutPrefix(url, sqlitePrefix); ok {
		// sqlite serializes writers
		return sqlite.Open(path), 1
	}
	return postgres.Open(url), 10
}

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.KVEntry{},
		&models.MemberOverride{},
		&models.AuditLog{},
	)
}
