package cmd

import (
	"fmt"

	"ordermanager/internal/adapters/out/postgres"

	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// OpenDatabase connects to PostgreSQL and migrates the schema.
func OpenDatabase(cfg Config) (*gorm.DB, error) {
	db, err := gorm.Open(postgresdriver.Open(cfg.DSN()), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to connect database: %w", err)
	}
	if err = postgres.Migrate(db); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	return db, nil
}
