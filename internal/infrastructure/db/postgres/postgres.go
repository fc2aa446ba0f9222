// Package postgres implements the repository ports on GORM over PostgreSQL.
package postgres

import (
	"context"
	"fmt"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/nfahajan/job-board-backend/internal/core/domain"
)

const defaultTimeout = 10 * time.Second

// uniqueDefaultResumeIndex enforces at the schema level that a user can hold
// at most one default resume. AutoMigrate cannot express partial indexes, so
// it is applied as raw DDL after the migrations.
const uniqueDefaultResumeIndex = `CREATE UNIQUE INDEX IF NOT EXISTS idx_resumes_one_default_per_user ON resumes (user_id) WHERE is_default`

// Config captures the settings for establishing a database connection.
type Config struct {
	DSN     string
	Timeout time.Duration
}

// Connect opens the database, validates connectivity with a ping, and runs
// the schema migrations.
func Connect(ctx context.Context, cfg Config) (*gorm.DB, error) {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	db, err := gorm.Open(postgres.Open(cfg.DSN), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
		// Surfaces unique violations as gorm.ErrDuplicatedKey.
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("postgres open: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("postgres handle: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	if err := sqlDB.PingContext(pingCtx); err != nil {
		return nil, fmt.Errorf("postgres ping: %w", err)
	}

	if err := db.AutoMigrate(
		&domain.User{},
		&domain.Profile{},
		&domain.Company{},
		&domain.CompanyMember{},
		&domain.Job{},
		&domain.Resume{},
		&domain.Application{},
	); err != nil {
		return nil, fmt.Errorf("postgres migrate: %w", err)
	}

	if err := db.Exec(uniqueDefaultResumeIndex).Error; err != nil {
		return nil, fmt.Errorf("postgres indexes: %w", err)
	}

	return db, nil
}
