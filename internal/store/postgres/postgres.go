// Package postgres provides the PostgreSQL-backed store. Schema management
// uses embedded migrations; the property payload of each component is stored
// as its raw serialized text so malformed records round-trip untouched.
package postgres

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"time"

	"github.com/golang-migrate/migrate/v4"
	migratepg "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	_ "github.com/lib/pq" // PostgreSQL driver
	"go.uber.org/zap"

	"github.com/sitesmith/sitesmith/internal/store"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

const (
	defaultMaxOpenConns    = 25
	defaultMaxIdleConns    = 5
	defaultConnMaxLifetime = 5 * time.Minute
	defaultPingTimeout     = 5 * time.Second
)

// PG implements store.Store on a PostgreSQL database.
type PG struct {
	db  *sql.DB
	log *zap.Logger
}

var _ store.Store = (*PG)(nil)

// Open connects to the database at url and verifies the connection.
func Open(url string, log *zap.Logger) (*PG, error) {
	if log == nil {
		log = zap.NewNop()
	}
	db, err := sql.Open("postgres", url)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	db.SetMaxOpenConns(defaultMaxOpenConns)
	db.SetMaxIdleConns(defaultMaxIdleConns)
	db.SetConnMaxLifetime(defaultConnMaxLifetime)

	ctx, cancel := context.WithTimeout(context.Background(), defaultPingTimeout)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return &PG{db: db, log: log}, nil
}

// NewWithDB wraps an existing connection; used by tests.
func NewWithDB(db *sql.DB, log *zap.Logger) *PG {
	if log == nil {
		log = zap.NewNop()
	}
	return &PG{db: db, log: log}
}

func (p *PG) Close() error {
	return p.db.Close()
}

// Migrate applies all pending schema migrations from the embedded set.
func (p *PG) Migrate() error {
	src, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return fmt.Errorf("open embedded migrations: %w", err)
	}
	driver, err := migratepg.WithInstance(p.db, &migratepg.Config{})
	if err != nil {
		return fmt.Errorf("create postgres driver: %w", err)
	}
	m, err := migrate.NewWithInstance("iofs", src, "postgres", driver)
	if err != nil {
		return fmt.Errorf("create migrate instance: %w", err)
	}
	if err := m.Up(); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			p.log.Info("no pending migrations")
			return nil
		}
		return fmt.Errorf("run migrations: %w", err)
	}
	p.log.Info("migrations applied")
	return nil
}
