package migration

import (
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Config holds migration configuration
type Config struct {
	MigrationsPath string
	DatabaseURL    string
}

// Runner applies the SQL files under MigrationsPath to the database.
type Runner struct {
	config Config
	logger zerolog.Logger
}

func NewRunner(config Config) *Runner {
	return &Runner{
		config: config,
		logger: log.With().Str("component", "migration").Logger(),
	}
}

// SourceURL is the golang-migrate source for the configured directory.
func (r *Runner) SourceURL() string {
	return "file://" + r.config.MigrationsPath
}

func (r *Runner) open() (*migrate.Migrate, error) {
	m, err := migrate.New(r.SourceURL(), r.config.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize migrate: %w", err)
	}
	return m, nil
}

func closeMigrate(m *migrate.Migrate) {
	if srcErr, dbErr := m.Close(); srcErr != nil || dbErr != nil {
		log.Warn().AnErr("source", srcErr).AnErr("database", dbErr).Msg("failed to close migrate")
	}
}

// Up runs all pending migrations
func (r *Runner) Up() error {
	m, err := r.open()
	if err != nil {
		return err
	}
	defer closeMigrate(m)

	if err := m.Up(); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			r.logger.Info().Msg("no new migrations to run")
			return nil
		}
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	r.logger.Info().Msg("migrations completed")
	return nil
}

// Down rolls back the last migration
func (r *Runner) Down() error {
	m, err := r.open()
	if err != nil {
		return err
	}
	defer closeMigrate(m)

	if err := m.Steps(-1); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			r.logger.Info().Msg("no migrations to roll back")
			return nil
		}
		return fmt.Errorf("failed to roll back migration: %w", err)
	}

	r.logger.Info().Msg("migration rolled back")
	return nil
}

// Force sets the version without running migrations. Used to recover a dirty state.
func (r *Runner) Force(version int) error {
	r.logger.Warn().Int("version", version).Msg("forcing migration version")

	m, err := r.open()
	if err != nil {
		return err
	}
	defer closeMigrate(m)

	if err := m.Force(version); err != nil {
		return fmt.Errorf("failed to force version: %w", err)
	}
	return nil
}

// Version returns the current version. A database that was never migrated reports 0.
func (r *Runner) Version() (uint, bool, error) {
	m, err := r.open()
	if err != nil {
		return 0, false, err
	}
	defer closeMigrate(m)

	version, dirty, err := m.Version()
	if err != nil {
		if errors.Is(err, migrate.ErrNilVersion) {
			return 0, false, nil
		}
		return 0, false, fmt.Errorf("failed to get version: %w", err)
	}
	return version, dirty, nil
}

// AutoMigrate brings the schema up to date on startup. A dirty database is left
// alone and reported.
func AutoMigrate(config Config) error {
	runner := NewRunner(config)

	version, dirty, err := runner.Version()
	if err != nil {
		return err
	}
	if dirty {
		return fmt.Errorf("database in dirty state at version %d", version)
	}

	if err := runner.Up(); err != nil {
		return err
	}

	newVersion, _, err := runner.Version()
	if err != nil {
		return err
	}

	runner.logger.Info().Uint("from_version", version).Uint("to_version", newVersion).Msg("schema up to date")
	return nil
}
