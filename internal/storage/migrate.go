package storage

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database"
	migratemysql "github.com/golang-migrate/migrate/v4/database/mysql"
	migratepostgres "github.com/golang-migrate/migrate/v4/database/postgres"
	migratesqlite "github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"go.uber.org/zap"
)

//go:embed migrations
var migrationsFS embed.FS

// MigrateUp applies every pending migration. Already up to date is not an error.
func (s *Store) MigrateUp() error {
	m, err := s.newMigrate()
	if err != nil {
		return err
	}
	defer s.closeMigrate(m)

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("storage: migrate up: %w", err)
	}
	return nil
}

// MigrateDown rolls back the given number of migrations.
func (s *Store) MigrateDown(steps int) error {
	if steps < 1 {
		return fmt.Errorf("storage: migrate down: steps must be positive, got %d", steps)
	}
	m, err := s.newMigrate()
	if err != nil {
		return err
	}
	defer s.closeMigrate(m)

	if err := m.Steps(-steps); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("storage: migrate down: %w", err)
	}
	return nil
}

// MigrationVersion reports the applied schema version. ok is false on a fresh database.
func (s *Store) MigrationVersion() (version uint, dirty bool, ok bool, err error) {
	m, err := s.newMigrate()
	if err != nil {
		return 0, false, false, err
	}
	defer s.closeMigrate(m)

	version, dirty, err = m.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		return 0, false, false, nil
	}
	if err != nil {
		return 0, false, false, fmt.Errorf("storage: migrate version: %w", err)
	}
	return version, dirty, true, nil
}

// newMigrate opens a dedicated connection for golang-migrate so that closing the
// migrator never closes the store's pool.
func (s *Store) newMigrate() (*migrate.Migrate, error) {
	dialect := s.target.Dialect
	src, err := iofs.New(migrationsFS, "migrations/"+string(dialect))
	if err != nil {
		return nil, fmt.Errorf("storage: migration source: %w", err)
	}

	dsn, err := s.target.migrationDSN()
	if err != nil {
		return nil, err
	}
	db, err := sql.Open(s.target.DriverName(), dsn)
	if err != nil {
		return nil, fmt.Errorf("storage: migration connection: %w", err)
	}

	var driver database.Driver
	switch dialect {
	case DialectPostgres:
		driver, err = migratepostgres.WithInstance(db, &migratepostgres.Config{})
	case DialectMySQL:
		driver, err = migratemysql.WithInstance(db, &migratemysql.Config{})
	case DialectSQLite:
		driver, err = migratesqlite.WithInstance(db, &migratesqlite.Config{})
	default:
		err = fmt.Errorf("unsupported dialect %q", dialect)
	}
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration driver: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", src, string(dialect), driver)
	if err != nil {
		driver.Close()
		return nil, fmt.Errorf("storage: migrate init: %w", err)
	}
	m.Log = &migrateLogger{logger: s.logger}
	return m, nil
}

func (s *Store) closeMigrate(m *migrate.Migrate) {
	if srcErr, dbErr := m.Close(); srcErr != nil || dbErr != nil {
		s.logger.Warn("closeMigrate(): failed to close migrator", zap.Error(errors.Join(srcErr, dbErr)))
	}
}

// migrateLogger routes golang-migrate output through zap.
type migrateLogger struct {
	logger *zap.Logger
}

func (l *migrateLogger) Printf(format string, v ...any) {
	l.logger.Info(strings.TrimSpace(fmt.Sprintf(format, v...)))
}

func (l *migrateLogger) Verbose() bool { return false }
