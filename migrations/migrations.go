package migrations

import (
	"embed"
	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/mysql"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

//go:embed sql/*.sql
var files embed.FS

func newMigrate(dsn string) (*migrate.Migrate, error) {
	source, err := iofs.New(files, "sql")
	if err != nil {
		return nil, errors.Wrap(err, "load migration files")
	}

	m, err := migrate.NewWithSourceInstance("iofs", source, "mysql://"+dsn)
	if err != nil {
		return nil, errors.Wrap(err, "connect migration database")
	}
	return m, nil
}

// 執行所有未套用的migration
func Up(dsn string, logger *zap.Logger) error {
	return run(dsn, logger, "up", func(m *migrate.Migrate) error { return m.Up() })
}

// 回復上一個migration
func Down(dsn string, logger *zap.Logger) error {
	return run(dsn, logger, "down", func(m *migrate.Migrate) error { return m.Steps(-1) })
}

func run(dsn string, logger *zap.Logger, direction string, step func(*migrate.Migrate) error) error {
	m, err := newMigrate(dsn)
	if err != nil {
		return err
	}
	defer func() {
		sourceErr, dbErr := m.Close()
		if sourceErr != nil || dbErr != nil {
			logger.Warn("close migrate failed", zap.NamedError("source", sourceErr), zap.NamedError("database", dbErr))
		}
	}()

	if err := step(m); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			logger.Info("no migration to apply", zap.String("direction", direction))
			return nil
		}
		return errors.Wrapf(err, "migrate %s", direction)
	}

	version, dirty, err := m.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		return err
	}
	logger.Info("migration done",
		zap.String("direction", direction),
		zap.Uint("version", version),
		zap.Bool("dirty", dirty))
	return nil
}
