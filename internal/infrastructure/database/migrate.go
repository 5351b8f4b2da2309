package database

import (
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/rs/zerolog/log"
)

// Direction selects which way RunMigrations moves the schema.
type Direction int

const (
	Up Direction = iota
	// Down rolls back the most recent migration only.
	Down
)

// RunMigrations applies the messages schema from migrationsPath in the given direction.
func RunMigrations(dsn, migrationsPath string, dir Direction) error {
	m, err := migrate.New("file://"+migrationsPath, dsn)
	if err != nil {
		return fmt.Errorf("migration init: %w", err)
	}
	defer m.Close()

	switch dir {
	case Down:
		err = m.Steps(-1)
	default:
		err = m.Up()
	}
	if err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("migration %s: %w", dir, err)
	}

	version, dirty, verr := m.Version()
	event := log.Info().Str("sys", "database").Stringer("direction", dir)
	if errors.Is(verr, migrate.ErrNilVersion) {
		event.Msg("Schema is empty")
		return nil
	}
	event.Uint("version", version).Bool("dirty", dirty).Msg("Migrations applied")
	return nil
}

func (d Direction) String() string {
	if d == Down {
		return "down"
	}
	return "up"
}
