package cmd

import (
	"fmt"

	"github.com/kozaktomas/companion-backend/internal/config"
	"github.com/kozaktomas/companion-backend/internal/database"
	"github.com/kozaktomas/companion-backend/internal/database/mariadb"
	"github.com/kozaktomas/companion-backend/internal/database/postgres"
)

// openStore connects to the configured storage backend and prepares its
// schema. Callers own the returned store and must Close it.
func openStore(cfg *config.Config) (database.Store, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	switch cfg.Database.Driver {
	case "postgres":
		store, err := postgres.Open(&cfg.Database)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize PostgreSQL: %w", err)
		}
		return store, nil
	case "mysql":
		store, err := mariadb.Open(&cfg.Database)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize MariaDB: %w", err)
		}
		return store, nil
	default:
		return nil, fmt.Errorf("unsupported DATABASE_DRIVER %q", cfg.Database.Driver)
	}
}
