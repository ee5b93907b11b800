package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/phrazzld/tasks-api/internal/config"
	"github.com/phrazzld/tasks-api/internal/platform/postgres"
	"github.com/phrazzld/tasks-api/internal/platform/sqlite"
	"github.com/phrazzld/tasks-api/internal/store"
)

// storage bundles the stores for the configured driver with the function
// that releases their connection.
type storage struct {
	driver string
	tasks  store.TaskStore
	users  store.UserStore
	close  func() error
}

// Close releases the underlying database connection.
func (s *storage) Close() error {
	if s.close == nil {
		return nil
	}
	return s.close()
}

// openStorage connects to the database selected by cfg.Database.Driver.
// PostgreSQL schemas are managed by the migrate command; SQLite schemas are
// brought up to date on open.
func openStorage(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*storage, error) {
	var s *storage

	switch cfg.Database.Driver {
	case "postgres":
		db, err := postgres.Open(ctx, cfg.Database.URL)
		if err != nil {
			return nil, err
		}
		s = &storage{
			driver: "postgres",
			tasks:  postgres.NewPostgresTaskStore(db, logger),
			users:  postgres.NewPostgresUserStore(db, logger),
			close:  db.Close,
		}

	case "sqlite":
		db, err := sqlite.Open(cfg.Database.SQLitePath)
		if err != nil {
			return nil, err
		}
		s = &storage{
			driver: "sqlite",
			tasks:  sqlite.NewSQLiteTaskStore(db, logger),
			users:  sqlite.NewSQLiteUserStore(db, logger),
			close:  func() error { return sqlite.Close(db) },
		}

	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Database.Driver)
	}

	logger.Info("database connection established", slog.String("driver", s.driver))
	return s, nil
}
