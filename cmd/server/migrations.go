package main

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"log/slog"

	"github.com/phrazzld/tasks-api/internal/config"
	"github.com/phrazzld/tasks-api/internal/platform/postgres"
	"github.com/phrazzld/tasks-api/internal/platform/postgres/migrations"
	"github.com/phrazzld/tasks-api/internal/platform/sqlite"
	"github.com/pressly/goose/v3"
)

// migrationCommands are the goose commands the migrate subcommand accepts.
var migrationCommands = []string{"up", "down", "status", "version", "reset"}

// slogGooseLogger routes goose output through slog instead of the standard logger.
type slogGooseLogger struct {
	logger *slog.Logger
}

// Printf implements goose.Logger
func (l *slogGooseLogger) Printf(format string, v ...any) {
	l.log().Info(fmt.Sprintf(format, v...))
}

// Fatalf implements goose.Logger. It logs at ERROR and does not exit; goose
// returns the error to the caller as well.
func (l *slogGooseLogger) Fatalf(format string, v ...any) {
	l.log().Error(fmt.Sprintf(format, v...))
}

func (l *slogGooseLogger) log() *slog.Logger {
	if l.logger == nil {
		return slog.Default()
	}
	return l.logger
}

// runMigrations executes a goose command against the configured database.
// SQLite schemas are derived from the gorm models, so only "up" applies there.
func runMigrations(ctx context.Context, cfg *config.Config, command string, out io.Writer) error {
	log := slog.Default().With(
		slog.String("component", "migrations"),
		slog.String("command", command),
	)

	if cfg.Database.Driver == "sqlite" {
		if command != "up" {
			return fmt.Errorf("migrate %s is not supported for the sqlite driver", command)
		}
		db, err := sqlite.Open(cfg.Database.SQLitePath)
		if err != nil {
			return err
		}
		defer func() { _ = sqlite.Close(db) }()

		log.Info("sqlite schema is up to date", slog.String("path", cfg.Database.SQLitePath))
		_, err = fmt.Fprintln(out, "sqlite schema is up to date")
		return err
	}

	db, err := postgres.Open(ctx, cfg.Database.URL)
	if err != nil {
		return err
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("error closing database connection", slog.String("error", err.Error()))
		}
	}()

	return executeGoose(ctx, db, command, out, log)
}

func executeGoose(ctx context.Context, db *sql.DB, command string, out io.Writer, log *slog.Logger) error {
	goose.SetBaseFS(migrations.FS)
	goose.SetTableName(migrations.TableName)
	goose.SetLogger(&slogGooseLogger{logger: log})
	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}

	var err error
	switch command {
	case "up":
		err = goose.UpContext(ctx, db, ".")
	case "down":
		err = goose.DownContext(ctx, db, ".")
	case "status":
		err = goose.StatusContext(ctx, db, ".")
	case "reset":
		err = goose.ResetContext(ctx, db, ".")
	case "version":
		var version int64
		version, err = goose.GetDBVersionContext(ctx, db)
		if err == nil {
			_, err = fmt.Fprintf(out, "version %d\n", version)
		}
	default:
		return fmt.Errorf("unknown migration command %q", command)
	}
	if err != nil {
		return fmt.Errorf("migration %s failed: %w", command, err)
	}

	log.Info("migration command completed")
	return nil
}
