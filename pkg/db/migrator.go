package db

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"sync"

	"github.com/pressly/goose/v3"
)

// goose keeps its configuration in package globals.
var migrateMu sync.Mutex

// Migrate applies all pending migrations from fsys. The root of fsys must
// contain the migration files for the handle's dialect.
func Migrate(ctx context.Context, d *DB, fsys fs.FS, migrationTable string, log *slog.Logger) error {
	migrateMu.Lock()
	defer migrateMu.Unlock()

	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	if migrationTable == "" {
		migrationTable = "schema_migrations"
	}

	goose.SetBaseFS(fsys)
	goose.SetLogger(&gooseLoggerAdapter{log})
	goose.SetTableName(migrationTable)

	if err := goose.SetDialect(d.dialect.gooseDialect()); err != nil {
		return errors.Join(ErrSetDialect, err)
	}

	if err := goose.UpContext(ctx, d.std, "."); err != nil {
		return errors.Join(ErrApplyMigrations, err)
	}

	return nil
}

type gooseLoggerAdapter struct {
	log *slog.Logger
}

func (g *gooseLoggerAdapter) Printf(format string, args ...any) {
	g.log.Info(fmt.Sprintf(format, args...))
}

// Fatalf logs without exiting; goose returns the error to the caller.
func (g *gooseLoggerAdapter) Fatalf(format string, args ...any) {
	g.log.Error(fmt.Sprintf(format, args...))
}
