// Package db provides the SQL execution layer used by the session store and
// the user repository.
//
// Two backends are supported behind one [Querier] contract:
//
//   - SQLite through [modernc.org/sqlite] (CGO-free, the default and the one
//     used in tests with an in-memory database)
//   - PostgreSQL through [github.com/jackc/pgx/v5/pgxpool]
//
// Queries are written with $N placeholders, which both drivers bind by
// position. Results come back as a slice of [Row] maps keyed by column name,
// so callers do not depend on driver-specific scanning.
//
// # Usage
//
//	conn, err := db.Open(ctx, db.Config{
//		Driver: db.DialectSQLite,
//		DSN:    "file:app.db",
//	})
//	if err != nil {
//		return err
//	}
//	defer conn.Close()
//
//	if err := db.Migrate(ctx, conn, migrations.FS, "schema_migrations", log); err != nil {
//		return err
//	}
//
//	rows, err := conn.Query(ctx, "SELECT id, username FROM users WHERE id = $1", 42)
//
// # Health Checks
//
// [Healthcheck] returns a closure for readiness probes:
//
//	engine.WithHealthChecks(
//		engine.WithReadinessCheck("db", db.Healthcheck(conn)),
//	)
//
// # Shutdown
//
// [Shutdown] returns a hook closing the connection pool during graceful
// shutdown.
package db
