// Package pg bootstraps the PostgreSQL layer backing the entitlement
// stores: a pgx/v5 connection pool with retrying startup, goose schema
// migrations, a health check closure, and error classification helpers.
//
// Basic set-up:
//
//	var cfg pg.Config
//	if err := config.Load(&cfg); err != nil {
//	    panic(err)
//	}
//
//	pool, err := pg.Connect(ctx, cfg)
//	if err != nil {
//	    panic(err)
//	}
//	defer pool.Close()
//
//	if err := pg.Migrate(ctx, pool, cfg, slog.Default()); err != nil {
//	    panic(err)
//	}
//
// The pool then feeds the Postgres-backed stores in svc/entitlement,
// svc/usage, svc/freeze and svc/team. All configuration comes from
// environment variables; see the Config field tags for names and defaults.
package pg
