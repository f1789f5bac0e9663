package store

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/MKhiriev/go-clerk-fapi/internal/logger"
	"github.com/MKhiriev/go-clerk-fapi/migrations"
)

// NewPostgresStore connects to PostgreSQL through the pgx stdlib driver and
// applies the store migrations. Several clients may share one database by
// using distinct key prefixes.
func NewPostgresStore(ctx context.Context, dsn string, opts ...SQLOption) (*SQLStore, error) {
	log := logger.FromContext(ctx)

	conn, err := sql.Open("pgx", dsn)
	if err != nil {
		log.Err(err).Str("func", "NewPostgresStore").Msg("error occured during database connection")
		return nil, fmt.Errorf("%w: %w", ErrConnectingDB, err)
	}

	conn.SetMaxOpenConns(4)
	conn.SetMaxIdleConns(2)

	if err = conn.PingContext(ctx); err != nil {
		log.Err(err).Str("func", "NewPostgresStore").Msg("error connecting database (ping)")
		_ = conn.Close()
		return nil, fmt.Errorf("%w: %w", ErrConnectingDB, err)
	}

	if err = migrations.Migrate(conn, migrations.DialectPostgres); err != nil {
		log.Err(err).Str("func", "NewPostgresStore").Msg("error migrating database")
		_ = conn.Close()
		return nil, err
	}
	log.Info().Str("func", "NewPostgresStore").Msg("connected to database successfully")

	return NewSQLStore(conn, migrations.DialectPostgres, opts...), nil
}
