// Package postgres implementa i porti di persistenza su PostgreSQL (pgx v5).
// Il modello documentale dell'applicazione è conservato: i registri sono
// documenti-lista JSONB singoli per tenant, le giornate una riga per
// (tenant, dipendente, data) con le attività in JSONB; ogni salvataggio è una
// sovrascrittura completa del documento.
package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/emmebi/gestione-ore/pkg/config"
)

// Querier è il minimo comune tra *pgxpool.Pool e pgx.Tx: i repository
// accettano entrambi, così le stesse implementazioni girano dentro e fuori
// dalle transazioni.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// NewPool crea il pool di connessioni PostgreSQL dalla configurazione.
func NewPool(ctx context.Context, cfg config.DBConfig) (*pgxpool.Pool, error) {
	poolConfig, err := pgxpool.ParseConfig(cfg.ConnectionString())
	if err != nil {
		return nil, fmt.Errorf("parse DSN: %w", err)
	}

	poolConfig.MaxConns = 25
	poolConfig.MinConns = 2
	poolConfig.MaxConnLifetime = time.Hour
	poolConfig.MaxConnIdleTime = 30 * time.Minute
	poolConfig.HealthCheckPeriod = time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("creazione pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping DB: %w", err)
	}
	return pool, nil
}
