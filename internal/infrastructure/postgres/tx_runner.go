package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/emmebi/gestione-ore/internal/application/registry"
	"github.com/emmebi/gestione-ore/internal/domain/repository"
)

var _ registry.TxRunner = (*TxRunner)(nil)

// TxRunner esegue callback dentro una transazione PostgreSQL.
type TxRunner struct {
	pool   *pgxpool.Pool
	tenant string
}

// NewTxRunner costruisce il runner con il pool.
func NewTxRunner(pool *pgxpool.Pool, tenant string) *TxRunner {
	return &TxRunner{pool: pool, tenant: tenant}
}

// Run apre una transazione, esegue fn con i repository legati alla tx e fa
// Commit o Rollback.
func (r *TxRunner) Run(fn func(employees repository.EmployeeRepository, records repository.DailyRecordRepository) error) error {
	ctx := context.Background()
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	employees := NewEmployeeRepository(tx, r.tenant)
	records := NewDailyRecordRepository(tx, r.tenant)

	if err := fn(employees, records); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
