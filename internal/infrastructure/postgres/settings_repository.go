package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/emmebi/gestione-ore/internal/domain/repository"
)

// DefaultMasterPassword valore creato alla prima lettura se il tenant non ha
// ancora una master password (comportamento ereditato dall'installazione
// originale).
const DefaultMasterPassword = "admin123"

var _ repository.SettingsRepository = (*SettingsRepo)(nil)

// SettingsRepo impostazioni del tenant (master password).
type SettingsRepo struct {
	q      Querier
	tenant string
}

// NewSettingsRepository costruisce l'adapter. Passare pool o tx (Querier).
func NewSettingsRepository(q Querier, tenant string) *SettingsRepo {
	return &SettingsRepo{q: q, tenant: tenant}
}

// GetMasterPassword legge la master password; se il documento non esiste lo
// crea con il valore di default e restituisce quello.
func (r *SettingsRepo) GetMasterPassword() (string, error) {
	var password string
	err := r.q.QueryRow(context.Background(),
		`SELECT master_password FROM tenant_settings WHERE tenant_id = $1`, r.tenant,
	).Scan(&password)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			if err := r.UpdateMasterPassword(DefaultMasterPassword); err != nil {
				return "", err
			}
			return DefaultMasterPassword, nil
		}
		return "", fmt.Errorf("lettura master password: %w", err)
	}
	return password, nil
}

// UpdateMasterPassword sovrascrive la master password del tenant.
func (r *SettingsRepo) UpdateMasterPassword(password string) error {
	_, err := r.q.Exec(context.Background(), `
		INSERT INTO tenant_settings (tenant_id, master_password, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (tenant_id) DO UPDATE SET master_password = EXCLUDED.master_password, updated_at = now()`,
		r.tenant, password,
	)
	if err != nil {
		return fmt.Errorf("aggiornamento master password: %w", err)
	}
	return nil
}
