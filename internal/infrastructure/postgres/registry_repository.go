package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/emmebi/gestione-ore/internal/domain/entity"
	"github.com/emmebi/gestione-ore/internal/domain/repository"
)

// Nomi dei documenti-lista dei registri.
const (
	docEmployees = "employees"
	docSites     = "cantieri"
)

var (
	_ repository.EmployeeRepository = (*EmployeeRepo)(nil)
	_ repository.SiteRepository     = (*SiteRepo)(nil)
)

// getListDocument legge il documento-lista JSONB del registro; assente = lista vuota.
func getListDocument(q Querier, tenant, name string, out any) error {
	var data []byte
	err := q.QueryRow(context.Background(),
		`SELECT data FROM registry_documents WHERE tenant_id = $1 AND name = $2`, tenant, name,
	).Scan(&data)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil
		}
		return fmt.Errorf("lettura documento %s: %w", name, err)
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decodifica documento %s: %w", name, err)
	}
	return nil
}

// saveListDocument sovrascrive per intero il documento-lista del registro.
func saveListDocument(q Querier, tenant, name string, list any) error {
	data, err := json.Marshal(list)
	if err != nil {
		return fmt.Errorf("codifica documento %s: %w", name, err)
	}
	_, err = q.Exec(context.Background(), `
		INSERT INTO registry_documents (tenant_id, name, data, updated_at)
		VALUES ($1, $2, $3, now())
		ON CONFLICT (tenant_id, name) DO UPDATE SET data = EXCLUDED.data, updated_at = now()`,
		tenant, name, data,
	)
	if err != nil {
		return fmt.Errorf("salvataggio documento %s: %w", name, err)
	}
	return nil
}

// EmployeeRepo registro dipendenti come documento-lista singolo per tenant.
type EmployeeRepo struct {
	q      Querier
	tenant string
}

// NewEmployeeRepository costruisce l'adapter. Passare pool o tx (Querier).
func NewEmployeeRepository(q Querier, tenant string) *EmployeeRepo {
	return &EmployeeRepo{q: q, tenant: tenant}
}

// GetAll restituisce la lista ordinata dei dipendenti (vuota se mai salvata).
func (r *EmployeeRepo) GetAll() ([]entity.Employee, error) {
	employees := []entity.Employee{}
	if err := getListDocument(r.q, r.tenant, docEmployees, &employees); err != nil {
		return nil, err
	}
	return employees, nil
}

// SaveAll sovrascrive l'intero registro dipendenti.
func (r *EmployeeRepo) SaveAll(employees []entity.Employee) error {
	return saveListDocument(r.q, r.tenant, docEmployees, employees)
}

// SiteRepo registro cantieri come documento-lista singolo per tenant.
type SiteRepo struct {
	q      Querier
	tenant string
}

// NewSiteRepository costruisce l'adapter. Passare pool o tx (Querier).
func NewSiteRepository(q Querier, tenant string) *SiteRepo {
	return &SiteRepo{q: q, tenant: tenant}
}

// GetAll restituisce la lista ordinata dei cantieri (vuota se mai salvata).
func (r *SiteRepo) GetAll() ([]entity.ConstructionSite, error) {
	sites := []entity.ConstructionSite{}
	if err := getListDocument(r.q, r.tenant, docSites, &sites); err != nil {
		return nil, err
	}
	return sites, nil
}

// SaveAll sovrascrive l'intero registro cantieri.
func (r *SiteRepo) SaveAll(sites []entity.ConstructionSite) error {
	return saveListDocument(r.q, r.tenant, docSites, sites)
}
