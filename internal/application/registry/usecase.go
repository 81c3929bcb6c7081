package registry

import (
	"github.com/emmebi/gestione-ore/internal/application/dto"
	"github.com/emmebi/gestione-ore/internal/domain"
	"github.com/emmebi/gestione-ore/internal/domain/entity"
	"github.com/emmebi/gestione-ore/internal/domain/repository"
	"github.com/emmebi/gestione-ore/internal/domain/timesheet"
)

const minPasswordLen = 4

// UseCase CRUD dei registri dipendenti e cantieri. Entrambi i registri sono
// liste singole per tenant, sovrascritte per intero a ogni salvataggio.
type UseCase struct {
	employees repository.EmployeeRepository
	sites     repository.SiteRepository
	tx        TxRunner
}

// NewUseCase costruisce il caso d'uso.
func NewUseCase(employees repository.EmployeeRepository, sites repository.SiteRepository, tx TxRunner) *UseCase {
	return &UseCase{employees: employees, sites: sites, tx: tx}
}

// ── Dipendenti ────────────────────────────────────────────────────────────────

// ListEmployees restituisce il registro dipendenti (senza password).
func (uc *UseCase) ListEmployees() ([]dto.EmployeeResponse, error) {
	employees, err := uc.employees.GetAll()
	if err != nil {
		return nil, err
	}
	out := make([]dto.EmployeeResponse, 0, len(employees))
	for _, e := range employees {
		out = append(out, dto.EmployeeResponse{ID: e.ID, Name: e.Name})
	}
	return out, nil
}

// CreateEmployee aggiunge un dipendente: l'id è lo slug del nome, la
// collisione con uno slug esistente è rifiutata (nessun suffisso automatico).
func (uc *UseCase) CreateEmployee(in dto.CreateEmployeeRequest) (*dto.EmployeeResponse, error) {
	name := timesheet.Sanitize(in.Name)
	if name == "" || len(in.Password) < minPasswordLen {
		return nil, domain.ErrInvalidInput
	}
	id := timesheet.Slug(name)
	if id == "" {
		return nil, domain.ErrInvalidInput
	}
	employees, err := uc.employees.GetAll()
	if err != nil {
		return nil, err
	}
	for _, e := range employees {
		if e.ID == id {
			return nil, domain.ErrDuplicate
		}
	}
	employees = append(employees, entity.Employee{ID: id, Name: name, Password: in.Password})
	if err := uc.employees.SaveAll(employees); err != nil {
		return nil, err
	}
	return &dto.EmployeeResponse{ID: id, Name: name}, nil
}

// UpdateEmployee modifica nome e password di un dipendente esistente; l'id
// resta quello originale anche se il nome cambia.
func (uc *UseCase) UpdateEmployee(id string, in dto.UpdateEmployeeRequest) (*dto.EmployeeResponse, error) {
	name := timesheet.Sanitize(in.Name)
	if name == "" || len(in.Password) < minPasswordLen {
		return nil, domain.ErrInvalidInput
	}
	employees, err := uc.employees.GetAll()
	if err != nil {
		return nil, err
	}
	for i, e := range employees {
		if e.ID == id {
			employees[i] = entity.Employee{ID: id, Name: name, Password: in.Password}
			if err := uc.employees.SaveAll(employees); err != nil {
				return nil, err
			}
			return &dto.EmployeeResponse{ID: id, Name: name}, nil
		}
	}
	return nil, domain.ErrNotFound
}

// DeleteEmployee rimuove il dipendente dal registro ed elimina le sue
// giornate, in un'unica transazione.
func (uc *UseCase) DeleteEmployee(id string) error {
	employees, err := uc.employees.GetAll()
	if err != nil {
		return err
	}
	kept := make([]entity.Employee, 0, len(employees))
	for _, e := range employees {
		if e.ID != id {
			kept = append(kept, e)
		}
	}
	if len(kept) == len(employees) {
		return domain.ErrNotFound
	}
	return uc.tx.Run(func(employees repository.EmployeeRepository, records repository.DailyRecordRepository) error {
		if err := employees.SaveAll(kept); err != nil {
			return err
		}
		return records.DeleteByEmployee(id)
	})
}

// ── Cantieri ──────────────────────────────────────────────────────────────────

// ListSites restituisce il registro cantieri.
func (uc *UseCase) ListSites() ([]dto.SiteResponse, error) {
	sites, err := uc.sites.GetAll()
	if err != nil {
		return nil, err
	}
	out := make([]dto.SiteResponse, 0, len(sites))
	for _, s := range sites {
		out = append(out, toSiteResponse(s))
	}
	return out, nil
}

// CreateSite aggiunge un cantiere; stessa disciplina slug dei dipendenti.
func (uc *UseCase) CreateSite(in dto.CreateSiteRequest) (*dto.SiteResponse, error) {
	name := timesheet.Sanitize(in.Name)
	if name == "" || !timesheet.ValidMinutes(in.StandardMinutes) {
		return nil, domain.ErrInvalidInput
	}
	id := timesheet.Slug(name)
	if id == "" {
		return nil, domain.ErrInvalidInput
	}
	sites, err := uc.sites.GetAll()
	if err != nil {
		return nil, err
	}
	for _, s := range sites {
		if s.ID == id {
			return nil, domain.ErrDuplicate
		}
	}
	site := entity.ConstructionSite{ID: id, Name: name, StandardMinutes: in.StandardMinutes}
	sites = append(sites, site)
	if err := uc.sites.SaveAll(sites); err != nil {
		return nil, err
	}
	resp := toSiteResponse(site)
	return &resp, nil
}

// UpdateSite modifica un cantiere esistente.
func (uc *UseCase) UpdateSite(id string, in dto.UpdateSiteRequest) (*dto.SiteResponse, error) {
	name := timesheet.Sanitize(in.Name)
	if name == "" || !timesheet.ValidMinutes(in.StandardMinutes) {
		return nil, domain.ErrInvalidInput
	}
	sites, err := uc.sites.GetAll()
	if err != nil {
		return nil, err
	}
	for i, s := range sites {
		if s.ID == id {
			sites[i] = entity.ConstructionSite{ID: id, Name: name, StandardMinutes: in.StandardMinutes}
			if err := uc.sites.SaveAll(sites); err != nil {
				return nil, err
			}
			resp := toSiteResponse(sites[i])
			return &resp, nil
		}
	}
	return nil, domain.ErrNotFound
}

// DeleteSite rimuove un cantiere dal registro. Le attività già registrate
// sulle giornate non vengono toccate: portano nome e minuti propri.
func (uc *UseCase) DeleteSite(id string) error {
	sites, err := uc.sites.GetAll()
	if err != nil {
		return err
	}
	kept := make([]entity.ConstructionSite, 0, len(sites))
	for _, s := range sites {
		if s.ID != id {
			kept = append(kept, s)
		}
	}
	if len(kept) == len(sites) {
		return domain.ErrNotFound
	}
	return uc.sites.SaveAll(kept)
}

func toSiteResponse(s entity.ConstructionSite) dto.SiteResponse {
	return dto.SiteResponse{
		ID:              s.ID,
		Name:            s.Name,
		StandardMinutes: s.StandardMinutes,
		StandardHHMM:    timesheet.MinutesToHHMM(s.StandardMinutes),
	}
}
