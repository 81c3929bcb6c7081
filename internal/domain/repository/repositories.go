package repository

import "github.com/emmebi/gestione-ore/internal/domain/entity"

// SettingsRepository è il porto di persistenza per le impostazioni del tenant.
type SettingsRepository interface {
	// GetMasterPassword restituisce la master password; se assente la crea con
	// il valore di default e restituisce quello.
	GetMasterPassword() (string, error)
	UpdateMasterPassword(password string) error
}

// EmployeeRepository è il porto per il registro dipendenti: un'unica lista
// ordinata per tenant, sovrascritta per intero a ogni salvataggio.
type EmployeeRepository interface {
	GetAll() ([]entity.Employee, error)
	SaveAll(employees []entity.Employee) error
}

// SiteRepository è il porto per il registro cantieri (stessa disciplina
// whole-list del registro dipendenti).
type SiteRepository interface {
	GetAll() ([]entity.ConstructionSite, error)
	SaveAll(sites []entity.ConstructionSite) error
}

// DailyRecordRepository è il porto per le giornate lavorative, una per
// (dipendente, data).
type DailyRecordRepository interface {
	// Get restituisce la giornata; se il documento non esiste materializza il
	// default {Normale, []} senza scriverlo.
	Get(employeeID, date string) (*entity.DailyRecord, error)
	// Save sovrascrive l'intero documento e timbra LastModified lato server.
	Save(employeeID, date string, record *entity.DailyRecord) error
	// GetRange restituisce le giornate con data in [start, end] inclusivi,
	// ordinate discendenti per data.
	GetRange(employeeID, start, end string) ([]entity.DailyRecord, error)
	// DeleteByEmployee elimina tutte le giornate del dipendente.
	DeleteByEmployee(employeeID string) error
}
