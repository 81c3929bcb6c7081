package auth

import (
	"github.com/emmebi/gestione-ore/internal/application/dto"
	"github.com/emmebi/gestione-ore/internal/domain"
	"github.com/emmebi/gestione-ore/internal/domain/repository"
	"github.com/emmebi/gestione-ore/pkg/jwt"
)

// AdminDisplayName nome mostrato per la sessione amministratore.
const AdminDisplayName = "Amministratore"

const minPasswordLen = 4

// SessionConfig parametri di generazione della sessione firmata.
type SessionConfig struct {
	Secret   string
	ExpHours int
	Issuer   string
}

// AuthUseCase casi d'uso di autenticazione: login admin, login dipendente,
// cambio master password. Le password sono confrontate in chiaro contro i
// valori salvati (comportamento documentato del sistema, non una pratica
// raccomandata).
type AuthUseCase struct {
	settings  repository.SettingsRepository
	employees repository.EmployeeRepository
	cfg       SessionConfig
}

// NewAuthUseCase costruisce il caso d'uso.
func NewAuthUseCase(settings repository.SettingsRepository, employees repository.EmployeeRepository, cfg SessionConfig) *AuthUseCase {
	return &AuthUseCase{settings: settings, employees: employees, cfg: cfg}
}

// LoginAsAdmin verifica la master password e genera la sessione admin.
// Password errata -> ErrLoginFailed, lo stato resta sloggato.
func (uc *AuthUseCase) LoginAsAdmin(password string) (*dto.LoginResponse, error) {
	master, err := uc.settings.GetMasterPassword()
	if err != nil {
		return nil, err
	}
	if password != master {
		return nil, domain.ErrLoginFailed
	}
	return uc.newSession("admin", AdminDisplayName, jwt.RoleAdmin)
}

// LoginAsEmployee verifica le credenziali del dipendente. La master password
// autentica qualunque dipendente (passepartout). Dipendente inesistente o
// password errata -> ErrLoginFailed.
func (uc *AuthUseCase) LoginAsEmployee(employeeID, password string) (*dto.LoginResponse, error) {
	employees, err := uc.employees.GetAll()
	if err != nil {
		return nil, err
	}
	for _, emp := range employees {
		if emp.ID != employeeID {
			continue
		}
		master, err := uc.settings.GetMasterPassword()
		if err != nil {
			return nil, err
		}
		if password != emp.Password && password != master {
			return nil, domain.ErrLoginFailed
		}
		return uc.newSession(emp.ID, emp.Name, jwt.RoleEmployee)
	}
	return nil, domain.ErrLoginFailed
}

// ChangeMasterPassword aggiorna la master password dopo aver verificato
// quella attuale. La nuova deve avere almeno 4 caratteri.
func (uc *AuthUseCase) ChangeMasterPassword(current, next string) error {
	if len(next) < minPasswordLen {
		return domain.ErrInvalidInput
	}
	master, err := uc.settings.GetMasterPassword()
	if err != nil {
		return err
	}
	if current != master {
		return domain.ErrUnauthorized
	}
	return uc.settings.UpdateMasterPassword(next)
}

func (uc *AuthUseCase) newSession(id, name, role string) (*dto.LoginResponse, error) {
	token, err := jwt.Generate(uc.cfg.Secret, id, name, role, uc.cfg.Issuer, uc.cfg.ExpHours)
	if err != nil {
		return nil, err
	}
	claims, err := jwt.Parse(uc.cfg.Secret, token)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		Token: token,
		User: dto.SessionUser{
			ID:        id,
			Name:      name,
			Role:      role,
			LoginTime: claims.LoginTime,
		},
	}, nil
}
