package registry_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emmebi/gestione-ore/internal/application/dto"
	"github.com/emmebi/gestione-ore/internal/application/registry"
	"github.com/emmebi/gestione-ore/internal/domain"
	"github.com/emmebi/gestione-ore/internal/domain/entity"
	"github.com/emmebi/gestione-ore/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Doppioni di test
// ──────────────────────────────────────────────────────────────────────────────

type fakeEmployeeRepo struct {
	employees []entity.Employee
}

func (r *fakeEmployeeRepo) GetAll() ([]entity.Employee, error) { return r.employees, nil }
func (r *fakeEmployeeRepo) SaveAll(employees []entity.Employee) error {
	r.employees = employees
	return nil
}

type fakeSiteRepo struct {
	sites []entity.ConstructionSite
}

func (r *fakeSiteRepo) GetAll() ([]entity.ConstructionSite, error) { return r.sites, nil }
func (r *fakeSiteRepo) SaveAll(sites []entity.ConstructionSite) error {
	r.sites = sites
	return nil
}

type fakeRecordRepo struct {
	deleted []string
}

func (r *fakeRecordRepo) Get(employeeID, date string) (*entity.DailyRecord, error) {
	return entity.NewDailyRecord(date), nil
}
func (r *fakeRecordRepo) Save(employeeID, date string, record *entity.DailyRecord) error {
	return nil
}
func (r *fakeRecordRepo) GetRange(employeeID, start, end string) ([]entity.DailyRecord, error) {
	return nil, nil
}
func (r *fakeRecordRepo) DeleteByEmployee(employeeID string) error {
	r.deleted = append(r.deleted, employeeID)
	return nil
}

// fakeTxRunner esegue il blocco sugli stessi repository, senza transazione.
type fakeTxRunner struct {
	employees *fakeEmployeeRepo
	records   *fakeRecordRepo
	runs      int
}

func (f *fakeTxRunner) Run(fn func(repository.EmployeeRepository, repository.DailyRecordRepository) error) error {
	f.runs++
	return fn(f.employees, f.records)
}

func newTestUseCase() (*registry.UseCase, *fakeEmployeeRepo, *fakeSiteRepo, *fakeTxRunner) {
	employees := &fakeEmployeeRepo{employees: []entity.Employee{
		{ID: "mario-rossi", Name: "Mario Rossi", Password: "muratore1"},
	}}
	sites := &fakeSiteRepo{sites: []entity.ConstructionSite{
		{ID: "cantiere-via-roma", Name: "Cantiere Via Roma", StandardMinutes: 480},
	}}
	tx := &fakeTxRunner{employees: employees, records: &fakeRecordRepo{}}
	return registry.NewUseCase(employees, sites, tx), employees, sites, tx
}

// ──────────────────────────────────────────────────────────────────────────────
// Dipendenti
// ──────────────────────────────────────────────────────────────────────────────

func TestCreateEmployee_IdDalloSlugDelNome(t *testing.T) {
	uc, employees, _, _ := newTestUseCase()

	out, err := uc.CreateEmployee(dto.CreateEmployeeRequest{Name: "Luigi Bianchi", Password: "gru2024"})
	require.NoError(t, err)
	assert.Equal(t, "luigi-bianchi", out.ID)
	assert.Equal(t, "Luigi Bianchi", out.Name)
	assert.Len(t, employees.employees, 2)
}

func TestCreateEmployee_CollisioneSlug(t *testing.T) {
	uc, employees, _, _ := newTestUseCase()

	// "MARIO   ROSSI" slugga come l'esistente "mario-rossi"
	_, err := uc.CreateEmployee(dto.CreateEmployeeRequest{Name: "MARIO   ROSSI", Password: "altra1234"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
	assert.Len(t, employees.employees, 1, "nessun suffisso automatico, nessuna scrittura")
}

func TestCreateEmployee_Validazione(t *testing.T) {
	uc, _, _, _ := newTestUseCase()

	_, err := uc.CreateEmployee(dto.CreateEmployeeRequest{Name: "", Password: "valida"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = uc.CreateEmployee(dto.CreateEmployeeRequest{Name: "Anna Verdi", Password: "abc"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "password sotto i 4 caratteri")
	_, err = uc.CreateEmployee(dto.CreateEmployeeRequest{Name: "!!!", Password: "valida"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "nome che slugga a vuoto")
}

func TestUpdateEmployee_LIdNonCambia(t *testing.T) {
	uc, employees, _, _ := newTestUseCase()

	out, err := uc.UpdateEmployee("mario-rossi", dto.UpdateEmployeeRequest{Name: "Mario Rossi Jr", Password: "nuova1"})
	require.NoError(t, err)
	assert.Equal(t, "mario-rossi", out.ID, "l'id resta lo slug originale")
	assert.Equal(t, "Mario Rossi Jr", out.Name)
	assert.Equal(t, "nuova1", employees.employees[0].Password)

	_, err = uc.UpdateEmployee("non-esiste", dto.UpdateEmployeeRequest{Name: "X Y", Password: "valida"})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDeleteEmployee_CascadeInTransazione(t *testing.T) {
	uc, employees, _, tx := newTestUseCase()

	require.NoError(t, uc.DeleteEmployee("mario-rossi"))
	assert.Empty(t, employees.employees)
	assert.Equal(t, 1, tx.runs, "registro e giornate nella stessa transazione")
	assert.Equal(t, []string{"mario-rossi"}, tx.records.deleted)

	assert.ErrorIs(t, uc.DeleteEmployee("mario-rossi"), domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// Cantieri
// ──────────────────────────────────────────────────────────────────────────────

func TestCreateSite(t *testing.T) {
	uc, _, sites, _ := newTestUseCase()

	out, err := uc.CreateSite(dto.CreateSiteRequest{Name: "Cantiere Lotto B", StandardMinutes: 240})
	require.NoError(t, err)
	assert.Equal(t, "cantiere-lotto-b", out.ID)
	assert.Equal(t, 240, out.StandardMinutes)
	assert.Equal(t, "04:00", out.StandardHHMM)
	assert.Len(t, sites.sites, 2)
}

func TestCreateSite_Validazione(t *testing.T) {
	uc, _, _, _ := newTestUseCase()

	_, err := uc.CreateSite(dto.CreateSiteRequest{Name: "Cantiere X", StandardMinutes: 1441})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = uc.CreateSite(dto.CreateSiteRequest{Name: "Cantiere X", StandardMinutes: -1})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = uc.CreateSite(dto.CreateSiteRequest{Name: "Cantiere Via Roma", StandardMinutes: 300})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestUpdateSite(t *testing.T) {
	uc, _, sites, _ := newTestUseCase()

	out, err := uc.UpdateSite("cantiere-via-roma", dto.UpdateSiteRequest{Name: "Cantiere Via Roma", StandardMinutes: 300})
	require.NoError(t, err)
	assert.Equal(t, 300, out.StandardMinutes)
	assert.Equal(t, "05:00", out.StandardHHMM)
	assert.Equal(t, 300, sites.sites[0].StandardMinutes)
}

func TestDeleteSite(t *testing.T) {
	uc, _, sites, _ := newTestUseCase()

	require.NoError(t, uc.DeleteSite("cantiere-via-roma"))
	assert.Empty(t, sites.sites)
	assert.ErrorIs(t, uc.DeleteSite("cantiere-via-roma"), domain.ErrNotFound)
}

func TestListEmployees_SenzaPassword(t *testing.T) {
	uc, _, _, _ := newTestUseCase()

	out, err := uc.ListEmployees()
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, dto.EmployeeResponse{ID: "mario-rossi", Name: "Mario Rossi"}, out[0])
}
