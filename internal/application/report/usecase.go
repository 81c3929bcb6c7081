package report

import (
	"fmt"
	"time"

	"github.com/emmebi/gestione-ore/internal/application/dto"
	"github.com/emmebi/gestione-ore/internal/application/timeentry"
	"github.com/emmebi/gestione-ore/internal/domain"
	"github.com/emmebi/gestione-ore/internal/domain/entity"
	"github.com/emmebi/gestione-ore/internal/domain/repository"
	"github.com/emmebi/gestione-ore/internal/domain/timesheet"
	"github.com/emmebi/gestione-ore/pkg/dateutil"
)

// UseCase riepilogo multi-dipendente: aggregazione su un intervallo di date,
// export mensile e statistiche dei registri.
type UseCase struct {
	employees repository.EmployeeRepository
	sites     repository.SiteRepository
	records   repository.DailyRecordRepository
}

// NewUseCase costruisce il caso d'uso.
func NewUseCase(employees repository.EmployeeRepository, sites repository.SiteRepository, records repository.DailyRecordRepository) *UseCase {
	return &UseCase{employees: employees, sites: sites, records: records}
}

// Aggregate produce una voce per dipendente con le giornate in [start, end]
// inclusivi, discendenti per data. employeeID vuoto = tutti i dipendenti; un
// dipendente senza giornate nel periodo compare con lista vuota, non è un
// errore. Una lettura per dipendente, sequenziale, senza stato condiviso.
func (uc *UseCase) Aggregate(start, end, employeeID string) ([]timesheet.EmployeeDays, error) {
	if !dateutil.Valid(start) || !dateutil.Valid(end) {
		return nil, domain.ErrInvalidInput
	}
	employees, err := uc.employees.GetAll()
	if err != nil {
		return nil, err
	}
	if employeeID != "" {
		var match *entity.Employee
		for i := range employees {
			if employees[i].ID == employeeID {
				match = &employees[i]
				break
			}
		}
		if match == nil {
			return nil, domain.ErrNotFound
		}
		employees = []entity.Employee{*match}
	}
	rows := make([]timesheet.EmployeeDays, 0, len(employees))
	for _, emp := range employees {
		days, err := uc.records.GetRange(emp.ID, start, end)
		if err != nil {
			return nil, err
		}
		if days == nil {
			days = []entity.DailyRecord{}
		}
		rows = append(rows, timesheet.EmployeeDays{Employee: emp, Days: days})
	}
	return rows, nil
}

// Riepilogo aggrega il periodo e calcola i totali complessivi.
func (uc *UseCase) Riepilogo(start, end, employeeID string) (*dto.RiepilogoResponse, error) {
	rows, err := uc.Aggregate(start, end, employeeID)
	if err != nil {
		return nil, err
	}
	out := &dto.RiepilogoResponse{
		Start: start,
		End:   end,
		Rows:  make([]dto.RiepilogoRow, 0, len(rows)),
		Stats: timesheet.Summarize(rows),
	}
	for _, row := range rows {
		days := make([]dto.DayResponse, 0, len(row.Days))
		for _, day := range row.Days {
			days = append(days, timeentry.ToDayResponse(day))
		}
		out.Rows = append(out.Rows, dto.RiepilogoRow{
			Employee: dto.EmployeeResponse{ID: row.Employee.ID, Name: row.Employee.Name},
			Days:     days,
		})
	}
	return out, nil
}

// RiepilogoMonth come Riepilogo ma sul mese di calendario.
func (uc *UseCase) RiepilogoMonth(year, month int, employeeID string) (*dto.RiepilogoResponse, error) {
	if month < 1 || month > 12 {
		return nil, domain.ErrInvalidInput
	}
	start, end := dateutil.MonthRange(year, month)
	return uc.Riepilogo(start, end, employeeID)
}

// ExportMonth genera il file del riepilogo mensile con l'exporter indicato.
// Il nome del file codifica mese e anno: Riepilogo_Ore_<Mese>_<Anno>.<ext>.
func (uc *UseCase) ExportMonth(exp Exporter, year, month int, employeeID string) (fileName string, content []byte, err error) {
	if month < 1 || month > 12 {
		return "", nil, domain.ErrInvalidInput
	}
	start, end := dateutil.MonthRange(year, month)
	rows, err := uc.Aggregate(start, end, employeeID)
	if err != nil {
		return "", nil, err
	}
	content, err = exp.Export(rows, month, year)
	if err != nil {
		return "", nil, err
	}
	fileName = fmt.Sprintf("Riepilogo_Ore_%s_%d.%s", dateutil.MonthName(month), year, exp.Extension())
	return fileName, content, nil
}

// Statistics statistiche di base sui registri.
func (uc *UseCase) Statistics() (*dto.StatisticsResponse, error) {
	employees, err := uc.employees.GetAll()
	if err != nil {
		return nil, err
	}
	sites, err := uc.sites.GetAll()
	if err != nil {
		return nil, err
	}
	return &dto.StatisticsResponse{
		TotalEmployees: len(employees),
		TotalSites:     len(sites),
		GeneratedAt:    time.Now().Format(time.RFC3339),
	}, nil
}
