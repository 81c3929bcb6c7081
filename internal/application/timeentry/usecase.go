package timeentry

import (
	"time"

	"github.com/emmebi/gestione-ore/internal/application/dto"
	"github.com/emmebi/gestione-ore/internal/domain"
	"github.com/emmebi/gestione-ore/internal/domain/entity"
	"github.com/emmebi/gestione-ore/internal/domain/repository"
	"github.com/emmebi/gestione-ore/internal/domain/timesheet"
	"github.com/emmebi/gestione-ore/pkg/dateutil"
)

// UseCase workflow di inserimento ore: apertura della giornata, mutazioni
// delle attività con ricalcolo immediato dei minuti effettivi, salvataggio
// differito. Tutte le operazioni ricevono la sessione di modifica esplicita.
type UseCase struct {
	records  repository.DailyRecordRepository
	sites    repository.SiteRepository
	clock    Clock
	debounce time.Duration
}

// NewUseCase costruisce il workflow. debounce è il periodo di quiete
// dell'autosalvataggio (1s nell'applicazione, ridotto nei test).
func NewUseCase(records repository.DailyRecordRepository, sites repository.SiteRepository, clock Clock, debounce time.Duration) *UseCase {
	return &UseCase{records: records, sites: sites, clock: clock, debounce: debounce}
}

// Open carica (o materializza) la giornata e apre la sessione di modifica.
// I dipendenti possono aprire solo oggi o ieri; anyDate toglie il vincolo per
// il flusso amministratore.
func (uc *UseCase) Open(employeeID, date string, anyDate bool) (*DaySession, error) {
	if !dateutil.Valid(date) {
		return nil, domain.ErrInvalidInput
	}
	if !anyDate && !dateutil.IsAllowed(date) {
		return nil, domain.ErrDateNotAllowed
	}
	record, err := uc.records.Get(employeeID, date)
	if err != nil {
		return nil, err
	}
	s := &DaySession{
		EmployeeID: employeeID,
		Date:       date,
		record:     record,
		saveState:  SaveIdle,
	}
	s.autosaver = NewAutosaver(uc.clock, uc.debounce, func() { _ = uc.flush(s) })
	return s, nil
}

// SetStatus cambia lo stato della giornata e programma l'autosalvataggio.
func (uc *UseCase) SetStatus(s *DaySession, status string) error {
	if !entity.ValidStatus(status) {
		return domain.ErrInvalidInput
	}
	s.mu.Lock()
	s.record.Status = status
	s.mu.Unlock()
	s.autosaver.Schedule()
	return nil
}

// AddSiteActivity aggiunge un cantiere alla giornata: nome e minuti arrivano
// dal registro, i minuti effettivi sono calcolati prima dell'inserimento.
func (uc *UseCase) AddSiteActivity(s *DaySession, siteID string, people int) (entity.Activity, error) {
	if !timesheet.ValidPeople(people) {
		return entity.Activity{}, domain.ErrInvalidInput
	}
	sites, err := uc.sites.GetAll()
	if err != nil {
		return entity.Activity{}, err
	}
	var site *entity.ConstructionSite
	for i := range sites {
		if sites[i].ID == siteID {
			site = &sites[i]
			break
		}
	}
	if site == nil {
		return entity.Activity{}, domain.ErrNotFound
	}
	activity := entity.Activity{
		ID:               timesheet.NewActivityID("cantiere"),
		Kind:             entity.ActivityKindSite,
		Name:             site.Name,
		BaseMinutes:      site.StandardMinutes,
		PeopleCount:      people,
		EffectiveMinutes: timesheet.EffectiveMinutes(site.StandardMinutes, people),
	}
	return uc.append(s, activity)
}

// AddGenericActivity aggiunge un'attività PST con nome e minuti liberi.
func (uc *UseCase) AddGenericActivity(s *DaySession, name string, minutes, people int) (entity.Activity, error) {
	name = timesheet.Sanitize(name)
	if name == "" || !timesheet.ValidMinutes(minutes) || !timesheet.ValidPeople(people) {
		return entity.Activity{}, domain.ErrInvalidInput
	}
	activity := entity.Activity{
		ID:               timesheet.NewActivityID("pst"),
		Kind:             entity.ActivityKindGeneric,
		Name:             name,
		BaseMinutes:      minutes,
		PeopleCount:      people,
		EffectiveMinutes: timesheet.EffectiveMinutes(minutes, people),
	}
	return uc.append(s, activity)
}

func (uc *UseCase) append(s *DaySession, activity entity.Activity) (entity.Activity, error) {
	s.mu.Lock()
	if len(s.record.Activities) >= timesheet.MaxActivitiesPerDay {
		s.mu.Unlock()
		return entity.Activity{}, domain.ErrTooManyEntries
	}
	s.record.Activities = append(s.record.Activities, activity)
	s.mu.Unlock()
	s.autosaver.Schedule()
	return activity, nil
}

// UpdateActivity modifica "minuti" o "persone" di un'attività. Un valore
// fuori range è rifiutato e lo stato precedente resta intatto; il campo
// derivato è ricalcolato prima che la mutazione diventi visibile.
func (uc *UseCase) UpdateActivity(s *DaySession, activityID, field string, value int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.record.Activities {
		a := &s.record.Activities[i]
		if a.ID != activityID {
			continue
		}
		switch field {
		case "minuti":
			if !timesheet.ValidMinutes(value) {
				return domain.ErrInvalidInput
			}
			a.BaseMinutes = value
		case "persone":
			if !timesheet.ValidPeople(value) {
				return domain.ErrInvalidInput
			}
			a.PeopleCount = value
		default:
			return domain.ErrInvalidInput
		}
		a.EffectiveMinutes = timesheet.EffectiveMinutes(a.BaseMinutes, a.PeopleCount)
		s.autosaver.Schedule()
		return nil
	}
	return domain.ErrNotFound
}

// RemoveActivity elimina un'attività per identità, senza riordinare le altre.
func (uc *UseCase) RemoveActivity(s *DaySession, activityID string) error {
	s.mu.Lock()
	for i := range s.record.Activities {
		if s.record.Activities[i].ID == activityID {
			s.record.Activities = append(s.record.Activities[:i], s.record.Activities[i+1:]...)
			s.mu.Unlock()
			s.autosaver.Schedule()
			return nil
		}
	}
	s.mu.Unlock()
	return domain.ErrNotFound
}

// Save annulla il timer pendente e salva subito.
func (uc *UseCase) Save(s *DaySession) error {
	s.autosaver.Stop()
	return uc.flush(s)
}

// Day restituisce la vista della giornata con i totali ricalcolati.
func (uc *UseCase) Day(s *DaySession) dto.DayResponse {
	return ToDayResponse(s.Record())
}

// ReplaceDay sovrascrive l'intera giornata (flusso admin): ogni attività in
// ingresso è validata e i minuti effettivi sono sempre ricalcolati lato
// server. Input invalido -> nessuna scrittura.
func (uc *UseCase) ReplaceDay(employeeID, date string, in dto.ReplaceDayRequest) (*dto.DayResponse, error) {
	if !dateutil.Valid(date) || !entity.ValidStatus(in.Status) {
		return nil, domain.ErrInvalidInput
	}
	if len(in.Activities) > timesheet.MaxActivitiesPerDay {
		return nil, domain.ErrTooManyEntries
	}
	record := entity.NewDailyRecord(date)
	record.Status = in.Status
	for _, a := range in.Activities {
		name := timesheet.Sanitize(a.Name)
		if name == "" || !timesheet.ValidMinutes(a.BaseMinutes) || !timesheet.ValidPeople(a.PeopleCount) {
			return nil, domain.ErrInvalidInput
		}
		if a.Kind != entity.ActivityKindSite && a.Kind != entity.ActivityKindGeneric {
			return nil, domain.ErrInvalidInput
		}
		id := a.ID
		if id == "" {
			id = timesheet.NewActivityID(a.Kind)
		}
		record.Activities = append(record.Activities, entity.Activity{
			ID:               id,
			Kind:             a.Kind,
			Name:             name,
			BaseMinutes:      a.BaseMinutes,
			PeopleCount:      a.PeopleCount,
			EffectiveMinutes: timesheet.EffectiveMinutes(a.BaseMinutes, a.PeopleCount),
		})
	}
	if err := uc.records.Save(employeeID, date, record); err != nil {
		return nil, err
	}
	resp := ToDayResponse(*record)
	return &resp, nil
}

// flush scrive la giornata sul documento remoto. La data impressa nella
// sessione fa da guardia: se non coincide con quella del documento il
// salvataggio è scartato. In caso di errore la sessione resta intatta e lo
// stato passa a "failed" (l'utente può riprovare).
func (uc *UseCase) flush(s *DaySession) error {
	s.mu.Lock()
	if s.record.Date != s.Date {
		s.saveState = SaveFailed
		s.mu.Unlock()
		return domain.ErrStaleSession
	}
	s.saveState = SaveSaving
	snapshot := s.snapshotLocked()
	s.mu.Unlock()

	err := uc.records.Save(s.EmployeeID, s.Date, &snapshot)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.saveState = SaveFailed
		return err
	}
	s.saveState = SaveSaved
	s.lastSaved = uc.clock.Now().Format(time.RFC3339)
	return nil
}

// ToDayResponse mappa una giornata nella sua vista completa di totali.
func ToDayResponse(record entity.DailyRecord) dto.DayResponse {
	activities := make([]dto.ActivityResponse, 0, len(record.Activities))
	for _, a := range record.Activities {
		activities = append(activities, dto.ToActivityResponse(a))
	}
	return dto.DayResponse{
		Date:         record.Date,
		DateLong:     dateutil.FormatLong(record.Date),
		Status:       record.Status,
		Activities:   activities,
		Totals:       timesheet.ComputeDayTotals(record.Activities),
		LastModified: record.LastModified,
	}
}
