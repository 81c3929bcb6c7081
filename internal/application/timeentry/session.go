package timeentry

import (
	"sync"

	"github.com/emmebi/gestione-ore/internal/domain/entity"
)

// Stati del salvataggio della sessione di modifica.
const (
	SaveIdle   = "idle"
	SaveSaving = "saving"
	SaveSaved  = "saved"
	SaveFailed = "failed"
)

// DaySession è la sessione di modifica esplicita di una giornata: identifica
// (dipendente, data) e porta con sé il documento in lavorazione. È un valore
// passato alle funzioni del workflow, non uno stato globale del modulo; la
// data impressa alla creazione fa da guardia contro risposte stantie (una
// sessione aperta su un'altra data non può sovrascrivere questa).
type DaySession struct {
	mu sync.Mutex

	EmployeeID string
	Date       string

	record    *entity.DailyRecord
	autosaver *Autosaver

	saveState string
	lastSaved string
}

// Record restituisce una copia della giornata in lavorazione.
func (s *DaySession) Record() entity.DailyRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// snapshotLocked copia il documento; il chiamante detiene il lock.
func (s *DaySession) snapshotLocked() entity.DailyRecord {
	rec := *s.record
	rec.Activities = append([]entity.Activity(nil), s.record.Activities...)
	return rec
}

// SaveState restituisce lo stato corrente del salvataggio e l'orario
// dell'ultimo salvataggio riuscito.
func (s *DaySession) SaveState() (state, lastSaved string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saveState, s.lastSaved
}

// Close annulla l'eventuale autosalvataggio pendente. Le modifiche non
// ancora scritte vengono scartate.
func (s *DaySession) Close() {
	s.autosaver.Stop()
}
