package entity

// Tipi di attività registrabili in una giornata.
const (
	ActivityKindSite    = "cantiere" // attività su cantiere, minuti dal registro
	ActivityKindGeneric = "pst"      // attività generica con nome e minuti liberi
)

// Stati della giornata lavorativa.
const (
	StatusNormal   = "Normale"
	StatusRest     = "Riposo"
	StatusVacation = "Ferie"
	StatusSick     = "Malattia"
)

// ValidStatus indica se lo stato è uno dei quattro ammessi.
func ValidStatus(s string) bool {
	switch s {
	case StatusNormal, StatusRest, StatusVacation, StatusSick:
		return true
	}
	return false
}

// Activity è una singola voce di lavoro dentro una giornata.
//
// EffectiveMinutes è un campo derivato: round(BaseMinutes/PeopleCount) con
// arrotondamento half-away-from-zero. Va ricalcolato a ogni modifica di
// BaseMinutes o PeopleCount e non deve mai essere persistito stantio.
// I tag JSON ricalcano il formato dei documenti già salvati dalle
// installazioni esistenti.
type Activity struct {
	ID               string `json:"id"`
	Kind             string `json:"tipo"` // ActivityKindSite | ActivityKindGeneric
	Name             string `json:"nome"`
	BaseMinutes      int    `json:"minuti"`  // 0..1440
	PeopleCount      int    `json:"persone"` // 1..50
	EffectiveMinutes int    `json:"minutiEffettivi,omitempty"`
}

// DailyRecord è la giornata di un dipendente: una per (dipendente, data).
// Una giornata senza attività è valida e vale zero minuti qualunque sia lo
// stato. Stato e attività sono modificabili indipendentemente.
type DailyRecord struct {
	Date         string     `json:"data"` // ISO YYYY-MM-DD
	Status       string     `json:"stato"`
	Activities   []Activity `json:"attivita"`
	LastModified string     `json:"ultimaModifica,omitempty"` // timestamp RFC3339, messo dal salvataggio
}

// NewDailyRecord costruisce la giornata di default materializzata alla prima
// lettura quando il documento non esiste.
func NewDailyRecord(date string) *DailyRecord {
	return &DailyRecord{
		Date:       date,
		Status:     StatusNormal,
		Activities: []Activity{},
	}
}
