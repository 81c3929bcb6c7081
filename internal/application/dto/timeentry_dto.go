package dto

import (
	"github.com/emmebi/gestione-ore/internal/domain/entity"
	"github.com/emmebi/gestione-ore/internal/domain/timesheet"
)

// ActivityResponse attività con i minuti effettivi anche in HH:MM.
type ActivityResponse struct {
	ID               string `json:"id"`
	Kind             string `json:"kind"`
	Name             string `json:"name"`
	BaseMinutes      int    `json:"base_minutes"`
	PeopleCount      int    `json:"people_count"`
	EffectiveMinutes int    `json:"effective_minutes"`
	EffectiveHHMM    string `json:"effective_hhmm"`
}

// DayResponse giornata completa di totali ricalcolati.
type DayResponse struct {
	Date         string              `json:"date"`
	DateLong     string              `json:"date_long"` // formato esteso italiano
	Status       string              `json:"status"`
	Activities   []ActivityResponse  `json:"activities"`
	Totals       timesheet.DayTotals `json:"totals"`
	LastModified string              `json:"last_modified,omitempty"`
}

// AddSiteActivityRequest aggiunta di un cantiere alla giornata.
type AddSiteActivityRequest struct {
	SiteID      string `json:"site_id"`
	PeopleCount int    `json:"people_count"`
}

// AddGenericActivityRequest aggiunta di un'attività PST alla giornata.
type AddGenericActivityRequest struct {
	Name        string `json:"name"`
	Minutes     int    `json:"minutes"`
	PeopleCount int    `json:"people_count"`
}

// UpdateActivityRequest modifica di un singolo campo numerico di un'attività.
// Field è "minuti" oppure "persone"; un valore fuori range è rifiutato senza
// toccare lo stato precedente.
type UpdateActivityRequest struct {
	Field string `json:"field"`
	Value int    `json:"value"`
}

// SetStatusRequest cambio dello stato della giornata.
type SetStatusRequest struct {
	Status string `json:"status"`
}

// ReplaceDayRequest sovrascrittura completa della giornata (flusso admin).
type ReplaceDayRequest struct {
	Status     string               `json:"status"`
	Activities []ReplaceDayActivity `json:"activities"`
}

// ReplaceDayActivity attività in ingresso per la sovrascrittura: i minuti
// effettivi vengono sempre ricalcolati lato server.
type ReplaceDayActivity struct {
	ID          string `json:"id,omitempty"`
	Kind        string `json:"kind"`
	Name        string `json:"name"`
	BaseMinutes int    `json:"base_minutes"`
	PeopleCount int    `json:"people_count"`
}

// SaveStateResponse esito del salvataggio (autosave o esplicito).
type SaveStateResponse struct {
	State     string `json:"state"` // idle | saving | saved | failed
	LastSaved string `json:"last_saved,omitempty"`
}

// ToActivityResponse mappa un'attività di dominio nella sua vista.
func ToActivityResponse(a entity.Activity) ActivityResponse {
	credited := timesheet.CreditedMinutes(a)
	return ActivityResponse{
		ID:               a.ID,
		Kind:             a.Kind,
		Name:             a.Name,
		BaseMinutes:      a.BaseMinutes,
		PeopleCount:      a.PeopleCount,
		EffectiveMinutes: credited,
		EffectiveHHMM:    timesheet.MinutesToHHMM(credited),
	}
}
