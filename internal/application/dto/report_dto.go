package dto

import "github.com/emmebi/gestione-ore/internal/domain/timesheet"

// RiepilogoRow giornate di un dipendente nel periodo, più recente per prima.
type RiepilogoRow struct {
	Employee EmployeeResponse `json:"employee"`
	Days     []DayResponse    `json:"days"`
}

// RiepilogoResponse riepilogo multi-dipendente con totali complessivi.
type RiepilogoResponse struct {
	Start string          `json:"start"`
	End   string          `json:"end"`
	Rows  []RiepilogoRow  `json:"rows"`
	Stats timesheet.Stats `json:"stats"`
}
