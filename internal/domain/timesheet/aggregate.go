package timesheet

import "github.com/emmebi/gestione-ore/internal/domain/entity"

// EmployeeDays è la voce del riepilogo per un singolo dipendente: la sua
// lista di giornate nel periodo, in ordine discendente per data (la più
// recente per prima — governa l'ordine delle righe in tabella ed export).
// Un dipendente senza giornate nel periodo compare con lista vuota.
type EmployeeDays struct {
	Employee entity.Employee      `json:"dipendente"`
	Days     []entity.DailyRecord `json:"ore"`
}

// Stats sono i totali complessivi del riepilogo. Contribuiscono solo le
// giornate con almeno un'attività: una giornata con stato diverso da Normale
// e senza attività è non lavorativa, vale 0 ma resta elencata.
type Stats struct {
	TotalMinutes    int    `json:"total_minutes"`
	TotalHHMM       string `json:"total_hhmm"`
	TotalDecimal    string `json:"total_decimal"`
	WorkingDays     int    `json:"working_days"`
	TotalActivities int    `json:"total_activities"`
}

// Summarize calcola i totali complessivi di un riepilogo.
func Summarize(rows []EmployeeDays) Stats {
	var s Stats
	for _, row := range rows {
		for _, day := range row.Days {
			if len(day.Activities) == 0 {
				continue
			}
			s.WorkingDays++
			s.TotalActivities += len(day.Activities)
			s.TotalMinutes += TotalEffectiveMinutes(day.Activities)
		}
	}
	s.TotalHHMM = MinutesToHHMM(s.TotalMinutes)
	s.TotalDecimal = MinutesToDecimal(s.TotalMinutes)
	return s
}
