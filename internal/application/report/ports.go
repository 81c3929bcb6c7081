package report

import "github.com/emmebi/gestione-ore/internal/domain/timesheet"

// Exporter produce il file del riepilogo mensile (una riga per attività,
// una riga segnaposto per le giornate vuote).
type Exporter interface {
	// Export rende il contenuto del file per il riepilogo del mese indicato.
	Export(rows []timesheet.EmployeeDays, month, year int) ([]byte, error)
	// Extension restituisce l'estensione del file prodotto (es. "xlsx").
	Extension() string
}
