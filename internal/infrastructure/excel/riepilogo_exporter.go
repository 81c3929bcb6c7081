// Package excel genera il file Excel del riepilogo ore: una riga per
// attività, una riga segnaposto per le giornate senza attività.
package excel

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/emmebi/gestione-ore/internal/application/report"
	"github.com/emmebi/gestione-ore/internal/domain/timesheet"
	"github.com/emmebi/gestione-ore/pkg/dateutil"
)

var _ report.Exporter = (*RiepilogoExporter)(nil)

const sheetName = "Riepilogo Ore"

var header = []string{
	"Data", "Dipendente", "Stato", "Tipo Attività", "Nome Attività",
	"Ore", "Persone", "Ore Effettive",
}

var columnWidths = []float64{28, 20, 12, 12, 25, 10, 10, 12}

// RiepilogoExporter implementa report.Exporter su excelize.
type RiepilogoExporter struct{}

// NewRiepilogoExporter costruisce l'exporter.
func NewRiepilogoExporter() *RiepilogoExporter { return &RiepilogoExporter{} }

// Extension restituisce "xlsx".
func (e *RiepilogoExporter) Extension() string { return "xlsx" }

// Export genera il workbook del riepilogo mensile.
func (e *RiepilogoExporter) Export(rows []timesheet.EmployeeDays, month, year int) ([]byte, error) {
	f := excelize.NewFile()
	// Niente defer Close: WriteTo richiede il file ancora aperto

	index, err := f.NewSheet(sheetName)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("creazione foglio: %w", err)
	}
	f.DeleteSheet("Sheet1")
	f.SetActiveSheet(index)

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E6F3FF"}, Pattern: 1},
		Alignment: &excelize.Alignment{
			Horizontal: "center",
			Vertical:   "center",
		},
	})
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("stile intestazione: %w", err)
	}

	for col, title := range header {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("conversione coordinate: %w", err)
		}
		if err := f.SetCellValue(sheetName, cell, title); err != nil {
			f.Close()
			return nil, fmt.Errorf("scrittura intestazione %s: %w", cell, err)
		}
		if err := f.SetCellStyle(sheetName, cell, cell, headerStyle); err != nil {
			f.Close()
			return nil, fmt.Errorf("stile intestazione %s: %w", cell, err)
		}
	}
	for col, width := range columnWidths {
		name, err := excelize.ColumnNumberToName(col + 1)
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("nome colonna: %w", err)
		}
		if err := f.SetColWidth(sheetName, name, name, width); err != nil {
			f.Close()
			return nil, fmt.Errorf("larghezza colonna %s: %w", name, err)
		}
	}

	line := 2
	for _, row := range dataRows(rows) {
		for col, value := range row {
			cell, err := excelize.CoordinatesToCellName(col+1, line)
			if err != nil {
				f.Close()
				return nil, fmt.Errorf("conversione coordinate: %w", err)
			}
			if err := f.SetCellValue(sheetName, cell, value); err != nil {
				f.Close()
				return nil, fmt.Errorf("scrittura cella %s: %w", cell, err)
			}
		}
		line++
	}

	var buf bytes.Buffer
	if _, err := f.WriteTo(&buf); err != nil {
		f.Close()
		return nil, fmt.Errorf("serializzazione workbook: %w", err)
	}
	if err := f.Close(); err != nil {
		return nil, fmt.Errorf("chiusura workbook: %w", err)
	}
	return buf.Bytes(), nil
}

// dataRows appiattisce il riepilogo nelle righe del foglio.
func dataRows(rows []timesheet.EmployeeDays) [][]any {
	out := [][]any{}
	for _, row := range rows {
		for _, day := range row.Days {
			if len(day.Activities) == 0 {
				out = append(out, []any{
					dateutil.FormatLong(day.Date), row.Employee.Name, day.Status,
					"", "Nessuna attività", "00:00", 0, "00:00",
				})
				continue
			}
			for _, a := range day.Activities {
				out = append(out, []any{
					dateutil.FormatLong(day.Date),
					row.Employee.Name,
					day.Status,
					a.Kind,
					a.Name,
					timesheet.MinutesToHHMM(a.BaseMinutes),
					a.PeopleCount,
					timesheet.MinutesToHHMM(timesheet.CreditedMinutes(a)),
				})
			}
		}
	}
	return out
}
