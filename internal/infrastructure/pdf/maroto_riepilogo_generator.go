// Package pdf genera la versione stampabile del riepilogo ore mensile.
//
// Layout della pagina A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Riepilogo Ore <Mese> <Anno>  │  Totali complessivi │
//	│  ─────────────────────────────────────────────────────────  │
//	│  per dipendente:                                            │
//	│    nome + totale del periodo                                │
//	│    TABELLA: Data | Stato | Tipo | Attività | Ore | Persone  │
//	│             | Ore Effettive                                 │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"fmt"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/emmebi/gestione-ore/internal/application/report"
	"github.com/emmebi/gestione-ore/internal/domain/entity"
	"github.com/emmebi/gestione-ore/internal/domain/timesheet"
	"github.com/emmebi/gestione-ore/pkg/dateutil"
)

var _ report.Exporter = (*RiepilogoGenerator)(nil)

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// RiepilogoGenerator implementa report.Exporter con Maroto v2.
type RiepilogoGenerator struct{}

// NewRiepilogoGenerator costruisce il generatore.
func NewRiepilogoGenerator() *RiepilogoGenerator { return &RiepilogoGenerator{} }

// Extension restituisce "pdf".
func (g *RiepilogoGenerator) Extension() string { return "pdf" }

// Export genera il PDF e ne restituisce i byte.
func (g *RiepilogoGenerator) Export(rows []timesheet.EmployeeDays, month, year int) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Riepilogo Ore", true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(rows, month, year))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	for _, r := range rows {
		m.AddRows(employeeHeaderRow(r))
		m.AddRows(tableHeaderRow())
		for _, dayRow := range dayRows(r) {
			m.AddRows(dayRow)
		}
		m.AddRows(line.NewRow(2, props.Line{Color: colorGray, Thickness: 0.3}))
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generazione documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// headerRow: titolo del riepilogo a sinistra, totali complessivi a destra.
func headerRow(rows []timesheet.EmployeeDays, month, year int) core.Row {
	stats := timesheet.Summarize(rows)
	return row.New(16).Add(
		col.New(7).Add(
			text.New(fmt.Sprintf("Riepilogo Ore %s %d", dateutil.MonthName(month), year), props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
		),
		col.New(5).Add(
			text.New("Totale ore: "+stats.TotalHHMM, props.Text{
				Style: fontstyle.Bold, Size: 10, Align: align.Right, Top: 2,
			}),
			text.New(fmt.Sprintf("Giorni lavorati: %d   |   Attività: %d",
				stats.WorkingDays, stats.TotalActivities,
			), props.Text{Size: 8, Align: align.Right, Top: 9, Color: colorGray}),
		),
	)
}

// employeeHeaderRow: nome del dipendente e totale del periodo.
func employeeHeaderRow(r timesheet.EmployeeDays) core.Row {
	total := 0
	for _, day := range r.Days {
		total += timesheet.TotalEffectiveMinutes(day.Activities)
	}
	return row.New(10).Add(
		col.New(8).Add(
			text.New(r.Employee.Name, props.Text{
				Style: fontstyle.Bold, Size: 11, Top: 2,
			}),
		),
		col.New(4).Add(
			text.New("Ore del periodo: "+timesheet.MinutesToHHMM(total), props.Text{
				Size: 9, Align: align.Right, Top: 3, Color: colorGray,
			}),
		),
	)
}

// tableHeaderRow: intestazione della tabella giornate.
func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 1,
		}))
	}
	return row.New(6).Add(
		h("Data", 3, align.Left),
		h("Stato", 1, align.Left),
		h("Tipo", 1, align.Left),
		h("Attività", 3, align.Left),
		h("Ore", 1, align.Right),
		h("Persone", 1, align.Right),
		h("Effettive", 2, align.Right),
	)
}

// dayRows: una riga per attività, una riga segnaposto per i giorni vuoti.
func dayRows(r timesheet.EmployeeDays) []core.Row {
	out := make([]core.Row, 0, dayCount(r.Days))
	for _, day := range r.Days {
		if len(day.Activities) == 0 {
			out = append(out, row.New(6).Add(
				cell(dateutil.FormatLong(day.Date), 3, align.Left),
				cell(day.Status, 1, align.Left),
				cell("", 1, align.Left),
				cell("Nessuna attività", 3, align.Left),
				cell("00:00", 1, align.Right),
				cell("0", 1, align.Right),
				cell("00:00", 2, align.Right),
			))
			continue
		}
		for i, a := range day.Activities {
			date, status := "", ""
			if i == 0 {
				date, status = dateutil.FormatLong(day.Date), day.Status
			}
			out = append(out, row.New(6).Add(
				cell(date, 3, align.Left),
				cell(status, 1, align.Left),
				cell(a.Kind, 1, align.Left),
				cell(a.Name, 3, align.Left),
				cell(timesheet.MinutesToHHMM(a.BaseMinutes), 1, align.Right),
				cell(fmt.Sprintf("%d", a.PeopleCount), 1, align.Right),
				cell(timesheet.MinutesToHHMM(timesheet.CreditedMinutes(a)), 2, align.Right),
			))
		}
	}
	return out
}

func cell(value string, size int, a align.Type) core.Col {
	return col.New(size).Add(text.New(value, props.Text{Size: 8, Align: a, Top: 1}))
}

// dayCount è usato solo per dimensionare le slice in anticipo.
func dayCount(days []entity.DailyRecord) int {
	n := 0
	for _, d := range days {
		if len(d.Activities) == 0 {
			n++
			continue
		}
		n += len(d.Activities)
	}
	return n
}
