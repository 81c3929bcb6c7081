package excel_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/emmebi/gestione-ore/internal/domain/entity"
	"github.com/emmebi/gestione-ore/internal/domain/timesheet"
	"github.com/emmebi/gestione-ore/internal/infrastructure/excel"
)

func sampleRows() []timesheet.EmployeeDays {
	return []timesheet.EmployeeDays{
		{
			Employee: entity.Employee{ID: "mario-rossi", Name: "Mario Rossi"},
			Days: []entity.DailyRecord{
				{Date: "2024-01-15", Status: entity.StatusNormal, Activities: []entity.Activity{
					{ID: "a1", Kind: entity.ActivityKindSite, Name: "Cantiere Via Roma", BaseMinutes: 480, PeopleCount: 2, EffectiveMinutes: 240},
					{ID: "a2", Kind: entity.ActivityKindGeneric, Name: "Carico materiale", BaseMinutes: 60, PeopleCount: 1, EffectiveMinutes: 60},
				}},
				// giornata di ferie senza attività: riga segnaposto
				{Date: "2024-01-14", Status: entity.StatusVacation, Activities: []entity.Activity{}},
			},
		},
	}
}

func TestExport_WorkbookLeggibile(t *testing.T) {
	exporter := excel.NewRiepilogoExporter()
	content, err := exporter.Export(sampleRows(), 1, 2024)
	require.NoError(t, err)
	require.NotEmpty(t, content)

	f, err := excelize.OpenReader(bytes.NewReader(content))
	require.NoError(t, err, "il file prodotto deve riaprirsi con excelize")
	defer f.Close()

	rows, err := f.GetRows("Riepilogo Ore")
	require.NoError(t, err)
	require.Len(t, rows, 4, "intestazione + due attività + segnaposto ferie")

	assert.Equal(t, "Data", rows[0][0])
	assert.Equal(t, "Ore Effettive", rows[0][7])

	// prima attività: il cantiere con i minuti divisi per due persone
	assert.Equal(t, "lunedì 15 gennaio 2024", rows[1][0])
	assert.Equal(t, "Mario Rossi", rows[1][1])
	assert.Equal(t, "cantiere", rows[1][3])
	assert.Equal(t, "08:00", rows[1][5])
	assert.Equal(t, "04:00", rows[1][7])

	// giornata di ferie: segnaposto con zero ore
	assert.Equal(t, entity.StatusVacation, rows[3][2])
	assert.Equal(t, "Nessuna attività", rows[3][4])
	assert.Equal(t, "00:00", rows[3][7])
}

func TestExport_RiepilogoVuoto(t *testing.T) {
	exporter := excel.NewRiepilogoExporter()
	content, err := exporter.Export(nil, 2, 2024)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(content))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Riepilogo Ore")
	require.NoError(t, err)
	require.Len(t, rows, 1, "solo l'intestazione")
}

func TestExtension(t *testing.T) {
	assert.Equal(t, "xlsx", excel.NewRiepilogoExporter().Extension())
}
