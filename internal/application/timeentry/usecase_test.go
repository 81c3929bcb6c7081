package timeentry_test

import (
	"errors"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emmebi/gestione-ore/internal/application/dto"
	"github.com/emmebi/gestione-ore/internal/application/timeentry"
	"github.com/emmebi/gestione-ore/internal/domain"
	"github.com/emmebi/gestione-ore/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// Doppioni di test: orologio virtuale e repository in memoria
// ──────────────────────────────────────────────────────────────────────────────

// fakeClock avanza manualmente; i timer programmati scattano quando la
// lancetta supera la loro scadenza.
type fakeClock struct {
	mu     sync.Mutex
	now    time.Time
	timers []*fakeTimer
}

type fakeTimer struct {
	deadline time.Time
	fn       func()
	stopped  bool
	fired    bool
}

func (t *fakeTimer) Stop() bool {
	wasActive := !t.stopped && !t.fired
	t.stopped = true
	return wasActive
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2024, 1, 15, 8, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) AfterFunc(d time.Duration, fn func()) timeentry.Timer {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := &fakeTimer{deadline: c.now.Add(d), fn: fn}
	c.timers = append(c.timers, t)
	return t
}

// Advance sposta la lancetta e fa scattare i timer scaduti in ordine.
func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	due := []*fakeTimer{}
	for _, t := range c.timers {
		if !t.stopped && !t.fired && !t.deadline.After(c.now) {
			t.fired = true
			due = append(due, t)
		}
	}
	sort.Slice(due, func(i, j int) bool { return due[i].deadline.Before(due[j].deadline) })
	c.mu.Unlock()
	for _, t := range due {
		t.fn()
	}
}

// fakeRecordRepo tiene le giornate in memoria e conta i salvataggi.
type fakeRecordRepo struct {
	mu      sync.Mutex
	records map[string]entity.DailyRecord // chiave employeeID|date
	saves   int
	failing bool
}

func newFakeRecordRepo() *fakeRecordRepo {
	return &fakeRecordRepo{records: make(map[string]entity.DailyRecord)}
}

func (r *fakeRecordRepo) key(employeeID, date string) string { return employeeID + "|" + date }

func (r *fakeRecordRepo) Get(employeeID, date string) (*entity.DailyRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if rec, ok := r.records[r.key(employeeID, date)]; ok {
		copied := rec
		copied.Activities = append([]entity.Activity(nil), rec.Activities...)
		return &copied, nil
	}
	return entity.NewDailyRecord(date), nil
}

func (r *fakeRecordRepo) Save(employeeID, date string, record *entity.DailyRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failing {
		return errors.New("connessione persa")
	}
	r.saves++
	copied := *record
	copied.Activities = append([]entity.Activity(nil), record.Activities...)
	r.records[r.key(employeeID, date)] = copied
	return nil
}

func (r *fakeRecordRepo) GetRange(employeeID, start, end string) ([]entity.DailyRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []entity.DailyRecord
	for k, rec := range r.records {
		if strings.HasPrefix(k, employeeID+"|") && rec.Date >= start && rec.Date <= end {
			out = append(out, rec)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date > out[j].Date })
	return out, nil
}

func (r *fakeRecordRepo) DeleteByEmployee(employeeID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for k := range r.records {
		if strings.HasPrefix(k, employeeID+"|") {
			delete(r.records, k)
		}
	}
	return nil
}

func (r *fakeRecordRepo) saveCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.saves
}

func (r *fakeRecordRepo) stored(employeeID, date string) (entity.DailyRecord, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	rec, ok := r.records[r.key(employeeID, date)]
	return rec, ok
}

// fakeSiteRepo registro cantieri fisso.
type fakeSiteRepo struct {
	sites []entity.ConstructionSite
}

func (r *fakeSiteRepo) GetAll() ([]entity.ConstructionSite, error) { return r.sites, nil }
func (r *fakeSiteRepo) SaveAll(sites []entity.ConstructionSite) error {
	r.sites = sites
	return nil
}

const (
	testEmployee = "mario-rossi"
	testDate     = "2024-01-15"
	debounce     = time.Second
)

func newTestUseCase() (*timeentry.UseCase, *fakeRecordRepo, *fakeClock) {
	records := newFakeRecordRepo()
	sites := &fakeSiteRepo{sites: []entity.ConstructionSite{
		{ID: "cantiere-via-roma", Name: "Cantiere Via Roma", StandardMinutes: 480},
		{ID: "cantiere-lotto-b", Name: "Cantiere Lotto B", StandardMinutes: 240},
	}}
	clock := newFakeClock()
	return timeentry.NewUseCase(records, sites, clock, debounce), records, clock
}

func openSession(t *testing.T, uc *timeentry.UseCase, anyDate bool) *timeentry.DaySession {
	t.Helper()
	s, err := uc.Open(testEmployee, testDate, anyDate)
	require.NoError(t, err)
	return s
}

// ──────────────────────────────────────────────────────────────────────────────
// Apertura della giornata
// ──────────────────────────────────────────────────────────────────────────────

func TestOpen_MaterializzaGiornataDefault(t *testing.T) {
	uc, _, _ := newTestUseCase()
	s := openSession(t, uc, true)

	day := uc.Day(s)
	assert.Equal(t, testDate, day.Date)
	assert.Equal(t, entity.StatusNormal, day.Status)
	assert.Empty(t, day.Activities)
	assert.Equal(t, 0, day.Totals.TotalMinutes)
}

func TestOpen_DataMalformata(t *testing.T) {
	uc, _, _ := newTestUseCase()
	_, err := uc.Open(testEmployee, "15/01/2024", true)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestOpen_FinestraOggiIeriPerDipendenti(t *testing.T) {
	uc, _, _ := newTestUseCase()
	// una data d'archivio è fuori finestra per il dipendente...
	_, err := uc.Open(testEmployee, "2020-06-01", false)
	assert.ErrorIs(t, err, domain.ErrDateNotAllowed)
	// ...ma non per l'amministratore
	_, err = uc.Open(testEmployee, "2020-06-01", true)
	assert.NoError(t, err)
}

// ──────────────────────────────────────────────────────────────────────────────
// Mutazioni delle attività
// ──────────────────────────────────────────────────────────────────────────────

func TestAddSiteActivity_PrendeNomeEMinutiDalRegistro(t *testing.T) {
	uc, _, _ := newTestUseCase()
	s := openSession(t, uc, true)

	a, err := uc.AddSiteActivity(s, "cantiere-via-roma", 2)
	require.NoError(t, err)
	assert.Equal(t, entity.ActivityKindSite, a.Kind)
	assert.Equal(t, "Cantiere Via Roma", a.Name)
	assert.Equal(t, 480, a.BaseMinutes)
	assert.Equal(t, 240, a.EffectiveMinutes, "480 diviso 2 persone")
	assert.NotEmpty(t, a.ID)
}

func TestAddSiteActivity_CantiereInesistente(t *testing.T) {
	uc, _, _ := newTestUseCase()
	s := openSession(t, uc, true)

	_, err := uc.AddSiteActivity(s, "non-esiste", 1)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Empty(t, uc.Day(s).Activities)
}

func TestAddGenericActivity(t *testing.T) {
	uc, _, _ := newTestUseCase()
	s := openSession(t, uc, true)

	a, err := uc.AddGenericActivity(s, "  Manutenzione magazzino  ", 90, 1)
	require.NoError(t, err)
	assert.Equal(t, entity.ActivityKindGeneric, a.Kind)
	assert.Equal(t, "Manutenzione magazzino", a.Name, "il nome arriva ripulito")
	assert.Equal(t, 90, a.EffectiveMinutes)
}

func TestAddGenericActivity_InputInvalido(t *testing.T) {
	uc, _, _ := newTestUseCase()
	s := openSession(t, uc, true)

	_, err := uc.AddGenericActivity(s, "", 90, 1)
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "nome vuoto")
	_, err = uc.AddGenericActivity(s, "Pulizie", 1441, 1)
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "minuti oltre il tetto")
	_, err = uc.AddGenericActivity(s, "Pulizie", 90, 0)
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "zero persone")
}

func TestAdd_LimiteAttivitaPerGiornata(t *testing.T) {
	uc, _, _ := newTestUseCase()
	s := openSession(t, uc, true)

	for i := 0; i < 20; i++ {
		_, err := uc.AddGenericActivity(s, "Attività", 10, 1)
		require.NoError(t, err)
	}
	_, err := uc.AddGenericActivity(s, "Una di troppo", 10, 1)
	assert.ErrorIs(t, err, domain.ErrTooManyEntries)
	assert.Len(t, uc.Day(s).Activities, 20)
}

func TestUpdateActivity_RicalcolaIlCampoDerivato(t *testing.T) {
	uc, _, _ := newTestUseCase()
	s := openSession(t, uc, true)

	a, err := uc.AddSiteActivity(s, "cantiere-via-roma", 2)
	require.NoError(t, err)
	require.Equal(t, 240, a.EffectiveMinutes)

	// da 2 a 3 persone: si riparte dai 480 base, non dai 240 derivati
	require.NoError(t, uc.UpdateActivity(s, a.ID, "persone", 3))
	day := uc.Day(s)
	require.Len(t, day.Activities, 1)
	assert.Equal(t, 160, day.Activities[0].EffectiveMinutes)

	require.NoError(t, uc.UpdateActivity(s, a.ID, "minuti", 600))
	day = uc.Day(s)
	assert.Equal(t, 200, day.Activities[0].EffectiveMinutes)
}

func TestUpdateActivity_ValoreFuoriRangeLasciaTuttoIntatto(t *testing.T) {
	uc, _, _ := newTestUseCase()
	s := openSession(t, uc, true)

	a, err := uc.AddGenericActivity(s, "Pulizie", 120, 2)
	require.NoError(t, err)

	assert.ErrorIs(t, uc.UpdateActivity(s, a.ID, "minuti", 2000), domain.ErrInvalidInput)
	assert.ErrorIs(t, uc.UpdateActivity(s, a.ID, "persone", 0), domain.ErrInvalidInput)
	assert.ErrorIs(t, uc.UpdateActivity(s, a.ID, "colore", 3), domain.ErrInvalidInput, "campo sconosciuto")

	day := uc.Day(s)
	assert.Equal(t, 120, day.Activities[0].BaseMinutes)
	assert.Equal(t, 2, day.Activities[0].PeopleCount)
	assert.Equal(t, 60, day.Activities[0].EffectiveMinutes)
}

func TestUpdateActivity_IdInesistente(t *testing.T) {
	uc, _, _ := newTestUseCase()
	s := openSession(t, uc, true)
	assert.ErrorIs(t, uc.UpdateActivity(s, "fantasma", "minuti", 60), domain.ErrNotFound)
}

func TestRemoveActivity_PreservaLOrdineDelleAltre(t *testing.T) {
	uc, _, _ := newTestUseCase()
	s := openSession(t, uc, true)

	prima, _ := uc.AddGenericActivity(s, "Prima", 10, 1)
	seconda, _ := uc.AddGenericActivity(s, "Seconda", 20, 1)
	terza, _ := uc.AddGenericActivity(s, "Terza", 30, 1)

	require.NoError(t, uc.RemoveActivity(s, seconda.ID))
	day := uc.Day(s)
	require.Len(t, day.Activities, 2)
	assert.Equal(t, prima.ID, day.Activities[0].ID)
	assert.Equal(t, terza.ID, day.Activities[1].ID)

	assert.ErrorIs(t, uc.RemoveActivity(s, seconda.ID), domain.ErrNotFound)
}

func TestSetStatus(t *testing.T) {
	uc, _, _ := newTestUseCase()
	s := openSession(t, uc, true)

	require.NoError(t, uc.SetStatus(s, entity.StatusSick))
	assert.Equal(t, entity.StatusSick, uc.Day(s).Status)

	assert.ErrorIs(t, uc.SetStatus(s, "Festa"), domain.ErrInvalidInput)
}

// Una giornata con attività mantiene i suoi minuti anche con stato non
// lavorativo: stato e attività sono indipendenti.
func TestSetStatus_NonAzzeraLeAttivita(t *testing.T) {
	uc, _, _ := newTestUseCase()
	s := openSession(t, uc, true)

	_, err := uc.AddGenericActivity(s, "Mattinata", 240, 1)
	require.NoError(t, err)
	require.NoError(t, uc.SetStatus(s, entity.StatusRest))

	day := uc.Day(s)
	assert.Equal(t, entity.StatusRest, day.Status)
	assert.Equal(t, 240, day.Totals.TotalMinutes)
}

// ──────────────────────────────────────────────────────────────────────────────
// Autosalvataggio differito
// ──────────────────────────────────────────────────────────────────────────────

func TestAutosave_ScattaDopoIlPeriodoDiQuiete(t *testing.T) {
	uc, records, clock := newTestUseCase()
	s := openSession(t, uc, true)

	_, err := uc.AddGenericActivity(s, "Pulizie", 60, 1)
	require.NoError(t, err)
	assert.Equal(t, 0, records.saveCount(), "nessun salvataggio prima della quiete")

	clock.Advance(debounce)
	assert.Equal(t, 1, records.saveCount())

	rec, ok := records.stored(testEmployee, testDate)
	require.True(t, ok)
	assert.Len(t, rec.Activities, 1)
}

func TestAutosave_OgniMutazioneRiavviaIlTimer(t *testing.T) {
	uc, records, clock := newTestUseCase()
	s := openSession(t, uc, true)

	_, err := uc.AddGenericActivity(s, "Prima", 60, 1)
	require.NoError(t, err)
	clock.Advance(debounce / 2)

	_, err = uc.AddGenericActivity(s, "Seconda", 30, 1)
	require.NoError(t, err)
	clock.Advance(debounce / 2)
	assert.Equal(t, 0, records.saveCount(), "il timer è stato riavviato dalla seconda mutazione")

	clock.Advance(debounce / 2)
	assert.Equal(t, 1, records.saveCount(), "un solo salvataggio per la raffica")

	rec, _ := records.stored(testEmployee, testDate)
	assert.Len(t, rec.Activities, 2, "il salvataggio porta lo stato finale")
}

func TestSave_AnnullaIlTimerPendente(t *testing.T) {
	uc, records, clock := newTestUseCase()
	s := openSession(t, uc, true)

	_, err := uc.AddGenericActivity(s, "Pulizie", 60, 1)
	require.NoError(t, err)

	require.NoError(t, uc.Save(s))
	assert.Equal(t, 1, records.saveCount())

	// il timer del debounce non deve produrre un secondo salvataggio
	clock.Advance(debounce * 2)
	assert.Equal(t, 1, records.saveCount())

	state, lastSaved := s.SaveState()
	assert.Equal(t, timeentry.SaveSaved, state)
	assert.NotEmpty(t, lastSaved)
}

func TestSave_ErrorePersistenzaNonPerdeLaSessione(t *testing.T) {
	uc, records, _ := newTestUseCase()
	s := openSession(t, uc, true)

	_, err := uc.AddGenericActivity(s, "Pulizie", 60, 1)
	require.NoError(t, err)

	records.failing = true
	require.Error(t, uc.Save(s))
	state, _ := s.SaveState()
	assert.Equal(t, timeentry.SaveFailed, state)
	assert.Len(t, uc.Day(s).Activities, 1, "le modifiche restano in sessione")

	// ristabilita la connessione, il retry riesce
	records.failing = false
	require.NoError(t, uc.Save(s))
	state, _ = s.SaveState()
	assert.Equal(t, timeentry.SaveSaved, state)
}

// ──────────────────────────────────────────────────────────────────────────────
// Sovrascrittura admin e vista della giornata
// ──────────────────────────────────────────────────────────────────────────────

func TestReplaceDay_RicalcolaSempreLatoServer(t *testing.T) {
	uc, records, _ := newTestUseCase()

	out, err := uc.ReplaceDay(testEmployee, testDate, dto.ReplaceDayRequest{
		Status: entity.StatusNormal,
		Activities: []dto.ReplaceDayActivity{
			{Kind: entity.ActivityKindSite, Name: "Cantiere Via Roma", BaseMinutes: 480, PeopleCount: 3},
			{Kind: entity.ActivityKindGeneric, Name: "Carico materiale", BaseMinutes: 60, PeopleCount: 1},
		},
	})
	require.NoError(t, err)
	require.Len(t, out.Activities, 2)
	assert.Equal(t, 160, out.Activities[0].EffectiveMinutes, "il derivato è ricalcolato, qualunque cosa mandi il client")
	assert.Equal(t, 220, out.Totals.TotalMinutes)
	assert.NotEmpty(t, out.Activities[0].ID, "alle attività senza id ne viene assegnato uno")

	_, ok := records.stored(testEmployee, testDate)
	assert.True(t, ok)
}

func TestReplaceDay_InputInvalidoNessunaScrittura(t *testing.T) {
	uc, records, _ := newTestUseCase()

	_, err := uc.ReplaceDay(testEmployee, testDate, dto.ReplaceDayRequest{
		Status: entity.StatusNormal,
		Activities: []dto.ReplaceDayActivity{
			{Kind: entity.ActivityKindGeneric, Name: "Valida", BaseMinutes: 60, PeopleCount: 1},
			{Kind: entity.ActivityKindGeneric, Name: "Rotta", BaseMinutes: 9999, PeopleCount: 1},
		},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Equal(t, 0, records.saveCount(), "tutto o niente")

	_, err = uc.ReplaceDay(testEmployee, testDate, dto.ReplaceDayRequest{Status: "Boh"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestDay_TotaliCoerentiConLeAttivita(t *testing.T) {
	uc, _, _ := newTestUseCase()
	s := openSession(t, uc, true)

	_, err := uc.AddSiteActivity(s, "cantiere-via-roma", 2) // 240
	require.NoError(t, err)
	_, err = uc.AddSiteActivity(s, "cantiere-lotto-b", 1) // 240
	require.NoError(t, err)

	day := uc.Day(s)
	assert.Equal(t, 480, day.Totals.TotalMinutes)
	assert.Equal(t, "08:00", day.Totals.TotalHHMM)
	assert.Equal(t, "8.00", day.Totals.TotalDecimal)
	assert.Equal(t, 2, day.Totals.ActivityCount)
	assert.Equal(t, "lunedì 15 gennaio 2024", day.DateLong)
}
