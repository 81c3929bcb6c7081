package timeentry

import (
	"sync"
	"time"
)

// Clock astrae il tempo per rendere testabile il salvataggio differito:
// nei test si avanza un orologio virtuale invece di dormire.
type Clock interface {
	Now() time.Time
	AfterFunc(d time.Duration, fn func()) Timer
}

// Timer è il timer restituito da AfterFunc, fermabile.
type Timer interface {
	Stop() bool
}

// RealClock implementa Clock sul tempo reale.
type RealClock struct{}

func (RealClock) Now() time.Time { return time.Now() }

func (RealClock) AfterFunc(d time.Duration, fn func()) Timer {
	return time.AfterFunc(d, fn)
}

// Autosaver coalizza le mutazioni in un unico salvataggio dopo un periodo di
// quiete: ogni nuova mutazione riavvia il timer invece di accodare un secondo
// salvataggio (vince l'ultima chiamata nella finestra).
type Autosaver struct {
	mu    sync.Mutex
	clock Clock
	delay time.Duration
	fn    func()
	timer Timer
}

// NewAutosaver costruisce l'autosaver; fn è il salvataggio da eseguire.
func NewAutosaver(clock Clock, delay time.Duration, fn func()) *Autosaver {
	return &Autosaver{clock: clock, delay: delay, fn: fn}
}

// Schedule programma il salvataggio dopo il periodo di quiete, annullando
// l'eventuale timer pendente.
func (a *Autosaver) Schedule() {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.timer != nil {
		a.timer.Stop()
	}
	a.timer = a.clock.AfterFunc(a.delay, func() {
		a.mu.Lock()
		a.timer = nil
		a.mu.Unlock()
		a.fn()
	})
}

// Flush annulla il timer pendente ed esegue subito il salvataggio.
func (a *Autosaver) Flush() {
	a.mu.Lock()
	if a.timer != nil {
		a.timer.Stop()
		a.timer = nil
	}
	a.mu.Unlock()
	a.fn()
}

// Stop annulla il timer pendente senza salvare.
func (a *Autosaver) Stop() {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.timer != nil {
		a.timer.Stop()
		a.timer = nil
	}
}
