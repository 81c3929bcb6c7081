package timesheet

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Limiti di validazione delle attività.
const (
	MinMinutes = 0
	MaxMinutes = 1440 // 24 ore
	MinPeople  = 1
	MaxPeople  = 50

	// MaxActivitiesPerDay limite superiore di voci in una singola giornata.
	MaxActivitiesPerDay = 20
)

var (
	whitespaceRun = regexp.MustCompile(`\s+`)
	nonSlugChars  = regexp.MustCompile(`[^a-z0-9-]`)
)

// ValidMinutes indica se il valore è nel range ammesso per i minuti base.
func ValidMinutes(v int) bool {
	return v >= MinMinutes && v <= MaxMinutes
}

// ValidPeople indica se il valore è nel range ammesso per il numero di persone.
func ValidPeople(v int) bool {
	return v >= MinPeople && v <= MaxPeople
}

// Sanitize ripulisce l'input utente: trim e rimozione delle parentesi angolari.
func Sanitize(s string) string {
	return strings.NewReplacer("<", "", ">", "").Replace(strings.TrimSpace(s))
}

// Slug deriva l'id di dipendenti e cantieri dal nome: minuscolo, sequenze di
// spazi sostituite da un trattino, ogni altro carattere fuori da [a-z0-9-]
// eliminato. È idempotente; l'unicità è verificata dal chiamante contro il
// registro esistente (collisione -> errore, nessun suffisso automatico).
func Slug(name string) string {
	s := strings.ToLower(name)
	s = whitespaceRun.ReplaceAllString(s, "-")
	return nonSlugChars.ReplaceAllString(s, "")
}

// NewActivityID genera un id "abbastanza unico in pratica" per un'attività:
// base, timestamp in millisecondi e un suffisso casuale corto. L'unicità è
// best-effort dentro la lista attività di una giornata, non crittografica.
func NewActivityID(base string) string {
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:9]
	return fmt.Sprintf("%s-%d-%s", base, time.Now().UnixMilli(), suffix)
}
