// Package dateutil raccoglie le utilità di data condivise: tutte le date
// viaggiano come stringhe ISO "YYYY-MM-DD" (stesso formato delle chiavi di
// persistenza), la formattazione estesa è in italiano.
package dateutil

import (
	"fmt"
	"time"
)

// ISO layout delle date applicative.
const ISO = "2006-01-02"

var monthNames = [12]string{
	"Gennaio", "Febbraio", "Marzo", "Aprile", "Maggio", "Giugno",
	"Luglio", "Agosto", "Settembre", "Ottobre", "Novembre", "Dicembre",
}

var weekdayNames = [7]string{
	"domenica", "lunedì", "martedì", "mercoledì", "giovedì", "venerdì", "sabato",
}

// Today restituisce la data odierna in formato ISO.
func Today() string {
	return time.Now().Format(ISO)
}

// Yesterday restituisce la data di ieri in formato ISO.
func Yesterday() string {
	return time.Now().AddDate(0, 0, -1).Format(ISO)
}

// IsAllowed indica se un dipendente può inserire ore per la data indicata:
// solo oggi o ieri. L'amministratore non è soggetto a questo vincolo.
func IsAllowed(date string) bool {
	return IsAllowedAt(date, time.Now())
}

// IsAllowedAt come IsAllowed ma con "adesso" esplicito, per i test.
func IsAllowedAt(date string, now time.Time) bool {
	return date == now.Format(ISO) || date == now.AddDate(0, 0, -1).Format(ISO)
}

// MonthRange restituisce il primo e l'ultimo giorno del mese (ISO, inclusivi).
func MonthRange(year, month int) (start, end string) {
	first := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	last := first.AddDate(0, 1, -1)
	return first.Format(ISO), last.Format(ISO)
}

// MonthName restituisce il nome italiano del mese (1-12); vuoto se fuori range.
func MonthName(month int) string {
	if month < 1 || month > 12 {
		return ""
	}
	return monthNames[month-1]
}

// FormatLong rende una data ISO nel formato esteso italiano,
// es. "lunedì 15 gennaio 2024". Una data non parsabile torna vuota.
func FormatLong(date string) string {
	t, err := time.Parse(ISO, date)
	if err != nil {
		return ""
	}
	// I nomi dei mesi estesi sono minuscoli nel formato discorsivo
	month := []rune(monthNames[int(t.Month())-1])
	month[0] = month[0] + ('a' - 'A')
	return fmt.Sprintf("%s %d %s %d", weekdayNames[int(t.Weekday())], t.Day(), string(month), t.Year())
}

// Valid verifica che la stringa sia una data ISO ben formata.
func Valid(date string) bool {
	_, err := time.Parse(ISO, date)
	return err == nil
}
