// Package timesheet contiene il cuore del modello: il calcolo dei minuti
// effettivi, le conversioni orarie e l'aggregazione multi-dipendente.
// Ogni vista (inserimento, modifica admin, export) passa da qui e deve
// riprodurre gli stessi totali.
package timesheet

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/emmebi/gestione-ore/internal/domain/entity"
)

var sixty = decimal.NewFromInt(60)

// EffectiveMinutes calcola i minuti accreditati: il costo del lavoro è diviso
// tra le persone assegnate. Arrotondamento half-away-from-zero sul quoziente.
// peopleCount è garantito >= 1 dalla validazione, quindi nessuna divisione per
// zero; base 0 produce 0 qualunque sia il numero di persone.
func EffectiveMinutes(baseMinutes, peopleCount int) int {
	if baseMinutes == 0 {
		return 0
	}
	return int(math.Round(float64(baseMinutes) / float64(peopleCount)))
}

// CreditedMinutes restituisce i minuti da accreditare per una singola
// attività: il campo derivato se presente, altrimenti i minuti base
// (retro-compatibilità con i documenti salvati prima dell'introduzione del
// campo derivato).
func CreditedMinutes(a entity.Activity) int {
	if a.EffectiveMinutes != 0 {
		return a.EffectiveMinutes
	}
	return a.BaseMinutes
}

// TotalEffectiveMinutes somma i minuti accreditati di una lista di attività.
func TotalEffectiveMinutes(activities []entity.Activity) int {
	total := 0
	for _, a := range activities {
		total += CreditedMinutes(a)
	}
	return total
}

// DayTotals è l'aggregato di giornata ricalcolato dopo ogni mutazione.
type DayTotals struct {
	TotalMinutes  int    `json:"total_minutes"`
	TotalHHMM     string `json:"total_hhmm"`
	TotalDecimal  string `json:"total_decimal"`
	ActivityCount int    `json:"activity_count"`
}

// ComputeDayTotals produce i totali di giornata a partire dalle attività.
// Le tre presentazioni (HH:MM, decimale, minuti grezzi) leggono lo stesso
// totale sorgente.
func ComputeDayTotals(activities []entity.Activity) DayTotals {
	total := TotalEffectiveMinutes(activities)
	return DayTotals{
		TotalMinutes:  total,
		TotalHHMM:     MinutesToHHMM(total),
		TotalDecimal:  MinutesToDecimal(total),
		ActivityCount: len(activities),
	}
}

// MinutesToHHMM rende i minuti come "HH:MM" con zero padding.
// Valori nulli o negativi rendono "00:00".
func MinutesToHHMM(minutes int) string {
	if minutes <= 0 {
		return "00:00"
	}
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// MinutesToDecimal rende i minuti come ore decimali con due cifre frazionarie
// (90 -> "1.50"). Valori nulli o negativi rendono "0.00".
func MinutesToDecimal(minutes int) string {
	if minutes <= 0 {
		return "0.00"
	}
	return decimal.NewFromInt(int64(minutes)).Div(sixty).StringFixed(2)
}

// HHMMToMinutes è l'inversa di MinutesToHHMM: "01:30" -> 90.
// Stringa vuota o malformata rende 0.
func HHMMToMinutes(s string) int {
	if s == "" {
		return 0
	}
	parts := strings.SplitN(s, ":", 2)
	hours, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0
	}
	minutes := 0
	if len(parts) == 2 {
		minutes, _ = strconv.Atoi(parts[1])
	}
	return hours*60 + minutes
}
