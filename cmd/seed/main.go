// seed carica le anagrafiche iniziali (dipendenti e cantieri) da file CSV
// esportati dal gestionale, codificati Windows-1252 e separati da punto e
// virgola.
//
// Uso: go run ./cmd/seed dipendenti.csv cantieri.csv
// Formato dipendenti: nome;password (una riga per dipendente)
// Formato cantieri:   nome;minuti_standard
//
// Il caricamento sovrascrive il registro esistente del tenant configurato.
package main

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/emmebi/gestione-ore/internal/domain/entity"
	"github.com/emmebi/gestione-ore/internal/domain/timesheet"
	"github.com/emmebi/gestione-ore/internal/infrastructure/postgres"
	"github.com/emmebi/gestione-ore/pkg/config"
)

func main() {
	if len(os.Args) != 3 {
		fmt.Fprintln(os.Stderr, "uso: seed <dipendenti.csv> <cantieri.csv>")
		os.Exit(1)
	}

	employees, err := readEmployees(os.Args[1])
	if err != nil {
		fmt.Fprintf(os.Stderr, "lettura dipendenti: %v\n", err)
		os.Exit(1)
	}
	sites, err := readSites(os.Args[2])
	if err != nil {
		fmt.Fprintf(os.Stderr, "lettura cantieri: %v\n", err)
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "caricamento configurazione: %v\n", err)
		os.Exit(1)
	}
	pool, err := postgres.NewPool(context.Background(), cfg.DB)
	if err != nil {
		fmt.Fprintf(os.Stderr, "connessione a PostgreSQL: %v\n", err)
		os.Exit(1)
	}
	defer pool.Close()

	if err := postgres.NewEmployeeRepository(pool, cfg.Tenant.ID).SaveAll(employees); err != nil {
		fmt.Fprintf(os.Stderr, "salvataggio dipendenti: %v\n", err)
		os.Exit(1)
	}
	if err := postgres.NewSiteRepository(pool, cfg.Tenant.ID).SaveAll(sites); err != nil {
		fmt.Fprintf(os.Stderr, "salvataggio cantieri: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("caricati %d dipendenti e %d cantieri (tenant %s)\n",
		len(employees), len(sites), cfg.Tenant.ID)
}

// openCSV apre un export del gestionale: Windows-1252, separatore ";".
func openCSV(path string) (*csv.Reader, func() error, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	r := csv.NewReader(transform.NewReader(f, charmap.Windows1252.NewDecoder()))
	r.Comma = ';'
	r.FieldsPerRecord = 2
	r.TrimLeadingSpace = true
	return r, f.Close, nil
}

func readEmployees(path string) ([]entity.Employee, error) {
	r, closeFn, err := openCSV(path)
	if err != nil {
		return nil, err
	}
	defer closeFn()

	rows, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	seen := make(map[string]bool)
	out := make([]entity.Employee, 0, len(rows))
	for i, row := range rows {
		name := timesheet.Sanitize(row[0])
		password := strings.TrimSpace(row[1])
		if name == "" || password == "" {
			return nil, fmt.Errorf("riga %d: nome e password sono richiesti", i+1)
		}
		id := timesheet.Slug(name)
		if seen[id] {
			return nil, fmt.Errorf("riga %d: dipendente duplicato %q", i+1, name)
		}
		seen[id] = true
		out = append(out, entity.Employee{ID: id, Name: name, Password: password})
	}
	return out, nil
}

func readSites(path string) ([]entity.ConstructionSite, error) {
	r, closeFn, err := openCSV(path)
	if err != nil {
		return nil, err
	}
	defer closeFn()

	rows, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	seen := make(map[string]bool)
	out := make([]entity.ConstructionSite, 0, len(rows))
	for i, row := range rows {
		name := timesheet.Sanitize(row[0])
		minutes, err := strconv.Atoi(strings.TrimSpace(row[1]))
		if err != nil {
			return nil, fmt.Errorf("riga %d: minuti non numerici %q", i+1, row[1])
		}
		if name == "" || !timesheet.ValidMinutes(minutes) {
			return nil, fmt.Errorf("riga %d: nome richiesto e minuti tra 0 e 1440", i+1)
		}
		id := timesheet.Slug(name)
		if seen[id] {
			return nil, fmt.Errorf("riga %d: cantiere duplicato %q", i+1, name)
		}
		seen[id] = true
		out = append(out, entity.ConstructionSite{ID: id, Name: name, StandardMinutes: minutes})
	}
	return out, nil
}
