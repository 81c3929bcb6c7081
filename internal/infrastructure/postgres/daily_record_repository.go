package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/emmebi/gestione-ore/internal/domain/entity"
	"github.com/emmebi/gestione-ore/internal/domain/repository"
)

var _ repository.DailyRecordRepository = (*DailyRecordRepo)(nil)

// DailyRecordRepo giornate lavorative: una riga per (tenant, dipendente, data),
// attività in JSONB, salvataggio sempre a sovrascrittura completa.
type DailyRecordRepo struct {
	q      Querier
	tenant string
}

// NewDailyRecordRepository costruisce l'adapter. Passare pool o tx (Querier).
func NewDailyRecordRepository(q Querier, tenant string) *DailyRecordRepo {
	return &DailyRecordRepo{q: q, tenant: tenant}
}

// Get legge la giornata; se la riga non esiste materializza il default
// {Normale, []} senza scriverlo sul database.
func (r *DailyRecordRepo) Get(employeeID, date string) (*entity.DailyRecord, error) {
	var (
		status       string
		activities   []byte
		lastModified time.Time
	)
	err := r.q.QueryRow(context.Background(), `
		SELECT status, activities, last_modified
		FROM daily_records
		WHERE tenant_id = $1 AND employee_id = $2 AND date = $3`,
		r.tenant, employeeID, date,
	).Scan(&status, &activities, &lastModified)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return entity.NewDailyRecord(date), nil
		}
		return nil, fmt.Errorf("lettura giornata: %w", err)
	}
	return scanRecord(date, status, activities, lastModified)
}

// Save sovrascrive l'intera giornata; last_modified è timbrato qui, lato server.
func (r *DailyRecordRepo) Save(employeeID, date string, record *entity.DailyRecord) error {
	activities := record.Activities
	if activities == nil {
		activities = []entity.Activity{}
	}
	data, err := json.Marshal(activities)
	if err != nil {
		return fmt.Errorf("codifica attività: %w", err)
	}
	status := record.Status
	if status == "" {
		status = entity.StatusNormal
	}
	_, err = r.q.Exec(context.Background(), `
		INSERT INTO daily_records (tenant_id, employee_id, date, status, activities, last_modified)
		VALUES ($1, $2, $3, $4, $5, now())
		ON CONFLICT (tenant_id, employee_id, date)
		DO UPDATE SET status = EXCLUDED.status, activities = EXCLUDED.activities, last_modified = now()`,
		r.tenant, employeeID, date, status, data,
	)
	if err != nil {
		return fmt.Errorf("salvataggio giornata: %w", err)
	}
	return nil
}

// GetRange restituisce le giornate con data in [start, end] inclusivi,
// ordinate discendenti per data (la più recente per prima).
func (r *DailyRecordRepo) GetRange(employeeID, start, end string) ([]entity.DailyRecord, error) {
	rows, err := r.q.Query(context.Background(), `
		SELECT to_char(date, 'YYYY-MM-DD'), status, activities, last_modified
		FROM daily_records
		WHERE tenant_id = $1 AND employee_id = $2 AND date >= $3 AND date <= $4
		ORDER BY date DESC`,
		r.tenant, employeeID, start, end,
	)
	if err != nil {
		return nil, fmt.Errorf("lettura periodo: %w", err)
	}
	defer rows.Close()
	records := []entity.DailyRecord{}
	for rows.Next() {
		var (
			date         string
			status       string
			activities   []byte
			lastModified time.Time
		)
		if err := rows.Scan(&date, &status, &activities, &lastModified); err != nil {
			return nil, fmt.Errorf("scan giornata: %w", err)
		}
		record, err := scanRecord(date, status, activities, lastModified)
		if err != nil {
			return nil, err
		}
		records = append(records, *record)
	}
	return records, rows.Err()
}

// DeleteByEmployee elimina tutte le giornate del dipendente.
func (r *DailyRecordRepo) DeleteByEmployee(employeeID string) error {
	_, err := r.q.Exec(context.Background(),
		`DELETE FROM daily_records WHERE tenant_id = $1 AND employee_id = $2`,
		r.tenant, employeeID,
	)
	if err != nil {
		return fmt.Errorf("eliminazione giornate dipendente: %w", err)
	}
	return nil
}

func scanRecord(date, status string, activities []byte, lastModified time.Time) (*entity.DailyRecord, error) {
	record := entity.NewDailyRecord(date)
	record.Status = status
	record.LastModified = lastModified.Format(time.RFC3339)
	if len(activities) > 0 {
		if err := json.Unmarshal(activities, &record.Activities); err != nil {
			return nil, fmt.Errorf("decodifica attività: %w", err)
		}
	}
	return record, nil
}
