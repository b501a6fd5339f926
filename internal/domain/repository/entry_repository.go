package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Bearmun/vossenjacht/internal/common"
	"github.com/Bearmun/vossenjacht/internal/domain/model"
	"github.com/jackc/pgx/v5/pgconn"
)

type EntryRepository interface {
	Create(ctx context.Context, tx *sql.Tx, entry *model.Entry) error
	FindByID(ctx context.Context, id string) (*model.Entry, error)
	// ListByEvent and ListAll join the owning event's name for display.
	ListByEvent(ctx context.Context, eventID string) ([]model.Entry, error)
	ListAll(ctx context.Context) ([]model.Entry, error)
	Update(ctx context.Context, tx *sql.Tx, entry *model.Entry) error
	Delete(ctx context.Context, tx *sql.Tx, id string) error
	DeleteByEvent(ctx context.Context, tx *sql.Tx, eventID string) (int64, error)
	DeleteAll(ctx context.Context, tx *sql.Tx) (int64, error)
}

type pgEntryRepository struct {
	db *sql.DB
}

func NewPgEntryRepository(db *sql.DB) EntryRepository {
	return &pgEntryRepository{db: db}
}

func (r *pgEntryRepository) Create(ctx context.Context, tx *sql.Tx, entry *model.Entry) error {
	query := `INSERT INTO entries
	          (id, participant, start_reading, end_reading, arrival_time, distance, duration_minutes, event_id, submitter_id)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := pick(r.db, tx).ExecContext(ctx, query,
		entry.ID, entry.Participant, entry.StartReading, entry.EndReading, entry.ArrivalTime,
		entry.Distance, entry.Duration, entry.EventID, entry.SubmitterID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return fmt.Errorf("entry references a missing event or submitter: %w", common.ErrConflict)
		}
		return fmt.Errorf("pgEntryRepository.Create: %w", err)
	}
	return nil
}

func (r *pgEntryRepository) FindByID(ctx context.Context, id string) (*model.Entry, error) {
	query := `SELECT e.id, e.participant, e.start_reading, e.end_reading, e.arrival_time,
	                 e.distance, e.duration_minutes, e.event_id, e.submitter_id, e.created_at, ev.name
	          FROM entries e JOIN events ev ON ev.id = e.event_id
	          WHERE e.id = $1`
	entry := &model.Entry{}
	var eventName string
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&entry.ID, &entry.Participant, &entry.StartReading, &entry.EndReading, &entry.ArrivalTime,
		&entry.Distance, &entry.Duration, &entry.EventID, &entry.SubmitterID, &entry.CreatedAt, &eventName,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("pgEntryRepository.FindByID: %w", err)
	}
	entry.EventName = &eventName
	return entry, nil
}

func (r *pgEntryRepository) ListByEvent(ctx context.Context, eventID string) ([]model.Entry, error) {
	return r.list(ctx, `WHERE e.event_id = $1`, eventID)
}

func (r *pgEntryRepository) ListAll(ctx context.Context) ([]model.Entry, error) {
	return r.list(ctx, ``)
}

func (r *pgEntryRepository) list(ctx context.Context, where string, args ...any) ([]model.Entry, error) {
	query := `SELECT e.id, e.participant, e.start_reading, e.end_reading, e.arrival_time,
	                 e.distance, e.duration_minutes, e.event_id, e.submitter_id, e.created_at, ev.name
	          FROM entries e JOIN events ev ON ev.id = e.event_id ` + where + ` ORDER BY e.created_at`
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("pgEntryRepository.list: %w", err)
	}
	defer rows.Close()

	entries := []model.Entry{}
	for rows.Next() {
		var entry model.Entry
		var eventName string
		if err := rows.Scan(&entry.ID, &entry.Participant, &entry.StartReading, &entry.EndReading,
			&entry.ArrivalTime, &entry.Distance, &entry.Duration, &entry.EventID,
			&entry.SubmitterID, &entry.CreatedAt, &eventName); err != nil {
			return nil, fmt.Errorf("pgEntryRepository.list scan: %w", err)
		}
		entry.EventName = &eventName
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

func (r *pgEntryRepository) Update(ctx context.Context, tx *sql.Tx, entry *model.Entry) error {
	query := `UPDATE entries SET participant = $2, start_reading = $3, end_reading = $4,
	          arrival_time = $5, distance = $6, duration_minutes = $7, event_id = $8
	          WHERE id = $1`
	result, err := pick(r.db, tx).ExecContext(ctx, query,
		entry.ID, entry.Participant, entry.StartReading, entry.EndReading, entry.ArrivalTime,
		entry.Distance, entry.Duration, entry.EventID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return fmt.Errorf("entry references a missing event: %w", common.ErrConflict)
		}
		return fmt.Errorf("pgEntryRepository.Update: %w", err)
	}
	if affected, _ := result.RowsAffected(); affected == 0 {
		return common.ErrNotFound
	}
	return nil
}

func (r *pgEntryRepository) Delete(ctx context.Context, tx *sql.Tx, id string) error {
	result, err := pick(r.db, tx).ExecContext(ctx, `DELETE FROM entries WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("pgEntryRepository.Delete: %w", err)
	}
	if affected, _ := result.RowsAffected(); affected == 0 {
		return common.ErrNotFound
	}
	return nil
}

func (r *pgEntryRepository) DeleteByEvent(ctx context.Context, tx *sql.Tx, eventID string) (int64, error) {
	result, err := pick(r.db, tx).ExecContext(ctx, `DELETE FROM entries WHERE event_id = $1`, eventID)
	if err != nil {
		return 0, fmt.Errorf("pgEntryRepository.DeleteByEvent: %w", err)
	}
	affected, _ := result.RowsAffected()
	return affected, nil
}

func (r *pgEntryRepository) DeleteAll(ctx context.Context, tx *sql.Tx) (int64, error) {
	result, err := pick(r.db, tx).ExecContext(ctx, `DELETE FROM entries`)
	if err != nil {
		return 0, fmt.Errorf("pgEntryRepository.DeleteAll: %w", err)
	}
	affected, _ := result.RowsAffected()
	return affected, nil
}
