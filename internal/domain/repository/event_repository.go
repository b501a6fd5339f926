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

type EventRepository interface {
	Create(ctx context.Context, tx *sql.Tx, event *model.Event) error
	FindByID(ctx context.Context, id string) (*model.Event, error)
	FindBySlug(ctx context.Context, slug string) (*model.Event, error)
	List(ctx context.Context) ([]model.Event, error)
	Update(ctx context.Context, tx *sql.Tx, event *model.Event) error
	Delete(ctx context.Context, tx *sql.Tx, id string) error
}

type pgEventRepository struct {
	db *sql.DB
}

func NewPgEventRepository(db *sql.DB) EventRepository {
	return &pgEventRepository{db: db}
}

func (r *pgEventRepository) Create(ctx context.Context, tx *sql.Tx, event *model.Event) error {
	query := `INSERT INTO events (id, name, slug, status, type, creator_id)
	          VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := pick(r.db, tx).ExecContext(ctx, query,
		event.ID, event.Name, event.Slug, event.Status, event.Type, event.CreatorID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			switch pgErr.Code {
			case "23505":
				return fmt.Errorf("event slug %q already exists: %w", event.Slug, common.ErrConflict)
			case "23503":
				return fmt.Errorf("event creator %s does not exist: %w", event.CreatorID, common.ErrConflict)
			}
		}
		return fmt.Errorf("pgEventRepository.Create: %w", err)
	}
	return nil
}

func (r *pgEventRepository) FindByID(ctx context.Context, id string) (*model.Event, error) {
	return r.findBy(ctx, `id = $1`, id)
}

func (r *pgEventRepository) FindBySlug(ctx context.Context, slug string) (*model.Event, error) {
	return r.findBy(ctx, `slug = $1`, slug)
}

func (r *pgEventRepository) findBy(ctx context.Context, where string, arg any) (*model.Event, error) {
	query := `SELECT id, name, slug, status, type, creator_id, created_at
	          FROM events WHERE ` + where
	event := &model.Event{}
	err := r.db.QueryRowContext(ctx, query, arg).Scan(
		&event.ID, &event.Name, &event.Slug, &event.Status, &event.Type, &event.CreatorID, &event.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("pgEventRepository.findBy: %w", err)
	}
	return event, nil
}

func (r *pgEventRepository) List(ctx context.Context) ([]model.Event, error) {
	query := `SELECT id, name, slug, status, type, creator_id, created_at
	          FROM events ORDER BY created_at DESC`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("pgEventRepository.List: %w", err)
	}
	defer rows.Close()

	events := []model.Event{}
	for rows.Next() {
		var event model.Event
		if err := rows.Scan(&event.ID, &event.Name, &event.Slug, &event.Status,
			&event.Type, &event.CreatorID, &event.CreatedAt); err != nil {
			return nil, fmt.Errorf("pgEventRepository.List scan: %w", err)
		}
		events = append(events, event)
	}
	return events, rows.Err()
}

func (r *pgEventRepository) Update(ctx context.Context, tx *sql.Tx, event *model.Event) error {
	query := `UPDATE events SET name = $2, slug = $3, status = $4, type = $5 WHERE id = $1`
	result, err := pick(r.db, tx).ExecContext(ctx, query,
		event.ID, event.Name, event.Slug, event.Status, event.Type)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("event slug %q already exists: %w", event.Slug, common.ErrConflict)
		}
		return fmt.Errorf("pgEventRepository.Update: %w", err)
	}
	if affected, _ := result.RowsAffected(); affected == 0 {
		return common.ErrNotFound
	}
	return nil
}

func (r *pgEventRepository) Delete(ctx context.Context, tx *sql.Tx, id string) error {
	result, err := pick(r.db, tx).ExecContext(ctx, `DELETE FROM events WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("pgEventRepository.Delete: %w", err)
	}
	if affected, _ := result.RowsAffected(); affected == 0 {
		return common.ErrNotFound
	}
	return nil
}
