package service

import (
	"context"
	"database/sql"
	"errors"

	"github.com/Bearmun/vossenjacht/internal/common"
	"github.com/Bearmun/vossenjacht/internal/domain/authz"
	"github.com/Bearmun/vossenjacht/internal/domain/model"
	"github.com/Bearmun/vossenjacht/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
)

type EventService struct {
	eventRepo repository.EventRepository
	entryRepo repository.EntryRepository
	db        *sql.DB // For transactions
}

func NewEventService(eventRepo repository.EventRepository, entryRepo repository.EntryRepository, db *sql.DB) *EventService {
	return &EventService{eventRepo: eventRepo, entryRepo: entryRepo, db: db}
}

type CreateEventRequest struct {
	Name string            `json:"name"`
	Type model.ScoringType `json:"type"`
}

type UpdateEventRequest struct {
	Name   *string            `json:"name,omitempty"`
	Type   *model.ScoringType `json:"type,omitempty"`
	Status *model.EventStatus `json:"status,omitempty"`
}

func (s *EventService) Create(ctx context.Context, actor authz.Actor, req CreateEventRequest) (*model.Event, error) {
	if err := authz.CanCreateEvent(actor); err != nil {
		return nil, err
	}
	if req.Name == "" {
		return nil, common.Errorf("event name is required: %w", common.ErrValidation)
	}
	if !model.ValidScoringType(req.Type) {
		return nil, common.Errorf("unknown scoring type %q: %w", req.Type, common.ErrValidation)
	}

	event := &model.Event{
		ID:        uuid.NewString(),
		Name:      req.Name,
		Slug:      slug.Make(req.Name),
		Status:    model.EventActive,
		Type:      req.Type,
		CreatorID: actor.ID,
	}
	if err := s.eventRepo.Create(ctx, nil, event); err != nil {
		return nil, err
	}
	return event, nil
}

func (s *EventService) GetBySlug(ctx context.Context, eventSlug string) (*model.Event, error) {
	return s.eventRepo.FindBySlug(ctx, eventSlug)
}

// findEvent resolves an event by ID or, failing that, by slug. Routes
// address events by slug; internal references use the ID.
func (s *EventService) findEvent(ctx context.Context, ref string) (*model.Event, error) {
	event, err := s.eventRepo.FindByID(ctx, ref)
	if err == nil {
		return event, nil
	}
	if !errors.Is(err, common.ErrNotFound) {
		return nil, err
	}
	return s.eventRepo.FindBySlug(ctx, ref)
}

func (s *EventService) List(ctx context.Context) ([]model.Event, error) {
	return s.eventRepo.List(ctx)
}

func (s *EventService) Update(ctx context.Context, actor authz.Actor, ref string, req UpdateEventRequest) (*model.Event, error) {
	event, err := s.findEvent(ctx, ref)
	if err != nil {
		return nil, err
	}
	if err := authz.CanMutateEvent(actor, event); err != nil {
		return nil, err
	}

	if req.Name != nil {
		if *req.Name == "" {
			return nil, common.Errorf("event name is required: %w", common.ErrValidation)
		}
		event.Name = *req.Name
		event.Slug = slug.Make(*req.Name)
	}
	if req.Type != nil {
		if !model.ValidScoringType(*req.Type) {
			return nil, common.Errorf("unknown scoring type %q: %w", *req.Type, common.ErrValidation)
		}
		event.Type = *req.Type
	}
	if req.Status != nil && *req.Status != event.Status {
		// The only transition is active -> completed.
		if event.Status != model.EventActive || *req.Status != model.EventCompleted {
			return nil, common.Errorf("event status can only move from active to completed: %w", common.ErrValidation)
		}
		event.Status = model.EventCompleted
	}

	if err := s.eventRepo.Update(ctx, nil, event); err != nil {
		return nil, err
	}
	return event, nil
}

// Complete is the one-way status toggle. Completing an already completed
// event is a no-op.
func (s *EventService) Complete(ctx context.Context, actor authz.Actor, ref string) (*model.Event, error) {
	event, err := s.findEvent(ctx, ref)
	if err != nil {
		return nil, err
	}
	if err := authz.CanMutateEvent(actor, event); err != nil {
		return nil, err
	}
	if event.Status == model.EventCompleted {
		return event, nil
	}
	event.Status = model.EventCompleted
	if err := s.eventRepo.Update(ctx, nil, event); err != nil {
		return nil, err
	}
	return event, nil
}

// Delete removes the event and every entry in it within one transaction, so
// entries never outlive their event.
func (s *EventService) Delete(ctx context.Context, actor authz.Actor, ref string) error {
	event, err := s.findEvent(ctx, ref)
	if err != nil {
		return err
	}
	if err := authz.CanMutateEvent(actor, event); err != nil {
		return err
	}

	var tx *sql.Tx
	if s.db != nil {
		tx, err = s.db.BeginTx(ctx, nil)
		if err != nil {
			return common.Errorf("failed to begin transaction: %w", err)
		}
		defer tx.Rollback() // Rollback if not committed
	}

	if _, err := s.entryRepo.DeleteByEvent(ctx, tx, event.ID); err != nil {
		return err
	}
	if err := s.eventRepo.Delete(ctx, tx, event.ID); err != nil {
		return err
	}

	if tx != nil {
		if err := tx.Commit(); err != nil {
			return common.Errorf("failed to commit transaction: %w", err)
		}
	}
	return nil
}
