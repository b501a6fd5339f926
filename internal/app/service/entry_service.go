package service

import (
	"context"
	"database/sql"

	"github.com/Bearmun/vossenjacht/internal/common"
	"github.com/Bearmun/vossenjacht/internal/domain/authz"
	"github.com/Bearmun/vossenjacht/internal/domain/model"
	"github.com/Bearmun/vossenjacht/internal/domain/reading"
	"github.com/Bearmun/vossenjacht/internal/domain/repository"

	"github.com/google/uuid"
)

type EntryService struct {
	entryRepo repository.EntryRepository
	eventRepo repository.EventRepository
	db        *sql.DB
	policy    reading.Policy
}

func NewEntryService(entryRepo repository.EntryRepository, eventRepo repository.EventRepository, db *sql.DB, policy reading.Policy) *EntryService {
	return &EntryService{entryRepo: entryRepo, eventRepo: eventRepo, db: db, policy: policy}
}

// EntryInput carries the raw form values exactly as submitted. Readings and
// arrival time are normalized here on every create and edit; computed values
// are never taken from the client or from a previous record.
type EntryInput struct {
	Participant  string `json:"participant"`
	StartReading string `json:"start_reading"`
	EndReading   string `json:"end_reading"`
	ArrivalTime  string `json:"arrival_time"`
	EventID      string `json:"event_id,omitempty"`
}

func (s *EntryService) Create(ctx context.Context, actor authz.Actor, in EntryInput) (*model.Entry, error) {
	if in.Participant == "" {
		return nil, common.Errorf("participant name is required: %w", common.ErrValidation)
	}
	if in.EventID == "" {
		return nil, common.Errorf("event_id is required: %w", common.ErrValidation)
	}

	event, err := s.eventRepo.FindByID(ctx, in.EventID)
	if err != nil {
		return nil, err
	}
	if err := authz.CanCreateEntry(actor, event); err != nil {
		return nil, err
	}

	r, err := s.policy.Normalize(in.StartReading, in.EndReading, in.ArrivalTime)
	if err != nil {
		return nil, err
	}
	if r.Distance < 0 {
		// Guard at the persistence boundary; the schema rejects it too.
		return nil, common.Errorf("distance %v: %w", r.Distance, common.ErrNegativeDistance)
	}

	entry := &model.Entry{
		ID:           uuid.NewString(),
		Participant:  in.Participant,
		StartReading: r.Start,
		EndReading:   r.End,
		ArrivalTime:  r.Arrival.String(),
		Distance:     r.Distance,
		Duration:     r.Duration,
		EventID:      event.ID,
		SubmitterID:  actor.ID,
	}
	if err := s.entryRepo.Create(ctx, nil, entry); err != nil {
		return nil, err
	}
	entry.EventName = &event.Name
	return entry, nil
}

// Update re-derives distance and duration from the freshly supplied raw
// values. Moving the entry to another event requires mutate rights on both
// the current and the target event, and the target must still be active.
func (s *EntryService) Update(ctx context.Context, actor authz.Actor, id string, in EntryInput) (*model.Entry, error) {
	entry, err := s.entryRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	event, err := s.eventRepo.FindByID(ctx, entry.EventID)
	if err != nil {
		return nil, err
	}
	if err := authz.CanMutateEntry(actor, event); err != nil {
		return nil, err
	}

	if in.EventID != "" && in.EventID != entry.EventID {
		target, err := s.eventRepo.FindByID(ctx, in.EventID)
		if err != nil {
			return nil, err
		}
		if err := authz.CanMutateEntry(actor, target); err != nil {
			return nil, err
		}
		if target.Status != model.EventActive {
			return nil, common.Errorf("event %q is not accepting entries: %w", target.Name, common.ErrValidation)
		}
		entry.EventID = target.ID
		event = target
	}

	if in.Participant == "" {
		return nil, common.Errorf("participant name is required: %w", common.ErrValidation)
	}
	r, err := s.policy.Normalize(in.StartReading, in.EndReading, in.ArrivalTime)
	if err != nil {
		return nil, err
	}
	if r.Distance < 0 {
		return nil, common.Errorf("distance %v: %w", r.Distance, common.ErrNegativeDistance)
	}

	entry.Participant = in.Participant
	entry.StartReading = r.Start
	entry.EndReading = r.End
	entry.ArrivalTime = r.Arrival.String()
	entry.Distance = r.Distance
	entry.Duration = r.Duration

	if err := s.entryRepo.Update(ctx, nil, entry); err != nil {
		return nil, err
	}
	entry.EventName = &event.Name
	return entry, nil
}

func (s *EntryService) Delete(ctx context.Context, actor authz.Actor, id string) error {
	entry, err := s.entryRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	event, err := s.eventRepo.FindByID(ctx, entry.EventID)
	if err != nil {
		return err
	}
	if err := authz.CanMutateEntry(actor, event); err != nil {
		return err
	}
	return s.entryRepo.Delete(ctx, nil, id)
}

type WipeResult struct {
	Performed bool  `json:"performed"`
	Deleted   int64 `json:"deleted"`
}

// WipeAll deletes every entry across all events. Admin only, and the exact
// confirmation phrase must be supplied; a mismatch deletes nothing and is
// reported as a no-op rather than an error.
func (s *EntryService) WipeAll(ctx context.Context, actor authz.Actor, confirmation string) (WipeResult, error) {
	confirmed, err := authz.CanWipeEntries(actor, confirmation)
	if err != nil {
		return WipeResult{}, err
	}
	if !confirmed {
		return WipeResult{Performed: false, Deleted: 0}, nil
	}
	deleted, err := s.entryRepo.DeleteAll(ctx, nil)
	if err != nil {
		return WipeResult{}, err
	}
	return WipeResult{Performed: true, Deleted: deleted}, nil
}
