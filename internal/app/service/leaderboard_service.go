package service

import (
	"context"

	"github.com/Bearmun/vossenjacht/internal/domain/authz"
	"github.com/Bearmun/vossenjacht/internal/domain/model"
	"github.com/Bearmun/vossenjacht/internal/domain/ranking"
	"github.com/Bearmun/vossenjacht/internal/domain/repository"
)

// LeaderboardService produces ranked views. Ranks are computed fresh on
// every read; nothing here is cached or persisted.
type LeaderboardService struct {
	entryRepo repository.EntryRepository
	eventRepo repository.EventRepository
}

func NewLeaderboardService(entryRepo repository.EntryRepository, eventRepo repository.EventRepository) *LeaderboardService {
	return &LeaderboardService{entryRepo: entryRepo, eventRepo: eventRepo}
}

type RankedView struct {
	Event *model.Event `json:"event,omitempty"`
	ranking.Result
}

// Ranked returns the dense-ranked view for one scope: a single event when
// eventID is set, otherwise the global union of all events. The global view
// is public; a single-event scope requires an authenticated actor. The
// global scope and mixed-type events rank distance first.
func (s *LeaderboardService) Ranked(ctx context.Context, actor authz.Actor, eventID string) (*RankedView, error) {
	scoped := eventID != ""
	if err := authz.CanViewRanked(actor, scoped); err != nil {
		return nil, err
	}

	if !scoped {
		entries, err := s.entryRepo.ListAll(ctx)
		if err != nil {
			return nil, err
		}
		return &RankedView{Result: ranking.Rank(entries, ranking.DistanceFirst)}, nil
	}

	event, err := s.eventRepo.FindByID(ctx, eventID)
	if err != nil {
		return nil, err
	}
	entries, err := s.entryRepo.ListByEvent(ctx, event.ID)
	if err != nil {
		return nil, err
	}
	return &RankedView{
		Event:  event,
		Result: ranking.Rank(entries, ranking.OrderFor(event.Type)),
	}, nil
}
