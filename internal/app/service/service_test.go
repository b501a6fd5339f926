package service

import (
	"context"
	"testing"

	"github.com/Bearmun/vossenjacht/internal/domain/authz"
	"github.com/Bearmun/vossenjacht/internal/domain/model"
	"github.com/Bearmun/vossenjacht/internal/domain/reading"
	"github.com/Bearmun/vossenjacht/internal/domain/repository"
)

// Shared fixtures: an in-memory store seeded with an admin and two
// moderators, and every service wired against it. The nil *sql.DB is fine,
// the memory store is atomic per call.
type fixture struct {
	store       *repository.MemoryStore
	entries     *EntryService
	events      *EventService
	users       *UserService
	leaderboard *LeaderboardService

	admin authz.Actor
	modA  authz.Actor
	modB  authz.Actor
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	policy, err := reading.NewPolicy(1000, "fractional", "12:00")
	if err != nil {
		t.Fatalf("reading.NewPolicy: %v", err)
	}

	store := repository.NewMemoryStore()
	f := &fixture{
		store:       store,
		entries:     NewEntryService(store.Entries(), store.Events(), nil, policy),
		events:      NewEventService(store.Events(), store.Entries(), nil),
		users:       NewUserService(store.Users()),
		leaderboard: NewLeaderboardService(store.Entries(), store.Events()),
		admin:       authz.Actor{ID: "admin-1", Role: model.RoleAdmin},
		modA:        authz.Actor{ID: "mod-a", Role: model.RoleModerator},
		modB:        authz.Actor{ID: "mod-b", Role: model.RoleModerator},
	}

	seed := []model.User{
		{ID: "admin-1", Username: "admin", Role: model.RoleAdmin},
		{ID: "mod-a", Username: "anja", Role: model.RoleModerator},
		{ID: "mod-b", Username: "bram", Role: model.RoleModerator},
	}
	for i := range seed {
		if err := store.Users().Create(context.Background(), nil, &seed[i]); err != nil {
			t.Fatalf("seed user %s: %v", seed[i].Username, err)
		}
	}
	return f
}

func (f *fixture) mustCreateEvent(t *testing.T, actor authz.Actor, name string, scoring model.ScoringType) *model.Event {
	t.Helper()
	event, err := f.events.Create(context.Background(), actor, CreateEventRequest{Name: name, Type: scoring})
	if err != nil {
		t.Fatalf("create event %q: %v", name, err)
	}
	return event
}

func (f *fixture) mustCreateEntry(t *testing.T, actor authz.Actor, eventID, participant, start, end, arrival string) *model.Entry {
	t.Helper()
	entry, err := f.entries.Create(context.Background(), actor, EntryInput{
		Participant:  participant,
		StartReading: start,
		EndReading:   end,
		ArrivalTime:  arrival,
		EventID:      eventID,
	})
	if err != nil {
		t.Fatalf("create entry %q: %v", participant, err)
	}
	return entry
}
