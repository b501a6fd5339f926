package repository

import (
	"context"
	"database/sql"
	"sort"
	"sync"
	"time"

	"github.com/Bearmun/vossenjacht/internal/common"
	"github.com/Bearmun/vossenjacht/internal/domain/model"
)

// MemoryStore keeps every aggregate in maps guarded by one mutex. It backs
// unit tests and enforces the same referential integrity the Postgres schema
// does: entries must reference an existing event and submitter, and a user
// that still owns events or entries cannot be deleted. The *sql.Tx parameters
// are ignored; each call is atomic under the mutex.
type MemoryStore struct {
	mu      sync.RWMutex
	users   map[string]model.User
	events  map[string]model.Event
	entries map[string]model.Entry
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		users:   make(map[string]model.User),
		events:  make(map[string]model.Event),
		entries: make(map[string]model.Entry),
	}
}

func (s *MemoryStore) Users() UserRepository   { return (*memoryUserRepository)(s) }
func (s *MemoryStore) Events() EventRepository { return (*memoryEventRepository)(s) }
func (s *MemoryStore) Entries() EntryRepository {
	return (*memoryEntryRepository)(s)
}

type memoryUserRepository MemoryStore

func (r *memoryUserRepository) Create(_ context.Context, _ *sql.Tx, user *model.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.users {
		if existing.Username == user.Username {
			return common.Errorf("username %q already taken: %w", user.Username, common.ErrConflict)
		}
	}
	stored := *user
	if stored.CreatedAt.IsZero() {
		stored.CreatedAt = time.Now()
	}
	r.users[stored.ID] = stored
	return nil
}

func (r *memoryUserRepository) FindByUsername(_ context.Context, username string) (*model.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, user := range r.users {
		if user.Username == username {
			u := user
			return &u, nil
		}
	}
	return nil, common.ErrNotFound
}

func (r *memoryUserRepository) FindByID(_ context.Context, id string) (*model.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	user, ok := r.users[id]
	if !ok {
		return nil, common.ErrNotFound
	}
	u := user
	return &u, nil
}

func (r *memoryUserRepository) Delete(_ context.Context, _ *sql.Tx, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[id]; !ok {
		return common.ErrNotFound
	}
	for _, event := range r.events {
		if event.CreatorID == id {
			return common.Errorf("user %s is still referenced: %w", id, common.ErrConflict)
		}
	}
	for _, entry := range r.entries {
		if entry.SubmitterID == id {
			return common.Errorf("user %s is still referenced: %w", id, common.ErrConflict)
		}
	}
	delete(r.users, id)
	return nil
}

type memoryEventRepository MemoryStore

func (r *memoryEventRepository) Create(_ context.Context, _ *sql.Tx, event *model.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.events {
		if existing.Slug == event.Slug {
			return common.Errorf("event slug %q already exists: %w", event.Slug, common.ErrConflict)
		}
	}
	if _, ok := r.users[event.CreatorID]; !ok {
		return common.Errorf("event creator %s does not exist: %w", event.CreatorID, common.ErrConflict)
	}
	stored := *event
	if stored.CreatedAt.IsZero() {
		stored.CreatedAt = time.Now()
	}
	r.events[stored.ID] = stored
	return nil
}

func (r *memoryEventRepository) FindByID(_ context.Context, id string) (*model.Event, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	event, ok := r.events[id]
	if !ok {
		return nil, common.ErrNotFound
	}
	e := event
	return &e, nil
}

func (r *memoryEventRepository) FindBySlug(_ context.Context, slug string) (*model.Event, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, event := range r.events {
		if event.Slug == slug {
			e := event
			return &e, nil
		}
	}
	return nil, common.ErrNotFound
}

func (r *memoryEventRepository) List(_ context.Context) ([]model.Event, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	events := make([]model.Event, 0, len(r.events))
	for _, event := range r.events {
		events = append(events, event)
	}
	sort.Slice(events, func(i, j int) bool {
		return events[i].CreatedAt.After(events[j].CreatedAt)
	})
	return events, nil
}

func (r *memoryEventRepository) Update(_ context.Context, _ *sql.Tx, event *model.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.events[event.ID]
	if !ok {
		return common.ErrNotFound
	}
	for _, other := range r.events {
		if other.ID != event.ID && other.Slug == event.Slug {
			return common.Errorf("event slug %q already exists: %w", event.Slug, common.ErrConflict)
		}
	}
	stored := *event
	stored.CreatedAt = existing.CreatedAt
	r.events[stored.ID] = stored
	return nil
}

func (r *memoryEventRepository) Delete(_ context.Context, _ *sql.Tx, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.events[id]; !ok {
		return common.ErrNotFound
	}
	delete(r.events, id)
	return nil
}

type memoryEntryRepository MemoryStore

func (r *memoryEntryRepository) Create(_ context.Context, _ *sql.Tx, entry *model.Entry) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.events[entry.EventID]; !ok {
		return common.Errorf("entry references a missing event or submitter: %w", common.ErrConflict)
	}
	if _, ok := r.users[entry.SubmitterID]; !ok {
		return common.Errorf("entry references a missing event or submitter: %w", common.ErrConflict)
	}
	stored := *entry
	stored.EventName = nil
	if stored.CreatedAt.IsZero() {
		stored.CreatedAt = time.Now()
	}
	r.entries[stored.ID] = stored
	return nil
}

func (r *memoryEntryRepository) FindByID(_ context.Context, id string) (*model.Entry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	entry, ok := r.entries[id]
	if !ok {
		return nil, common.ErrNotFound
	}
	e := entry
	r.attachEventName(&e)
	return &e, nil
}

func (r *memoryEntryRepository) ListByEvent(_ context.Context, eventID string) ([]model.Entry, error) {
	return r.list(func(e model.Entry) bool { return e.EventID == eventID })
}

func (r *memoryEntryRepository) ListAll(_ context.Context) ([]model.Entry, error) {
	return r.list(func(model.Entry) bool { return true })
}

func (r *memoryEntryRepository) list(keep func(model.Entry) bool) ([]model.Entry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	entries := []model.Entry{}
	for _, entry := range r.entries {
		if keep(entry) {
			e := entry
			r.attachEventName(&e)
			entries = append(entries, e)
		}
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].CreatedAt.Before(entries[j].CreatedAt)
	})
	return entries, nil
}

func (r *memoryEntryRepository) attachEventName(entry *model.Entry) {
	if event, ok := r.events[entry.EventID]; ok {
		name := event.Name
		entry.EventName = &name
	}
}

func (r *memoryEntryRepository) Update(_ context.Context, _ *sql.Tx, entry *model.Entry) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.entries[entry.ID]
	if !ok {
		return common.ErrNotFound
	}
	if _, ok := r.events[entry.EventID]; !ok {
		return common.Errorf("entry references a missing event: %w", common.ErrConflict)
	}
	stored := *entry
	stored.EventName = nil
	stored.CreatedAt = existing.CreatedAt
	r.entries[stored.ID] = stored
	return nil
}

func (r *memoryEntryRepository) Delete(_ context.Context, _ *sql.Tx, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.entries[id]; !ok {
		return common.ErrNotFound
	}
	delete(r.entries, id)
	return nil
}

func (r *memoryEntryRepository) DeleteByEvent(_ context.Context, _ *sql.Tx, eventID string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var deleted int64
	for id, entry := range r.entries {
		if entry.EventID == eventID {
			delete(r.entries, id)
			deleted++
		}
	}
	return deleted, nil
}

func (r *memoryEntryRepository) DeleteAll(_ context.Context, _ *sql.Tx) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	deleted := int64(len(r.entries))
	r.entries = make(map[string]model.Entry)
	return deleted, nil
}
