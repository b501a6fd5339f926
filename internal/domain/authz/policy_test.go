package authz

import (
	"errors"
	"testing"

	"github.com/Bearmun/vossenjacht/internal/common"
	"github.com/Bearmun/vossenjacht/internal/domain/model"
)

var (
	admin     = Actor{ID: "admin-1", Role: model.RoleAdmin}
	modOne    = Actor{ID: "mod-1", Role: model.RoleModerator}
	modTwo    = Actor{ID: "mod-2", Role: model.RoleModerator}
	anonymous = Actor{}
)

func activeEvent(creatorID string) *model.Event {
	return &model.Event{ID: "evt", Name: "Herfstjacht", Status: model.EventActive, CreatorID: creatorID}
}

func TestCanViewRanked(t *testing.T) {
	if err := CanViewRanked(anonymous, false); err != nil {
		t.Errorf("global ranked view should be public, got %v", err)
	}
	if err := CanViewRanked(anonymous, true); !errors.Is(err, common.ErrUnauthorized) {
		t.Errorf("scoped ranked view for anonymous: err = %v, want ErrUnauthorized", err)
	}
	if err := CanViewRanked(modOne, true); err != nil {
		t.Errorf("scoped ranked view for moderator: %v", err)
	}
}

func TestCanCreateEvent(t *testing.T) {
	if err := CanCreateEvent(anonymous); !errors.Is(err, common.ErrUnauthorized) {
		t.Errorf("anonymous: err = %v, want ErrUnauthorized", err)
	}
	if err := CanCreateEvent(modOne); err != nil {
		t.Errorf("moderator: %v", err)
	}
	if err := CanCreateEvent(admin); err != nil {
		t.Errorf("admin: %v", err)
	}
	if err := CanCreateEvent(Actor{ID: "x", Role: "viewer"}); !errors.Is(err, common.ErrForbidden) {
		t.Errorf("unknown role: err = %v, want ErrForbidden", err)
	}
}

func TestCanMutateEventOwnership(t *testing.T) {
	owned := activeEvent(modOne.ID)
	foreign := activeEvent(modTwo.ID)

	if err := CanMutateEvent(modOne, owned); err != nil {
		t.Errorf("creator mutating own event: %v", err)
	}
	if err := CanMutateEvent(modOne, foreign); !errors.Is(err, common.ErrForbidden) {
		t.Errorf("moderator mutating foreign event: err = %v, want ErrForbidden", err)
	}
	if err := CanMutateEvent(admin, foreign); err != nil {
		t.Errorf("admin mutating any event: %v", err)
	}
	if err := CanMutateEvent(anonymous, owned); !errors.Is(err, common.ErrUnauthorized) {
		t.Errorf("anonymous: err = %v, want ErrUnauthorized", err)
	}
}

func TestCanCreateEntry(t *testing.T) {
	active := activeEvent(modOne.ID)
	completed := &model.Event{ID: "evt2", Name: "Lentejacht", Status: model.EventCompleted, CreatorID: modOne.ID}

	if err := CanCreateEntry(modTwo, active); err != nil {
		t.Errorf("any authenticated actor may enter an active event: %v", err)
	}
	if err := CanCreateEntry(anonymous, active); !errors.Is(err, common.ErrUnauthorized) {
		t.Errorf("anonymous: err = %v, want ErrUnauthorized", err)
	}
	if err := CanCreateEntry(admin, completed); !errors.Is(err, common.ErrValidation) {
		t.Errorf("completed event: err = %v, want ErrValidation", err)
	}
}

func TestCanMutateEntryOwnership(t *testing.T) {
	// Moderator mod-1 owns one event; entry X lives in an event owned by
	// the admin. mod-1 must not touch X.
	adminEvent := activeEvent(admin.ID)
	if err := CanMutateEntry(modOne, adminEvent); !errors.Is(err, common.ErrForbidden) {
		t.Errorf("moderator on foreign event's entry: err = %v, want ErrForbidden", err)
	}
	if err := CanMutateEntry(modOne, activeEvent(modOne.ID)); err != nil {
		t.Errorf("moderator on own event's entry: %v", err)
	}
	if err := CanMutateEntry(admin, activeEvent(modTwo.ID)); err != nil {
		t.Errorf("admin on any entry: %v", err)
	}
}

func TestCanWipeEntries(t *testing.T) {
	confirmed, err := CanWipeEntries(admin, WipeConfirmationPhrase)
	if err != nil || !confirmed {
		t.Errorf("admin with exact phrase: confirmed=%v err=%v", confirmed, err)
	}

	// A wrong phrase is a no-op, not an error.
	confirmed, err = CanWipeEntries(admin, "verwijder alle ritten")
	if err != nil {
		t.Errorf("wrong phrase should not error: %v", err)
	}
	if confirmed {
		t.Error("wrong phrase must not confirm the wipe")
	}

	if _, err := CanWipeEntries(modOne, WipeConfirmationPhrase); !errors.Is(err, common.ErrForbidden) {
		t.Errorf("moderator: err = %v, want ErrForbidden", err)
	}
	if _, err := CanWipeEntries(anonymous, WipeConfirmationPhrase); !errors.Is(err, common.ErrUnauthorized) {
		t.Errorf("anonymous: err = %v, want ErrUnauthorized", err)
	}
}

func TestCanManageUsers(t *testing.T) {
	if err := CanManageUsers(admin); err != nil {
		t.Errorf("admin: %v", err)
	}
	if err := CanManageUsers(modOne); !errors.Is(err, common.ErrForbidden) {
		t.Errorf("moderator: err = %v, want ErrForbidden", err)
	}
}

func TestCanDeleteUserNeverSelf(t *testing.T) {
	if err := CanDeleteUser(admin, modOne.ID); err != nil {
		t.Errorf("admin deleting another user: %v", err)
	}
	if err := CanDeleteUser(admin, admin.ID); !errors.Is(err, common.ErrForbidden) {
		t.Errorf("self-deletion: err = %v, want ErrForbidden", err)
	}
}
