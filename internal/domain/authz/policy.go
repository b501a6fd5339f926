// Package authz is the single authorization decision table. Every mutation
// in the system goes through one of these checks; handlers and services never
// inspect roles themselves.
package authz

import (
	"github.com/Bearmun/vossenjacht/internal/common"
	"github.com/Bearmun/vossenjacht/internal/domain/model"
)

// WipeConfirmationPhrase must be supplied verbatim to wipe all entries.
const WipeConfirmationPhrase = "VERWIJDER ALLE RITTEN"

// Actor is the identity a collaborator established for the current call. The
// zero Actor is an unauthenticated visitor.
type Actor struct {
	ID   string
	Role string
}

func (a Actor) Authenticated() bool {
	return a.ID != ""
}

func (a Actor) IsAdmin() bool {
	return a.Role == model.RoleAdmin
}

// ownsEvent reports whether the actor is a moderator who created the event.
func (a Actor) ownsEvent(event *model.Event) bool {
	return a.Role == model.RoleModerator && event.CreatorID == a.ID
}

// CanViewRanked gates ranked-view reads. The global view is public; a
// single-event scope requires an authenticated actor.
func CanViewRanked(actor Actor, scoped bool) error {
	if scoped && !actor.Authenticated() {
		return common.ErrUnauthorized
	}
	return nil
}

// CanCreateEvent allows moderators and admins to open a new hunt.
func CanCreateEvent(actor Actor) error {
	if !actor.Authenticated() {
		return common.ErrUnauthorized
	}
	if actor.IsAdmin() || actor.Role == model.RoleModerator {
		return nil
	}
	return common.ErrForbidden
}

// CanMutateEvent covers edit, delete and the status toggle: admins always,
// moderators only for events they created.
func CanMutateEvent(actor Actor, event *model.Event) error {
	if !actor.Authenticated() {
		return common.ErrUnauthorized
	}
	if actor.IsAdmin() || actor.ownsEvent(event) {
		return nil
	}
	return common.ErrForbidden
}

// CanCreateEntry requires an authenticated actor and an event that still
// accepts entries.
func CanCreateEntry(actor Actor, event *model.Event) error {
	if !actor.Authenticated() {
		return common.ErrUnauthorized
	}
	if event.Status != model.EventActive {
		return common.Errorf("event %q is not accepting entries: %w", event.Name, common.ErrValidation)
	}
	return nil
}

// CanMutateEntry covers entry edit and delete. Ownership is decided by the
// owning event's creator, not by who submitted the entry.
func CanMutateEntry(actor Actor, owningEvent *model.Event) error {
	if !actor.Authenticated() {
		return common.ErrUnauthorized
	}
	if actor.IsAdmin() || actor.ownsEvent(owningEvent) {
		return nil
	}
	return common.ErrForbidden
}

// CanWipeEntries decides the destructive bulk wipe. Only admins may attempt
// it; a wrong confirmation phrase is not an error but a no-op, reported via
// the confirmed result.
func CanWipeEntries(actor Actor, confirmation string) (confirmed bool, err error) {
	if !actor.Authenticated() {
		return false, common.ErrUnauthorized
	}
	if !actor.IsAdmin() {
		return false, common.ErrForbidden
	}
	return confirmation == WipeConfirmationPhrase, nil
}

// CanManageUsers gates account creation and deletion.
func CanManageUsers(actor Actor) error {
	if !actor.Authenticated() {
		return common.ErrUnauthorized
	}
	if !actor.IsAdmin() {
		return common.ErrForbidden
	}
	return nil
}

// CanDeleteUser additionally rejects self-deletion, unconditionally.
func CanDeleteUser(actor Actor, targetID string) error {
	if err := CanManageUsers(actor); err != nil {
		return err
	}
	if actor.ID == targetID {
		return common.Errorf("admins may not delete their own account: %w", common.ErrForbidden)
	}
	return nil
}
