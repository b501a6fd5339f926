package service

import (
	"context"
	"errors"
	"testing"

	"github.com/Bearmun/vossenjacht/internal/common"
	"github.com/Bearmun/vossenjacht/internal/domain/model"
)

func TestCreateUserAdminOnly(t *testing.T) {
	f := newFixture(t)

	user, err := f.users.CreateUser(context.Background(), f.admin, CreateUserRequest{
		Username: "nieuwe-mod", Password: "geheim123", Role: model.RoleModerator,
	})
	if err != nil {
		t.Fatalf("admin create: %v", err)
	}
	if user.HashedPassword != "" {
		t.Error("hashed password must not be returned")
	}

	if _, err := f.users.CreateUser(context.Background(), f.modA, CreateUserRequest{
		Username: "x", Password: "y", Role: model.RoleModerator,
	}); !errors.Is(err, common.ErrForbidden) {
		t.Errorf("moderator create: err = %v, want ErrForbidden", err)
	}
}

func TestCreateUserValidation(t *testing.T) {
	f := newFixture(t)
	if _, err := f.users.CreateUser(context.Background(), f.admin, CreateUserRequest{
		Username: "", Password: "x", Role: model.RoleModerator,
	}); !errors.Is(err, common.ErrValidation) {
		t.Errorf("empty username: err = %v, want ErrValidation", err)
	}
	if _, err := f.users.CreateUser(context.Background(), f.admin, CreateUserRequest{
		Username: "u", Password: "p", Role: "superuser",
	}); !errors.Is(err, common.ErrValidation) {
		t.Errorf("unknown role: err = %v, want ErrValidation", err)
	}
}

func TestCreateUserDuplicateUsername(t *testing.T) {
	f := newFixture(t)
	if _, err := f.users.CreateUser(context.Background(), f.admin, CreateUserRequest{
		Username: "anja", Password: "x", Role: model.RoleModerator, // seeded already
	}); !errors.Is(err, common.ErrConflict) {
		t.Errorf("duplicate username: err = %v, want ErrConflict", err)
	}
}

func TestDeleteUserNeverSelf(t *testing.T) {
	f := newFixture(t)
	if err := f.users.DeleteUser(context.Background(), f.admin, f.admin.ID); !errors.Is(err, common.ErrForbidden) {
		t.Fatalf("self delete: err = %v, want ErrForbidden", err)
	}
	if err := f.users.DeleteUser(context.Background(), f.admin, f.modB.ID); err != nil {
		t.Fatalf("delete other: %v", err)
	}
}

func TestDeleteUserStillReferenced(t *testing.T) {
	f := newFixture(t)
	f.mustCreateEvent(t, f.modA, "Jacht van Anja", model.ScoringDistance)

	if err := f.users.DeleteUser(context.Background(), f.admin, f.modA.ID); !errors.Is(err, common.ErrConflict) {
		t.Errorf("delete event owner: err = %v, want ErrConflict", err)
	}
}
