package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/Bearmun/vossenjacht/internal/common"
	"github.com/Bearmun/vossenjacht/internal/common/security"
	"github.com/Bearmun/vossenjacht/internal/domain/model"
	"github.com/Bearmun/vossenjacht/internal/domain/repository"
	"github.com/Bearmun/vossenjacht/internal/platform/config"
)

type fakeRevoker struct {
	mu      sync.Mutex
	revoked map[string]time.Duration
}

func newFakeRevoker() *fakeRevoker {
	return &fakeRevoker{revoked: make(map[string]time.Duration)}
}

func (f *fakeRevoker) Revoke(_ context.Context, tokenID string, ttl time.Duration) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.revoked[tokenID] = ttl
	return nil
}

func (f *fakeRevoker) IsRevoked(_ context.Context, tokenID string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.revoked[tokenID]
	return ok, nil
}

func newAuthFixture(t *testing.T) (*AuthService, *fakeRevoker) {
	t.Helper()
	if config.AppConfig == nil {
		config.Load()
	}
	if security.TokenAuth == nil {
		security.InitJWT()
	}

	store := repository.NewMemoryStore()
	hashed, err := security.HashPassword("geheim123")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	user := &model.User{ID: "admin-1", Username: "admin", HashedPassword: hashed, Role: model.RoleAdmin}
	if err := store.Users().Create(context.Background(), nil, user); err != nil {
		t.Fatalf("seed user: %v", err)
	}

	revoker := newFakeRevoker()
	return NewAuthService(store.Users(), revoker), revoker
}

func TestLogin(t *testing.T) {
	svc, _ := newAuthFixture(t)

	resp, err := svc.Login(context.Background(), LoginRequest{Username: "admin", Password: "geheim123"})
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if resp.Token == "" {
		t.Error("expected a token")
	}
	if resp.User.Role != model.RoleAdmin {
		t.Errorf("role = %q, want admin", resp.User.Role)
	}
}

func TestLoginBadCredentials(t *testing.T) {
	svc, _ := newAuthFixture(t)

	if _, err := svc.Login(context.Background(), LoginRequest{Username: "admin", Password: "fout"}); !errors.Is(err, common.ErrUnauthorized) {
		t.Errorf("wrong password: err = %v, want ErrUnauthorized", err)
	}
	if _, err := svc.Login(context.Background(), LoginRequest{Username: "spook", Password: "x"}); !errors.Is(err, common.ErrUnauthorized) {
		t.Errorf("unknown user: err = %v, want ErrUnauthorized", err)
	}
	if _, err := svc.Login(context.Background(), LoginRequest{}); !errors.Is(err, common.ErrBadRequest) {
		t.Errorf("empty request: err = %v, want ErrBadRequest", err)
	}
}

func TestLogoutRevokesToken(t *testing.T) {
	svc, revoker := newAuthFixture(t)

	if err := svc.Logout(context.Background(), "token-123", time.Now().Add(time.Hour)); err != nil {
		t.Fatalf("logout: %v", err)
	}
	revoked, err := revoker.IsRevoked(context.Background(), "token-123")
	if err != nil || !revoked {
		t.Errorf("token should be revoked, got revoked=%v err=%v", revoked, err)
	}
}
