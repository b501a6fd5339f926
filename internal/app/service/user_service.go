package service

import (
	"context"
	"fmt"

	"github.com/Bearmun/vossenjacht/internal/common"
	"github.com/Bearmun/vossenjacht/internal/common/security"
	"github.com/Bearmun/vossenjacht/internal/domain/authz"
	"github.com/Bearmun/vossenjacht/internal/domain/model"
	"github.com/Bearmun/vossenjacht/internal/domain/repository"

	"github.com/google/uuid"
)

// UserService is the admin-only account management surface. There is no open
// signup: accounts are created and deleted by admins only.
type UserService struct {
	userRepo repository.UserRepository
}

func NewUserService(userRepo repository.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

type CreateUserRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

func (s *UserService) CreateUser(ctx context.Context, actor authz.Actor, req CreateUserRequest) (*model.User, error) {
	if err := authz.CanManageUsers(actor); err != nil {
		return nil, err
	}
	if req.Username == "" || req.Password == "" {
		return nil, common.Errorf("username and password are required: %w", common.ErrValidation)
	}
	if !model.ValidRole(req.Role) {
		return nil, common.Errorf("unknown role %q: %w", req.Role, common.ErrValidation)
	}

	hashedPassword, err := security.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &model.User{
		ID:             uuid.NewString(),
		Username:       req.Username,
		HashedPassword: hashedPassword,
		Role:           req.Role,
	}
	if err := s.userRepo.Create(ctx, nil, user); err != nil {
		return nil, err
	}
	user.HashedPassword = ""
	return user, nil
}

// DeleteUser removes an account. Admins may never delete their own account;
// a user that still owns events or entries is a conflict, not a cascade.
func (s *UserService) DeleteUser(ctx context.Context, actor authz.Actor, targetID string) error {
	if err := authz.CanDeleteUser(actor, targetID); err != nil {
		return err
	}
	return s.userRepo.Delete(ctx, nil, targetID)
}
