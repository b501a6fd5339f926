package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Bearmun/vossenjacht/internal/common"
	"github.com/Bearmun/vossenjacht/internal/common/security"
	"github.com/Bearmun/vossenjacht/internal/domain/repository"
)

type AuthService struct {
	userRepo repository.UserRepository
	tokens   security.TokenRevoker
}

func NewAuthService(userRepo repository.UserRepository, tokens security.TokenRevoker) *AuthService {
	return &AuthService{userRepo: userRepo, tokens: tokens}
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type AuthResponse struct {
	User  *UserView `json:"user"`
	Token string    `json:"token"`
}

type UserView struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

func (s *AuthService) Login(ctx context.Context, req LoginRequest) (*AuthResponse, error) {
	if req.Username == "" || req.Password == "" {
		return nil, common.ErrBadRequest
	}

	user, err := s.userRepo.FindByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.ErrUnauthorized // Generic message for security
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	if !security.CheckPasswordHash(req.Password, user.HashedPassword) {
		return nil, common.ErrUnauthorized
	}

	token, err := security.GenerateToken(user.ID, user.Role)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}
	return &AuthResponse{
		User:  &UserView{ID: user.ID, Username: user.Username, Role: user.Role},
		Token: token,
	}, nil
}

// Logout revokes the presented token until it would have expired anyway.
func (s *AuthService) Logout(ctx context.Context, tokenID string, expiresAt time.Time) error {
	if tokenID == "" {
		return common.ErrBadRequest
	}
	if err := s.tokens.Revoke(ctx, tokenID, time.Until(expiresAt)); err != nil {
		return fmt.Errorf("failed to revoke token: %w", err)
	}
	return nil
}
