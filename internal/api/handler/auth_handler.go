package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/Bearmun/vossenjacht/internal/app/service"
	"github.com/Bearmun/vossenjacht/internal/common"
	"github.com/Bearmun/vossenjacht/internal/common/security"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/jwtauth/v5"
)

type AuthHandler struct {
	authService *service.AuthService
}

func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

func (h *AuthHandler) RegisterPublicRoutes(r chi.Router) {
	r.Post("/auth/login", h.login)
}

func (h *AuthHandler) RegisterProtectedRoutes(r chi.Router) {
	r.Post("/auth/logout", h.logout)
}

func (h *AuthHandler) login(w http.ResponseWriter, r *http.Request) {
	var req service.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}
	resp, err := h.authService.Login(r.Context(), req)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, resp)
}

func (h *AuthHandler) logout(w http.ResponseWriter, r *http.Request) {
	_, claims, err := jwtauth.FromContext(r.Context())
	if err != nil {
		common.RespondWithError(w, http.StatusUnauthorized, "Invalid token")
		return
	}
	tokenID, err := security.GetTokenIDFromClaims(claims)
	if err != nil {
		common.RespondWithError(w, http.StatusUnauthorized, "Invalid token claims: "+err.Error())
		return
	}

	expiresAt := time.Now()
	switch exp := claims["exp"].(type) {
	case time.Time:
		expiresAt = exp
	case float64:
		expiresAt = time.Unix(int64(exp), 0)
	}

	if err := h.authService.Logout(r.Context(), tokenID, expiresAt); err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, map[string]string{"message": "logged out"})
}
