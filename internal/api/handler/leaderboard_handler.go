package handler

import (
	"net/http"

	"github.com/Bearmun/vossenjacht/internal/api/middleware"
	"github.com/Bearmun/vossenjacht/internal/app/service"
	"github.com/Bearmun/vossenjacht/internal/common"

	"github.com/go-chi/chi/v5"
)

type LeaderboardHandler struct {
	leaderboardService *service.LeaderboardService
}

func NewLeaderboardHandler(ls *service.LeaderboardService) *LeaderboardHandler {
	return &LeaderboardHandler{leaderboardService: ls}
}

func (h *LeaderboardHandler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.ranked) // GET /api/v1/leaderboard[?event=ID]
}

func (h *LeaderboardHandler) ranked(w http.ResponseWriter, r *http.Request) {
	eventID := r.URL.Query().Get("event")
	view, err := h.leaderboardService.Ranked(r.Context(), middleware.ActorFromContext(r.Context()), eventID)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, view)
}
