package handler

import (
	"encoding/json"
	"net/http"

	"github.com/Bearmun/vossenjacht/internal/api/middleware"
	"github.com/Bearmun/vossenjacht/internal/app/service"
	"github.com/Bearmun/vossenjacht/internal/common"

	"github.com/go-chi/chi/v5"
)

type EntryHandler struct {
	entryService *service.EntryService
}

func NewEntryHandler(es *service.EntryService) *EntryHandler {
	return &EntryHandler{entryService: es}
}

func (h *EntryHandler) RegisterRoutes(r chi.Router) {
	r.Use(middleware.RequireAuth)
	r.Post("/", h.createEntry)
	r.Put("/{entryID}", h.updateEntry)
	r.Delete("/{entryID}", h.deleteEntry)

	r.Group(func(admin chi.Router) {
		admin.Use(middleware.AdminOnly)
		admin.Delete("/", h.wipeEntries)
	})
}

func (h *EntryHandler) createEntry(w http.ResponseWriter, r *http.Request) {
	var in service.EntryInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request: "+err.Error())
		return
	}
	entry, err := h.entryService.Create(r.Context(), middleware.ActorFromContext(r.Context()), in)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusCreated, entry)
}

func (h *EntryHandler) updateEntry(w http.ResponseWriter, r *http.Request) {
	var in service.EntryInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request: "+err.Error())
		return
	}
	entry, err := h.entryService.Update(r.Context(), middleware.ActorFromContext(r.Context()), chi.URLParam(r, "entryID"), in)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, entry)
}

func (h *EntryHandler) deleteEntry(w http.ResponseWriter, r *http.Request) {
	err := h.entryService.Delete(r.Context(), middleware.ActorFromContext(r.Context()), chi.URLParam(r, "entryID"))
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, map[string]string{"message": "entry deleted"})
}

func (h *EntryHandler) wipeEntries(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Confirmation string `json:"confirmation"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request: "+err.Error())
		return
	}
	result, err := h.entryService.WipeAll(r.Context(), middleware.ActorFromContext(r.Context()), req.Confirmation)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, result)
}
