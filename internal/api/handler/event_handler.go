package handler

import (
	"encoding/json"
	"net/http"

	"github.com/Bearmun/vossenjacht/internal/api/middleware"
	"github.com/Bearmun/vossenjacht/internal/app/service"
	"github.com/Bearmun/vossenjacht/internal/common"

	"github.com/go-chi/chi/v5"
)

type EventHandler struct {
	eventService *service.EventService
}

func NewEventHandler(es *service.EventService) *EventHandler {
	return &EventHandler{eventService: es}
}

func (h *EventHandler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.listEvents)            // GET /api/v1/events
	r.Get("/{eventSlug}", h.getEvent)   // GET /api/v1/events/herfstjacht-2026

	r.Group(func(protected chi.Router) {
		protected.Use(middleware.RequireAuth)
		protected.Post("/", h.createEvent)
		protected.Put("/{eventSlug}", h.updateEvent)
		protected.Post("/{eventSlug}/complete", h.completeEvent)
		protected.Delete("/{eventSlug}", h.deleteEvent)
	})
}

func (h *EventHandler) createEvent(w http.ResponseWriter, r *http.Request) {
	var req service.CreateEventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request: "+err.Error())
		return
	}
	event, err := h.eventService.Create(r.Context(), middleware.ActorFromContext(r.Context()), req)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusCreated, event)
}

func (h *EventHandler) listEvents(w http.ResponseWriter, r *http.Request) {
	events, err := h.eventService.List(r.Context())
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, events)
}

func (h *EventHandler) getEvent(w http.ResponseWriter, r *http.Request) {
	event, err := h.eventService.GetBySlug(r.Context(), chi.URLParam(r, "eventSlug"))
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, event)
}

func (h *EventHandler) updateEvent(w http.ResponseWriter, r *http.Request) {
	var req service.UpdateEventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request: "+err.Error())
		return
	}
	event, err := h.eventService.Update(r.Context(), middleware.ActorFromContext(r.Context()), chi.URLParam(r, "eventSlug"), req)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, event)
}

func (h *EventHandler) completeEvent(w http.ResponseWriter, r *http.Request) {
	event, err := h.eventService.Complete(r.Context(), middleware.ActorFromContext(r.Context()), chi.URLParam(r, "eventSlug"))
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, event)
}

func (h *EventHandler) deleteEvent(w http.ResponseWriter, r *http.Request) {
	err := h.eventService.Delete(r.Context(), middleware.ActorFromContext(r.Context()), chi.URLParam(r, "eventSlug"))
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, map[string]string{"message": "event deleted"})
}
