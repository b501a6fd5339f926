package api

import (
	"net/http"
	"time"

	"github.com/Bearmun/vossenjacht/internal/api/handler"
	"github.com/Bearmun/vossenjacht/internal/api/middleware"
	"github.com/Bearmun/vossenjacht/internal/app/service"
	"github.com/Bearmun/vossenjacht/internal/common/security"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/jwtauth/v5"
)

func NewRouter(
	authService *service.AuthService,
	userService *service.UserService,
	eventService *service.EventService,
	entryService *service.EntryService,
	leaderboardService *service.LeaderboardService,
	tokens security.TokenRevoker,
) http.Handler {
	r := chi.NewRouter()

	// Base Middlewares
	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(chiMiddleware.Logger)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Timeout(60 * time.Second))

	// Verifier parses a bearer token when present; Identify turns a valid,
	// non-revoked one into the actor context. Neither rejects anonymous
	// requests - the leaderboard and event listings are public reads.
	r.Use(jwtauth.Verifier(security.TokenAuth))
	r.Use(middleware.Identify(tokens))

	// Public health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	// API v1 Routes
	r.Route("/api/v1", func(v1 chi.Router) {
		authHandler := handler.NewAuthHandler(authService)
		authHandler.RegisterPublicRoutes(v1)
		v1.Group(func(protected chi.Router) {
			protected.Use(middleware.RequireAuth)
			authHandler.RegisterProtectedRoutes(protected)
		})

		leaderboardHandler := handler.NewLeaderboardHandler(leaderboardService)
		v1.Route("/leaderboard", leaderboardHandler.RegisterRoutes)

		eventHandler := handler.NewEventHandler(eventService)
		v1.Route("/events", eventHandler.RegisterRoutes)

		entryHandler := handler.NewEntryHandler(entryService)
		v1.Route("/entries", entryHandler.RegisterRoutes)

		userHandler := handler.NewUserHandler(userService)
		v1.Route("/admin", userHandler.RegisterRoutes)
	})

	return r
}
