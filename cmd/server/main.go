package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Bearmun/vossenjacht/internal/api"
	"github.com/Bearmun/vossenjacht/internal/app/service"
	"github.com/Bearmun/vossenjacht/internal/common"
	"github.com/Bearmun/vossenjacht/internal/common/security"
	"github.com/Bearmun/vossenjacht/internal/domain/model"
	"github.com/Bearmun/vossenjacht/internal/domain/reading"
	"github.com/Bearmun/vossenjacht/internal/domain/repository"
	"github.com/Bearmun/vossenjacht/internal/platform/cache"
	"github.com/Bearmun/vossenjacht/internal/platform/config"
	"github.com/Bearmun/vossenjacht/internal/platform/database"

	"github.com/google/uuid"
)

func main() {
	// 1. Load Configuration
	config.Load()
	fmt.Println("Configuration loaded.")

	// 2. Initialize JWT
	security.InitJWT()
	fmt.Println("JWT initialized.")

	// 3. Reading policy (modulus, precision, reference instant)
	policy, err := reading.NewPolicy(
		config.AppConfig.OdometerModulus,
		config.AppConfig.ReadingPrecision,
		config.AppConfig.ReferenceTime,
	)
	if err != nil {
		log.Fatalf("Invalid reading policy: %v", err)
	}

	// 4. Initialize Database
	database.Connect()
	defer database.Close()
	if err := database.Migrate(context.Background()); err != nil {
		log.Fatalf("Migration failed: %v", err)
	}
	fmt.Println("Database connected.")

	// 5. Initialize Redis (token revocation)
	cache.ConnectRedis()
	defer cache.CloseRedis()
	tokens := cache.NewTokenStore(cache.RDB)

	// 6. Initialize Repositories
	userRepo := repository.NewPgUserRepository(database.DB)
	eventRepo := repository.NewPgEventRepository(database.DB)
	entryRepo := repository.NewPgEntryRepository(database.DB)

	// 7. Seed the bootstrap admin; only admins can create accounts.
	if err := seedAdmin(context.Background(), userRepo); err != nil {
		log.Fatalf("Admin bootstrap failed: %v", err)
	}

	// 8. Initialize Services
	authService := service.NewAuthService(userRepo, tokens)
	userService := service.NewUserService(userRepo)
	eventService := service.NewEventService(eventRepo, entryRepo, database.DB)
	entryService := service.NewEntryService(entryRepo, eventRepo, database.DB, policy)
	leaderboardService := service.NewLeaderboardService(entryRepo, eventRepo)

	// 9. Initialize Router & HTTP Server
	router := api.NewRouter(authService, userService, eventService, entryService, leaderboardService, tokens)

	server := &http.Server{
		Addr:         ":" + config.AppConfig.APIPort,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// 10. Graceful Shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		log.Printf("Server starting on port %s", config.AppConfig.APIPort)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Could not listen on %s: %v\n", config.AppConfig.APIPort, err)
		}
	}()
	log.Println("Server started successfully.")

	<-stop // Wait for interrupt signal

	log.Println("Shutting down server...")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("Server shutdown failed: %v", err)
	}

	log.Println("Server stopped gracefully.")
}

func seedAdmin(ctx context.Context, userRepo repository.UserRepository) error {
	username := config.AppConfig.AdminUsername
	_, err := userRepo.FindByUsername(ctx, username)
	if err == nil {
		return nil // already seeded
	}
	if !errors.Is(err, common.ErrNotFound) {
		return err
	}
	if config.AppConfig.AdminPassword == "" {
		log.Println("WARN: no admin account exists and ADMIN_PASSWORD is unset; skipping bootstrap")
		return nil
	}

	hashed, err := security.HashPassword(config.AppConfig.AdminPassword)
	if err != nil {
		return err
	}
	admin := &model.User{
		ID:             uuid.NewString(),
		Username:       username,
		HashedPassword: hashed,
		Role:           model.RoleAdmin,
	}
	if err := userRepo.Create(ctx, nil, admin); err != nil {
		return err
	}
	log.Printf("Bootstrap admin %q created", username)
	return nil
}
