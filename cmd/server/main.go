package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"recruitconnect/internal/api"
	"recruitconnect/internal/app/service"
	"recruitconnect/internal/common/security"
	"recruitconnect/internal/domain/repository"
	"recruitconnect/internal/platform/config"
	"recruitconnect/internal/platform/database"
)

func main() {
	// 1. Load Configuration
	config.Load()
	fmt.Println("Configuration loaded.")

	// 2. Initialize JWT
	security.InitJWT()
	fmt.Println("JWT initialized.")

	// 3. Initialize Database
	database.Connect()
	defer database.Close()
	fmt.Println("Database connected.")

	// 4. Initialize Repositories
	userRepo := repository.NewPgUserRepository(database.DB)
	jobRepo := repository.NewPgJobRepository(database.DB)
	applicationRepo := repository.NewPgApplicationRepository(database.DB)

	// 5. Initialize Services
	authService := service.NewAuthService(userRepo)
	jobService := service.NewJobService(jobRepo, applicationRepo)
	applicationService := service.NewApplicationService(applicationRepo, jobRepo)

	// 6. Initialize Router & HTTP Server
	router := api.NewRouter(authService, jobService, applicationService, userRepo)

	server := &http.Server{
		Addr:         ":" + config.AppConfig.APIPort,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// 7. Graceful Shutdown
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
