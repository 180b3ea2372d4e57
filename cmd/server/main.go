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

	"codearena/internal/api"
	"codearena/internal/app/service"
	"codearena/internal/domain/repository"
	"codearena/internal/platform/config"
	"codearena/internal/platform/database"
	"codearena/internal/platform/logging"
	"codearena/internal/platform/queue"
	"codearena/internal/sandbox"
	"codearena/internal/scratch"
)

func main() {
	// 1. Load Configuration
	config.Load()
	fmt.Println("Configuration loaded.")

	// 2. Initialize Logger
	logger := logging.New(config.AppConfig.Env)
	defer logger.Sync()

	// 3. Initialize Database
	database.Connect()
	defer database.Close()

	// 4. Initialize Redis
	queue.ConnectRedis()
	defer queue.CloseRedis()

	// 5. Initialize Repositories & Clients
	submissionRepo := repository.NewPgSubmissionRepository(database.DB)
	sandboxClient := sandbox.NewClient(config.AppConfig.CompilerBaseURL, logger.Named("sandbox"))
	scratchStore := scratch.NewRedisStore(queue.RDB, "scratch:", config.AppConfig.ScratchTTL)

	// 6. Initialize Services
	guard := service.NewSessionGuard()
	runService := service.NewRunService(sandboxClient, guard, scratchStore, logger.Named("run"))
	batchService := service.NewBatchService(sandboxClient, guard, config.AppConfig.BatchCaseDelay, logger.Named("batch"))
	problemService := service.NewProblemService(config.AppConfig.ProblemsBaseURL, logger.Named("problems"))
	contestService := service.NewContestService(
		sandboxClient, problemService, submissionRepo,
		queue.RDB, database.DB,
		config.AppConfig.SubmitLockTTL, logger.Named("contest"))

	// 7. Initialize Router & HTTP Server
	router := api.NewRouter(runService, batchService, problemService, contestService)

	server := &http.Server{
		Addr:         ":" + config.AppConfig.APIPort,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 15 * time.Minute, // batch runs answer synchronously
		IdleTimeout:  120 * time.Second,
	}

	// 8. Graceful Shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		log.Printf("Server starting on port %s", config.AppConfig.APIPort)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Could not listen on %s: %v\n", config.AppConfig.APIPort, err)
		}
	}()
	log.Println("Server started successfully.")

	<-stop

	log.Println("Shutting down server...")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("Server shutdown failed: %v", err)
	}

	log.Println("Server stopped gracefully.")
}
