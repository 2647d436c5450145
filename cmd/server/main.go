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

	"insightai/internal/api"
	"insightai/internal/config"
	"insightai/internal/core"
	"insightai/internal/store"
)

func main() {
	// Load configuration
	config.LoadConfig()

	// Setup logging
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	if config.AppConfig.LogLevel == "DEBUG" {
		log.Println("Service starting in DEBUG mode")
	}

	// Credential holder; the key may also be installed later through
	// the credential endpoint.
	credentials := core.NewCredentialStore(config.AppConfig.GeminiAPIKey)

	// In-session history, bounded and newest-first.
	history := store.NewHistoryStore()

	// Model call layer and the analysis orchestrator on top of it.
	llmService := core.NewLLMService(credentials, config.AppConfig.GeminiModel)
	analyzeTimeout := time.Duration(config.AppConfig.AnalyzeTimeoutSeconds) * time.Second
	insightService := core.NewInsightService(llmService, history, analyzeTimeout)

	// Initialize API Handler and Router
	apiHandler := api.NewAPIHandler(insightService, credentials)
	router := api.NewRouter(apiHandler)

	// Start HTTP server
	serverAddr := fmt.Sprintf(":%s", config.AppConfig.HTTPPort)

	srv := &http.Server{
		Addr:         serverAddr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 90 * time.Second, // Model calls can take a while
		IdleTimeout:  120 * time.Second,
	}

	// Graceful shutdown handling
	go func() {
		log.Printf("Starting server on %s. Press Ctrl+C to quit.", serverAddr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Could not listen on %s: %v\n", serverAddr, err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	// Give active connections time to finish before exiting.
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exiting gracefully")
}
