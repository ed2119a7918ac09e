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

	"github.com/spf13/cobra"

	"github.com/sahintepesi/donation-api/internal/core/service"
	"github.com/sahintepesi/donation-api/internal/handlers"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	log.Println("Starting Donation API...")

	cfg, org, err := loadConfig()
	if err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}
	log.Printf("Configuration loaded: Port=%s, Gateway=%s, ReceiptStore=%s",
		cfg.Server.Port, cfg.Gateway.BaseURL, cfg.Receipts.Store)

	ctx := cmd.Context()

	// Wire up dependencies (manual dependency injection)
	//
	// Infrastructure Layer
	gateway := newGateway(cfg.Gateway, org)
	renderer := newRenderer(cfg.Receipts.FontPath, org)
	store, err := newReceiptStore(ctx, cfg.Receipts)
	if err != nil {
		return err
	}

	// Service Layer
	donations := service.NewDonationService(gateway, org, cfg.Links.CallbackURL)
	callbacks := service.NewCallbackService(gateway, renderer, store, org)
	receipts := service.NewReceiptService(store)

	// API Layer
	handler := handlers.NewDonationHandler(donations, callbacks, receipts, cfg.Links.SuccessURL, cfg.Receipts.Store)
	router := handlers.SetupRouter(handler, cfg.Server.GinMode, cfg.Server.AllowedOrigin)

	server := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("Server listening on %s", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return fmt.Errorf("server error: %w", err)
	case <-quit:
	}

	log.Println("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}
