package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getkin/kin-openapi/openapi3"
	nethttpmiddleware "github.com/oapi-codegen/nethttp-middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.etcd.io/bbolt"

	"github.com/alorle/m3u-editor/internal/adapter/driven"
	"github.com/alorle/m3u-editor/internal/adapter/driver"
	"github.com/alorle/m3u-editor/internal/api"
	"github.com/alorle/m3u-editor/internal/application"
	"github.com/alorle/m3u-editor/internal/config"
	port "github.com/alorle/m3u-editor/internal/port/driven"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.SlogLevel(),
	}))
	slog.SetDefault(logger)

	logger.Info("starting m3u-editor", "config", cfg)

	extractor, err := cfg.Extractor()
	if err != nil {
		log.Fatalf("invalid credentials timezone: %v", err)
	}

	var playlistRepo port.PlaylistRepository
	if cfg.MemoryOnly() {
		logger.Warn("no database path configured, saved playlists will not survive a restart")
		playlistRepo = driven.NewPlaylistMemoryRepository()
	} else {
		db, err := bbolt.Open(cfg.Storage.DBPath, 0600, &bbolt.Options{Timeout: 1 * time.Second})
		if err != nil {
			log.Fatalf("failed to open database: %v", err)
		}
		defer func() {
			if err := db.Close(); err != nil {
				logger.Error("failed to close database", "error", err)
			}
		}()

		playlistRepo, err = driven.NewPlaylistBoltDBRepository(db)
		if err != nil {
			log.Fatalf("failed to create playlist repository: %v", err)
		}
	}

	// Initialize application services
	editorService := application.NewEditorService(extractor, cfg.Export.GuideURLs, logger)
	playlistService := application.NewPlaylistService(playlistRepo, editorService, logger)
	healthService := application.NewHealthService(playlistRepo)

	// Initialize HTTP handlers
	sessionHandler := driver.NewSessionHTTPHandler(editorService, cfg.Import.MaxBytes)
	channelHandler := driver.NewChannelHTTPHandler(editorService)
	selectionHandler := driver.NewSelectionHTTPHandler(editorService)
	bulkHandler := driver.NewBulkHTTPHandler(editorService)
	categoryHandler := driver.NewCategoryHTTPHandler(editorService)
	credentialHandler := driver.NewCredentialHTTPHandler(editorService)
	exportHandler := driver.NewExportHTTPHandler(editorService)
	playlistHandler := driver.NewPlaylistHTTPHandler(playlistService)
	healthHandler := driver.NewHealthHTTPHandler(healthService)

	docs, err := api.GetSwagger()
	if err != nil {
		log.Fatalf("failed to load OpenAPI document: %v", err)
	}

	// Setup routes
	apiMux := http.NewServeMux()
	apiMux.Handle("/session", sessionHandler)
	apiMux.Handle("/session/", sessionHandler)
	apiMux.Handle("/channels", channelHandler)
	apiMux.Handle("/channels/", channelHandler)
	apiMux.Handle("/selection", selectionHandler)
	apiMux.Handle("/selection/", selectionHandler)
	apiMux.Handle("/bulk/", bulkHandler)
	apiMux.Handle("/categories", categoryHandler)
	apiMux.Handle("/categories/", categoryHandler)
	apiMux.Handle("/credentials", credentialHandler)
	apiMux.Handle("/credentials/", credentialHandler)
	apiMux.Handle("/export", exportHandler)
	apiMux.Handle("/playlists", playlistHandler)
	apiMux.Handle("/playlists/", playlistHandler)
	apiMux.Handle("/health", healthHandler)
	apiMux.Handle("/openapi.json", driver.NewDocumentationHandler(docs))

	validated, err := newRequestValidator(apiMux)
	if err != nil {
		log.Fatalf("failed to create request validator: %v", err)
	}

	rootMux := http.NewServeMux()
	rootMux.Handle("/api/", http.StripPrefix("/api", validated))
	rootMux.Handle("/playlist.m3u", exportHandler)
	rootMux.Handle("/metrics", promhttp.Handler())

	// Create HTTP server
	server := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      rootMux,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		logger.Info("http server listening", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	// Graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	logger.Info("shutdown signal received, shutting down gracefully")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Error("server shutdown error", "error", err)
	}

	logger.Info("server stopped")
}

// newRequestValidator checks every API request against the embedded OpenAPI
// document before it reaches the handlers. Paths are matched after the /api
// prefix has been stripped, so the document's server list is cleared.
func newRequestValidator(next http.Handler) (http.Handler, error) {
	swagger, err := api.GetSwagger()
	if err != nil {
		return nil, err
	}
	swagger.Servers = openapi3.Servers{}

	validator := nethttpmiddleware.OapiRequestValidatorWithOptions(swagger, &nethttpmiddleware.Options{
		ErrorHandler: driver.ValidationErrorHandler,
	})
	return validator(next), nil
}
