package main

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/wellform/wellform/internal/api"
	"github.com/wellform/wellform/internal/config"
	"github.com/wellform/wellform/internal/middleware"
	"github.com/wellform/wellform/internal/services"
	"github.com/wellform/wellform/internal/sheets"
)

func main() {
	cfg := config.MustLoad()
	logger := setupLogger(cfg.Env)
	slog.SetDefault(logger)

	writer := sheets.NewClient(cfg.SheetsURL)
	submissions := services.NewSubmissionService(writer, logger)

	mux := http.NewServeMux()
	api.NewRouter(submissions, logger).Register(mux)
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"ok":         true,
			"name":       "Wellform API",
			"commit":     cfg.Commit,
			"build_time": cfg.BuildTime,
		})
	})

	// Serve the questionnaire form itself when a static dir is configured
	// (fullstack image); otherwise the API runs alone behind a hosted form.
	if cfg.StaticDir != "" {
		mux.Handle("/", http.FileServer(http.Dir(cfg.StaticDir)))
	}

	handler := middleware.RequestLog(logger)(middleware.SecureHeaders(middleware.CORS(mux)))

	server := &http.Server{
		Addr:    cfg.Addr,
		Handler: handler,
		// No WriteTimeout: a submission response waits on the sheet webhook,
		// which itself has no deadline.
		ReadTimeout: 10 * time.Second,
		IdleTimeout: 60 * time.Second,
	}

	go func() {
		logger.Info("server started", slog.String("addr", cfg.Addr), slog.String("env", cfg.Env))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}()

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)
	<-done

	logger.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Error("shutdown failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
	logger.Info("server stopped")
}

// setupLogger picks the slog handler for the environment: JSON in prod for
// log aggregation, text everywhere else.
func setupLogger(env string) *slog.Logger {
	switch env {
	case "prod":
		return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	case "staging":
		return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	default:
		return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}
}
