// Package api serves the services as a JSON HTTP API.
package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/bigfeelings/bigfeelings/internal/config"
	"github.com/bigfeelings/bigfeelings/internal/services"
)

const shutdownTimeout = 5 * time.Second

// Handler holds the endpoints. Every handler goes through services.
type Handler struct {
	svc *services.Services
	log *zap.Logger
}

// NewHandler creates a Handler.
func NewHandler(svc *services.Services, log *zap.Logger) *Handler {
	if log == nil {
		log = zap.NewNop()
	}
	return &Handler{svc: svc, log: log}
}

// NewRouter builds the gin engine with middleware and every route.
func NewRouter(svc *services.Services, cfg config.ServerConfig, log *zap.Logger) *gin.Engine {
	if log == nil {
		log = zap.NewNop()
	}
	h := NewHandler(svc, log)

	r := gin.New()
	r.Use(TraceID(), Logger(log), Recovery(log))
	r.Use(RateLimit(rate.Limit(cfg.RateLimit), cfg.RateBurst))

	// Every route that touches the store shares one lock; the story catalog
	// is read-only and stays concurrent.
	persist := Serialize()

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api")
	{
		api.GET("/stories", h.ListStories)
		api.GET("/stories/:id", h.GetStory)

		api.GET("/children", persist, h.ListChildren)
		api.POST("/children", persist, h.CreateChild)

		child := api.Group("/children/:id", persist)
		child.PUT("", h.UpdateChild)
		child.DELETE("", h.DeleteChild)
		child.POST("/select", h.SelectChild)

		child.POST("/stories/:story/complete", h.CompleteStory)
		child.POST("/stories/:story/favorite", h.ToggleFavorite)

		child.GET("/quizzes", h.ListQuizzes)
		child.POST("/quizzes", h.SubmitQuiz)

		child.GET("/achievements", h.Achievements)
		child.GET("/streak", h.Streak)
		child.GET("/growth", h.Growth)

		child.GET("/journal", h.ListJournal)
		child.POST("/journal", h.AddJournalEntry)
		child.DELETE("/journal/:entry", h.DeleteJournalEntry)
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	})
	return r
}

// Serve runs the API until ctx is cancelled, then shuts down gracefully.
func Serve(ctx context.Context, svc *services.Services, cfg config.ServerConfig, log *zap.Logger) error {
	if cfg.Mode != "" {
		gin.SetMode(cfg.Mode)
	}
	srv := &http.Server{
		Addr:         cfg.Addr,
		Handler:      NewRouter(svc, cfg, log),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	errc := make(chan error, 1)
	go func() {
		log.Info("api listening", zap.String("addr", cfg.Addr))
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("listen %s: %w", cfg.Addr, err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	log.Info("api shutting down")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
