// Package server exposes the assistant over HTTP.
package server

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"github.com/mindwell-ai/mindwell/ai/metrics"
	"github.com/mindwell-ai/mindwell/internal/profile"
)

// ChatService handles one conversation turn. Implemented by the assistant.
type ChatService interface {
	HandleTurn(ctx context.Context, userID, sessionID, message string) (reply, resolvedSessionID string, err error)
}

// Server is the HTTP front for the assistant.
type Server struct {
	e       *echo.Echo
	profile *profile.Profile
	chat    ChatService
}

// NewServer builds the echo server with routes and middleware registered.
// exporter may be nil, in which case no metrics endpoint is exposed.
func NewServer(profile *profile.Profile, chat ChatService, exporter *metrics.PrometheusExporter) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	s := &Server{
		e:       e,
		profile: profile,
		chat:    chat,
	}

	e.GET("/healthz", s.health)
	e.POST("/api/v1/chat", s.handleChat)
	if exporter != nil {
		e.GET("/metrics", echo.WrapHandler(exporter.Handler()))
	}
	return s
}

// Echo returns the underlying echo instance, used by tests.
func (s *Server) Echo() *echo.Echo {
	return s.e
}

// Start serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Start(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		slog.Info("http server listening", "addr", s.profile.ListenAddr())
		if err := s.e.Start(s.profile.ListenAddr()); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return errors.Wrap(err, "http server failed")
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		slog.Info("shutting down http server")
		return s.e.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

func (s *Server) health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status":  "ok",
		"version": s.profile.Version,
	})
}

type chatRequest struct {
	UserID    string `json:"user_id"`
	SessionID string `json:"session_id,omitempty"`
	Message   string `json:"message"`
}

type chatResponse struct {
	Reply     string `json:"reply"`
	SessionID string `json:"session_id"`
}

func (s *Server) handleChat(c echo.Context) error {
	var req chatRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if req.UserID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "user_id is required")
	}
	if req.Message == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "message is required")
	}

	reply, sessionID, err := s.chat.HandleTurn(c.Request().Context(), req.UserID, req.SessionID, req.Message)
	if err != nil {
		slog.Error("chat turn failed", "user_id", req.UserID, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "assistant is unavailable, please try again")
	}

	return c.JSON(http.StatusOK, chatResponse{
		Reply:     reply,
		SessionID: sessionID,
	})
}
