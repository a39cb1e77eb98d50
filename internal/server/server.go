// ABOUTME: HTTP ingress for notification posts.
// ABOUTME: Loopback gin listener accepting {title, body, subtitle?, pid?, callback_url?}.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/notifyd/notifyd/internal/activation"
	"github.com/notifyd/notifyd/internal/logging"
	"github.com/notifyd/notifyd/internal/notify"
)

// Sender delivers a notification to the desktop.
type Sender interface {
	Send(n notify.Notification) error
}

// postRequest is the wire format of a notification post. Unknown fields
// are ignored; title and body must be present and non-empty.
type postRequest struct {
	Title       string `json:"title" binding:"required"`
	Body        string `json:"body" binding:"required"`
	Subtitle    string `json:"subtitle"`
	PID         *int   `json:"pid"`
	CallbackURL string `json:"callback_url"`
}

// Server is the notification ingress.
type Server struct {
	listen string
	sender Sender
	router *gin.Engine
}

// New builds the server and its routes.
func New(listen string, sender Sender) *Server {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())

	s := &Server{
		listen: listen,
		sender: sender,
		router: router,
	}
	router.POST("/", s.handlePost)
	router.GET("/healthz", s.handleHealth)
	return s
}

// Handler exposes the routing tree, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) handlePost(c *gin.Context) {
	reqID := uuid.NewString()

	var req postRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logging.Debug("Rejected notification post %s: %v", reqID, err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "title and body are required"})
		return
	}

	n := notify.Notification{
		Title:    req.Title,
		Subtitle: req.Subtitle,
		Body:     req.Body,
		Target: activation.ActivationTarget{
			ProcessID:   req.PID,
			CallbackURL: req.CallbackURL,
		},
	}

	if err := s.sender.Send(n); err != nil {
		logging.Error("Notification %s failed: %v", reqID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "delivery failed"})
		return
	}

	logging.Info("Notification %s delivered: title=%q pid=%v", reqID, req.Title, req.PID)
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Run serves until ctx is canceled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.listen,
		Handler:           s.router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	logging.Info("Listening on %s", s.listen)

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		err := <-errCh
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case err := <-errCh:
		return err
	}
}
