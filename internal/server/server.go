package server

import (
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v5"
	"go.uber.org/zap"

	"github.com/xaenox/mindmate/internal/auth"
	"github.com/xaenox/mindmate/internal/chat"
	"github.com/xaenox/mindmate/internal/stats"
	"github.com/xaenox/mindmate/internal/storage"
)

// Server wires the HTTP API over the chat and stats services and the
// storage-backed CRUD endpoints.
type Server struct {
	echo     *echo.Echo
	storage  storage.Storage
	chat     *chat.Service
	stats    *stats.Service
	verifier auth.Verifier
	limiter  *RateLimiter
	logger   *zap.Logger
}

func New(store storage.Storage, chatSvc *chat.Service, statsSvc *stats.Service, verifier auth.Verifier, limiter *RateLimiter, logger *zap.Logger) *Server {
	s := &Server{
		echo:     echo.New(),
		storage:  store,
		chat:     chatSvc,
		stats:    statsSvc,
		verifier: verifier,
		limiter:  limiter,
		logger:   logger,
	}
	s.registerRoutes()
	return s
}

func (s *Server) registerRoutes() {
	e := s.echo
	e.Use(s.recoverMiddleware, s.rateLimitMiddleware)

	e.GET("/", s.root)

	e.GET("/api/auth/me", s.getMe)

	j := e.Group("/api/journal")
	j.GET("", s.listJournals)
	j.POST("", s.createJournal)
	j.PUT("/:id", s.updateJournal)
	j.DELETE("/:id", s.deleteJournal)

	m := e.Group("/api/moods")
	m.GET("", s.listMoods)
	m.POST("", s.createMood)
	m.GET("/:id", s.getMood)
	m.PUT("/:id", s.updateMood)
	m.DELETE("/:id", s.deleteMood)

	c := e.Group("/api/chat")
	c.POST("/message", s.chatMessage)
	c.GET("/conversations", s.listConversations)
	c.GET("/messages/:conversationId", s.listMessages)

	e.GET("/api/stats", s.getStats)
}

// Start serves the API until the listener fails.
func (s *Server) Start(address string) error {
	srv := &http.Server{
		Addr:              address,
		Handler:           s.echo,
		ReadHeaderTimeout: 10 * time.Second,
	}
	s.logger.Info("HTTP server listening", zap.String("address", address))
	return srv.ListenAndServe()
}

// Handler exposes the routed handler, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.echo
}

func (s *Server) recoverMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c *echo.Context) error {
		defer func() {
			if r := recover(); r != nil {
				s.logger.Error("Handler panicked", zap.Any("panic", r))
				_ = c.JSON(http.StatusInternalServerError, errorEnvelope("an unexpected error occurred"))
			}
		}()
		return next(c)
	}
}

func (s *Server) rateLimitMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c *echo.Context) error {
		if !s.limiter.Allow(clientKey(c)) {
			return echo.NewHTTPError(http.StatusTooManyRequests, "too many requests, please try again later")
		}
		return next(c)
	}
}

// clientKey identifies the caller for rate limiting: the bearer token when
// present, the remote address otherwise.
func clientKey(c *echo.Context) string {
	if token := bearerToken(c); token != "" {
		return token
	}
	return c.Request().RemoteAddr
}

func bearerToken(c *echo.Context) string {
	header := c.Request().Header.Get("Authorization")
	if !strings.HasPrefix(header, "Bearer ") {
		return ""
	}
	return strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
}

// requireAuth resolves the calling user from the bearer token.
func (s *Server) requireAuth(c *echo.Context) (string, error) {
	token := bearerToken(c)
	if token == "" {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "you are not logged in, please log in to get access")
	}

	userID, err := s.verifier.Verify(c.Request().Context(), token)
	if err != nil {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "invalid token, please log in again")
	}
	return userID, nil
}
