package web

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/Protocol-Lattice/docassist/internal/ctxlog"
	"github.com/Protocol-Lattice/docassist/pkg/assistant"
	"github.com/Protocol-Lattice/docassist/pkg/concurrent"
	"github.com/Protocol-Lattice/docassist/pkg/credentials"
)

// Server is the docassist JSON API.
type Server struct {
	assistant *assistant.Assistant
	store     credentials.Store
	pool      *concurrent.WorkerPool
	logger    *slog.Logger
	router    *gin.Engine
}

// NewServer creates the API. maxInflight bounds concurrent provider calls.
func NewServer(a *assistant.Assistant, store credentials.Store, logger *slog.Logger, maxInflight int) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	router := gin.New()
	router.Use(gin.Recovery())

	s := &Server{
		assistant: a,
		store:     store,
		pool:      concurrent.NewWorkerPool(maxInflight),
		logger:    logger,
		router:    router,
	}
	router.Use(s.requestContext)

	api := router.Group("/api")
	{
		api.GET("/credentials", s.handleListCredentials)
		api.PUT("/credentials/:name", s.handleSetCredential)
		api.DELETE("/credentials/:name", s.handleClearCredential)
		api.POST("/context", s.handleContext)
		api.POST("/generate", s.handleGenerate)
		api.POST("/image", s.handleImage)
	}
	router.GET("/healthz", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "ok"}) })

	return s
}

// Handler exposes the router for http.Server or tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run starts the web server.
func (s *Server) Run(addr string) error {
	s.logger.Info("listening", "addr", addr)
	return s.router.Run(addr)
}

// requestContext tags each request with an id and a request-scoped logger.
func (s *Server) requestContext(c *gin.Context) {
	id := c.GetHeader("X-Request-ID")
	if id == "" {
		id = uuid.NewString()
	}
	c.Header("X-Request-ID", id)

	logger := s.logger.With("request_id", id)
	c.Request = c.Request.WithContext(ctxlog.WithLogger(c.Request.Context(), logger))
	c.Next()

	logger.Debug("request served", "method", c.Request.Method, "path", c.FullPath(), "status", c.Writer.Status())
}
