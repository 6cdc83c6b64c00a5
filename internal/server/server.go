// Package server exposes log entry retrieval and logger levels over HTTP.
package server

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/hashicorp/go-hclog"

	"github.com/five82/logdesk/internal/catalog"
	"github.com/five82/logdesk/internal/logentry"
	"github.com/five82/logdesk/internal/registry"
)

const shutdownTimeout = 5 * time.Second

// EntrySource answers entry queries. *catalog.Catalog implements it.
type EntrySource interface {
	Sources(ctx context.Context) ([]string, error)
	Entries(ctx context.Context, q catalog.Query) ([]logentry.Entry, error)
}

// LevelBody is the request body for changing logger levels.
type LevelBody struct {
	LoggerName string `json:"logger_name"`
	LogLevel   string `json:"log_level"`
}

// Server holds the Gin engine and its collaborators.
type Server struct {
	engine   *gin.Engine
	entries  EntrySource
	registry registry.Registry
	logger   hclog.Logger
	addr     string
}

// New creates a server listening on addr once Run is called.
func New(entries EntrySource, reg registry.Registry, logger hclog.Logger, addr string) *Server {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.RedirectTrailingSlash = false
	engine.RedirectFixedPath = false

	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	s := &Server{
		engine:   engine,
		entries:  entries,
		registry: reg,
		logger:   logger,
		addr:     addr,
	}
	s.setupRoutes()
	return s
}

// Handler returns the HTTP handler, for tests and embedding.
func (s *Server) Handler() http.Handler {
	return s.engine
}

func (s *Server) setupRoutes() {
	s.engine.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	s.engine.GET("/log/entries", s.handleEntries)
	s.engine.GET("/log/sources", s.handleSources)

	s.engine.GET("/log", s.handleLoggers)
	s.engine.POST("/log", s.handleSetLevel)
	s.engine.PUT("/log", s.handleSetLevel)
	s.engine.POST("/log/loggers/:identifier", s.handleSetLevel)
	s.engine.PUT("/log/loggers/:identifier", s.handleSetLevel)
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.addr,
		Handler:           s.engine,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", s.addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	s.logger.Info("shutting down")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return nil
}

func (s *Server) handleEntries(c *gin.Context) {
	q := catalog.Query{
		Source:    c.Query("source"),
		Count:     -1,
		Level:     c.Query("level"),
		Component: c.Query("component"),
	}
	if raw := strings.TrimSpace(c.Query("count")); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "count must be an integer"})
			return
		}
		q.Count = n
	}

	entries, err := s.entries.Entries(c.Request.Context(), q)
	switch {
	case errors.Is(err, catalog.ErrUnknownSource):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	case errors.Is(err, logentry.ErrInvalidLevel):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	case err != nil:
		s.logger.Error("read entries", "source", q.Source, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to read log entries"})
		return
	}
	if entries == nil {
		entries = []logentry.Entry{}
	}
	c.JSON(http.StatusOK, entries)
}

func (s *Server) handleSources(c *gin.Context) {
	sources, err := s.entries.Sources(c.Request.Context())
	if err != nil {
		s.logger.Error("list sources", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list log sources"})
		return
	}
	if sources == nil {
		sources = []string{}
	}
	c.JSON(http.StatusOK, sources)
}

func (s *Server) handleLoggers(c *gin.Context) {
	withLevel := false
	if raw, ok := c.GetQuery("level"); ok {
		withLevel = !strings.EqualFold(raw, "false")
	}
	c.JSON(http.StatusOK, s.registry.List(withLevel))
}

func (s *Server) handleSetLevel(c *gin.Context) {
	var body LevelBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	// The path identifier wins over the body; empty means every logger.
	name := body.LoggerName
	if id := c.Param("identifier"); id != "" {
		name = id
	}
	s.logger.Info("set log level", "logger", name, "level", body.LogLevel)

	err := s.registry.SetLevel(name, body.LogLevel)
	switch {
	case errors.Is(err, registry.ErrInvalidLevel):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Level is invalid"})
		return
	case errors.Is(err, registry.ErrUnknownLogger):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	case err != nil:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}
