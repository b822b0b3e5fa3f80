// Package server assembles the gin router and the http.Server of the blog.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/mikepea/blogly/pkg/blogly/config"
	"github.com/mikepea/blogly/pkg/blogly/importexport"
	"github.com/mikepea/blogly/pkg/blogly/logging"
	"github.com/mikepea/blogly/pkg/blogly/posts"
	"github.com/mikepea/blogly/pkg/blogly/stats"
	"github.com/mikepea/blogly/pkg/blogly/store"
	"github.com/mikepea/blogly/pkg/blogly/tags"
	"github.com/mikepea/blogly/pkg/blogly/users"
	"github.com/mikepea/blogly/pkg/blogly/web"
	"github.com/rs/zerolog"
)

// Server is the HTTP server of the blog
type Server struct {
	*http.Server
	logger      zerolog.Logger
	startupTime time.Time
}

// New builds the router and wraps it in an http.Server configured from cfg
func New(cfg config.Config, st *store.Store, logger zerolog.Logger) (*Server, error) {
	startupTime := time.Now()

	router, err := NewRouter(st, logger, startupTime)
	if err != nil {
		return nil, err
	}

	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}

	return &Server{Server: srv, logger: logger, startupTime: startupTime}, nil
}

// NewRouter registers every page and API route on a new gin engine
func NewRouter(st *store.Store, logger zerolog.Logger, startupTime time.Time) (*gin.Engine, error) {
	r := gin.New()
	r.Use(logging.Middleware(logger), gin.Recovery())

	if err := web.Install(r); err != nil {
		return nil, err
	}

	r.GET("/", func(c *gin.Context) {
		web.Redirect(c, "/users")
	})

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "ok",
		})
	})

	users.NewHandler(st, logger).RegisterRoutes(r)
	posts.NewHandler(st, logger).RegisterRoutes(r)
	tags.NewHandler(st, logger).RegisterRoutes(r)

	// API routes
	api := r.Group("/api")
	{
		api.GET("/health", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{
				"status":  "ok",
				"service": "blogly",
				"uptime":  time.Since(startupTime).Round(time.Second).String(),
			})
		})

		importexport.NewHandler(st, logger).RegisterRoutes(api)
		stats.NewHandler(st, logger).RegisterRoutes(api)
	}

	r.NoRoute(web.RenderNotFound)

	return r, nil
}

// Start serves until the server is shut down, then sends the result on errChannel
func (s *Server) Start(errChannel chan<- error) {
	s.logger.Info().Str("addr", s.Addr).Msg("server started")
	err := s.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		err = nil
	}
	errChannel <- err
}

// ShutdownGracefully stops accepting connections and waits up to timeout
// for in-flight requests
func (s *Server) ShutdownGracefully(timeout time.Duration) error {
	s.logger.Info().Msg("gracefully shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := s.Shutdown(ctx); err != nil {
		s.logger.Error().Err(err).Msg("error shutting down the server")
		return err
	}
	s.logger.Info().Msg("http server gracefully shut down")
	return nil
}
