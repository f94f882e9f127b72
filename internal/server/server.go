package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/terminal-bench/buckwave/internal/config"
	"github.com/terminal-bench/buckwave/internal/handlers"
	"github.com/terminal-bench/buckwave/internal/middleware"
	"golang.org/x/sync/errgroup"
)

// Server wires configuration, logging and routes into an http.Server.
type Server struct {
	cfg     *config.Config
	logger  *logrus.Logger
	limiter *middleware.RateLimiter
	router  *gin.Engine
	srv     *http.Server
}

// New creates a server ready to Run. It fails if cfg.TrustedProxies holds
// an entry that is neither an IP nor a CIDR.
func New(cfg *config.Config, logger *logrus.Logger) (*Server, error) {
	if cfg.Debug {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	s := &Server{
		cfg:     cfg,
		logger:  logger,
		limiter: middleware.NewRateLimiter(cfg.RateLimitRPS),
	}

	router, err := s.setupRouter()
	if err != nil {
		return nil, err
	}
	s.router = router
	s.srv = &http.Server{
		Addr:         cfg.Addr(),
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}
	return s, nil
}

// Router returns the gin engine serving s.
func (s *Server) Router() *gin.Engine {
	return s.router
}

func (s *Server) setupRouter() (*gin.Engine, error) {
	router := gin.New()

	// X-Forwarded-For is only honoured from these peers; the rate limiter
	// keys on the resulting client IP.
	if err := router.SetTrustedProxies(s.cfg.TrustedProxies); err != nil {
		return nil, fmt.Errorf("invalid TRUSTED_PROXIES: %w", err)
	}

	// Middleware
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger(s.logger))
	router.Use(middleware.Recovery())
	router.Use(middleware.CORS(s.cfg))
	router.Use(middleware.RateLimit(s.cfg, s.limiter))
	router.Use(middleware.BodyLimit(s.cfg.MaxBodyBytes))

	// Public routes
	router.GET("/", handlers.Index)
	router.GET("/health", handlers.Health)

	simulationHandler := handlers.NewSimulationHandler()
	sim := router.Group("/simulate")
	{
		sim.POST("", simulationHandler.Simulate)
		sim.POST("/summary", simulationHandler.Summary)
		sim.POST("/export", simulationHandler.Export)
		sim.GET("/chart", simulationHandler.Chart)
	}

	return router, nil
}

// Run serves on ln until ctx is cancelled, then shuts down gracefully
// within cfg.ShutdownTimeout.
func (s *Server) Run(ctx context.Context, ln net.Listener) error {
	g, ctx := errgroup.WithContext(ctx)

	done := make(chan struct{})
	s.limiter.StartCleanup(done, 10*time.Minute, time.Hour)

	g.Go(func() error {
		s.logger.WithField("addr", ln.Addr().String()).Info("server listening")
		if err := s.srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		close(done)
		s.logger.Info("shutting down server")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
		defer cancel()
		return s.srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

// ListenAndRun opens cfg.Addr() and calls Run.
func (s *Server) ListenAndRun(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.srv.Addr)
	if err != nil {
		return err
	}
	return s.Run(ctx, ln)
}
