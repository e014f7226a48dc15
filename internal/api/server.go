package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/claude-memory/claude-memory/internal/engine"
	"github.com/claude-memory/claude-memory/internal/logging"
	"github.com/claude-memory/claude-memory/pkg/config"
)

// Server represents the REST API server
type Server struct {
	router     *gin.Engine
	eng        *engine.Engine
	cfg        *config.Config
	httpServer *http.Server
	log        *logging.Logger
}

// NewServer creates a new REST API server over an assembled engine.
func NewServer(eng *engine.Engine, cfg *config.Config) *Server {
	log := logging.GetLogger("api")
	log.Info("initializing REST API server")

	if cfg.Logging.Level != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())

	if cfg.RestAPI.CORS {
		corsConfig := cors.Config{
			AllowAllOrigins: true,
			AllowMethods:    []string{"GET", "POST", "OPTIONS"},
			AllowHeaders:    []string{"Origin", "Content-Type", "Accept"},
			MaxAge:          12 * time.Hour,
		}
		router.Use(cors.New(corsConfig))
	}

	server := &Server{
		router: router,
		eng:    eng,
		cfg:    cfg,
		log:    log,
	}
	server.registerRoutes()
	return server
}

func (s *Server) registerRoutes() {
	v1 := s.router.Group("/api/v1")
	v1.GET("/health", s.handleHealth)
	v1.POST("/remember", s.handleRemember)
	v1.POST("/recall", s.handleRecall)
	v1.POST("/reflect", s.handleReflect)
	v1.GET("/identity", s.handleIdentity)
	v1.POST("/forget", s.handleForget)
	v1.POST("/auto_extract", s.handleAutoExtract)
	v1.GET("/fading", s.handleFading)
}

// Start begins serving and blocks until the context is cancelled or the
// listener fails.
func (s *Server) Start(ctx context.Context) error {
	addr := fmt.Sprintf("%s:%d", s.cfg.RestAPI.Host, s.cfg.RestAPI.Port)
	s.httpServer = &http.Server{
		Addr:    addr,
		Handler: s.router,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("REST API listening", "addr", addr)
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("http server failed: %w", err)
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return s.httpServer.Shutdown(shutdownCtx)
	}
}

// Router returns the underlying gin router, used by tests.
func (s *Server) Router() http.Handler {
	return s.router
}
