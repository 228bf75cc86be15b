// Package api exposes the quota engine over HTTP with gin.
package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/sky-flux/quota"
	"github.com/sky-flux/quota/pace"
)

// Store is the persistence the handlers need. *boltstore.Store satisfies it.
type Store interface {
	quota.ProgressLookup
	Subjects() ([]quota.Subject, error)
	SaveSubject(quota.Subject) error
	DeleteSubject(id string) error
	Settings() (quota.Settings, error)
	SaveSettings(quota.Settings) error
	AddProgress(quota.ProgressRecord) (quota.ProgressRecord, error)
	Progress() ([]quota.ProgressRecord, error)
}

// Config configures a Server. Store is required; other zero values are
// replaced with defaults.
type Config struct {
	Store     Store
	Engine    *quota.Engine    // nil → quota.NewEngine with Logger
	Estimator *pace.Estimator  // nil → pace.NewEstimator defaults
	Logger    *slog.Logger     // nil → slog.Default()
	Clock     func() time.Time // nil → time.Now
	Location  *time.Location   // calendar for "today", nil → time.Local
}

// Server serves the quota API.
type Server struct {
	store     Store
	engine    *quota.Engine
	estimator *pace.Estimator
	logger    *slog.Logger
	clock     func() time.Time
	loc       *time.Location
}

// New creates a Server from cfg.
func New(cfg Config) *Server {
	s := &Server{
		store:     cfg.Store,
		engine:    cfg.Engine,
		estimator: cfg.Estimator,
		logger:    cfg.Logger,
		clock:     cfg.Clock,
		loc:       cfg.Location,
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	if s.engine == nil {
		s.engine = quota.NewEngine(quota.EngineConfig{Logger: s.logger, Concurrency: 4})
	}
	if s.estimator == nil {
		s.estimator = pace.NewEstimator(pace.EstimatorConfig{})
	}
	if s.clock == nil {
		s.clock = time.Now
	}
	if s.loc == nil {
		s.loc = time.Local
	}
	return s
}

// Router builds the gin engine with every route registered.
func (s *Server) Router() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), s.requestLogger())
	s.SetupRoutes(router.Group("/api"))
	return router
}

// SetupRoutes registers the API on a router group.
func (s *Server) SetupRoutes(router *gin.RouterGroup) {
	router.GET("/quota", s.GetQuotas())
	router.GET("/quota/daily", s.GetQuota(quota.Daily))
	router.GET("/quota/weekly", s.GetQuota(quota.Weekly))
	router.GET("/pace", s.GetPace())

	router.GET("/settings", s.GetSettings())
	router.PUT("/settings", s.UpdateSettings())

	router.GET("/subjects", s.GetSubjects())
	router.PUT("/subjects/:id", s.PutSubject())
	router.DELETE("/subjects/:id", s.DeleteSubject())

	router.POST("/progress", s.CreateProgress())
}

func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		level := slog.LevelInfo
		if c.Writer.Status() >= http.StatusInternalServerError {
			level = slog.LevelError
		}
		s.logger.Log(c.Request.Context(), level, "request",
			slog.String("method", c.Request.Method),
			slog.String("path", c.FullPath()),
			slog.Int("status", c.Writer.Status()),
			slog.Duration("latency", time.Since(start)),
		)
	}
}
