package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"sigval/internal/config"
	"sigval/internal/infra/db"
	"sigval/internal/infra/metrics"
	"sigval/internal/usecase"
)

type Server struct {
	cfg    config.Config
	store  *db.Store
	r      *gin.Engine
	logger *zap.Logger

	validateUC *usecase.ValidateDocument
	policies   usecase.PolicyProvider
	metrics    *metrics.Collector
}

type ServerDeps struct {
	Validate *usecase.ValidateDocument
	Policies usecase.PolicyProvider
	Store    *db.Store
	Metrics  *metrics.Collector
	Logger   *zap.Logger
}

func NewServer(cfg config.Config, deps ServerDeps) *Server {
	r := gin.New()
	r.Use(gin.Recovery())

	s := &Server{
		cfg:        cfg,
		store:      deps.Store,
		r:          r,
		logger:     deps.Logger,
		validateUC: deps.Validate,
		policies:   deps.Policies,
		metrics:    deps.Metrics,
	}
	if s.logger == nil {
		s.logger = zap.NewNop()
	}
	if s.policies == nil && s.validateUC != nil {
		s.policies = s.validateUC.Policies
	}
	r.Use(s.accessLog())
	s.routes()
	return s
}

func (s *Server) routes() {
	s.r.GET("/healthz", func(c *gin.Context) {
		dbMode := "no-db"
		if s.store != nil && s.store.DB != nil {
			dbMode = "db"
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok", "mode": dbMode})
	})
	if s.metrics != nil {
		s.r.GET("/metrics", gin.WrapH(s.metrics.Handler()))
	}

	v1 := s.r.Group("/v1")
	{
		v1.POST("/validations", s.handleValidate)
		v1.GET("/validations/:id", s.handleGetValidation)
		v1.GET("/policies", s.handleListPolicies)
	}

	s.r.NoRoute(func(c *gin.Context) {
		writeErrorCode(c, http.StatusNotFound, "NOT_FOUND", "route not found")
	})
}

func (s *Server) Handler() http.Handler {
	return s.r
}

func (s *Server) Run() error {
	return s.r.Run(s.cfg.HTTPAddr)
}
