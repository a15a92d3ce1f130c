// Package server exposes the dashboard's HTTP API: file imports,
// filtered metrics, the transaction list, and the ingestion run log.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	analyticsdomain "github.com/makeinspiresadmin/makeinspires-dashboard-sub000/internal/analytics/domain"
	"github.com/makeinspiresadmin/makeinspires-dashboard-sub000/internal/config"
	"github.com/makeinspiresadmin/makeinspires-dashboard-sub000/internal/events"
	ingestdomain "github.com/makeinspiresadmin/makeinspires-dashboard-sub000/internal/ingest/domain"
	"github.com/makeinspiresadmin/makeinspires-dashboard-sub000/internal/observability/logger"
	"github.com/makeinspiresadmin/makeinspires-dashboard-sub000/internal/observability/metrics"
	"github.com/makeinspiresadmin/makeinspires-dashboard-sub000/internal/observability/tracing"
	txdomain "github.com/makeinspiresadmin/makeinspires-dashboard-sub000/internal/transaction/domain"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const serviceName = "makeinspires-dashboard"

type EngineParam struct {
	fx.In

	Config      config.Config
	HTTPMetrics *metrics.HTTPMetrics `optional:"true"`
}

// NewEngine builds the gin engine with the shared middleware chain.
func NewEngine(p EngineParam) *gin.Engine {
	if p.Config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(logger.GinMiddleware(logger.MiddlewareConfig{
		SkipPaths: []string{"/healthz", "/metrics"},
	}))
	engine.Use(tracing.GinMiddleware(serviceName))
	if p.HTTPMetrics != nil {
		engine.Use(metrics.GinMiddleware(p.HTTPMetrics))
	}
	return engine
}

type ServerParam struct {
	fx.In

	Config       config.Config
	DB           *gorm.DB
	Log          *zap.Logger
	Engine       *gin.Engine
	Ingest       ingestdomain.Service
	Transactions txdomain.Service
	Analytics    analyticsdomain.Service
	Outbox       *events.Outbox
}

type Server struct {
	cfg           config.Config
	db            *gorm.DB
	log           *zap.Logger
	engine        *gin.Engine
	ingestSvc     ingestdomain.Service
	txSvc         txdomain.Service
	analyticsSvc  analyticsdomain.Service
	outbox        *events.Outbox
	uploadLimiter *rateLimiter
}

func NewServer(p ServerParam) *Server {
	return &Server{
		cfg:           p.Config,
		db:            p.DB,
		log:           p.Log.Named("server"),
		engine:        p.Engine,
		ingestSvc:     p.Ingest,
		txSvc:         p.Transactions,
		analyticsSvc:  p.Analytics,
		outbox:        p.Outbox,
		uploadLimiter: newRateLimiter(p.Config.Upload.RateLimit, p.Config.Upload.RateWindow),
	}
}

func (s *Server) RegisterAPIRoutes() {
	s.engine.GET("/healthz", s.Healthz)
	s.engine.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := s.engine.Group("/api")
	{
		api.POST("/imports", s.CreateImport)
		api.GET("/metrics", s.GetMetrics)
		api.GET("/transactions", s.ListTransactions)
		api.DELETE("/transactions", s.DeleteTransactions)
		api.GET("/runs", s.ListRuns)
	}
}

func (s *Server) Healthz(c *gin.Context) {
	sqlDB, err := s.db.DB()
	if err != nil || sqlDB.PingContext(c.Request.Context()) != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// RunHTTP starts the HTTP listener under the fx lifecycle.
func RunHTTP(lc fx.Lifecycle, s *Server, log *zap.Logger) {
	srv := &http.Server{
		Addr:              s.cfg.HTTPAddr,
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				log.Info("http server listening", zap.String("addr", srv.Addr))
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					log.Error("http server stopped", zap.Error(err))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return srv.Shutdown(ctx)
		},
	})
}
