package server

import (
	"context"
	"net/http"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/speedisha/speedisha/internal/auth"
	authdomain "github.com/speedisha/speedisha/internal/auth/domain"
	"github.com/speedisha/speedisha/internal/builder"
	builderdomain "github.com/speedisha/speedisha/internal/builder/domain"
	"github.com/speedisha/speedisha/internal/config"
	"github.com/speedisha/speedisha/internal/observability"
	"github.com/speedisha/speedisha/internal/onboarding"
	onboardingdomain "github.com/speedisha/speedisha/internal/onboarding/domain"
	"github.com/speedisha/speedisha/internal/providers/email"
	"github.com/speedisha/speedisha/internal/ratelimit"
	"github.com/speedisha/speedisha/internal/storage"
)

var Module = fx.Module("http.server",
	fx.Provide(registerGin),
	auth.Module,
	builder.Module,
	email.Module,
	onboarding.Module,
	ratelimit.Module,
	storage.Module,
	fx.Invoke(NewServer),
	fx.Invoke(run),
)

func NewEngine(log *zap.Logger, obsCfg observability.Config, httpMetrics *observability.HTTPMetrics) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(observability.RequestLogMiddleware(log, observability.RequestLogConfig{
		Debug:           obsCfg.Debug(),
		ErrorClassifier: classifyErrorForLog,
	}))
	r.Use(observability.TracingMiddleware())
	r.Use(observability.MetricsMiddleware(httpMetrics))
	r.Use(ErrorHandlingMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return r
}

func registerGin(log *zap.Logger, obsCfg observability.Config, httpMetrics *observability.HTTPMetrics) *gin.Engine {
	return NewEngine(log, obsCfg, httpMetrics)
}

func run(lc fx.Lifecycle, cfg config.Config, r *gin.Engine, log *zap.Logger) {
	srv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: r,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info("http server listening", zap.String("addr", cfg.HTTPAddr))
			go func() {
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					panic(err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	})
}

type Server struct {
	engine        *gin.Engine
	cfg           config.Config
	db            *gorm.DB
	genID         *snowflake.Node
	authSvc       authdomain.Service
	builderSvc    builderdomain.Service
	onboardingSvc onboardingdomain.Service
}

type ServerParams struct {
	fx.In

	Gin           *gin.Engine
	Cfg           config.Config
	DB            *gorm.DB
	GenID         *snowflake.Node
	AuthSvc       authdomain.Service
	BuilderSvc    builderdomain.Service
	OnboardingSvc onboardingdomain.Service
}

func NewServer(p ServerParams) *Server {
	svc := &Server{
		engine:        p.Gin,
		cfg:           p.Cfg,
		db:            p.DB,
		genID:         p.GenID,
		authSvc:       p.AuthSvc,
		builderSvc:    p.BuilderSvc,
		onboardingSvc: p.OnboardingSvc,
	}

	svc.registerAuthRoutes()
	svc.registerReferenceRoutes()
	svc.registerOnboardingRoutes()
	svc.registerBuilderRoutes()
	svc.registerUploadRoutes()

	return svc
}

func (s *Server) registerUploadRoutes() {
	s.engine.Static("/uploads", s.cfg.UploadDir)
}
