package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/solarishq/solaris/internal/assistant"
	authdomain "github.com/solarishq/solaris/internal/auth/domain"
	"github.com/solarishq/solaris/internal/auth/session"
	"github.com/solarishq/solaris/internal/config"
	"github.com/solarishq/solaris/internal/observability"
	obsmiddleware "github.com/solarishq/solaris/internal/observability/logger"
	obsmetrics "github.com/solarishq/solaris/internal/observability/metrics"
	obstracing "github.com/solarishq/solaris/internal/observability/tracing"
	projectdomain "github.com/solarishq/solaris/internal/project/domain"
	"github.com/solarishq/solaris/internal/report"
	subsidydomain "github.com/solarishq/solaris/internal/subsidy/domain"
	trackerdomain "github.com/solarishq/solaris/internal/tracker/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

var Module = fx.Module("http.server",
	fx.Provide(registerGin),
	fx.Invoke(NewServer),
	fx.Invoke(run),
)

func NewEngine(obsCfg observability.Config, m *obsmetrics.Metrics) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(obsmiddleware.GinMiddleware(obsmiddleware.MiddlewareConfig{
		Debug:           obsCfg.Debug(),
		ErrorClassifier: classifyErrorForLog,
	}))
	r.Use(obstracing.GinMiddleware())
	r.Use(m.GinMiddleware())
	r.Use(ErrorHandlingMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", m.Handler())

	return r
}

func registerGin(obsCfg observability.Config, m *obsmetrics.Metrics) *gin.Engine {
	return NewEngine(obsCfg, m)
}

func run(lc fx.Lifecycle, r *gin.Engine, cfg config.Config, log *zap.Logger) {
	srv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: r,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info("http server listening", zap.String("addr", cfg.HTTPAddr))
			go func() {
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					log.Fatal("http server failed", zap.Error(err))
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
	engine *gin.Engine
	cfg    config.Config
	log    *zap.Logger

	authsvc      authdomain.Service
	sessions     *session.Manager
	subsidysvc   subsidydomain.Service
	projectsvc   projectdomain.Service
	trackersvc   trackerdomain.Service
	assistantsvc *assistant.Service
	reports      *report.Generator
	policy       *config.PolicyHolder
	obsMetrics   *obsmetrics.Metrics
}

type ServerParams struct {
	fx.In

	Gin          *gin.Engine
	Cfg          config.Config
	Log          *zap.Logger
	Authsvc      authdomain.Service
	Sessions     *session.Manager
	Subsidysvc   subsidydomain.Service
	Projectsvc   projectdomain.Service
	Trackersvc   trackerdomain.Service
	Assistantsvc *assistant.Service
	Reports      *report.Generator
	Policy       *config.PolicyHolder
	ObsMetrics   *obsmetrics.Metrics `optional:"true"`
}

func NewServer(p ServerParams) *Server {
	s := &Server{
		engine:       p.Gin,
		cfg:          p.Cfg,
		log:          p.Log.Named("server"),
		authsvc:      p.Authsvc,
		sessions:     p.Sessions,
		subsidysvc:   p.Subsidysvc,
		projectsvc:   p.Projectsvc,
		trackersvc:   p.Trackersvc,
		assistantsvc: p.Assistantsvc,
		reports:      p.Reports,
		policy:       p.Policy,
		obsMetrics:   p.ObsMetrics,
	}

	s.registerAuthRoutes()
	s.registerSubsidyRoutes()
	s.registerAppRoutes()

	return s
}

func (s *Server) Engine() *gin.Engine {
	return s.engine
}

func (s *Server) registerAuthRoutes() {
	auth := s.engine.Group("/auth")

	auth.POST("/register", s.Register)
	auth.POST("/login", s.Login)
	auth.POST("/logout", s.Logout)
	auth.GET("/me", s.AuthRequired(), s.Me)
}

func (s *Server) registerSubsidyRoutes() {
	subsidy := s.engine.Group("/subsidy", s.AuthRequired())

	// Wizard steps. Step preconditions are enforced per handler: a later
	// step without the earlier step's answers redirects to the entry step.
	subsidy.GET("/", s.SubsidyStart)
	subsidy.POST("/", s.SubsidySaveProfile)
	subsidy.GET("/site", s.SubsidySite)
	subsidy.POST("/site", s.SubsidySaveSite)
	subsidy.GET("/results", s.SubsidyResults)
	subsidy.POST("/restart", s.SubsidyRestart)

	subsidy.GET("/vendors", s.SubsidyVendors)
	subsidy.POST("/ai-chat", s.AssistantChat)
	subsidy.GET("/submissions", s.ListSubmissions)
	subsidy.GET("/submissions/:id", s.GetSubmission)
	subsidy.GET("/report.pdf", s.SubsidyReport)
}

// registerAppRoutes mounts everything behind a completed journey. The app
// shell is useless until the user has at least one estimate, so these all
// bounce back to the wizard until then.
func (s *Server) registerAppRoutes() {
	app := s.engine.Group("/", s.AuthRequired(), s.JourneyCompletedRequired())

	app.GET("/dashboard", s.Dashboard)

	app.GET("/projects", s.ListProjects)
	app.POST("/projects", s.CreateProject)
	app.GET("/projects/:id", s.GetProject)
	app.DELETE("/projects/:id", s.DeleteProject)

	app.GET("/tracker", s.Tracker)
	app.POST("/tracker/entries", s.AddTrackerEntry)

	app.GET("/profile", s.Profile)
	app.PUT("/profile", s.UpdateProfile)

	app.GET("/finance/banks", s.FinanceBanks)
}
