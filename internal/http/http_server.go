package http

// this is entry point of the http request handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/gorilla/mux"

	"gitlab.com/algojudge.net/internal/config"
	"gitlab.com/algojudge.net/internal/core/ports/primary"
	auth2 "gitlab.com/algojudge.net/internal/core/services/auth"
	"gitlab.com/algojudge.net/internal/core/services/judge"
	"gitlab.com/algojudge.net/internal/core/services/problem"
	"gitlab.com/algojudge.net/internal/handlers"
	"gitlab.com/algojudge.net/internal/handlers/auth"
	"gitlab.com/algojudge.net/internal/handlers/problems"
	"gitlab.com/algojudge.net/internal/handlers/solutions"
)

type ServiceProvider struct {
	judgeService   judge.IJudgeService
	problemService problem.IProblemService

	ggAuth    auth2.IAuthService
	localAuth auth2.IAuthService
	registrar auth2.IRegistrar
}

func NewServiceProvider(
	judgeService judge.IJudgeService,
	problemService problem.IProblemService,
	ggAuth auth2.IAuthService,
	localAuth auth2.IAuthService,
	registrar auth2.IRegistrar,
) *ServiceProvider {
	return &ServiceProvider{
		judgeService:   judgeService,
		problemService: problemService,
		ggAuth:         ggAuth,
		localAuth:      localAuth,
		registrar:      registrar,
	}
}

type Server struct {
	router          *mux.Router
	Port            int
	ServiceName     string
	ServiceProvider ServiceProvider
	config          *config.AppConfig
	jwtService      primary.JWTService
	logger          primary.Logger
	srv             *http.Server
}

func NewServer(cfg *config.AppConfig, serviceName string, serviceProvider ServiceProvider, jwtService primary.JWTService, logger primary.Logger) *Server {
	return &Server{
		Port:            cfg.ServerPort,
		ServiceName:     serviceName,
		ServiceProvider: serviceProvider,
		config:          cfg,
		jwtService:      jwtService,
		logger:          logger,
	}
}

func (s *Server) Init() error {
	r := mux.NewRouter()
	mw := handlers.NewMiddlewareProvider(s.jwtService)
	solutions.
		NewSolutionHandler(s.ServiceProvider.judgeService, s.logger, s.config.DebugMode).
		RegisterRoutes(r, mw)
	problems.
		NewProblemHandler(s.ServiceProvider.problemService, s.logger).
		RegisterRoutes(r, mw)
	auth.NewHandler(s.config.GGAuthConfig).RegisterRoutes(r, &auth.ServiceDependencies{
		GGAuthService:    s.ServiceProvider.ggAuth,
		LocalAuthService: s.ServiceProvider.localAuth,
		Registrar:        s.ServiceProvider.registrar,
	})
	s.router = r
	return nil
}

// writeTimeout sizes the response window off the sandbox dispatch bound. A
// graded run can block on several sequential dispatches before responding.
func writeTimeout(dispatch time.Duration) time.Duration {
	if dispatch <= 0 {
		return 60 * time.Second
	}
	return 4 * dispatch
}

func (s *Server) Start(ctx context.Context) {
	// Set up server
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", s.Port),
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: writeTimeout(s.config.SandboxConfig.DispatchTimeout),
		IdleTimeout:  60 * time.Second,
	}
	s.srv = srv

	// Start the server in a goroutine
	go func() {
		s.logger.Info("Server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("Server error", "error", err)
			os.Exit(1)
		}
	}()

}

func (s *Server) Stop(ctx context.Context) {
	s.logger.Info("Shutting down http server...")
	if s.srv != nil {
		if err := s.srv.Shutdown(ctx); err != nil {
			s.logger.Error("Failed to shut down http server", "error", err)
		}
	}
}
