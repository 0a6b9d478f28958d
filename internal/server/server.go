// Package server exposes the HTTP API.
package server

import (
	"context"
	"fmt"
	"time"

	"github.com/agawojdecka/polarify/internal/config"
	"github.com/agawojdecka/polarify/internal/domain"
	apperrors "github.com/agawojdecka/polarify/internal/errors"
	"github.com/agawojdecka/polarify/internal/sentiment"
	"github.com/jonboulle/clockwork"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

// analysisService is the slice of sentiment.Service the handlers need.
type analysisService interface {
	Analyze(ctx context.Context, params sentiment.AnalyzeParams) (*domain.AnalysisResult, error)
	Classify(ctx context.Context, opinions []domain.Opinion) ([]domain.OpinionSentiment, error)
	AverageSentiment(ctx context.Context, opinions []domain.Opinion) (float64, error)
	Statistics(ctx context.Context, opinions []domain.Opinion) (domain.SentimentStatistics, error)
	History(ctx context.Context, projectID, userID int64, dateFrom, dateTo *time.Time) ([]domain.AnalysisResult, error)
}

type authService interface {
	Register(ctx context.Context, username, email, password string) (string, error)
	Login(ctx context.Context, email, password string) (*domain.User, string, error)
	Authenticate(ctx context.Context, token string) (*domain.User, error)
}

// postgresHealthChecker is a minimal interface for database health checks.
type postgresHealthChecker interface {
	Ping(ctx context.Context) error
}

type Server struct {
	echo      *echo.Echo
	config    *config.Config
	analyzer  analysisService
	auth      authService
	projects  domain.ProjectRepository
	db        postgresHealthChecker
	clock     clockwork.Clock
	startTime time.Time
}

func NewServer(cfg *config.Config, analyzer analysisService, auth authService, projects domain.ProjectRepository, db postgresHealthChecker, clock clockwork.Clock) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// Middleware
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(apperrors.Middleware())

	srv := &Server{
		echo:      e,
		config:    cfg,
		analyzer:  analyzer,
		auth:      auth,
		projects:  projects,
		db:        db,
		clock:     clock,
		startTime: clock.Now(),
	}

	srv.registerRoutes()

	return srv
}

func (s *Server) Start() error {
	return s.echo.Start(fmt.Sprintf(":%s", s.config.Port))
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}
