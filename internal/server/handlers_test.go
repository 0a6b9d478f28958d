package server

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/agawojdecka/polarify/internal/config"
	"github.com/agawojdecka/polarify/internal/domain"
	"github.com/agawojdecka/polarify/internal/sentiment"
	"github.com/jonboulle/clockwork"
)

// --- Mock implementations ---

type mockAnalysisService struct {
	analyzeFn    func(ctx context.Context, params sentiment.AnalyzeParams) (*domain.AnalysisResult, error)
	classifyFn   func(ctx context.Context, opinions []domain.Opinion) ([]domain.OpinionSentiment, error)
	averageFn    func(ctx context.Context, opinions []domain.Opinion) (float64, error)
	statisticsFn func(ctx context.Context, opinions []domain.Opinion) (domain.SentimentStatistics, error)
	historyFn    func(ctx context.Context, projectID, userID int64, dateFrom, dateTo *time.Time) ([]domain.AnalysisResult, error)
}

func (m *mockAnalysisService) Analyze(ctx context.Context, params sentiment.AnalyzeParams) (*domain.AnalysisResult, error) {
	if m.analyzeFn != nil {
		return m.analyzeFn(ctx, params)
	}
	return nil, fmt.Errorf("not implemented")
}

func (m *mockAnalysisService) Classify(ctx context.Context, opinions []domain.Opinion) ([]domain.OpinionSentiment, error) {
	if m.classifyFn != nil {
		return m.classifyFn(ctx, opinions)
	}
	return nil, fmt.Errorf("not implemented")
}

func (m *mockAnalysisService) AverageSentiment(ctx context.Context, opinions []domain.Opinion) (float64, error) {
	if m.averageFn != nil {
		return m.averageFn(ctx, opinions)
	}
	return 0, fmt.Errorf("not implemented")
}

func (m *mockAnalysisService) Statistics(ctx context.Context, opinions []domain.Opinion) (domain.SentimentStatistics, error) {
	if m.statisticsFn != nil {
		return m.statisticsFn(ctx, opinions)
	}
	return domain.SentimentStatistics{}, fmt.Errorf("not implemented")
}

func (m *mockAnalysisService) History(ctx context.Context, projectID, userID int64, dateFrom, dateTo *time.Time) ([]domain.AnalysisResult, error) {
	if m.historyFn != nil {
		return m.historyFn(ctx, projectID, userID, dateFrom, dateTo)
	}
	return nil, fmt.Errorf("not implemented")
}

type mockAuthService struct {
	registerFn     func(ctx context.Context, username, email, password string) (string, error)
	loginFn        func(ctx context.Context, email, password string) (*domain.User, string, error)
	authenticateFn func(ctx context.Context, token string) (*domain.User, error)
}

func (m *mockAuthService) Register(ctx context.Context, username, email, password string) (string, error) {
	if m.registerFn != nil {
		return m.registerFn(ctx, username, email, password)
	}
	return "", fmt.Errorf("not implemented")
}

func (m *mockAuthService) Login(ctx context.Context, email, password string) (*domain.User, string, error) {
	if m.loginFn != nil {
		return m.loginFn(ctx, email, password)
	}
	return nil, "", fmt.Errorf("not implemented")
}

func (m *mockAuthService) Authenticate(ctx context.Context, token string) (*domain.User, error) {
	if m.authenticateFn != nil {
		return m.authenticateFn(ctx, token)
	}
	return nil, domain.ErrTokenNotFound
}

type mockProjectRepo struct {
	createFn  func(ctx context.Context, userID int64, name, description string) (*domain.Project, error)
	getByIDFn func(ctx context.Context, projectID, userID int64) (*domain.Project, error)
	updateFn  func(ctx context.Context, projectID, userID int64, name, description string) (*domain.Project, error)
	deleteFn  func(ctx context.Context, projectID, userID int64) error
	listFn    func(ctx context.Context, userID int64) ([]domain.Project, error)
}

func (m *mockProjectRepo) Create(ctx context.Context, userID int64, name, description string) (*domain.Project, error) {
	if m.createFn != nil {
		return m.createFn(ctx, userID, name, description)
	}
	return nil, fmt.Errorf("not implemented")
}

func (m *mockProjectRepo) GetByID(ctx context.Context, projectID, userID int64) (*domain.Project, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, projectID, userID)
	}
	return nil, domain.ErrProjectNotFound
}

func (m *mockProjectRepo) Update(ctx context.Context, projectID, userID int64, name, description string) (*domain.Project, error) {
	if m.updateFn != nil {
		return m.updateFn(ctx, projectID, userID, name, description)
	}
	return nil, domain.ErrProjectNotFound
}

func (m *mockProjectRepo) Delete(ctx context.Context, projectID, userID int64) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, projectID, userID)
	}
	return domain.ErrProjectNotFound
}

func (m *mockProjectRepo) List(ctx context.Context, userID int64) ([]domain.Project, error) {
	if m.listFn != nil {
		return m.listFn(ctx, userID)
	}
	return nil, fmt.Errorf("not implemented")
}

// mockPgxPool provides a minimal mock for PostgreSQL health checks
type mockPgxPool struct {
	pingErr error
}

func (m *mockPgxPool) Ping(ctx context.Context) error {
	return m.pingErr
}

// --- Test helpers ---

func newTestServer(t *testing.T, opts ...func(*Server)) *Server {
	t.Helper()

	srv := NewServer(
		&config.Config{Port: "8000"},
		&mockAnalysisService{},
		&mockAuthService{},
		&mockProjectRepo{},
		&mockPgxPool{},
		clockwork.NewFakeClock(),
	)

	for _, opt := range opts {
		opt(srv)
	}

	return srv
}

func withAnalyzer(analyzer analysisService) func(*Server) {
	return func(s *Server) {
		s.analyzer = analyzer
	}
}

func withAuth(auth authService) func(*Server) {
	return func(s *Server) {
		s.auth = auth
	}
}

func withProjects(projects domain.ProjectRepository) func(*Server) {
	return func(s *Server) {
		s.projects = projects
	}
}

func withPostgresHealthCheck(pg postgresHealthChecker) func(*Server) {
	return func(s *Server) {
		s.db = pg
	}
}

// authedMockAuth resolves any token to the given user.
func authedMockAuth(user *domain.User) *mockAuthService {
	return &mockAuthService{
		authenticateFn: func(_ context.Context, token string) (*domain.User, error) {
			return user, nil
		},
	}
}
