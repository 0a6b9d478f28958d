package server

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/agawojdecka/polarify/internal/domain"
	"github.com/agawojdecka/polarify/internal/sentiment"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ownedProject(projectID, userID int64) *mockProjectRepo {
	return &mockProjectRepo{
		getByIDFn: func(_ context.Context, pid, uid int64) (*domain.Project, error) {
			if pid == projectID && uid == userID {
				return &domain.Project{ID: pid, UserID: uid, Name: "launch"}, nil
			}
			return nil, domain.ErrProjectNotFound
		},
	}
}

func TestHandleSentimentAnalysisRaw(t *testing.T) {
	user := &domain.User{ID: 5, Username: "alice"}
	var captured sentiment.AnalyzeParams

	srv := newTestServer(t,
		withAuth(authedMockAuth(user)),
		withProjects(ownedProject(3, 5)),
		withAnalyzer(&mockAnalysisService{
			analyzeFn: func(_ context.Context, params sentiment.AnalyzeParams) (*domain.AnalysisResult, error) {
				captured = params
				return &domain.AnalysisResult{
					ID:            1,
					ProjectID:     params.ProjectID,
					UserID:        params.UserID,
					DateFrom:      params.DateFrom,
					DateTo:        params.DateTo,
					OpinionsCount: len(params.Opinions),
					Positive:      1,
					AvgSentiment:  0.8,
				}, nil
			},
		}),
	)

	body := `[{"id":"a","content":"great"}]`
	target := "/sentiment-analysis-raw?project_id=3&date_from=2024-01-01&date_to=2024-06-30"
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer tok")
	rec := httptest.NewRecorder()
	srv.echo.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int64(3), captured.ProjectID)
	assert.Equal(t, int64(5), captured.UserID)
	assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), captured.DateFrom)
	assert.Equal(t, time.Date(2024, 6, 30, 0, 0, 0, 0, time.UTC), captured.DateTo)
	assert.Contains(t, rec.Body.String(), `"avg_sentiment":0.8`)
}

func TestHandleSentimentAnalysisRaw_ForeignProject(t *testing.T) {
	user := &domain.User{ID: 5}
	srv := newTestServer(t,
		withAuth(authedMockAuth(user)),
		withProjects(ownedProject(3, 99)),
	)

	body := `[{"id":"a","content":"great"}]`
	target := "/sentiment-analysis-raw?project_id=3&date_from=2024-01-01&date_to=2024-06-30"
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer tok")
	rec := httptest.NewRecorder()
	srv.echo.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "Project not found")
}

func TestHandleSentimentAnalysisRaw_BadScope(t *testing.T) {
	user := &domain.User{ID: 5}
	srv := newTestServer(t, withAuth(authedMockAuth(user)))

	tests := []struct {
		name   string
		target string
	}{
		{"missing project_id", "/sentiment-analysis-raw?date_from=2024-01-01&date_to=2024-06-30"},
		{"bad date_from", "/sentiment-analysis-raw?project_id=3&date_from=january&date_to=2024-06-30"},
		{"missing date_to", "/sentiment-analysis-raw?project_id=3&date_from=2024-01-01"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, tt.target, strings.NewReader(`[]`))
			req.Header.Set("Content-Type", "application/json")
			req.Header.Set("Authorization", "Bearer tok")
			rec := httptest.NewRecorder()
			srv.echo.ServeHTTP(rec, req)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestHandleSentimentAnalysisRaw_OracleFailure(t *testing.T) {
	user := &domain.User{ID: 5}
	srv := newTestServer(t,
		withAuth(authedMockAuth(user)),
		withProjects(ownedProject(3, 5)),
		withAnalyzer(&mockAnalysisService{
			analyzeFn: func(_ context.Context, _ sentiment.AnalyzeParams) (*domain.AnalysisResult, error) {
				return nil, domain.ErrOracle
			},
		}),
	)

	body := `[{"id":"a","content":"great"}]`
	target := "/sentiment-analysis-raw?project_id=3&date_from=2024-01-01&date_to=2024-06-30"
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer tok")
	rec := httptest.NewRecorder()
	srv.echo.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), `"type":"oracle"`)
}

func TestHandleSentimentAnalysisCSV(t *testing.T) {
	user := &domain.User{ID: 5}
	var captured sentiment.AnalyzeParams

	srv := newTestServer(t,
		withAuth(authedMockAuth(user)),
		withProjects(ownedProject(3, 5)),
		withAnalyzer(&mockAnalysisService{
			analyzeFn: func(_ context.Context, params sentiment.AnalyzeParams) (*domain.AnalysisResult, error) {
				captured = params
				return &domain.AnalysisResult{ID: 1}, nil
			},
		}),
	)

	body, contentType := csvUpload(t, "text/csv", "a,loved it\nb,hated it\n")
	target := "/sentiment-analysis-csv?project_id=3&date_from=2024-01-01&date_to=2024-06-30"
	req := httptest.NewRequest(http.MethodPost, target, body)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Authorization", "Bearer tok")
	rec := httptest.NewRecorder()
	srv.echo.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []domain.Opinion{
		{ID: "a", Content: "loved it"},
		{ID: "b", Content: "hated it"},
	}, captured.Opinions)
}

func TestHandleSentimentAnalysisResults(t *testing.T) {
	user := &domain.User{ID: 5}
	created := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	srv := newTestServer(t,
		withAuth(authedMockAuth(user)),
		withProjects(ownedProject(3, 5)),
		withAnalyzer(&mockAnalysisService{
			historyFn: func(_ context.Context, projectID, userID int64, dateFrom, dateTo *time.Time) ([]domain.AnalysisResult, error) {
				assert.Equal(t, int64(3), projectID)
				assert.Equal(t, int64(5), userID)
				assert.Nil(t, dateFrom)
				assert.Nil(t, dateTo)
				return []domain.AnalysisResult{
					{ID: 2, ProjectID: 3, UserID: 5, OpinionsCount: 4, AvgSentiment: 0.25, CreatedAt: created},
				}, nil
			},
		}),
	)

	req := httptest.NewRequest(http.MethodGet, "/sentiment-analysis-results/3", nil)
	req.Header.Set("Authorization", "Bearer tok")
	rec := httptest.NewRecorder()
	srv.echo.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"opinions_count":4`)
}

func TestHandleSentimentAnalysisResults_DateFilters(t *testing.T) {
	user := &domain.User{ID: 5}
	var gotFrom, gotTo *time.Time

	srv := newTestServer(t,
		withAuth(authedMockAuth(user)),
		withProjects(ownedProject(3, 5)),
		withAnalyzer(&mockAnalysisService{
			historyFn: func(_ context.Context, _, _ int64, dateFrom, dateTo *time.Time) ([]domain.AnalysisResult, error) {
				gotFrom, gotTo = dateFrom, dateTo
				return []domain.AnalysisResult{}, nil
			},
		}),
	)

	target := "/sentiment-analysis-results/3?date_from=2024-01-01&date_to=2024-12-31"
	req := httptest.NewRequest(http.MethodGet, target, nil)
	req.Header.Set("Authorization", "Bearer tok")
	rec := httptest.NewRecorder()
	srv.echo.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, gotFrom)
	require.NotNil(t, gotTo)
	assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), *gotFrom)
	assert.Equal(t, time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC), *gotTo)
	assert.JSONEq(t, `[]`, rec.Body.String())
}

func TestHandleSentimentAnalysisResults_ForeignProject(t *testing.T) {
	user := &domain.User{ID: 5}
	srv := newTestServer(t,
		withAuth(authedMockAuth(user)),
		withProjects(ownedProject(3, 99)),
	)

	req := httptest.NewRequest(http.MethodGet, "/sentiment-analysis-results/3", nil)
	req.Header.Set("Authorization", "Bearer tok")
	rec := httptest.NewRecorder()
	srv.echo.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandleSentimentAnalysisResults_BadDateFilter(t *testing.T) {
	user := &domain.User{ID: 5}
	srv := newTestServer(t,
		withAuth(authedMockAuth(user)),
		withProjects(ownedProject(3, 5)),
	)

	req := httptest.NewRequest(http.MethodGet, "/sentiment-analysis-results/3?date_from=notadate", nil)
	req.Header.Set("Authorization", "Bearer tok")
	rec := httptest.NewRecorder()
	srv.echo.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
