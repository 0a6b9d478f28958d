package sentiment

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/agawojdecka/polarify/internal/domain"
	"github.com/agawojdecka/polarify/internal/metrics"
)

// Service orchestrates oracle classification, aggregation and persistence.
// One Analyze call performs exactly one oracle call and one store write;
// nothing is written when classification fails.
type Service struct {
	oracle  domain.PolarityOracle
	results domain.AnalysisResultRepository
}

func NewService(oracle domain.PolarityOracle, results domain.AnalysisResultRepository) *Service {
	return &Service{
		oracle:  oracle,
		results: results,
	}
}

// AnalyzeParams describes one analysis request: the batch to score and the
// project/date scope to persist the outcome under.
type AnalyzeParams struct {
	ProjectID int64
	UserID    int64
	DateFrom  time.Time
	DateTo    time.Time
	Opinions  []domain.Opinion
}

// Analyze runs the full pipeline: classify the batch, derive bucket counts
// and the average, and persist the outcome.
func (s *Service) Analyze(ctx context.Context, params AnalyzeParams) (*domain.AnalysisResult, error) {
	scores, err := s.Classify(ctx, params.Opinions)
	if err != nil {
		return nil, err
	}

	counts := Bucketize(scores)

	// Classify guarantees a non-empty score list here, but the average is
	// recovered to 0.0 rather than propagated if that ever changes. The
	// stateless average endpoint keeps the strict raise-on-empty contract.
	avg, err := Average(scores)
	if err != nil {
		avg = 0.0
	}

	result, err := s.results.Create(ctx, domain.CreateAnalysisParams{
		ProjectID:     params.ProjectID,
		UserID:        params.UserID,
		DateFrom:      params.DateFrom,
		DateTo:        params.DateTo,
		OpinionsCount: len(scores),
		Counts:        counts,
		AvgSentiment:  avg,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to persist analysis result: %w", err)
	}

	metrics.AnalysesTotal.Inc()
	metrics.AnalysisBatchSize.Observe(float64(len(scores)))
	slog.Info("Sentiment analysis persisted",
		"project_id", params.ProjectID,
		"user_id", params.UserID,
		"opinions_count", result.OpinionsCount,
		"avg_sentiment", result.AvgSentiment,
	)

	return result, nil
}

// Classify sends the batch to the oracle and returns per-opinion scores in
// input order. The oracle's mapping must cover exactly the submitted IDs;
// missing or extra IDs count as an oracle failure.
func (s *Service) Classify(ctx context.Context, opinions []domain.Opinion) ([]domain.OpinionSentiment, error) {
	if len(opinions) == 0 {
		return nil, domain.ErrNoOpinions
	}

	seen := make(map[string]struct{}, len(opinions))
	for _, opinion := range opinions {
		if _, ok := seen[opinion.ID]; ok {
			return nil, fmt.Errorf("%w: %q", domain.ErrDuplicateOpinion, opinion.ID)
		}
		seen[opinion.ID] = struct{}{}
	}

	mapping, err := s.oracle.Classify(ctx, opinions)
	if err != nil {
		return nil, err
	}

	if len(mapping) != len(opinions) {
		return nil, fmt.Errorf("%w: expected %d scores, got %d", domain.ErrOracle, len(opinions), len(mapping))
	}

	scores := make([]domain.OpinionSentiment, 0, len(opinions))
	for _, opinion := range opinions {
		value, ok := mapping[opinion.ID]
		if !ok {
			return nil, fmt.Errorf("%w: missing score for opinion %q", domain.ErrOracle, opinion.ID)
		}
		scores = append(scores, domain.OpinionSentiment{ID: opinion.ID, Sentiment: value})
	}

	return scores, nil
}

// AverageSentiment classifies the batch and returns the rounded mean.
// Unlike Analyze, an empty result propagates domain.ErrNoOpinions.
func (s *Service) AverageSentiment(ctx context.Context, opinions []domain.Opinion) (float64, error) {
	scores, err := s.Classify(ctx, opinions)
	if err != nil {
		return 0, err
	}
	return Average(scores)
}

// Statistics classifies the batch and returns descriptive statistics.
func (s *Service) Statistics(ctx context.Context, opinions []domain.Opinion) (domain.SentimentStatistics, error) {
	scores, err := s.Classify(ctx, opinions)
	if err != nil {
		return domain.SentimentStatistics{}, err
	}
	return Statistics(scores)
}

// History returns persisted analysis results for the project and user,
// optionally narrowed by date range, most recent first.
func (s *Service) History(ctx context.Context, projectID, userID int64, dateFrom, dateTo *time.Time) ([]domain.AnalysisResult, error) {
	return s.results.List(ctx, projectID, userID, dateFrom, dateTo)
}
