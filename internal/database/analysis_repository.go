package database

import (
	"context"
	"fmt"
	"time"

	"github.com/agawojdecka/polarify/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jonboulle/clockwork"
)

// analysisColumns must match the Scan order in scanAnalysisResult.
const analysisColumns = `id, project_id, user_id, date_from, date_to, opinions_count, positive_count, neutral_count, negative_count, avg_sentiment, created_at`

// AnalysisRepo implements domain.AnalysisResultRepository backed by PostgreSQL.
// Rows are write-once; no update or delete exists.
type AnalysisRepo struct {
	pool  *pgxpool.Pool
	clock clockwork.Clock
}

func NewAnalysisRepo(pool *pgxpool.Pool, clock clockwork.Clock) *AnalysisRepo {
	return &AnalysisRepo{pool: pool, clock: clock}
}

func scanAnalysisResult(row pgx.Row) (*domain.AnalysisResult, error) {
	var result domain.AnalysisResult
	err := row.Scan(
		&result.ID, &result.ProjectID, &result.UserID,
		&result.DateFrom, &result.DateTo,
		&result.OpinionsCount, &result.Positive, &result.Neutral, &result.Negative,
		&result.AvgSentiment, &result.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (r *AnalysisRepo) Create(ctx context.Context, params domain.CreateAnalysisParams) (*domain.AnalysisResult, error) {
	result, err := scanAnalysisResult(r.pool.QueryRow(ctx, `
		INSERT INTO sentiment_analysis_results
			(project_id, user_id, date_from, date_to, opinions_count, positive_count, neutral_count, negative_count, avg_sentiment, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING `+analysisColumns,
		params.ProjectID, params.UserID, params.DateFrom, params.DateTo,
		params.OpinionsCount, params.Counts.Positive, params.Counts.Neutral, params.Counts.Negative,
		params.AvgSentiment, r.clock.Now().UTC(),
	))
	if err != nil {
		return nil, fmt.Errorf("failed to insert analysis result: %w", err)
	}
	return result, nil
}

// List returns results for the project and user ordered by created_at
// descending. Optional filters compose with AND semantics: date_from
// matches rows whose own date_from is on or after the given date, date_to
// matches rows whose own date_to is on or before the given date.
func (r *AnalysisRepo) List(ctx context.Context, projectID, userID int64, dateFrom, dateTo *time.Time) ([]domain.AnalysisResult, error) {
	query := `SELECT ` + analysisColumns + ` FROM sentiment_analysis_results WHERE project_id = $1 AND user_id = $2`
	args := []any{projectID, userID}

	if dateFrom != nil {
		args = append(args, *dateFrom)
		query += fmt.Sprintf(" AND date_from >= $%d", len(args))
	}
	if dateTo != nil {
		args = append(args, *dateTo)
		query += fmt.Sprintf(" AND date_to <= $%d", len(args))
	}
	query += " ORDER BY created_at DESC"

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query analysis results: %w", err)
	}
	defer rows.Close()

	results := []domain.AnalysisResult{}
	for rows.Next() {
		result, err := scanAnalysisResult(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan analysis result: %w", err)
		}
		results = append(results, *result)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read analysis results: %w", err)
	}

	return results, nil
}
