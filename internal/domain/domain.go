package domain

import (
	"context"
	"time"
)

// --- Model types ---

// Opinion is a single user-submitted text unit to be scored.
// Opinions are transient; they are never persisted directly.
type Opinion struct {
	ID      string `json:"id"`
	Content string `json:"content"`
}

// OpinionSentiment is an opinion's polarity score in [-1.0, 1.0],
// produced by the oracle. One-to-one with input opinions by ID.
type OpinionSentiment struct {
	ID        string  `json:"id"`
	Sentiment float64 `json:"sentiment"`
}

// BucketCounts holds classification counts by the fixed polarity thresholds.
type BucketCounts struct {
	Positive int `json:"positive_count"`
	Neutral  int `json:"neutral_count"`
	Negative int `json:"negative_count"`
}

// SentimentStatistics holds descriptive statistics over a non-empty
// set of polarity scores.
type SentimentStatistics struct {
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
	Mean   float64 `json:"mean"`
	Median float64 `json:"median"`
	Std    float64 `json:"std"`
}

// AnalysisResult is one persisted sentiment analysis outcome for a
// project and date range. Rows are immutable once written.
type AnalysisResult struct {
	ID            int64     `json:"id"`
	ProjectID     int64     `json:"project_id"`
	UserID        int64     `json:"user_id"`
	DateFrom      time.Time `json:"date_from"`
	DateTo        time.Time `json:"date_to"`
	OpinionsCount int       `json:"opinions_count"`
	Positive      int       `json:"positive_count"`
	Neutral       int       `json:"neutral_count"`
	Negative      int       `json:"negative_count"`
	AvgSentiment  float64   `json:"avg_sentiment"`
	CreatedAt     time.Time `json:"created_at"`
}

type User struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

// UserAuth is a User together with its password hash. Only the login
// path ever sees the hash.
type UserAuth struct {
	User
	PasswordHash string `json:"-"`
}

type Project struct {
	ID          int64     `json:"id"`
	UserID      int64     `json:"user_id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

// --- Collaborator interfaces ---

// PolarityOracle converts a batch of opinions into a mapping of
// opinion ID to polarity score with a single outbound call.
type PolarityOracle interface {
	Classify(ctx context.Context, opinions []Opinion) (map[string]float64, error)
}

// CreateAnalysisParams carries everything the store needs to persist one
// analysis outcome. ID and CreatedAt are assigned by the store.
type CreateAnalysisParams struct {
	ProjectID     int64
	UserID        int64
	DateFrom      time.Time
	DateTo        time.Time
	OpinionsCount int
	Counts        BucketCounts
	AvgSentiment  float64
}

// AnalysisResultRepository persists and queries analysis outcomes.
// List filters are independently optional and compose with AND semantics:
// a result matches when its own date_from >= dateFrom and date_to <= dateTo.
// Results come back ordered by created_at descending.
type AnalysisResultRepository interface {
	Create(ctx context.Context, params CreateAnalysisParams) (*AnalysisResult, error)
	List(ctx context.Context, projectID, userID int64, dateFrom, dateTo *time.Time) ([]AnalysisResult, error)
}

type UserRepository interface {
	Create(ctx context.Context, username, email, passwordHash string) (*User, error)
	GetByID(ctx context.Context, userID int64) (*User, error)
	GetAuthByEmail(ctx context.Context, email string) (*UserAuth, error)
	IsEmailOrUsernameTaken(ctx context.Context, email, username string) (bool, error)
}

type AuthTokenRepository interface {
	Create(ctx context.Context, userID int64) (string, error)
	GetByUserID(ctx context.Context, userID int64) (string, error)
	GetUserID(ctx context.Context, token string) (int64, error)
}

type ProjectRepository interface {
	Create(ctx context.Context, userID int64, name, description string) (*Project, error)
	GetByID(ctx context.Context, projectID, userID int64) (*Project, error)
	Update(ctx context.Context, projectID, userID int64, name, description string) (*Project, error)
	Delete(ctx context.Context, projectID, userID int64) error
	List(ctx context.Context, userID int64) ([]Project, error)
}
