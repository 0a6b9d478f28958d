package database

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"

	"github.com/agawojdecka/polarify/internal/domain"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// TokenRepo implements domain.AuthTokenRepository backed by PostgreSQL.
// Tokens are opaque hex strings minted from a random UUID, one per user.
type TokenRepo struct {
	pool *pgxpool.Pool
}

func NewTokenRepo(pool *pgxpool.Pool) *TokenRepo {
	return &TokenRepo{pool: pool}
}

func mintToken() string {
	id := uuid.New()
	return hex.EncodeToString(id[:])
}

func (r *TokenRepo) Create(ctx context.Context, userID int64) (string, error) {
	token := mintToken()
	_, err := r.pool.Exec(ctx,
		`INSERT INTO auth_tokens (user_id, token) VALUES ($1, $2)`, userID, token,
	)
	if err != nil {
		return "", fmt.Errorf("failed to create auth token: %w", err)
	}
	return token, nil
}

func (r *TokenRepo) GetByUserID(ctx context.Context, userID int64) (string, error) {
	var token string
	err := r.pool.QueryRow(ctx,
		`SELECT token FROM auth_tokens WHERE user_id = $1`, userID,
	).Scan(&token)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", domain.ErrTokenNotFound
	}
	if err != nil {
		return "", fmt.Errorf("failed to get auth token: %w", err)
	}
	return token, nil
}

func (r *TokenRepo) GetUserID(ctx context.Context, token string) (int64, error) {
	var userID int64
	err := r.pool.QueryRow(ctx,
		`SELECT user_id FROM auth_tokens WHERE token = $1`, token,
	).Scan(&userID)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, domain.ErrTokenNotFound
	}
	if err != nil {
		return 0, fmt.Errorf("failed to resolve auth token: %w", err)
	}
	return userID, nil
}
