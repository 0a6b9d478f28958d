package database

import (
	"context"
	"testing"

	"github.com/agawojdecka/polarify/internal/domain"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
)

// createTestUser creates a user with default values for testing.
func createTestUser(t *testing.T, pool *pgxpool.Pool, username string) *domain.User {
	t.Helper()

	repo := NewUserRepo(pool)
	user, err := repo.Create(context.Background(), username, username+"@example.com", "$2a$10$fakehash")
	require.NoError(t, err)
	require.NotZero(t, user.ID)

	return user
}

// createTestProject creates a project owned by the given user.
func createTestProject(t *testing.T, pool *pgxpool.Pool, userID int64, name string) *domain.Project {
	t.Helper()

	repo := NewProjectRepo(pool)
	project, err := repo.Create(context.Background(), userID, name, "")
	require.NoError(t, err)
	require.NotZero(t, project.ID)

	return project
}
