package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/agawojdecka/polarify/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const projectColumns = `id, user_id, name, description, created_at`

// ProjectRepo implements domain.ProjectRepository backed by PostgreSQL.
// All reads and writes are scoped to the owning user.
type ProjectRepo struct {
	pool *pgxpool.Pool
}

func NewProjectRepo(pool *pgxpool.Pool) *ProjectRepo {
	return &ProjectRepo{pool: pool}
}

func scanProject(row pgx.Row) (*domain.Project, error) {
	var project domain.Project
	err := row.Scan(&project.ID, &project.UserID, &project.Name, &project.Description, &project.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &project, nil
}

func (r *ProjectRepo) Create(ctx context.Context, userID int64, name, description string) (*domain.Project, error) {
	project, err := scanProject(r.pool.QueryRow(ctx, `
		INSERT INTO projects (user_id, name, description)
		VALUES ($1, $2, $3)
		RETURNING `+projectColumns,
		userID, name, description,
	))
	if err != nil {
		return nil, fmt.Errorf("failed to create project: %w", err)
	}
	return project, nil
}

func (r *ProjectRepo) GetByID(ctx context.Context, projectID, userID int64) (*domain.Project, error) {
	project, err := scanProject(r.pool.QueryRow(ctx,
		`SELECT `+projectColumns+` FROM projects WHERE id = $1 AND user_id = $2`,
		projectID, userID,
	))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrProjectNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get project: %w", err)
	}
	return project, nil
}

func (r *ProjectRepo) Update(ctx context.Context, projectID, userID int64, name, description string) (*domain.Project, error) {
	project, err := scanProject(r.pool.QueryRow(ctx, `
		UPDATE projects
		SET name = $1, description = $2
		WHERE id = $3 AND user_id = $4
		RETURNING `+projectColumns,
		name, description, projectID, userID,
	))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrProjectNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update project: %w", err)
	}
	return project, nil
}

func (r *ProjectRepo) Delete(ctx context.Context, projectID, userID int64) error {
	tag, err := r.pool.Exec(ctx,
		`DELETE FROM projects WHERE id = $1 AND user_id = $2`, projectID, userID,
	)
	if err != nil {
		return fmt.Errorf("failed to delete project: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrProjectNotFound
	}
	return nil
}

func (r *ProjectRepo) List(ctx context.Context, userID int64) ([]domain.Project, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+projectColumns+` FROM projects WHERE user_id = $1 ORDER BY id`, userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	defer rows.Close()

	projects := []domain.Project{}
	for rows.Next() {
		project, err := scanProject(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan project: %w", err)
		}
		projects = append(projects, *project)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read projects: %w", err)
	}

	return projects, nil
}
