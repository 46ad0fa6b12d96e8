package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/blake-brooks-88/DataCloudDiscovery-sub001/internal/models"
)

type ProjectRepository struct {
	pool *pgxpool.Pool
}

func NewProjectRepository(pool *pgxpool.Pool) *ProjectRepository {
	return &ProjectRepository{pool: pool}
}

func (r *ProjectRepository) Create(project *models.Project) error {
	ctx := context.Background()

	project.Prepare()

	query := `
		INSERT INTO projects (id, name, description, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $4)
		RETURNING created_at, updated_at
	`

	now := time.Now()
	return r.pool.QueryRow(ctx, query,
		project.ID,
		project.Name,
		project.Description,
		now,
	).Scan(&project.CreatedAt, &project.UpdatedAt)
}

func (r *ProjectRepository) GetByID(id uuid.UUID) (*models.Project, error) {
	ctx := context.Background()

	query := `
		SELECT id, name, description, created_at, updated_at
		FROM projects WHERE id = $1
	`

	var project models.Project
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&project.ID,
		&project.Name,
		&project.Description,
		&project.CreatedAt,
		&project.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	return &project, nil
}

func (r *ProjectRepository) List() ([]models.Project, error) {
	ctx := context.Background()

	query := `
		SELECT id, name, description, created_at, updated_at
		FROM projects
		ORDER BY created_at DESC
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var projects []models.Project
	for rows.Next() {
		var project models.Project
		err := rows.Scan(
			&project.ID,
			&project.Name,
			&project.Description,
			&project.CreatedAt,
			&project.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		projects = append(projects, project)
	}

	return projects, rows.Err()
}

func (r *ProjectRepository) Update(project *models.Project) error {
	ctx := context.Background()

	query := `
		UPDATE projects SET name = $2, description = $3, updated_at = NOW()
		WHERE id = $1
	`

	result, err := r.pool.Exec(ctx, query,
		project.ID,
		project.Name,
		project.Description,
	)
	if err != nil {
		return err
	}

	if result.RowsAffected() == 0 {
		return errors.New("project not found")
	}

	return nil
}

func (r *ProjectRepository) Delete(id uuid.UUID) error {
	ctx := context.Background()

	query := `DELETE FROM projects WHERE id = $1`
	result, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return err
	}

	if result.RowsAffected() == 0 {
		return errors.New("project not found")
	}

	return nil
}
