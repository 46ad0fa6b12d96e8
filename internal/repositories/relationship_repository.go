package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/blake-brooks-88/DataCloudDiscovery-sub001/internal/models"
)

type RelationshipRepository struct {
	pool *pgxpool.Pool
}

func NewRelationshipRepository(pool *pgxpool.Pool) *RelationshipRepository {
	return &RelationshipRepository{pool: pool}
}

const relationshipColumns = `id, project_id, relationship_type, source_entity_id, target_entity_id, label, field_mappings, waypoints, created_at`

func scanRelationship(row pgx.Row) (*models.Relationship, error) {
	var rel models.Relationship
	err := row.Scan(
		&rel.ID,
		&rel.ProjectID,
		&rel.Type,
		&rel.SourceEntityID,
		&rel.TargetEntityID,
		&rel.Label,
		&rel.FieldMappings,
		&rel.Waypoints,
		&rel.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &rel, nil
}

func (r *RelationshipRepository) Create(rel *models.Relationship) error {
	ctx := context.Background()

	rel.Prepare()

	query := `
		INSERT INTO relationships
			(id, project_id, relationship_type, source_entity_id, target_entity_id, label, field_mappings, waypoints)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING created_at
	`

	return r.pool.QueryRow(ctx, query,
		rel.ID,
		rel.ProjectID,
		rel.Type,
		rel.SourceEntityID,
		rel.TargetEntityID,
		rel.Label,
		rel.FieldMappings,
		rel.Waypoints,
	).Scan(&rel.CreatedAt)
}

func (r *RelationshipRepository) GetByID(id uuid.UUID) (*models.Relationship, error) {
	ctx := context.Background()

	query := `SELECT ` + relationshipColumns + ` FROM relationships WHERE id = $1`

	rel, err := scanRelationship(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	return rel, nil
}

func (r *RelationshipRepository) GetByProjectID(projectID uuid.UUID) ([]models.Relationship, error) {
	ctx := context.Background()

	query := `
		SELECT ` + relationshipColumns + ` FROM relationships
		WHERE project_id = $1
		ORDER BY created_at, id
	`

	rows, err := r.pool.Query(ctx, query, projectID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var rels []models.Relationship
	for rows.Next() {
		rel, err := scanRelationship(rows)
		if err != nil {
			return nil, err
		}
		rels = append(rels, *rel)
	}

	return rels, rows.Err()
}

func (r *RelationshipRepository) Update(rel *models.Relationship) error {
	ctx := context.Background()

	query := `
		UPDATE relationships SET
			relationship_type = $2, source_entity_id = $3, target_entity_id = $4,
			label = $5, field_mappings = $6, waypoints = $7
		WHERE id = $1
	`

	result, err := r.pool.Exec(ctx, query,
		rel.ID,
		rel.Type,
		rel.SourceEntityID,
		rel.TargetEntityID,
		rel.Label,
		rel.FieldMappings,
		rel.Waypoints,
	)
	if err != nil {
		return err
	}

	if result.RowsAffected() == 0 {
		return errors.New("relationship not found")
	}

	return nil
}

// UpdateWaypoints replaces the manual routing waypoints.
func (r *RelationshipRepository) UpdateWaypoints(id uuid.UUID, waypoints []models.Point) error {
	ctx := context.Background()

	query := `UPDATE relationships SET waypoints = $2 WHERE id = $1`
	result, err := r.pool.Exec(ctx, query, id, waypoints)
	if err != nil {
		return err
	}

	if result.RowsAffected() == 0 {
		return errors.New("relationship not found")
	}

	return nil
}

func (r *RelationshipRepository) Delete(id uuid.UUID) error {
	ctx := context.Background()

	query := `DELETE FROM relationships WHERE id = $1`
	result, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return err
	}

	if result.RowsAffected() == 0 {
		return errors.New("relationship not found")
	}

	return nil
}
