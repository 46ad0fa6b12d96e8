package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/blake-brooks-88/DataCloudDiscovery-sub001/internal/models"
)

type EntityRepository struct {
	pool *pgxpool.Pool
}

func NewEntityRepository(pool *pgxpool.Pool) *EntityRepository {
	return &EntityRepository{pool: pool}
}

const entityColumns = `id, project_id, name, fields, position, metadata, created_at, updated_at`

func scanEntity(row pgx.Row) (*models.Entity, error) {
	var entity models.Entity
	err := row.Scan(
		&entity.ID,
		&entity.ProjectID,
		&entity.Name,
		&entity.Fields,
		&entity.Position,
		&entity.Metadata,
		&entity.CreatedAt,
		&entity.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &entity, nil
}

func (r *EntityRepository) Create(entity *models.Entity) error {
	ctx := context.Background()

	entity.Prepare()

	query := `
		INSERT INTO entities (id, project_id, name, fields, position, metadata)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at, updated_at
	`

	return r.pool.QueryRow(ctx, query,
		entity.ID,
		entity.ProjectID,
		entity.Name,
		entity.Fields,
		entity.Position,
		entity.Metadata,
	).Scan(&entity.CreatedAt, &entity.UpdatedAt)
}

func (r *EntityRepository) GetByID(id uuid.UUID) (*models.Entity, error) {
	ctx := context.Background()

	query := `SELECT ` + entityColumns + ` FROM entities WHERE id = $1`

	entity, err := scanEntity(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	return entity, nil
}

func (r *EntityRepository) GetByProjectID(projectID uuid.UUID) ([]models.Entity, error) {
	ctx := context.Background()

	query := `
		SELECT ` + entityColumns + ` FROM entities
		WHERE project_id = $1
		ORDER BY created_at, id
	`

	rows, err := r.pool.Query(ctx, query, projectID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entities []models.Entity
	for rows.Next() {
		entity, err := scanEntity(rows)
		if err != nil {
			return nil, err
		}
		entities = append(entities, *entity)
	}

	return entities, rows.Err()
}

func (r *EntityRepository) Update(entity *models.Entity) error {
	ctx := context.Background()

	query := `
		UPDATE entities SET
			name = $2, fields = $3, position = $4, metadata = $5, updated_at = NOW()
		WHERE id = $1
	`

	result, err := r.pool.Exec(ctx, query,
		entity.ID,
		entity.Name,
		entity.Fields,
		entity.Position,
		entity.Metadata,
	)
	if err != nil {
		return err
	}

	if result.RowsAffected() == 0 {
		return errors.New("entity not found")
	}

	return nil
}

// UpdatePosition persists the canvas position set on drag end.
func (r *EntityRepository) UpdatePosition(id uuid.UUID, position models.Point) error {
	ctx := context.Background()

	query := `UPDATE entities SET position = $2, updated_at = NOW() WHERE id = $1`
	result, err := r.pool.Exec(ctx, query, id, position)
	if err != nil {
		return err
	}

	if result.RowsAffected() == 0 {
		return errors.New("entity not found")
	}

	return nil
}

// UpdateFieldWaypoints replaces the manual routing waypoints on one
// foreign-key field.
func (r *EntityRepository) UpdateFieldWaypoints(entityID, fieldID uuid.UUID, waypoints []models.Point) error {
	ctx := context.Background()

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	var fields []models.Field
	err = tx.QueryRow(ctx, `SELECT fields FROM entities WHERE id = $1 FOR UPDATE`, entityID).Scan(&fields)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return errors.New("entity not found")
		}
		return err
	}

	found := false
	for i := range fields {
		if fields[i].ID != fieldID {
			continue
		}
		if fields[i].ForeignKeyReference == nil {
			return fmt.Errorf("field %s has no foreign key reference", fieldID)
		}
		fields[i].ForeignKeyReference.Waypoints = waypoints
		found = true
		break
	}
	if !found {
		return fmt.Errorf("field %s not found on entity %s", fieldID, entityID)
	}

	if _, err := tx.Exec(ctx, `UPDATE entities SET fields = $2, updated_at = NOW() WHERE id = $1`, entityID, fields); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

// Delete removes an entity and every reference to it: entity-level
// relationships naming it as source or target, and foreign-key references on
// sibling entities' fields. Runs in one transaction so no dangling
// references survive.
func (r *EntityRepository) Delete(id uuid.UUID) error {
	ctx := context.Background()

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	var projectID uuid.UUID
	err = tx.QueryRow(ctx, `SELECT project_id FROM entities WHERE id = $1`, id).Scan(&projectID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return errors.New("entity not found")
		}
		return err
	}

	if _, err := tx.Exec(ctx,
		`DELETE FROM relationships WHERE source_entity_id = $1 OR target_entity_id = $1`, id); err != nil {
		return err
	}

	rows, err := tx.Query(ctx,
		`SELECT id, fields FROM entities WHERE project_id = $1 AND id <> $2 FOR UPDATE`, projectID, id)
	if err != nil {
		return err
	}

	type pendingUpdate struct {
		id     uuid.UUID
		fields []models.Field
	}
	var updates []pendingUpdate
	for rows.Next() {
		var siblingID uuid.UUID
		var fields []models.Field
		if err := rows.Scan(&siblingID, &fields); err != nil {
			rows.Close()
			return err
		}
		if stripReferencesTo(fields, id) {
			updates = append(updates, pendingUpdate{id: siblingID, fields: fields})
		}
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return err
	}

	for _, u := range updates {
		if _, err := tx.Exec(ctx,
			`UPDATE entities SET fields = $2, updated_at = NOW() WHERE id = $1`, u.id, u.fields); err != nil {
			return err
		}
	}

	if _, err := tx.Exec(ctx, `DELETE FROM entities WHERE id = $1`, id); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

// stripReferencesTo drops foreign-key references targeting the given entity.
// Reports whether anything changed.
func stripReferencesTo(fields []models.Field, target uuid.UUID) bool {
	changed := false
	for i := range fields {
		ref := fields[i].ForeignKeyReference
		if ref == nil || ref.TargetEntityID != target {
			continue
		}
		fields[i].ForeignKeyReference = nil
		fields[i].IsForeignKey = false
		changed = true
	}
	return changed
}
