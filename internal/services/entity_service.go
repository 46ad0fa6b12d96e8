package services

import (
	"fmt"

	"github.com/blake-brooks-88/DataCloudDiscovery-sub001/internal/diagram"
	"github.com/blake-brooks-88/DataCloudDiscovery-sub001/internal/models"
	"github.com/blake-brooks-88/DataCloudDiscovery-sub001/internal/repositories"
	"github.com/blake-brooks-88/DataCloudDiscovery-sub001/internal/utils"
)

type EntityService struct {
	projectRepo *repositories.ProjectRepository
	entityRepo  *repositories.EntityRepository
}

func NewEntityService(
	projectRepo *repositories.ProjectRepository,
	entityRepo *repositories.EntityRepository,
) *EntityService {
	return &EntityService{
		projectRepo: projectRepo,
		entityRepo:  entityRepo,
	}
}

type CreateEntityRequest struct {
	Name     string                 `json:"name" binding:"required"`
	Fields   []models.Field         `json:"fields"`
	Position *models.Point          `json:"position,omitempty"`
	Metadata *models.EntityMetadata `json:"metadata,omitempty"`
}

type UpdateEntityRequest struct {
	Name     string                 `json:"name" binding:"required"`
	Fields   []models.Field         `json:"fields"`
	Metadata *models.EntityMetadata `json:"metadata,omitempty"`
}

func validateFields(fields []models.Field) error {
	for _, f := range fields {
		if f.Name == "" {
			return fmt.Errorf("field name is required")
		}
		if f.IsForeignKey && f.ForeignKeyReference == nil {
			return fmt.Errorf("field %q is marked as a foreign key but has no reference", f.Name)
		}
		if ref := f.ForeignKeyReference; ref != nil && !ref.Cardinality.Valid() {
			return fmt.Errorf("field %q has invalid cardinality %q", f.Name, ref.Cardinality)
		}
	}
	return nil
}

func (s *EntityService) CreateEntity(projectID string, req CreateEntityRequest) (*models.Entity, error) {
	projectUUID, err := utils.ParseUUID(projectID)
	if err != nil {
		return nil, fmt.Errorf("invalid project ID: %w", err)
	}

	project, err := s.projectRepo.GetByID(projectUUID)
	if err != nil {
		return nil, fmt.Errorf("failed to get project: %w", err)
	}
	if project == nil {
		return nil, fmt.Errorf("project not found")
	}

	if err := validateFields(req.Fields); err != nil {
		return nil, err
	}

	entity := &models.Entity{
		ProjectID: projectUUID,
		Name:      req.Name,
		Fields:    req.Fields,
		Position:  req.Position,
		Metadata:  req.Metadata,
	}

	if err := s.entityRepo.Create(entity); err != nil {
		return nil, fmt.Errorf("failed to save entity: %w", err)
	}

	return entity, nil
}

func (s *EntityService) GetEntity(entityID string) (*models.Entity, error) {
	entityUUID, err := utils.ParseUUID(entityID)
	if err != nil {
		return nil, fmt.Errorf("invalid entity ID: %w", err)
	}

	entity, err := s.entityRepo.GetByID(entityUUID)
	if err != nil {
		return nil, fmt.Errorf("failed to get entity: %w", err)
	}
	if entity == nil {
		return nil, fmt.Errorf("entity not found")
	}

	return entity, nil
}

func (s *EntityService) GetEntitiesByProject(projectID string) ([]models.Entity, error) {
	projectUUID, err := utils.ParseUUID(projectID)
	if err != nil {
		return nil, fmt.Errorf("invalid project ID: %w", err)
	}

	return s.entityRepo.GetByProjectID(projectUUID)
}

func (s *EntityService) UpdateEntity(entityID string, req UpdateEntityRequest) (*models.Entity, error) {
	entity, err := s.GetEntity(entityID)
	if err != nil {
		return nil, err
	}

	if err := validateFields(req.Fields); err != nil {
		return nil, err
	}

	entity.Name = req.Name
	entity.Fields = req.Fields
	entity.Metadata = req.Metadata
	entity.Prepare() // assign ids to newly added fields

	if err := s.entityRepo.Update(entity); err != nil {
		return nil, fmt.Errorf("failed to update entity: %w", err)
	}

	return entity, nil
}

// UpdateEntityPosition persists a drag-end position, snapped to the grid.
func (s *EntityService) UpdateEntityPosition(entityID string, position models.Point) (*models.Entity, error) {
	entity, err := s.GetEntity(entityID)
	if err != nil {
		return nil, err
	}

	snapped := diagram.SnapToGrid(position, diagram.GridSize)
	if err := s.entityRepo.UpdatePosition(entity.ID, snapped); err != nil {
		return nil, fmt.Errorf("failed to update entity position: %w", err)
	}

	entity.Position = &snapped
	return entity, nil
}

// UpdateFieldWaypoints persists the manual route of a field-level foreign
// key, snapping each waypoint to the grid.
func (s *EntityService) UpdateFieldWaypoints(entityID, fieldID string, waypoints []models.Point) error {
	entityUUID, err := utils.ParseUUID(entityID)
	if err != nil {
		return fmt.Errorf("invalid entity ID: %w", err)
	}
	fieldUUID, err := utils.ParseUUID(fieldID)
	if err != nil {
		return fmt.Errorf("invalid field ID: %w", err)
	}

	snapped := snapWaypoints(waypoints)
	if err := s.entityRepo.UpdateFieldWaypoints(entityUUID, fieldUUID, snapped); err != nil {
		return fmt.Errorf("failed to update waypoints: %w", err)
	}

	return nil
}

func (s *EntityService) DeleteEntity(entityID string) error {
	entityUUID, err := utils.ParseUUID(entityID)
	if err != nil {
		return fmt.Errorf("invalid entity ID: %w", err)
	}

	if err := s.entityRepo.Delete(entityUUID); err != nil {
		return fmt.Errorf("failed to delete entity: %w", err)
	}

	return nil
}

func snapWaypoints(waypoints []models.Point) []models.Point {
	snapped := make([]models.Point, len(waypoints))
	for i, wp := range waypoints {
		snapped[i] = diagram.SnapToGrid(wp, diagram.GridSize)
	}
	return snapped
}
