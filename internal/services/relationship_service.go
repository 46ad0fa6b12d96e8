package services

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/blake-brooks-88/DataCloudDiscovery-sub001/internal/models"
	"github.com/blake-brooks-88/DataCloudDiscovery-sub001/internal/repositories"
	"github.com/blake-brooks-88/DataCloudDiscovery-sub001/internal/utils"
)

type RelationshipService struct {
	projectRepo      *repositories.ProjectRepository
	entityRepo       *repositories.EntityRepository
	relationshipRepo *repositories.RelationshipRepository
}

func NewRelationshipService(
	projectRepo *repositories.ProjectRepository,
	entityRepo *repositories.EntityRepository,
	relationshipRepo *repositories.RelationshipRepository,
) *RelationshipService {
	return &RelationshipService{
		projectRepo:      projectRepo,
		entityRepo:       entityRepo,
		relationshipRepo: relationshipRepo,
	}
}

type CreateRelationshipRequest struct {
	Type           models.RelationshipType `json:"type" binding:"required"`
	SourceEntityID string                  `json:"source_entity_id" binding:"required"`
	TargetEntityID string                  `json:"target_entity_id" binding:"required"`
	Label          *string                 `json:"label,omitempty"`
	FieldMappings  []models.FieldMapping   `json:"field_mappings,omitempty"`
}

func (s *RelationshipService) resolveEntity(id string, projectID uuid.UUID) (uuid.UUID, error) {
	entityUUID, err := utils.ParseUUID(id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid entity ID: %w", err)
	}

	entity, err := s.entityRepo.GetByID(entityUUID)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to get entity: %w", err)
	}
	if entity == nil || entity.ProjectID != projectID {
		return uuid.Nil, fmt.Errorf("entity %s not found in project", id)
	}

	return entityUUID, nil
}

func (s *RelationshipService) CreateRelationship(projectID string, req CreateRelationshipRequest) (*models.Relationship, error) {
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

	if !req.Type.Valid() {
		return nil, fmt.Errorf("invalid relationship type %q", req.Type)
	}

	sourceUUID, err := s.resolveEntity(req.SourceEntityID, projectUUID)
	if err != nil {
		return nil, err
	}
	targetUUID, err := s.resolveEntity(req.TargetEntityID, projectUUID)
	if err != nil {
		return nil, err
	}

	rel := &models.Relationship{
		ProjectID:      projectUUID,
		Type:           req.Type,
		SourceEntityID: sourceUUID,
		TargetEntityID: targetUUID,
		Label:          req.Label,
		FieldMappings:  req.FieldMappings,
	}

	if err := s.relationshipRepo.Create(rel); err != nil {
		return nil, fmt.Errorf("failed to save relationship: %w", err)
	}

	return rel, nil
}

type UpdateRelationshipRequest struct {
	Type           models.RelationshipType `json:"type" binding:"required"`
	SourceEntityID string                  `json:"source_entity_id" binding:"required"`
	TargetEntityID string                  `json:"target_entity_id" binding:"required"`
	Label          *string                 `json:"label,omitempty"`
	FieldMappings  []models.FieldMapping   `json:"field_mappings,omitempty"`
}

// UpdateRelationship rewrites a relationship's type, endpoints, label and
// field mappings. Waypoints are managed separately through UpdateWaypoints
// and survive the update.
func (s *RelationshipService) UpdateRelationship(projectID, relationshipID string, req UpdateRelationshipRequest) (*models.Relationship, error) {
	projectUUID, err := utils.ParseUUID(projectID)
	if err != nil {
		return nil, fmt.Errorf("invalid project ID: %w", err)
	}

	rel, err := s.GetRelationship(relationshipID)
	if err != nil {
		return nil, err
	}
	if rel.ProjectID != projectUUID {
		return nil, fmt.Errorf("relationship not found in project")
	}

	if !req.Type.Valid() {
		return nil, fmt.Errorf("invalid relationship type %q", req.Type)
	}

	sourceUUID, err := s.resolveEntity(req.SourceEntityID, projectUUID)
	if err != nil {
		return nil, err
	}
	targetUUID, err := s.resolveEntity(req.TargetEntityID, projectUUID)
	if err != nil {
		return nil, err
	}

	rel.Type = req.Type
	rel.SourceEntityID = sourceUUID
	rel.TargetEntityID = targetUUID
	rel.Label = req.Label
	rel.FieldMappings = req.FieldMappings

	if err := s.relationshipRepo.Update(rel); err != nil {
		return nil, fmt.Errorf("failed to update relationship: %w", err)
	}

	return rel, nil
}

func (s *RelationshipService) GetRelationship(relationshipID string) (*models.Relationship, error) {
	relUUID, err := utils.ParseUUID(relationshipID)
	if err != nil {
		return nil, fmt.Errorf("invalid relationship ID: %w", err)
	}

	rel, err := s.relationshipRepo.GetByID(relUUID)
	if err != nil {
		return nil, fmt.Errorf("failed to get relationship: %w", err)
	}
	if rel == nil {
		return nil, fmt.Errorf("relationship not found")
	}

	return rel, nil
}

func (s *RelationshipService) GetRelationshipsByProject(projectID string) ([]models.Relationship, error) {
	projectUUID, err := utils.ParseUUID(projectID)
	if err != nil {
		return nil, fmt.Errorf("invalid project ID: %w", err)
	}

	return s.relationshipRepo.GetByProjectID(projectUUID)
}

// UpdateWaypoints persists a manual route, snapping each waypoint to the
// grid.
func (s *RelationshipService) UpdateWaypoints(relationshipID string, waypoints []models.Point) (*models.Relationship, error) {
	rel, err := s.GetRelationship(relationshipID)
	if err != nil {
		return nil, err
	}

	snapped := snapWaypoints(waypoints)
	if err := s.relationshipRepo.UpdateWaypoints(rel.ID, snapped); err != nil {
		return nil, fmt.Errorf("failed to update waypoints: %w", err)
	}

	rel.Waypoints = snapped
	return rel, nil
}

func (s *RelationshipService) DeleteRelationship(relationshipID string) error {
	relUUID, err := utils.ParseUUID(relationshipID)
	if err != nil {
		return fmt.Errorf("invalid relationship ID: %w", err)
	}

	if err := s.relationshipRepo.Delete(relUUID); err != nil {
		return fmt.Errorf("failed to delete relationship: %w", err)
	}

	return nil
}
