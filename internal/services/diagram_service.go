package services

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/blake-brooks-88/DataCloudDiscovery-sub001/internal/diagram"
	"github.com/blake-brooks-88/DataCloudDiscovery-sub001/internal/models"
	"github.com/blake-brooks-88/DataCloudDiscovery-sub001/internal/repositories"
	"github.com/blake-brooks-88/DataCloudDiscovery-sub001/internal/utils"
)

// DiagramService renders a project's entity/relationship graph into draw
// commands for a client-supplied viewport.
type DiagramService struct {
	projectRepo      *repositories.ProjectRepository
	entityRepo       *repositories.EntityRepository
	relationshipRepo *repositories.RelationshipRepository
}

func NewDiagramService(
	projectRepo *repositories.ProjectRepository,
	entityRepo *repositories.EntityRepository,
	relationshipRepo *repositories.RelationshipRepository,
) *DiagramService {
	return &DiagramService{
		projectRepo:      projectRepo,
		entityRepo:       entityRepo,
		relationshipRepo: relationshipRepo,
	}
}

// RenderRequest carries the client's viewport. Out-of-range zoom values are
// clamped, never rejected.
type RenderRequest struct {
	Zoom           float64 `form:"zoom"`
	PanX           float64 `form:"pan_x"`
	PanY           float64 `form:"pan_y"`
	Search         string  `form:"search"`
	SelectedEntity string  `form:"selected"`
}

func (s *DiagramService) loadProjectGraph(projectID string) ([]models.Entity, []models.Relationship, error) {
	projectUUID, err := utils.ParseUUID(projectID)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid project ID: %w", err)
	}

	project, err := s.projectRepo.GetByID(projectUUID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get project: %w", err)
	}
	if project == nil {
		return nil, nil, fmt.Errorf("project not found")
	}

	entities, err := s.entityRepo.GetByProjectID(projectUUID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load entities: %w", err)
	}
	relationships, err := s.relationshipRepo.GetByProjectID(projectUUID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load relationships: %w", err)
	}

	return entities, relationships, nil
}

func (s *DiagramService) RenderProject(projectID string, req RenderRequest) ([]diagram.DrawCommand, error) {
	entities, relationships, err := s.loadProjectGraph(projectID)
	if err != nil {
		return nil, err
	}

	zoom := req.Zoom
	if zoom == 0 {
		zoom = 1.0
	}

	var selected *uuid.UUID
	if req.SelectedEntity != "" {
		if id, err := utils.ParseUUID(req.SelectedEntity); err == nil {
			selected = &id
		}
	}

	snapshot := diagram.Snapshot{
		Entities:       entities,
		Relationships:  relationships,
		SelectedEntity: selected,
		Search:         req.Search,
		Viewport: diagram.Viewport{
			Zoom: diagram.ClampZoom(zoom),
			Pan:  models.Point{X: req.PanX, Y: req.PanY},
		},
	}

	return diagram.Render(snapshot), nil
}

// FitViewport computes the zoom/pan framing every entity of the project in
// a viewport of the given pixel size.
func (s *DiagramService) FitViewport(projectID string, width, height float64) (*diagram.Viewport, error) {
	entities, relationships, err := s.loadProjectGraph(projectID)
	if err != nil {
		return nil, err
	}

	ctrl := diagram.NewController(entities, relationships, width, height)
	ctrl.FitToScreen()
	vp := ctrl.Viewport()
	return &vp, nil
}
