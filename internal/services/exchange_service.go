package services

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/blake-brooks-88/DataCloudDiscovery-sub001/internal/models"
	"github.com/blake-brooks-88/DataCloudDiscovery-sub001/internal/repositories"
)

// ExchangeService moves whole projects in and out as JSON documents, the
// same shape the browser front end keeps in local storage.
type ExchangeService struct {
	projectRepo      *repositories.ProjectRepository
	entityRepo       *repositories.EntityRepository
	relationshipRepo *repositories.RelationshipRepository
	projectService   *ProjectService
	entityService    *EntityService
}

func NewExchangeService(
	projectRepo *repositories.ProjectRepository,
	entityRepo *repositories.EntityRepository,
	relationshipRepo *repositories.RelationshipRepository,
	projectService *ProjectService,
	entityService *EntityService,
) *ExchangeService {
	return &ExchangeService{
		projectRepo:      projectRepo,
		entityRepo:       entityRepo,
		relationshipRepo: relationshipRepo,
		projectService:   projectService,
		entityService:    entityService,
	}
}

// ProjectDocument is the exchange format: one self-contained project graph.
type ProjectDocument struct {
	Project       models.Project        `json:"project"`
	Entities      []models.Entity       `json:"entities"`
	Relationships []models.Relationship `json:"relationships"`
}

func (s *ExchangeService) Export(projectID string) (*ProjectDocument, error) {
	project, err := s.projectService.GetProject(projectID)
	if err != nil {
		return nil, err
	}

	entities, err := s.entityRepo.GetByProjectID(project.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load entities: %w", err)
	}
	relationships, err := s.relationshipRepo.GetByProjectID(project.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load relationships: %w", err)
	}

	return &ProjectDocument{
		Project:       *project,
		Entities:      entities,
		Relationships: relationships,
	}, nil
}

// Import creates a fresh project from a document. Every id is remapped so
// the same document can be imported repeatedly; cross-references (foreign
// keys, relationship endpoints, field mappings) follow the remapping.
func (s *ExchangeService) Import(doc ProjectDocument) (*models.Project, error) {
	if doc.Project.Name == "" {
		return nil, fmt.Errorf("project name is required")
	}

	entityIDs := make(map[uuid.UUID]uuid.UUID, len(doc.Entities))
	fieldIDs := make(map[uuid.UUID]uuid.UUID)
	for _, e := range doc.Entities {
		entityIDs[e.ID] = uuid.New()
		for _, f := range e.Fields {
			fieldIDs[f.ID] = uuid.New()
		}
	}

	remapField := func(id uuid.UUID) uuid.UUID {
		if mapped, ok := fieldIDs[id]; ok {
			return mapped
		}
		return id
	}

	project := &models.Project{
		Name:        doc.Project.Name,
		Description: doc.Project.Description,
	}
	if err := s.projectRepo.Create(project); err != nil {
		return nil, fmt.Errorf("failed to create project: %w", err)
	}

	// Deleting the project cascades to every entity and relationship created
	// so far, so a failed import leaves nothing behind.
	abort := func(err error) (*models.Project, error) {
		if delErr := s.projectRepo.Delete(project.ID); delErr != nil {
			return nil, fmt.Errorf("%w (cleanup of partial import failed: %v)", err, delErr)
		}
		return nil, err
	}

	for _, e := range doc.Entities {
		entity := e
		entity.ID = entityIDs[e.ID]
		entity.ProjectID = project.ID
		entity.Fields = make([]models.Field, len(e.Fields))
		for i, f := range e.Fields {
			field := f
			field.ID = fieldIDs[f.ID]
			if ref := f.ForeignKeyReference; ref != nil {
				remapped := *ref
				if mapped, ok := entityIDs[ref.TargetEntityID]; ok {
					remapped.TargetEntityID = mapped
				}
				remapped.TargetFieldID = remapField(ref.TargetFieldID)
				field.ForeignKeyReference = &remapped
			}
			entity.Fields[i] = field
		}

		if err := validateFields(entity.Fields); err != nil {
			return abort(fmt.Errorf("entity %q: %w", e.Name, err))
		}
		if err := s.entityRepo.Create(&entity); err != nil {
			return abort(fmt.Errorf("failed to import entity %q: %w", e.Name, err))
		}
	}

	for _, r := range doc.Relationships {
		sourceID, ok := entityIDs[r.SourceEntityID]
		if !ok {
			// dangling relationship in the document, skip it
			continue
		}
		targetID, ok := entityIDs[r.TargetEntityID]
		if !ok {
			continue
		}

		rel := r
		rel.ID = uuid.Nil
		rel.ProjectID = project.ID
		rel.SourceEntityID = sourceID
		rel.TargetEntityID = targetID
		rel.FieldMappings = make([]models.FieldMapping, len(r.FieldMappings))
		for i, m := range r.FieldMappings {
			m.SourceFieldID = remapField(m.SourceFieldID)
			m.TargetFieldID = remapField(m.TargetFieldID)
			rel.FieldMappings[i] = m
		}

		if err := s.relationshipRepo.Create(&rel); err != nil {
			return abort(fmt.Errorf("failed to import relationship: %w", err))
		}
	}

	return project, nil
}
