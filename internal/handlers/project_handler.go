package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/blake-brooks-88/DataCloudDiscovery-sub001/internal/responses"
	"github.com/blake-brooks-88/DataCloudDiscovery-sub001/internal/services"
)

type ProjectHandler struct {
	projectService *services.ProjectService
}

func NewProjectHandler(projectService *services.ProjectService) *ProjectHandler {
	return &ProjectHandler{projectService: projectService}
}

// CreateProject handles POST /api/v1/projects
func (h *ProjectHandler) CreateProject(c *gin.Context) {
	var req services.CreateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.Fail(c, http.StatusBadRequest, err, "Invalid request body")
		return
	}

	project, err := h.projectService.CreateProject(req)
	if err != nil {
		responses.Fail(c, http.StatusInternalServerError, err, "Failed to create project")
		return
	}

	responses.Success(c, http.StatusCreated, project, "Project created successfully")
}

// GetProject handles GET /api/v1/projects/:id
func (h *ProjectHandler) GetProject(c *gin.Context) {
	project, err := h.projectService.GetProject(c.Param("id"))
	if err != nil {
		responses.Fail(c, http.StatusNotFound, err, "Project not found")
		return
	}

	responses.Success(c, http.StatusOK, project, "Project retrieved successfully")
}

// ListProjects handles GET /api/v1/projects
func (h *ProjectHandler) ListProjects(c *gin.Context) {
	projects, err := h.projectService.ListProjects()
	if err != nil {
		responses.Fail(c, http.StatusInternalServerError, err, "Failed to retrieve projects")
		return
	}

	responses.Success(c, http.StatusOK, projects, "Projects retrieved successfully")
}

// UpdateProject handles PUT /api/v1/projects/:id
func (h *ProjectHandler) UpdateProject(c *gin.Context) {
	var req services.UpdateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.Fail(c, http.StatusBadRequest, err, "Invalid request body")
		return
	}

	project, err := h.projectService.UpdateProject(c.Param("id"), req)
	if err != nil {
		responses.Fail(c, http.StatusNotFound, err, "Failed to update project")
		return
	}

	responses.Success(c, http.StatusOK, project, "Project updated successfully")
}

// DeleteProject handles DELETE /api/v1/projects/:id
func (h *ProjectHandler) DeleteProject(c *gin.Context) {
	if err := h.projectService.DeleteProject(c.Param("id")); err != nil {
		responses.Fail(c, http.StatusNotFound, err, "Failed to delete project")
		return
	}

	responses.Success(c, http.StatusOK, nil, "Project deleted successfully")
}
