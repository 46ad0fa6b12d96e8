package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/blake-brooks-88/DataCloudDiscovery-sub001/internal/models"
	"github.com/blake-brooks-88/DataCloudDiscovery-sub001/internal/responses"
	"github.com/blake-brooks-88/DataCloudDiscovery-sub001/internal/services"
)

type EntityHandler struct {
	entityService *services.EntityService
}

func NewEntityHandler(entityService *services.EntityService) *EntityHandler {
	return &EntityHandler{entityService: entityService}
}

// CreateEntity handles POST /api/v1/projects/:id/entities
func (h *EntityHandler) CreateEntity(c *gin.Context) {
	var req services.CreateEntityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.Fail(c, http.StatusBadRequest, err, "Invalid request body")
		return
	}

	entity, err := h.entityService.CreateEntity(c.Param("id"), req)
	if err != nil {
		responses.Fail(c, http.StatusBadRequest, err, "Failed to create entity")
		return
	}

	responses.Success(c, http.StatusCreated, entity, "Entity created successfully")
}

// ListEntities handles GET /api/v1/projects/:id/entities
func (h *EntityHandler) ListEntities(c *gin.Context) {
	entities, err := h.entityService.GetEntitiesByProject(c.Param("id"))
	if err != nil {
		responses.Fail(c, http.StatusInternalServerError, err, "Failed to retrieve entities")
		return
	}

	responses.Success(c, http.StatusOK, entities, "Entities retrieved successfully")
}

// GetEntity handles GET /api/v1/projects/:id/entities/:entityId
func (h *EntityHandler) GetEntity(c *gin.Context) {
	entity, err := h.entityService.GetEntity(c.Param("entityId"))
	if err != nil {
		responses.Fail(c, http.StatusNotFound, err, "Entity not found")
		return
	}

	responses.Success(c, http.StatusOK, entity, "Entity retrieved successfully")
}

// UpdateEntity handles PUT /api/v1/projects/:id/entities/:entityId
func (h *EntityHandler) UpdateEntity(c *gin.Context) {
	var req services.UpdateEntityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.Fail(c, http.StatusBadRequest, err, "Invalid request body")
		return
	}

	entity, err := h.entityService.UpdateEntity(c.Param("entityId"), req)
	if err != nil {
		responses.Fail(c, http.StatusBadRequest, err, "Failed to update entity")
		return
	}

	responses.Success(c, http.StatusOK, entity, "Entity updated successfully")
}

type updatePositionRequest struct {
	X *float64 `json:"x" binding:"required"`
	Y *float64 `json:"y" binding:"required"`
}

// UpdateEntityPosition handles PATCH /api/v1/projects/:id/entities/:entityId/position
func (h *EntityHandler) UpdateEntityPosition(c *gin.Context) {
	var req updatePositionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.Fail(c, http.StatusBadRequest, err, "Invalid request body")
		return
	}

	entity, err := h.entityService.UpdateEntityPosition(c.Param("entityId"), models.Point{X: *req.X, Y: *req.Y})
	if err != nil {
		responses.Fail(c, http.StatusNotFound, err, "Failed to update entity position")
		return
	}

	responses.Success(c, http.StatusOK, entity, "Entity position updated successfully")
}

type updateWaypointsRequest struct {
	Waypoints []models.Point `json:"waypoints"`
}

// UpdateFieldWaypoints handles PUT /api/v1/projects/:id/entities/:entityId/fields/:fieldId/waypoints
func (h *EntityHandler) UpdateFieldWaypoints(c *gin.Context) {
	var req updateWaypointsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.Fail(c, http.StatusBadRequest, err, "Invalid request body")
		return
	}

	err := h.entityService.UpdateFieldWaypoints(c.Param("entityId"), c.Param("fieldId"), req.Waypoints)
	if err != nil {
		responses.Fail(c, http.StatusNotFound, err, "Failed to update waypoints")
		return
	}

	responses.Success(c, http.StatusOK, nil, "Waypoints updated successfully")
}

// DeleteEntity handles DELETE /api/v1/projects/:id/entities/:entityId
//
// Deleting an entity also removes every relationship and foreign-key
// reference that names it.
func (h *EntityHandler) DeleteEntity(c *gin.Context) {
	if err := h.entityService.DeleteEntity(c.Param("entityId")); err != nil {
		responses.Fail(c, http.StatusNotFound, err, "Failed to delete entity")
		return
	}

	responses.Success(c, http.StatusOK, nil, "Entity deleted successfully")
}
