package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/blake-brooks-88/DataCloudDiscovery-sub001/internal/models"
	"github.com/blake-brooks-88/DataCloudDiscovery-sub001/internal/responses"
	"github.com/blake-brooks-88/DataCloudDiscovery-sub001/internal/services"
)

type RelationshipHandler struct {
	relationshipService *services.RelationshipService
}

func NewRelationshipHandler(relationshipService *services.RelationshipService) *RelationshipHandler {
	return &RelationshipHandler{relationshipService: relationshipService}
}

// CreateRelationship handles POST /api/v1/projects/:id/relationships
func (h *RelationshipHandler) CreateRelationship(c *gin.Context) {
	var req services.CreateRelationshipRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.Fail(c, http.StatusBadRequest, err, "Invalid request body")
		return
	}

	rel, err := h.relationshipService.CreateRelationship(c.Param("id"), req)
	if err != nil {
		responses.Fail(c, http.StatusBadRequest, err, "Failed to create relationship")
		return
	}

	responses.Success(c, http.StatusCreated, rel, "Relationship created successfully")
}

// ListRelationships handles GET /api/v1/projects/:id/relationships
func (h *RelationshipHandler) ListRelationships(c *gin.Context) {
	rels, err := h.relationshipService.GetRelationshipsByProject(c.Param("id"))
	if err != nil {
		responses.Fail(c, http.StatusInternalServerError, err, "Failed to retrieve relationships")
		return
	}

	responses.Success(c, http.StatusOK, rels, "Relationships retrieved successfully")
}

// GetRelationship handles GET /api/v1/projects/:id/relationships/:relationshipId
func (h *RelationshipHandler) GetRelationship(c *gin.Context) {
	rel, err := h.relationshipService.GetRelationship(c.Param("relationshipId"))
	if err != nil {
		responses.Fail(c, http.StatusNotFound, err, "Relationship not found")
		return
	}

	responses.Success(c, http.StatusOK, rel, "Relationship retrieved successfully")
}

// UpdateRelationship handles PUT /api/v1/projects/:id/relationships/:relationshipId
func (h *RelationshipHandler) UpdateRelationship(c *gin.Context) {
	var req services.UpdateRelationshipRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.Fail(c, http.StatusBadRequest, err, "Invalid request body")
		return
	}

	rel, err := h.relationshipService.UpdateRelationship(c.Param("id"), c.Param("relationshipId"), req)
	if err != nil {
		responses.Fail(c, http.StatusBadRequest, err, "Failed to update relationship")
		return
	}

	responses.Success(c, http.StatusOK, rel, "Relationship updated successfully")
}

type relationshipWaypointsRequest struct {
	Waypoints []models.Point `json:"waypoints"`
}

// UpdateWaypoints handles PUT /api/v1/projects/:id/relationships/:relationshipId/waypoints
func (h *RelationshipHandler) UpdateWaypoints(c *gin.Context) {
	var req relationshipWaypointsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.Fail(c, http.StatusBadRequest, err, "Invalid request body")
		return
	}

	rel, err := h.relationshipService.UpdateWaypoints(c.Param("relationshipId"), req.Waypoints)
	if err != nil {
		responses.Fail(c, http.StatusNotFound, err, "Failed to update waypoints")
		return
	}

	responses.Success(c, http.StatusOK, rel, "Waypoints updated successfully")
}

// DeleteRelationship handles DELETE /api/v1/projects/:id/relationships/:relationshipId
func (h *RelationshipHandler) DeleteRelationship(c *gin.Context) {
	if err := h.relationshipService.DeleteRelationship(c.Param("relationshipId")); err != nil {
		responses.Fail(c, http.StatusNotFound, err, "Failed to delete relationship")
		return
	}

	responses.Success(c, http.StatusOK, nil, "Relationship deleted successfully")
}
