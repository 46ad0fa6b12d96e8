package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/blake-brooks-88/DataCloudDiscovery-sub001/internal/handlers"
)

type RelationshipRoutes struct {
	handler *handlers.RelationshipHandler
}

func NewRelationshipRoutes(handler *handlers.RelationshipHandler) *RelationshipRoutes {
	return &RelationshipRoutes{handler: handler}
}

func (r *RelationshipRoutes) RegisterRoutes(router *gin.RouterGroup) {
	relationships := router.Group("/projects/:id/relationships")
	{
		relationships.POST("", r.handler.CreateRelationship)
		relationships.GET("", r.handler.ListRelationships)
		relationships.GET("/:relationshipId", r.handler.GetRelationship)
		relationships.PUT("/:relationshipId", r.handler.UpdateRelationship)
		relationships.PUT("/:relationshipId/waypoints", r.handler.UpdateWaypoints)
		relationships.DELETE("/:relationshipId", r.handler.DeleteRelationship)
	}
}
