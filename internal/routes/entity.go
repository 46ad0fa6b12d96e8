package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/blake-brooks-88/DataCloudDiscovery-sub001/internal/handlers"
)

type EntityRoutes struct {
	handler *handlers.EntityHandler
}

func NewEntityRoutes(handler *handlers.EntityHandler) *EntityRoutes {
	return &EntityRoutes{handler: handler}
}

func (r *EntityRoutes) RegisterRoutes(router *gin.RouterGroup) {
	entities := router.Group("/projects/:id/entities")
	{
		entities.POST("", r.handler.CreateEntity)
		entities.GET("", r.handler.ListEntities)
		entities.GET("/:entityId", r.handler.GetEntity)
		entities.PUT("/:entityId", r.handler.UpdateEntity)
		entities.PATCH("/:entityId/position", r.handler.UpdateEntityPosition)
		entities.PUT("/:entityId/fields/:fieldId/waypoints", r.handler.UpdateFieldWaypoints)
		entities.DELETE("/:entityId", r.handler.DeleteEntity)
	}
}
