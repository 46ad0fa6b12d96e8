package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/blake-brooks-88/DataCloudDiscovery-sub001/internal/handlers"
)

type DiagramRoutes struct {
	handler *handlers.DiagramHandler
}

func NewDiagramRoutes(handler *handlers.DiagramHandler) *DiagramRoutes {
	return &DiagramRoutes{handler: handler}
}

func (r *DiagramRoutes) RegisterRoutes(router *gin.RouterGroup) {
	diagram := router.Group("/projects/:id/diagram")
	{
		diagram.GET("", r.handler.RenderDiagram)
		diagram.GET("/fit", r.handler.FitDiagram)
	}
}
