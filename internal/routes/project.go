package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/blake-brooks-88/DataCloudDiscovery-sub001/internal/handlers"
)

type ProjectRoutes struct {
	handler  *handlers.ProjectHandler
	exchange *handlers.ExchangeHandler
}

func NewProjectRoutes(handler *handlers.ProjectHandler, exchange *handlers.ExchangeHandler) *ProjectRoutes {
	return &ProjectRoutes{handler: handler, exchange: exchange}
}

func (r *ProjectRoutes) RegisterRoutes(router *gin.RouterGroup) {
	projects := router.Group("/projects")
	{
		projects.POST("", r.handler.CreateProject)
		projects.GET("", r.handler.ListProjects)
		projects.GET("/:id", r.handler.GetProject)
		projects.PUT("/:id", r.handler.UpdateProject)
		projects.DELETE("/:id", r.handler.DeleteProject)
		projects.GET("/:id/export", r.exchange.ExportProject)
	}
}
