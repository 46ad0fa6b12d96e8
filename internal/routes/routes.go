package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/blake-brooks-88/DataCloudDiscovery-sub001/internal/handlers"
)

func RegisterRoutes(
	router *gin.Engine,
	projectHandler *handlers.ProjectHandler,
	entityHandler *handlers.EntityHandler,
	relationshipHandler *handlers.RelationshipHandler,
	diagramHandler *handlers.DiagramHandler,
	exchangeHandler *handlers.ExchangeHandler,
) {
	api := router.Group("/api/v1")

	projectRoutes := NewProjectRoutes(projectHandler, exchangeHandler)
	projectRoutes.RegisterRoutes(api)

	entityRoutes := NewEntityRoutes(entityHandler)
	entityRoutes.RegisterRoutes(api)

	relationshipRoutes := NewRelationshipRoutes(relationshipHandler)
	relationshipRoutes.RegisterRoutes(api)

	diagramRoutes := NewDiagramRoutes(diagramHandler)
	diagramRoutes.RegisterRoutes(api)

	api.POST("/import", exchangeHandler.ImportProject)

	router.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "ok",
		})
	})
}
