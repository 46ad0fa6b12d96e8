package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/blake-brooks-88/DataCloudDiscovery-sub001/internal/responses"
	"github.com/blake-brooks-88/DataCloudDiscovery-sub001/internal/services"
)

type DiagramHandler struct {
	diagramService *services.DiagramService
}

func NewDiagramHandler(diagramService *services.DiagramService) *DiagramHandler {
	return &DiagramHandler{diagramService: diagramService}
}

// RenderDiagram handles GET /api/v1/projects/:id/diagram
//
// Query parameters: zoom, pan_x, pan_y, search, selected. Out-of-range zoom
// is clamped.
func (h *DiagramHandler) RenderDiagram(c *gin.Context) {
	var req services.RenderRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		responses.Fail(c, http.StatusBadRequest, err, "Invalid query parameters")
		return
	}

	commands, err := h.diagramService.RenderProject(c.Param("id"), req)
	if err != nil {
		responses.Fail(c, http.StatusNotFound, err, "Failed to render diagram")
		return
	}

	responses.Success(c, http.StatusOK, commands, "Diagram rendered successfully")
}

// FitDiagram handles GET /api/v1/projects/:id/diagram/fit
//
// Returns the viewport that frames every entity in a width x height screen.
func (h *DiagramHandler) FitDiagram(c *gin.Context) {
	width, err := strconv.ParseFloat(c.DefaultQuery("width", "1280"), 64)
	if err != nil || width <= 0 {
		responses.Fail(c, http.StatusBadRequest, err, "Invalid width")
		return
	}
	height, err := strconv.ParseFloat(c.DefaultQuery("height", "800"), 64)
	if err != nil || height <= 0 {
		responses.Fail(c, http.StatusBadRequest, err, "Invalid height")
		return
	}

	viewport, err := h.diagramService.FitViewport(c.Param("id"), width, height)
	if err != nil {
		responses.Fail(c, http.StatusNotFound, err, "Failed to fit diagram")
		return
	}

	responses.Success(c, http.StatusOK, viewport, "Viewport computed successfully")
}
