package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/blake-brooks-88/DataCloudDiscovery-sub001/internal/responses"
	"github.com/blake-brooks-88/DataCloudDiscovery-sub001/internal/services"
)

type ExchangeHandler struct {
	exchangeService *services.ExchangeService
}

func NewExchangeHandler(exchangeService *services.ExchangeService) *ExchangeHandler {
	return &ExchangeHandler{exchangeService: exchangeService}
}

// ExportProject handles GET /api/v1/projects/:id/export
func (h *ExchangeHandler) ExportProject(c *gin.Context) {
	doc, err := h.exchangeService.Export(c.Param("id"))
	if err != nil {
		responses.Fail(c, http.StatusNotFound, err, "Failed to export project")
		return
	}

	responses.Success(c, http.StatusOK, doc, "Project exported successfully")
}

// ImportProject handles POST /api/v1/import
func (h *ExchangeHandler) ImportProject(c *gin.Context) {
	var doc services.ProjectDocument
	if err := c.ShouldBindJSON(&doc); err != nil {
		responses.Fail(c, http.StatusBadRequest, err, "Invalid project document")
		return
	}

	project, err := h.exchangeService.Import(doc)
	if err != nil {
		responses.Fail(c, http.StatusBadRequest, err, "Failed to import project")
		return
	}

	responses.Success(c, http.StatusCreated, project, "Project imported successfully")
}
