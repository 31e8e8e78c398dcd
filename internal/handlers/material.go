package handlers

import (
  "errors"
  "fmt"
  "net/http"
  "github.com/gin-gonic/gin"
  "github.com/playmatter/playdate-backend/internal/logger"
  "github.com/playmatter/playdate-backend/internal/normalization"
  "github.com/playmatter/playdate-backend/internal/repos"
  "github.com/playmatter/playdate-backend/internal/services"
)

type MaterialHandler struct {
  log            *logger.Logger
  catalogService services.CatalogService
}

func NewMaterialHandler(log *logger.Logger, catalogService services.CatalogService) *MaterialHandler {
  return &MaterialHandler{
    log:            log.With("handler", "MaterialHandler"),
    catalogService: catalogService,
  }
}

// GET /api/materials
func (h *MaterialHandler) List(c *gin.Context) {
  rows, err := h.catalogService.ListMaterials(c.Request.Context())
  if err != nil {
    h.log.Error("List materials failed", "error", err)
    RespondError(c, http.StatusInternalServerError, "list_materials_failed", err)
    return
  }
  RespondOK(c, gin.H{"materials": rows})
}

// GET /api/materials/:slug
func (h *MaterialHandler) Get(c *gin.Context) {
  slug := normalization.ParseInputString(c.Param("slug"))
  if slug == "" {
    RespondError(c, http.StatusBadRequest, "missing_slug", fmt.Errorf("A material slug is required"))
    return
  }
  row, err := h.catalogService.GetMaterial(c.Request.Context(), slug)
  if err != nil {
    if errors.Is(err, repos.ErrNotFound) {
      RespondError(c, http.StatusNotFound, "material_not_found", fmt.Errorf("No material found for slug %q", slug))
      return
    }
    h.log.Error("Get material failed", "error", err, "slug", slug)
    RespondError(c, http.StatusInternalServerError, "get_material_failed", err)
    return
  }
  RespondOK(c, gin.H{"material": row})
}
