package handlers

import (
  "net/http"
  "github.com/gin-gonic/gin"
  "github.com/playmatter/playdate-backend/internal/logger"
  "github.com/playmatter/playdate-backend/internal/services"
)

type PackHandler struct {
  log            *logger.Logger
  catalogService services.CatalogService
}

func NewPackHandler(log *logger.Logger, catalogService services.CatalogService) *PackHandler {
  return &PackHandler{
    log:            log.With("handler", "PackHandler"),
    catalogService: catalogService,
  }
}

// GET /api/packs
func (h *PackHandler) List(c *gin.Context) {
  packs, err := h.catalogService.ListPacks(c.Request.Context())
  if err != nil {
    h.log.Error("List packs failed", "error", err)
    RespondError(c, http.StatusInternalServerError, "list_packs_failed", err)
    return
  }
  RespondOK(c, gin.H{"packs": packs})
}
