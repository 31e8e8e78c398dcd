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

type PlaydateHandler struct {
  log            *logger.Logger
  catalogService services.CatalogService
  matchService   services.MatchService
}

func NewPlaydateHandler(log *logger.Logger, catalogService services.CatalogService, matchService services.MatchService) *PlaydateHandler {
  return &PlaydateHandler{
    log:            log.With("handler", "PlaydateHandler"),
    catalogService: catalogService,
    matchService:   matchService,
  }
}

// GET /api/playdates
func (h *PlaydateHandler) List(c *gin.Context) {
  rows, err := h.catalogService.ListPlaydates(c.Request.Context())
  if err != nil {
    h.log.Error("List playdates failed", "error", err)
    RespondError(c, http.StatusInternalServerError, "list_playdates_failed", err)
    return
  }
  RespondOK(c, gin.H{"playdates": rows})
}

// GET /api/playdates/:slug
func (h *PlaydateHandler) Get(c *gin.Context) {
  slug := normalization.ParseInputString(c.Param("slug"))
  if slug == "" {
    RespondError(c, http.StatusBadRequest, "missing_slug", fmt.Errorf("A playdate slug is required"))
    return
  }
  row, err := h.catalogService.GetPlaydate(c.Request.Context(), slug)
  if err != nil {
    if errors.Is(err, repos.ErrNotFound) {
      RespondError(c, http.StatusNotFound, "playdate_not_found", fmt.Errorf("No playdate found for slug %q", slug))
      return
    }
    h.log.Error("Get playdate failed", "error", err, "slug", slug)
    RespondError(c, http.StatusInternalServerError, "get_playdate_failed", err)
    return
  }
  RespondOK(c, gin.H{"playdate": row})
}

// matchRequest decodes the five facet arrays loosely: entries that are not
// strings are dropped during normalization instead of failing the request.
type matchRequest struct {
  Materials    []any `json:"materials"`
  Forms        []any `json:"forms"`
  Slots        []any `json:"slots"`
  Contexts     []any `json:"contexts"`
  EnergyLevels []any `json:"energyLevels"`
}

// POST /api/playdates/match
func (h *PlaydateHandler) Match(c *gin.Context) {
  var req matchRequest
  if err := c.ShouldBindJSON(&req); err != nil {
    RespondError(c, http.StatusBadRequest, "invalid_body", err)
    return
  }
  input := services.MatchInput{
    Materials:    normalization.ParseLooseStringSlice(req.Materials),
    Forms:        normalization.ParseLooseStringSlice(req.Forms),
    Slots:        normalization.ParseLooseStringSlice(req.Slots),
    Contexts:     normalization.ParseLooseStringSlice(req.Contexts),
    EnergyLevels: normalization.ParseLooseStringSlice(req.EnergyLevels),
  }
  if input.Empty() {
    RespondError(c, http.StatusBadRequest, "empty_filters",
      fmt.Errorf("At least one of materials, forms, slots, contexts or energyLevels must be non-empty"))
    return
  }
  rows, err := h.matchService.Match(c.Request.Context(), input)
  if err != nil {
    h.log.Error("Playdate match failed", "error", err)
    RespondError(c, http.StatusInternalServerError, "match_failed", err)
    return
  }
  RespondOK(c, gin.H{"matches": rows})
}
