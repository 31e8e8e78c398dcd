package handlers

import (
  "fmt"
  "net/http"
  "github.com/gin-gonic/gin"
  "github.com/google/uuid"
  "github.com/playmatter/playdate-backend/internal/logger"
  "github.com/playmatter/playdate-backend/internal/requestdata"
  "github.com/playmatter/playdate-backend/internal/services"
)

type EntitlementHandler struct {
  log                *logger.Logger
  entitlementService services.EntitlementService
  auditService       services.AuditService
}

func NewEntitlementHandler(log *logger.Logger, entitlementService services.EntitlementService, auditService services.AuditService) *EntitlementHandler {
  return &EntitlementHandler{
    log:                log.With("handler", "EntitlementHandler"),
    entitlementService: entitlementService,
    auditService:       auditService,
  }
}

type entitlementRequest struct {
  OrganizationID string `json:"organization_id"`
  PackID         string `json:"pack_id"`
  Source         string `json:"source"`
}

func (r entitlementRequest) parse() (uuid.UUID, uuid.UUID, error) {
  orgID, err := uuid.Parse(r.OrganizationID)
  if err != nil {
    return uuid.Nil, uuid.Nil, fmt.Errorf("Invalid organization_id: %w", err)
  }
  packID, err := uuid.Parse(r.PackID)
  if err != nil {
    return uuid.Nil, uuid.Nil, fmt.Errorf("Invalid pack_id: %w", err)
  }
  return orgID, packID, nil
}

// POST /api/admin/entitlements
func (h *EntitlementHandler) Grant(c *gin.Context) {
  var req entitlementRequest
  if err := c.ShouldBindJSON(&req); err != nil {
    RespondError(c, http.StatusBadRequest, "invalid_body", err)
    return
  }
  orgID, packID, err := req.parse()
  if err != nil {
    RespondError(c, http.StatusBadRequest, "invalid_ids", err)
    return
  }
  if err := h.entitlementService.Grant(c.Request.Context(), orgID, packID, req.Source); err != nil {
    h.log.Error("Entitlement grant failed", "error", err)
    RespondError(c, http.StatusInternalServerError, "grant_failed", err)
    return
  }
  h.recordAudit(c, orgID, packID, "entitlement.grant")
  RespondOK(c, gin.H{"granted": true})
}

// DELETE /api/admin/entitlements
func (h *EntitlementHandler) Revoke(c *gin.Context) {
  var req entitlementRequest
  if err := c.ShouldBindJSON(&req); err != nil {
    RespondError(c, http.StatusBadRequest, "invalid_body", err)
    return
  }
  orgID, packID, err := req.parse()
  if err != nil {
    RespondError(c, http.StatusBadRequest, "invalid_ids", err)
    return
  }
  if err := h.entitlementService.Revoke(c.Request.Context(), orgID, packID); err != nil {
    h.log.Error("Entitlement revoke failed", "error", err)
    RespondError(c, http.StatusInternalServerError, "revoke_failed", err)
    return
  }
  h.recordAudit(c, orgID, packID, "entitlement.revoke")
  RespondOK(c, gin.H{"revoked": true})
}

func (h *EntitlementHandler) recordAudit(c *gin.Context, orgID, packID uuid.UUID, action string) {
  rd := requestdata.GetRequestData(c.Request.Context())
  if rd == nil {
    return
  }
  userID := rd.UserID
  h.auditService.Record(c.Request.Context(), &userID, &orgID, "pack", packID.String(), action, c.ClientIP(), nil)
}
