package handlers

import (
	"net/http"

	portssvc "github.com/SscSPs/bank_ledger_app/internal/core/ports/services"
	"github.com/SscSPs/bank_ledger_app/internal/dto"
	"github.com/gin-gonic/gin"
)

type logsHandler struct {
	auditService portssvc.AuditSvc
}

func registerLogRoutes(rg *gin.RouterGroup, auditService portssvc.AuditSvc) {
	h := &logsHandler{auditService: auditService}
	rg.POST("/logs", h.createLog)
}

// createLog godoc
// @Summary Record a client log entry
// @Description Stores a log entry reported by a client, attributed to the caller
// @Tags logs
// @Accept  json
// @Produce  json
// @Param   entry body dto.CreateLogRequest true "Log entry"
// @Success 201 {object} map[string]string
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 503 {object} ErrorResponse
// @Security BearerAuth
// @Router /logs [post]
func (h *logsHandler) createLog(c *gin.Context) {
	userID, ok := callerOrAbort(c)
	if !ok {
		return
	}
	var req dto.CreateLogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithBindError(c, err)
		return
	}

	if err := h.auditService.Record(c.Request.Context(), req.ToAuditLog(userID)); err != nil {
		respondWithError(c, err, "Failed to record log")
		return
	}
	c.JSON(http.StatusCreated, gin.H{"status": "recorded"})
}
