package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/salonhub/salon-api/internal/dto"
	"github.com/salonhub/salon-api/internal/httperr"
	"github.com/salonhub/salon-api/internal/httpresp"
	infraRepo "github.com/salonhub/salon-api/internal/infra/repository"
	"github.com/salonhub/salon-api/internal/pagination"
)

// ======================================================
// HANDLER
// ======================================================

type AuditLogsHandler struct {
	repo   *infraRepo.AuditLogRepository
	paging Paging
}

func NewAuditLogsHandler(repo *infraRepo.AuditLogRepository, paging Paging) *AuditLogsHandler {
	return &AuditLogsHandler{repo: repo, paging: paging}
}

func (h *AuditLogsHandler) List(c *gin.Context) {
	var q dto.AuditLogListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		invalidRequest(c, err)
		return
	}

	page, limit := h.paging.normalize(q.Page, q.Limit)
	ctx := c.Request.Context()

	// --------------------------------------------------
	// Filtros opcionais
	// --------------------------------------------------

	f := infraRepo.AuditLogFilter{Action: q.Action, Entity: q.Entity}

	// --------------------------------------------------
	// Total
	// --------------------------------------------------

	total, err := h.repo.Count(ctx, f)
	if err != nil {
		httperr.FromError(c, "audit_log", err)
		return
	}

	// --------------------------------------------------
	// Listagem
	// --------------------------------------------------

	w := pagination.Paginate(total, page, limit)
	logs, err := h.repo.Find(ctx, f, limit, w.Offset)
	if err != nil {
		httperr.FromError(c, "audit_log", err)
		return
	}

	httpresp.Paged(c, pagination.NewPage(logs, total, page, limit))
}
