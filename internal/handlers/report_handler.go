package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/salonhub/salon-api/internal/dto"
	"github.com/salonhub/salon-api/internal/httperr"
	"github.com/salonhub/salon-api/internal/httpresp"
	"github.com/salonhub/salon-api/internal/report"
)

// Relatórios do dashboard. As consultas nunca falham: em erro o serviço
// devolve o payload padrão.
type ReportHandler struct {
	reports *report.Service
}

func NewReportHandler(reports *report.Service) *ReportHandler {
	return &ReportHandler{reports: reports}
}

func (h *ReportHandler) timeFrame(c *gin.Context) (report.TimeFrame, bool) {
	var q dto.ReportQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		httperr.FromError(c, "report", httperr.ErrBusiness(httperr.CodeInvalidTimeFrame))
		return "", false
	}

	tf, err := report.ParseTimeFrame(q.TimeFrame)
	if err != nil {
		httperr.FromError(c, "report", httperr.ErrBusiness(httperr.CodeInvalidTimeFrame))
		return "", false
	}
	return tf, true
}

func (h *ReportHandler) Revenue(c *gin.Context) {
	tf, ok := h.timeFrame(c)
	if !ok {
		return
	}
	httpresp.OK(c, h.reports.Revenue(c.Request.Context(), tf))
}

func (h *ReportHandler) Appointments(c *gin.Context) {
	tf, ok := h.timeFrame(c)
	if !ok {
		return
	}
	httpresp.OK(c, h.reports.Appointments(c.Request.Context(), tf))
}

func (h *ReportHandler) Services(c *gin.Context) {
	httpresp.OK(c, h.reports.Services(c.Request.Context()))
}

func (h *ReportHandler) Clients(c *gin.Context) {
	httpresp.OK(c, h.reports.Clients(c.Request.Context()))
}

func (h *ReportHandler) Summary(c *gin.Context) {
	var q dto.SummaryQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		httperr.BadRequest(c, "invalid_report_query", "Parâmetros do relatório inválidos.")
		return
	}

	metric, err := report.ParseMetric(q.ReportType)
	if err != nil {
		httperr.BadRequest(c, "invalid_report_type", "Tipo de relatório inválido.")
		return
	}

	tf, err := report.ParseTimeFrame(q.TimeFrame)
	if err != nil {
		httperr.FromError(c, "report", httperr.ErrBusiness(httperr.CodeInvalidTimeFrame))
		return
	}

	httpresp.OK(c, h.reports.Summary(c.Request.Context(), metric, tf))
}

// Stats serves the dashboard cards.
func (h *ReportHandler) Stats(c *gin.Context) {
	stats, err := h.reports.Dashboard(c.Request.Context())
	if err != nil {
		httperr.FromError(c, "stats", err)
		return
	}
	httpresp.OK(c, stats)
}
