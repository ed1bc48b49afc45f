package handlers

import (
	"github.com/gin-gonic/gin"

	domain "github.com/salonhub/salon-api/internal/domain/appointment"
	"github.com/salonhub/salon-api/internal/dto"
	"github.com/salonhub/salon-api/internal/httperr"
	"github.com/salonhub/salon-api/internal/httpresp"
	ucAppointment "github.com/salonhub/salon-api/internal/usecase/appointment"
)

// ======================================================
// HANDLER
// ======================================================

type AppointmentHandler struct {
	create   *ucAppointment.CreateAppointment
	update   *ucAppointment.UpdateAppointment
	complete *ucAppointment.CompleteAppointment
	cancel   *ucAppointment.CancelAppointment
	list     *ucAppointment.ListAppointments
	get      *ucAppointment.GetAppointment
	delete   *ucAppointment.DeleteAppointment
	paging   Paging
}

type AppointmentUseCases struct {
	Create   *ucAppointment.CreateAppointment
	Update   *ucAppointment.UpdateAppointment
	Complete *ucAppointment.CompleteAppointment
	Cancel   *ucAppointment.CancelAppointment
	List     *ucAppointment.ListAppointments
	Get      *ucAppointment.GetAppointment
	Delete   *ucAppointment.DeleteAppointment
}

func NewAppointmentHandler(uc AppointmentUseCases, paging Paging) *AppointmentHandler {
	return &AppointmentHandler{
		create:   uc.Create,
		update:   uc.Update,
		complete: uc.Complete,
		cancel:   uc.Cancel,
		list:     uc.List,
		get:      uc.Get,
		delete:   uc.Delete,
		paging:   paging,
	}
}

// ======================================================
// LIST
// ======================================================

func (h *AppointmentHandler) List(c *gin.Context) {
	var q dto.AppointmentListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		invalidRequest(c, err)
		return
	}

	page, limit := h.paging.normalize(q.Page, q.Limit)

	result, err := h.list.Execute(c.Request.Context(), domain.ListFilter{
		Status: q.Status,
		Date:   q.Date,
		Search: q.Search,
		Sort:   q.Sort,
	}, page, limit)
	if err != nil {
		httperr.FromError(c, "appointment", err)
		return
	}

	httpresp.Paged(c, result)
}

func (h *AppointmentHandler) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	ap, err := h.get.Execute(c.Request.Context(), id)
	if err != nil {
		httperr.FromError(c, "appointment", err)
		return
	}
	httpresp.OK(c, ap)
}

// ======================================================
// WRITE
// ======================================================

func (h *AppointmentHandler) Create(c *gin.Context) {
	var req dto.CreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c, err)
		return
	}

	ap, err := h.create.Execute(c.Request.Context(), ucAppointment.CreateAppointmentInput{
		Service:  req.Service,
		Date:     req.Date,
		Time:     req.Time,
		Name:     req.Name,
		Phone:    req.Phone,
		ClientID: req.ClientID,
		Status:   req.Status,
	})
	if err != nil {
		httperr.FromError(c, "appointment", err)
		return
	}
	httpresp.Created(c, ap)
}

func (h *AppointmentHandler) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req dto.UpdateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c, err)
		return
	}

	ap, err := h.update.Execute(c.Request.Context(), id, domain.Patch{
		Service:  req.Service,
		Date:     req.Date,
		Time:     req.Time,
		Name:     req.Name,
		Phone:    req.Phone,
		ClientID: req.ClientID,
		Status:   req.Status,
	})
	if err != nil {
		httperr.FromError(c, "appointment", err)
		return
	}
	httpresp.OK(c, ap)
}

func (h *AppointmentHandler) Complete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	ap, err := h.complete.Execute(c.Request.Context(), id)
	if err != nil {
		httperr.FromError(c, "appointment", err)
		return
	}
	httpresp.OK(c, ap)
}

func (h *AppointmentHandler) Cancel(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	ap, err := h.cancel.Execute(c.Request.Context(), id)
	if err != nil {
		httperr.FromError(c, "appointment", err)
		return
	}
	httpresp.OK(c, ap)
}

func (h *AppointmentHandler) Delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.delete.Execute(c.Request.Context(), id); err != nil {
		httperr.FromError(c, "appointment", err)
		return
	}
	httpresp.NoContent(c)
}
