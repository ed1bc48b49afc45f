package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/salonhub/salon-api/internal/audit"
	apptDomain "github.com/salonhub/salon-api/internal/domain/appointment"
	domain "github.com/salonhub/salon-api/internal/domain/client"
	"github.com/salonhub/salon-api/internal/dto"
	"github.com/salonhub/salon-api/internal/httperr"
	"github.com/salonhub/salon-api/internal/httpresp"
	"github.com/salonhub/salon-api/internal/models"
	"github.com/salonhub/salon-api/internal/pagination"
	ucAppointment "github.com/salonhub/salon-api/internal/usecase/appointment"
)

type ClientHandler struct {
	repo         domain.Repository
	appointments *ucAppointment.ListAppointments
	audit        *audit.Dispatcher
	paging       Paging
}

func NewClientHandler(
	repo domain.Repository,
	appointments *ucAppointment.ListAppointments,
	audit *audit.Dispatcher,
	paging Paging,
) *ClientHandler {
	return &ClientHandler{
		repo:         repo,
		appointments: appointments,
		audit:        audit,
		paging:       paging,
	}
}

// ======================================================
// LIST CLIENTS
// ======================================================

func (h *ClientHandler) List(c *gin.Context) {
	var q dto.ListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		invalidRequest(c, err)
		return
	}

	page, limit := h.paging.normalize(q.Page, q.Limit)
	ctx := c.Request.Context()
	f := domain.ListFilter{Search: q.Search, Sort: q.Sort}

	total, err := h.repo.Count(ctx, f)
	if err != nil {
		httperr.FromError(c, "client", err)
		return
	}

	w := pagination.Paginate(total, page, limit)
	clients, err := h.repo.Find(ctx, f, limit, w.Offset)
	if err != nil {
		httperr.FromError(c, "client", err)
		return
	}

	httpresp.Paged(c, pagination.NewPage(clients, total, page, limit))
}

func (h *ClientHandler) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	client, err := h.repo.Get(c.Request.Context(), id)
	if err != nil {
		httperr.FromError(c, "client", err)
		return
	}
	httpresp.OK(c, client)
}

// Appointments lists the appointments linked to one client.
func (h *ClientHandler) Appointments(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var q dto.AppointmentListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		invalidRequest(c, err)
		return
	}

	ctx := c.Request.Context()
	if _, err := h.repo.Get(ctx, id); err != nil {
		httperr.FromError(c, "client", err)
		return
	}

	page, limit := h.paging.normalize(q.Page, q.Limit)
	result, err := h.appointments.Execute(ctx, apptDomain.ListFilter{
		Status:   q.Status,
		Date:     q.Date,
		Search:   q.Search,
		Sort:     q.Sort,
		ClientID: &id,
	}, page, limit)
	if err != nil {
		httperr.FromError(c, "appointment", err)
		return
	}
	httpresp.Paged(c, result)
}

// ======================================================
// WRITE
// ======================================================

func (h *ClientHandler) Create(c *gin.Context) {
	var req dto.CreateClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c, err)
		return
	}

	client, err := h.repo.Create(c.Request.Context(), &models.Client{
		Name:  req.Name,
		Phone: req.Phone,
		Email: req.Email,
	})
	if err != nil {
		httperr.FromError(c, "client", err)
		return
	}

	h.audit.Dispatch(audit.Event{Action: "client_created", Entity: "client", EntityID: &client.ID})
	httpresp.Created(c, client)
}

func (h *ClientHandler) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req dto.UpdateClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c, err)
		return
	}

	client, err := h.repo.Update(c.Request.Context(), id, domain.Patch{
		Name:  req.Name,
		Phone: req.Phone,
		Email: req.Email,
	})
	if err != nil {
		httperr.FromError(c, "client", err)
		return
	}

	h.audit.Dispatch(audit.Event{Action: "client_updated", Entity: "client", EntityID: &client.ID})
	httpresp.OK(c, client)
}

func (h *ClientHandler) Delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.repo.Delete(c.Request.Context(), id); err != nil {
		httperr.FromError(c, "client", err)
		return
	}

	h.audit.Dispatch(audit.Event{Action: "client_deleted", Entity: "client", EntityID: &id})
	httpresp.NoContent(c)
}
