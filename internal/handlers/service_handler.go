package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/salonhub/salon-api/internal/audit"
	domain "github.com/salonhub/salon-api/internal/domain/service"
	"github.com/salonhub/salon-api/internal/dto"
	"github.com/salonhub/salon-api/internal/httperr"
	"github.com/salonhub/salon-api/internal/httpresp"
	"github.com/salonhub/salon-api/internal/models"
)

// Catálogo de serviços do salão
type ServiceHandler struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewServiceHandler(repo domain.Repository, audit *audit.Dispatcher) *ServiceHandler {
	return &ServiceHandler{repo: repo, audit: audit}
}

func (h *ServiceHandler) List(c *gin.Context) {
	services, err := h.repo.List(c.Request.Context(), c.Query("sort"))
	if err != nil {
		httperr.FromError(c, "service", err)
		return
	}
	httpresp.OK(c, services)
}

func (h *ServiceHandler) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	svc, err := h.repo.Get(c.Request.Context(), id)
	if err != nil {
		httperr.FromError(c, "service", err)
		return
	}
	httpresp.OK(c, svc)
}

func (h *ServiceHandler) Create(c *gin.Context) {
	var req dto.CreateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c, err)
		return
	}

	svc, err := h.repo.Create(c.Request.Context(), &models.Service{
		Name:        req.Name,
		Description: req.Description,
		Price:       *req.Price,
		Duration:    *req.Duration,
	})
	if err != nil {
		httperr.FromError(c, "service", err)
		return
	}

	h.audit.Dispatch(audit.Event{
		Action:   "service_created",
		Entity:   "service",
		EntityID: &svc.ID,
		Metadata: map[string]any{"name": svc.Name, "price": svc.Price},
	})
	httpresp.Created(c, svc)
}

func (h *ServiceHandler) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req dto.UpdateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c, err)
		return
	}

	svc, err := h.repo.Update(c.Request.Context(), id, domain.Patch{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Duration:    req.Duration,
	})
	if err != nil {
		httperr.FromError(c, "service", err)
		return
	}

	h.audit.Dispatch(audit.Event{Action: "service_updated", Entity: "service", EntityID: &svc.ID})
	httpresp.OK(c, svc)
}

func (h *ServiceHandler) Delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.repo.Delete(c.Request.Context(), id); err != nil {
		httperr.FromError(c, "service", err)
		return
	}

	h.audit.Dispatch(audit.Event{Action: "service_deleted", Entity: "service", EntityID: &id})
	httpresp.NoContent(c)
}
