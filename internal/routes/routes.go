package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/salonhub/salon-api/internal/audit"
	"github.com/salonhub/salon-api/internal/config"
	"github.com/salonhub/salon-api/internal/db"
	"github.com/salonhub/salon-api/internal/handlers"
	infraRepo "github.com/salonhub/salon-api/internal/infra/repository"
	"github.com/salonhub/salon-api/internal/middleware"
	"github.com/salonhub/salon-api/internal/report"
	"github.com/salonhub/salon-api/internal/store"
	"github.com/salonhub/salon-api/internal/timezone"
	ucAppointment "github.com/salonhub/salon-api/internal/usecase/appointment"
)

// Deps are the process wide singletons the routes are built on.
type Deps struct {
	Config   *config.Config
	Provider *db.Provider
	Store    *store.Store
	Audit    *audit.Dispatcher
	Clock    timezone.Clock
}

func RegisterRoutes(r *gin.Engine, d Deps) {

	// ======================================================
	// MIDDLEWARE GLOBAL
	// ======================================================
	r.Use(
		middleware.RequestID(),
		middleware.AccessLog(),
		middleware.CORSMiddleware(d.Config.AllowedOrigins()),
	)

	// ======================================================
	// INFRA
	// ======================================================
	appointmentRepo := infraRepo.NewAppointmentRepository(d.Store)
	clientRepo := infraRepo.NewClientRepository(d.Store)
	serviceRepo := infraRepo.NewServiceRepository(d.Store)
	auditLogRepo := infraRepo.NewAuditLogRepository(d.Store)

	reports := report.NewService(d.Store, d.Clock, d.Config.Salon.SlotsPerDay)

	paging := handlers.Paging{
		Default: d.Config.API.DefaultPageSize,
		Max:     d.Config.API.MaxPageSize,
	}

	// ======================================================
	// USE CASES (APPOINTMENTS)
	// ======================================================
	listAppointmentsUC := ucAppointment.NewListAppointments(appointmentRepo)

	appointmentUC := handlers.AppointmentUseCases{
		Create:   ucAppointment.NewCreateAppointment(appointmentRepo, clientRepo, d.Audit),
		Update:   ucAppointment.NewUpdateAppointment(appointmentRepo, clientRepo, d.Audit),
		Complete: ucAppointment.NewCompleteAppointment(appointmentRepo, clientRepo, d.Audit, d.Clock),
		Cancel:   ucAppointment.NewCancelAppointment(appointmentRepo, d.Audit),
		List:     listAppointmentsUC,
		Get:      ucAppointment.NewGetAppointment(appointmentRepo),
		Delete:   ucAppointment.NewDeleteAppointment(appointmentRepo, d.Audit),
	}

	// ======================================================
	// HANDLERS
	// ======================================================
	healthHandler := handlers.NewHealthHandler(d.Provider)
	appointmentHandler := handlers.NewAppointmentHandler(appointmentUC, paging)
	clientHandler := handlers.NewClientHandler(clientRepo, listAppointmentsUC, d.Audit, paging)
	serviceHandler := handlers.NewServiceHandler(serviceRepo, d.Audit)
	reportHandler := handlers.NewReportHandler(reports)
	auditLogsHandler := handlers.NewAuditLogsHandler(auditLogRepo, paging)

	r.GET("/health", healthHandler.Check)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// ------------------------------
	// APPOINTMENTS
	// ------------------------------
	appointments := r.Group("/appointments")
	{
		appointments.GET("", appointmentHandler.List)
		appointments.POST("", appointmentHandler.Create)
		appointments.GET("/:id", appointmentHandler.Get)
		appointments.PUT("/:id", appointmentHandler.Update)
		appointments.DELETE("/:id", appointmentHandler.Delete)
		appointments.PATCH("/:id/complete", appointmentHandler.Complete)
		appointments.PATCH("/:id/cancel", appointmentHandler.Cancel)
	}

	// ------------------------------
	// CLIENTS
	// ------------------------------
	clients := r.Group("/clients")
	{
		clients.GET("", clientHandler.List)
		clients.POST("", clientHandler.Create)
		clients.GET("/:id", clientHandler.Get)
		clients.PUT("/:id", clientHandler.Update)
		clients.DELETE("/:id", clientHandler.Delete)
		clients.GET("/:id/appointments", clientHandler.Appointments)
	}

	// ------------------------------
	// SERVICES
	// ------------------------------
	services := r.Group("/services")
	{
		services.GET("", serviceHandler.List)
		services.POST("", serviceHandler.Create)
		services.GET("/:id", serviceHandler.Get)
		services.PUT("/:id", serviceHandler.Update)
		services.DELETE("/:id", serviceHandler.Delete)
	}

	// ------------------------------
	// DASHBOARD
	// ------------------------------
	r.GET("/stats", reportHandler.Stats)

	reportsGroup := r.Group("/reports")
	{
		reportsGroup.GET("/revenue", reportHandler.Revenue)
		reportsGroup.GET("/appointments", reportHandler.Appointments)
		reportsGroup.GET("/services", reportHandler.Services)
		reportsGroup.GET("/clients", reportHandler.Clients)
		reportsGroup.GET("/summary", reportHandler.Summary)
	}

	r.GET("/audit-logs", auditLogsHandler.List)
}
