package routes

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/barber-booking/internal/audit"
	"github.com/BruksfildServices01/barber-booking/internal/config"
	domain "github.com/BruksfildServices01/barber-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-booking/internal/handlers"
	"github.com/BruksfildServices01/barber-booking/internal/infra/cache"
	"github.com/BruksfildServices01/barber-booking/internal/infra/outbox"
	infraRepo "github.com/BruksfildServices01/barber-booking/internal/infra/repository"
	"github.com/BruksfildServices01/barber-booking/internal/middleware"
	ucAppointment "github.com/BruksfildServices01/barber-booking/internal/usecase/appointment"
)

// Deps are the process-wide singletons built in main.
type Deps struct {
	DB     *gorm.DB
	Redis  *redis.Client // nil disables caching and rate limiting
	Config *config.Config
	Log    *zap.Logger
	Audit  *audit.Dispatcher
	Outbox outbox.BacklogCounter // nil when no publisher runs
}

func RegisterRoutes(r *gin.Engine, deps Deps) {
	cfg := deps.Config
	log := deps.Log

	// ======================================================
	// MIDDLEWARE GLOBAL
	// ======================================================
	r.Use(
		middleware.RequestID(),
		middleware.AccessLog(log),
		middleware.CORSMiddleware(cfg.CORSAllowedOrigins),
	)

	// ======================================================
	// INFRA (SINGLETONS)
	// ======================================================
	appointmentRepo := infraRepo.NewAppointmentGormRepository(deps.DB)

	var occupancyCache domain.OccupancyCache
	if deps.Redis != nil {
		occupancyCache = cache.NewOccupancyCache(deps.Redis, cfg.AvailabilityCacheTTL, log)
	}

	resolver := ucAppointment.NewResolver(appointmentRepo, occupancyCache, time.Now)

	// ======================================================
	// USE CASES
	// ======================================================
	bookUC := ucAppointment.NewBookAppointment(resolver, deps.Audit)
	rescheduleUC := ucAppointment.NewRescheduleAppointment(resolver, deps.Audit)
	cancelUC := ucAppointment.NewCancelAppointment(resolver, deps.Audit)

	// ======================================================
	// HANDLERS
	// ======================================================
	availabilityHandler := handlers.NewAvailabilityHandler(
		ucAppointment.NewGetAvailableSlots(resolver),
		ucAppointment.NewGetAnyBarberSlots(resolver),
		ucAppointment.NewGetAvailableBarbers(resolver),
		ucAppointment.NewGetAvailableServices(resolver),
		ucAppointment.NewGetOccupiedSlots(resolver),
		log,
	)

	appointmentHandler := handlers.NewAppointmentHandler(
		bookUC,
		rescheduleUC,
		ucAppointment.NewGetRescheduleSlots(resolver),
		cancelUC,
		ucAppointment.NewGetEligibility(resolver),
		ucAppointment.NewListAppointmentsByDate(appointmentRepo),
		ucAppointment.NewListAppointmentsByMonth(appointmentRepo),
		log,
	)

	publicHandler := handlers.NewPublicHandler(appointmentRepo, bookUC, log)
	auditLogsHandler := handlers.NewAuditLogsHandler(audit.New(deps.DB), log)

	checks := map[string]handlers.Check{
		"database": func(ctx context.Context) error {
			sqlDB, err := deps.DB.DB()
			if err != nil {
				return err
			}
			return sqlDB.PingContext(ctx)
		},
	}
	if deps.Redis != nil {
		checks["redis"] = func(ctx context.Context) error {
			return deps.Redis.Ping(ctx).Err()
		}
	}
	if deps.Outbox != nil {
		checks["outbox"] = outbox.BacklogCheck(deps.Outbox, cfg.OutboxBacklogLimit)
	}
	healthHandler := handlers.NewHealthHandler(checks, log)

	// ======================================================
	// HEALTH
	// ======================================================
	r.GET("/health", healthHandler.Live)
	r.GET("/ready", healthHandler.Ready)

	api := r.Group("/api")
	{
		// ------------------------------
		// API PUBLICA
		// ------------------------------
		publicAPI := api.Group("/public/:slug")
		publicAPI.Use(middleware.BarbershopFromSlug(appointmentRepo))
		{
			publicAPI.GET("/barbers", publicHandler.ListBarbers)
			publicAPI.GET("/services", publicHandler.ListServices)

			publicAPI.GET("/availability", availabilityHandler.Slots)
			publicAPI.GET("/availability/any", availabilityHandler.AnyBarber)
			publicAPI.GET("/availability/barbers", availabilityHandler.Barbers)
			publicAPI.GET("/availability/services", availabilityHandler.Services)

			publicAPI.POST(
				"/appointments",
				middleware.RateLimit(deps.Redis, cfg.RateLimitPerMinute, time.Minute, log),
				publicHandler.CreateAppointment,
			)
		}

		// ------------------------------
		// API PRIVADA
		// ------------------------------
		secured := api.Group("/me")
		secured.Use(middleware.AuthMiddleware(cfg))
		{
			secured.GET("/availability", availabilityHandler.Slots)
			secured.GET("/availability/any", availabilityHandler.AnyBarber)
			secured.GET("/availability/barbers", availabilityHandler.Barbers)
			secured.GET("/availability/services", availabilityHandler.Services)
			secured.GET("/barbers/:id/occupancy", availabilityHandler.Occupancy)

			// ------------------------------
			// APPOINTMENTS
			// ------------------------------
			secured.POST("/appointments", appointmentHandler.Create)
			secured.GET("/appointments", appointmentHandler.ListByDate)
			secured.GET("/appointments/month", appointmentHandler.ListByMonth)
			secured.GET("/appointments/:id/eligibility", appointmentHandler.Eligibility)
			secured.GET("/appointments/:id/reschedule-slots", appointmentHandler.RescheduleSlots)
			secured.PATCH("/appointments/:id/reschedule", appointmentHandler.Reschedule)
			secured.PATCH("/appointments/:id/cancel", appointmentHandler.Cancel)

			secured.GET("/audit-logs", auditLogsHandler.List)
		}
	}
}
