package routes

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/clinic-scheduler/internal/audit"
	"github.com/BruksfildServices01/clinic-scheduler/internal/config"
	domain "github.com/BruksfildServices01/clinic-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/clinic-scheduler/internal/handlers"
	"github.com/BruksfildServices01/clinic-scheduler/internal/infra/cache"
	infraRepo "github.com/BruksfildServices01/clinic-scheduler/internal/infra/repository"
	"github.com/BruksfildServices01/clinic-scheduler/internal/metrics"
	"github.com/BruksfildServices01/clinic-scheduler/internal/middleware"
	"github.com/BruksfildServices01/clinic-scheduler/internal/timezone"
	ucAppointment "github.com/BruksfildServices01/clinic-scheduler/internal/usecase/appointment"
)

type Deps struct {
	DB *gorm.DB
	// Redis nil desliga o cache do diretório
	Redis  *redis.Client
	Audit  *audit.Dispatcher
	Logger zerolog.Logger
}

func RegisterRoutes(r *gin.Engine, cfg *config.Config, deps Deps) {

	// ======================================================
	// 🌍 MIDDLEWARE GLOBAL
	// ======================================================
	r.Use(
		middleware.RequestID(),
		middleware.Logger(deps.Logger),
		middleware.Recovery(deps.Logger),
		middleware.CORSMiddleware(),
	)

	// ======================================================
	// 🔧 INFRA (SINGLETONS)
	// ======================================================
	appointmentRepo := infraRepo.NewAppointmentGormRepository(deps.DB)

	var directory domain.Directory = infraRepo.NewDirectoryGormRepository(deps.DB)
	var invalidator handlers.CacheInvalidator
	if deps.Redis != nil && cfg.CacheEnabled() {
		directoryCache := cache.NewDirectoryCache(directory, deps.Redis, cfg.CacheTTL, deps.Logger)
		directory = directoryCache
		invalidator = directoryCache
	}

	loc := timezone.Location(cfg.Timezone)

	// ======================================================
	// 🧠 USE CASES — APPOINTMENTS
	// ======================================================
	appointmentUC := handlers.AppointmentUseCases{
		Create:   ucAppointment.NewCreateAppointment(appointmentRepo, directory, deps.Audit),
		Update:   ucAppointment.NewUpdateAppointment(appointmentRepo, directory, deps.Audit),
		Get:      ucAppointment.NewGetAppointment(appointmentRepo),
		List:     ucAppointment.NewListAppointments(appointmentRepo),
		Delete:   ucAppointment.NewDeleteAppointment(appointmentRepo, deps.Audit),
		Cancel:   ucAppointment.NewCancelAppointment(appointmentRepo, deps.Audit),
		Complete: ucAppointment.NewCompleteAppointment(appointmentRepo, deps.Audit),
		NoShow:   ucAppointment.NewMarkNoShow(appointmentRepo, deps.Audit),
	}

	// ======================================================
	// 🧩 HANDLERS
	// ======================================================
	appointmentHandler := handlers.NewAppointmentHandler(appointmentUC, loc, deps.Logger)

	professionalHandler := handlers.NewProfessionalHandler(deps.DB, invalidator)
	serviceHandler := handlers.NewServiceHandler(deps.DB, invalidator)
	locationHandler := handlers.NewLocationHandler(deps.DB, invalidator)
	patientHandler := handlers.NewPatientHandler(deps.DB)

	auditLogsHandler := handlers.NewAuditLogsHandler(deps.DB, loc)
	healthHandler := handlers.NewHealthHandler(readinessChecks(deps), deps.Logger)

	// ======================================================
	// 🩺 OPERAÇÃO
	// ======================================================
	r.GET("/health", healthHandler.Health)
	r.GET("/ready", healthHandler.Ready)

	if cfg.MetricsEnabled {
		metrics.Register()
		r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	}

	// ======================================================
	// 🌐 API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// APPOINTMENTS
		// ------------------------------
		api.GET("/appointments", appointmentHandler.List)
		api.GET("/appointments/:id", appointmentHandler.Get)
		api.POST("/appointments", appointmentHandler.Create)
		api.PUT("/appointments/:id", appointmentHandler.Update)
		api.DELETE("/appointments/:id", appointmentHandler.Delete)
		api.PATCH("/appointments/:id/cancel", appointmentHandler.Cancel)
		api.PATCH("/appointments/:id/complete", appointmentHandler.Complete)
		api.PATCH("/appointments/:id/no-show", appointmentHandler.NoShow)

		// ------------------------------
		// DIRETÓRIO
		// ------------------------------
		api.GET("/professionals", professionalHandler.List)
		api.POST("/professionals", professionalHandler.Create)
		api.PATCH("/professionals/:id", professionalHandler.Update)
		api.PUT("/professionals/:id/services/:serviceId", professionalHandler.AssignService)
		api.DELETE("/professionals/:id/services/:serviceId", professionalHandler.RevokeService)

		api.GET("/services", serviceHandler.List)
		api.POST("/services", serviceHandler.Create)
		api.PATCH("/services/:id", serviceHandler.Update)

		api.GET("/locations", locationHandler.List)
		api.POST("/locations", locationHandler.Create)
		api.PATCH("/locations/:id", locationHandler.Update)

		api.GET("/patients", patientHandler.List)
		api.POST("/patients", patientHandler.Create)
		api.PATCH("/patients/:id", patientHandler.Update)

		api.GET("/audit-logs", auditLogsHandler.List)
	}
}

func readinessChecks(deps Deps) map[string]handlers.Check {
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

	return checks
}
