package routes

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/barber-booking/internal/audit"
	"github.com/BruksfildServices01/barber-booking/internal/config"
	domain "github.com/BruksfildServices01/barber-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-booking/internal/handlers"
	"github.com/BruksfildServices01/barber-booking/internal/infra/cache"
	infraRepo "github.com/BruksfildServices01/barber-booking/internal/infra/repository"
	"github.com/BruksfildServices01/barber-booking/internal/metrics"
	"github.com/BruksfildServices01/barber-booking/internal/middleware"
	ucAppointment "github.com/BruksfildServices01/barber-booking/internal/usecase/appointment"
	ucProfile "github.com/BruksfildServices01/barber-booking/internal/usecase/profile"
)

// Cache is the availability cache as seen by the router: slot lists per day
// plus the per-barber purge used when working hours change.
type Cache interface {
	ucAppointment.AvailabilityCache
	handlers.BarberCacheInvalidator
}

// Deps carries everything the HTTP layer needs. Redis, Cache and Avatars are
// optional: leave them nil (untyped) to run without them.
type Deps struct {
	DB      *gorm.DB
	Config  *config.Config
	Log     *slog.Logger
	Metrics *metrics.Metrics
	Audit   *audit.Dispatcher
	Clock   ucAppointment.Clock

	Redis   *redis.Client
	Cache   Cache
	Avatars ucProfile.AvatarStore

	// EmailDomainCheck replaces the DNS lookup done on sign-up.
	EmailDomainCheck func(email string) bool
}

var _ Cache = (*cache.AvailabilityRedisCache)(nil)

func NewRouter(d Deps) *gin.Engine {
	if d.Log == nil {
		d.Log = slog.Default()
	}

	r := gin.New()

	// ======================================================
	// 🌍 MIDDLEWARE GLOBAL
	// ======================================================
	r.Use(
		gin.Recovery(),
		middleware.RequestID(),
		middleware.AccessLog(d.Log, d.Metrics),
		middleware.CORSMiddleware(d.Config.CORSOrigins...),
	)

	RegisterRoutes(r, d)
	return r
}

func RegisterRoutes(r *gin.Engine, d Deps) {
	if d.Log == nil {
		d.Log = slog.Default()
	}

	cfg := d.Config
	sched := cfg.Scheduling
	if sched.SlotStepMinutes == 0 {
		sched = config.DefaultScheduling()
	}
	loc := d.Clock.Loc
	if loc == nil {
		loc = time.UTC
	}

	var availabilityCache ucAppointment.AvailabilityCache = ucAppointment.NopCache{}
	var barberCache handlers.BarberCacheInvalidator
	if d.Cache != nil {
		availabilityCache = d.Cache
		barberCache = d.Cache
	}

	// ======================================================
	// 🔧 INFRA (SINGLETONS)
	// ======================================================
	appointmentRepo := infraRepo.NewAppointmentGormRepository(d.DB)
	statsRepo := infraRepo.NewStatsGormRepository(d.DB)
	userRepo := infraRepo.NewUserGormRepository(d.DB)
	workingHoursRepo := infraRepo.NewWorkingHoursGormRepository(d.DB)

	auditLogger := audit.New(d.DB)

	calculator := domain.NewCalculator(domain.CalculatorConfig{StepMinutes: sched.SlotStepMinutes})
	layout := domain.NewLayoutEngine(domain.LayoutConfig{
		PixelsPerMinute:  sched.PixelsPerMinute,
		MinHeight:        sched.MinBoxHeight,
		ActionsMinHeight: sched.ActionsMinHeight,
	})
	window := domain.Window{
		Start: domain.MustTimeOfDay(sched.DayStart),
		End:   domain.MustTimeOfDay(sched.DayEnd),
	}

	// ======================================================
	// 🧠 USE CASES — APPOINTMENTS
	// ======================================================
	availabilityUC := ucAppointment.NewGetAvailability(
		appointmentRepo,
		calculator,
		availabilityCache,
		d.Clock,
		d.Metrics,
		d.Log,
	)

	createAppointmentUC := ucAppointment.NewCreateAppointment(
		appointmentRepo,
		calculator,
		availabilityCache,
		d.Clock,
		d.Audit,
		d.Log,
	)

	changeStatusUC := ucAppointment.NewChangeAppointmentStatus(
		appointmentRepo,
		availabilityCache,
		d.Clock,
		d.Audit,
		d.Metrics,
		d.Log,
	)

	scheduleUC := ucAppointment.NewGetWeekSchedule(
		appointmentRepo,
		layout,
		ucAppointment.ScheduleSettings{
			Window:      window,
			VisibleDays: sched.VisibleDays,
		},
		d.Clock,
	)

	// ======================================================
	// 🧩 HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(d.DB, cfg.JWTSecret)
	if d.EmailDomainCheck != nil {
		authHandler.CheckEmailDomain = d.EmailDomainCheck
	}
	meHandler := handlers.NewMeHandler(
		userRepo,
		ucProfile.NewUploadAvatar(d.Avatars, userRepo, d.Audit),
	)
	barbershopHandler := handlers.NewBarbershopHandler(d.DB)
	barberProductHandler := handlers.NewBarberProductHandler(d.DB)
	clientHandler := handlers.NewClientHandler(d.DB)
	workingHoursHandler := handlers.NewWorkingHoursHandler(workingHoursRepo, barberCache, d.Log)

	appointmentHandler := handlers.NewAppointmentHandler(handlers.AppointmentUseCases{
		Create:       createAppointmentUC,
		ChangeStatus: changeStatusUC,
		ListByDate:   ucAppointment.NewListAppointmentsByDate(appointmentRepo, d.Clock),
		ListByMonth:  ucAppointment.NewListAppointmentsByMonth(appointmentRepo, d.Clock),
		Schedule:     scheduleUC,
		Stats:        ucAppointment.NewGetDashboardStats(statsRepo, d.Clock),
		Availability: availabilityUC,
	}, loc)

	auditLogsHandler := handlers.NewAuditLogsHandler(auditLogger, loc)

	publicHandler := handlers.NewPublicHandler(d.DB, appointmentRepo, handlers.PublicUseCases{
		Availability: availabilityUC,
		Create:       createAppointmentUC,
		Get:          ucAppointment.NewGetPublicAppointment(appointmentRepo, d.Clock),
		Cancel:       ucAppointment.NewCancelPublicAppointment(appointmentRepo, availabilityCache, d.Clock, d.Audit, d.Metrics, d.Log),
		Review:       ucAppointment.NewAddReview(appointmentRepo, d.Audit),
	}, loc)

	// ======================================================
	// 🩺 OPS
	// ======================================================
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	if d.Metrics != nil {
		r.GET("/metrics", gin.WrapH(d.Metrics.Handler()))
	}

	// ======================================================
	// 🌐 API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// 🌐 API PÚBLICA
		// ------------------------------
		publicAPI := api.Group("/public")
		if d.Redis != nil {
			limiter := middleware.NewRateLimiter(d.Redis, cfg.RateLimitPerMinute, time.Minute, d.Log)
			publicAPI.Use(limiter.Middleware())
		}
		{
			publicAPI.GET("/:slug", publicHandler.GetBarbershop)
			publicAPI.GET("/:slug/products", publicHandler.ListProducts)
			publicAPI.GET("/:slug/availability", publicHandler.Availability)
			publicAPI.POST("/:slug/appointments", publicHandler.CreateAppointment)
			publicAPI.GET("/:slug/appointments/:code", publicHandler.GetAppointment)
			publicAPI.POST("/:slug/appointments/:code/cancel", publicHandler.CancelAppointment)
			publicAPI.POST("/:slug/appointments/:code/review", publicHandler.Review)
		}

		// ------------------------------
		// 🔐 AUTH
		// ------------------------------
		api.POST("/auth/register", authHandler.Register)
		api.POST("/auth/login", authHandler.Login)

		// ------------------------------
		// 🔐 API PRIVADA
		// ------------------------------
		secured := api.Group("/me")
		secured.Use(middleware.AuthMiddleware(cfg.JWTSecret))
		{
			secured.GET("", meHandler.GetMe)
			secured.PUT("/avatar", meHandler.UploadAvatar)

			secured.GET("/barbershop", barbershopHandler.GetMeBarbershop)
			secured.PATCH("/barbershop", middleware.RequireOwner(), barbershopHandler.UpdateMeBarbershop)

			secured.GET("/barbers", meHandler.ListBarbers)
			secured.POST("/barbers", middleware.RequireOwner(), meHandler.CreateBarber)

			secured.GET("/clients", clientHandler.List)

			secured.GET("/products", barberProductHandler.List)
			secured.POST("/products", middleware.RequireOwner(), barberProductHandler.Create)
			secured.PATCH("/products/:id", middleware.RequireOwner(), barberProductHandler.Update)

			secured.GET("/working-hours", workingHoursHandler.Get)
			secured.PUT("/working-hours", workingHoursHandler.Update)

			// ------------------------------
			// APPOINTMENTS
			// ------------------------------
			secured.POST("/appointments", appointmentHandler.Create)
			secured.GET("/appointments", appointmentHandler.ListByDate)
			secured.GET("/appointments/month", appointmentHandler.ListByMonth)
			secured.PATCH("/appointments/:id/status", appointmentHandler.ChangeStatus)
			secured.PATCH("/appointments/:id/confirm", appointmentHandler.Confirm)
			secured.PATCH("/appointments/:id/complete", appointmentHandler.Complete)
			secured.PATCH("/appointments/:id/cancel", appointmentHandler.Cancel)

			secured.GET("/availability", appointmentHandler.Availability)
			secured.GET("/schedule", appointmentHandler.Schedule)
			secured.GET("/stats", appointmentHandler.Stats)

			secured.GET("/audit-logs", middleware.RequireOwner(), auditLogsHandler.List)
		}
	}
}
