package api

import (
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/careline/clinic-backend/internal/api/handler"
	"github.com/careline/clinic-backend/internal/api/middleware"
	"github.com/careline/clinic-backend/internal/core/domain"
	"github.com/careline/clinic-backend/internal/core/service"
	"github.com/careline/clinic-backend/internal/pkg/config"
	mongodb "github.com/careline/clinic-backend/internal/infrastructure/db/mongo"
	redisdb "github.com/careline/clinic-backend/internal/infrastructure/db/redis"
)

const (
	loginRateLimit  = 15
	loginRateWindow = 15 * time.Minute

	submitRateLimit  = 30
	submitRateWindow = time.Hour
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(cfg *config.Config, db *mongo.Database, rdb *redis.Client, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("clinic"))

	// --- Repositories ---
	userRepo := mongodb.NewAdminUserRepository(db)
	appointmentRepo := mongodb.NewAppointmentRepository(db)
	inquiryRepo := mongodb.NewInquiryRepository(db)
	feedbackRepo := mongodb.NewFeedbackRepository(db)
	programRepo := mongodb.NewProgramRepository(db)
	testimonialRepo := mongodb.NewTestimonialRepository(db)
	siteContentRepo := mongodb.NewSiteContentRepository(db)
	settingRepo := mongodb.NewSettingRepository(db)

	// --- Services ---
	authService := service.NewAuthService(userRepo, cfg.Auth, log)
	adminUsersService := service.NewAdminUsersService(userRepo, log)
	appointmentService := service.NewAppointmentService(appointmentRepo, log)
	inquiryService := service.NewInquiryService(inquiryRepo, log)
	feedbackService := service.NewFeedbackService(feedbackRepo, log)
	programService := service.NewProgramService(programRepo, log)
	testimonialService := service.NewTestimonialService(testimonialRepo, log)
	siteContentService := service.NewSiteContentService(siteContentRepo, log)
	settingsService := service.NewSettingsService(settingRepo, log)
	notificationService := service.NewNotificationService(appointmentRepo, inquiryRepo, feedbackRepo)

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(authService, cfg)
	adminUsersHandler := handler.NewAdminUsersHandler(adminUsersService)
	appointmentHandler := handler.NewAppointmentHandler(appointmentService)
	contactHandler := handler.NewContactHandler(inquiryService)
	feedbackHandler := handler.NewFeedbackHandler(feedbackService)
	contentHandler := handler.NewContentHandler(programService)
	testimonialsHandler := handler.NewTestimonialsHandler(testimonialService)
	siteContentHandler := handler.NewSiteContentHandler(siteContentService, programService, testimonialService)
	settingsHandler := handler.NewSettingsHandler(settingsService)
	notificationsHandler := handler.NewNotificationsHandler(notificationService)
	healthHandler := handler.NewHealthHandler(db, rdb)

	// --- Middleware ---
	authRequired := middleware.Auth(cfg.Auth, userRepo)
	loginLimiter := redisdb.NewLimiter(rdb, "login", loginRateLimit, loginRateWindow)
	loginRateLimited := middleware.RateLimit("login", loginLimiter, log)
	submitLimiter := redisdb.NewLimiter(rdb, "public_submit", submitRateLimit, submitRateWindow)
	submitRateLimited := middleware.RateLimit("public_submit", submitLimiter, log)

	// --- Health probes (no auth required) ---
	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", healthHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())

	api := e.Group("/api")

	// --- Auth ---
	auth := api.Group("/auth")
	auth.POST("/login", authHandler.Login, loginRateLimited)
	auth.POST("/refresh", authHandler.Refresh)
	auth.POST("/logout", authHandler.Logout)
	auth.GET("/me", authHandler.Me, authRequired)

	// --- Public site endpoints ---
	api.POST("/appointments", appointmentHandler.Create, submitRateLimited)
	api.POST("/contact", contactHandler.Create, submitRateLimited)
	api.POST("/feedback", feedbackHandler.Submit, submitRateLimited)
	api.GET("/feedback/published", feedbackHandler.ListPublished)
	api.GET("/content", siteContentHandler.GetAll)
	api.GET("/content/home", siteContentHandler.GetHome)
	api.GET("/content/clinic-profile", siteContentHandler.GetClinicProfile)
	api.GET("/content/testimonials", testimonialsHandler.ListPublic)
	api.GET("/content/programs", contentHandler.ListPublic)
	api.GET("/content/programs/:slug", contentHandler.GetPublic)
	api.GET("/content/:section", siteContentHandler.GetSection)

	// --- Admin panel (authenticated) ---
	admin := api.Group("/admin", authRequired)

	manageUsers := middleware.RequirePermission(domain.PermAdminUsersManage)
	users := admin.Group("/users")
	users.GET("", adminUsersHandler.List, manageUsers)
	users.POST("", adminUsersHandler.Create, manageUsers)
	// Reading a single record is self-or-admin so staff can load their
	// own profile without the adminUsers.manage permission.
	users.GET("/:id", adminUsersHandler.Get, middleware.RequireSelfOrAdmin("id"))
	users.PATCH("/:id", adminUsersHandler.Patch, manageUsers)
	users.DELETE("/:id", adminUsersHandler.Delete, manageUsers)

	appointments := admin.Group("/appointments", middleware.RequirePermission(domain.PermAppointmentsManage))
	appointments.GET("", appointmentHandler.List)
	appointments.GET("/:id", appointmentHandler.Get)
	appointments.PATCH("/:id", appointmentHandler.Patch)
	appointments.DELETE("/:id", appointmentHandler.Delete)

	inquiries := admin.Group("/inquiries", middleware.RequirePermission(domain.PermInquiriesManage))
	inquiries.GET("", contactHandler.List)
	inquiries.PATCH("/:id/status", contactHandler.UpdateStatus)
	inquiries.DELETE("/:id", contactHandler.Delete)

	feedback := admin.Group("/feedback", middleware.RequirePermission(domain.PermFeedbackManage))
	feedback.GET("", feedbackHandler.List)
	feedback.PATCH("/:id/status", feedbackHandler.SetStatus)
	feedback.DELETE("/:id", feedbackHandler.Delete)

	content := admin.Group("/content", middleware.RequirePermission(domain.PermContentManage))
	content.GET("/programs", contentHandler.ListAdmin)
	content.POST("/programs", contentHandler.Create)
	content.PATCH("/programs/:id", contentHandler.Patch)
	content.DELETE("/programs/:id", contentHandler.Delete)

	content.GET("/testimonials", testimonialsHandler.ListAdmin)
	content.POST("/testimonials", testimonialsHandler.Create)
	content.PATCH("/testimonials/:id", testimonialsHandler.Patch)
	content.DELETE("/testimonials/:id", testimonialsHandler.Delete)

	content.GET("/clinic-profile", siteContentHandler.GetClinicProfile)
	content.PUT("/clinic-profile", siteContentHandler.UpsertClinicProfile)
	content.PATCH("/clinic-profile", siteContentHandler.PatchClinicProfile)
	content.DELETE("/clinic-profile", siteContentHandler.DeleteClinicProfile)

	content.GET("/home", siteContentHandler.GetHome)
	content.PUT("/home", siteContentHandler.UpsertHome)
	content.PATCH("/home", siteContentHandler.PatchHome)
	content.DELETE("/home", siteContentHandler.DeleteHome)

	content.PUT("/:section", siteContentHandler.PutSection)

	settings := admin.Group("/settings", middleware.RequirePermission(domain.PermSettingsManage))
	settings.GET("", settingsHandler.List)
	settings.GET("/:key", settingsHandler.Get)
	settings.PUT("/:key", settingsHandler.Upsert)
	settings.DELETE("/:key", settingsHandler.Delete)

	admin.GET("/notifications", notificationsHandler.Feed, middleware.RequirePermission(domain.PermNotificationsRead))

	return e
}
