package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/pathshala/pathshala-api/internal/api/handler"
	"github.com/pathshala/pathshala-api/internal/api/middleware"
	"github.com/pathshala/pathshala-api/internal/auth"
	"github.com/pathshala/pathshala-api/internal/core/service"
	"github.com/pathshala/pathshala-api/internal/infrastructure/config"
	mongodb "github.com/pathshala/pathshala-api/internal/infrastructure/db/mongo"
	redisdb "github.com/pathshala/pathshala-api/internal/infrastructure/db/redis"
	"github.com/pathshala/pathshala-api/internal/infrastructure/storage"
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
	e.Use(echoprometheus.NewMiddleware("pathshala"))

	// --- Infrastructure ---
	userRepo := mongodb.NewUserRepository(db)
	lectureRepo := mongodb.NewLectureRepository(db)
	materialRepo := mongodb.NewMaterialRepository(db)
	announcementRepo := mongodb.NewAnnouncementRepository(db)
	attendanceRepo := mongodb.NewAttendanceRepository(db)
	feedbackRepo := mongodb.NewFeedbackRepository(db)

	fileStore := storage.NewLocalStore(cfg.Uploads.Dir, cfg.Uploads.BaseURL)
	limiter := redisdb.NewSignInLimiter(rdb, cfg.SignIn.MaxAttempts, cfg.SignIn.Window)

	// --- Session primitives ---
	codec := auth.NewTokenCodec(cfg.JWTSecret)
	cookies := auth.CookieManager{Secure: cfg.IsProduction()}

	// --- Services ---
	authService := service.NewAuthService(userRepo, codec, limiter, log)
	lectureService := service.NewLectureService(lectureRepo, fileStore, log)
	materialService := service.NewMaterialService(materialRepo, fileStore, log)
	announcementService := service.NewAnnouncementService(announcementRepo, log)
	attendanceService := service.NewAttendanceService(attendanceRepo, userRepo, log)
	feedbackService := service.NewFeedbackService(feedbackRepo, userRepo, log)

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(authService, cookies)
	lectureHandler := handler.NewLectureHandler(lectureService)
	materialHandler := handler.NewMaterialHandler(materialService)
	announcementHandler := handler.NewAnnouncementHandler(announcementService)
	attendanceHandler := handler.NewAttendanceHandler(attendanceService)
	feedbackHandler := handler.NewFeedbackHandler(feedbackService)

	authenticate := middleware.Authenticate(codec, cookies)
	requireAdmin := middleware.RequireAdmin(userRepo, log)

	// --- Public routes (content browsing needs no session) ---
	apiGroup := e.Group("/api")
	apiGroup.POST("/auth/signup", authHandler.SignUp)
	apiGroup.POST("/auth/signin", authHandler.SignIn)
	apiGroup.POST("/auth/signout", authHandler.SignOut)
	apiGroup.GET("/lectures", lectureHandler.List)
	apiGroup.GET("/materials", materialHandler.List)
	apiGroup.GET("/announcements", announcementHandler.List)

	// --- Authenticated routes (valid session cookie required) ---
	authed := apiGroup.Group("", authenticate)
	authed.GET("/auth/me", authHandler.Me)
	authed.GET("/attendance", attendanceHandler.Get)
	authed.POST("/feedback", feedbackHandler.Submit)
	authed.GET("/feedback", feedbackHandler.ListOwn)

	// --- Admin routes (session cookie + admin role required) ---
	admin := apiGroup.Group("", authenticate, requireAdmin)
	admin.POST("/lectures", lectureHandler.Create)
	admin.POST("/materials", materialHandler.Create)
	admin.POST("/announcements", announcementHandler.Create)
	admin.POST("/attendance", attendanceHandler.Mark)
	admin.GET("/attendance/export", attendanceHandler.Export)
	admin.GET("/admin/feedback", feedbackHandler.AdminList)
	admin.PATCH("/admin/feedback/:id", feedbackHandler.Respond)

	// --- Uploaded files (videos, materials) served from local disk ---
	e.Static(cfg.Uploads.BaseURL, cfg.Uploads.Dir)

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)             // liveness  – is the process alive?
	e.GET("/health/ready", readinessHandler.Readiness)   // readiness – are dependencies up?

	// --- Operational endpoints ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}
