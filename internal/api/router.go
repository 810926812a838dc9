package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/myne7x/store-api/docs"
	"github.com/myne7x/store-api/internal/api/handler"
	"github.com/myne7x/store-api/internal/api/middleware"
	"github.com/myne7x/store-api/internal/core/authz"
	"github.com/myne7x/store-api/internal/core/service"
	mongodb "github.com/myne7x/store-api/internal/infrastructure/db/mongo"
	redisdb "github.com/myne7x/store-api/internal/infrastructure/db/redis"
	"github.com/myne7x/store-api/internal/infrastructure/http/handlers"
)

// Notifier is the dispatcher dependency injected from main so that its worker
// lifecycle is owned by the process, not the router.
type Notifier = service.Notifier

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(db *mongo.Database, rdb *redis.Client, jwtSecret string, notifier Notifier, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echoprometheus.NewMiddleware("store"))

	// --- Repositories ---
	productRepo := mongodb.NewProductRepository(db)
	requestRepo := mongodb.NewRequestRepository(db)
	downloadRepo := mongodb.NewDownloadRepository(db)
	notificationRepo := mongodb.NewNotificationRepository(db)
	taskRepo := mongodb.NewTaskRepository(db)
	profileRepo := mongodb.NewProfileRepository(db)

	// --- Services ---
	accessCache := redisdb.NewAccessCache(rdb)
	entitlementService := service.NewEntitlementService(downloadRepo, accessCache, log)
	workflowService := service.NewWorkflowService(productRepo, requestRepo, entitlementService, notifier, log)
	catalogService := service.NewCatalogService(productRepo, log)
	notificationService := service.NewNotificationService(notificationRepo, log)
	taskService := service.NewTaskService(taskRepo, profileRepo, notifier, log)
	profileService := service.NewProfileService(profileRepo, log)

	// --- Handlers ---
	productHandler := handler.NewProductHandler(catalogService)
	accessHandler := handler.NewAccessHandler(workflowService, entitlementService)
	requestHandler := handler.NewRequestHandler(workflowService)
	notificationHandler := handler.NewNotificationHandler(notificationService)
	taskHandler := handler.NewTaskHandler(taskService)
	profileHandler := handler.NewProfileHandler(profileService)

	auth := middleware.Auth(jwtSecret)

	// --- Health probes and operational endpoints (no auth required) ---
	healthHandler := handlers.NewHealthHandler()
	healthDepsHandler := handlers.NewHealthDependenciesHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	// --- Public catalog ---
	e.GET("/v1/products", productHandler.List)
	e.GET("/v1/products/:id", productHandler.Get)

	// --- Authenticated routes ---
	v1 := e.Group("/v1", auth)

	v1.POST("/products/:id/access", accessHandler.RequestAccess)
	v1.GET("/products/:id/access", accessHandler.HasAccess)
	v1.GET("/downloads", accessHandler.ListDownloads)

	v1.GET("/requests", requestHandler.List)
	v1.POST("/requests/:id/decision", requestHandler.Decide, middleware.Require(authz.OpDecideRequest))

	v1.GET("/notifications", notificationHandler.List)
	v1.PATCH("/notifications/:id/read", notificationHandler.MarkRead)
	v1.POST("/notifications/read-all", notificationHandler.MarkAllRead)

	v1.POST("/tasks", taskHandler.Assign, middleware.Require(authz.OpAssignTask))
	v1.GET("/tasks", taskHandler.List)
	v1.PATCH("/tasks/:id/status", taskHandler.UpdateStatus)

	v1.GET("/profiles/me", profileHandler.Me)
	v1.PUT("/profiles/me", profileHandler.UpsertMe)
	v1.PUT("/profiles/:user_id/role", profileHandler.ChangeRole, middleware.Require(authz.OpChangeRole))

	admin := e.Group("/v1/products", auth, middleware.Require(authz.OpManageProduct))
	admin.POST("", productHandler.Create)
	admin.PUT("/:id", productHandler.Update)
	admin.DELETE("/:id", productHandler.Delete)

	return e
}
