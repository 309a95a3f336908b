package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"serverless-adapter/internal/config"
	"serverless-adapter/internal/middleware"
	"serverless-adapter/internal/models"
	"serverless-adapter/internal/services"
)

const serviceName = "serverless-adapter-demo"

// RouterConfig holds configuration for setting up routes
type RouterConfig struct {
	RecordService services.RecordService
	RateLimit     config.RateLimitConfig
}

// NewGinApp builds the gin variant of the demo application
func NewGinApp(cfg *config.Config, recordService services.RecordService) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	routerConfig := &RouterConfig{
		RecordService: recordService,
		RateLimit:     cfg.RateLimit,
	}

	SetupMiddleware(router, routerConfig)
	SetupRoutes(router, routerConfig)

	return router
}

// SetupRoutes configures all demo routes
func SetupRoutes(router *gin.Engine, config *RouterConfig) {
	users := NewRecordHandler(config.RecordService, models.CollectionUsers)
	collaborators := NewRecordHandler(config.RecordService, models.CollectionCollaborators)

	// Swagger UI, served as HTML and static assets
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, healthBody())
	})

	router.Any("/inspect", gin.WrapF(Inspect))

	for _, route := range []struct {
		path    string
		handler *RecordHandler
	}{
		{"/users", users},
		{"/collaborators", collaborators},
	} {
		group := router.Group(route.path)
		group.POST("", middleware.ContentTypeValidation("application/json"), route.handler.Create)
		group.PUT("", middleware.ContentTypeValidation("application/json"), route.handler.Upsert)
		group.GET("", route.handler.List)
		group.GET("/:id", route.handler.Get)
	}

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, middleware.NewErrorResponse(c, "Not found", "endpoint not found"))
	})
}

// SetupMiddleware configures global middleware
func SetupMiddleware(router *gin.Engine, config *RouterConfig) {
	router.Use(middleware.RequestID())
	router.Use(middleware.Recovery())
	router.Use(middleware.CORS())
	router.Use(middleware.SecurityHeaders())

	// 6MB matches the Lambda synchronous payload limit
	router.Use(middleware.RequestSizeLimit(6 * 1024 * 1024))

	router.Use(middleware.RateLimiter(config.RateLimit.RequestsPerSecond, config.RateLimit.Burst))
	router.Use(middleware.StructuredLogger())
	router.Use(middleware.PerformanceMonitor(time.Second))
}

func healthBody() map[string]any {
	return map[string]any{
		"status":          "healthy",
		"service":         serviceName,
		"deployment_mode": config.GetDeploymentMode(),
	}
}

// respondJSON writes a JSON response
func respondJSON(w http.ResponseWriter, statusCode int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(data)
}
