package handlers

import (
	_ "thermostat_panel/docs"
	"thermostat_panel/internal/logger"
	"thermostat_panel/internal/service"
	"thermostat_panel/internal/view"

	"github.com/gin-gonic/gin"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Handler wires the HTTP layer to services and logging.
type Handler struct {
	services *service.Service
	log      *logger.Logger
}

// NewHandler constructs a new HTTP handler with dependencies.
func NewHandler(services *service.Service, log *logger.Logger) *Handler {
	return &Handler{services: services, log: log}
}

// InitRoutes builds and returns the Gin router with all routes registered.
func (h *Handler) InitRoutes() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), h.requestLogger)
	router.SetHTMLTemplate(view.Template())

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	router.GET("/", h.page)
	router.GET("/health", h.health)

	h.registerAPIRoutes(router)

	router.GET("/ws", h.wsConnect)

	return router
}

func (h *Handler) registerAPIRoutes(r *gin.Engine) {
	api := r.Group("/api/v1")
	{
		api.GET("/state", h.getState)
		h.registerTargetRoutes(api)
		api.POST("/interval", h.setInterval)
		api.GET("/logs", h.getLogs)
	}
}

func (h *Handler) registerTargetRoutes(api *gin.RouterGroup) {
	target := api.Group("/target")
	{
		target.POST("/up", h.targetUp)
		target.POST("/down", h.targetDown)
	}
}
