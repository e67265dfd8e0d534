package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/2tzz/Wheather-App-Fidenz/internal/adapters/transport/http/middleware"
	appsvc "github.com/2tzz/Wheather-App-Fidenz/internal/app/auth/service"
	dashboardsvc "github.com/2tzz/Wheather-App-Fidenz/internal/app/dashboard/service"
	"github.com/2tzz/Wheather-App-Fidenz/internal/infra/config"
	"github.com/2tzz/Wheather-App-Fidenz/internal/infra/observability"
)

// Handler связывает HTTP-маршруты с сервисами приложения.
type Handler struct {
	auth       appsvc.Service
	dashboards dashboardsvc.Service
	cfg        *config.Config
	logger     *zap.Logger
}

func New(auth appsvc.Service, dashboards dashboardsvc.Service, cfg *config.Config, logger *zap.Logger) *Handler {
	return &Handler{
		auth:       auth,
		dashboards: dashboards,
		cfg:        cfg,
		logger:     logger,
	}
}

func (h *Handler) RegisterRoutes(router *gin.Engine) {
	router.POST("/register", h.register)
	router.POST("/login", h.login)
	router.POST("/refresh", h.refresh)
	router.GET("/health", h.health)
	router.GET("/metrics", gin.WrapH(observability.Handler()))

	authed := router.Group("/")
	authed.Use(middleware.AuthRequired(h.auth))
	{
		authed.POST("/logout", h.logout)
		authed.GET("/dashboard", h.listDashboard)
		authed.POST("/cities", h.addCity)
		authed.GET("/cities/:id", h.cityWeather)
		authed.DELETE("/cities/:id", h.removeCity)
	}
}

func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "time": time.Now().Unix()})
}
