package rest

import (
	"github.com/Dhoini/Admin-panel/internal/api/rest/handlers"
	"github.com/Dhoini/Admin-panel/internal/api/rest/middleware"
	"github.com/Dhoini/Admin-panel/pkg/logger"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Handlers набор обработчиков, которые подключает роутер
type Handlers struct {
	Health    gin.HandlerFunc
	Pages     *handlers.PageHandler
	Dashboard *handlers.DashboardHandler
	Reports   *handlers.ReportHandler
	Users     *handlers.UserHandler
	Admins    *handlers.AdminHandler
}

// RouterConfig параметры роутера
type RouterConfig struct {
	AllowedOrigins []string
	Registry       *prometheus.Registry
	Metrics        middleware.HTTPObserver
}

// SetupRouter настраивает маршрутизатор Gin с маршрутами и middleware
func SetupRouter(log *logger.Logger, cfg RouterConfig, h Handlers) *gin.Engine {
	r := gin.New()

	// Подключение middleware
	r.Use(middleware.LoggerMiddleware(log))
	r.Use(gin.Recovery())
	r.Use(middleware.CORSMiddleware(cfg.AllowedOrigins))
	if cfg.Metrics != nil {
		r.Use(middleware.MetricsMiddleware(cfg.Metrics))
	}

	// Endpoint для проверки работоспособности сервиса
	r.GET("/health", h.Health)

	// Prometheus метрики
	if cfg.Registry != nil {
		r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(cfg.Registry, promhttp.HandlerOpts{})))
	}

	// Страницы панели
	r.GET("/pages/:page", h.Pages.GetPage)

	v1 := r.Group("/api/v1")
	{
		v1.GET("/dashboard", h.Dashboard.GetStats)

		reports := v1.Group("/reports")
		{
			reports.POST("", h.Reports.CreateReport)
			reports.GET("/:id/download", h.Reports.DownloadReport)
		}

		users := v1.Group("/users")
		{
			users.DELETE("/:id", h.Users.DeleteUser)
			users.POST("/:id/deactivate", h.Users.DeactivateUser)
			users.POST("/:id/extend", h.Users.ExtendSubscription)
		}

		admins := v1.Group("/admins")
		{
			admins.GET("", h.Admins.GetAdmins)
			admins.POST("", h.Admins.AddAdmin)
		}
	}
	return r
}
