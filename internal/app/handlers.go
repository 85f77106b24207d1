package app

import (
	"github.com/gin-gonic/gin"

	"github.com/vwconsorcio/consorcio-backend/internal/http"
	httpH "github.com/vwconsorcio/consorcio-backend/internal/http/handlers"
	"github.com/vwconsorcio/consorcio-backend/internal/observability"
	"github.com/vwconsorcio/consorcio-backend/internal/platform/logger"
)

type Handlers struct {
	Health      *httpH.HealthHandler
	Lead        *httpH.LeadHandler
	Car         *httpH.CarHandler
	Testimonial *httpH.TestimonialHandler
	Blog        *httpH.BlogHandler
	Analytics   *httpH.AnalyticsHandler
	Status      *httpH.StatusHandler
	Admin       *httpH.AdminHandler
}

func wireHandlers(log *logger.Logger, services Services) Handlers {
	log.Info("Wiring handlers...")
	return Handlers{
		Health:      httpH.NewHealthHandler(),
		Lead:        httpH.NewLeadHandler(services.Leads, services.Analytics),
		Car:         httpH.NewCarHandler(services.Cars),
		Testimonial: httpH.NewTestimonialHandler(services.Testimonials),
		Blog:        httpH.NewBlogHandler(services.Blog),
		Analytics:   httpH.NewAnalyticsHandler(services.Analytics),
		Status:      httpH.NewStatusHandler(services.Status),
		Admin:       httpH.NewAdminHandler(services.AdminAuth),
	}
}

func wireRouter(log *logger.Logger, cfg Config, handlers Handlers, services Services, metrics *observability.Metrics) *gin.Engine {
	tracing := ""
	if cfg.Otel.Enabled {
		tracing = cfg.Otel.ServiceName
	}
	return http.NewRouter(routerConfig(log, cfg, handlers, services, metrics, tracing))
}

func routerConfig(log *logger.Logger, cfg Config, handlers Handlers, services Services, metrics *observability.Metrics, tracing string) http.RouterConfig {
	return http.RouterConfig{
		Log:                log,
		CORSOrigins:        cfg.CORSOrigins,
		AdminAuth:          services.AdminAuth,
		Metrics:            metrics,
		TracingService:     tracing,
		HealthHandler:      handlers.Health,
		LeadHandler:        handlers.Lead,
		CarHandler:         handlers.Car,
		TestimonialHandler: handlers.Testimonial,
		BlogHandler:        handlers.Blog,
		AnalyticsHandler:   handlers.Analytics,
		StatusHandler:      handlers.Status,
		AdminHandler:       handlers.Admin,
	}
}
