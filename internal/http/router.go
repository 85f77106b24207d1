package http

import (
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	httpH "github.com/vwconsorcio/consorcio-backend/internal/http/handlers"
	httpMW "github.com/vwconsorcio/consorcio-backend/internal/http/middleware"
	"github.com/vwconsorcio/consorcio-backend/internal/observability"
	"github.com/vwconsorcio/consorcio-backend/internal/platform/logger"
	"github.com/vwconsorcio/consorcio-backend/internal/services"
)

type RouterConfig struct {
	Log         *logger.Logger
	CORSOrigins []string
	AdminAuth   services.AdminAuthService
	Metrics     *observability.Metrics
	// TracingService enables otelgin spans when non-empty.
	TracingService string

	LeadHandler        *httpH.LeadHandler
	CarHandler         *httpH.CarHandler
	TestimonialHandler *httpH.TestimonialHandler
	BlogHandler        *httpH.BlogHandler
	AnalyticsHandler   *httpH.AnalyticsHandler
	StatusHandler      *httpH.StatusHandler
	AdminHandler       *httpH.AdminHandler
	HealthHandler      *httpH.HealthHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	if cfg.TracingService != "" {
		r.Use(otelgin.Middleware(cfg.TracingService))
	}
	r.Use(httpMW.AttachRequestContext())
	r.Use(httpMW.RequestLogger(cfg.Log, cfg.Metrics))
	r.Use(httpMW.CORS(cfg.CORSOrigins))

	// Health
	if cfg.HealthHandler != nil {
		r.GET("/healthcheck", cfg.HealthHandler.HealthCheck)
	}
	if cfg.Metrics != nil {
		r.GET("/metrics", gin.WrapF(cfg.Metrics.WriteHTTP))
	}

	api := r.Group("/api")
	api.Use(httpMW.AdminAuth(cfg.AdminAuth))
	{
		if cfg.HealthHandler != nil {
			api.GET("/", cfg.HealthHandler.Root)
		}
		if cfg.StatusHandler != nil {
			api.POST("/status", cfg.StatusHandler.CreateStatusCheck)
			api.GET("/status", cfg.StatusHandler.ListStatusChecks)
		}
		if cfg.AdminHandler != nil {
			api.POST("/admin/login", cfg.AdminHandler.Login)
		}

		// Leads
		if cfg.LeadHandler != nil {
			api.POST("/leads", cfg.LeadHandler.CreateLead)
			api.GET("/leads", cfg.LeadHandler.ListLeads)
			api.GET("/leads/stats", cfg.LeadHandler.LeadStats)
			api.PUT("/leads/:id", cfg.LeadHandler.UpdateLead)
		}

		// Catalog
		if cfg.CarHandler != nil {
			api.GET("/cars", cfg.CarHandler.ListCars)
			api.GET("/cars/:id", cfg.CarHandler.GetCar)
			api.POST("/cars", cfg.CarHandler.CreateCar)
			api.PUT("/cars/:id", cfg.CarHandler.UpdateCar)
			api.DELETE("/cars/:id", cfg.CarHandler.DeleteCar)
		}

		// Content
		if cfg.TestimonialHandler != nil {
			api.GET("/testimonials", cfg.TestimonialHandler.ListTestimonials)
			api.POST("/testimonials", cfg.TestimonialHandler.CreateTestimonial)
			api.PUT("/testimonials/:id", cfg.TestimonialHandler.UpdateTestimonial)
		}
		if cfg.BlogHandler != nil {
			api.GET("/blog/posts", cfg.BlogHandler.ListPosts)
			api.GET("/blog/posts/:slug", cfg.BlogHandler.GetPost)
			api.POST("/blog/posts", cfg.BlogHandler.CreatePost)
			api.PUT("/blog/posts/:id", cfg.BlogHandler.UpdatePost)
		}

		// Analytics
		if cfg.AnalyticsHandler != nil {
			api.POST("/analytics/page-view", cfg.AnalyticsHandler.LogPageView)
			api.POST("/analytics/form-interaction", cfg.AnalyticsHandler.LogFormInteraction)
			api.GET("/analytics/dashboard", cfg.AnalyticsHandler.Dashboard)
		}
	}

	return r
}
