package app

import (
	"github.com/vwconsorcio/consorcio-backend/internal/data/store"
	"github.com/vwconsorcio/consorcio-backend/internal/platform/logger"
	"github.com/vwconsorcio/consorcio-backend/internal/services"
)

type Services struct {
	Leads        services.LeadService
	Cars         services.CarService
	Testimonials services.TestimonialService
	Blog         services.BlogService
	Status       services.StatusService
	Analytics    services.AnalyticsService
	AdminAuth    services.AdminAuthService
}

func wireServices(st *store.Store, log *logger.Logger, cfg Config) Services {
	log.Info("Wiring services...")
	adminAuth := services.NewAdminAuthService(log, cfg.AdminPasswordHash, cfg.AdminJWTSecret, cfg.AdminTokenTTL)
	if !adminAuth.Enabled() {
		log.Warn("Admin auth disabled; set ADMIN_PASSWORD_HASH and ADMIN_JWT_SECRET to enable it")
	}
	return Services{
		Leads:        services.NewLeadService(st, log),
		Cars:         services.NewCarService(st, log),
		Testimonials: services.NewTestimonialService(st, log),
		Blog:         services.NewBlogService(st, log),
		Status:       services.NewStatusService(st, log),
		Analytics:    services.NewAnalyticsService(st, log, cfg.PopularCarsLimit),
		AdminAuth:    adminAuth,
	}
}
