package app

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/vwconsorcio/consorcio-backend/internal/data/store"
	"github.com/vwconsorcio/consorcio-backend/internal/domain/leads"
	"github.com/vwconsorcio/consorcio-backend/internal/http"
	"github.com/vwconsorcio/consorcio-backend/internal/observability"
	"github.com/vwconsorcio/consorcio-backend/internal/platform/logger"
	"github.com/vwconsorcio/consorcio-backend/internal/seed"
)

type App struct {
	Log      *logger.Logger
	Store    *store.Store
	Router   *gin.Engine
	Cfg      Config
	Services Services
	Metrics  *observability.Metrics

	redis        *redis.Client
	seeder       *seed.Seeder
	otelShutdown func(context.Context) error
	cancel       context.CancelFunc
}

func New(ctx context.Context) (*App, error) {
	logMode := os.Getenv("LOG_MODE")
	if logMode == "" {
		logMode = "development"
	}
	log, err := logger.New(logMode)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	log.Info("Loading environment variables...")
	cfg := LoadConfig(log)
	if logMode == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	otelShutdown := observability.InitOTel(ctx, log, cfg.Otel)

	st, err := store.Open(ctx, cfg.Store, log)
	if err != nil {
		_ = otelShutdown(ctx)
		log.Sync()
		return nil, fmt.Errorf("init store: %w", err)
	}

	var rdb *redis.Client
	var lock seed.Locker = seed.NoopLocker{}
	if cfg.RedisAddr != "" {
		rdb = redis.NewClient(&redis.Options{Addr: cfg.RedisAddr, Password: cfg.RedisPassword})
		lock = seed.NewRedisLocker(rdb, "", cfg.SeedLockTTL)
	}

	var metrics *observability.Metrics
	if cfg.MetricsEnabled {
		metrics = observability.NewMetrics()
	}

	serviceset := wireServices(st, log, cfg)
	handlerset := wireHandlers(log, serviceset)
	router := wireRouter(log, cfg, handlerset, serviceset, metrics)

	return &App{
		Log:          log,
		Store:        st,
		Router:       router,
		Cfg:          cfg,
		Services:     serviceset,
		Metrics:      metrics,
		redis:        rdb,
		seeder:       seed.New(st, serviceset.Cars, serviceset.Testimonials, serviceset.Blog, lock, log),
		otelShutdown: otelShutdown,
	}, nil
}

// Start seeds starter content and launches background collectors.
func (a *App) Start(ctx context.Context) error {
	if a == nil || a.cancel != nil {
		return nil
	}
	if a.Cfg.SeedOnStart {
		res, err := a.seeder.Run(ctx)
		if err != nil {
			return fmt.Errorf("seed starter content: %w", err)
		}
		a.Log.Info("Starter content checked",
			"cars", res.Cars, "testimonials", res.Testimonials, "blog_posts", res.BlogPosts, "skipped", res.Skipped)
	}

	bgCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	a.cancel = cancel
	if a.Metrics != nil {
		a.Metrics.StartLeadCollector(bgCtx, a.Log, leadCounter{a.Store.Leads}, a.Cfg.MetricsInterval)
	}
	return nil
}

func (a *App) Run(ctx context.Context) error {
	if a == nil || a.Router == nil {
		return fmt.Errorf("app not initialized")
	}
	return http.NewServer(a.Router, a.Log).Run(ctx, ":"+a.Cfg.Port)
}

func (a *App) Close() {
	if a == nil {
		return
	}
	if a.cancel != nil {
		a.cancel()
		a.cancel = nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if a.otelShutdown != nil {
		if err := a.otelShutdown(ctx); err != nil {
			a.Log.Warn("otel shutdown failed", "error", err)
		}
	}
	if a.redis != nil {
		_ = a.redis.Close()
	}
	if a.Store != nil {
		if err := a.Store.Close(); err != nil {
			a.Log.Warn("store close failed", "error", err)
		}
	}
	if a.Log != nil {
		a.Log.Sync()
	}
}

type leadCounter struct {
	leads store.Collection[leads.Lead]
}

func (c leadCounter) GroupCount(ctx context.Context, field string) (map[string]int64, error) {
	return c.leads.GroupCount(ctx, nil, field)
}
