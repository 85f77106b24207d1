package app

import (
	"time"

	"github.com/vwconsorcio/consorcio-backend/internal/data/db"
	"github.com/vwconsorcio/consorcio-backend/internal/data/store"
	"github.com/vwconsorcio/consorcio-backend/internal/observability"
	"github.com/vwconsorcio/consorcio-backend/internal/platform/envutil"
	"github.com/vwconsorcio/consorcio-backend/internal/platform/logger"
)

type Config struct {
	Env  string
	Port string

	Store store.Config

	RedisAddr     string
	RedisPassword string
	SeedOnStart   bool
	SeedLockTTL   time.Duration

	AdminJWTSecret    string
	AdminPasswordHash string
	AdminTokenTTL     time.Duration

	CORSOrigins      []string
	PopularCarsLimit int

	MetricsEnabled  bool
	MetricsInterval time.Duration
	Otel            observability.OtelConfig
}

func LoadConfig(log *logger.Logger) Config {
	env := envutil.String("APP_ENV", "development", log)
	cfg := Config{
		Env:  env,
		Port: envutil.String("PORT", "8001", log),
		Store: store.Config{
			Driver:      envutil.String("STORE_DRIVER", store.DriverPostgres, log),
			PostgresDSN: envutil.String("POSTGRES_DSN", "", log),
			Postgres: db.PostgresConfig{
				Host:     envutil.String("POSTGRES_HOST", "localhost", log),
				Port:     envutil.String("POSTGRES_PORT", "5432", log),
				User:     envutil.String("POSTGRES_USER", "postgres", log),
				Password: envutil.String("POSTGRES_PASSWORD", "", log),
				Name:     envutil.String("POSTGRES_NAME", "consorcio", log),
				SSLMode:  envutil.String("POSTGRES_SSLMODE", "disable", log),
			},
			SQLitePath: envutil.String("SQLITE_PATH", "consorcio.db", log),
			BoltPath:   envutil.String("BOLT_PATH", "consorcio.bolt", log),
			MongoURL:   envutil.String("MONGO_URL", "mongodb://localhost:27017", log),
			DBName:     envutil.String("DB_NAME", "consorcio", log),
		},
		RedisAddr:     envutil.String("REDIS_ADDR", "", log),
		RedisPassword: envutil.String("REDIS_PASSWORD", "", log),
		SeedOnStart:   envutil.Bool("SEED_ON_START", true, log),
		SeedLockTTL:   envutil.Duration("SEED_LOCK_TTL", 30*time.Second, log),

		AdminJWTSecret:    envutil.String("ADMIN_JWT_SECRET", "", log),
		AdminPasswordHash: envutil.String("ADMIN_PASSWORD_HASH", "", log),
		AdminTokenTTL:     envutil.Duration("ADMIN_TOKEN_TTL", 12*time.Hour, log),

		CORSOrigins:      envutil.List("CORS_ALLOW_ORIGINS", []string{"*"}, log),
		PopularCarsLimit: envutil.Int("POPULAR_CARS_LIMIT", 5, log),

		MetricsEnabled:  envutil.Bool("METRICS_ENABLED", false, log),
		MetricsInterval: envutil.Duration("METRICS_COLLECT_INTERVAL", 30*time.Second, log),
		Otel: observability.OtelConfig{
			Enabled:     envutil.Bool("OTEL_ENABLED", false, log),
			ServiceName: envutil.String("OTEL_SERVICE_NAME", "consorcio-backend", log),
			Environment: env,
			Version:     envutil.String("APP_VERSION", "1.0.0", log),
			Endpoint:    envutil.String("OTEL_EXPORTER_OTLP_ENDPOINT", "", log),
			Headers:     observability.ParseHeaders(envutil.String("OTEL_EXPORTER_OTLP_HEADERS", "", log)),
			Insecure:    envutil.Bool("OTEL_EXPORTER_OTLP_INSECURE", false, log),
			SampleRatio: envutil.Float("OTEL_SAMPLER_RATIO", 1, log),
		},
	}
	return cfg
}
