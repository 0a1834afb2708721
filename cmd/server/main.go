package main

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/flown/flown/internal/airports"
	"github.com/flown/flown/internal/cache"
	"github.com/flown/flown/internal/engine"
	"github.com/flown/flown/internal/handler"
	"github.com/flown/flown/internal/providers"
	"github.com/flown/flown/internal/ratelimit"
)

type Config struct {
	Port             string
	CacheEnabled     bool
	RedisHost        string
	RedisPort        string
	RedisPassword    string
	MaxConcurrent    int64
	InternationalTTL time.Duration
	DomesticTTL      time.Duration
}

func main() {
	if err := godotenv.Load(); err == nil {
		log.Println("Loaded configuration from .env")
	}
	cfg := loadConfig()

	e := echo.New()
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())
	e.Use(middleware.RequestID())

	rateLimiter := ratelimit.NewProviderLimiterWithDefaults()
	rateLimiter.SetLimit("amadeus", 20, 30)
	rateLimiter.SetLimit("airlabs", 15, 25)

	international := providers.NewAmadeusProvider(rateLimiter)
	domestic := providers.NewAirLabsProvider(rateLimiter)

	var store cache.Store
	if cfg.CacheEnabled {
		redisStore, err := cache.NewRedisStore(cache.RedisConfig{
			Host:     cfg.RedisHost,
			Port:     cfg.RedisPort,
			Password: cfg.RedisPassword,
		})
		if err != nil {
			log.Printf("Redis unavailable (%v), running without cache", err)
			store = cache.NewNoOpStore()
		} else {
			store = redisStore
			log.Printf("Redis cache enabled (host: %s:%s)", cfg.RedisHost, cfg.RedisPort)
		}
	} else {
		store = cache.NewNoOpStore()
		log.Println("Cache disabled")
	}

	engineCfg := engine.DefaultConfig()
	engineCfg.International = international
	engineCfg.Domestic = domestic
	engineCfg.Cache = store
	engineCfg.Classifier = airports.NewDefaultClassifier()
	engineCfg.MaxConcurrentFetches = cfg.MaxConcurrent
	engineCfg.InternationalTTL = cfg.InternationalTTL
	engineCfg.DomesticTTL = cfg.DomesticTTL
	searchEngine := engine.New(engineCfg)

	searchHandler := handler.NewSearchHandler(searchEngine)

	api := e.Group("/api/v1")
	api.POST("/search", searchHandler.Search)
	e.GET("/health", handler.HealthHandler)

	log.Printf("Starting itinerary search server on port %s", cfg.Port)

	if err := e.Start(":" + cfg.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

func loadConfig() Config {
	return Config{
		Port:             getEnv("PORT", "8080"),
		CacheEnabled:     getEnvBool("CACHE_ENABLED", true),
		RedisHost:        getEnv("REDIS_HOST", "localhost"),
		RedisPort:        getEnv("REDIS_PORT", "6379"),
		RedisPassword:    getEnv("REDIS_PASSWORD", ""),
		MaxConcurrent:    getEnvInt64("MAX_CONCURRENT_FETCHES", 20),
		InternationalTTL: getEnvDuration("CACHE_TTL_INTERNATIONAL", 3*time.Hour),
		DomesticTTL:      getEnvDuration("CACHE_TTL_DOMESTIC", 6*time.Hour),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value == "true" || value == "1" || value == "yes"
}

func getEnvInt64(key string, defaultValue int64) int64 {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	n, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return defaultValue
	}
	return n
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	duration, err := time.ParseDuration(value)
	if err != nil {
		return defaultValue
	}
	return duration
}
