package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/2tzz/Wheather-App-Fidenz/internal/adapters/cache/memory"
	redisCache "github.com/2tzz/Wheather-App-Fidenz/internal/adapters/cache/redis"
	myRedisRepo "github.com/2tzz/Wheather-App-Fidenz/internal/adapters/db/redis"
	"github.com/2tzz/Wheather-App-Fidenz/internal/adapters/db/storage"
	"github.com/2tzz/Wheather-App-Fidenz/internal/adapters/transport/http/handler"
	httpmw "github.com/2tzz/Wheather-App-Fidenz/internal/adapters/transport/http/middleware"
	"github.com/2tzz/Wheather-App-Fidenz/internal/adapters/weather/openweather"
	"github.com/2tzz/Wheather-App-Fidenz/internal/app/auth/jwt"
	appsvc "github.com/2tzz/Wheather-App-Fidenz/internal/app/auth/service"
	dashboardsvc "github.com/2tzz/Wheather-App-Fidenz/internal/app/dashboard/service"
	weathersvc "github.com/2tzz/Wheather-App-Fidenz/internal/app/weather/service"
	"github.com/2tzz/Wheather-App-Fidenz/internal/domain/weather"
	"github.com/2tzz/Wheather-App-Fidenz/internal/infra/config"
	lg "github.com/2tzz/Wheather-App-Fidenz/internal/infra/log"
	"github.com/2tzz/Wheather-App-Fidenz/internal/infra/observability"
	"github.com/2tzz/Wheather-App-Fidenz/internal/infra/server"
)

func main() {
	zapLog := lg.Must(os.Getenv("LOG_LEVEL"))
	defer zapLog.Sync()

	cfg, err := config.Load()
	if err != nil {
		zapLog.Fatal("failed to load config", zap.Error(err))
	}

	// уровень из .env виден только после загрузки конфигурации
	if l, err := lg.New(cfg.LogLevel); err == nil {
		zapLog = l
	}

	db, err := storage.Open(cfg)
	if err != nil {
		zapLog.Fatal("failed to connect to database", zap.Error(err))
	}
	sqlDB, err := db.DB()
	if err != nil {
		zapLog.Fatal("db handle", zap.Error(err))
	}
	defer sqlDB.Close()

	redisCli := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddress,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	defer redisCli.Close()

	tokens, err := jwt.NewTokenManager(cfg)
	if err != nil {
		zapLog.Fatal("failed to init token manager", zap.Error(err))
	}

	authSvc := appsvc.New(
		storage.NewUserRepo(db),
		myRedisRepo.NewRedisTokenRepo(redisCli),
		tokens, cfg, appsvc.NewValidator(),
	)

	owmClient, err := openweather.NewClient(cfg)
	if err != nil {
		zapLog.Fatal("failed to init weather client", zap.Error(err))
	}
	provider := weathersvc.NewRateLimitedProvider(
		owmClient, cfg.WeatherRateRPS, cfg.WeatherRateBurst,
	)

	var weatherCache weather.Cache
	switch cfg.WeatherCacheBackend {
	case config.CacheRedis:
		weatherCache = redisCache.NewCache(redisCli)
	default:
		weatherCache = memory.NewCache()
	}

	weatherSvc := weathersvc.NewService(provider, weatherCache, cfg, zapLog)
	dashSvc := dashboardsvc.NewService(storage.NewCityRepo(db), weatherSvc, zapLog)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(httpmw.RequestLogger(zapLog))
	router.Use(observability.HTTPMetrics())
	router.Use(httpmw.NewRateLimitPerIP(
		int(cfg.RateLimitRPS), cfg.RateLimitBurst, 10_000, time.Hour,
	))

	// CORS включается только когда заданы origin-ы
	if len(cfg.AllowedOrigins) > 0 {
		router.Use(cors.New(cors.Config{
			AllowOrigins: cfg.AllowedOrigins,
			AllowMethods: []string{"GET", "POST", "DELETE", "OPTIONS"},
			AllowHeaders: []string{
				"Origin", "Content-Type", "Accept",
				"Authorization",
				"X-Requested-With",
			},
			ExposeHeaders:    []string{"Content-Length"},
			AllowCredentials: cfg.AllowCredentials,
			MaxAge:           12 * time.Hour,
		}))
	}

	handler.New(authSvc, dashSvc, cfg, zapLog).RegisterRoutes(router)

	rootCtx, cancel := context.WithCancel(context.Background())
	defer cancel()
	g, ctx := errgroup.WithContext(rootCtx)

	g.Go(func() error {
		return server.StartHTTPServer(ctx, cfg, router, zapLog)
	})

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-quit:
		zapLog.Info("shutdown signal received")
		cancel()
	case <-ctx.Done():
	}

	if err := g.Wait(); err != nil {
		zapLog.Error("server terminated", zap.Error(err))
	}
}
