package service

import (
	"context"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	customErrors "github.com/2tzz/Wheather-App-Fidenz/internal/domain/errors"
	"github.com/2tzz/Wheather-App-Fidenz/internal/domain/weather"
	"github.com/2tzz/Wheather-App-Fidenz/internal/infra/config"
	"github.com/2tzz/Wheather-App-Fidenz/internal/infra/observability"
)

// Service отдаёт текущую погоду, пряча источник за кэшем.
type Service interface {
	CurrentByID(ctx context.Context, cityID int64) (weather.Weather, error)
	SearchCity(ctx context.Context, name string) (weather.City, error)
}

type weatherService struct {
	provider weather.Provider
	cache    weather.Cache
	ttl      time.Duration
	group    singleflight.Group
	logger   *zap.Logger
}

func NewService(provider weather.Provider, cache weather.Cache, cfg *config.Config, logger *zap.Logger) Service {
	return &weatherService{
		provider: provider,
		cache:    cache,
		ttl:      cfg.WeatherCacheTTL,
		logger:   logger,
	}
}

func (s *weatherService) CurrentByID(ctx context.Context, cityID int64) (weather.Weather, error) {
	w, ok, err := s.cache.Get(ctx, cityID)
	if err != nil {
		// кэш недоступен: не роняем запрос, идём к источнику
		s.logger.Warn("weather cache get failed",
			zap.Int64("cityId", cityID), zap.Error(err))
	} else if ok {
		observability.CacheHitsTotal.Inc()
		return w, nil
	}
	observability.CacheMissesTotal.Inc()

	// одновременные промахи по одному городу сводим к одному вызову источника
	v, err, _ := s.group.Do(strconv.FormatInt(cityID, 10), func() (interface{}, error) {
		fresh, err := s.provider.CurrentByID(ctx, cityID)
		if err != nil {
			return nil, err
		}
		if err := s.cache.Set(ctx, cityID, fresh, s.ttl); err != nil {
			s.logger.Warn("weather cache set failed",
				zap.Int64("cityId", cityID), zap.Error(err))
		}
		return fresh, nil
	})
	if err != nil {
		return weather.Weather{}, err
	}
	return v.(weather.Weather), nil
}

func (s *weatherService) SearchCity(ctx context.Context, name string) (weather.City, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return weather.City{}, customErrors.NewInvalidArgument("city name is empty")
	}
	return s.provider.SearchCity(ctx, name)
}
