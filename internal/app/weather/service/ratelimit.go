package service

import (
	"context"

	"golang.org/x/time/rate"

	customErrors "github.com/2tzz/Wheather-App-Fidenz/internal/domain/errors"
	"github.com/2tzz/Wheather-App-Fidenz/internal/domain/weather"
)

// RateLimitedProvider не даёт превысить квоту бесплатного плана OpenWeatherMap.
// Wait блокирует до освобождения слота либо до отмены контекста.
type RateLimitedProvider struct {
	inner   weather.Provider
	limiter *rate.Limiter
}

func NewRateLimitedProvider(inner weather.Provider, rps float64, burst int) *RateLimitedProvider {
	return &RateLimitedProvider{
		inner:   inner,
		limiter: rate.NewLimiter(rate.Limit(rps), burst),
	}
}

func (p *RateLimitedProvider) CurrentByID(ctx context.Context, cityID int64) (weather.Weather, error) {
	if err := p.limiter.Wait(ctx); err != nil {
		return weather.Weather{}, customErrors.WrapUpstream(err, "rate limiter")
	}
	return p.inner.CurrentByID(ctx, cityID)
}

func (p *RateLimitedProvider) SearchCity(ctx context.Context, name string) (weather.City, error) {
	if err := p.limiter.Wait(ctx); err != nil {
		return weather.City{}, customErrors.WrapUpstream(err, "rate limiter")
	}
	return p.inner.SearchCity(ctx, name)
}
