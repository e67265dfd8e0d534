package redis

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/2tzz/Wheather-App-Fidenz/internal/domain/weather"
)

const keyPrefix = "weather_"

// Cache держит погоду в Redis; несколько инстансов делят один кэш.
type Cache struct {
	client *redis.Client
}

func NewCache(client *redis.Client) *Cache {
	return &Cache{client: client}
}

func cacheKey(cityID int64) string {
	return keyPrefix + strconv.FormatInt(cityID, 10)
}

func (c *Cache) Get(ctx context.Context, cityID int64) (weather.Weather, bool, error) {
	raw, err := c.client.Get(ctx, cacheKey(cityID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return weather.Weather{}, false, nil
	}
	if err != nil {
		return weather.Weather{}, false, err
	}

	var w weather.Weather
	if err := json.Unmarshal(raw, &w); err != nil {
		// битую запись убираем и перечитываем из источника
		_ = c.client.Del(ctx, cacheKey(cityID)).Err()
		return weather.Weather{}, false, nil
	}
	return w, true, nil
}

func (c *Cache) Set(ctx context.Context, cityID int64, w weather.Weather, ttl time.Duration) error {
	raw, err := json.Marshal(w)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, cacheKey(cityID), raw, ttl).Err()
}
