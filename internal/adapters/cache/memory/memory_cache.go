package memory

import (
	"context"
	"sync"
	"time"

	"github.com/2tzz/Wheather-App-Fidenz/internal/domain/weather"
)

type entry struct {
	value     weather.Weather
	expiresAt time.Time
}

// Cache хранит погоду в памяти процесса; пригоден для одного инстанса.
type Cache struct {
	mu      sync.RWMutex
	entries map[int64]entry
}

func NewCache() *Cache {
	return &Cache{entries: make(map[int64]entry)}
}

func (c *Cache) Get(ctx context.Context, cityID int64) (weather.Weather, bool, error) {
	c.mu.RLock()
	e, ok := c.entries[cityID]
	c.mu.RUnlock()

	if !ok {
		return weather.Weather{}, false, nil
	}
	if time.Now().After(e.expiresAt) {
		c.mu.Lock()
		// перечитываем под полной блокировкой: запись могли успеть обновить
		if cur, ok := c.entries[cityID]; ok && time.Now().After(cur.expiresAt) {
			delete(c.entries, cityID)
		}
		c.mu.Unlock()
		return weather.Weather{}, false, nil
	}
	return e.value, true, nil
}

func (c *Cache) Set(ctx context.Context, cityID int64, w weather.Weather, ttl time.Duration) error {
	c.mu.Lock()
	c.entries[cityID] = entry{value: w, expiresAt: time.Now().Add(ttl)}
	c.mu.Unlock()
	return nil
}
