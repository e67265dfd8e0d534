package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	redisv9 "github.com/redis/go-redis/v9"

	"github.com/2tzz/Wheather-App-Fidenz/internal/domain/weather"
)

func newCache(t *testing.T) (*Cache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redisv9.NewClient(&redisv9.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewCache(client), mr
}

func TestRedisCache_SetGet(t *testing.T) {
	c, _ := newCache(t)
	ctx := context.Background()

	want := weather.Weather{
		CityID:         1248991,
		CityName:       "Colombo",
		Country:        "LK",
		Temp:           29.4,
		Humidity:       74,
		TimezoneOffset: 19800,
		ObservedAt:     time.Unix(1710486000, 0).UTC(),
	}
	if err := c.Set(ctx, 1248991, want, time.Minute); err != nil {
		t.Fatalf("Set: %v", err)
	}

	got, ok, err := c.Get(ctx, 1248991)
	if err != nil || !ok {
		t.Fatalf("Get: ok=%v err=%v", ok, err)
	}
	if got.CityName != want.CityName || got.Temp != want.Temp || !got.ObservedAt.Equal(want.ObservedAt) {
		t.Errorf("got %+v, want %+v", got, want)
	}
}

func TestRedisCache_Miss(t *testing.T) {
	c, _ := newCache(t)

	_, ok, err := c.Get(context.Background(), 404)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if ok {
		t.Error("expected miss for unknown city")
	}
}

func TestRedisCache_TTL(t *testing.T) {
	c, mr := newCache(t)
	ctx := context.Background()

	if err := c.Set(ctx, 1, weather.Weather{CityID: 1}, 5*time.Minute); err != nil {
		t.Fatalf("Set: %v", err)
	}
	mr.FastForward(6 * time.Minute)

	_, ok, err := c.Get(ctx, 1)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if ok {
		t.Error("expected entry to expire after ttl")
	}
}

func TestRedisCache_CorruptedEntry(t *testing.T) {
	c, mr := newCache(t)
	ctx := context.Background()

	mr.Set("weather_7", "{not json")

	_, ok, err := c.Get(ctx, 7)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if ok {
		t.Error("corrupted entry must read as miss")
	}
	if mr.Exists("weather_7") {
		t.Error("corrupted entry must be deleted")
	}
}
