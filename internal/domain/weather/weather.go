package weather

import (
	"context"
	"time"
)

// City — результат резолва названия города у провайдера.
type City struct {
	ID      int64
	Name    string
	Country string
}

// Weather — текущая погода одного города в метрических единицах.
type Weather struct {
	CityID      int64
	CityName    string
	Country     string
	Description string
	Icon        string

	Temp    float64
	TempMin float64
	TempMax float64

	Pressure    int
	Humidity    int
	VisibilityM int // метры, 0 если провайдер не прислал
	WindSpeed   float64

	// TimezoneOffset — смещение локального времени города от UTC в секундах.
	TimezoneOffset int

	ObservedAt time.Time
	Sunrise    time.Time
	Sunset     time.Time

	FetchedAt time.Time
}

// Provider отдаёт данные внешнего погодного API.
type Provider interface {
	CurrentByID(ctx context.Context, cityID int64) (Weather, error)

	SearchCity(ctx context.Context, name string) (City, error)
}

// Cache хранит погоду с TTL; просроченные записи отбрасываются при чтении.
type Cache interface {
	Get(ctx context.Context, cityID int64) (Weather, bool, error)

	Set(ctx context.Context, cityID int64, w Weather, ttl time.Duration) error
}
