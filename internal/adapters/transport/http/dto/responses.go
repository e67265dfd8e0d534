package dto

import (
	"fmt"
	"time"

	"github.com/2tzz/Wheather-App-Fidenz/internal/domain/city"
	"github.com/2tzz/Wheather-App-Fidenz/internal/domain/weather"
)

// WeatherResponse — карточка погоды; времена уже переведены в пояс города.
type WeatherResponse struct {
	CityID       int64   `json:"cityId"`
	CityName     string  `json:"cityName"`
	Country      string  `json:"country,omitempty"`
	Description  string  `json:"description"`
	Icon         string  `json:"icon,omitempty"`
	Temp         float64 `json:"temp"`
	TempMin      float64 `json:"tempMin"`
	TempMax      float64 `json:"tempMax"`
	Pressure     int     `json:"pressure"`
	Humidity     int     `json:"humidity"`
	WindSpeed    float64 `json:"windSpeed"`
	VisibilityKm string  `json:"visibilityKm"`
	ObservedAt   string  `json:"observedAt"`
	Sunrise      string  `json:"sunrise"`
	Sunset       string  `json:"sunset"`
}

func NewWeatherResponse(w weather.Weather, now time.Time) WeatherResponse {
	return WeatherResponse{
		CityID:       w.CityID,
		CityName:     w.CityName,
		Country:      w.Country,
		Description:  w.Description,
		Icon:         w.Icon,
		Temp:         w.Temp,
		TempMin:      w.TempMin,
		TempMax:      w.TempMax,
		Pressure:     w.Pressure,
		Humidity:     w.Humidity,
		WindSpeed:    w.WindSpeed,
		VisibilityKm: FormatVisibilityKm(w.VisibilityM),
		ObservedAt:   w.LocalObservedAt(now),
		Sunrise:      w.LocalSunrise(now),
		Sunset:       w.LocalSunset(now),
	}
}

// FormatVisibilityKm печатает метры как километры с одним знаком; ноль — "N/A".
func FormatVisibilityKm(meters int) string {
	if meters <= 0 {
		return "N/A"
	}
	return fmt.Sprintf("%.1f", float64(meters)/1000)
}

type CityResponse struct {
	ID      int64     `json:"id"`
	Name    string    `json:"name"`
	Country string    `json:"country,omitempty"`
	AddedAt time.Time `json:"addedAt"`
}

func NewCityResponse(c city.FollowedCity) CityResponse {
	return CityResponse{
		ID:      c.CityID,
		Name:    c.Name,
		Country: c.Country,
		AddedAt: c.CreatedAt,
	}
}

// DashboardEntryResponse держит либо погоду, либо причину её отсутствия.
type DashboardEntryResponse struct {
	City    CityResponse     `json:"city"`
	Weather *WeatherResponse `json:"weather,omitempty"`
	Error   string           `json:"error,omitempty"`
}

type DashboardResponse struct {
	Cities []DashboardEntryResponse `json:"cities"`
}
