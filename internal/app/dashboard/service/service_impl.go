package service

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	weathersvc "github.com/2tzz/Wheather-App-Fidenz/internal/app/weather/service"
	"github.com/2tzz/Wheather-App-Fidenz/internal/domain/city"
	"github.com/2tzz/Wheather-App-Fidenz/internal/domain/weather"
)

// сколько городов опрашиваем одновременно
const fetchConcurrency = 5

// Entry — строка дашборда: город и погода либо ошибка её получения.
type Entry struct {
	City    city.FollowedCity
	Weather *weather.Weather
	Err     error
}

type Service interface {
	List(ctx context.Context, userID uuid.UUID) ([]Entry, error)
	AddCity(ctx context.Context, userID uuid.UUID, name string) (city.FollowedCity, error)
	RemoveCity(ctx context.Context, userID uuid.UUID, cityID int64) error
	CityWeather(ctx context.Context, cityID int64) (weather.Weather, error)
}

type dashboardService struct {
	cities  city.Repo
	weather weathersvc.Service
	logger  *zap.Logger
}

func NewService(cities city.Repo, weather weathersvc.Service, logger *zap.Logger) Service {
	return &dashboardService{
		cities:  cities,
		weather: weather,
		logger:  logger,
	}
}

// List собирает погоду по всем городам пользователя. Сбой по одному городу
// не прячет остальные: такая строка возвращается с ошибкой вместо погоды.
func (s *dashboardService) List(ctx context.Context, userID uuid.UUID) ([]Entry, error) {
	followed, err := s.cities.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	entries := make([]Entry, len(followed))
	var g errgroup.Group
	g.SetLimit(fetchConcurrency)

	for i, c := range followed {
		entries[i].City = c
		g.Go(func() error {
			w, err := s.weather.CurrentByID(ctx, c.CityID)
			if err != nil {
				s.logger.Warn("weather fetch failed",
					zap.Int64("cityId", c.CityID),
					zap.String("city", c.Name),
					zap.Error(err))
				entries[i].Err = err
				return nil
			}
			entries[i].Weather = &w
			return nil
		})
	}
	_ = g.Wait()

	return entries, nil
}

func (s *dashboardService) AddCity(ctx context.Context, userID uuid.UUID, name string) (city.FollowedCity, error) {
	found, err := s.weather.SearchCity(ctx, name)
	if err != nil {
		return city.FollowedCity{}, err
	}

	return s.cities.Add(ctx, city.FollowedCity{
		UserID:  userID,
		CityID:  found.ID,
		Name:    found.Name,
		Country: found.Country,
	})
}

func (s *dashboardService) RemoveCity(ctx context.Context, userID uuid.UUID, cityID int64) error {
	return s.cities.Remove(ctx, userID, cityID)
}

func (s *dashboardService) CityWeather(ctx context.Context, cityID int64) (weather.Weather, error) {
	return s.weather.CurrentByID(ctx, cityID)
}
