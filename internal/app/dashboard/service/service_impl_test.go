package service_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	dashboardsvc "github.com/2tzz/Wheather-App-Fidenz/internal/app/dashboard/service"
	"github.com/2tzz/Wheather-App-Fidenz/internal/domain/city"
	customErrors "github.com/2tzz/Wheather-App-Fidenz/internal/domain/errors"
	"github.com/2tzz/Wheather-App-Fidenz/internal/domain/weather"
)

/* ─── заглушки ─── */

type cityRepoStub struct {
	mu     sync.Mutex
	nextID uint
	rows   []city.FollowedCity
}

func (r *cityRepoStub) Add(ctx context.Context, c city.FollowedCity) (city.FollowedCity, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, row := range r.rows {
		if row.UserID == c.UserID && row.CityID == c.CityID {
			return city.FollowedCity{}, customErrors.ErrAlreadyExists
		}
	}
	r.nextID++
	c.ID = r.nextID
	r.rows = append(r.rows, c)
	return c, nil
}

func (r *cityRepoStub) Remove(ctx context.Context, userID uuid.UUID, cityID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, row := range r.rows {
		if row.UserID == userID && row.CityID == cityID {
			r.rows = append(r.rows[:i], r.rows[i+1:]...)
			return nil
		}
	}
	return customErrors.ErrNotFound
}

func (r *cityRepoStub) ListByUser(ctx context.Context, userID uuid.UUID) ([]city.FollowedCity, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []city.FollowedCity
	for _, row := range r.rows {
		if row.UserID == userID {
			out = append(out, row)
		}
	}
	return out, nil
}

type weatherSvcStub struct {
	mu      sync.Mutex
	calls   int
	broken  map[int64]error
	known   map[string]weather.City
	latency time.Duration
}

func (s *weatherSvcStub) CurrentByID(ctx context.Context, cityID int64) (weather.Weather, error) {
	s.mu.Lock()
	s.calls++
	s.mu.Unlock()
	if s.latency > 0 {
		time.Sleep(s.latency)
	}
	if err, ok := s.broken[cityID]; ok {
		return weather.Weather{}, err
	}
	return weather.Weather{CityID: cityID, Temp: float64(cityID)}, nil
}

func (s *weatherSvcStub) SearchCity(ctx context.Context, name string) (weather.City, error) {
	if c, ok := s.known[name]; ok {
		return c, nil
	}
	return weather.City{}, customErrors.ErrCityNotFound
}

func (s *weatherSvcStub) callCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

func newDashboard(repo *cityRepoStub, ws *weatherSvcStub) dashboardsvc.Service {
	return dashboardsvc.NewService(repo, ws, zap.NewNop())
}

func follow(t *testing.T, repo *cityRepoStub, userID uuid.UUID, cityID int64, name string) {
	t.Helper()
	_, err := repo.Add(context.Background(), city.FollowedCity{
		UserID: userID, CityID: cityID, Name: name,
	})
	require.NoError(t, err)
}

/* ─── тесты ─── */

func TestDashboard_ListWithWeather(t *testing.T) {
	repo := &cityRepoStub{}
	ws := &weatherSvcStub{}
	userID := uuid.New()

	follow(t, repo, userID, 524901, "Moscow")
	follow(t, repo, userID, 2643743, "London")

	entries, err := newDashboard(repo, ws).List(context.Background(), userID)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	require.Equal(t, int64(524901), entries[0].City.CityID)
	require.Equal(t, int64(2643743), entries[1].City.CityID)
	for _, e := range entries {
		require.NoError(t, e.Err)
		require.NotNil(t, e.Weather)
		require.Equal(t, e.City.CityID, e.Weather.CityID)
	}
}

func TestDashboard_ListKeepsOrderUnderConcurrency(t *testing.T) {
	repo := &cityRepoStub{}
	ws := &weatherSvcStub{latency: 5 * time.Millisecond}
	userID := uuid.New()

	ids := []int64{10, 20, 30, 40, 50, 60, 70}
	for _, id := range ids {
		follow(t, repo, userID, id, "city")
	}

	entries, err := newDashboard(repo, ws).List(context.Background(), userID)
	require.NoError(t, err)
	require.Len(t, entries, len(ids))
	for i, id := range ids {
		require.Equal(t, id, entries[i].City.CityID)
		require.Equal(t, id, entries[i].Weather.CityID)
	}
}

func TestDashboard_ListPartialFailure(t *testing.T) {
	repo := &cityRepoStub{}
	ws := &weatherSvcStub{broken: map[int64]error{
		2643743: customErrors.WrapUpstream(context.DeadlineExceeded, "current"),
	}}
	userID := uuid.New()

	follow(t, repo, userID, 524901, "Moscow")
	follow(t, repo, userID, 2643743, "London")
	follow(t, repo, userID, 1248991, "Colombo")

	entries, err := newDashboard(repo, ws).List(context.Background(), userID)
	require.NoError(t, err)
	require.Len(t, entries, 3)

	require.NotNil(t, entries[0].Weather)
	require.Nil(t, entries[1].Weather)
	require.True(t, customErrors.IsUpstream(entries[1].Err))
	require.NotNil(t, entries[2].Weather)
}

func TestDashboard_ListEmpty(t *testing.T) {
	entries, err := newDashboard(&cityRepoStub{}, &weatherSvcStub{}).
		List(context.Background(), uuid.New())
	require.NoError(t, err)
	require.Empty(t, entries)
}

func TestDashboard_ListIsolatedPerUser(t *testing.T) {
	repo := &cityRepoStub{}
	ws := &weatherSvcStub{}
	alice, bob := uuid.New(), uuid.New()

	follow(t, repo, alice, 524901, "Moscow")
	follow(t, repo, bob, 2643743, "London")

	entries, err := newDashboard(repo, ws).List(context.Background(), alice)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.Equal(t, int64(524901), entries[0].City.CityID)
}

func TestDashboard_AddCity(t *testing.T) {
	repo := &cityRepoStub{}
	ws := &weatherSvcStub{known: map[string]weather.City{
		"Colombo": {ID: 1248991, Name: "Colombo", Country: "LK"},
	}}
	userID := uuid.New()

	added, err := newDashboard(repo, ws).AddCity(context.Background(), userID, "Colombo")
	require.NoError(t, err)
	require.Equal(t, int64(1248991), added.CityID)
	require.Equal(t, "Colombo", added.Name)
	require.Equal(t, "LK", added.Country)
	require.Equal(t, userID, added.UserID)
	require.NotZero(t, added.ID)
}

func TestDashboard_AddCityUnknown(t *testing.T) {
	_, err := newDashboard(&cityRepoStub{}, &weatherSvcStub{}).
		AddCity(context.Background(), uuid.New(), "Atlantis")
	require.True(t, customErrors.IsCityNotFound(err))
}

func TestDashboard_AddCityTwice(t *testing.T) {
	repo := &cityRepoStub{}
	ws := &weatherSvcStub{known: map[string]weather.City{
		"Colombo": {ID: 1248991, Name: "Colombo", Country: "LK"},
	}}
	svc := newDashboard(repo, ws)
	userID := uuid.New()

	_, err := svc.AddCity(context.Background(), userID, "Colombo")
	require.NoError(t, err)

	_, err = svc.AddCity(context.Background(), userID, "Colombo")
	require.True(t, customErrors.IsAlreadyExists(err))
}

func TestDashboard_RemoveCity(t *testing.T) {
	repo := &cityRepoStub{}
	svc := newDashboard(repo, &weatherSvcStub{})
	userID := uuid.New()

	follow(t, repo, userID, 524901, "Moscow")

	require.NoError(t, svc.RemoveCity(context.Background(), userID, 524901))
	require.True(t, customErrors.IsNotFound(
		svc.RemoveCity(context.Background(), userID, 524901)))
}

func TestDashboard_CityWeather(t *testing.T) {
	svc := newDashboard(&cityRepoStub{}, &weatherSvcStub{})

	w, err := svc.CityWeather(context.Background(), 524901)
	require.NoError(t, err)
	require.Equal(t, int64(524901), w.CityID)
}

func TestDashboard_CityWeatherUpstreamError(t *testing.T) {
	ws := &weatherSvcStub{broken: map[int64]error{
		7: customErrors.WrapUpstream(context.DeadlineExceeded, "current"),
	}}
	_, err := newDashboard(&cityRepoStub{}, ws).CityWeather(context.Background(), 7)
	require.True(t, customErrors.IsUpstream(err))
}
