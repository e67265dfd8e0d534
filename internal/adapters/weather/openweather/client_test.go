package openweather

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	customErrors "github.com/2tzz/Wheather-App-Fidenz/internal/domain/errors"
	"github.com/2tzz/Wheather-App-Fidenz/internal/infra/config"
)

const colomboJSON = `{
  "id": 1248991,
  "name": "Colombo",
  "timezone": 19800,
  "dt": 1710486000,
  "visibility": 8000,
  "main": {"temp": 29.4, "temp_min": 28.0, "temp_max": 31.2, "pressure": 1009, "humidity": 74},
  "weather": [{"description": "scattered clouds", "icon": "03d"}],
  "wind": {"speed": 4.6},
  "sys": {"country": "LK", "sunrise": 1710463260, "sunset": 1710506820}
}`

func newClient(t *testing.T, baseURL string) *Client {
	t.Helper()
	c, err := NewClient(&config.Config{
		WeatherAPIKey:  "test-key",
		WeatherAPIURL:  baseURL,
		WeatherTimeout: 2 * time.Second,
	})
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	return c
}

func TestClient_CurrentByID(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if got := q.Get("id"); got != "1248991" {
			t.Errorf("id = %q", got)
		}
		if got := q.Get("appid"); got != "test-key" {
			t.Errorf("appid = %q", got)
		}
		if got := q.Get("units"); got != "metric" {
			t.Errorf("units = %q", got)
		}
		if got := r.Header.Get("Accept"); got != "application/json" {
			t.Errorf("Accept = %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(colomboJSON))
	}))
	defer srv.Close()

	w, err := newClient(t, srv.URL).CurrentByID(context.Background(), 1248991)
	if err != nil {
		t.Fatalf("CurrentByID: %v", err)
	}

	if w.CityID != 1248991 || w.CityName != "Colombo" || w.Country != "LK" {
		t.Errorf("city fields: %+v", w)
	}
	if w.Temp != 29.4 || w.TempMin != 28.0 || w.TempMax != 31.2 {
		t.Errorf("temps: %+v", w)
	}
	if w.Pressure != 1009 || w.Humidity != 74 || w.VisibilityM != 8000 {
		t.Errorf("main fields: %+v", w)
	}
	if w.Description != "scattered clouds" || w.Icon != "03d" {
		t.Errorf("weather[0]: %+v", w)
	}
	if w.WindSpeed != 4.6 || w.TimezoneOffset != 19800 {
		t.Errorf("wind/timezone: %+v", w)
	}
	if !w.ObservedAt.Equal(time.Unix(1710486000, 0).UTC()) {
		t.Errorf("ObservedAt = %v", w.ObservedAt)
	}
	if !w.Sunrise.Equal(time.Unix(1710463260, 0).UTC()) || !w.Sunset.Equal(time.Unix(1710506820, 0).UTC()) {
		t.Errorf("sunrise/sunset: %v %v", w.Sunrise, w.Sunset)
	}
	if w.FetchedAt.IsZero() {
		t.Error("FetchedAt is zero")
	}
}

func TestClient_SearchCity(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("q"); got != "Colombo" {
			t.Errorf("q = %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(colomboJSON))
	}))
	defer srv.Close()

	city, err := newClient(t, srv.URL).SearchCity(context.Background(), "Colombo")
	if err != nil {
		t.Fatalf("SearchCity: %v", err)
	}
	if city.ID != 1248991 || city.Name != "Colombo" || city.Country != "LK" {
		t.Errorf("city = %+v", city)
	}
}

func TestClient_CityNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"cod":"404","message":"city not found"}`))
	}))
	defer srv.Close()

	c := newClient(t, srv.URL)

	if _, err := c.SearchCity(context.Background(), "Atlantis"); !customErrors.IsCityNotFound(err) {
		t.Errorf("SearchCity err = %v", err)
	}
	if _, err := c.CurrentByID(context.Background(), 42); !customErrors.IsCityNotFound(err) {
		t.Errorf("CurrentByID err = %v", err)
	}
}

func TestClient_UpstreamErrors(t *testing.T) {
	cases := []struct {
		name   string
		status int
	}{
		{"unauthorized", http.StatusUnauthorized},
		{"rate_limited", http.StatusTooManyRequests},
		{"server_error", http.StatusInternalServerError},
		{"bad_gateway", http.StatusBadGateway},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.status)
			}))
			defer srv.Close()

			_, err := newClient(t, srv.URL).CurrentByID(context.Background(), 1)
			if !customErrors.IsUpstream(err) {
				t.Errorf("err = %v, want upstream", err)
			}
		})
	}
}

func TestClient_BadJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"id": `))
	}))
	defer srv.Close()

	if _, err := newClient(t, srv.URL).CurrentByID(context.Background(), 1); !customErrors.IsUpstream(err) {
		t.Errorf("err = %v, want upstream", err)
	}
}

func TestClient_TransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // соединение сразу обрывается

	if _, err := newClient(t, srv.URL).CurrentByID(context.Background(), 1); !customErrors.IsUpstream(err) {
		t.Errorf("err = %v, want upstream", err)
	}
}

func TestNewClient_RequiresKey(t *testing.T) {
	if _, err := NewClient(&config.Config{WeatherAPIURL: "http://localhost"}); err == nil {
		t.Fatal("expected error for empty api key")
	}
}
