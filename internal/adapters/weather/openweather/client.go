package openweather

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	customErrors "github.com/2tzz/Wheather-App-Fidenz/internal/domain/errors"
	"github.com/2tzz/Wheather-App-Fidenz/internal/domain/weather"
	"github.com/2tzz/Wheather-App-Fidenz/internal/infra/config"
	"github.com/2tzz/Wheather-App-Fidenz/internal/infra/observability"
)

// Client ходит в OpenWeatherMap /data/2.5/weather.
type Client struct {
	apiKey     string
	apiURL     string
	httpClient *http.Client
}

func NewClient(cfg *config.Config) (*Client, error) {
	if cfg.WeatherAPIKey == "" {
		return nil, fmt.Errorf("openweather: api key is required")
	}
	return &Client{
		apiKey: cfg.WeatherAPIKey,
		apiURL: cfg.WeatherAPIURL,
		httpClient: &http.Client{
			Timeout: cfg.WeatherTimeout,
		},
	}, nil
}

// ответ /data/2.5/weather; поля, которых нет в выдаче, остаются нулевыми
type currentResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Main struct {
		Temp     float64 `json:"temp"`
		TempMin  float64 `json:"temp_min"`
		TempMax  float64 `json:"temp_max"`
		Pressure int     `json:"pressure"`
		Humidity int     `json:"humidity"`
	} `json:"main"`
	Weather []struct {
		Description string `json:"description"`
		Icon        string `json:"icon"`
	} `json:"weather"`
	Wind struct {
		Speed float64 `json:"speed"`
	} `json:"wind"`
	Sys struct {
		Country string `json:"country"`
		Sunrise int64  `json:"sunrise"`
		Sunset  int64  `json:"sunset"`
	} `json:"sys"`
	Visibility int   `json:"visibility"`
	Dt         int64 `json:"dt"`
	Timezone   int   `json:"timezone"`
}

func (c *Client) CurrentByID(ctx context.Context, cityID int64) (weather.Weather, error) {
	query := url.Values{}
	query.Set("id", strconv.FormatInt(cityID, 10))

	resp, err := c.call(ctx, "current", query)
	if err != nil {
		return weather.Weather{}, err
	}
	return toDomain(resp), nil
}

func (c *Client) SearchCity(ctx context.Context, name string) (weather.City, error) {
	query := url.Values{}
	query.Set("q", name)

	resp, err := c.call(ctx, "search", query)
	if err != nil {
		return weather.City{}, err
	}
	return weather.City{
		ID:      resp.ID,
		Name:    resp.Name,
		Country: resp.Sys.Country,
	}, nil
}

func (c *Client) call(ctx context.Context, endpoint string, query url.Values) (currentResponse, error) {
	query.Set("appid", c.apiKey)
	query.Set("units", "metric")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.apiURL+"?"+query.Encode(), nil)
	if err != nil {
		return currentResponse{}, customErrors.WrapUpstream(err, endpoint)
	}
	req.Header.Set("Accept", "application/json")

	started := time.Now()
	httpResp, err := c.httpClient.Do(req)
	if err != nil {
		observability.ObserveUpstream(endpoint, "transport_error", started)
		return currentResponse{}, customErrors.WrapUpstream(err, endpoint)
	}
	defer httpResp.Body.Close()
	observability.ObserveUpstream(endpoint, strconv.Itoa(httpResp.StatusCode), started)

	if httpResp.StatusCode != http.StatusOK {
		// тело не читаем дальше лимита: хватит кода и короткого фрагмента
		body, _ := io.ReadAll(io.LimitReader(httpResp.Body, 512))
		return currentResponse{}, c.mapStatus(endpoint, httpResp.StatusCode, body)
	}

	var resp currentResponse
	if err := json.NewDecoder(httpResp.Body).Decode(&resp); err != nil {
		return currentResponse{}, customErrors.WrapUpstream(err, endpoint)
	}
	return resp, nil
}

func (c *Client) mapStatus(endpoint string, status int, body []byte) error {
	switch status {
	case http.StatusNotFound:
		return customErrors.ErrCityNotFound
	case http.StatusUnauthorized:
		return customErrors.WrapUpstream(fmt.Errorf("invalid api key (status %d)", status), endpoint)
	case http.StatusTooManyRequests:
		return customErrors.WrapUpstream(fmt.Errorf("provider rate limit (status %d)", status), endpoint)
	default:
		return customErrors.WrapUpstream(fmt.Errorf("unexpected status %d: %s", status, body), endpoint)
	}
}

func toDomain(resp currentResponse) weather.Weather {
	w := weather.Weather{
		CityID:         resp.ID,
		CityName:       resp.Name,
		Country:        resp.Sys.Country,
		Temp:           resp.Main.Temp,
		TempMin:        resp.Main.TempMin,
		TempMax:        resp.Main.TempMax,
		Pressure:       resp.Main.Pressure,
		Humidity:       resp.Main.Humidity,
		VisibilityM:    resp.Visibility,
		WindSpeed:      resp.Wind.Speed,
		TimezoneOffset: resp.Timezone,
		FetchedAt:      time.Now().UTC(),
	}
	if len(resp.Weather) > 0 {
		w.Description = resp.Weather[0].Description
		w.Icon = resp.Weather[0].Icon
	}
	if resp.Dt != 0 {
		w.ObservedAt = time.Unix(resp.Dt, 0).UTC()
	}
	if resp.Sys.Sunrise != 0 {
		w.Sunrise = time.Unix(resp.Sys.Sunrise, 0).UTC()
	}
	if resp.Sys.Sunset != 0 {
		w.Sunset = time.Unix(resp.Sys.Sunset, 0).UTC()
	}
	return w
}
