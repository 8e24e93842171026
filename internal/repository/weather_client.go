package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"maritime-ai-server/internal/domain"
)

// OpenMeteoClient fetches current weather from the Open-Meteo forecast API.
type OpenMeteoClient struct {
	baseURL string
	client  *http.Client
	logger  domain.Logger
}

// NewOpenMeteoClient creates a weather client against baseURL.
func NewOpenMeteoClient(baseURL string, logger domain.Logger) *OpenMeteoClient {
	return &OpenMeteoClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: 10 * time.Second},
		logger:  logger,
	}
}

// CurrentWeather returns the live snapshot at a coordinate. ErrNoWeatherData
// means the API answered without a current_weather block.
func (c *OpenMeteoClient) CurrentWeather(ctx context.Context, lat, lon float64) (*domain.CurrentWeather, error) {
	params := url.Values{}
	params.Set("latitude", strconv.FormatFloat(lat, 'f', -1, 64))
	params.Set("longitude", strconv.FormatFloat(lon, 'f', -1, 64))
	params.Set("current_weather", "true")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/v1/forecast?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build weather request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("weather request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("weather request returned status %d", resp.StatusCode)
	}

	var payload struct {
		CurrentWeather *domain.CurrentWeather `json:"current_weather"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("failed to decode weather response: %w", err)
	}
	if payload.CurrentWeather == nil {
		return nil, domain.ErrNoWeatherData
	}

	c.logger.Debug("Fetched weather", "lat", lat, "lon", lon, "temperature", payload.CurrentWeather.Temperature)
	return payload.CurrentWeather, nil
}
