package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"maritime-ai-server/internal/domain"
)

// GeoIPClient geolocates a caller through ip-api.com. Private and loopback
// addresses are first resolved to the public egress IP via ipify, so local
// development still produces a plausible position.
type GeoIPClient struct {
	ipAPIURL string
	ipifyURL string
	client   *http.Client
	logger   domain.Logger
}

// NewGeoIPClient creates a locator against the given API endpoints.
func NewGeoIPClient(ipAPIURL, ipifyURL string, logger domain.Logger) *GeoIPClient {
	return &GeoIPClient{
		ipAPIURL: strings.TrimRight(ipAPIURL, "/"),
		ipifyURL: strings.TrimRight(ipifyURL, "/"),
		client:   &http.Client{Timeout: 10 * time.Second},
		logger:   logger,
	}
}

// Locate geolocates ip. ErrLocationUnavailable means the lookup answered
// but could not place the address.
func (c *GeoIPClient) Locate(ctx context.Context, ip string) (*domain.VesselLocation, error) {
	if isPrivateIP(ip) {
		publicIP, err := c.publicIP(ctx)
		if err != nil {
			return nil, err
		}
		ip = publicIP
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.ipAPIURL+"/json/"+ip, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build geolocation request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("geolocation request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("geolocation request returned status %d", resp.StatusCode)
	}

	var payload struct {
		Status  string  `json:"status"`
		City    string  `json:"city"`
		Country string  `json:"country"`
		Lat     float64 `json:"lat"`
		Lon     float64 `json:"lon"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("failed to decode geolocation response: %w", err)
	}
	if payload.Status != "success" {
		return nil, domain.ErrLocationUnavailable
	}

	c.logger.Debug("Located caller", "ip", ip, "city", payload.City, "country", payload.Country)
	return &domain.VesselLocation{
		City:    payload.City,
		Country: payload.Country,
		Lat:     payload.Lat,
		Lon:     payload.Lon,
	}, nil
}

func (c *GeoIPClient) publicIP(ctx context.Context) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.ipifyURL+"?format=json", nil)
	if err != nil {
		return "", fmt.Errorf("failed to build public ip request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("public ip request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("public ip request returned status %d", resp.StatusCode)
	}

	var payload struct {
		IP string `json:"ip"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return "", fmt.Errorf("failed to decode public ip response: %w", err)
	}
	if payload.IP == "" {
		return "", domain.ErrLocationUnavailable
	}
	return payload.IP, nil
}

func isPrivateIP(ip string) bool {
	if ip == "" || ip == "0.0.0.0" || ip == "::1" {
		return true
	}
	return strings.HasPrefix(ip, "127.") || strings.HasPrefix(ip, "192.168.") || strings.HasPrefix(ip, "10.")
}
