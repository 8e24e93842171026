package domain

import (
	"context"
	"fmt"
	"strings"
)

// ChatRequest is the body of the chat endpoint.
type ChatRequest struct {
	Message string `json:"message"`
	Engine  string `json:"engine,omitempty"`
}

// ChatReply is the chat endpoint response. Failures degrade into the reply
// text; the endpoint always answers 200.
type ChatReply struct {
	Reply string `json:"reply"`
}

// Port is a resolved port with its display name and coordinates.
type Port struct {
	Name string  `json:"name"`
	Lat  float64 `json:"lat"`
	Lon  float64 `json:"lon"`
}

// NormalizePortName lowercases a port name and collapses internal
// whitespace so lookups are insensitive to casing and spacing.
func NormalizePortName(name string) string {
	return strings.Join(strings.Fields(strings.ToLower(name)), " ")
}

// CurrentWeather is a live weather snapshot at a coordinate.
type CurrentWeather struct {
	Temperature   float64 `json:"temperature"`
	WindSpeed     float64 `json:"windspeed"`
	WindDirection float64 `json:"winddirection"`
	WeatherCode   int     `json:"weathercode"`
	Time          string  `json:"time"`
}

// String renders the snapshot as a chat reply fragment.
func (w CurrentWeather) String() string {
	return fmt.Sprintf("%.1f°C, wind %.1f km/h from %.0f°", w.Temperature, w.WindSpeed, w.WindDirection)
}

// VesselLocation is the geolocated position of a caller.
type VesselLocation struct {
	City    string  `json:"city"`
	Country string  `json:"country"`
	Lat     float64 `json:"lat"`
	Lon     float64 `json:"lon"`
}

// String renders the position as a chat reply fragment.
func (v VesselLocation) String() string {
	return fmt.Sprintf("Your vessel is near %s, %s (lat: %v, lon: %v).", v.City, v.Country, v.Lat, v.Lon)
}

// ChatService answers sailor questions: port distances, weather, alerts,
// caller location, laytime lookups, and anything else through the LLM chain.
type ChatService interface {
	Reply(ctx context.Context, req ChatRequest, callerIP string) (string, error)
}

// PortDirectory resolves sailor-friendly port names to coordinates.
type PortDirectory interface {
	Resolve(ctx context.Context, name string) (*Port, error)
}

// PortRepository is the local port table. Resolved ports are written back
// so later lookups skip the geocoder.
type PortRepository interface {
	FindByNormalized(ctx context.Context, normalized string) (*Port, error)
	Save(ctx context.Context, port *Port) error
}

// Geocoder turns a free-text place query into coordinates.
type Geocoder interface {
	Geocode(ctx context.Context, query string) (lat float64, lon float64, err error)
}

// WeatherClient fetches current weather for a coordinate.
type WeatherClient interface {
	CurrentWeather(ctx context.Context, lat, lon float64) (*CurrentWeather, error)
}

// Locator geolocates a caller by IP address.
type Locator interface {
	Locate(ctx context.Context, ip string) (*VesselLocation, error)
}
