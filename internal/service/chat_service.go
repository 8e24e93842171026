package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"regexp"
	"strings"

	"maritime-ai-server/internal/domain"
)

// earthRadiusNM is the mean Earth radius in nautical miles.
const earthRadiusNM = 3440.065

// atPortPattern pulls the port phrase out of "... at <port>" messages.
var atPortPattern = regexp.MustCompile(`at (.+)$`)

// laytimeHours is the canned laytime allowance table. Order matters: the
// "known ports" reply lists them in this order.
var laytimeHours = []struct {
	Port  string
	Hours int
}{
	{"mumbai", 72},
	{"dubai", 96},
	{"singapore", 84},
	{"rotterdam", 120},
	{"shanghai", 90},
}

// ChatService answers sailor questions over a fixed intent chain: port
// distances, weather, alerts, caller location, laytime lookups, and
// finally the LLM chain for anything else. Lookup misses degrade into the
// reply text; only transport failures surface as errors.
type ChatService struct {
	summarizer domain.Summarizer
	ports      domain.PortDirectory
	weather    domain.WeatherClient
	locator    domain.Locator
	logger     domain.Logger
}

// NewChatService creates a new chat service
func NewChatService(
	summarizer domain.Summarizer,
	ports domain.PortDirectory,
	weather domain.WeatherClient,
	locator domain.Locator,
	logger domain.Logger,
) *ChatService {
	return &ChatService{
		summarizer: summarizer,
		ports:      ports,
		weather:    weather,
		locator:    locator,
		logger:     logger,
	}
}

// Reply routes the message through the intent chain. Intents are checked
// in a fixed order against the lowercased trimmed message.
func (s *ChatService) Reply(ctx context.Context, req domain.ChatRequest, callerIP string) (string, error) {
	message := strings.ToLower(strings.TrimSpace(req.Message))
	engine := strings.ToLower(strings.TrimSpace(req.Engine))

	switch {
	case strings.HasPrefix(message, "distance"):
		return s.distanceReply(ctx, message)
	case strings.HasPrefix(message, "weather"):
		return s.weatherReply(ctx, message, callerIP)
	case strings.HasPrefix(message, "alert"):
		return s.alertsReply(ctx, message)
	case strings.Contains(message, "location") || strings.Contains(message, "where am i"):
		reply, _ := s.locate(ctx, callerIP)
		return reply, nil
	case strings.Contains(message, "laytime"):
		return s.laytimeReply(message), nil
	}

	return s.summarizer.Ask(ctx, message, engine), nil
}

// distanceReply handles "distance [from] <from> to <to>".
func (s *ChatService) distanceReply(ctx context.Context, message string) (string, error) {
	route := strings.TrimSpace(strings.TrimPrefix(message, "distance"))
	route = strings.TrimSpace(strings.TrimPrefix(route, "from "))
	if !strings.Contains(route, " to ") {
		return "Please use 'distance <from> to <to>'.", nil
	}
	parts := strings.SplitN(route, " to ", 2)
	fromName := strings.TrimSpace(parts[0])
	toName := strings.TrimSpace(parts[1])

	from, err := s.resolve(ctx, fromName)
	if err != nil {
		return "", err
	}
	to, err := s.resolve(ctx, toName)
	if err != nil {
		return "", err
	}
	if from == nil || to == nil {
		return fmt.Sprintf("Could not resolve '%s' or '%s'.", fromName, toName), nil
	}

	nm := haversineNM(from.Lat, from.Lon, to.Lat, to.Lon)
	return fmt.Sprintf("Distance from %s to %s is %.1f nautical miles.", from.Name, to.Name, nm), nil
}

// weatherReply handles "weather [at] <port>", with an empty or
// "my location" phrase geolocating the caller first.
func (s *ChatService) weatherReply(ctx context.Context, message, callerIP string) (string, error) {
	phrase := strings.TrimSpace(strings.TrimPrefix(message, "weather"))
	phrase = strings.TrimSpace(strings.TrimPrefix(phrase, "at "))

	if phrase == "" || strings.Contains(phrase, "my location") {
		locText, loc := s.locate(ctx, callerIP)
		if loc == nil {
			return locText, nil
		}
		weather, err := s.weather.CurrentWeather(ctx, loc.Lat, loc.Lon)
		if err != nil {
			return "", err
		}
		return locText + " Weather: " + weather.String(), nil
	}

	port, err := s.resolve(ctx, phrase)
	if err != nil {
		return "", err
	}
	if port == nil {
		return fmt.Sprintf("Could not find '%s'.", phrase), nil
	}
	weather, err := s.weather.CurrentWeather(ctx, port.Lat, port.Lon)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("Weather at %s: %s", port.Name, weather), nil
}

// alertsReply handles "alert[s] ... at <port>", defaulting to mumbai.
func (s *ChatService) alertsReply(ctx context.Context, message string) (string, error) {
	port := "mumbai"
	if m := atPortPattern.FindStringSubmatch(message); m != nil {
		port = strings.TrimSpace(m[1])
	}

	display := port
	resolved, err := s.resolve(ctx, port)
	if err != nil {
		return "", err
	}
	if resolved != nil {
		display = resolved.Name
	}

	alerts := buildAlerts(strings.ToLower(display))
	return fmt.Sprintf("Alerts at %s: %s", titleCase(display), strings.Join(alerts, " ")), nil
}

// laytimeReply handles "laytime [at <port>]" against the canned table.
func (s *ChatService) laytimeReply(message string) string {
	m := atPortPattern.FindStringSubmatch(message)
	if m == nil {
		return "Laytime is the time allowed for loading/unloading in charter parties."
	}

	port := strings.ToLower(strings.TrimSpace(m[1]))
	for _, rule := range laytimeHours {
		if rule.Port == port {
			return fmt.Sprintf("Laytime at %s is %d hours.", titleCase(port), rule.Hours)
		}
	}

	known := make([]string, 0, len(laytimeHours))
	for _, rule := range laytimeHours {
		known = append(known, rule.Port)
	}
	return fmt.Sprintf("No laytime data for %s. Known: %s", port, strings.Join(known, ", "))
}

// resolve looks up a port, mapping a plain miss to nil so intent handlers
// can phrase their own replies. Transport failures pass through.
func (s *ChatService) resolve(ctx context.Context, name string) (*domain.Port, error) {
	port, err := s.ports.Resolve(ctx, name)
	if errors.Is(err, domain.ErrPortNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return port, nil
}

// locate geolocates the caller and returns the reply fragment. A failed
// lookup degrades into the fragment with a nil location.
func (s *ChatService) locate(ctx context.Context, callerIP string) (string, *domain.VesselLocation) {
	loc, err := s.locator.Locate(ctx, callerIP)
	if errors.Is(err, domain.ErrLocationUnavailable) {
		return "Location could not be determined.", nil
	}
	if err != nil {
		s.logger.Warn("Caller geolocation failed", "ip", callerIP, "error", err)
		return fmt.Sprintf("Error fetching location: %v", err), nil
	}
	return loc.String(), loc
}

// buildAlerts returns the canned alert list for a lowercased port name.
func buildAlerts(port string) []string {
	var alerts []string
	switch strings.TrimSpace(port) {
	case "mumbai":
		alerts = append(alerts, "⚠ Cyclonic activity expected in Arabian Sea, exercise caution.")
	case "dubai":
		alerts = append(alerts, "⚠ High temperature alert, ensure crew hydration and engine cooling.")
	}
	if len(alerts) == 0 {
		return []string{"✅ No major alerts reported."}
	}
	return alerts
}

// haversineNM is the great-circle distance between two coordinates in
// nautical miles.
func haversineNM(lat1, lon1, lat2, lon2 float64) float64 {
	dLat := toRadians(lat2 - lat1)
	dLon := toRadians(lon2 - lon1)
	rLat1 := toRadians(lat1)
	rLat2 := toRadians(lat2)

	h := math.Sin(dLat/2)*math.Sin(dLat/2) + math.Cos(rLat1)*math.Cos(rLat2)*math.Sin(dLon/2)*math.Sin(dLon/2)
	return 2 * earthRadiusNM * math.Asin(math.Sqrt(h))
}

func toRadians(deg float64) float64 {
	return deg * math.Pi / 180
}
