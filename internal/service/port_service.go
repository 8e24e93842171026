package service

import (
	"context"
	"errors"
	"strings"
	"unicode"

	"maritime-ai-server/internal/domain"
)

// portAliases maps sailor-friendly names to the canonical port name used
// for lookups.
var portAliases = map[string]string{
	"kandla":      "deendayal",
	"bombay":      "mumbai",
	"cochin":      "kochi",
	"madras":      "chennai",
	"calcutta":    "kolkata",
	"vizag":       "visakhapatnam",
	"new york":    "new york harbor",
	"rotterd":     "rotterdam",
	"singa":       "singapore",
	"shangai":     "shanghai",
	"abudhabi":    "abu dhabi",
	"jebelali":    "jebel ali",
	"kandla port": "deendayal",
}

// PortService resolves port names to coordinates: alias-normalize, check
// the local table, then geocode with a few query shapes. Geocoded hits are
// written back so the next lookup stays local.
type PortService struct {
	repo     domain.PortRepository
	geocoder domain.Geocoder
	logger   domain.Logger
}

// NewPortService creates a new port directory
func NewPortService(repo domain.PortRepository, geocoder domain.Geocoder, logger domain.Logger) *PortService {
	return &PortService{
		repo:     repo,
		geocoder: geocoder,
		logger:   logger,
	}
}

// Resolve finds a port by a sailor-friendly name. ErrPortNotFound means
// neither the local table nor the geocoder knows the name; a geocoder
// transport failure is returned as-is.
func (s *PortService) Resolve(ctx context.Context, name string) (*domain.Port, error) {
	query := domain.NormalizePortName(name)
	if query == "" {
		return nil, domain.ErrPortNotFound
	}
	if canonical, ok := portAliases[query]; ok {
		query = canonical
	}

	if port, err := s.repo.FindByNormalized(ctx, query); err == nil {
		return port, nil
	} else if !errors.Is(err, domain.ErrPortNotFound) {
		return nil, err
	}

	for _, attempt := range []string{query, "Port of " + query, query + " port"} {
		lat, lon, err := s.geocoder.Geocode(ctx, attempt)
		if errors.Is(err, domain.ErrPlaceNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}

		port := &domain.Port{Name: titleCase(attempt), Lat: lat, Lon: lon}
		if err := s.repo.Save(ctx, port); err != nil {
			s.logger.Warn("Failed to cache resolved port", "port", port.Name, "error", err)
		}
		s.logger.Debug("Resolved port via geocoder", "query", attempt, "name", port.Name)
		return port, nil
	}

	return nil, domain.ErrPortNotFound
}

// titleCase uppercases the first letter of every word, matching how
// resolved queries are displayed in chat replies.
func titleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		runes := []rune(w)
		runes[0] = unicode.ToUpper(runes[0])
		for j := 1; j < len(runes); j++ {
			runes[j] = unicode.ToLower(runes[j])
		}
		words[i] = string(runes)
	}
	return strings.Join(words, " ")
}
