package airquality

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// ResolvedSource names the data source that ultimately served a request.
type ResolvedSource string

const (
	SourceUpstream ResolvedSource = "upstream"
	SourceFallback ResolvedSource = "fallback"
)

const (
	// DefaultHistoryDays is used when a history query omits the window.
	DefaultHistoryDays = 30

	// MaxHistoryDays bounds the history window.
	MaxHistoryDays = 90
)

// Upstream is the live provider contract. Implementations return
// ErrUpstreamUnavailable (wrapped) for any wire-level failure; the service
// absorbs that error and falls back.
type Upstream interface {
	FetchCountries(ctx context.Context) ([]Country, error)
	FetchCityReadings(ctx context.Context, countryCode string) ([]PollutantReading, error)
	FetchCityStations(ctx context.Context, city, countryCode string) ([]MonitoringStation, error)
	FetchCityHistory(ctx context.Context, city, countryCode string, days int) ([]HistoryPoint, error)
	TestKey(ctx context.Context) (KeyStatus, error)
}

// Fallback is the deterministic built-in dataset contract.
type Fallback interface {
	Countries() []Country
	Cities(countryCode string) ([]PollutantReading, error)
	CitySummary(city, countryCode string) (PollutantReading, error)
	CityHistory(city, countryCode string, days int) []HistoryPoint
	CityStations(city, countryCode string) []MonitoringStation
	HeatmapPoints(countryCode string) []HeatmapPoint
}

// ServiceConfig holds the dependencies for the data service.
type ServiceConfig struct {
	// Upstream is the live provider. May be nil when no API key is
	// configured.
	Upstream Upstream

	// Fallback serves every query the upstream cannot. Required.
	Fallback Fallback

	// ForceSample pins every request to the fallback dataset regardless
	// of upstream availability.
	ForceSample bool

	// Timeout bounds each upstream call (default: 10s).
	Timeout time.Duration

	// Logger for resolution decisions.
	Logger zerolog.Logger
}

// Service resolves air quality queries against the live upstream when it is
// configured and healthy, and against the fallback dataset otherwise. The
// fallback decision is made per request and is never sticky.
type Service struct {
	upstream    Upstream
	fallback    Fallback
	forceSample bool
	timeout     time.Duration
	logger      zerolog.Logger
}

// NewService creates the data service.
func NewService(cfg ServiceConfig) *Service {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 10 * time.Second
	}
	return &Service{
		upstream:    cfg.Upstream,
		fallback:    cfg.Fallback,
		forceSample: cfg.ForceSample,
		timeout:     timeout,
		logger:      cfg.Logger,
	}
}

// upstreamEnabled reports whether this request should attempt the live
// provider at all.
func (s *Service) upstreamEnabled() bool {
	return !s.forceSample && s.upstream != nil
}

// Countries lists all supported countries, deduplicated by code and sorted
// by name.
func (s *Service) Countries(ctx context.Context) ([]Country, ResolvedSource) {
	if s.upstreamEnabled() {
		opCtx, cancel := context.WithTimeout(ctx, s.timeout)
		countries, err := s.upstream.FetchCountries(opCtx)
		cancel()

		if err == nil && len(countries) > 0 {
			s.logResolution("countries", SourceUpstream, nil)
			return dedupeCountries(countries), SourceUpstream
		}
		s.logResolution("countries", SourceFallback, err)
	}

	return s.fallback.Countries(), SourceFallback
}

// Cities lists current readings for every city in a country.
func (s *Service) Cities(ctx context.Context, countryCode string) ([]PollutantReading, ResolvedSource, error) {
	if s.upstreamEnabled() {
		opCtx, cancel := context.WithTimeout(ctx, s.timeout)
		readings, err := s.upstream.FetchCityReadings(opCtx, countryCode)
		cancel()

		if err == nil && len(readings) > 0 {
			s.logResolution("cities", SourceUpstream, nil)
			return readings, SourceUpstream, nil
		}
		s.logResolution("cities", SourceFallback, err)
	}

	readings, err := s.fallback.Cities(countryCode)
	return readings, SourceFallback, err
}

// CitySummary returns the current reading for one city. When the upstream
// serves the country but lacks the city, the fallback is consulted before
// reporting not found.
func (s *Service) CitySummary(ctx context.Context, city, countryCode string) (PollutantReading, ResolvedSource, error) {
	if s.upstreamEnabled() {
		opCtx, cancel := context.WithTimeout(ctx, s.timeout)
		readings, err := s.upstream.FetchCityReadings(opCtx, countryCode)
		cancel()

		if err == nil {
			want := strings.TrimSpace(city)
			for _, r := range readings {
				if strings.EqualFold(r.City, want) {
					s.logResolution("city_summary", SourceUpstream, nil)
					return r, SourceUpstream, nil
				}
			}
		}
		s.logResolution("city_summary", SourceFallback, err)
	}

	reading, err := s.fallback.CitySummary(city, countryCode)
	return reading, SourceFallback, err
}

// CityHistory returns the daily history for a city, most recent day first.
// The window is clamped to [1, MaxHistoryDays]; callers substitute
// DefaultHistoryDays when no window was requested.
func (s *Service) CityHistory(ctx context.Context, city, countryCode string, days int) ([]HistoryPoint, ResolvedSource) {
	days = clampDays(days)

	if s.upstreamEnabled() {
		opCtx, cancel := context.WithTimeout(ctx, s.timeout)
		history, err := s.upstream.FetchCityHistory(opCtx, city, countryCode, days)
		cancel()

		if err == nil && len(history) > 0 {
			s.logResolution("city_history", SourceUpstream, nil)
			return history, SourceUpstream
		}
		s.logResolution("city_history", SourceFallback, err)
	}

	return s.fallback.CityHistory(city, countryCode, days), SourceFallback
}

// CityStations returns monitoring stations for a city.
func (s *Service) CityStations(ctx context.Context, city, countryCode string) ([]MonitoringStation, ResolvedSource) {
	if s.upstreamEnabled() {
		opCtx, cancel := context.WithTimeout(ctx, s.timeout)
		stations, err := s.upstream.FetchCityStations(opCtx, city, countryCode)
		cancel()

		if err == nil && len(stations) > 0 {
			s.logResolution("city_stations", SourceUpstream, nil)
			return stations, SourceUpstream
		}
		s.logResolution("city_stations", SourceFallback, err)
	}

	return s.fallback.CityStations(city, countryCode), SourceFallback
}

// Heatmap returns map points, optionally filtered by country. A query
// without a country filter always uses the fallback dataset: the upstream
// has no bounded way to enumerate every city worldwide.
func (s *Service) Heatmap(ctx context.Context, countryCode string) ([]HeatmapPoint, ResolvedSource) {
	if countryCode != "" && s.upstreamEnabled() {
		opCtx, cancel := context.WithTimeout(ctx, s.timeout)
		readings, err := s.upstream.FetchCityReadings(opCtx, countryCode)
		cancel()

		if err == nil && len(readings) > 0 {
			s.logResolution("heatmap", SourceUpstream, nil)
			return heatmapFromReadings(readings), SourceUpstream
		}
		s.logResolution("heatmap", SourceFallback, err)
	}

	return s.fallback.HeatmapPoints(countryCode), SourceFallback
}

// Insights derives the health advisory and activity recommendations for a
// city from its current reading.
func (s *Service) Insights(ctx context.Context, city, countryCode string) (Insight, ResolvedSource, error) {
	reading, source, err := s.CitySummary(ctx, city, countryCode)
	if err != nil {
		return Insight{}, source, err
	}
	return NewInsight(reading.City, reading.Country, reading.AQIIndex, reading.AQICategory), source, nil
}

// Status describes the gateway's current source resolution and, when the
// upstream is configured, the result of a live key probe.
type Status struct {
	Source        ResolvedSource
	KeyConfigured bool

	// ForceSample is true when the deployment pins every request to the
	// fallback dataset; serving fallback is then the chosen state, not a
	// degradation.
	ForceSample bool

	Key *KeyStatus
}

// UpstreamStatus probes the upstream and reports how requests are currently
// being resolved.
func (s *Service) UpstreamStatus(ctx context.Context) Status {
	status := Status{
		Source:        SourceFallback,
		KeyConfigured: s.upstream != nil,
		ForceSample:   s.forceSample,
	}
	if !s.upstreamEnabled() {
		return status
	}

	opCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	key, err := s.upstream.TestKey(opCtx)
	if err != nil {
		s.logResolution("status", SourceFallback, err)
		return status
	}

	status.Key = &key
	if key.Valid {
		status.Source = SourceUpstream
	}
	return status
}

func (s *Service) logResolution(op string, source ResolvedSource, err error) {
	evt := s.logger.Debug()
	if err != nil {
		evt = s.logger.Warn().Err(err)
	}
	evt.Str("operation", op).Str("source", string(source)).Msg("resolved data source")
}

func clampDays(days int) int {
	switch {
	case days < 1:
		return 1
	case days > MaxHistoryDays:
		return MaxHistoryDays
	}
	return days
}

func dedupeCountries(countries []Country) []Country {
	seen := make(map[string]struct{}, len(countries))
	out := make([]Country, 0, len(countries))
	for _, c := range countries {
		if _, ok := seen[c.Code]; ok {
			continue
		}
		seen[c.Code] = struct{}{}
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

func heatmapFromReadings(readings []PollutantReading) []HeatmapPoint {
	points := make([]HeatmapPoint, 0, len(readings))
	for _, r := range readings {
		points = append(points, HeatmapPoint{
			City:        r.City,
			Country:     r.Country,
			Latitude:    r.Latitude,
			Longitude:   r.Longitude,
			PM25:        r.PM25,
			AQIIndex:    r.AQIIndex,
			AQICategory: r.AQICategory,
		})
	}
	return points
}
