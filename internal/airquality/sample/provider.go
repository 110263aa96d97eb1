package sample

import (
	"fmt"
	"hash/fnv"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/airsight/airsight/internal/airquality"
)

type timeFunc func() time.Time

// Provider serves the bundled dataset. All lookups are in-memory scans over
// the seed table; the only failure mode is airquality.ErrNotFound.
type Provider struct {
	now timeFunc
}

// Option customizes a Provider.
type Option func(*Provider)

// WithClock overrides the time source. Used by tests to pin LastUpdated and
// history dates.
func WithClock(now func() time.Time) Option {
	return func(p *Provider) { p.now = now }
}

// NewProvider creates a provider over the bundled dataset.
func NewProvider(opts ...Option) *Provider {
	p := &Provider{now: time.Now}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Countries returns all seeded countries with aggregate statistics, sorted
// alphabetically by name.
func (p *Provider) Countries() []airquality.Country {
	countries := make([]airquality.Country, 0, len(countrySeeds))
	for _, c := range countrySeeds {
		cities := citySeeds[c.code]
		if len(cities) == 0 {
			continue
		}

		total := 0
		worst := cities[0]
		for _, city := range cities {
			total += city.aqiIndex
			if city.aqiIndex > worst.aqiIndex {
				worst = city
			}
		}

		countries = append(countries, airquality.Country{
			Code:         c.code,
			Name:         c.name,
			CityCount:    len(cities),
			AverageAQI:   int(math.Round(float64(total) / float64(len(cities)))),
			WorstCity:    worst.city,
			WorstCityAQI: worst.aqiIndex,
		})
	}

	sort.Slice(countries, func(i, j int) bool { return countries[i].Name < countries[j].Name })
	return countries
}

// Cities returns the seeded city summaries for a country.
func (p *Provider) Cities(countryCode string) ([]airquality.PollutantReading, error) {
	code, seeds, err := p.countrySeedsFor(countryCode)
	if err != nil {
		return nil, err
	}

	readings := make([]airquality.PollutantReading, 0, len(seeds))
	for _, s := range seeds {
		readings = append(readings, s.reading(code, p.now))
	}
	return readings, nil
}

// CitySummary returns the seeded record for one city. Matching is
// case-insensitive and whitespace-trimmed.
func (p *Provider) CitySummary(city, countryCode string) (airquality.PollutantReading, error) {
	code, seed, err := p.citySeedFor(city, countryCode)
	if err != nil {
		return airquality.PollutantReading{}, err
	}
	return seed.reading(code, p.now), nil
}

// CityHistory synthesizes a daily history series around the city's base
// reading. The pseudo-variation is keyed on city and day offset, so the same
// day count always yields the same sequence. Points are ordered most recent
// first and the series length equals the clamped day count exactly.
func (p *Provider) CityHistory(city, countryCode string, days int) []airquality.HistoryPoint {
	base := citySeed{city: strings.TrimSpace(city), aqiIndex: 100, pm25: 50, pm10: 75, no2: 40, o3: 40, co: 0.5, so2: 10}
	if _, seed, err := p.citySeedFor(city, countryCode); err == nil {
		base = seed
	}

	today := p.now().UTC()
	history := make([]airquality.HistoryPoint, 0, days)

	for i := 1; i <= days; i++ {
		v := pseudoVariation(base.city, i, 0.7, 1.3)
		seasonal := 1 + 0.2*float64(i%7-3)/7

		history = append(history, airquality.HistoryPoint{
			Date:     today.AddDate(0, 0, -i).Format("2006-01-02"),
			PM25:     round1(base.pm25 * v * seasonal),
			PM10:     round1(base.pm10 * v * seasonal),
			NO2:      round1(base.no2 * v),
			O3:       round1(base.o3 * v),
			CO:       round2(base.co * v),
			SO2:      round1(base.so2 * v),
			AQIIndex: int(math.Round(float64(base.aqiIndex) * v * seasonal)),
		})
	}

	return history
}

var stationSuffixes = []string{"Central", "North", "South"}

// CityStations returns a fixed set of synthetic stations for a known city,
// each offset slightly from the city's coordinates with a deterministic
// variation on the base reading. Unknown cities yield an empty set.
func (p *Provider) CityStations(city, countryCode string) []airquality.MonitoringStation {
	_, seed, err := p.citySeedFor(city, countryCode)
	if err != nil {
		return []airquality.MonitoringStation{}
	}

	stations := make([]airquality.MonitoringStation, 0, len(stationSuffixes))
	for i, suffix := range stationSuffixes {
		v := pseudoVariation(seed.city+"/station", i, 0.8, 1.2)
		latOff := pseudoVariation(seed.city+"/lat", i, -0.05, 0.05)
		lonOff := pseudoVariation(seed.city+"/lon", i, -0.05, 0.05)
		aqi := int(math.Round(float64(seed.aqiIndex) * v))

		stations = append(stations, airquality.MonitoringStation{
			StationName: seed.city + " " + suffix,
			Latitude:    round4(seed.lat + latOff),
			Longitude:   round4(seed.lon + lonOff),
			PM25:        round1(seed.pm25 * v),
			PM10:        round1(seed.pm10 * v),
			NO2:         round1(seed.no2 * v),
			O3:          round1(seed.o3 * v),
			CO:          round2(seed.co * v),
			SO2:         round1(seed.so2 * v),
			AQIIndex:    aqi,
			LastUpdated: p.now().UTC(),
		})
	}

	return stations
}

// HeatmapPoints returns one point per seeded city, optionally filtered by
// country. An unknown filter yields an empty slice, not an error.
func (p *Provider) HeatmapPoints(countryCode string) []airquality.HeatmapPoint {
	points := []airquality.HeatmapPoint{}

	filter := strings.ToUpper(strings.TrimSpace(countryCode))
	for _, c := range countrySeeds {
		if filter != "" && c.code != filter {
			continue
		}
		for _, s := range citySeeds[c.code] {
			points = append(points, airquality.HeatmapPoint{
				City:        s.city,
				Country:     c.code,
				Latitude:    s.lat,
				Longitude:   s.lon,
				PM25:        s.pm25,
				AQIIndex:    s.aqiIndex,
				AQICategory: airquality.CategoryForIndex(s.aqiIndex),
			})
		}
	}

	return points
}

// countrySeedsFor resolves a country code case-insensitively.
func (p *Provider) countrySeedsFor(countryCode string) (string, []citySeed, error) {
	code := strings.ToUpper(strings.TrimSpace(countryCode))
	seeds, ok := citySeeds[code]
	if !ok || len(seeds) == 0 {
		return "", nil, fmt.Errorf("country %q: %w", countryCode, airquality.ErrNotFound)
	}
	return code, seeds, nil
}

// citySeedFor resolves a city within a country, case-insensitive and
// whitespace-trimmed.
func (p *Provider) citySeedFor(city, countryCode string) (string, citySeed, error) {
	code, seeds, err := p.countrySeedsFor(countryCode)
	if err != nil {
		return "", citySeed{}, err
	}

	want := strings.TrimSpace(city)
	for _, s := range seeds {
		if strings.EqualFold(s.city, want) {
			return code, s, nil
		}
	}
	return "", citySeed{}, fmt.Errorf("city %q in %s: %w", city, code, airquality.ErrNotFound)
}

// pseudoVariation maps an FNV-1a hash of key:index into [lo, hi]. It stands
// in for the randomness a live feed would show while keeping repeated calls
// byte-identical.
func pseudoVariation(key string, index int, lo, hi float64) float64 {
	h := fnv.New32a()
	fmt.Fprintf(h, "%s:%d", key, index)
	f := float64(h.Sum32()) / float64(math.MaxUint32)
	return lo + f*(hi-lo)
}

func round1(v float64) float64 { return math.Round(v*10) / 10 }
func round2(v float64) float64 { return math.Round(v*100) / 100 }
func round4(v float64) float64 { return math.Round(v*10000) / 10000 }
