// Package openaq provides a client for the OpenAQ v3 API, the gateway's
// live upstream. The client knows only wire-level concerns: the API key
// header, result pagination, and timeouts. It never falls back: every
// failure surfaces as airquality.ErrUpstreamUnavailable and the data
// service decides what to do with it.
package openaq

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/airsight/airsight/internal/airquality"
	"github.com/airsight/airsight/internal/provider/resilience"
)

const (
	// DefaultBaseURL is the base URL for the OpenAQ v3 API.
	DefaultBaseURL = "https://api.openaq.org/v3"

	// ProviderName identifies this provider.
	ProviderName = "openaq"

	// pageLimit is the page size requested from the upstream.
	pageLimit = 200

	// maxPages bounds pagination so a huge country cannot stall a request.
	maxPages = 5

	// maxStations caps the station list per city.
	maxStations = 5
)

// HTTPDoer abstracts HTTP request execution.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Metrics records per-request provider metrics. Optional.
type Metrics interface {
	RecordRequest(provider, operation string, duration time.Duration, err error)
}

// ClientConfig holds configuration for the OpenAQ client.
type ClientConfig struct {
	// APIKey is sent as the X-API-Key header (required by OpenAQ v3).
	APIKey string

	// BaseURL is the API base URL (defaults to DefaultBaseURL).
	BaseURL string

	// HTTPClient is the HTTP client to use. If nil, a resilient client
	// with a single transparent retry is created and registered.
	HTTPClient HTTPDoer

	// Timeout for individual API requests (default: 10s).
	Timeout time.Duration

	// Registry tracks this provider's health for the ops endpoints.
	// Optional.
	Registry *resilience.Registry

	// Metrics records request duration and outcome. Optional.
	Metrics Metrics

	// Logger for client operations.
	Logger zerolog.Logger
}

// Client is an OpenAQ v3 API client.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient HTTPDoer
	registry   *resilience.Registry
	metrics    Metrics
	logger     zerolog.Logger
}

// NewClient creates a new OpenAQ client.
func NewClient(cfg ClientConfig) *Client {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		timeout := cfg.Timeout
		if timeout == 0 {
			timeout = 10 * time.Second
		}
		resilient := resilience.NewClient(resilience.ClientConfig{
			Name:    ProviderName,
			Timeout: timeout,
		})
		if cfg.Registry != nil {
			cfg.Registry.Register(ProviderName, resilient)
		}
		httpClient = resilient
	}

	return &Client{
		apiKey:     cfg.APIKey,
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		httpClient: httpClient,
		registry:   cfg.Registry,
		metrics:    cfg.Metrics,
		logger:     cfg.Logger,
	}
}

// OpenAQ v3 response types.

type metaInfo struct {
	Found json.RawMessage `json:"found"` // int or ">200"
	Limit int             `json:"limit"`
	Page  int             `json:"page"`
}

type countriesResponse struct {
	Meta    metaInfo      `json:"meta"`
	Results []countryData `json:"results"`
}

type countryData struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

type locationsResponse struct {
	Meta    metaInfo       `json:"meta"`
	Results []locationData `json:"results"`
}

type locationData struct {
	ID          int64           `json:"id"`
	Name        string          `json:"name"`
	Coordinates coordinatesData `json:"coordinates"`
	Parameters  []parameterData `json:"parameters"`
	LastUpdated string          `json:"lastUpdated"`
}

type coordinatesData struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type parameterData struct {
	Name      string  `json:"name"`
	LastValue float64 `json:"lastValue"`
}

type measurementsResponse struct {
	Meta    metaInfo          `json:"meta"`
	Results []measurementData `json:"results"`
}

type measurementData struct {
	Date struct {
		UTC string `json:"utc"`
	} `json:"date"`
	Parameter struct {
		Name string `json:"name"`
	} `json:"parameter"`
	Value float64 `json:"value"`
}

// FetchCountries retrieves the upstream country list.
func (c *Client) FetchCountries(ctx context.Context) ([]airquality.Country, error) {
	var countries []airquality.Country
	page := 1

	for {
		var result countriesResponse
		query := url.Values{}
		query.Set("limit", fmt.Sprint(pageLimit))
		query.Set("page", fmt.Sprint(page))

		if err := c.get(ctx, "/countries", query, &result); err != nil {
			return nil, err
		}

		for _, country := range result.Results {
			if country.Code == "" {
				continue
			}
			countries = append(countries, airquality.Country{
				Code: strings.ToUpper(country.Code),
				Name: country.Name,
			})
		}

		if len(result.Results) < pageLimit || page >= maxPages {
			break
		}
		page++
	}

	return countries, nil
}

// FetchCityReadings retrieves locations for a country and aggregates them
// into per-city readings. Locations missing a city identity are skipped; a
// payload yielding zero identifiable cities is returned as an empty slice.
func (c *Client) FetchCityReadings(ctx context.Context, countryCode string) ([]airquality.PollutantReading, error) {
	locations, err := c.fetchLocations(ctx, countryCode)
	if err != nil {
		return nil, err
	}
	return aggregateByCity(locations, strings.ToUpper(countryCode)), nil
}

// FetchCityStations retrieves the monitoring stations whose name matches a
// city, capped at maxStations.
func (c *Client) FetchCityStations(ctx context.Context, city, countryCode string) ([]airquality.MonitoringStation, error) {
	locations, err := c.fetchLocations(ctx, countryCode)
	if err != nil {
		return nil, err
	}

	want := strings.ToLower(strings.TrimSpace(city))
	stations := make([]airquality.MonitoringStation, 0, maxStations)

	for _, loc := range locations {
		if !strings.Contains(strings.ToLower(loc.city), want) {
			continue
		}

		aqi := 0
		if loc.values["pm25"] > 0 {
			aqi = airquality.FromPM25(loc.values["pm25"])
		}

		stations = append(stations, airquality.MonitoringStation{
			StationName: loc.name,
			Latitude:    loc.lat,
			Longitude:   loc.lon,
			PM25:        loc.values["pm25"],
			PM10:        loc.values["pm10"],
			NO2:         loc.values["no2"],
			O3:          loc.values["o3"],
			CO:          loc.values["co"],
			SO2:         loc.values["so2"],
			AQIIndex:    aqi,
			LastUpdated: loc.lastUpdated,
		})

		if len(stations) == maxStations {
			break
		}
	}

	return stations, nil
}

// FetchCityHistory retrieves daily measurement history for a city, averaged
// per day and ordered most recent first.
func (c *Client) FetchCityHistory(ctx context.Context, city, countryCode string, days int) ([]airquality.HistoryPoint, error) {
	locations, err := c.fetchLocations(ctx, countryCode)
	if err != nil {
		return nil, err
	}

	want := strings.ToLower(strings.TrimSpace(city))
	var locationID int64
	for _, loc := range locations {
		if strings.Contains(strings.ToLower(loc.city), want) {
			locationID = loc.id
			break
		}
	}
	if locationID == 0 {
		return nil, nil
	}

	end := time.Now().UTC()
	start := end.AddDate(0, 0, -days)

	query := url.Values{}
	query.Set("locations_id", fmt.Sprint(locationID))
	query.Set("date_from", start.Format(time.RFC3339))
	query.Set("date_to", end.Format(time.RFC3339))
	query.Set("limit", "1000")

	var result measurementsResponse
	if err := c.get(ctx, "/measurements", query, &result); err != nil {
		return nil, err
	}

	return groupByDay(result.Results), nil
}

// TestKey performs a lightweight connectivity and auth probe.
func (c *Client) TestKey(ctx context.Context) (airquality.KeyStatus, error) {
	query := url.Values{}
	query.Set("limit", "1")

	req, err := c.newRequest(ctx, "/countries", query)
	if err != nil {
		return airquality.KeyStatus{}, unavailable("test key", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.recordFailure(err)
		return airquality.KeyStatus{}, unavailable("test key", err)
	}
	defer resp.Body.Close()

	c.recordSuccess()
	return airquality.KeyStatus{
		Valid:      resp.StatusCode == http.StatusOK,
		StatusCode: resp.StatusCode,
	}, nil
}

// location is the wire location flattened into what the aggregation needs.
type location struct {
	id          int64
	city        string
	name        string
	lat         float64
	lon         float64
	values      map[string]float64
	lastUpdated time.Time
}

// fetchLocations retrieves all location pages for a country.
func (c *Client) fetchLocations(ctx context.Context, countryCode string) ([]location, error) {
	var locations []location
	page := 1

	for {
		query := url.Values{}
		query.Set("countriesId", strings.ToUpper(countryCode))
		query.Set("limit", fmt.Sprint(pageLimit))
		query.Set("page", fmt.Sprint(page))
		query.Set("order_by", "lastUpdated")
		query.Set("sort", "desc")

		var result locationsResponse
		if err := c.get(ctx, "/locations", query, &result); err != nil {
			return nil, err
		}

		for _, loc := range result.Results {
			locations = append(locations, flattenLocation(loc))
		}

		if len(result.Results) < pageLimit || page >= maxPages {
			break
		}
		page++
	}

	return locations, nil
}

// flattenLocation extracts the city name and latest per-pollutant values
// from a wire location. The city is the first comma segment of the
// location name.
func flattenLocation(loc locationData) location {
	city := strings.TrimSpace(strings.SplitN(loc.Name, ",", 2)[0])
	if city == "" {
		city = loc.Name
	}

	values := make(map[string]float64, len(loc.Parameters))
	for _, p := range loc.Parameters {
		values[strings.ToLower(p.Name)] = p.LastValue
	}

	lastUpdated, err := time.Parse(time.RFC3339, loc.LastUpdated)
	if err != nil {
		lastUpdated = time.Now().UTC()
	}

	return location{
		id:          loc.ID,
		city:        city,
		name:        loc.Name,
		lat:         loc.Coordinates.Latitude,
		lon:         loc.Coordinates.Longitude,
		values:      values,
		lastUpdated: lastUpdated,
	}
}

var pollutantKeys = []string{"pm25", "pm10", "no2", "o3", "co", "so2"}

// aggregateByCity averages the positive per-pollutant values of all
// locations sharing a city name and derives the AQI from the mean PM2.5.
func aggregateByCity(locations []location, countryCode string) []airquality.PollutantReading {
	type aggregate struct {
		lat, lon float64
		sums     map[string]float64
		counts   map[string]int
	}

	byCity := make(map[string]*aggregate)
	var order []string

	for _, loc := range locations {
		if loc.city == "" {
			continue
		}
		agg, ok := byCity[loc.city]
		if !ok {
			agg = &aggregate{
				lat:    loc.lat,
				lon:    loc.lon,
				sums:   make(map[string]float64),
				counts: make(map[string]int),
			}
			byCity[loc.city] = agg
			order = append(order, loc.city)
		}

		for _, key := range pollutantKeys {
			if v := loc.values[key]; v > 0 {
				agg.sums[key] += v
				agg.counts[key]++
			}
		}
	}

	now := time.Now().UTC()
	readings := make([]airquality.PollutantReading, 0, len(order))

	for _, city := range order {
		agg := byCity[city]
		mean := func(key string) float64 {
			if agg.counts[key] == 0 {
				return 0
			}
			return agg.sums[key] / float64(agg.counts[key])
		}

		aqi := airquality.FromPM25(mean("pm25"))
		readings = append(readings, airquality.PollutantReading{
			Country:     countryCode,
			City:        city,
			Latitude:    agg.lat,
			Longitude:   agg.lon,
			PM25:        mean("pm25"),
			PM10:        mean("pm10"),
			NO2:         mean("no2"),
			O3:          mean("o3"),
			CO:          mean("co"),
			SO2:         mean("so2"),
			AQIIndex:    aqi,
			AQICategory: airquality.CategoryForIndex(aqi),
			LastUpdated: now,
		})
	}

	return readings
}

// groupByDay averages raw measurements per calendar day and orders the
// series most recent first.
func groupByDay(measurements []measurementData) []airquality.HistoryPoint {
	type dayAggregate struct {
		sums   map[string]float64
		counts map[string]int
	}

	byDay := make(map[string]*dayAggregate)

	for _, m := range measurements {
		ts, err := time.Parse(time.RFC3339, m.Date.UTC)
		if err != nil {
			continue
		}
		day := ts.UTC().Format("2006-01-02")

		agg, ok := byDay[day]
		if !ok {
			agg = &dayAggregate{
				sums:   make(map[string]float64),
				counts: make(map[string]int),
			}
			byDay[day] = agg
		}

		key := strings.ToLower(m.Parameter.Name)
		agg.sums[key] += m.Value
		agg.counts[key]++
	}

	days := make([]string, 0, len(byDay))
	for day := range byDay {
		days = append(days, day)
	}
	sort.Sort(sort.Reverse(sort.StringSlice(days)))

	history := make([]airquality.HistoryPoint, 0, len(days))
	for _, day := range days {
		agg := byDay[day]
		mean := func(key string) float64 {
			if agg.counts[key] == 0 {
				return 0
			}
			return agg.sums[key] / float64(agg.counts[key])
		}

		history = append(history, airquality.HistoryPoint{
			Date:     day,
			PM25:     mean("pm25"),
			PM10:     mean("pm10"),
			NO2:      mean("no2"),
			O3:       mean("o3"),
			CO:       mean("co"),
			SO2:      mean("so2"),
			AQIIndex: airquality.FromPM25(mean("pm25")),
		})
	}

	return history
}

// get executes a GET against the API and decodes the JSON response.
func (c *Client) get(ctx context.Context, path string, query url.Values, out any) (err error) {
	if c.metrics != nil {
		start := time.Now()
		defer func() {
			c.metrics.RecordRequest(ProviderName, path, time.Since(start), err)
		}()
	}

	req, err := c.newRequest(ctx, path, query)
	if err != nil {
		return unavailable(path, err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.recordFailure(err)
		return unavailable(path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		err := fmt.Errorf("unexpected status %d", resp.StatusCode)
		c.recordFailure(err)
		return unavailable(path, err)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		c.recordFailure(err)
		return unavailable(path, fmt.Errorf("decode response: %w", err))
	}

	c.recordSuccess()
	return nil
}

func (c *Client) newRequest(ctx context.Context, path string, query url.Values) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path+"?"+query.Encode(), http.NoBody)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	if c.apiKey != "" {
		req.Header.Set("X-API-Key", c.apiKey)
	}
	return req, nil
}

func (c *Client) recordSuccess() {
	if c.registry != nil {
		c.registry.RecordSuccess(ProviderName)
	}
}

func (c *Client) recordFailure(err error) {
	if c.registry != nil {
		c.registry.RecordFailure(ProviderName, err)
	}
	c.logger.Warn().Err(err).Msg("openaq request failed")
}

// unavailable normalizes any wire-level failure into the single upstream
// error kind the data service absorbs.
func unavailable(op string, err error) error {
	return fmt.Errorf("openaq %s: %w: %v", op, airquality.ErrUpstreamUnavailable, err)
}
