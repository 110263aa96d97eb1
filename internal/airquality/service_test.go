package airquality_test

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/airsight/airsight/internal/airquality"
	"github.com/airsight/airsight/internal/airquality/sample"
)

// mockUpstream implements airquality.Upstream with configurable behavior
// and call counting.
type mockUpstream struct {
	calls int

	countries    []airquality.Country
	readings     []airquality.PollutantReading
	stations     []airquality.MonitoringStation
	history      []airquality.HistoryPoint
	key          airquality.KeyStatus
	err          error
	historyDays  int
	fetchedCodes []string
}

func (m *mockUpstream) FetchCountries(_ context.Context) ([]airquality.Country, error) {
	m.calls++
	return m.countries, m.err
}

func (m *mockUpstream) FetchCityReadings(_ context.Context, countryCode string) ([]airquality.PollutantReading, error) {
	m.calls++
	m.fetchedCodes = append(m.fetchedCodes, countryCode)
	return m.readings, m.err
}

func (m *mockUpstream) FetchCityStations(_ context.Context, _, _ string) ([]airquality.MonitoringStation, error) {
	m.calls++
	return m.stations, m.err
}

func (m *mockUpstream) FetchCityHistory(_ context.Context, _, _ string, days int) ([]airquality.HistoryPoint, error) {
	m.calls++
	m.historyDays = days
	return m.history, m.err
}

func (m *mockUpstream) TestKey(_ context.Context) (airquality.KeyStatus, error) {
	m.calls++
	return m.key, m.err
}

func newTestService(upstream airquality.Upstream, forceSample bool) *airquality.Service {
	return airquality.NewService(airquality.ServiceConfig{
		Upstream:    upstream,
		Fallback:    sample.NewProvider(),
		ForceSample: forceSample,
		Timeout:     time.Second,
		Logger:      zerolog.Nop(),
	})
}

func TestService_ForceSampleNeverCallsUpstream(t *testing.T) {
	upstream := &mockUpstream{
		readings: []airquality.PollutantReading{{City: "Springfield"}},
	}
	svc := newTestService(upstream, true)
	ctx := context.Background()

	svc.Countries(ctx)
	_, _, _ = svc.Cities(ctx, "IN")
	_, _, _ = svc.CitySummary(ctx, "New Delhi", "IN")
	svc.CityHistory(ctx, "New Delhi", "IN", 7)
	svc.CityStations(ctx, "New Delhi", "IN")
	svc.Heatmap(ctx, "IN")
	_, _, _ = svc.Insights(ctx, "New Delhi", "IN")

	assert.Zero(t, upstream.calls, "force-sample mode must not touch the upstream")
}

func TestService_NoUpstreamResolvesFallback(t *testing.T) {
	svc := newTestService(nil, false)

	countries, source := svc.Countries(context.Background())
	assert.Equal(t, airquality.SourceFallback, source)
	assert.NotEmpty(t, countries)
}

func TestService_UpstreamErrorFallsBack(t *testing.T) {
	upstream := &mockUpstream{err: airquality.ErrUpstreamUnavailable}
	svc := newTestService(upstream, false)

	reading, source, err := svc.CitySummary(context.Background(), "New Delhi", "IN")
	require.NoError(t, err, "upstream failure must be absorbed, not surfaced")
	assert.Equal(t, airquality.SourceFallback, source)
	assert.Equal(t, "New Delhi", reading.City)
	assert.Equal(t, 156, reading.AQIIndex)
	assert.Equal(t, airquality.CategoryUnhealthy, reading.AQICategory)
}

func TestService_UpstreamEmptyResultFallsBack(t *testing.T) {
	upstream := &mockUpstream{readings: nil}
	svc := newTestService(upstream, false)

	readings, source, err := svc.Cities(context.Background(), "IN")
	require.NoError(t, err)
	assert.Equal(t, airquality.SourceFallback, source)
	assert.NotEmpty(t, readings)
}

func TestService_UpstreamSuccessIsUsed(t *testing.T) {
	upstream := &mockUpstream{
		readings: []airquality.PollutantReading{
			{City: "Springfield", Country: "US", AQIIndex: 42, AQICategory: airquality.CategoryGood},
		},
	}
	svc := newTestService(upstream, false)

	readings, source, err := svc.Cities(context.Background(), "US")
	require.NoError(t, err)
	assert.Equal(t, airquality.SourceUpstream, source)
	require.Len(t, readings, 1)
	assert.Equal(t, "Springfield", readings[0].City)
}

func TestService_CitySummaryMissingUpstreamCityFallsBack(t *testing.T) {
	upstream := &mockUpstream{
		readings: []airquality.PollutantReading{{City: "Springfield", Country: "US"}},
	}
	svc := newTestService(upstream, false)

	reading, source, err := svc.CitySummary(context.Background(), "New York", "US")
	require.NoError(t, err)
	assert.Equal(t, airquality.SourceFallback, source)
	assert.Equal(t, "New York", reading.City)
}

func TestService_CitySummaryUnknownEverywhere(t *testing.T) {
	svc := newTestService(nil, false)

	_, _, err := svc.CitySummary(context.Background(), "Atlantis", "US")
	assert.ErrorIs(t, err, airquality.ErrNotFound)
}

func TestService_FallbackDecisionIsNotSticky(t *testing.T) {
	upstream := &mockUpstream{err: airquality.ErrUpstreamUnavailable}
	svc := newTestService(upstream, false)
	ctx := context.Background()

	_, source, _ := svc.Cities(ctx, "IN")
	assert.Equal(t, airquality.SourceFallback, source)

	// Upstream recovers; the very next request must use it again.
	upstream.err = nil
	upstream.readings = []airquality.PollutantReading{{City: "New Delhi", Country: "IN"}}

	_, source, _ = svc.Cities(ctx, "IN")
	assert.Equal(t, airquality.SourceUpstream, source)
}

func TestService_CityHistoryClampsWindow(t *testing.T) {
	upstream := &mockUpstream{
		history: []airquality.HistoryPoint{{Date: "2026-08-28", AQIIndex: 100}},
	}
	svc := newTestService(upstream, false)
	ctx := context.Background()

	svc.CityHistory(ctx, "New Delhi", "IN", 0)
	assert.Equal(t, 1, upstream.historyDays)

	svc.CityHistory(ctx, "New Delhi", "IN", 500)
	assert.Equal(t, airquality.MaxHistoryDays, upstream.historyDays)

	svc.CityHistory(ctx, "New Delhi", "IN", -3)
	assert.Equal(t, 1, upstream.historyDays)

	svc.CityHistory(ctx, "New Delhi", "IN", 1)
	assert.Equal(t, 1, upstream.historyDays)

	svc.CityHistory(ctx, "New Delhi", "IN", 14)
	assert.Equal(t, 14, upstream.historyDays)
}

func TestService_CityHistoryZeroWindowYieldsOnePoint(t *testing.T) {
	svc := newTestService(nil, false)

	history, source := svc.CityHistory(context.Background(), "New Delhi", "IN", 0)
	assert.Equal(t, airquality.SourceFallback, source)
	assert.Len(t, history, 1)
}

func TestService_CountriesDedupesAndSorts(t *testing.T) {
	upstream := &mockUpstream{
		countries: []airquality.Country{
			{Code: "US", Name: "United States"},
			{Code: "IN", Name: "India"},
			{Code: "US", Name: "United States"},
			{Code: "BR", Name: "Brazil"},
		},
	}
	svc := newTestService(upstream, false)

	countries, source := svc.Countries(context.Background())
	assert.Equal(t, airquality.SourceUpstream, source)
	require.Len(t, countries, 3)
	assert.Equal(t, "Brazil", countries[0].Name)
	assert.Equal(t, "India", countries[1].Name)
	assert.Equal(t, "United States", countries[2].Name)
}

func TestService_HeatmapWithoutFilterUsesFallback(t *testing.T) {
	upstream := &mockUpstream{
		readings: []airquality.PollutantReading{{City: "Springfield"}},
	}
	svc := newTestService(upstream, false)

	points, source := svc.Heatmap(context.Background(), "")
	assert.Equal(t, airquality.SourceFallback, source)
	assert.NotEmpty(t, points)
	assert.Zero(t, upstream.calls)
}

func TestService_InsightsFromFallback(t *testing.T) {
	upstream := &mockUpstream{err: airquality.ErrUpstreamUnavailable}
	svc := newTestService(upstream, false)

	insight, source, err := svc.Insights(context.Background(), "New Delhi", "IN")
	require.NoError(t, err)
	assert.Equal(t, airquality.SourceFallback, source)
	assert.Equal(t, 156, insight.AQI)
	assert.Equal(t, airquality.CategoryUnhealthy, insight.Category)
	assert.False(t, insight.Activities.Running.Safe)
	assert.NotEmpty(t, insight.Health.Asthma)
}

func TestService_UpstreamStatus(t *testing.T) {
	t.Run("no upstream configured", func(t *testing.T) {
		svc := newTestService(nil, false)
		status := svc.UpstreamStatus(context.Background())
		assert.Equal(t, airquality.SourceFallback, status.Source)
		assert.False(t, status.KeyConfigured)
		assert.Nil(t, status.Key)
	})

	t.Run("valid key", func(t *testing.T) {
		upstream := &mockUpstream{key: airquality.KeyStatus{Valid: true, StatusCode: 200}}
		svc := newTestService(upstream, false)
		status := svc.UpstreamStatus(context.Background())
		assert.Equal(t, airquality.SourceUpstream, status.Source)
		assert.True(t, status.KeyConfigured)
		require.NotNil(t, status.Key)
		assert.True(t, status.Key.Valid)
	})

	t.Run("rejected key", func(t *testing.T) {
		upstream := &mockUpstream{key: airquality.KeyStatus{Valid: false, StatusCode: 401}}
		svc := newTestService(upstream, false)
		status := svc.UpstreamStatus(context.Background())
		assert.Equal(t, airquality.SourceFallback, status.Source)
		require.NotNil(t, status.Key)
		assert.Equal(t, 401, status.Key.StatusCode)
	})

	t.Run("probe failure", func(t *testing.T) {
		upstream := &mockUpstream{err: airquality.ErrUpstreamUnavailable}
		svc := newTestService(upstream, false)
		status := svc.UpstreamStatus(context.Background())
		assert.Equal(t, airquality.SourceFallback, status.Source)
		assert.Nil(t, status.Key)
	})
}
