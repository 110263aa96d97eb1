// Package airquality provides the canonical air quality data model and the
// fallback-aware data service that resolves every query against either the
// live upstream provider or the bundled sample dataset.
package airquality

import (
	"errors"
	"time"
)

// Error kinds surfaced by the data service.
var (
	// ErrNotFound indicates the requested country or city has no data in
	// the resolved source.
	ErrNotFound = errors.New("not found")

	// ErrInvalidArgument indicates malformed or out-of-bounds input.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrUpstreamUnavailable indicates the upstream provider could not
	// serve the request. It is absorbed by the service and converted into
	// a fallback attempt, never surfaced to callers.
	ErrUpstreamUnavailable = errors.New("upstream unavailable")
)

// Category is an AQI severity band.
type Category string

const (
	CategoryGood          Category = "Good"
	CategoryModerate      Category = "Moderate"
	CategorySensitive     Category = "Unhealthy for Sensitive Groups"
	CategoryUnhealthy     Category = "Unhealthy"
	CategoryVeryUnhealthy Category = "Very Unhealthy"
	CategoryHazardous     Category = "Hazardous"
)

// PollutantReading is one location's current pollutant concentrations plus
// location metadata. Concentration fields are always present; values the
// source did not report default to 0 so the shape never varies by source.
type PollutantReading struct {
	Country   string
	City      string
	Latitude  float64
	Longitude float64

	// Concentrations in µg/m³ (CO in ppm).
	PM25 float64
	PM10 float64
	NO2  float64
	O3   float64
	CO   float64
	SO2  float64

	// Population is 0 when the source does not report it.
	Population int64

	AQIIndex    int
	AQICategory Category

	LastUpdated time.Time
}

// Country is one supported country with aggregate city statistics.
type Country struct {
	Code         string
	Name         string
	CityCount    int
	AverageAQI   int
	WorstCity    string
	WorstCityAQI int
}

// MonitoringStation is one physical sensor location within a city.
type MonitoringStation struct {
	StationName string
	Latitude    float64
	Longitude   float64

	PM25 float64
	PM10 float64
	NO2  float64
	O3   float64
	CO   float64
	SO2  float64

	AQIIndex    int
	LastUpdated time.Time
}

// HistoryPoint is one day's pollutant snapshot for a city.
type HistoryPoint struct {
	// Date is the calendar day in YYYY-MM-DD form.
	Date string

	PM25 float64
	PM10 float64
	NO2  float64
	O3   float64
	CO   float64
	SO2  float64

	AQIIndex int
}

// HeatmapPoint is one city's position and severity for map rendering.
type HeatmapPoint struct {
	City        string
	Country     string
	Latitude    float64
	Longitude   float64
	PM25        float64
	AQIIndex    int
	AQICategory Category
}

// ActivityAdvice is a per-activity safety flag with recommendation text.
type ActivityAdvice struct {
	Safe           bool
	Recommendation string
}

// ActivitySet holds activity recommendations for a given AQI band.
type ActivitySet struct {
	Walking     ActivityAdvice
	Running     ActivityAdvice
	OutdoorPlay ActivityAdvice
	Cycling     ActivityAdvice
	Overall     string
}

// HealthAdvisory holds per-audience advisory text for a given AQI band.
type HealthAdvisory struct {
	General   string
	Sensitive string
	Children  string
	Elderly   string
	Asthma    string
}

// KeyStatus reports the outcome of an upstream API key probe.
type KeyStatus struct {
	Valid      bool
	StatusCode int
}

// Insight is a derived advisory for one city. It is computed on every read
// and never persisted.
type Insight struct {
	City     string
	Country  string
	AQI      int
	Category Category

	Health     HealthAdvisory
	Activities ActivitySet
}
