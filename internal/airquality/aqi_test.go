package airquality_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/airsight/airsight/internal/airquality"
)

func TestFromPM25(t *testing.T) {
	tests := []struct {
		name string
		pm25 float64
		want int
	}{
		{name: "zero", pm25: 0, want: 0},
		{name: "negative clamps to zero", pm25: -5, want: 0},
		{name: "good band upper edge", pm25: 12, want: 50},
		{name: "moderate band", pm25: 20, want: 67},
		{name: "moderate band upper edge", pm25: 35.4, want: 100},
		{name: "sensitive band upper edge", pm25: 55.4, want: 150},
		{name: "unhealthy band", pm25: 66.9, want: 156},
		{name: "unhealthy band upper edge", pm25: 150.4, want: 200},
		{name: "very unhealthy band", pm25: 180, want: 229},
		{name: "very unhealthy band upper edge", pm25: 250.4, want: 300},
		{name: "hazardous band", pm25: 500.4, want: 400},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, airquality.FromPM25(tt.pm25))
		})
	}
}

func TestFromPM25_Deterministic(t *testing.T) {
	for i := 0; i < 10; i++ {
		assert.Equal(t, 156, airquality.FromPM25(66.9))
	}
}

func TestCategoryForIndex(t *testing.T) {
	tests := []struct {
		aqi  int
		want airquality.Category
	}{
		{aqi: 0, want: airquality.CategoryGood},
		{aqi: 50, want: airquality.CategoryGood},
		{aqi: 51, want: airquality.CategoryModerate},
		{aqi: 100, want: airquality.CategoryModerate},
		{aqi: 101, want: airquality.CategorySensitive},
		{aqi: 150, want: airquality.CategorySensitive},
		{aqi: 151, want: airquality.CategoryUnhealthy},
		{aqi: 200, want: airquality.CategoryUnhealthy},
		{aqi: 201, want: airquality.CategoryVeryUnhealthy},
		{aqi: 300, want: airquality.CategoryVeryUnhealthy},
		{aqi: 301, want: airquality.CategoryHazardous},
		{aqi: 999, want: airquality.CategoryHazardous},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, airquality.CategoryForIndex(tt.aqi), "aqi %d", tt.aqi)
	}
}
