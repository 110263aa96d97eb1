package models

import (
	"time"

	"github.com/airsight/airsight/internal/airquality"
)

// CountryItem is one country with its aggregate city statistics. Aggregate
// fields are zero when the resolved source does not report them.
type CountryItem struct {
	Code         string `json:"code"`
	Name         string `json:"name"`
	CityCount    int    `json:"cityCount"`
	AverageAQI   int    `json:"averageAqi"`
	WorstCity    string `json:"worstCity"`
	WorstCityAQI int    `json:"worstCityAqi"`
}

// CountriesResponse is the country list envelope.
type CountriesResponse struct {
	Countries []CountryItem `json:"countries"`
}

// CityItem is one city's current reading. Every pollutant field is always
// present so the payload shape never varies by source.
type CityItem struct {
	City        string    `json:"city"`
	AQIIndex    int       `json:"aqiIndex"`
	AQICategory string    `json:"aqiCategory"`
	PM25        float64   `json:"pm25"`
	PM10        float64   `json:"pm10"`
	NO2         float64   `json:"no2"`
	O3          float64   `json:"o3"`
	CO          float64   `json:"co"`
	SO2         float64   `json:"so2"`
	Population  int64     `json:"population"`
	Latitude    float64   `json:"lat"`
	Longitude   float64   `json:"lon"`
	LastUpdated time.Time `json:"lastUpdated"`
}

// CitiesResponse is the city list envelope.
type CitiesResponse struct {
	Country string     `json:"country"`
	Cities  []CityItem `json:"cities"`
}

// HistoryPointItem is one day in a city's pollutant history.
type HistoryPointItem struct {
	Date     string  `json:"date"`
	PM25     float64 `json:"pm25"`
	PM10     float64 `json:"pm10"`
	NO2      float64 `json:"no2"`
	O3       float64 `json:"o3"`
	CO       float64 `json:"co"`
	SO2      float64 `json:"so2"`
	AQIIndex int     `json:"aqiIndex"`
}

// HistoryResponse is the city history envelope, most recent day first.
type HistoryResponse struct {
	City    string             `json:"city"`
	Country string             `json:"country"`
	History []HistoryPointItem `json:"history"`
}

// StationItem is one monitoring station within a city.
type StationItem struct {
	StationName string    `json:"stationName"`
	Latitude    float64   `json:"latitude"`
	Longitude   float64   `json:"longitude"`
	PM25        float64   `json:"pm25"`
	PM10        float64   `json:"pm10"`
	NO2         float64   `json:"no2"`
	O3          float64   `json:"o3"`
	CO          float64   `json:"co"`
	SO2         float64   `json:"so2"`
	AQIIndex    int       `json:"aqiIndex"`
	LastUpdated time.Time `json:"lastUpdated"`
}

// StationsResponse is the station list envelope.
type StationsResponse struct {
	City     string        `json:"city"`
	Country  string        `json:"country"`
	Stations []StationItem `json:"stations"`
}

// HeatmapPointItem is one map point.
type HeatmapPointItem struct {
	City        string  `json:"city"`
	Country     string  `json:"country"`
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
	PM25        float64 `json:"pm25"`
	AQIIndex    int     `json:"aqiIndex"`
	AQICategory string  `json:"aqiCategory"`
}

// HeatmapResponse is the heatmap envelope.
type HeatmapResponse struct {
	Points []HeatmapPointItem `json:"points"`
}

// ActivityAdviceItem is one activity's safety verdict.
type ActivityAdviceItem struct {
	Safe           bool   `json:"safe"`
	Recommendation string `json:"recommendation"`
}

// ActivitiesItem holds per-activity recommendations plus an overall line.
type ActivitiesItem struct {
	Walking     ActivityAdviceItem `json:"walking"`
	Running     ActivityAdviceItem `json:"running"`
	OutdoorPlay ActivityAdviceItem `json:"outdoor_play"`
	Cycling     ActivityAdviceItem `json:"cycling"`
	Overall     string             `json:"overall"`
}

// HealthAdvisoryItem holds per-audience advisory text.
type HealthAdvisoryItem struct {
	General   string `json:"general"`
	Sensitive string `json:"sensitive"`
	Children  string `json:"children"`
	Elderly   string `json:"elderly"`
	Asthma    string `json:"asthma"`
}

// InsightsResponse is the derived advisory for one city.
type InsightsResponse struct {
	City       string             `json:"city"`
	Country    string             `json:"country"`
	AQI        int                `json:"aqi"`
	Category   string             `json:"category"`
	Health     HealthAdvisoryItem `json:"health"`
	Activities ActivitiesItem     `json:"activities"`
}

// IndexResponse describes the API at its root.
type IndexResponse struct {
	Message   string   `json:"message"`
	Version   string   `json:"version"`
	Endpoints []string `json:"endpoints"`
}

// NewCountryItem maps a domain country to its wire form.
func NewCountryItem(c airquality.Country) CountryItem {
	return CountryItem{
		Code:         c.Code,
		Name:         c.Name,
		CityCount:    c.CityCount,
		AverageAQI:   c.AverageAQI,
		WorstCity:    c.WorstCity,
		WorstCityAQI: c.WorstCityAQI,
	}
}

// NewCityItem maps a domain reading to its wire form.
func NewCityItem(r airquality.PollutantReading) CityItem {
	return CityItem{
		City:        r.City,
		AQIIndex:    r.AQIIndex,
		AQICategory: string(r.AQICategory),
		PM25:        r.PM25,
		PM10:        r.PM10,
		NO2:         r.NO2,
		O3:          r.O3,
		CO:          r.CO,
		SO2:         r.SO2,
		Population:  r.Population,
		Latitude:    r.Latitude,
		Longitude:   r.Longitude,
		LastUpdated: r.LastUpdated,
	}
}

// NewHistoryPointItem maps a domain history point to its wire form.
func NewHistoryPointItem(p airquality.HistoryPoint) HistoryPointItem {
	return HistoryPointItem{
		Date:     p.Date,
		PM25:     p.PM25,
		PM10:     p.PM10,
		NO2:      p.NO2,
		O3:       p.O3,
		CO:       p.CO,
		SO2:      p.SO2,
		AQIIndex: p.AQIIndex,
	}
}

// NewStationItem maps a domain station to its wire form.
func NewStationItem(s airquality.MonitoringStation) StationItem {
	return StationItem{
		StationName: s.StationName,
		Latitude:    s.Latitude,
		Longitude:   s.Longitude,
		PM25:        s.PM25,
		PM10:        s.PM10,
		NO2:         s.NO2,
		O3:          s.O3,
		CO:          s.CO,
		SO2:         s.SO2,
		AQIIndex:    s.AQIIndex,
		LastUpdated: s.LastUpdated,
	}
}

// NewHeatmapPointItem maps a domain heatmap point to its wire form.
func NewHeatmapPointItem(p airquality.HeatmapPoint) HeatmapPointItem {
	return HeatmapPointItem{
		City:        p.City,
		Country:     p.Country,
		Latitude:    p.Latitude,
		Longitude:   p.Longitude,
		PM25:        p.PM25,
		AQIIndex:    p.AQIIndex,
		AQICategory: string(p.AQICategory),
	}
}

// NewInsightsResponse maps a derived insight to its wire form.
func NewInsightsResponse(in airquality.Insight) InsightsResponse {
	return InsightsResponse{
		City:     in.City,
		Country:  in.Country,
		AQI:      in.AQI,
		Category: string(in.Category),
		Health: HealthAdvisoryItem{
			General:   in.Health.General,
			Sensitive: in.Health.Sensitive,
			Children:  in.Health.Children,
			Elderly:   in.Health.Elderly,
			Asthma:    in.Health.Asthma,
		},
		Activities: ActivitiesItem{
			Walking:     ActivityAdviceItem(in.Activities.Walking),
			Running:     ActivityAdviceItem(in.Activities.Running),
			OutdoorPlay: ActivityAdviceItem(in.Activities.OutdoorPlay),
			Cycling:     ActivityAdviceItem(in.Activities.Cycling),
			Overall:     in.Activities.Overall,
		},
	}
}
