// Package sample provides the bundled fallback dataset served whenever the
// upstream provider is unavailable, unconfigured, or disabled. The table is
// read-only and initialized at startup; it is the only persistent state in
// the gateway.
package sample

import "github.com/airsight/airsight/internal/airquality"

type countrySeed struct {
	code string
	name string
}

// citySeed is one seeded city record. AQI values are embedded rather than
// recomputed so the served numbers stay stable across releases.
type citySeed struct {
	city       string
	aqiIndex   int
	pm25       float64
	pm10       float64
	no2        float64
	o3         float64
	co         float64
	so2        float64
	population int64
	lat        float64
	lon        float64
}

var countrySeeds = []countrySeed{
	{code: "IN", name: "India"},
	{code: "US", name: "United States"},
	{code: "GB", name: "United Kingdom"},
	{code: "DE", name: "Germany"},
	{code: "BR", name: "Brazil"},
	{code: "CN", name: "China"},
	{code: "JP", name: "Japan"},
	{code: "AU", name: "Australia"},
}

var citySeeds = map[string][]citySeed{
	"IN": {
		{city: "New Delhi", aqiIndex: 156, pm25: 66.9, pm10: 142, no2: 78, o3: 32, co: 1.1, so2: 19, population: 32000000, lat: 28.7041, lon: 77.1025},
		{city: "Mumbai", aqiIndex: 160, pm25: 95, pm10: 140, no2: 60, o3: 40, co: 0.9, so2: 15, population: 20000000, lat: 19.0760, lon: 72.8777},
		{city: "Bangalore", aqiIndex: 120, pm25: 65, pm10: 95, no2: 45, o3: 38, co: 0.7, so2: 12, population: 12000000, lat: 12.9716, lon: 77.5946},
		{city: "Kolkata", aqiIndex: 185, pm25: 110, pm10: 165, no2: 72, o3: 42, co: 1.0, so2: 18, population: 14800000, lat: 22.5726, lon: 88.3639},
		{city: "Chennai", aqiIndex: 95, pm25: 48, pm10: 78, no2: 38, o3: 45, co: 0.6, so2: 10, population: 10900000, lat: 13.0827, lon: 80.2707},
	},
	"US": {
		{city: "Los Angeles", aqiIndex: 75, pm25: 35, pm10: 58, no2: 42, o3: 55, co: 0.5, so2: 8, population: 13000000, lat: 34.0522, lon: -118.2437},
		{city: "New York", aqiIndex: 55, pm25: 28, pm10: 45, no2: 38, o3: 48, co: 0.4, so2: 7, population: 19000000, lat: 40.7128, lon: -74.0060},
		{city: "Chicago", aqiIndex: 48, pm25: 22, pm10: 38, no2: 32, o3: 42, co: 0.3, so2: 6, population: 9500000, lat: 41.8781, lon: -87.6298},
	},
	"GB": {
		{city: "London", aqiIndex: 62, pm25: 32, pm10: 52, no2: 45, o3: 38, co: 0.4, so2: 9, population: 9000000, lat: 51.5074, lon: -0.1278},
		{city: "Manchester", aqiIndex: 58, pm25: 29, pm10: 48, no2: 40, o3: 35, co: 0.35, so2: 8, population: 2800000, lat: 53.4808, lon: -2.2426},
	},
	"DE": {
		{city: "Berlin", aqiIndex: 45, pm25: 20, pm10: 35, no2: 32, o3: 40, co: 0.3, so2: 6, population: 3800000, lat: 52.5200, lon: 13.4050},
		{city: "Munich", aqiIndex: 42, pm25: 18, pm10: 32, no2: 28, o3: 38, co: 0.28, so2: 5, population: 1500000, lat: 48.1351, lon: 11.5820},
	},
	"BR": {
		{city: "São Paulo", aqiIndex: 88, pm25: 42, pm10: 68, no2: 52, o3: 45, co: 0.65, so2: 12, population: 22000000, lat: -23.5505, lon: -46.6333},
		{city: "Rio de Janeiro", aqiIndex: 72, pm25: 36, pm10: 58, no2: 45, o3: 50, co: 0.55, so2: 10, population: 13000000, lat: -22.9068, lon: -43.1729},
	},
	"CN": {
		{city: "Beijing", aqiIndex: 165, pm25: 98, pm10: 145, no2: 68, o3: 42, co: 0.95, so2: 20, population: 21500000, lat: 39.9042, lon: 116.4074},
		{city: "Shanghai", aqiIndex: 135, pm25: 78, pm10: 115, no2: 58, o3: 48, co: 0.82, so2: 16, population: 27000000, lat: 31.2304, lon: 121.4737},
	},
	"JP": {
		{city: "Tokyo", aqiIndex: 52, pm25: 26, pm10: 42, no2: 36, o3: 45, co: 0.38, so2: 7, population: 37000000, lat: 35.6762, lon: 139.6503},
		{city: "Osaka", aqiIndex: 48, pm25: 23, pm10: 38, no2: 32, o3: 42, co: 0.35, so2: 6, population: 19000000, lat: 34.6937, lon: 135.5023},
	},
	"AU": {
		{city: "Sydney", aqiIndex: 38, pm25: 15, pm10: 28, no2: 25, o3: 38, co: 0.25, so2: 4, population: 5300000, lat: -33.8688, lon: 151.2093},
		{city: "Melbourne", aqiIndex: 35, pm25: 14, pm10: 25, no2: 22, o3: 35, co: 0.22, so2: 3, population: 5000000, lat: -37.8136, lon: 144.9631},
	},
}

// reading converts a seed into the canonical model. AQI category always
// comes from the embedded index.
func (s citySeed) reading(countryCode string, now timeFunc) airquality.PollutantReading {
	return airquality.PollutantReading{
		Country:     countryCode,
		City:        s.city,
		Latitude:    s.lat,
		Longitude:   s.lon,
		PM25:        s.pm25,
		PM10:        s.pm10,
		NO2:         s.no2,
		O3:          s.o3,
		CO:          s.co,
		SO2:         s.so2,
		Population:  s.population,
		AQIIndex:    s.aqiIndex,
		AQICategory: airquality.CategoryForIndex(s.aqiIndex),
		LastUpdated: now().UTC(),
	}
}
