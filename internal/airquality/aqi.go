package airquality

// FromPM25 derives the air quality index from a PM2.5 concentration using
// the US EPA PM2.5 breakpoint table. The index is PM2.5-led: other
// pollutants contribute to the record but not to the index, matching the
// upstream dashboard's published values. Negative inputs are clamped to 0.
// Pure and stateless; safe for unsynchronized concurrent use.
func FromPM25(pm25 float64) int {
	if pm25 < 0 {
		pm25 = 0
	}

	switch {
	case pm25 <= 12:
		return int((50.0 / 12.0) * pm25)
	case pm25 <= 35.4:
		return int(50 + (50.0/(35.4-12.0))*(pm25-12.0))
	case pm25 <= 55.4:
		return int(100 + (50.0/(55.4-35.4))*(pm25-35.4))
	case pm25 <= 150.4:
		return int(150 + (50.0/(150.4-55.4))*(pm25-55.4))
	case pm25 <= 250.4:
		return int(200 + (100.0/(250.4-150.4))*(pm25-150.4))
	default:
		return int(300 + (100.0/(500.4-250.4))*(pm25-250.4))
	}
}

// CategoryForIndex maps an AQI value onto its severity band. Band edges are
// inclusive on the lower band: 50 is Good, 51 is Moderate.
func CategoryForIndex(aqi int) Category {
	switch {
	case aqi <= 50:
		return CategoryGood
	case aqi <= 100:
		return CategoryModerate
	case aqi <= 150:
		return CategorySensitive
	case aqi <= 200:
		return CategoryUnhealthy
	case aqi <= 300:
		return CategoryVeryUnhealthy
	default:
		return CategoryHazardous
	}
}
