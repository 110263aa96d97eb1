// Package handler provides HTTP handlers for the AirSight API.
package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/airsight/airsight/internal/airquality"
	"github.com/airsight/airsight/internal/api/models"
	"github.com/airsight/airsight/internal/api/response"
)

// AirQualityHandler serves the air quality query endpoints.
type AirQualityHandler struct {
	service *airquality.Service
}

// NewAirQualityHandler creates a new AirQualityHandler.
func NewAirQualityHandler(service *airquality.Service) *AirQualityHandler {
	return &AirQualityHandler{service: service}
}

// ListCountries handles GET /api/countries.
func (h *AirQualityHandler) ListCountries(w http.ResponseWriter, r *http.Request) {
	countries, _ := h.service.Countries(r.Context())

	items := make([]models.CountryItem, 0, len(countries))
	for _, c := range countries {
		items = append(items, models.NewCountryItem(c))
	}
	response.JSON(w, r, http.StatusOK, models.CountriesResponse{Countries: items})
}

// ListCities handles GET /api/cities?country=XX.
func (h *AirQualityHandler) ListCities(w http.ResponseWriter, r *http.Request) {
	country, ok := requireCountry(w, r)
	if !ok {
		return
	}

	readings, _, err := h.service.Cities(r.Context(), country)
	if err != nil {
		writeServiceError(w, r, err, "No cities found for country: "+country)
		return
	}

	items := make([]models.CityItem, 0, len(readings))
	for _, reading := range readings {
		items = append(items, models.NewCityItem(reading))
	}
	response.JSON(w, r, http.StatusOK, models.CitiesResponse{Country: country, Cities: items})
}

// CitySummary handles GET /api/city/{city}/summary?country=XX.
func (h *AirQualityHandler) CitySummary(w http.ResponseWriter, r *http.Request) {
	city := chi.URLParam(r, "city")
	country, ok := requireCountry(w, r)
	if !ok {
		return
	}

	reading, _, err := h.service.CitySummary(r.Context(), city, country)
	if err != nil {
		writeServiceError(w, r, err, "City not found: "+city)
		return
	}
	response.JSON(w, r, http.StatusOK, models.NewCityItem(reading))
}

// CityHistory handles GET /api/city/{city}/history?country=XX&days=N.
func (h *AirQualityHandler) CityHistory(w http.ResponseWriter, r *http.Request) {
	city := chi.URLParam(r, "city")
	country, ok := requireCountry(w, r)
	if !ok {
		return
	}

	// An omitted window defaults; an explicit value is passed through so
	// the service clamps it, 0 included.
	days := airquality.DefaultHistoryDays
	if raw := r.URL.Query().Get("days"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			response.UnprocessableEntity(w, r, "days must be an integer", []models.FieldError{
				{Field: "days", Message: "must be an integer", Code: "type_error"},
			})
			return
		}
		days = parsed
	}

	history, _ := h.service.CityHistory(r.Context(), city, country, days)

	items := make([]models.HistoryPointItem, 0, len(history))
	for _, point := range history {
		items = append(items, models.NewHistoryPointItem(point))
	}
	response.JSON(w, r, http.StatusOK, models.HistoryResponse{
		City:    city,
		Country: country,
		History: items,
	})
}

// CityStations handles GET /api/city/{city}/stations?country=XX.
func (h *AirQualityHandler) CityStations(w http.ResponseWriter, r *http.Request) {
	city := chi.URLParam(r, "city")
	country, ok := requireCountry(w, r)
	if !ok {
		return
	}

	stations, _ := h.service.CityStations(r.Context(), city, country)

	items := make([]models.StationItem, 0, len(stations))
	for _, station := range stations {
		items = append(items, models.NewStationItem(station))
	}
	response.JSON(w, r, http.StatusOK, models.StationsResponse{
		City:     city,
		Country:  country,
		Stations: items,
	})
}

// Heatmap handles GET /api/heatmap?country=XX. The country filter is
// optional.
func (h *AirQualityHandler) Heatmap(w http.ResponseWriter, r *http.Request) {
	country := r.URL.Query().Get("country")

	points, _ := h.service.Heatmap(r.Context(), country)

	items := make([]models.HeatmapPointItem, 0, len(points))
	for _, point := range points {
		items = append(items, models.NewHeatmapPointItem(point))
	}
	response.JSON(w, r, http.StatusOK, models.HeatmapResponse{Points: items})
}

// Insights handles GET /api/insights?country=XX&city=YY.
func (h *AirQualityHandler) Insights(w http.ResponseWriter, r *http.Request) {
	country, ok := requireCountry(w, r)
	if !ok {
		return
	}
	city := r.URL.Query().Get("city")
	if city == "" {
		response.BadRequest(w, r, "city query parameter is required", []models.FieldError{
			{Field: "city", Message: "required", Code: "missing"},
		})
		return
	}

	insight, _, err := h.service.Insights(r.Context(), city, country)
	if err != nil {
		writeServiceError(w, r, err, "City not found: "+city)
		return
	}
	response.JSON(w, r, http.StatusOK, models.NewInsightsResponse(insight))
}

// requireCountry extracts the mandatory country query parameter, writing a
// 400 when it is absent.
func requireCountry(w http.ResponseWriter, r *http.Request) (string, bool) {
	country := r.URL.Query().Get("country")
	if country == "" {
		response.BadRequest(w, r, "country query parameter is required", []models.FieldError{
			{Field: "country", Message: "required", Code: "missing"},
		})
		return "", false
	}
	return country, true
}

// writeServiceError maps domain error kinds onto problem responses.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error, notFoundDetail string) {
	switch {
	case errors.Is(err, airquality.ErrNotFound):
		response.NotFound(w, r, notFoundDetail)
	case errors.Is(err, airquality.ErrInvalidArgument):
		response.UnprocessableEntity(w, r, err.Error(), nil)
	default:
		response.InternalError(w, r, "unexpected error resolving air quality data")
	}
}
