package handler

import (
	"net/http"

	"github.com/airsight/airsight/internal/api/models"
	"github.com/airsight/airsight/internal/api/response"
)

// IndexHandler serves the API root.
type IndexHandler struct {
	version string
}

// NewIndexHandler creates a new IndexHandler.
func NewIndexHandler(version string) *IndexHandler {
	return &IndexHandler{version: version}
}

// Index handles GET / - API discovery.
func (h *IndexHandler) Index(w http.ResponseWriter, r *http.Request) {
	response.JSON(w, r, http.StatusOK, models.IndexResponse{
		Message: "AirSight Global Air Quality API",
		Version: h.version,
		Endpoints: []string{
			"/api/countries",
			"/api/cities",
			"/api/city/{city}/summary",
			"/api/city/{city}/history",
			"/api/city/{city}/stations",
			"/api/heatmap",
			"/api/insights",
		},
	})
}
