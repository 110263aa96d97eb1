package handler

import (
	"net/http"
	"time"

	"github.com/airsight/airsight/internal/airquality"
	"github.com/airsight/airsight/internal/api/models"
	"github.com/airsight/airsight/internal/api/response"
	"github.com/airsight/airsight/internal/provider/resilience"
)

// OpsHandler handles operational endpoints.
type OpsHandler struct {
	version   string
	buildTime string
	service   *airquality.Service
	registry  *resilience.Registry
}

// NewOpsHandler creates a new OpsHandler.
func NewOpsHandler(version, buildTime string, service *airquality.Service, registry *resilience.Registry) *OpsHandler {
	return &OpsHandler{
		version:   version,
		buildTime: buildTime,
		service:   service,
		registry:  registry,
	}
}

// HealthCheck handles GET /ops/health - liveness check.
func (h *OpsHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	health := models.Health{
		Status: models.HealthStatusOK,
		Time:   models.Timestamp(time.Now()),
		Details: map[string]interface{}{
			"version":   h.version,
			"buildTime": h.buildTime,
		},
	}
	response.JSON(w, r, http.StatusOK, health)
}

// ReadinessCheck handles GET /ops/ready - readiness check. The gateway is
// always ready: the fallback dataset serves every query when the upstream
// cannot.
func (h *OpsHandler) ReadinessCheck(w http.ResponseWriter, r *http.Request) {
	health := models.Health{
		Status: models.HealthStatusOK,
		Time:   models.Timestamp(time.Now()),
	}
	response.JSON(w, r, http.StatusOK, health)
}

// SystemStatus handles GET /ops/status - data source resolution and
// provider circuit health.
func (h *OpsHandler) SystemStatus(w http.ResponseWriter, r *http.Request) {
	upstream := h.service.UpstreamStatus(r.Context())

	status := models.SystemStatus{
		Status:        models.HealthStatusOK,
		Time:          models.Timestamp(time.Now()),
		DataSource:    string(upstream.Source),
		KeyConfigured: upstream.KeyConfigured,
		Providers:     []models.ProviderStatus{},
	}
	if upstream.Key != nil {
		valid := upstream.Key.Valid
		status.KeyValid = &valid
	}
	// Fallback with a configured key means the upstream is not serving;
	// unless the deployment pinned the sample dataset on purpose.
	if upstream.KeyConfigured && !upstream.ForceSample && upstream.Source == airquality.SourceFallback {
		status.Status = models.HealthStatusDegraded
	}

	if h.registry != nil {
		for _, health := range h.registry.GetAllHealth() {
			status.Providers = append(status.Providers, providerStatus(health))
		}
	}

	response.JSON(w, r, http.StatusOK, status)
}

func providerStatus(health *resilience.ProviderHealth) models.ProviderStatus {
	ps := models.ProviderStatus{
		Provider:     health.Name,
		Status:       models.HealthStatusFail,
		CircuitState: health.CircuitState.String(),
	}
	switch {
	case health.IsHealthy():
		ps.Status = models.HealthStatusOK
	case health.IsDegraded():
		ps.Status = models.HealthStatusDegraded
	}
	if health.LastSuccessAt != nil {
		ts := models.Timestamp(*health.LastSuccessAt)
		ps.LastSuccessAt = &ts
	}
	if health.LastFailureAt != nil {
		ts := models.Timestamp(*health.LastFailureAt)
		ps.LastFailureAt = &ts
	}
	if health.LastError != "" {
		msg := health.LastError
		ps.Message = &msg
	}
	return ps
}
