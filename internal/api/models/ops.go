package models

// Health represents the health status of the service.
type Health struct {
	Status  HealthStatus           `json:"status"`
	Time    Timestamp              `json:"time"`
	Details map[string]interface{} `json:"details,omitempty"`
}

// SystemStatus represents the overall system status: the active data
// source plus per-provider circuit health.
type SystemStatus struct {
	Status        HealthStatus     `json:"status"`
	Time          Timestamp        `json:"time"`
	DataSource    string           `json:"dataSource"`
	KeyConfigured bool             `json:"keyConfigured"`
	KeyValid      *bool            `json:"keyValid,omitempty"`
	Providers     []ProviderStatus `json:"providers"`
}

// ProviderStatus represents the status of an external provider.
type ProviderStatus struct {
	Provider      string       `json:"provider"`
	Status        HealthStatus `json:"status"`
	CircuitState  string       `json:"circuitState"`
	LastSuccessAt *Timestamp   `json:"lastSuccessAt,omitempty"`
	LastFailureAt *Timestamp   `json:"lastFailureAt,omitempty"`
	Message       *string      `json:"message,omitempty"`
}
