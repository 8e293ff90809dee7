package domain

// Health status values reported by the backend health check.
const (
	HealthStatusHealthy   = "healthy"
	HealthStatusUnhealthy = "unhealthy"

	MongoConnected    = "connected"
	MongoDisconnected = "disconnected"
)

// HealthReport is the structured result of a backend health check,
// including the subsidiary collection counts the dashboard surfaces.
type HealthReport struct {
	Status       string `json:"status"`
	MongoDB      string `json:"mongodb"`
	DatasetCount int64  `json:"dataset_count"`
	ModelCount   int64  `json:"model_count"`
	Error        string `json:"error,omitempty"`
}
