package dto

// HealthResponse is served at GET /health by both services.
type HealthResponse struct {
	Status  string            `json:"status"`
	Message string            `json:"message"`
	Checks  map[string]string `json:"checks,omitempty"`
}
