package api

type ErrorResponse struct {
	Error string `json:"error" example:"something went wrong"`
}

type MessageResponse struct {
	Message string `json:"message" example:"ok"`
}

type HealthResponse struct {
	Status string `json:"status" example:"ok"`
}

type TokenResponse struct {
	TokenValue string `json:"token_value" example:"9f2c1a7e4b..."`
	ExpiresAt  string `json:"expires_at" example:"2026-01-02T15:04:05Z"`
}
