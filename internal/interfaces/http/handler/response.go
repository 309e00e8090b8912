package handler

import "github.com/retailpos/backend/internal/interfaces/http/dto"

// APIResponse represents a generic API response for OpenAPI documentation
//
//	@Description	Standard API response wrapper with typed data field
type APIResponse[T any] struct {
	Success bool           `json:"success"`
	Data    T              `json:"data,omitempty"`
	Error   *dto.ErrorInfo `json:"error,omitempty"`
	Meta    *dto.Meta      `json:"meta,omitempty"`
}

// HealthData is the body of the health endpoint
//
//	@Description	Service health
type HealthData struct {
	Status   string `json:"status" example:"ok"`
	Database string `json:"database" example:"ok"`
	Version  string `json:"version" example:"1.4.0"`
}
