package dto

// SuccessResponse represents a standard success response for API endpoints
type SuccessResponse struct {
	Message string `json:"message"`
}

// NewSuccessResponse creates a success response with a message
func NewSuccessResponse(message string) SuccessResponse {
	return SuccessResponse{Message: message}
}
