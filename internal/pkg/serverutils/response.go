package serverutils

// WebResponse is the uniform JSON envelope for every API reply.
type WebResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

func SuccessResponse(message string, data interface{}) WebResponse {
	return WebResponse{
		Success: true,
		Message: message,
		Data:    data,
	}
}

func ErrorResponse(message string) WebResponse {
	return WebResponse{
		Success: false,
		Message: message,
	}
}
