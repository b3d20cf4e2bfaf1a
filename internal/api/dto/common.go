package dto

type ErrorResponse struct {
	Error   string            `json:"error"`
	Message string            `json:"message"`
	Detail  string            `json:"detail,omitempty"`
	Details map[string]string `json:"details,omitempty"`
}

type SuccessResponse struct {
	Success bool `json:"success"`
}
