package dto

// ErrorResponse is the uniform error body: an HTTP status, a stable
// machine-readable code and a caller-safe message.
type ErrorResponse struct {
	StatusCode int    `json:"statusCode"`
	Code       string `json:"code"`
	Message    string `json:"message"`
}
