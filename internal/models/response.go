package models

// Paginated wraps list responses.
type Paginated[T any] struct {
	Data  []T `json:"data"`
	Total int `json:"total"`
	Page  int `json:"page"`
	Limit int `json:"limit"`
}

// ErrorResponse is the JSON body of every non-2xx backend response.
type ErrorResponse struct {
	Message string `json:"message"`
}
