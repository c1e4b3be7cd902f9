package dto

// Response 统一的响应体，字段按接口需要选填
type Response struct {
	Success bool                `json:"success"`
	Data    any                 `json:"data,omitempty"`
	Post    any                 `json:"post,omitempty"`
	Message string              `json:"message,omitempty"`
	Error   string              `json:"error,omitempty"`
	Errors  map[string][]string `json:"errors,omitempty"`
}
