package api

// ErrorResponse 統一的錯誤回應
// swagger:model api.ErrorResponse
type ErrorResponse struct {
	Message string `json:"error" example:"User not found"`
}

// MessageResponse 只帶訊息的成功回應
// swagger:model api.MessageResponse
type MessageResponse struct {
	Message string `json:"message" example:"pong"`
}
