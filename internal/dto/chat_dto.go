package dto

type ChatMessageRequest struct {
	UserId  string `json:"user_id" validate:"required"`
	Message string `json:"message" validate:"required"`
}

type ChatMessageResponse struct {
	Reply string `json:"reply"`
}
