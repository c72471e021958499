package dto

type ContactSubmitRequest struct {
	Name    string `json:"name" validate:"required,max=200"`
	Email   string `json:"email" validate:"required,email"`
	Message string `json:"message" validate:"required,max=5000"`
}

type UnreadCountResponse struct {
	Unread int `json:"unread"`
}
