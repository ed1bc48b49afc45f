package dto

type CreateClientRequest struct {
	Name  string  `json:"name" binding:"required,min=3"`
	Phone string  `json:"phone" binding:"required,min=8"`
	Email *string `json:"email" binding:"omitempty,salon_email"`
}

type UpdateClientRequest struct {
	Name  *string `json:"name" binding:"omitempty,min=3"`
	Phone *string `json:"phone" binding:"omitempty,min=8"`
	Email *string `json:"email" binding:"omitempty,salon_email"`
}
