package dto

type CreateServiceRequest struct {
	Name        string   `json:"name" binding:"required,min=3"`
	Description *string  `json:"description"`
	Price       *float64 `json:"price" binding:"required,gte=0"`
	Duration    *int     `json:"duration" binding:"required,gt=0"`
}

type UpdateServiceRequest struct {
	Name        *string  `json:"name" binding:"omitempty,min=3"`
	Description *string  `json:"description"`
	Price       *float64 `json:"price" binding:"omitempty,gte=0"`
	Duration    *int     `json:"duration" binding:"omitempty,gt=0"`
}
