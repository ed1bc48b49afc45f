package dto

type CreateAppointmentRequest struct {
	Service  string `json:"service" binding:"required,min=3"`
	Date     string `json:"date" binding:"required,salon_date"`
	Time     string `json:"time" binding:"required,salon_time"`
	Name     string `json:"name" binding:"required,min=3"`
	Phone    string `json:"phone" binding:"required,min=8"`
	ClientID *int64 `json:"client_id" binding:"omitempty,gt=0"`
	Status   string `json:"status" binding:"omitempty,appointment_status"`
}

// UpdateAppointmentRequest is a partial update: omitted fields keep their value.
type UpdateAppointmentRequest struct {
	Service  *string `json:"service" binding:"omitempty,min=3"`
	Date     *string `json:"date" binding:"omitempty,salon_date"`
	Time     *string `json:"time" binding:"omitempty,salon_time"`
	Name     *string `json:"name" binding:"omitempty,min=3"`
	Phone    *string `json:"phone" binding:"omitempty,min=8"`
	ClientID *int64  `json:"client_id" binding:"omitempty,gt=0"`
	Status   *string `json:"status" binding:"omitempty,appointment_status"`
}
