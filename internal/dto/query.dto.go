package dto

// ListQuery is the common paging and search input of listings.
type ListQuery struct {
	Page   int    `form:"page" binding:"omitempty,min=1"`
	Limit  int    `form:"limit" binding:"omitempty,min=1"`
	Search string `form:"search"`
	Sort   string `form:"sort"`
}

type AppointmentListQuery struct {
	ListQuery
	Status string `form:"status" binding:"omitempty,appointment_status"`
	Date   string `form:"date" binding:"omitempty,salon_date"`
}

type AuditLogListQuery struct {
	Page   int    `form:"page" binding:"omitempty,min=1"`
	Limit  int    `form:"limit" binding:"omitempty,min=1"`
	Action string `form:"action"`
	Entity string `form:"entity"`
}

type ReportQuery struct {
	TimeFrame string `form:"time_frame" binding:"omitempty,oneof=week month quarter year"`
}

type SummaryQuery struct {
	ReportType string `form:"report_type" binding:"omitempty,oneof=revenue appointments"`
	TimeFrame  string `form:"time_frame" binding:"omitempty,oneof=week month quarter year"`
}
