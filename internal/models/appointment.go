package models

import "time"

// Appointment dates and times are kept as YYYY-MM-DD and HH:MM text so they
// round-trip unchanged through JSON and both SQL dialects.
type Appointment struct {
	ID int64 `gorm:"primaryKey" json:"id"`

	// Service holds the service name, matched against services.name.
	Service string `gorm:"size:100;not null;index" json:"service"`
	Date    string `gorm:"size:10;not null;index" json:"date"`
	Time    string `gorm:"size:5;not null" json:"time"`

	Name  string `gorm:"size:100;not null" json:"name"`
	Phone string `gorm:"size:20;not null" json:"phone"`

	ClientID *int64 `gorm:"index" json:"client_id"`

	Status string `gorm:"size:20;not null;default:'pending';index" json:"status"`

	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
}
