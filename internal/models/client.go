package models

import "time"

// Cliente avulso, sem login
type Client struct {
	ID int64 `gorm:"primaryKey" json:"id"`

	Name  string  `gorm:"size:100;not null" json:"name"`
	Phone string  `gorm:"size:20;not null" json:"phone"`
	Email *string `gorm:"size:100" json:"email"`

	CreatedAt   time.Time  `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	LastVisit   *time.Time `json:"last_visit"`
	TotalVisits int        `gorm:"not null;default:0" json:"total_visits"`
}
