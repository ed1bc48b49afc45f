package models

import "time"

type AuditLog struct {
	ID int64 `gorm:"primaryKey" json:"id"`

	Action   string `gorm:"size:50;not null;index" json:"action"`
	Entity   string `gorm:"size:50;index" json:"entity"`
	EntityID *int64 `json:"entity_id"`
	Metadata string `gorm:"type:text" json:"metadata"`

	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
}
