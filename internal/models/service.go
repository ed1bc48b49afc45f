package models

type Service struct {
	ID int64 `gorm:"primaryKey" json:"id"`

	Name        string  `gorm:"size:100;not null;uniqueIndex" json:"name"`
	Description *string `gorm:"size:255" json:"description"`
	Price       float64 `gorm:"type:numeric(10,2);not null" json:"price"`
	// Duration in minutes.
	Duration int `gorm:"not null" json:"duration"`
}
