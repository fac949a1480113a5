package models

import "time"

// BusinessHours is the barbershop-wide open/close window for one weekday.
type BusinessHours struct {
	ID           uint `gorm:"primaryKey" json:"id"`
	BarbershopID uint `gorm:"uniqueIndex:idx_business_hours_day;not null" json:"barbershop_id"`

	Weekday   int    `gorm:"uniqueIndex:idx_business_hours_day;not null" json:"weekday"`
	OpenTime  string `gorm:"size:5" json:"open_time"`
	CloseTime string `gorm:"size:5" json:"close_time"`
	Active    bool   `json:"active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
