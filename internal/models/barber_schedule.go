package models

import "time"

// BarberSchedule overrides the barbershop hours for one barber on one weekday.
// Empty OpenTime/CloseTime keep the barbershop window.
type BarberSchedule struct {
	ID       uint `gorm:"primaryKey" json:"id"`
	BarberID uint `gorm:"uniqueIndex:idx_barber_schedule_day;not null" json:"barber_id"`

	Weekday   int    `gorm:"uniqueIndex:idx_barber_schedule_day;not null" json:"weekday"`
	Active    bool   `json:"active"`
	OpenTime  string `gorm:"size:5" json:"open_time"`
	CloseTime string `gorm:"size:5" json:"close_time"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
