package dto

import "time"

type AppointmentListDTO struct {
	ID              uint      `json:"id"`
	StartAt         time.Time `json:"start_at"`
	EndAt           time.Time `json:"end_at"`
	Date            string    `json:"date"`
	Time            string    `json:"time"`
	DurationMinutes int       `json:"duration_minutes"`
	Status          string    `json:"status"`
	BarberID        uint      `json:"barber_id"`
	BarberName      string    `json:"barber_name"`
	ClientName      string    `json:"client_name"`
	ClientPhone     string    `json:"client_phone"`
	ServiceName     string    `json:"service_name"`
	Notes           string    `json:"notes"`
}
