package models

import "time"

type Review struct {
	ID            uint `gorm:"primaryKey" json:"id"`
	AppointmentID uint `gorm:"uniqueIndex" json:"appointment_id"`
	BarberID      uint `gorm:"index" json:"barber_id"`

	Rating  int    `json:"rating"`
	Comment string `gorm:"size:500" json:"comment"`

	CreatedAt time.Time `json:"created_at"`
}
