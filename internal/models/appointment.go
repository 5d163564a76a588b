package models

import "time"

type Appointment struct {
	ID         uint   `gorm:"primaryKey" json:"id"`
	PublicCode string `gorm:"size:36;uniqueIndex" json:"public_code"`

	BarbershopID uint       `json:"barbershop_id"`
	Barbershop   Barbershop `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"-"`

	BarberID uint `gorm:"index:idx_appointment_barber_start" json:"barber_id"`
	Barber   User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"-"`

	ClientID uint   `json:"client_id"`
	Client   Client `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"client"`

	Services []BarberProduct `gorm:"many2many:appointment_services;" json:"services"`

	StartTime   time.Time `gorm:"index:idx_appointment_barber_start" json:"start_time"`
	EndTime     time.Time `json:"end_time"`
	DurationMin int       `json:"duration_min"`
	TotalPrice  float64   `json:"total_price"`

	Status string `gorm:"size:20;default:'scheduled'" json:"status"`

	Notes       string     `gorm:"size:255" json:"notes"`
	ConfirmedAt *time.Time `json:"confirmed_at"`
	CancelledAt *time.Time `json:"cancelled_at"`
	CompletedAt *time.Time `json:"completed_at"`

	Review *Review `json:"review,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
