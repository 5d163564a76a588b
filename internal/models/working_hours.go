package models

import (
	"time"

	"gorm.io/datatypes"
)

// WorkingHours guarda o expediente semanal de um barbeiro: uma janela diária
// e os dias da semana atendidos (0=domingo .. 6=sábado).
type WorkingHours struct {
	ID       uint `gorm:"primaryKey" json:"id"`
	BarberID uint `gorm:"uniqueIndex" json:"barber_id"`

	StartTime         string                   `gorm:"size:5" json:"start_time"`
	EndTime           string                   `gorm:"size:5" json:"end_time"`
	AvailableWeekdays datatypes.JSONSlice[int] `json:"available_weekdays"`
	LunchStart        string                   `gorm:"size:5" json:"lunch_start"`
	LunchEnd          string                   `gorm:"size:5" json:"lunch_end"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
