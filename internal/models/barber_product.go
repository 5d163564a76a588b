package models

import "time"

// BarberProduct é um serviço oferecido pela barbearia (corte, barba...).
type BarberProduct struct {
	ID           uint `gorm:"primaryKey" json:"id"`
	BarbershopID uint `json:"barbershop_id"`

	Name        string  `gorm:"size:100;not null" json:"name"`
	Description string  `gorm:"size:500" json:"description"`
	DurationMin int     `json:"duration_min"`
	Price       float64 `json:"price"`
	Active      bool    `gorm:"default:true" json:"active"`
	Featured    bool    `gorm:"default:false" json:"featured"`
	SortOrder   int     `gorm:"default:0" json:"sort_order"`

	Category string `gorm:"size:50" json:"category"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
