package models

import "time"

const (
	RoleOwner  = "owner"
	RoleBarber = "barber"
)

// User é o barbeiro (o dono da barbearia também atende).
type User struct {
	ID           uint       `gorm:"primaryKey" json:"id"`
	BarbershopID uint       `json:"barbershop_id"`
	Barbershop   Barbershop `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"barbershop"`

	Name         string `gorm:"size:100;not null" json:"name"`
	Email        string `gorm:"size:100;uniqueIndex;not null" json:"email"`
	PasswordHash string `gorm:"size:255;not null" json:"-"`
	Phone        string `gorm:"size:20" json:"phone"`
	Role         string `gorm:"size:20;default:'owner'" json:"role"`
	AvatarURL    string `gorm:"size:512" json:"avatar_url"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
