package models

import (
	"time"
)

const (
	RolNormal    = "normal"
	RolExclusivo = "exclusivo"
	RolAdmin     = "admin"
)

// DefaultReputacion is the cached rating of a user nobody has rated yet.
const DefaultReputacion = 5.0

type Usuario struct {
	ID                  string    `gorm:"primaryKey;type:varchar(36)" json:"id"`
	CreatedAt           time.Time `json:"fechaRegistro"`
	UpdatedAt           time.Time `json:"fechaActualizacion"`
	Nombre              string    `gorm:"not null" json:"nombre"`
	Email               string    `gorm:"uniqueIndex;not null" json:"email"`
	Password            string    `gorm:"not null" json:"-"` // Don't expose password in JSON
	Telefono            string    `json:"telefono"`
	Carrera             string    `json:"carrera"`
	Foto                string    `json:"foto"`
	Rol                 string    `gorm:"not null;default:'normal'" json:"rol"`
	Reputacion          float64   `gorm:"not null;default:5" json:"reputacion"`
	TotalCalificaciones int       `gorm:"not null;default:0" json:"totalCalificaciones"`
	FavoresPublicados   []string  `gorm:"serializer:json" json:"favoresPublicados"`
	FavoresCompletados  []string  `gorm:"serializer:json" json:"favoresCompletados"`
}

func (Usuario) TableName() string {
	return "usuarios"
}

// HasContact reports whether the user can be reached by phone.
func (u *Usuario) HasContact() bool {
	return u != nil && trimmed(u.Telefono) != ""
}

func (u *Usuario) IsAdmin() bool {
	return u != nil && u.Rol == RolAdmin
}

func ValidRol(rol string) bool {
	switch rol {
	case RolNormal, RolExclusivo, RolAdmin:
		return true
	}
	return false
}
