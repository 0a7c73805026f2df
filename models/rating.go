package models

import (
	"time"
)

// Calificacion is an immutable rating one party of a favor gives the other.
// The unique index backs the pre-insert duplicate check.
type Calificacion struct {
	ID                string    `gorm:"primaryKey;type:varchar(36)" json:"id"`
	CreatedAt         time.Time `json:"fecha"`
	FavorID           string    `gorm:"not null;uniqueIndex:idx_calificacion_favor_calificador" json:"favorId"`
	CalificadorID     string    `gorm:"not null;uniqueIndex:idx_calificacion_favor_calificador" json:"calificadorId"`
	CalificadorNombre string    `gorm:"not null" json:"calificadorNombre"`
	CalificadoID      string    `gorm:"not null;index" json:"calificadoId"`
	CalificadoNombre  string    `gorm:"not null" json:"calificadoNombre"`
	Estrellas         int       `gorm:"not null" json:"estrellas"`
	Comentario        string    `gorm:"type:text" json:"comentario,omitempty"`
	Rol               string    `gorm:"not null;type:varchar(20)" json:"rol"` // role of the rater in the favor
}

func (Calificacion) TableName() string {
	return "calificaciones"
}
