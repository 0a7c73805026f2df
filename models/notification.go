package models

import (
	"time"
)

const (
	NotifOfertaAyuda          = "oferta_ayuda"
	NotifAyudanteAceptado     = "ayudante_aceptado"
	NotifFavorFinalizado      = "favor_finalizado"
	NotifFavorConfirmado      = "favor_confirmado"
	NotifCalificacionRecibida = "calificacion_recibida"
)

type Notificacion struct {
	ID        string    `gorm:"primaryKey;type:varchar(36)" json:"id"`
	CreatedAt time.Time `json:"fecha"`
	UsuarioID string    `gorm:"not null;index" json:"usuarioId"`
	Tipo      string    `gorm:"not null;type:varchar(40)" json:"tipo"`
	Mensaje   string    `gorm:"not null" json:"mensaje"`
	FavorID   string    `gorm:"index" json:"favorId,omitempty"`
	Leida     bool      `gorm:"not null;default:false" json:"leida"`
}

func (Notificacion) TableName() string {
	return "notificaciones"
}
