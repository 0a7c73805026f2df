package models

import (
	"time"
)

const (
	AccionCreado     = "favor_creado"
	AccionOferta     = "ayuda_ofrecida"
	AccionAceptado   = "ayudante_aceptado"
	AccionFinalizado = "favor_finalizado"
	AccionConfirmado = "finalizacion_confirmada"
	AccionFijado     = "favor_fijado"
	AccionDesfijado  = "favor_desfijado"
	AccionEliminado  = "favor_eliminado"
	AccionCalificado = "favor_calificado"
	AccionReportado  = "favor_reportado"
)

// ActividadFavor is one audit entry, written in the same transaction as the
// change it records.
type ActividadFavor struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	CreatedAt time.Time `json:"fecha"`
	FavorID   string    `gorm:"not null;index" json:"favorId"`
	UsuarioID string    `gorm:"not null" json:"usuarioId"`
	Accion    string    `gorm:"not null;type:varchar(50)" json:"accion"`
}

func (ActividadFavor) TableName() string {
	return "actividad_favores"
}
