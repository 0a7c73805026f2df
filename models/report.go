package models

import (
	"time"
)

const (
	ContenidoFavor = "favor"

	ReporteEstadoPendiente  = "pendiente"
	ReporteEstadoRevisado   = "revisado"
	ReporteEstadoDescartado = "descartado"
)

// Reporte is a moderation report against a piece of content. Deleting the
// content deletes its reports first.
type Reporte struct {
	ID            string    `gorm:"primaryKey;type:varchar(36)" json:"id"`
	CreatedAt     time.Time `json:"fecha"`
	UpdatedAt     time.Time `json:"fechaActualizacion"`
	ReportadorID  string    `gorm:"not null;index" json:"reportadorId"`
	ContenidoID   string    `gorm:"not null;index" json:"contenidoId"`
	TipoContenido string    `gorm:"not null;type:varchar(30)" json:"tipoContenido"`
	Motivo        string    `gorm:"not null" json:"motivo"`
	Descripcion   string    `json:"descripcion"`
	Estado        string    `gorm:"not null;default:'pendiente'" json:"estado"` // pendiente, revisado, descartado
}

func (Reporte) TableName() string {
	return "reportes"
}
