package models

import (
	"strings"
	"time"
)

const (
	EstadoActivo     = "activo"
	EstadoPendiente  = "pendiente" // legacy open state
	EstadoEnProceso  = "en_proceso"
	EstadoCompletado = "completado" // legacy closed state
	EstadoFinalizado = "finalizado"
	EstadoConfirmado = "confirmado"
)

const (
	RolSolicitante = "solicitante"
	RolAyudante    = "ayudante"
)

// Ayudante is one helper offer on a favor. Offers are unique by IDUsuario.
type Ayudante struct {
	IDUsuario string    `json:"idUsuario"`
	Nombre    string    `json:"nombre"`
	Carrera   string    `json:"carrera"`
	Foto      string    `json:"foto,omitempty"`
	Telefono  string    `json:"telefono"`
	Fecha     time.Time `json:"fecha"`
}

// AyudanteSeleccionado is the snapshot of the offer the owner accepted.
type AyudanteSeleccionado struct {
	Ayudante
	FechaAceptacion time.Time `json:"fechaAceptacion"`
}

type Confirmacion struct {
	UsuarioID  string    `json:"usuarioId"`
	Confirmado bool      `json:"confirmado"`
	Fecha      time.Time `json:"fecha"`
}

// Confirmaciones is the two-party confirmation ledger, keyed by role.
type Confirmaciones struct {
	Solicitante *Confirmacion `json:"solicitante,omitempty"`
	Ayudante    *Confirmacion `json:"ayudante,omitempty"`
}

// Get returns the confirmation stored under role, if any.
func (c *Confirmaciones) Get(role string) *Confirmacion {
	if c == nil {
		return nil
	}
	switch role {
	case RolSolicitante:
		return c.Solicitante
	case RolAyudante:
		return c.Ayudante
	}
	return nil
}

// Confirmed reports whether role has a positive confirmation.
func (c *Confirmaciones) Confirmed(role string) bool {
	entry := c.Get(role)
	return entry != nil && entry.Confirmado
}

// Both reports whether both parties confirmed.
func (c *Confirmaciones) Both() bool {
	return c.Confirmed(RolSolicitante) && c.Confirmed(RolAyudante)
}

type Favor struct {
	ID                   string                `gorm:"primaryKey;type:varchar(36)" json:"id"`
	UsuarioID            string                `gorm:"not null;index" json:"usuarioId"`
	UsuarioNombre        string                `json:"usuarioNombre"`
	Titulo               string                `gorm:"not null" json:"titulo"`
	Descripcion          string                `gorm:"type:text" json:"descripcion"`
	Categoria            string                `gorm:"not null;index" json:"categoria"`
	Disponibilidad       string                `json:"disponibilidad,omitempty"`
	Estado               string                `gorm:"not null;index;type:varchar(20)" json:"estado"`
	Ayudantes            []Ayudante            `gorm:"serializer:json" json:"ayudantes"`
	AyudanteSeleccionado *AyudanteSeleccionado `gorm:"serializer:json" json:"ayudanteSeleccionado,omitempty"`
	AyudanteID           string                `gorm:"index" json:"ayudanteId,omitempty"`
	AyudanteNombre       string                `json:"ayudanteNombre,omitempty"`
	Confirmaciones       *Confirmaciones       `gorm:"serializer:json" json:"confirmaciones,omitempty"`
	Fijado               bool                  `gorm:"not null;default:false" json:"fijado"`
	FechaExpiracion      time.Time             `gorm:"index" json:"fechaExpiracion"`
	FechaFinalizacion    *time.Time            `json:"fechaFinalizacion,omitempty"`
	Version              int                   `gorm:"not null;default:1" json:"version"`
	CreatedAt            time.Time             `json:"fechaCreacion"`
	UpdatedAt            time.Time             `json:"fechaActualizacion"`
}

func (Favor) TableName() string {
	return "favores"
}

// FindOffer returns the offer made by userID, if any.
func (f *Favor) FindOffer(userID string) (Ayudante, bool) {
	for _, a := range f.Ayudantes {
		if a.IDUsuario == userID {
			return a, true
		}
	}
	return Ayudante{}, false
}

// Expired reports whether the favor is past its expiry horizon at now.
func (f *Favor) Expired(now time.Time) bool {
	return !f.FechaExpiracion.IsZero() && !now.Before(f.FechaExpiracion)
}

// IsOpen reports whether the favor still accepts helper decisions.
func (f *Favor) IsOpen() bool {
	return f.Estado == EstadoActivo || f.Estado == EstadoPendiente
}

// IsClosed reports whether the favor already has a final outcome.
func (f *Favor) IsClosed() bool {
	switch f.Estado {
	case EstadoFinalizado, EstadoConfirmado, EstadoCompletado:
		return true
	}
	return false
}

func trimmed(s string) string {
	return strings.TrimSpace(s)
}
