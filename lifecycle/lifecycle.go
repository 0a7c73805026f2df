// Package lifecycle decides which favor transitions are allowed, who may
// trigger them and which denormalized fields each one writes. It does no I/O:
// callers load the documents, apply a transition here and persist the result.
package lifecycle

import (
	"strings"
	"time"

	"github.com/campus-link/api-go/apperrors"
	"github.com/campus-link/api-go/models"
)

// Durations a favor can stay listed for.
var Durations = map[string]time.Duration{
	"1d":  24 * time.Hour,
	"3d":  3 * 24 * time.Hour,
	"7d":  7 * 24 * time.Hour,
	"15d": 15 * 24 * time.Hour,
	"30d": 30 * 24 * time.Hour,
}

const DefaultDuration = "7d"

// NewFavorInput holds the owner-supplied fields of a new favor.
type NewFavorInput struct {
	Titulo         string
	Descripcion    string
	Categoria      string
	Disponibilidad string
	Duracion       string
}

// NewFavor builds an active favor owned by owner. The id is left to the caller.
func NewFavor(owner *models.Usuario, in NewFavorInput, now time.Time) (*models.Favor, error) {
	if owner == nil {
		return nil, apperrors.ErrUserNotFound
	}
	titulo := strings.TrimSpace(in.Titulo)
	categoria := strings.TrimSpace(in.Categoria)
	if titulo == "" || categoria == "" {
		return nil, apperrors.ErrMissingField
	}

	duracion := in.Duracion
	if duracion == "" {
		duracion = DefaultDuration
	}
	ttl, ok := Durations[duracion]
	if !ok {
		return nil, apperrors.ErrInvalidParams
	}

	return &models.Favor{
		UsuarioID:       owner.ID,
		UsuarioNombre:   owner.Nombre,
		Titulo:          titulo,
		Descripcion:     strings.TrimSpace(in.Descripcion),
		Categoria:       categoria,
		Disponibilidad:  strings.TrimSpace(in.Disponibilidad),
		Estado:          models.EstadoActivo,
		Ayudantes:       []models.Ayudante{},
		FechaExpiracion: now.Add(ttl),
		Version:         1,
	}, nil
}

// OfferHelp appends user to the favor's offer list. Guard order matters: a
// rejected offer never touches the favor.
func OfferHelp(f *models.Favor, user *models.Usuario, now time.Time) error {
	if user.ID == f.UsuarioID {
		return apperrors.ErrSelfHelp
	}
	if !user.HasContact() {
		return apperrors.ErrMissingContact
	}
	if f.Estado != models.EstadoActivo || f.Expired(now) {
		return apperrors.ErrInvalidState
	}
	if _, ok := f.FindOffer(user.ID); ok {
		return apperrors.ErrAlreadyOffered
	}

	f.Ayudantes = append(f.Ayudantes, models.Ayudante{
		IDUsuario: user.ID,
		Nombre:    user.Nombre,
		Carrera:   user.Carrera,
		Foto:      user.Foto,
		Telefono:  strings.TrimSpace(user.Telefono),
		Fecha:     now,
	})
	return nil
}

// AcceptHelper records helperID's offer as the selected helper and moves the
// favor to en_proceso.
func AcceptHelper(f *models.Favor, callerID, helperID string, now time.Time) (*models.AyudanteSeleccionado, error) {
	if callerID != f.UsuarioID {
		return nil, apperrors.ErrNotOwner
	}
	if !f.IsOpen() {
		return nil, apperrors.ErrInvalidState
	}
	offer, ok := f.FindOffer(helperID)
	if !ok {
		return nil, apperrors.ErrHelperNotFound
	}

	f.AyudanteSeleccionado = &models.AyudanteSeleccionado{Ayudante: offer, FechaAceptacion: now}
	f.Estado = models.EstadoEnProceso
	return f.AyudanteSeleccionado, nil
}

// Helper identifies the helper of record of a favor.
type Helper struct {
	ID     string
	Nombre string
}

// HelperOfRecord resolves who helped on f: an explicit helper pointer first,
// then the accepted helper, then the first offer.
func HelperOfRecord(f *models.Favor) (Helper, bool) {
	if f.AyudanteID != "" {
		return Helper{ID: f.AyudanteID, Nombre: f.AyudanteNombre}, true
	}
	if s := f.AyudanteSeleccionado; s != nil && s.IDUsuario != "" {
		return Helper{ID: s.IDUsuario, Nombre: s.Nombre}, true
	}
	if len(f.Ayudantes) > 0 {
		first := f.Ayudantes[0]
		return Helper{ID: first.IDUsuario, Nombre: first.Nombre}, true
	}
	return Helper{}, false
}

// Finalize closes the favor and pins its helper of record. A favor without
// offers can be finalized; it then has no helper and cannot be rated.
func Finalize(f *models.Favor, callerID string, now time.Time) (Helper, bool, error) {
	if callerID != f.UsuarioID {
		return Helper{}, false, apperrors.ErrNotOwner
	}
	if f.IsClosed() {
		return Helper{}, false, apperrors.ErrInvalidState
	}

	helper, ok := HelperOfRecord(f)
	if ok {
		f.AyudanteID = helper.ID
		f.AyudanteNombre = helper.Nombre
	}
	f.Estado = models.EstadoFinalizado
	f.FechaFinalizacion = &now
	return helper, ok, nil
}

// ResolveRole is the single place that decides which side of a favor userID
// is on. It only trusts the owner id and the helper of record.
func ResolveRole(f *models.Favor, userID string) (string, bool) {
	if userID == "" {
		return "", false
	}
	if userID == f.UsuarioID {
		return models.RolSolicitante, true
	}
	if helper, ok := HelperOfRecord(f); ok && helper.ID == userID {
		return models.RolAyudante, true
	}
	return "", false
}

// Counterpart returns the other party of the favor for role.
func Counterpart(f *models.Favor, role string) (Helper, bool) {
	switch role {
	case models.RolSolicitante:
		return HelperOfRecord(f)
	case models.RolAyudante:
		return Helper{ID: f.UsuarioID, Nombre: f.UsuarioNombre}, true
	}
	return Helper{}, false
}

// Confirm records userID's confirmation of a finalized favor. claimedRole is
// optional; when given it must match the role derived from the favor. It
// returns true once both parties have confirmed.
func Confirm(f *models.Favor, userID, claimedRole string, now time.Time) (bool, error) {
	if f.Estado != models.EstadoFinalizado {
		return false, apperrors.ErrInvalidState
	}
	role, ok := ResolveRole(f, userID)
	if !ok {
		return false, apperrors.ErrNotParticipant
	}
	if claimedRole != "" && claimedRole != role {
		return false, apperrors.ErrRoleMismatch
	}
	if f.Confirmaciones.Confirmed(role) {
		return false, apperrors.ErrAlreadyConfirmed
	}

	if f.Confirmaciones == nil {
		f.Confirmaciones = &models.Confirmaciones{}
	}
	entry := &models.Confirmacion{UsuarioID: userID, Confirmado: true, Fecha: now}
	if role == models.RolSolicitante {
		f.Confirmaciones.Solicitante = entry
	} else {
		f.Confirmaciones.Ayudante = entry
	}

	if f.Confirmaciones.Both() {
		f.Estado = models.EstadoConfirmado
		return true, nil
	}
	return false, nil
}

// CanDelete allows the owner and admins.
func CanDelete(f *models.Favor, user *models.Usuario) error {
	if user == nil {
		return apperrors.ErrForbidden
	}
	if user.ID == f.UsuarioID || user.IsAdmin() {
		return nil
	}
	return apperrors.ErrForbidden
}

// CanPin allows admins on any favor and exclusivo users on their own.
func CanPin(f *models.Favor, user *models.Usuario) error {
	if user == nil {
		return apperrors.ErrForbidden
	}
	if user.IsAdmin() {
		return nil
	}
	if user.Rol == models.RolExclusivo && user.ID == f.UsuarioID {
		return nil
	}
	return apperrors.ErrForbidden
}
