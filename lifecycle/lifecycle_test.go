package lifecycle

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campus-link/api-go/apperrors"
	"github.com/campus-link/api-go/models"
)

var t0 = time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)

func user(id, phone string) *models.Usuario {
	return &models.Usuario{ID: id, Nombre: "User " + id, Telefono: phone, Carrera: "Sistemas", Rol: models.RolNormal}
}

func newFavor(t *testing.T, owner *models.Usuario) *models.Favor {
	t.Helper()
	f, err := NewFavor(owner, NewFavorInput{Titulo: "Tutor needed", Categoria: "academico"}, t0)
	require.NoError(t, err)
	f.ID = "F"
	return f
}

func TestNewFavor(t *testing.T) {
	owner := user("U1", "300")

	f, err := NewFavor(owner, NewFavorInput{Titulo: "  Tutor needed ", Categoria: "academico", Duracion: "3d"}, t0)
	require.NoError(t, err)
	assert.Equal(t, models.EstadoActivo, f.Estado)
	assert.Equal(t, "Tutor needed", f.Titulo)
	assert.Equal(t, "U1", f.UsuarioID)
	assert.Equal(t, "User U1", f.UsuarioNombre)
	assert.NotNil(t, f.Ayudantes)
	assert.Empty(t, f.Ayudantes)
	assert.Equal(t, t0.Add(72*time.Hour), f.FechaExpiracion)

	f, err = NewFavor(owner, NewFavorInput{Titulo: "x", Categoria: "y"}, t0)
	require.NoError(t, err)
	assert.Equal(t, t0.Add(7*24*time.Hour), f.FechaExpiracion, "default duration")
}

func TestNewFavor_Rejects(t *testing.T) {
	owner := user("U1", "300")

	_, err := NewFavor(owner, NewFavorInput{Titulo: " ", Categoria: "academico"}, t0)
	assert.True(t, apperrors.Is(err, apperrors.ErrMissingField))

	_, err = NewFavor(owner, NewFavorInput{Titulo: "x", Categoria: "y", Duracion: "2h"}, t0)
	assert.True(t, apperrors.Is(err, apperrors.ErrInvalidParams))

	_, err = NewFavor(nil, NewFavorInput{Titulo: "x", Categoria: "y"}, t0)
	assert.True(t, apperrors.Is(err, apperrors.ErrUserNotFound))
}

func TestOfferHelp_Guards(t *testing.T) {
	owner := user("U1", "300")

	tests := []struct {
		name    string
		helper  *models.Usuario
		prepare func(f *models.Favor)
		at      time.Time
		want    *apperrors.AppError
	}{
		{name: "owner offers on own favor", helper: owner, at: t0, want: apperrors.ErrSelfHelp},
		{name: "missing phone", helper: user("U2", ""), at: t0, want: apperrors.ErrMissingContact},
		{name: "blank phone", helper: user("U2", "   "), at: t0, want: apperrors.ErrMissingContact},
		{
			name:    "favor not active",
			helper:  user("U2", "311"),
			prepare: func(f *models.Favor) { f.Estado = models.EstadoEnProceso },
			at:      t0,
			want:    apperrors.ErrInvalidState,
		},
		{name: "favor expired", helper: user("U2", "311"), at: t0.Add(8 * 24 * time.Hour), want: apperrors.ErrInvalidState},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFavor(t, owner)
			if tt.prepare != nil {
				tt.prepare(f)
			}
			err := OfferHelp(f, tt.helper, tt.at)
			assert.True(t, apperrors.Is(err, tt.want), "got %v", err)
			assert.Empty(t, f.Ayudantes, "rejected offer must not mutate the favor")
		})
	}
}

func TestOfferHelp_NoDuplicateHelpers(t *testing.T) {
	f := newFavor(t, user("U1", "300"))
	helpers := []*models.Usuario{user("U2", "1"), user("U3", "2"), user("U2", "1"), user("U4", "3"), user("U3", "2")}

	for i, h := range helpers {
		err := OfferHelp(f, h, t0.Add(time.Duration(i)*time.Minute))
		if i == 2 || i == 4 {
			assert.True(t, apperrors.Is(err, apperrors.ErrAlreadyOffered))
			continue
		}
		require.NoError(t, err)
	}

	seen := map[string]bool{}
	for _, a := range f.Ayudantes {
		assert.False(t, seen[a.IDUsuario], "duplicate helper %s", a.IDUsuario)
		seen[a.IDUsuario] = true
		assert.NotEqual(t, f.UsuarioID, a.IDUsuario)
	}
	assert.Len(t, f.Ayudantes, 3)
	assert.Equal(t, "U2", f.Ayudantes[0].IDUsuario)
	assert.Equal(t, "1", f.Ayudantes[0].Telefono)
	assert.Equal(t, "Sistemas", f.Ayudantes[0].Carrera)
}

func TestAcceptHelper(t *testing.T) {
	f := newFavor(t, user("U1", "300"))
	require.NoError(t, OfferHelp(f, user("U2", "311"), t0))

	_, err := AcceptHelper(f, "U2", "U2", t0)
	assert.True(t, apperrors.Is(err, apperrors.ErrNotOwner))

	_, err = AcceptHelper(f, "U1", "U9", t0)
	assert.True(t, apperrors.Is(err, apperrors.ErrHelperNotFound))
	assert.Equal(t, models.EstadoActivo, f.Estado)

	sel, err := AcceptHelper(f, "U1", "U2", t0.Add(time.Hour))
	require.NoError(t, err)
	assert.Equal(t, "U2", sel.IDUsuario)
	assert.Equal(t, t0.Add(time.Hour), sel.FechaAceptacion)
	assert.Equal(t, models.EstadoEnProceso, f.Estado)

	_, err = AcceptHelper(f, "U1", "U2", t0)
	assert.True(t, apperrors.Is(err, apperrors.ErrInvalidState), "already in progress")
}

func TestAcceptHelper_LegacyPendingState(t *testing.T) {
	f := newFavor(t, user("U1", "300"))
	require.NoError(t, OfferHelp(f, user("U2", "311"), t0))
	f.Estado = models.EstadoPendiente

	_, err := AcceptHelper(f, "U1", "U2", t0)
	require.NoError(t, err)
	assert.Equal(t, models.EstadoEnProceso, f.Estado)
}

func TestFinalize_HelperOfRecordPreference(t *testing.T) {
	tests := []struct {
		name    string
		prepare func(t *testing.T, f *models.Favor)
		wantID  string
		wantOK  bool
	}{
		{
			name:   "no offers",
			wantOK: false,
		},
		{
			name: "first offer when nobody accepted",
			prepare: func(t *testing.T, f *models.Favor) {
				require.NoError(t, OfferHelp(f, user("U2", "1"), t0))
				require.NoError(t, OfferHelp(f, user("U3", "2"), t0.Add(time.Minute)))
			},
			wantID: "U2",
			wantOK: true,
		},
		{
			name: "accepted helper beats first offer",
			prepare: func(t *testing.T, f *models.Favor) {
				require.NoError(t, OfferHelp(f, user("U2", "1"), t0))
				require.NoError(t, OfferHelp(f, user("U3", "2"), t0))
				_, err := AcceptHelper(f, "U1", "U3", t0)
				require.NoError(t, err)
			},
			wantID: "U3",
			wantOK: true,
		},
		{
			name: "explicit pointer beats everything",
			prepare: func(t *testing.T, f *models.Favor) {
				require.NoError(t, OfferHelp(f, user("U2", "1"), t0))
				f.AyudanteID = "U7"
				f.AyudanteNombre = "Seven"
			},
			wantID: "U7",
			wantOK: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFavor(t, user("U1", "300"))
			if tt.prepare != nil {
				tt.prepare(t, f)
			}
			helper, ok, err := Finalize(f, "U1", t0.Add(time.Hour))
			require.NoError(t, err)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantID, helper.ID)
			assert.Equal(t, tt.wantID, f.AyudanteID)
			assert.Equal(t, models.EstadoFinalizado, f.Estado)
			require.NotNil(t, f.FechaFinalizacion)
		})
	}
}

func TestFinalize_Rejects(t *testing.T) {
	f := newFavor(t, user("U1", "300"))

	_, _, err := Finalize(f, "U2", t0)
	assert.True(t, apperrors.Is(err, apperrors.ErrNotOwner))

	_, _, err = Finalize(f, "U1", t0)
	require.NoError(t, err)

	_, _, err = Finalize(f, "U1", t0)
	assert.True(t, apperrors.Is(err, apperrors.ErrInvalidState), "no reassignment after finalization")

	assert.True(t, apperrors.Is(OfferHelp(f, user("U2", "1"), t0), apperrors.ErrInvalidState))
}

func finalizedWithHelper(t *testing.T) *models.Favor {
	t.Helper()
	f := newFavor(t, user("U1", "300"))
	require.NoError(t, OfferHelp(f, user("U2", "311"), t0))
	_, _, err := Finalize(f, "U1", t0)
	require.NoError(t, err)
	return f
}

func TestResolveRole(t *testing.T) {
	f := finalizedWithHelper(t)

	role, ok := ResolveRole(f, "U1")
	assert.True(t, ok)
	assert.Equal(t, models.RolSolicitante, role)

	role, ok = ResolveRole(f, "U2")
	assert.True(t, ok)
	assert.Equal(t, models.RolAyudante, role)

	_, ok = ResolveRole(f, "U3")
	assert.False(t, ok)

	_, ok = ResolveRole(f, "")
	assert.False(t, ok)
}

func TestConfirm_BothPartiesMoveToConfirmed(t *testing.T) {
	f := finalizedWithHelper(t)

	both, err := Confirm(f, "U2", "", t0)
	require.NoError(t, err)
	assert.False(t, both)
	assert.Equal(t, models.EstadoFinalizado, f.Estado)
	assert.True(t, f.Confirmaciones.Confirmed(models.RolAyudante))
	assert.Equal(t, "U2", f.Confirmaciones.Ayudante.UsuarioID)

	_, err = Confirm(f, "U2", "", t0)
	assert.True(t, apperrors.Is(err, apperrors.ErrAlreadyConfirmed))

	both, err = Confirm(f, "U1", models.RolSolicitante, t0)
	require.NoError(t, err)
	assert.True(t, both)
	assert.Equal(t, models.EstadoConfirmado, f.Estado)
}

func TestConfirm_RoleIsDerivedNotTrusted(t *testing.T) {
	f := finalizedWithHelper(t)

	_, err := Confirm(f, "U2", models.RolSolicitante, t0)
	assert.True(t, apperrors.Is(err, apperrors.ErrRoleMismatch))
	assert.Nil(t, f.Confirmaciones)

	_, err = Confirm(f, "U3", models.RolAyudante, t0)
	assert.True(t, apperrors.Is(err, apperrors.ErrNotParticipant))
}

func TestConfirm_RequiresFinalized(t *testing.T) {
	f := newFavor(t, user("U1", "300"))
	_, err := Confirm(f, "U1", "", t0)
	assert.True(t, apperrors.Is(err, apperrors.ErrInvalidState))
}

func TestCanDeleteAndPin(t *testing.T) {
	f := newFavor(t, user("U1", "300"))
	owner := user("U1", "300")
	stranger := user("U2", "1")
	admin := &models.Usuario{ID: "A", Rol: models.RolAdmin}
	exclusiveOwner := &models.Usuario{ID: "U1", Rol: models.RolExclusivo}
	exclusiveOther := &models.Usuario{ID: "U5", Rol: models.RolExclusivo}

	assert.NoError(t, CanDelete(f, owner))
	assert.NoError(t, CanDelete(f, admin))
	assert.True(t, apperrors.Is(CanDelete(f, stranger), apperrors.ErrForbidden))
	assert.True(t, apperrors.Is(CanDelete(f, nil), apperrors.ErrForbidden))

	assert.NoError(t, CanPin(f, admin))
	assert.NoError(t, CanPin(f, exclusiveOwner))
	assert.True(t, apperrors.Is(CanPin(f, exclusiveOther), apperrors.ErrForbidden))
	assert.True(t, apperrors.Is(CanPin(f, owner), apperrors.ErrForbidden))
}

func ExampleHelperOfRecord() {
	f := &models.Favor{Ayudantes: []models.Ayudante{{IDUsuario: "U2", Nombre: "Ana"}, {IDUsuario: "U3", Nombre: "Luis"}}}
	helper, ok := HelperOfRecord(f)
	fmt.Println(helper.ID, helper.Nombre, ok)
	// Output: U2 Ana true
}
