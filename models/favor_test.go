package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var ts = time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

func confirmedFavor() *Favor {
	offer := Ayudante{IDUsuario: "U2", Nombre: "Beto", Carrera: "Sistemas", Telefono: "301", Fecha: ts}
	return &Favor{
		ID:                   "F1",
		UsuarioID:            "U1",
		UsuarioNombre:        "Ana",
		Titulo:               "Tutor needed",
		Descripcion:          "Calculo I",
		Categoria:            "academico",
		Estado:               EstadoConfirmado,
		Ayudantes:            []Ayudante{offer},
		AyudanteSeleccionado: &AyudanteSeleccionado{Ayudante: offer, FechaAceptacion: ts},
		AyudanteID:           "U2",
		AyudanteNombre:       "Beto",
		Confirmaciones: &Confirmaciones{
			Solicitante: &Confirmacion{UsuarioID: "U1", Confirmado: true, Fecha: ts},
			Ayudante:    &Confirmacion{UsuarioID: "U2", Confirmado: true, Fecha: ts},
		},
		FechaExpiracion:   ts,
		FechaFinalizacion: &ts,
		Version:           5,
		CreatedAt:         ts,
		UpdatedAt:         ts,
	}
}

func TestFavorDocument(t *testing.T) {
	data, err := json.MarshalIndent(confirmedFavor(), "", "  ")
	require.NoError(t, err)

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, "favor_document", data)
}

func TestConfirmaciones(t *testing.T) {
	var none *Confirmaciones
	assert.Nil(t, none.Get(RolSolicitante))
	assert.False(t, none.Both())

	c := &Confirmaciones{Ayudante: &Confirmacion{UsuarioID: "U2", Confirmado: true}}
	assert.True(t, c.Confirmed(RolAyudante))
	assert.False(t, c.Confirmed(RolSolicitante))
	assert.False(t, c.Both())
	assert.Nil(t, c.Get("otro"))

	c.Solicitante = &Confirmacion{UsuarioID: "U1", Confirmado: true}
	assert.True(t, c.Both())
}

func TestFavorStates(t *testing.T) {
	f := &Favor{Estado: EstadoPendiente, FechaExpiracion: ts}
	assert.True(t, f.IsOpen(), "legacy pendiente is still open")
	assert.False(t, f.IsClosed())
	assert.False(t, f.Expired(ts.Add(-time.Second)))
	assert.True(t, f.Expired(ts))

	f.Estado = EstadoCompletado
	assert.True(t, f.IsClosed())
	assert.False(t, f.IsOpen())

	assert.False(t, (&Favor{}).Expired(ts), "no horizon never expires")
}

func TestUsuario(t *testing.T) {
	u := &Usuario{Telefono: "  "}
	assert.False(t, u.HasContact())
	u.Telefono = "300"
	assert.True(t, u.HasContact())

	var nobody *Usuario
	assert.False(t, nobody.HasContact())
	assert.False(t, nobody.IsAdmin())

	assert.True(t, ValidRol(RolExclusivo))
	assert.False(t, ValidRol("root"))

	data, err := json.Marshal(&Usuario{ID: "U1", Password: "hash"})
	require.NoError(t, err)
	assert.NotContains(t, string(data), "hash")
}
