package notify

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campus-link/api-go/models"
)

func TestSubject(t *testing.T) {
	assert.Equal(t, "favores.notificaciones.U1", Subject("U1"))
	assert.Equal(t, "favores.notificaciones.>", SubjectAll)
}

func TestEncode(t *testing.T) {
	n := &models.Notificacion{
		ID:        "N1",
		CreatedAt: time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
		UsuarioID: "U1",
		Tipo:      models.NotifOfertaAyuda,
		Mensaje:   "hi",
		FavorID:   "F1",
	}

	data, err := Encode(n)
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, "U1", decoded["usuarioId"])
	assert.Equal(t, "oferta_ayuda", decoded["tipo"])
	assert.Equal(t, "F1", decoded["favorId"])
	assert.Equal(t, false, decoded["leida"])
}
