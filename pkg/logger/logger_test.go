package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogger_JSONConServicioYComponente(t *testing.T) {
	var buf bytes.Buffer
	l := newWithWriter(&buf, Config{Env: "production", Level: "info", Service: "vitrine-api"})

	c := l.Component("catalog.copy")
	c.Info().Str("step", "products").Msg("copiado")

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "vitrine-api", line["service"])
	assert.Equal(t, "catalog.copy", line["component"])
	assert.Equal(t, "products", line["step"])
	assert.Equal(t, "info", line["level"])
}

func TestLogger_NivelFiltraEventos(t *testing.T) {
	var buf bytes.Buffer
	l := newWithWriter(&buf, Config{Level: "warn"})

	l.Info().Msg("no debe salir")
	assert.Zero(t, buf.Len())

	l.Warn().Msg("sí sale")
	assert.NotZero(t, buf.Len())
}

func TestParseLevel_DesconocidoUsaInfo(t *testing.T) {
	assert.Equal(t, "info", parseLevel("ruidoso").String())
	assert.Equal(t, "info", parseLevel("").String())
	assert.Equal(t, "debug", parseLevel(" DEBUG ").String())
}
