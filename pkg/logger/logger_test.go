package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_CampoServiceEnCadaLinea(t *testing.T) {
	var buf bytes.Buffer
	log := New(Config{Env: "production", Level: "info", Service: "pos-inventario", Out: &buf})

	log.Info().Str("evento", "arranque").Msg("listo")

	var line map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "pos-inventario", line["service"])
	assert.Equal(t, "arranque", line["evento"])
	assert.Equal(t, "listo", line["message"])
	assert.Contains(t, line, "time")
}

func TestNew_SinServiceNoAgregaCampo(t *testing.T) {
	var buf bytes.Buffer
	log := New(Config{Env: "production", Level: "info", Out: &buf})

	log.Info().Msg("listo")

	var line map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.NotContains(t, line, "service")
}

func TestNew_NivelFiltraEventosMenores(t *testing.T) {
	var buf bytes.Buffer
	log := New(Config{Env: "production", Level: "warn", Out: &buf})

	log.Debug().Msg("no debe salir")
	log.Info().Msg("tampoco")
	assert.Zero(t, buf.Len())

	log.Warn().Msg("esto sí")
	assert.NotZero(t, buf.Len())
}

func TestParseLevel_DesconocidoCaeEnInfo(t *testing.T) {
	assert.Equal(t, "info", parseLevel("verbose").String())
	assert.Equal(t, "debug", parseLevel("debug").String())
}
