package logger

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewWithWriter_NivelYComponente(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter(&buf, Config{Level: "warn"})

	l.Info().Msg("descartado")
	l.Component("hub").Warn().Msg("visible")

	out := buf.String()
	assert.NotContains(t, out, "descartado")
	assert.Contains(t, out, `"component":"hub"`)
	assert.Contains(t, out, `"message":"visible"`)
}

func TestParseLevel_PorDefectoInfo(t *testing.T) {
	assert.Equal(t, "info", parseLevel("").String())
	assert.Equal(t, "info", parseLevel("ruido").String())
	assert.Equal(t, "debug", parseLevel("debug").String())
}
