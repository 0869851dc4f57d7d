package logger_test

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/users-api/pkg/logger"
)

func TestNew_ProduccionEscribeJSON(t *testing.T) {
	var buf bytes.Buffer
	log := logger.New(logger.Config{Env: "production", Level: "warn", Out: &buf})

	log.Info().Msg("descartado")
	log.Warn().Str("user_id", "42").Msg("aviso")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry), "solo debe haber una línea JSON")
	assert.Equal(t, "warn", entry["level"])
	assert.Equal(t, "42", entry["user_id"])
	assert.Equal(t, "aviso", entry["message"])
}

func TestNew_NivelInvalidoUsaInfo(t *testing.T) {
	var buf bytes.Buffer
	log := logger.New(logger.Config{Env: "production", Level: "ruidoso", Out: &buf})

	log.Debug().Msg("no")
	assert.Empty(t, buf.String())
	log.Info().Msg("si")
	assert.Contains(t, buf.String(), `"si"`)
}
