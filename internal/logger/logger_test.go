package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_New_JSON(t *testing.T) {
	buf := new(bytes.Buffer)
	log, err := New(Config{Level: "info", Format: "json"}, buf)
	require.NoError(t, err)

	log.Debug().Msg("hidden")
	log.Info().Str("mode", "keyset").Msg("search")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "info", entry["level"])
	assert.Equal(t, "search", entry["message"])
	assert.Equal(t, "keyset", entry["mode"])
	assert.Equal(t, "gofilter", entry["service"])
	assert.Contains(t, entry, "time")
}

func Test_New_Console(t *testing.T) {
	buf := new(bytes.Buffer)
	log, err := New(Config{Level: "debug", Format: "console"}, buf)
	require.NoError(t, err)
	assert.Equal(t, zerolog.DebugLevel, log.GetLevel())

	log.Debug().Msg("visible")
	assert.Contains(t, buf.String(), "visible")
	assert.False(t, json.Valid(buf.Bytes()))
}

func Test_New_Invalid(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
	}{
		{"unknown level", Config{Level: "loud", Format: "json"}},
		{"unknown format", Config{Level: "info", Format: "xml"}},
		{"empty", Config{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.cfg, new(bytes.Buffer))
			assert.Error(t, err)
		})
	}
}
