package logging

import (
	"bytes"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestNewLevels(t *testing.T) {
	tests := []struct {
		name     string
		override string
		env      string
		want     zerolog.Level
	}{
		{name: "default", want: zerolog.WarnLevel},
		{name: "override", override: "debug", want: zerolog.DebugLevel},
		{name: "env", env: "error", want: zerolog.ErrorLevel},
		{name: "override beats env", override: "INFO", env: "error", want: zerolog.InfoLevel},
		{name: "invalid", override: "loud", want: zerolog.WarnLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(LevelEnv, tt.env)
			var buf bytes.Buffer
			logger := New(tt.override, &buf)
			assert.Equal(t, tt.want, logger.GetLevel())
		})
	}
}

func TestNewWritesPlainText(t *testing.T) {
	t.Setenv(LevelEnv, "")
	var buf bytes.Buffer
	logger := New("info", &buf)
	logger.Warn().Str("path", "a/b").Msg("cannot read directory")

	out := buf.String()
	assert.Contains(t, out, "cannot read directory")
	assert.Contains(t, out, "path=a/b")
	assert.NotContains(t, out, "\x1b[", "no colours off a terminal")
}

func TestInvalidLevelIsReported(t *testing.T) {
	var buf bytes.Buffer
	New("loud", &buf)
	assert.Contains(t, buf.String(), "Invalid log level")
}
