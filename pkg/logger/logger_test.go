package logger

import (
	"first20_backend/internal/config"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap/zapcore"
)

func TestSetLevel(t *testing.T) {
	cases := []struct {
		name string
		cfg  config.Config
		want zapcore.Level
	}{
		{"release defaults to info", config.Config{Server: config.ServerConfig{Mode: "release"}}, zapcore.InfoLevel},
		{"debug mode", config.Config{Server: config.ServerConfig{Mode: "debug"}}, zapcore.DebugLevel},
		{"explicit level wins", config.Config{Server: config.ServerConfig{Mode: "debug"}, Log: config.LogConfig{Level: "warn"}}, zapcore.WarnLevel},
		{"bad level ignored", config.Config{Log: config.LogConfig{Level: "loud"}}, zapcore.InfoLevel},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			SetLevel(&tc.cfg)
			assert.Equal(t, tc.want, Level())
		})
	}
}
