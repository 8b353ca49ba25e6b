package logger

import (
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/your-org/storefront/internal/config"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name      string
		level     string
		format    string
		wantLevel logrus.Level
		wantJSON  bool
	}{
		{"json debug", "debug", "json", logrus.DebugLevel, true},
		{"text warn", "warn", "text", logrus.WarnLevel, false},
		{"bad level falls back to info", "loud", "json", logrus.InfoLevel, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &config.Config{Logging: config.LoggingConfig{Level: tt.level, Format: tt.format}}
			l := New(cfg)

			assert.Equal(t, tt.wantLevel, l.GetLevel())
			_, isJSON := l.Formatter.(*logrus.JSONFormatter)
			assert.Equal(t, tt.wantJSON, isJSON)
		})
	}
}
