package logging_test

import (
	"testing"

	"github.com/blackwell-systems/bookcase/internal/logging"
	"go.uber.org/zap/zapcore"
)

func TestNew_Levels(t *testing.T) {
	cases := []struct {
		level   string
		verbose bool
		want    zapcore.Level
	}{
		{"", false, zapcore.WarnLevel},
		{"info", false, zapcore.InfoLevel},
		{"error", false, zapcore.ErrorLevel},
		{"error", true, zapcore.DebugLevel},
	}
	for _, c := range cases {
		l, err := logging.New(c.level, c.verbose)
		if err != nil {
			t.Fatalf("New(%q, %v): %v", c.level, c.verbose, err)
		}
		if !l.Core().Enabled(c.want) {
			t.Errorf("New(%q, %v): level %s not enabled", c.level, c.verbose, c.want)
		}
		if c.want > zapcore.DebugLevel && l.Core().Enabled(c.want-1) {
			t.Errorf("New(%q, %v): level below %s should be disabled", c.level, c.verbose, c.want)
		}
	}
}

func TestNew_InvalidLevel(t *testing.T) {
	if _, err := logging.New("chatty", false); err == nil {
		t.Error("expected error for unknown level")
	}
}
