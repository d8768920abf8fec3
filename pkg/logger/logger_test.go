package logger

import (
	"sync"
	"testing"

	"go.uber.org/zap/zapcore"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input string
		want  zapcore.Level
		ok    bool
	}{
		{"debug", zapcore.DebugLevel, true},
		{"info", zapcore.InfoLevel, true},
		{"warn", zapcore.WarnLevel, true},
		{"error", zapcore.ErrorLevel, true},
		{"bogus", zapcore.InfoLevel, false},
	}

	for _, tt := range tests {
		got, err := parseLevel(tt.input)
		if tt.ok && err != nil {
			t.Errorf("parseLevel(%q) unexpected error: %v", tt.input, err)
		}
		if !tt.ok && err == nil {
			t.Errorf("parseLevel(%q) expected error", tt.input)
		}
		if tt.ok && got != tt.want {
			t.Errorf("parseLevel(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestGetBeforeInit(t *testing.T) {
	// Reset global state for the test
	globalLogger = nil
	once = sync.Once{}

	l := Get()
	if l == nil {
		t.Fatal("Get() should return a no-op logger before Init")
	}
	// Must not panic
	Info("message before init")
}

func TestInitText(t *testing.T) {
	globalLogger = nil
	once = sync.Once{}

	if err := Init(Config{Level: "debug", Format: "text"}); err != nil {
		t.Fatalf("Init() error: %v", err)
	}
	if globalLogger == nil {
		t.Fatal("Init() should set the global logger")
	}

	// Second Init is a no-op
	if err := Init(Config{Level: "error", Format: "json"}); err != nil {
		t.Fatalf("second Init() error: %v", err)
	}
}
