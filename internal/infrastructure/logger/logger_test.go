package logger

import (
	"testing"

	"github.com/rs/zerolog"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input string
		want  zerolog.Level
	}{
		{"debug", zerolog.DebugLevel},
		{"info", zerolog.InfoLevel},
		{"warn", zerolog.WarnLevel},
		{"error", zerolog.ErrorLevel},
		{"unknown", zerolog.InfoLevel},
	}

	for _, tt := range tests {
		if got := parseLevel(tt.input); got != tt.want {
			t.Fatalf("parseLevel(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestNewAppliesLevel(t *testing.T) {
	tests := []struct {
		name  string
		level string
		want  zerolog.Level
	}{
		{"debug config", "debug", zerolog.DebugLevel},
		{"error config", "error", zerolog.ErrorLevel},
		{"unknown falls back to info", "verbose", zerolog.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			log := New(Config{Format: "json", Level: tt.level})
			if log.GetLevel() != tt.want {
				t.Fatalf("expected level %v, got %v", tt.want, log.GetLevel())
			}
		})
	}
}

func TestNewConsoleFormat(t *testing.T) {
	log := New(Config{Format: "console", Level: "info"})
	if log.GetLevel() != zerolog.InfoLevel {
		t.Fatalf("expected info level for console logger, got %v", log.GetLevel())
	}
}
