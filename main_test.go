package main

import (
	"context"
	"log/slog"
	"testing"
)

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		level    string
		expected slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"error", slog.LevelError},
		{"", slog.LevelDebug},
		{"verbose", slog.LevelDebug},
	}

	for _, test := range tests {
		if got := parseLogLevel(test.level); got != test.expected {
			t.Errorf("parseLogLevel(%q) = %v, want %v", test.level, got, test.expected)
		}
	}
}

func TestBuildStateRepositoryDefaultsToMemory(t *testing.T) {
	repo, err := buildStateRepository(Config{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	state, err := repo.Load(context.Background())
	if err != nil {
		t.Fatalf("loading defaults: %v", err)
	}
	if state.Theme != "dark" || !state.SidebarOpen {
		t.Errorf("expected default state, got %+v", state)
	}
}
