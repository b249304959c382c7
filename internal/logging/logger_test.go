package logging

import (
	"testing"

	"go.uber.org/zap/zapcore"
)

func TestGetLogger_WithoutInit(t *testing.T) {
	globalLogger = nil
	if GetLogger() == nil {
		t.Fatal("Expected a no-op logger before Init")
	}
	Info("safe to call before Init", "key", "value")
}

func TestInit_Levels(t *testing.T) {
	t.Cleanup(func() { globalLogger = nil })

	if err := Init("development", ""); err != nil {
		t.Errorf("Expected default level to work, got %v", err)
	}
	if err := Init("production", "warn"); err != nil {
		t.Errorf("Expected warn level to parse, got %v", err)
	}
	if GetLogger().Desugar().Core().Enabled(zapcore.DebugLevel) {
		t.Error("Debug must be disabled at warn level")
	}
	if err := Init("production", "loud"); err == nil {
		t.Error("Expected an error for an unknown level")
	}
}
