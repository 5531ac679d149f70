package logger

import (
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestLevels(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	SetOutput(zap.New(core))
	t.Cleanup(func() { SetOutput(newDefault()) })

	Debug("debug %d", 1)
	Info("info %s", "two")
	Warn("warn %v", true)
	Error("error %q", "four")

	var tests = []struct {
		level   zapcore.Level
		message string
	}{
		{zapcore.DebugLevel, "debug 1"},
		{zapcore.InfoLevel, "info two"},
		{zapcore.WarnLevel, "warn true"},
		{zapcore.ErrorLevel, `error "four"`},
	}

	entries := logs.All()
	if len(entries) != len(tests) {
		t.Fatalf("\ngot %d entries, wanted %d", len(entries), len(tests))
	}
	for i, tt := range tests {
		if entries[i].Level != tt.level || entries[i].Message != tt.message {
			t.Errorf("\ngot %v %q, wanted %v %q", entries[i].Level, entries[i].Message, tt.level, tt.message)
		}
	}
}

func TestSetLevel(t *testing.T) {
	t.Cleanup(func() { level.SetLevel(zapcore.InfoLevel) })

	SetLevel("debug")
	if level.Level() != zapcore.DebugLevel {
		t.Errorf("\ngot level %v, wanted debug", level.Level())
	}
	SetLevel("WARN")
	if level.Level() != zapcore.WarnLevel {
		t.Errorf("\ngot level %v, wanted warn", level.Level())
	}
	SetLevel("nonsense")
	if level.Level() != zapcore.WarnLevel {
		t.Errorf("\nunknown level changed the level to %v", level.Level())
	}
}
