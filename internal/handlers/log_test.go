package handlers

import (
	"bytes"
	"log/slog"
	"testing"
)

// captureLogs silences the default logger for the test and returns what
// it would have printed.
func captureLogs(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewTextHandler(&buf, nil)))
	t.Cleanup(func() { slog.SetDefault(prev) })
	return &buf
}
