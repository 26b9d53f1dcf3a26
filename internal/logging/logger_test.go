package logging

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/rs/zerolog"
)

// decode parses the single JSON line written by zerolog.
func decode(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("invalid log line %q: %v", buf.String(), err)
	}
	return entry
}

func TestFieldHelpers(t *testing.T) {
	t.Parallel()
	boom := errors.New("boom")
	got := []Field{
		String("algo", "naive"),
		Int("bases", 31),
		Uint64("n", 7493),
		Float64("fraction", 0.5),
		Duration("elapsed", time.Second),
		Err(boom),
	}
	want := []Field{
		{"algo", "naive"},
		{"bases", 31},
		{"n", uint64(7493)},
		{"fraction", 0.5},
		{"elapsed", time.Second},
		{"error", boom},
	}
	if diff := cmp.Diff(want, got, cmp.Comparer(func(a, b error) bool { return a == b })); diff != "" {
		t.Errorf("fields mismatch (-want +got):\n%s", diff)
	}
}

func TestNewLogger(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	NewLogger(&buf, "server").Info("server listening", String("addr", ":8080"))

	entry := decode(t, &buf)
	for key, want := range map[string]any{
		"level":     "info",
		"component": "server",
		"message":   "server listening",
		"addr":      ":8080",
	} {
		if entry[key] != want {
			t.Errorf("%s = %v, want %v", key, entry[key], want)
		}
	}
	if _, ok := entry["time"]; !ok {
		t.Error("missing timestamp")
	}
}

func TestNewDefaultLogger(t *testing.T) {
	t.Parallel()
	if NewDefaultLogger() == nil {
		t.Fatal("NewDefaultLogger returned nil")
	}
}

func TestZerologAdapter_Levels(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name      string
		log       func(Logger)
		wantLevel string
		wantErr   any
	}{
		{"info", func(l Logger) { l.Info("factored", Uint64("n", 7493)) }, "info", nil},
		{"debug", func(l Logger) { l.Debug("factored", Uint64("n", 7493)) }, "debug", nil},
		{"error", func(l Logger) { l.Error("factored", errors.New("not coprime"), Uint64("n", 7493)) }, "error", "not coprime"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			var buf bytes.Buffer
			tt.log(NewZerologAdapter(zerolog.New(&buf).Level(zerolog.DebugLevel)))
			entry := decode(t, &buf)
			if entry["level"] != tt.wantLevel {
				t.Errorf("level = %v, want %s", entry["level"], tt.wantLevel)
			}
			if entry["n"] != float64(7493) {
				t.Errorf("n = %v, want 7493", entry["n"])
			}
			if entry["error"] != tt.wantErr {
				t.Errorf("error = %v, want %v", entry["error"], tt.wantErr)
			}
		})
	}
}

func TestZerologAdapter_LevelFilter(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	NewZerologAdapter(zerolog.New(&buf).Level(zerolog.InfoLevel)).Debug("hidden")
	if buf.Len() != 0 {
		t.Errorf("debug entry written at info level: %q", buf.String())
	}
}

func TestApplyFields(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	l := zerolog.New(&buf)
	applyFields(l.Info(), []Field{
		{"s", "x"},
		{"i", 3},
		{"i64", int64(-4)},
		{"u", uint64(5)},
		{"f", 1.5},
		{"b", true},
		{"d", 2 * time.Millisecond},
		{"e", errors.New("boom")},
		{"slice", []uint64{59, 127}},
	}).Msg("")

	entry := decode(t, &buf)
	want := map[string]any{
		"s":     "x",
		"i":     float64(3),
		"i64":   float64(-4),
		"u":     float64(5),
		"f":     1.5,
		"b":     true,
		"d":     float64(2),
		"e":     "boom",
		"slice": []any{float64(59), float64(127)},
	}
	for key, w := range want {
		if diff := cmp.Diff(w, entry[key]); diff != "" {
			t.Errorf("%s mismatch (-want +got):\n%s", key, diff)
		}
	}
}

func TestLoggerInterface(t *testing.T) {
	t.Parallel()
	var _ Logger = (*ZerologAdapter)(nil)
}
