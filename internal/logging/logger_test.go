package logging

import (
	"bytes"
	"errors"
	"log"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestFieldConstructors(t *testing.T) {
	testErr := errors.New("boom")
	tests := []struct {
		name  string
		field Field
		key   string
		value any
	}{
		{"String", String("algo", "iterative"), "algo", "iterative"},
		{"Int", Int("exit", 4), "exit", 4},
		{"Uint64", Uint64("n", 15), "n", uint64(15)},
		{"Float64", Float64("progress", 0.5), "progress", 0.5},
		{"Err", Err(testErr), "error", testErr},
		{"Err nil", Err(nil), "error", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.field.Key != tt.key {
				t.Errorf("Key = %q, want %q", tt.field.Key, tt.key)
			}
			if tt.field.Value != tt.value {
				t.Errorf("Value = %v, want %v", tt.field.Value, tt.value)
			}
		})
	}
}

func TestZerologAdapter_Levels(t *testing.T) {
	var buf bytes.Buffer
	logger := NewZerologAdapter(zerolog.New(&buf).Level(zerolog.DebugLevel))

	logger.Debug("starting", Uint64("n", 15))
	logger.Info("computed", String("algo", "fast"), Int("digits", 3))
	logger.Error("failed", errors.New("overflow"), Uint64("n", 94))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected 3 log lines, got %d: %s", len(lines), buf.String())
	}
	checks := [][]string{
		{`"level":"debug"`, `"n":15`, "starting"},
		{`"level":"info"`, `"algo":"fast"`, `"digits":3`},
		{`"level":"error"`, `"error":"overflow"`, `"n":94`},
	}
	for i, want := range checks {
		for _, w := range want {
			if !strings.Contains(lines[i], w) {
				t.Errorf("line %d = %s, missing %s", i, lines[i], w)
			}
		}
	}
}

func TestNewLogger_Component(t *testing.T) {
	var buf bytes.Buffer
	NewLogger(&buf, "orchestration").Info("hello")
	out := buf.String()
	if !strings.Contains(out, `"component":"orchestration"`) || !strings.Contains(out, "hello") {
		t.Errorf("unexpected output: %s", out)
	}
}

func TestNewLeveledLogger_FiltersBelowLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLeveledLogger(&buf, "app", "warn")
	logger.Info("hidden")
	logger.Debug("hidden too")
	logger.Error("visible", nil)

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("info/debug should be filtered at warn, got: %s", out)
	}
	if !strings.Contains(out, "visible") {
		t.Errorf("error should pass the warn filter, got: %s", out)
	}
}

func TestParseLevel(t *testing.T) {
	for _, name := range []string{"debug", "INFO", " warn ", "error", "disabled"} {
		if _, err := ParseLevel(name); err != nil {
			t.Errorf("ParseLevel(%q) unexpected error: %v", name, err)
		}
	}
	for _, name := range []string{"", "verbose", "loud"} {
		if _, err := ParseLevel(name); err == nil {
			t.Errorf("ParseLevel(%q) should fail", name)
		}
	}
}

func TestZerologAdapter_PrintfPrintln(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf, "test")
	logger.Printf("F(%d) = %d", 10, 55)
	logger.Println("term", 15)

	out := buf.String()
	if !strings.Contains(out, "F(10) = 55") {
		t.Errorf("Printf output missing, got: %s", out)
	}
	if !strings.Contains(out, "term 15") {
		t.Errorf("Println output missing, got: %s", out)
	}
}

func TestApplyFields_Types(t *testing.T) {
	tests := []struct {
		name     string
		field    Field
		contains string
	}{
		{"int64", Field{Key: "v", Value: int64(-7)}, `"v":-7`},
		{"bool", Field{Key: "quiet", Value: true}, `"quiet":true`},
		{"error", Field{Key: "cause", Value: errors.New("oops")}, `"cause":"oops"`},
		{"struct", Field{Key: "data", Value: struct{ X int }{X: 1}}, `"X":1`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			NewLogger(&buf, "test").Info("msg", tt.field)
			if !strings.Contains(buf.String(), tt.contains) {
				t.Errorf("output %s should contain %s", buf.String(), tt.contains)
			}
		})
	}
}

func TestStdLoggerAdapter(t *testing.T) {
	var buf bytes.Buffer
	adapter := NewStdLoggerAdapter(log.New(&buf, "", 0))

	adapter.Info("computed", Uint64("n", 10))
	adapter.Debug("trace", Int("line", 42))
	adapter.Error("failed", errors.New("boom"), String("algo", "fast"))
	adapter.Printf("value is %d", 123)
	adapter.Println("a", "b")

	out := buf.String()
	for _, want := range []string{
		"[INFO] computed n=10",
		"[DEBUG] trace line=42",
		"[ERROR] failed: boom algo=fast",
		"value is 123",
		"a b",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output should contain %q, got:\n%s", want, out)
		}
	}
}
