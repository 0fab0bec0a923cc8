package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
)

func TestNew_JSONWithServiceField(t *testing.T) {
	prev := zerolog.GlobalLevel()
	t.Cleanup(func() { zerolog.SetGlobalLevel(prev) })

	var buf bytes.Buffer
	log := New(Options{Level: "debug", Output: &buf, Service: "agency-api"})
	log.Debug().Str("guard_id", "g1").Msg("hello")

	var line map[string]any
	if err := json.Unmarshal(buf.Bytes(), &line); err != nil {
		t.Fatalf("invalid json %q: %v", buf.String(), err)
	}
	if line["service"] != "agency-api" || line["guard_id"] != "g1" || line["level"] != "debug" {
		t.Fatalf("unexpected entry: %v", line)
	}
}

func TestNew_FiltersBelowLevel(t *testing.T) {
	prev := zerolog.GlobalLevel()
	t.Cleanup(func() { zerolog.SetGlobalLevel(prev) })

	var buf bytes.Buffer
	log := New(Options{Level: "warn", Output: &buf})
	log.Info().Msg("dropped")
	if buf.Len() != 0 {
		t.Fatalf("info entry should be filtered at warn level: %q", buf.String())
	}

	log.Warn().Msg("kept")
	if buf.Len() == 0 {
		t.Fatalf("warn entry should be written")
	}
}

func TestNew_OmitsEmptyService(t *testing.T) {
	prev := zerolog.GlobalLevel()
	t.Cleanup(func() { zerolog.SetGlobalLevel(prev) })

	var buf bytes.Buffer
	log := New(Options{Output: &buf})
	log.Info().Msg("hello")
	if bytes.Contains(buf.Bytes(), []byte(`"service"`)) {
		t.Fatalf("unexpected service field: %q", buf.String())
	}
}

func TestParseLevel(t *testing.T) {
	cases := map[string]zerolog.Level{
		"trace":   zerolog.TraceLevel,
		"DEBUG":   zerolog.DebugLevel,
		" warn ":  zerolog.WarnLevel,
		"warning": zerolog.WarnLevel,
		"error":   zerolog.ErrorLevel,
		"":        zerolog.InfoLevel,
		"verbose": zerolog.InfoLevel,
	}
	for in, want := range cases {
		if got := parseLevel(in); got != want {
			t.Errorf("parseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}
