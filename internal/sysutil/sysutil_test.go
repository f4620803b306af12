package sysutil

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func TestSetLogLevel(t *testing.T) {
	orig := zerolog.GlobalLevel()
	t.Cleanup(func() { zerolog.SetGlobalLevel(orig) })

	cases := map[string]zerolog.Level{
		"  DeBuG  ": zerolog.DebugLevel,
		"":          zerolog.InfoLevel,
		"warning":   zerolog.WarnLevel,
		"error":     zerolog.ErrorLevel,
		"fatal":     zerolog.FatalLevel,
		"panic":     zerolog.PanicLevel,
		"verbose":   zerolog.InfoLevel,
	}
	for in, want := range cases {
		SetLogLevel(in)
		if got := zerolog.GlobalLevel(); got != want {
			t.Fatalf("SetLogLevel(%q) -> %v; want %v", in, got, want)
		}
	}
}

func TestConfigureLogger_ReplacesGlobal(t *testing.T) {
	prev, prevCtx := log.Logger, zerolog.DefaultContextLogger
	t.Cleanup(func() { log.Logger, zerolog.DefaultContextLogger = prev, prevCtx })

	for _, pretty := range []bool{false, true} {
		ConfigureLogger(pretty, "chatbot-backend")
		if zerolog.DefaultContextLogger != &log.Logger {
			t.Fatalf("pretty=%v: context logger not bound to the global logger", pretty)
		}
	}
}

func TestFirstNonEmpty(t *testing.T) {
	if got := FirstNonEmpty(); got != "" {
		t.Fatalf("FirstNonEmpty() = %q", got)
	}
	if got := FirstNonEmpty(" ", "\t"); got != "" {
		t.Fatalf("FirstNonEmpty(blanks) = %q", got)
	}
	if got := FirstNonEmpty("   ", "  req-1  ", "req-2"); got != "  req-1  " {
		t.Fatalf("FirstNonEmpty = %q", got)
	}
}
