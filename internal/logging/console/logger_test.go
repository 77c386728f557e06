package console_test

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/goliatone/go-sections/internal/logging"
	"github.com/goliatone/go-sections/internal/logging/console"
)

func TestConsoleLoggerWritesSortedFields(t *testing.T) {
	var buf bytes.Buffer
	now := time.Date(2024, 3, 14, 15, 9, 26, 0, time.UTC)
	provider := console.NewProvider(console.Options{
		Writer:   &buf,
		TimeFunc: func() time.Time { return now },
	})

	logger := logging.ModuleLogger(provider, logging.StoreModule)
	sectionID := uuid.MustParse("8a51a9b1-2d30-4b2c-8ecd-2c0b87dfa999")
	logger.Info("sections.store.create.completed", "section_id", sectionID, "name", "Home hero")

	got := strings.TrimSpace(buf.String())
	want := `2024-03-14T15:09:26Z INFO sections.store.create.completed logger=sections.store module=sections.store name="Home hero" section_id=8a51a9b1-2d30-4b2c-8ecd-2c0b87dfa999`
	if got != want {
		t.Fatalf("unexpected entry\nwant: %s\ngot:  %s", want, got)
	}
}

func TestConsoleLoggerFiltersBelowMinLevel(t *testing.T) {
	var buf bytes.Buffer
	provider := console.NewProvider(console.Options{Writer: &buf, MinLevel: console.LevelWarn})
	logger := provider.GetLogger("sections")

	logger.Info("dropped")
	logger.Error("kept", "error", errors.New("boom"))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 1 {
		t.Fatalf("expected a single line, got %v", lines)
	}
	if !strings.Contains(lines[0], "ERROR kept error=boom") {
		t.Fatalf("unexpected line %q", lines[0])
	}
}

func TestConsoleLoggerKeepsOddArgument(t *testing.T) {
	var buf bytes.Buffer
	provider := console.NewProvider(console.Options{Writer: &buf})
	provider.GetLogger("sections").Debug("odd", "dangling")

	if !strings.Contains(buf.String(), "arg_0=dangling") {
		t.Fatalf("expected positional field, got %q", buf.String())
	}
}

func TestParseLevel(t *testing.T) {
	cases := map[string]console.Level{
		"":        console.LevelDebug,
		"TRACE":   console.LevelTrace,
		"warning": console.LevelWarn,
		"error":   console.LevelError,
	}
	for input, want := range cases {
		if got := console.ParseLevel(input); got != want {
			t.Fatalf("ParseLevel(%q) = %s, want %s", input, got, want)
		}
	}
}
