package log

import (
	"slices"
	"strings"
	"testing"
	"time"
)

func TestConfig_WithLevel_SetsLevel(t *testing.T) {
	tests := []struct {
		name     string
		level    Level
		expected Level
	}{
		{"trace", LevelTrace, LevelTrace},
		{"debug", LevelDebug, LevelDebug},
		{"info", LevelInfo, LevelInfo},
		{"warn", LevelWarn, LevelWarn},
		{"error", LevelError, LevelError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := WithLevel(tt.level)(config{})

			if result.level != tt.expected {
				t.Errorf("expected level %v, got %v", tt.expected, result.level)
			}
		})
	}
}

func TestConfig_WithOutput_NilDiscards(t *testing.T) {
	result := WithOutput(nil)(config{})

	if result.output == nil {
		t.Error("expected nil output to be replaced with io.Discard")
	}
}

func TestConfig_WithTimeLayout(t *testing.T) {
	ts := time.Date(2024, 3, 9, 14, 5, 0, 0, time.UTC)

	tests := []struct {
		name   string
		layout string
		want   string
	}{
		{"named", "RFC3339", "2024-03-09T14:05:00Z"},
		{"named mixed case", "Kitchen", "2:05PM"},
		{"custom", "2006/01/02", "2024/03/09"},
		{"none", "none", ""},
		{"empty", "  ", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := WithTimeLayout(tt.layout)(config{})

			if got := result.formatTime(ts); got != tt.want {
				t.Errorf("formatTime() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want Level
	}{
		{"trace", LevelTrace},
		{"TRACE", LevelTrace},
		{"debug", LevelDebug},
		{" Info ", LevelInfo},
		{"WARN", LevelWarn},
		{"error", LevelError},
		{"INFO+2", Level(2)},
		{"bogus", DefaultLevel},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := ParseLevel(tt.in); got != tt.want {
				t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestLookupLevel_RejectsOffsets(t *testing.T) {
	if _, ok := LookupLevel("INFO+2"); ok {
		t.Error("LookupLevel accepted an offset level")
	}

	if level, ok := LookupLevel("Warn"); !ok || level != LevelWarn {
		t.Errorf("LookupLevel(Warn) = %v, %v", level, ok)
	}
}

func TestLevels_MatchLookup(t *testing.T) {
	names := slices.Collect(Levels())

	if want := []string{"trace", "debug", "info", "warn", "error"}; !slices.Equal(names, want) {
		t.Fatalf("Levels() = %v, want %v", names, want)
	}

	for _, name := range names {
		level, ok := LookupLevel(strings.ToUpper(name))
		if !ok || level.String() != name {
			t.Errorf("LookupLevel(%q) = %v, %v", name, level, ok)
		}
	}
}

func TestLevel_TextRoundTrip(t *testing.T) {
	text, err := LevelWarn.MarshalText()
	if err != nil {
		t.Fatal(err)
	}

	var level Level
	if err := level.UnmarshalText(text); err != nil {
		t.Fatal(err)
	}

	if level != LevelWarn {
		t.Errorf("round trip produced %v", level)
	}
}

func TestParseFormat(t *testing.T) {
	if ParseFormat("JSON") != FormatJSON {
		t.Error("expected json")
	}
	if ParseFormat("text") != FormatText {
		t.Error("expected text")
	}
	if ParseFormat("xml") != DefaultFormat {
		t.Error("expected default format for unknown input")
	}
	if got := slices.Collect(Formats()); !slices.Equal(got, []string{"text", "json"}) {
		t.Errorf("Formats() = %v", got)
	}
}
