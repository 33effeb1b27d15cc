package pref

import (
	"bytes"
	"errors"
	"maps"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ardnew/allot/log"
	"github.com/ardnew/allot/option"
	"github.com/ardnew/allot/store"
)

type fixture struct {
	store  *store.Memory
	out    *bytes.Buffer
	logger *log.Logger
	s      *Settings
}

func newFixture(t *testing.T, init map[string]string) fixture {
	t.Helper()

	logger := log.Make(&bytes.Buffer{})

	f := fixture{store: store.NewMemory(init), out: &bytes.Buffer{}, logger: &logger}
	f.s = New(Env{Store: f.store, Out: f.out, Logger: f.logger.Config})

	return f
}

func (f fixture) set(t *testing.T, args ...string) error {
	t.Helper()

	return option.NewDispatcher(f.s.Simple(), option.WithLexer(option.WithNumbers(true))).
		Dispatch(t.Context(), args)
}

func (f fixture) pref(t *testing.T, args ...string) error {
	t.Helper()

	return option.NewDispatcher(f.s.Extended(), option.WithLexer(option.WithNumbers(true))).
		Dispatch(t.Context(), args)
}

// rows parses report output into key/value pairs.
func rows(out string) map[string]string {
	got := make(map[string]string)

	for line := range strings.Lines(out) {
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}

		got[fields[0]] = strings.Join(fields[1:], " ")
	}

	return got
}

func TestLevelAbbreviation(t *testing.T) {
	f := newFixture(t, nil)

	if err := f.set(t, "-lv=INFO"); err != nil {
		t.Fatalf("set -lv=INFO error = %v", err)
	}

	if got, _ := f.store.Get("LEVEL"); got != "INFO" {
		t.Errorf("LEVEL = %q, want INFO", got)
	}

	if err := f.set(t, "--LEVEL", "warn"); err != nil {
		t.Fatal(err)
	}

	if got, _ := f.store.Get("LEVEL"); got != "WARN" {
		t.Errorf("LEVEL = %q, want WARN", got)
	}
}

func TestRoundTrip(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		option string
		value  string
		want   string
	}{
		{"level", "debug", "DEBUG"},
		{"source", dir, dir},
		{"destination", dir, dir},
		{"currency", "eur", "EUR"},
		{"inflation", "2.5%", "2.50"},
		{"inflation", "-3", "-3.00"},
		{"high", "5000", "5000.00"},
		{"threshold", "7.25", "7.25"},
		{"minimum", "250", "250.00"},
	}

	for _, tt := range tests {
		t.Run(tt.option+"="+tt.value, func(t *testing.T) {
			f := newFixture(t, nil)

			if err := f.set(t, "--"+tt.option, tt.value); err != nil {
				t.Fatalf("set error = %v", err)
			}

			if err := f.pref(t, "--"+tt.option); err != nil {
				t.Fatalf("pref error = %v", err)
			}

			id, _ := option.All().Match(tt.option)

			if got := rows(f.out.String())[id.Key()]; got != tt.want {
				t.Errorf("report %s = %q, want %q", id.Key(), got, tt.want)
			}

			// Dispatching the same value again changes nothing.
			before := store.Snapshot(f.store)

			if err := f.set(t, "--"+tt.option, tt.value); err != nil {
				t.Fatal(err)
			}

			if after := store.Snapshot(f.store); !maps.Equal(before, after) {
				t.Errorf("second dispatch changed store: %v -> %v", before, after)
			}
		})
	}
}

func TestValidation(t *testing.T) {
	dir := t.TempDir()

	file := filepath.Join(dir, "file")
	if err := os.WriteFile(file, nil, 0o600); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name string
		args []string
	}{
		{"level offset", []string{"--level", "INFO+2"}},
		{"level unknown", []string{"--level", "loud"}},
		{"source missing", []string{"--source", filepath.Join(dir, "missing")}},
		{"source file", []string{"--source", file}},
		{"library file", []string{"--library", dir + string(os.PathListSeparator) + file}},
		{"currency unknown", []string{"--currency", "QQQ"}},
		{"inflation high", []string{"--inflation", "100.01"}},
		{"inflation low", []string{"--inflation", "-21"}},
		{"inflation text", []string{"--inflation", "lots"}},
		{"close zero", []string{"--close", "0"}},
		{"close negative", []string{"--close", "-3.5"}},
		{"high empty", []string{"--high", " "}},
		{"threshold", []string{"--threshold", "101"}},
		{"minimum negative", []string{"--minimum", "-1"}},
		{"minimum fraction", []string{"--minimum", "1.005"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, nil)

			err := f.set(t, tt.args...)
			if !errors.Is(err, option.ErrValidation) {
				t.Fatalf("set %q error = %v, want ErrValidation", tt.args, err)
			}

			if errors.Is(err, option.ErrWrite) {
				t.Errorf("validation failure reported as write failure: %v", err)
			}

			if keys := f.store.Keys(); len(keys) != 0 {
				t.Errorf("store written despite failure: %v", keys)
			}
		})
	}
}

func TestNoWriteOnUnrecognized(t *testing.T) {
	f := newFixture(t, nil)

	err := f.set(t, "--close", "10", "--unknown", "x")
	if !errors.Is(err, option.ErrUnrecognized) {
		t.Fatalf("error = %v, want ErrUnrecognized", err)
	}

	if !strings.Contains(err.Error(), "unknown") {
		t.Errorf("error %q does not name the option", err)
	}

	if keys := f.store.Keys(); len(keys) != 0 {
		t.Errorf("store written: %v", keys)
	}
}

func TestSetRequiresValue(t *testing.T) {
	f := newFixture(t, nil)

	if err := f.set(t, "--currency"); !errors.Is(err, option.ErrMissingArgument) {
		t.Errorf("set --currency error = %v, want ErrMissingArgument", err)
	}

	if err := f.set(t, "--reset"); !errors.Is(err, option.ErrUnrecognized) {
		t.Errorf("set --reset error = %v, want ErrUnrecognized", err)
	}
}

func TestCloseRaisesHigh(t *testing.T) {
	f := newFixture(t, map[string]string{"HIGH": "100.00"})

	if err := f.set(t, "--close", "90"); err != nil {
		t.Fatal(err)
	}

	if got, _ := f.store.Get("HIGH"); got != "100.00" {
		t.Errorf("HIGH = %q after lower close, want 100.00", got)
	}

	if err := f.set(t, "--close", "120.5"); err != nil {
		t.Fatal(err)
	}

	if got, _ := f.store.Get("HIGH"); got != "120.50" {
		t.Errorf("HIGH = %q after higher close, want 120.50", got)
	}

	// Rank order dispatches high after close; a high below the new close
	// is rejected rather than undoing the raise.
	err := f.pref(t, "--high", "130", "--close", "140")
	if !errors.Is(err, option.ErrValidation) {
		t.Fatalf("high below close error = %v, want ErrValidation", err)
	}

	if got, _ := f.store.Get("HIGH"); got != "140.00" {
		t.Errorf("HIGH = %q, want 140.00", got)
	}

	if err := f.pref(t, "--close", "100", "--high", "150"); err != nil {
		t.Fatal(err)
	}

	if got, _ := f.store.Get("HIGH"); got != "150.00" {
		t.Errorf("HIGH = %q, want 150.00", got)
	}
}

func TestHighCoversClose(t *testing.T) {
	f := newFixture(t, map[string]string{"CLOSE": "200.00", "HIGH": "250.00"})

	if err := f.set(t, "--high", "100"); !errors.Is(err, option.ErrValidation) {
		t.Errorf("set --high below close error = %v, want ErrValidation", err)
	}

	if got, _ := f.store.Get("HIGH"); got != "250.00" {
		t.Errorf("HIGH = %q, want unchanged 250.00", got)
	}

	if err := f.set(t, "--high", "200"); err != nil {
		t.Errorf("set --high equal to close: %v", err)
	}

	violations, err := f.s.Check(DefaultRules())
	if err != nil {
		t.Fatal(err)
	}

	for _, v := range violations {
		if v.Rule.Name == "high-covers-close" {
			t.Errorf("rule violated: %v", v)
		}
	}
}

func TestCurrencyRescalesMinimum(t *testing.T) {
	tests := []struct {
		name     string
		init     map[string]string
		currency string
		want     string
	}{
		{"rounds up to yen", map[string]string{"MINIMUM": "10.50"}, "JPY", "11"},
		{"whole amount kept", map[string]string{"MINIMUM": "10.00"}, "JPY", "10.00"},
		{"finer currency kept", map[string]string{"MINIMUM": "10.50"}, "BHD", "10.50"},
		{"no minimum stored", nil, "JPY", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, tt.init)

			if err := f.set(t, "--currency", tt.currency); err != nil {
				t.Fatal(err)
			}

			if got, _ := f.store.Get("MINIMUM"); got != tt.want {
				t.Errorf("MINIMUM = %q, want %q", got, tt.want)
			}

			if tt.want == "" {
				return
			}

			f.out.Reset()

			if err := f.pref(t, "--minimum"); err != nil {
				t.Fatal(err)
			}

			stored, _ := f.store.Get("MINIMUM")
			if got := rows(f.out.String())["MINIMUM"]; got != formatMinimum(t, f, stored) {
				t.Errorf("reported MINIMUM = %q, stored %q", got, stored)
			}
		})
	}
}

// formatMinimum returns the report text of a stored minimum under the stored
// currency.
func formatMinimum(t *testing.T, f fixture, stored string) string {
	t.Helper()

	v, err := f.s.Minimum.Get()
	if err != nil {
		t.Fatalf("stored MINIMUM %q: %v", stored, err)
	}

	if err := f.s.Minimum.Validate(v); err != nil {
		t.Errorf("stored MINIMUM %q fails validation: %v", stored, err)
	}

	return f.s.Minimum.Format(v)
}

func TestMinimumCurrency(t *testing.T) {
	f := newFixture(t, nil)

	if err := f.set(t, "--minimum", "$1,250.50"); err != nil {
		t.Fatal(err)
	}

	if got, _ := f.store.Get("MINIMUM"); got != "1250.50" {
		t.Errorf("MINIMUM = %q, want 1250.50", got)
	}

	if err := f.set(t, "--currency", "JPY"); err != nil {
		t.Fatal(err)
	}

	if err := f.set(t, "--minimum", "1000.5"); !errors.Is(err, option.ErrValidation) {
		t.Errorf("fractional yen error = %v, want ErrValidation", err)
	}

	if err := f.set(t, "--minimum", "1000"); err != nil {
		t.Fatal(err)
	}

	if got, _ := f.store.Get("MINIMUM"); got != "1000" {
		t.Errorf("MINIMUM = %q, want 1000", got)
	}
}

func TestLibraryPrepends(t *testing.T) {
	first, second := t.TempDir(), t.TempDir()

	f := newFixture(t, nil)

	if err := f.set(t, "--library", first); err != nil {
		t.Fatal(err)
	}

	if got, _ := f.store.Get("LIBRARY"); got != first {
		t.Errorf("LIBRARY = %q, want %q", got, first)
	}

	if err := f.set(t, "--library", second); err != nil {
		t.Fatal(err)
	}

	got, _ := f.store.Get("LIBRARY")
	if !strings.Contains(got, second) {
		t.Errorf("LIBRARY = %q does not contain %q", got, second)
	}
}

type readOnly struct{ store.Memory }

func (*readOnly) Put(string, string) error { return errors.New("read-only store") }

func TestWriteFailure(t *testing.T) {
	s := New(Env{Store: &readOnly{}})

	err := option.NewDispatcher(s.Simple()).Dispatch(t.Context(), []string{"--currency", "EUR"})

	if !errors.Is(err, option.ErrWrite) || !errors.Is(err, option.ErrValidation) {
		t.Errorf("error = %v, want ErrWrite and ErrValidation", err)
	}
}

func TestCorruptStoredValue(t *testing.T) {
	f := newFixture(t, map[string]string{"CLOSE": "many"})

	if err := f.pref(t, "--close"); !errors.Is(err, option.ErrValidation) {
		t.Errorf("report of corrupt value error = %v, want ErrValidation", err)
	}
}

func TestReportAll(t *testing.T) {
	f := newFixture(t, map[string]string{"CURRENCY": "GBP"})

	if err := f.pref(t); err != nil {
		t.Fatal(err)
	}

	got := rows(f.out.String())

	for _, p := range f.s.all() {
		if _, ok := got[p.ID().Key()]; !ok {
			t.Errorf("report lacks %s:\n%s", p.ID().Key(), f.out)
		}
	}

	if got["CURRENCY"] != "GBP" || got["LEVEL"] != "INFO" || got["THRESHOLD"] != "5.00" {
		t.Errorf("report = %v", got)
	}

	if strings.Index(f.out.String(), "LEVEL") > strings.Index(f.out.String(), "MINIMUM") {
		t.Errorf("report not in rank order:\n%s", f.out)
	}
}

func TestSimpleFallbackUsage(t *testing.T) {
	f := newFixture(t, nil)

	if err := f.set(t); err != nil {
		t.Fatal(err)
	}

	out := f.out.String()
	for _, want := range []string{"--level", "--minimum"} {
		if !strings.Contains(out, want) {
			t.Errorf("usage lacks %q:\n%s", want, out)
		}
	}

	if strings.Contains(out, "--reset") {
		t.Errorf("set usage lists --reset:\n%s", out)
	}
}

func TestReset(t *testing.T) {
	f := newFixture(t, map[string]string{
		"LEVEL":    "DEBUG",
		"CLOSE":    "10.00",
		"HIGH":     "20.00",
		"CURRENCY": "EUR",
	})

	if err := f.pref(t, "--reset=close,hi"); err != nil {
		t.Fatal(err)
	}

	if got := f.store.Keys(); !slicesEqual(got, []string{"CURRENCY", "LEVEL"}) {
		t.Errorf("keys after partial reset = %v", got)
	}

	if err := f.pref(t, "--reset=c"); !errors.Is(err, option.ErrAmbiguous) {
		t.Errorf("reset=c error = %v, want ErrAmbiguous", err)
	}

	if err := f.pref(t, "--reset=bogus"); !errors.Is(err, option.ErrValidation) {
		t.Errorf("reset=bogus error = %v, want ErrValidation", err)
	}

	if err := f.pref(t, "-r"); err != nil {
		t.Fatal(err)
	}

	if got := f.store.Keys(); len(got) != 0 {
		t.Errorf("keys after reset = %v", got)
	}
}

func slicesEqual(a, b []string) bool {
	return strings.Join(a, "\x00") == strings.Join(b, "\x00")
}

func TestLevelReconfiguresLogger(t *testing.T) {
	global := log.Default().Level()

	f := newFixture(t, nil)

	if err := f.pref(t, "--level", "error"); err != nil {
		t.Fatal(err)
	}

	if got := f.logger.Level(); got != log.LevelError {
		t.Errorf("logger level = %v, want error", got)
	}

	// The simple surface stores the level without touching the logger.
	if err := f.set(t, "--level", "trace"); err != nil {
		t.Fatal(err)
	}

	if got := f.logger.Level(); got != log.LevelError {
		t.Errorf("logger level = %v after set, want error", got)
	}

	if got := log.Default().Level(); got != global {
		t.Errorf("default logger level = %v, want untouched %v", got, global)
	}
}

func TestDefaults(t *testing.T) {
	f := newFixture(t, map[string]string{"CURRENCY": "EUR"})

	n, err := f.s.Defaults(t.Context(), false)
	if err != nil {
		t.Fatal(err)
	}

	if n != 6 {
		t.Errorf("Defaults() wrote %d, want 6", n)
	}

	if got, _ := f.store.Get("CURRENCY"); got != "EUR" {
		t.Errorf("CURRENCY = %q, want EUR kept", got)
	}

	for _, key := range []string{"SOURCE", "DESTINATION", "LIBRARY"} {
		if _, ok := f.store.Get(key); ok {
			t.Errorf("%s written without a default", key)
		}
	}

	if n, _ := f.s.Defaults(t.Context(), true); n != 7 {
		t.Errorf("Defaults(force) wrote %d, want 7", n)
	}

	if got, _ := f.store.Get("CURRENCY"); got != DefaultCurrency {
		t.Errorf("CURRENCY = %q after force", got)
	}
}
