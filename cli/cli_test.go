package cli

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ardnew/allot/option"
	"github.com/ardnew/allot/pkg"
	"github.com/ardnew/allot/store"
)

type runner struct {
	store string
}

func newRunner(t *testing.T, name string) runner {
	t.Helper()
	restoreLogger(t)

	return runner{store: filepath.Join(t.TempDir(), "nested", name)}
}

func (r runner) run(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer

	argv := append([]string{"--store", r.store, "--log-format", "json"}, args...)
	err := RunWriter(context.Background(), &out, func(code int) {
		t.Errorf("exit(%d) called", code)
	}, argv...)

	return out.String(), err
}

func (r runner) stored(t *testing.T) map[string]string {
	t.Helper()

	f, err := store.Open(r.store)
	if err != nil {
		t.Fatal(err)
	}

	return store.Snapshot(f)
}

func TestRunPref(t *testing.T) {
	r := newRunner(t, "preferences.yaml")

	if _, err := r.run(t, "pref", "--level", "debug", "--close", "4500"); err != nil {
		t.Fatal(err)
	}

	got := r.stored(t)
	if got["LEVEL"] != "DEBUG" || got["CLOSE"] != "4500.00" {
		t.Errorf("stored = %v", got)
	}

	out, err := r.run(t, "pref", "--close")
	if err != nil {
		t.Fatal(err)
	}

	if !strings.Contains(out, "CLOSE") || !strings.Contains(out, "4500.00") {
		t.Errorf("report = %q", out)
	}

	// pref is the default command and reports everything.
	out, err = r.run(t)
	if err != nil {
		t.Fatal(err)
	}

	for _, key := range []string{"LEVEL", "CURRENCY", "THRESHOLD"} {
		if !strings.Contains(out, key) {
			t.Errorf("report-all missing %s: %q", key, out)
		}
	}
}

func TestRunSet(t *testing.T) {
	r := newRunner(t, "preferences.json")

	if _, err := r.run(t, "set", "--threshold", "7.5", "--curr", "EUR"); err != nil {
		t.Fatal(err)
	}

	got := r.stored(t)
	if got["THRESHOLD"] != "7.50" || got["CURRENCY"] != "EUR" {
		t.Errorf("stored = %v", got)
	}

	_, err := r.run(t, "set", "--threshold")
	if !errors.Is(err, option.ErrMissingArgument) {
		t.Errorf("set without value = %v, want ErrMissingArgument", err)
	}
}

func TestRunAtomic(t *testing.T) {
	r := newRunner(t, "preferences.toml")

	if _, err := r.run(t, "set", "--inflation", "2"); err != nil {
		t.Fatal(err)
	}

	_, err := r.run(t, "--atomic", "set", "--inflation", "4", "--threshold", "500")
	if !errors.Is(err, option.ErrValidation) {
		t.Fatalf("err = %v, want ErrValidation", err)
	}

	if got := r.stored(t)["INFLATION"]; got != "2.00" {
		t.Errorf("INFLATION = %q, want restored 2.00", got)
	}
}

func TestRunExport(t *testing.T) {
	r := newRunner(t, "preferences.yaml")

	if _, err := r.run(t, "set", "--high", "12"); err != nil {
		t.Fatal(err)
	}

	out, err := r.run(t, "export", "--format", "json")
	if err != nil {
		t.Fatal(err)
	}

	if !strings.Contains(out, `"HIGH": "12.00"`) {
		t.Errorf("export = %q", out)
	}
}

func TestRunVersion(t *testing.T) {
	r := newRunner(t, "preferences.yaml")

	out, err := r.run(t, "version")
	if err != nil {
		t.Fatal(err)
	}

	if want := pkg.Name + " " + pkg.Version(); strings.TrimSpace(out) != want {
		t.Errorf("version = %q, want %q", out, want)
	}

	if _, err := os.Stat(filepath.Dir(r.store)); err != nil {
		t.Errorf("store directory not created: %v", err)
	}
}

func TestRunInvalidStore(t *testing.T) {
	r := newRunner(t, "preferences.ini")

	_, err := r.run(t, "version")
	if !errors.Is(err, pkg.ErrInvalidFormat) {
		t.Errorf("err = %v, want ErrInvalidFormat", err)
	}
}

func TestScanStore(t *testing.T) {
	t.Setenv(pkg.EnvStore, "/env/prefs.yaml")

	tests := []struct {
		name string
		args []string
		want string
	}{
		{"none", nil, "/env/prefs.yaml"},
		{"long", []string{"--store", "a.json", "pref"}, "a.json"},
		{"assigned", []string{"--store=b.toml"}, "b.toml"},
		{"short", []string{"-S", "c.yml"}, "c.yml"},
		{"after value flag", []string{"--log-level", "debug", "-S", "d.yaml"}, "d.yaml"},
		{"after command", []string{"pref", "--store", "e.yaml"}, "/env/prefs.yaml"},
		{"after terminator", []string{"--", "--store", "f.yaml"}, "/env/prefs.yaml"},
		{"missing value", []string{"--store"}, "/env/prefs.yaml"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := scanStore(tt.args); got != tt.want {
				t.Errorf("scanStore(%q) = %q, want %q", tt.args, got, tt.want)
			}
		})
	}
}

func TestLogConfigScan(t *testing.T) {
	restoreLogger(t)

	tests := []struct {
		name string
		args []string
		want logConfig
	}{
		{
			name: "separate values",
			args: []string{"--log-level", "warn", "--log-format", "json"},
			want: logConfig{Level: "warn", Format: "json", Pretty: true},
		},
		{
			name: "assigned values",
			args: []string{"--log-level=ERROR", "--no-log-pretty", "--log-caller=true"},
			want: logConfig{Level: "error", Caller: true},
		},
		{
			name: "stops at terminator",
			args: []string{"--", "--log-level", "debug"},
			want: logConfig{Pretty: true},
		},
		{
			name: "invalid boolean ignored",
			args: []string{"--log-caller=maybe"},
			want: logConfig{Pretty: true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := logConfig{Pretty: true}
			got.scan(tt.args)

			if got != tt.want {
				t.Errorf("scan(%q) = %+v, want %+v", tt.args, got, tt.want)
			}
		})
	}
}
