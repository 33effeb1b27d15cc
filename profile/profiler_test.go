package profile

import (
	"slices"
	"testing"
)

func TestProfilerEnabled(t *testing.T) {
	t.Parallel()

	if (Profiler{}).Enabled() {
		t.Error("empty mode should not be enabled")
	}

	if (Profiler{Mode: "no-such-mode"}).Enabled() {
		t.Error("unsupported mode should not be enabled")
	}

	for _, m := range Modes() {
		if !(Profiler{Mode: m}).Enabled() {
			t.Errorf("mode %q should be enabled", m)
		}
	}
}

func TestModesSorted(t *testing.T) {
	t.Parallel()

	if !slices.IsSorted(Modes()) {
		t.Errorf("Modes() = %v, want sorted", Modes())
	}
}

func TestStartDisabled(t *testing.T) {
	t.Parallel()

	// A disabled profiler never touches Dir.
	stop := Profiler{Dir: t.TempDir()}.Start()
	if _, ok := stop.(ignore); !ok {
		t.Errorf("Start() = %T, want no-op", stop)
	}

	stop.Stop()
}
