package profile

// Stopper stops a running profiler.
type Stopper interface{ Stop() }

// Profiler configures a profiling session.
type Profiler struct {
	// Mode is one of [Modes]. An empty or unsupported mode disables profiling.
	Mode string
	// Dir is the output directory. The current directory is used when empty.
	Dir string
	// Quiet suppresses the profiler's own log output.
	Quiet bool
}

// Start starts the profiler and returns a [Stopper] for it.
//
// If the pprof build tag or Mode is unset, Start returns a no-op.
// Both Start and Stop are always safely callable.
func (p Profiler) Start() Stopper {
	if !p.Enabled() {
		return ignore{}
	}

	return start(p)
}

// Enabled reports whether Start would begin profiling.
func (p Profiler) Enabled() bool {
	if p.Mode == "" {
		return false
	}

	for _, m := range Modes() {
		if m == p.Mode {
			return true
		}
	}

	return false
}

type ignore struct{}

func (ignore) Stop() {}
