// Package profile provides optional runtime profiling for allot.
//
// Profiling uses [github.com/pkg/profile] and is compiled in only with the
// "pprof" build tag. Without the tag, [Modes] is empty and [Profiler.Start]
// returns a no-op.
//
//	p := profile.Profiler{Mode: "cpu", Dir: "/tmp/profiles"}
//	defer p.Start().Stop()
//
// Profile files are written to Dir with names matching the mode (cpu.pprof,
// mem.pprof, and so on) and can be inspected with go tool pprof:
//
//	go tool pprof -http=: /tmp/profiles/cpu.pprof
package profile

// Tag is the build tag required to enable pprof profiling.
const Tag = `pprof`
