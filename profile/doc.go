// Package profile provides optional runtime profiling for the lleval
// evaluator.
//
// # Overview
//
// This package integrates [github.com/pkg/profile] to provide runtime profiling
// capabilities with conditional compilation support. Profiling is optional and
// must be enabled at build time using the "pprof" build tag.
//
// When built with profiling disabled (default), all operations are no-ops with
// zero runtime overhead.
//
// # Available Profiling Modes
//
// The following profiling modes are supported when built with the pprof tag:
//
//   - allocs:    Memory allocation profiling (all allocations)
//   - block:     Block (synchronization) profiling
//   - clock:     Wall-clock profiling
//   - cpu:       CPU profiling
//   - goroutine: Goroutine profiling
//   - heap:      Heap memory profiling (live allocations)
//   - mem:       General memory profiling
//   - mutex:     Mutex contention profiling
//   - thread:    Thread creation profiling
//   - trace:     Execution trace profiling
//
// Use [Modes] to retrieve the list of supported modes programmatically.
//
// # Using File-Based Profiling
//
// File-based profiling writes profiling data to disk for later analysis. The
// profiler is configured by applying options to a [Config] and started with
// [Config.Start]:
//
//	c := profile.WithMode("cpu")(nil)
//	c = profile.WithPath("/tmp/profiles")(c)
//	ctrl := c.Start()
//	defer ctrl.Stop()
//
//	// Application code runs here with profiling enabled
//
// Profile files are written to the specified directory with names matching the
// profiling mode (e.g., cpu.pprof, mem.pprof).
//
// # Command-Line Usage
//
// The lleval command supports profiling through command-line flags when built
// with the pprof tag. Profiling a large script is the usual way to find hot
// spots in the analyzer loop:
//
//	# Enable CPU profiling (writes to default cache directory)
//	./lleval --pprof-mode cpu -s script.ll
//
//	# Enable heap profiling with custom output directory
//	./lleval --pprof-mode heap --pprof-dir ./profiles -s script.ll
//
//	# List available profiling modes
//	./lleval -h
//
// The default output directory is:
//
//	$XDG_CACHE_HOME/lleval/pprof   (Linux/Unix)
//	~/Library/Caches/lleval/pprof  (macOS)
//	%LocalAppData%\lleval\pprof    (Windows)
//
// # Analyzing Profile Data
//
// Use the go tool pprof command to analyze profile data interactively:
//
//	# Analyze a CPU profile
//	go tool pprof /tmp/profiles/cpu.pprof
//
//	# Analyze with the original binary for symbol resolution
//	go tool pprof ./lleval /tmp/profiles/cpu.pprof
//
// Common interactive commands:
//
//	(pprof) top           # Show top functions by resource usage
//	(pprof) top10         # Show top 10 functions
//	(pprof) list main     # Show source code for functions matching "main"
//	(pprof) web           # Open graph visualization in browser
//	(pprof) pdf           # Generate PDF call graph
//	(pprof) help          # Show all available commands
//
// # Performance Overhead
//
//   - CPU profiling: ~5% overhead
//   - Heap profiling: minimal overhead (sampled)
//   - Block profiling: can add significant overhead if rate is too high
//   - Mutex profiling: can add significant overhead if rate is too high
//   - Trace profiling: high overhead, use for short durations only
//
// Adjust sampling rates using [runtime.SetBlockProfileRate],
// [runtime.SetMutexProfileFraction], and [runtime.MemProfileRate].
package profile

// Tag is the build tag required to enable pprof profiling.
const Tag = `pprof`
