package profile

import (
	"errors"
	"fmt"
	"os"
	"runtime"
	"runtime/pprof"
)

// DefaultMemRate matches the runtime's default [runtime.MemProfileRate].
const DefaultMemRate = 512 * 1024

// Profiler runs one profiling session.
//
// Create instances with [Config.NewProfiler].
type Profiler struct {
	*Config

	cpuFile *os.File
	started bool
}

// Start sets the memory profile rate and starts CPU profiling if enabled.
// Calling Start again before [Profiler.Stop] does nothing.
func (p *Profiler) Start() error {
	if p.started {
		return nil
	}

	p.started = true

	if p.Heap != "" || p.Allocs != "" {
		runtime.MemProfileRate = p.MemRate
	}

	if p.CPU == "" {
		return nil
	}

	f, err := os.Create(p.CPU) //nolint:gosec // Profile path from CLI flag is expected.
	if err != nil {
		return fmt.Errorf("create cpu profile: %w", err)
	}

	err = pprof.StartCPUProfile(f)
	if err != nil {
		return errors.Join(fmt.Errorf("start cpu profile: %w", err), f.Close())
	}

	p.cpuFile = f

	return nil
}

// Stop ends CPU profiling and writes the heap and allocs profiles. It does
// nothing if the profiler was never started.
func (p *Profiler) Stop() error {
	if !p.started {
		return nil
	}

	p.started = false

	var errs []error

	if p.cpuFile != nil {
		pprof.StopCPUProfile()

		err := p.cpuFile.Close()
		if err != nil {
			errs = append(errs, fmt.Errorf("close cpu profile: %w", err))
		}

		p.cpuFile = nil
	}

	for name, path := range map[string]string{"heap": p.Heap, "allocs": p.Allocs} {
		if path == "" {
			continue
		}

		err := writeProfile(name, path)
		if err != nil {
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}

func writeProfile(name, path string) error {
	f, err := os.Create(path) //nolint:gosec // Profile path from CLI flag is expected.
	if err != nil {
		return fmt.Errorf("create %s profile: %w", name, err)
	}

	err = pprof.Lookup(name).WriteTo(f, 0)
	if err != nil {
		return errors.Join(fmt.Errorf("write %s profile: %w", name, err), f.Close())
	}

	err = f.Close()
	if err != nil {
		return fmt.Errorf("close %s profile: %w", name, err)
	}

	return nil
}
