package profile

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// Flags holds CLI flag names for profiling configuration.
type Flags struct {
	CPU     string
	Heap    string
	Allocs  string
	MemRate string
}

// NewConfig creates a new [Config] embedding these flag names.
func (f Flags) NewConfig() *Config {
	return &Config{
		Flags: f,
	}
}

// Config holds profile output paths. An empty path disables that profile, so
// a zero Config profiles nothing.
type Config struct {
	Flags Flags

	CPU    string
	Heap   string
	Allocs string

	// MemRate is assigned to [runtime.MemProfileRate] when a heap or allocs
	// profile is enabled.
	MemRate int
}

// NewConfig creates a new [Config] with default flag names and all profiles
// disabled.
func NewConfig() *Config {
	f := Flags{
		CPU:     "cpu-profile",
		Heap:    "heap-profile",
		Allocs:  "allocs-profile",
		MemRate: "mem-profile-rate",
	}

	return f.NewConfig()
}

// RegisterFlags adds profiling flags to the given [*pflag.FlagSet].
func (c *Config) RegisterFlags(flags *pflag.FlagSet) {
	flags.StringVar(&c.CPU, c.Flags.CPU, "", "write a CPU profile to file")
	flags.StringVar(&c.Heap, c.Flags.Heap, "", "write a heap profile to file on exit")
	flags.StringVar(&c.Allocs, c.Flags.Allocs, "", "write an allocs profile to file on exit")
	flags.IntVar(&c.MemRate, c.Flags.MemRate, DefaultMemRate, "memory profile rate (bytes per sample)")
}

// RegisterCompletions registers shell completions for profile flags on cmd.
// The flags may be registered as persistent flags.
func (c *Config) RegisterCompletions(cmd *cobra.Command) error {
	profiles := func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return []string{"prof", "pprof"}, cobra.ShellCompDirectiveFilterFileExt
	}

	for _, name := range []string{c.Flags.CPU, c.Flags.Heap, c.Flags.Allocs} {
		err := cmd.RegisterFlagCompletionFunc(name, profiles)
		if err != nil {
			return fmt.Errorf("registering %s completion: %w", name, err)
		}
	}

	err := cmd.RegisterFlagCompletionFunc(c.Flags.MemRate,
		func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
			return nil, cobra.ShellCompDirectiveNoFileComp
		})
	if err != nil {
		return fmt.Errorf("registering %s completion: %w", c.Flags.MemRate, err)
	}

	return nil
}

// NewProfiler creates a new [Profiler] reading paths from this [Config] when
// it starts, so flags parsed after this call still take effect.
func (c *Config) NewProfiler() *Profiler {
	return &Profiler{Config: c}
}
