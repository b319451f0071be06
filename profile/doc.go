// Package profile writes pprof profiles of a single CLI invocation.
//
// Register the flags on the root command, start the [Profiler] once flags are
// parsed and stop it after the command returns:
//
//	cfg := profile.NewConfig()
//	cfg.RegisterFlags(rootCmd.PersistentFlags())
//	p := cfg.NewProfiler()
//
//	rootCmd.PersistentPreRunE = func(*cobra.Command, []string) error {
//		return p.Start()
//	}
//	err := errors.Join(rootCmd.Execute(), p.Stop())
//
// Profiling is then enabled with flags such as --cpu-profile=cpu.prof.
package profile
