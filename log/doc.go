// Package log builds [log/slog] handlers from CLI-friendly level and format
// names.
//
// Three formats are supported: [FormatJSON] and [FormatLogfmt] use the
// standard library handlers, and [FormatText] uses a charm logger for
// terminal output. Levels are [LevelError], [LevelWarn], [LevelInfo], and
// [LevelDebug].
//
// Typical usage registers a [Config] on the root command and builds the
// logger once flags are parsed:
//
//	cfg := log.NewConfig()
//	cfg.RegisterFlags(rootCmd.PersistentFlags())
//	_ = cfg.RegisterCompletions(rootCmd)
//
//	logger, err := cfg.NewLogger(os.Stderr)
//	slog.SetDefault(logger)
package log
