package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/goccy/go-yaml"
	"github.com/spf13/cobra"

	"go.jacobcolvin.com/oasnote/annotate"
	"go.jacobcolvin.com/oasnote/log"
	"go.jacobcolvin.com/oasnote/profile"
	"go.jacobcolvin.com/oasnote/version"
)

const envPrefix = "OASNOTE"

var errUsage = errors.New("usage")

func newRootCmd(env *environment, prof *profile.Profiler) *cobra.Command {
	var (
		annotateCfg = annotate.NewConfig()
		logCfg      = log.NewConfig()
		logger      = slog.New(slog.DiscardHandler)
	)

	rootCmd := &cobra.Command{
		Use:   "oasnote",
		Short: "Annotate the Web Check OpenAPI spec with Chinese comments",
		Long: `oasnote inserts a Chinese comment above every recognized line of an OpenAPI
YAML document and prepends a fixed header. Lines are matched by their exact
text; nothing in the document is changed or removed.`,
		Version:       version.String(),
		Args:          noArgs,
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			err := bindEnv(cmd.Flags(), envPrefix, env.lookupEnv)
			if err != nil {
				return fmt.Errorf("%w: %w", errUsage, err)
			}

			logger, err = logCfg.NewLogger(env.stderr)
			if err != nil {
				return err
			}

			return prof.Start()
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := annotateCfg.NewAnnotator(
				annotate.WithLogger(logger),
				annotate.WithStdin(env.stdin),
				annotate.WithStdout(cmd.OutOrStdout()),
			)
			if err != nil {
				return err
			}

			input, output := annotateCfg.Input, annotateCfg.OutputPath()

			res, err := a.AnnotateFile(input, output)
			if err != nil {
				return err
			}

			logger.Info("annotated document",
				slog.String("input", input),
				slog.String("output", output),
				slog.Int("comments", res.Comments()),
			)

			if output != annotate.Stdio {
				fmt.Fprintf(cmd.OutOrStdout(), "annotated %s -> %s (%d comment lines)\n",
					input, output, res.Comments())
			}

			return nil
		},
	}

	rootCmd.SetOut(env.stdout)
	rootCmd.SetErr(env.stderr)
	rootCmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return fmt.Errorf("%w: %w", errUsage, err)
	})
	rootCmd.SetVersionTemplate("{{.Name}} {{.Version}}\n")

	annotateCfg.RegisterFlags(rootCmd.Flags())
	logCfg.RegisterFlags(rootCmd.PersistentFlags())
	prof.RegisterFlags(rootCmd.PersistentFlags())

	for _, register := range []func(*cobra.Command) error{
		annotateCfg.RegisterCompletions,
		logCfg.RegisterCompletions,
		prof.RegisterCompletions,
	} {
		err := register(rootCmd)
		if err != nil {
			fmt.Fprintf(env.stderr, "register completions: %v\n", err)
		}
	}

	rootCmd.AddCommand(
		newSchemaCmd(),
		newRulesCmd(annotateCfg, func() *slog.Logger { return logger }),
	)

	return rootCmd
}

func newSchemaCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "schema",
		Short: "Print the JSON Schema of rule files",
		Args:  noArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := annotate.RuleSchema()
			if err != nil {
				return err
			}

			out, err := json.MarshalIndent(s, "", "  ")
			if err != nil {
				return fmt.Errorf("marshal schema: %w", err)
			}

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "%s\n", out)

			return err
		},
	}
}

func newRulesCmd(cfg *annotate.Config, logger func() *slog.Logger) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rules",
		Short: "Print the rule table as YAML",
		Long: `rules prints the rule table in application order. A line named by more
than one rule gets the comments of every one of them, and each repeat is
logged as a warning so accidental copies are easy to spot.`,
		Args: noArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			table, err := cfg.NewRules()
			if err != nil {
				return err
			}

			for _, line := range table.Duplicates() {
				logger().Warn("repeated rule, comments stack", slog.String("line", line))
			}

			out, err := yaml.Marshal(table.File())
			if err != nil {
				return fmt.Errorf("marshal rules: %w", err)
			}

			_, err = cmd.OutOrStdout().Write(out)

			return err
		},
	}

	cmd.Flags().StringVarP(&cfg.Rules, cfg.Flags.Rules, "r", "",
		"rule file (defaults to the built-in Web Check table)")

	_ = cmd.MarkFlagFilename(cfg.Flags.Rules, "yaml", "yml")

	return cmd
}

func noArgs(cmd *cobra.Command, args []string) error {
	err := cobra.NoArgs(cmd, args)
	if err != nil {
		return fmt.Errorf("%w: %w", errUsage, err)
	}

	return nil
}
