package annotate

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// DefaultInput is the document annotated when no input is given.
const DefaultInput = "public/resources/openapi-spec.yml"

// Flags holds CLI flag names for annotation configuration, allowing callers
// to customize flag names while keeping sensible defaults via [NewConfig].
type Flags struct {
	Input  string
	Output string
	Rules  string
}

// NewConfig creates a new [Config] embedding these flag names.
func (f Flags) NewConfig() *Config {
	return &Config{
		Flags: f,
	}
}

// Config holds CLI flag values for annotation.
//
// Create instances with [NewConfig] and register CLI flags with
// [Config.RegisterFlags]. Use [Config.NewAnnotator] to create an
// [Annotator].
type Config struct {
	Flags Flags

	// Input is the document path, or [Stdio].
	Input string
	// Output is the destination path, or [Stdio]. Empty means Input.
	Output string
	// Rules is a rule file path. Empty means [DefaultRules].
	Rules string
}

// NewConfig returns a new [Config] with default flag names.
func NewConfig() *Config {
	f := Flags{
		Input:  "input",
		Output: "output",
		Rules:  "rules",
	}

	return f.NewConfig()
}

// RegisterFlags adds annotation flags to the given [*pflag.FlagSet].
func (c *Config) RegisterFlags(flags *pflag.FlagSet) {
	flags.StringVarP(&c.Input, c.Flags.Input, "i", DefaultInput,
		"document to annotate (- for stdin)")
	flags.StringVarP(&c.Output, c.Flags.Output, "o", "",
		"destination (- for stdout, defaults to the input path)")
	flags.StringVarP(&c.Rules, c.Flags.Rules, "r", "",
		"rule file (defaults to the built-in Web Check table)")
}

// RegisterCompletions registers shell completions for annotation flags on
// cmd. All three flags complete YAML file names.
func (c *Config) RegisterCompletions(cmd *cobra.Command) error {
	for _, flag := range []string{c.Flags.Input, c.Flags.Output, c.Flags.Rules} {
		err := cmd.MarkFlagFilename(flag, "yaml", "yml")
		if err != nil {
			return fmt.Errorf("registering %s completion: %w", flag, err)
		}
	}

	return nil
}

// OutputPath returns Output, or Input when Output is empty.
func (c *Config) OutputPath() string {
	if c.Output == "" {
		return c.Input
	}

	return c.Output
}

// NewRules loads the configured rule table.
func (c *Config) NewRules() (*RuleTable, error) {
	if c.Rules == "" {
		return DefaultRules()
	}

	return LoadRules(c.Rules)
}

// NewAnnotator creates an [Annotator] using this [Config]. opts are applied
// after the configured rules, so they may override them.
func (c *Config) NewAnnotator(opts ...Option) (*Annotator, error) {
	if c.Input == "" {
		return nil, fmt.Errorf("%w: %s must not be empty", ErrInvalidOption, c.Flags.Input)
	}

	rules, err := c.NewRules()
	if err != nil {
		return nil, err
	}

	return NewAnnotator(append([]Option{WithRules(rules)}, opts...)...)
}
