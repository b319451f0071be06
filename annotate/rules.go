package annotate

import (
	_ "embed"
	"fmt"
	"os"
	"sync"

	"github.com/goccy/go-yaml"
	"github.com/google/jsonschema-go/jsonschema"
)

//go:embed rules/webcheck.yaml
var webcheckRules []byte

var (
	defaultRules = sync.OnceValues(func() (*RuleTable, error) {
		return ParseRules(webcheckRules)
	})

	ruleSchema = sync.OnceValues(func() (*jsonschema.Resolved, error) {
		s, err := RuleSchema()
		if err != nil {
			return nil, err
		}

		return s.Resolve(nil)
	})
)

// DefaultRules returns the built-in table for the Web Check OpenAPI spec.
// The table is parsed on first use and shared afterwards.
func DefaultRules() (*RuleTable, error) {
	return defaultRules()
}

// LoadRules reads and parses the rule file at path. Read failures wrap
// [ErrReadRules]; everything else wraps [ErrInvalidRules].
func LoadRules(path string) (*RuleTable, error) {
	data, err := os.ReadFile(path) //nolint:gosec // Rule path from CLI flag is expected.
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrReadRules, err)
	}

	t, err := ParseRules(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return t, nil
}

// ParseRules decodes a YAML rule file, validates it against [RuleSchema], and
// compiles it with [NewRuleTable].
func ParseRules(data []byte) (*RuleTable, error) {
	var doc any

	err := yaml.Unmarshal(data, &doc)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidRules, err)
	}

	resolved, err := ruleSchema()
	if err != nil {
		return nil, fmt.Errorf("resolve rule schema: %w", err)
	}

	err = resolved.Validate(doc)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidRules, err)
	}

	var f RuleFile

	err = yaml.Unmarshal(data, &f)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidRules, err)
	}

	return NewRuleTable(f.Header, f.Rules)
}

// RuleSchema returns the JSON Schema of [RuleFile]. Each rule must set
// exactly one of line or pattern.
func RuleSchema() (*jsonschema.Schema, error) {
	s, err := jsonschema.For[RuleFile](nil)
	if err != nil {
		return nil, fmt.Errorf("generate rule schema: %w", err)
	}

	s.Schema = "https://json-schema.org/draft/2020-12/schema"
	s.Title = "oasnote rules"

	if rules := s.Properties["rules"]; rules != nil && rules.Items != nil {
		rules.Items.OneOf = []*jsonschema.Schema{
			{Required: []string{"line"}},
			{Required: []string{"pattern"}},
		}
	}

	return s, nil
}
