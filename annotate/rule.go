package annotate

import (
	"fmt"
	"regexp"
	"slices"
	"strings"
)

// Rule attaches comments to every line that matches it.
//
// Exactly one of Line or Pattern is set. Line matches by string equality, so
// regular expression metacharacters in it are plain text. Pattern is a
// regular expression that must match the whole line.
type Rule struct {
	Line     string   `json:"line,omitempty"    jsonschema:"exact text of the line to annotate" yaml:"line,omitempty"`
	Pattern  string   `json:"pattern,omitempty" jsonschema:"regular expression matched against the whole line" yaml:"pattern,omitempty"`
	Comments []string `json:"comments"          jsonschema:"comment texts injected above the line, without the leading #" yaml:"comments"`
}

// RuleFile is the on-disk form of a [RuleTable].
type RuleFile struct {
	Header []string `json:"header,omitempty" jsonschema:"comment texts prepended to every document" yaml:"header,omitempty"`
	Rules  []Rule   `json:"rules"            jsonschema:"rules in application order"                yaml:"rules"`
}

type compiledRule struct {
	re       *regexp.Regexp
	rendered []string
	Rule
}

func (r *compiledRule) match(line string) bool {
	if r.re != nil {
		return r.re.MatchString(line)
	}

	return line == r.Line
}

// RuleTable is an immutable, ordered set of compiled rules plus the header
// prepended to every document.
//
// Create instances with [NewRuleTable], [ParseRules], [LoadRules], or
// [DefaultRules].
type RuleTable struct {
	header     string
	headerLen  int
	rules      []compiledRule
	duplicates []string
}

// NewRuleTable validates and compiles rules in order.
//
// Every rule is kept, including rules for a Line that an earlier rule already
// names. Each of them matches, so their comments stack above the line in
// table order. Such lines are reported by [RuleTable.Duplicates].
func NewRuleTable(header []string, rules []Rule) (*RuleTable, error) {
	t := &RuleTable{}

	for i, h := range header {
		if strings.ContainsAny(h, "\r\n") {
			return nil, fmt.Errorf("%w: header line %d contains a line break", ErrInvalidRules, i)
		}
	}

	if len(header) > 0 {
		t.header = strings.Join(renderComments(header), "\n") + "\n\n"
		t.headerLen = len(header) + 1
	}

	seen := map[string]bool{}

	for i, r := range rules {
		err := checkRule(r)
		if err != nil {
			return nil, fmt.Errorf("%w: rule %d: %w", ErrInvalidRules, i, err)
		}

		cr := compiledRule{
			Rule:     Rule{Line: r.Line, Pattern: r.Pattern, Comments: slices.Clone(r.Comments)},
			rendered: renderComments(r.Comments),
		}

		switch {
		case r.Pattern != "":
			cr.re, err = regexp.Compile("^(?:" + r.Pattern + ")$")
			if err != nil {
				return nil, fmt.Errorf("%w: rule %d: %w", ErrInvalidRules, i, err)
			}
		case seen[r.Line]:
			t.duplicates = append(t.duplicates, r.Line)
		default:
			seen[r.Line] = true
		}

		t.rules = append(t.rules, cr)
	}

	return t, nil
}

func checkRule(r Rule) error {
	if (r.Line == "") == (r.Pattern == "") {
		return ErrLineOrPattern
	}

	if strings.ContainsAny(r.Line, "\r\n") {
		return fmt.Errorf("line %q contains a line break", r.Line)
	}

	if len(r.Comments) == 0 {
		return ErrNoComments
	}

	for _, c := range r.Comments {
		if strings.ContainsAny(c, "\r\n") {
			return fmt.Errorf("comment %q contains a line break", c)
		}
	}

	return nil
}

func renderComments(texts []string) []string {
	out := make([]string, len(texts))
	for i, s := range texts {
		out[i] = "# " + s
	}

	return out
}

// Header returns the rendered header block, including its trailing blank
// line. It is empty when the table has no header.
func (t *RuleTable) Header() string {
	return t.header
}

// Len returns the number of rules.
func (t *RuleTable) Len() int {
	return len(t.rules)
}

// Duplicates returns, in table order, each Line that already had an earlier
// rule. Such lines receive the comments of all their rules.
func (t *RuleTable) Duplicates() []string {
	return slices.Clone(t.duplicates)
}

// File returns the effective table as a [RuleFile].
func (t *RuleTable) File() RuleFile {
	f := RuleFile{Rules: make([]Rule, 0, len(t.rules))}

	if t.headerLen > 0 {
		lines := strings.Split(strings.TrimSuffix(t.header, "\n\n"), "\n")
		for _, l := range lines {
			f.Header = append(f.Header, strings.TrimPrefix(l, "# "))
		}
	}

	for _, r := range t.rules {
		f.Rules = append(f.Rules, Rule{
			Line:     r.Line,
			Pattern:  r.Pattern,
			Comments: slices.Clone(r.Comments),
		})
	}

	return f
}
