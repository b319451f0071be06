package annotate

import (
	"errors"
	"io"
	"log/slog"
	"os"
	"strings"
)

// Sentinel errors returned by the annotator.
var (
	ErrReadInput     = errors.New("read input")
	ErrWriteOutput   = errors.New("write output")
	ErrReadRules     = errors.New("read rules")
	ErrInvalidUTF8   = errors.New("input is not valid UTF-8")
	ErrInvalidRules  = errors.New("invalid rules")
	ErrInvalidOption = errors.New("invalid option")

	ErrLineOrPattern = errors.New("exactly one of line or pattern must be set")
	ErrNoComments    = errors.New("at least one comment is required")
)

// Annotator injects rule comments into documents.
//
// Create instances with [NewAnnotator].
type Annotator struct {
	rules  *RuleTable
	logger *slog.Logger
	stdin  io.Reader
	stdout io.Writer
}

// Option configures an [Annotator].
type Option func(*Annotator)

// WithRules sets the rule table. The default is [DefaultRules].
func WithRules(t *RuleTable) Option {
	return func(a *Annotator) {
		a.rules = t
	}
}

// WithLogger sets the logger. The default is [slog.Default].
func WithLogger(l *slog.Logger) Option {
	return func(a *Annotator) {
		a.logger = l
	}
}

// WithStdin sets the reader used when the input path is "-".
func WithStdin(r io.Reader) Option {
	return func(a *Annotator) {
		a.stdin = r
	}
}

// WithStdout sets the writer used when the output path is "-".
func WithStdout(w io.Writer) Option {
	return func(a *Annotator) {
		a.stdout = w
	}
}

// NewAnnotator creates an [Annotator] with the given options.
func NewAnnotator(opts ...Option) (*Annotator, error) {
	a := &Annotator{
		stdin:  os.Stdin,
		stdout: os.Stdout,
	}

	for _, opt := range opts {
		opt(a)
	}

	if a.logger == nil {
		a.logger = slog.Default()
	}

	if a.rules == nil {
		t, err := DefaultRules()
		if err != nil {
			return nil, err
		}

		a.rules = t
	}

	return a, nil
}

// Rules returns the annotator's rule table.
func (a *Annotator) Rules() *RuleTable {
	return a.rules
}

// Result is the outcome of [Annotator.Annotate].
type Result struct {
	// Content is the annotated document.
	Content string
	// Injected holds the 0-based indexes of every line of Content that was
	// added, header lines included, in ascending order.
	Injected []int
	// Matches counts the lines matched by each rule, indexed like the
	// rule table.
	Matches []int

	headerLen int
}

// Comments returns the number of comment lines injected by rules, excluding
// the header.
func (r Result) Comments() int {
	return len(r.Injected) - r.headerLen
}

// Original removes every injected line from Content, which yields the
// document that was annotated.
func (r Result) Original() string {
	lines := strings.Split(r.Content, "\n")
	kept := make([]string, 0, len(lines))

	next := 0
	for i, l := range lines {
		if next < len(r.Injected) && r.Injected[next] == i {
			next++
			continue
		}

		kept = append(kept, l)
	}

	return strings.Join(kept, "\n")
}

// Annotate prepends the header to doc, then applies every rule in table
// order. Each rule sees the output of the rules before it. A matching line
// is kept verbatim with the rule's comments inserted directly above it. A
// trailing carriage return is ignored for matching and copied onto the
// injected comments.
func (a *Annotator) Annotate(doc string) Result {
	t := a.rules

	lines := strings.Split(t.header+doc, "\n")
	injected := make([]bool, len(lines))

	for i := range t.headerLen {
		injected[i] = true
	}

	matches := make([]int, len(t.rules))

	for ri := range t.rules {
		r := &t.rules[ri]

		var (
			out    []string
			outInj []bool
		)

		for i, line := range lines {
			text, cr := strings.CutSuffix(line, "\r")
			if !r.match(text) {
				if out != nil {
					out = append(out, line)
					outInj = append(outInj, injected[i])
				}

				continue
			}

			if out == nil {
				out = make([]string, i, len(lines)+len(r.rendered)*4)
				copy(out, lines[:i])
				outInj = make([]bool, i, cap(out))
				copy(outInj, injected[:i])
			}

			for _, c := range r.rendered {
				if cr {
					c += "\r"
				}

				out = append(out, c)
				outInj = append(outInj, true)
			}

			out = append(out, line)
			outInj = append(outInj, injected[i])
			matches[ri]++
		}

		if out != nil {
			lines, injected = out, outInj
		}
	}

	res := Result{
		Content:   strings.Join(lines, "\n"),
		Matches:   matches,
		headerLen: t.headerLen,
	}

	for i, inj := range injected {
		if inj {
			res.Injected = append(res.Injected, i)
		}
	}

	return res
}
