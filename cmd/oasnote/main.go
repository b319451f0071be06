// Command oasnote annotates the Web Check OpenAPI spec with Chinese comments.
//
// It prepends a fixed header and inserts a comment above every line found in
// its rule table, leaving the original lines untouched. By default the spec
// is rewritten in place.
//
// # Usage
//
//	oasnote [flags]
//	oasnote schema
//	oasnote rules [-r rules.yaml]
//
// Every flag can also be set through an OASNOTE_* environment variable named
// after the flag, such as OASNOTE_INPUT or OASNOTE_LOG_LEVEL. Flags given on
// the command line take precedence.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"go.jacobcolvin.com/oasnote/profile"
)

func main() {
	env := &environment{
		stdin:     os.Stdin,
		stdout:    os.Stdout,
		stderr:    os.Stderr,
		lookupEnv: os.LookupEnv,
	}

	os.Exit(run(env, os.Args[1:]))
}

// environment holds the process I/O and environment lookup, so commands can
// run against fakes in tests.
type environment struct {
	stdin     io.Reader
	stdout    io.Writer
	stderr    io.Writer
	lookupEnv func(string) (string, bool)
}

func run(env *environment, args []string) int {
	prof := profile.NewConfig().NewProfiler()

	cmd := newRootCmd(env, prof)
	cmd.SetArgs(args)

	err := errors.Join(cmd.Execute(), prof.Stop())
	if err != nil {
		fmt.Fprintf(env.stderr, "error: %v\n", err)
	}

	return exitCodeFor(err)
}
