package main

import (
	"errors"

	"go.jacobcolvin.com/oasnote/annotate"
	"go.jacobcolvin.com/oasnote/log"
)

// Exit codes for oasnote.
const (
	ExitSuccess = 0 // Document annotated
	ExitGeneral = 1 // Unexpected error
	ExitUsage   = 2 // Invalid flags, environment, or rules
	ExitIO      = 3 // Input or rules unreadable, or output unwritable
)

// exitCodeFor maps err to an exit code using [errors.Is], so errors must be
// wrapped with %w.
func exitCodeFor(err error) int {
	switch {
	case err == nil:
		return ExitSuccess

	case errors.Is(err, annotate.ErrReadInput),
		errors.Is(err, annotate.ErrWriteOutput),
		errors.Is(err, annotate.ErrReadRules):
		return ExitIO

	case errors.Is(err, errUsage),
		errors.Is(err, annotate.ErrInvalidRules),
		errors.Is(err, annotate.ErrInvalidOption),
		errors.Is(err, log.ErrInvalidArgument):
		return ExitUsage
	}

	return ExitGeneral
}
