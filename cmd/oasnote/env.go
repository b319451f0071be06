package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/pflag"
)

// bindEnv sets every flag that was not given on the command line from the
// environment variable PREFIX_FLAG_NAME, if present. Flag names are upper
// cased with dashes replaced by underscores.
func bindEnv(flags *pflag.FlagSet, prefix string, lookup func(string) (string, bool)) error {
	var errs []error

	flags.VisitAll(func(f *pflag.Flag) {
		if f.Changed || f.Name == "help" || f.Name == "version" {
			return
		}

		key := envKey(prefix, f.Name)

		v, ok := lookup(key)
		if !ok {
			return
		}

		err := flags.Set(f.Name, v)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", key, err))
		}
	})

	return errors.Join(errs...)
}

func envKey(prefix, flag string) string {
	return prefix + "_" + strings.ToUpper(strings.ReplaceAll(flag, "-", "_"))
}
