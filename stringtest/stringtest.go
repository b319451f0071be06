// Package stringtest builds multi-line strings for test expectations.
package stringtest

import "strings"

// JoinLF joins multiple strings with LF line endings.
//
//	want := stringtest.JoinLF(
//		"info:",
//		"  title: Web Check",
//	) // -> "info:\n  title: Web Check"
func JoinLF(ss ...string) string {
	return strings.Join(ss, "\n")
}

// JoinCRLF joins multiple strings with CRLF line endings.
func JoinCRLF(ss ...string) string {
	return strings.Join(ss, "\r\n")
}

// Lines is like [JoinLF], but terminates every line, including the last.
// Use it for whole documents read from or written to files.
func Lines(ss ...string) string {
	return terminate(ss, "\n")
}

// LinesCRLF is like [Lines] with CRLF line endings.
func LinesCRLF(ss ...string) string {
	return terminate(ss, "\r\n")
}

// Comments renders each string as a YAML comment line ("# s").
func Comments(ss ...string) []string {
	out := make([]string, len(ss))
	for i, s := range ss {
		out[i] = "# " + s
	}

	return out
}

func terminate(ss []string, eol string) string {
	var sb strings.Builder
	for _, s := range ss {
		sb.WriteString(s)
		sb.WriteString(eol)
	}

	return sb.String()
}
