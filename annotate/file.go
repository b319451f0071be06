package annotate

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"unicode/utf8"
)

// Stdio is the path that selects stdin for input and stdout for output.
const Stdio = "-"

// AnnotateFile annotates the document at input and writes the result to
// output, which may be the same path.
//
// Files are replaced atomically: the result is written to a temporary file
// next to output and renamed over it, keeping the existing file mode. When
// output is a symlink, its target is replaced and the link survives. Two
// concurrent runs on one path still race, and the last rename wins.
//
// Read failures wrap [ErrReadInput] and write failures wrap [ErrWriteOutput].
// Nothing is written when reading fails.
func (a *Annotator) AnnotateFile(input, output string) (Result, error) {
	doc, err := a.read(input)
	if err != nil {
		return Result{}, fmt.Errorf("%w: %w", ErrReadInput, err)
	}

	res := a.Annotate(doc)

	a.logger.Debug("applied rules",
		slog.Int("rules", a.rules.Len()),
		slog.Int("matched", countMatched(res.Matches)),
		slog.Int("duplicates", len(a.rules.duplicates)),
	)

	if res.Original() != doc {
		// Unreachable unless Annotate altered a source line.
		return Result{}, fmt.Errorf("%w: annotated content does not preserve %s", ErrWriteOutput, input)
	}

	err = a.write(output, []byte(res.Content))
	if err != nil {
		return Result{}, fmt.Errorf("%w: %w", ErrWriteOutput, err)
	}

	a.logger.Debug("annotated document",
		slog.String("input", input),
		slog.String("output", output),
		slog.Int("comments", res.Comments()),
	)

	return res, nil
}

func (a *Annotator) read(path string) (string, error) {
	var (
		data []byte
		err  error
	)

	if path == Stdio {
		data, err = io.ReadAll(a.stdin)
		if err != nil {
			return "", fmt.Errorf("stdin: %w", err)
		}
	} else {
		data, err = os.ReadFile(path) //nolint:gosec // Input path from CLI flag is expected.
		if err != nil {
			return "", err
		}
	}

	if !utf8.Valid(data) {
		return "", fmt.Errorf("%s: %w", path, ErrInvalidUTF8)
	}

	return string(data), nil
}

func (a *Annotator) write(path string, data []byte) error {
	if path == Stdio {
		_, err := a.stdout.Write(data)
		if err != nil {
			return fmt.Errorf("stdout: %w", err)
		}

		return nil
	}

	return writeFileAtomic(path, data)
}

// writeFileAtomic replaces path with data via a temporary file in the same
// directory. The temporary file is removed on any failure. If path is a
// symlink, the file it points to is replaced and the link is kept.
func writeFileAtomic(path string, data []byte) (err error) {
	mode := fs.FileMode(0o644)

	resolved, err := filepath.EvalSymlinks(path)
	switch {
	case err == nil:
		path = resolved
	case !errors.Is(err, fs.ErrNotExist):
		return err
	}

	info, err := os.Stat(path)
	switch {
	case err == nil && info.IsDir():
		return fmt.Errorf("%s: %w", path, errIsDir)
	case err == nil:
		mode = info.Mode().Perm()
	case !errors.Is(err, fs.ErrNotExist):
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}

	defer func() {
		if err != nil {
			_ = tmp.Close()
			_ = os.Remove(tmp.Name())
		}
	}()

	_, err = tmp.Write(data)
	if err != nil {
		return fmt.Errorf("write temp file: %w", err)
	}

	err = tmp.Chmod(mode)
	if err != nil {
		return fmt.Errorf("chmod temp file: %w", err)
	}

	err = tmp.Close()
	if err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}

	err = os.Rename(tmp.Name(), path)
	if err != nil {
		return fmt.Errorf("replace %s: %w", path, err)
	}

	return nil
}

var errIsDir = errors.New("is a directory")

func countMatched(matches []int) int {
	n := 0

	for _, m := range matches {
		if m > 0 {
			n++
		}
	}

	return n
}
