// Package iox provides I/O helpers for resource cleanup and command files.
package iox

import (
	"bufio"
	"fmt"
	"io"
	"os"
)

// DiscardClose closes c and discards the error.
// Use in defer statements where close errors are unactionable, such as
// read-only input files:
//
//	defer iox.DiscardClose(f)
func DiscardClose(c io.Closer) { _ = c.Close() }

// WriteLines writes each line followed by a newline. It returns the
// number of lines written.
func WriteLines(w io.Writer, lines []string) (int, error) {
	bw := bufio.NewWriter(w)
	for i, line := range lines {
		if _, err := bw.WriteString(line); err != nil {
			return i, err
		}
		if err := bw.WriteByte('\n'); err != nil {
			return i, err
		}
	}
	if err := bw.Flush(); err != nil {
		return 0, err
	}
	return len(lines), nil
}

// WriteLinesFile creates (or truncates) path and writes one line per entry.
// Unlike input files, close errors on output files are reported: a failed
// close can mean the data never reached disk.
func WriteLinesFile(path string, lines []string) (n int, err error) {
	f, err := os.Create(path)
	if err != nil {
		return 0, fmt.Errorf("cannot create %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("closing %s: %w", path, cerr)
		}
	}()

	n, err = WriteLines(f, lines)
	if err != nil {
		return n, fmt.Errorf("writing %s: %w", path, err)
	}
	return n, nil
}
