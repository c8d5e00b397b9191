package reconcile

import (
	"bufio"
	"io"
	"strings"
	"unicode"
)

// MaxLineSize bounds a single line of either input. Commands generated by
// scripts can be long, so this is far above bufio's 64 KiB default.
const MaxLineSize = 64 * 1024 * 1024

func newLineScanner(r io.Reader) *bufio.Scanner {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), MaxLineSize)
	return sc
}

// trimLine drops trailing whitespace, including a CR left by CRLF files.
// Leading whitespace is part of the command.
func trimLine(line string) string {
	return strings.TrimRightFunc(line, unicode.IsSpace)
}
