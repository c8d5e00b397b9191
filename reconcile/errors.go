package reconcile

import (
	"errors"
	"fmt"
)

// ErrMissingHeader is returned when the joblog has no header line at all.
// An empty joblog almost always means the wrong file was passed.
var ErrMissingHeader = errors.New("joblog is empty: expected a header line")

// DuplicateCommandError is returned when a non-blank line of the commands
// file repeats an earlier command.
type DuplicateCommandError struct {
	Command string
	// Line is the 1-based line number of the repeat.
	Line int
}

func (e *DuplicateCommandError) Error() string {
	return fmt.Sprintf("this command (in between quotes) is present multiple times in the commands file (line %d): \"%s\"",
		e.Line, e.Command)
}

// UnknownLogCommandError is returned when a joblog row names a command
// that is not in the commands file. The two files do not belong together.
type UnknownLogCommandError struct {
	Command string
	// Line is the 1-based joblog line number (the header is line 1).
	Line int
}

func (e *UnknownLogCommandError) Error() string {
	return fmt.Sprintf("this command (joblog line %d) was not present in the commands file:\n%s",
		e.Line, e.Command)
}

// IsIntegrityError reports whether err means the inputs are inconsistent,
// as opposed to an I/O failure.
func IsIntegrityError(err error) bool {
	if err == nil {
		return false
	}
	var dup *DuplicateCommandError
	if errors.As(err, &dup) {
		return true
	}
	var unknown *UnknownLogCommandError
	if errors.As(err, &unknown) {
		return true
	}
	return errors.Is(err, ErrMissingHeader)
}
