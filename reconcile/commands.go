package reconcile

import (
	"fmt"
	"io"

	"github.com/justapithecus/parlog/metrics"
)

// CommandSet is the ordered, duplicate-free set of commands that were
// handed to parallel.
type CommandSet struct {
	commands []string
	index    map[string]int
	blank    int
}

// NewCommandSet builds a set from already-split commands. Blank entries
// are skipped and counted; a repeat yields *DuplicateCommandError.
func NewCommandSet(commands []string) (*CommandSet, error) {
	s := &CommandSet{index: make(map[string]int, len(commands))}
	for i, raw := range commands {
		if err := s.add(trimLine(raw), i+1, nil); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// LoadCommands reads one command per line from r. The whole input is
// consumed before returning, so a duplicate aborts before the joblog is
// ever opened. m may be nil.
func LoadCommands(r io.Reader, m *metrics.Collector) (*CommandSet, error) {
	s := &CommandSet{index: make(map[string]int)}

	sc := newLineScanner(r)
	line := 0
	for sc.Scan() {
		line++
		if err := s.add(trimLine(sc.Text()), line, m); err != nil {
			return nil, err
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("reading commands: %w", err)
	}
	return s, nil
}

func (s *CommandSet) add(cmd string, line int, m *metrics.Collector) error {
	if cmd == "" {
		s.blank++
		m.IncBlankCommandLine()
		return nil
	}
	if _, dup := s.index[cmd]; dup {
		return &DuplicateCommandError{Command: cmd, Line: line}
	}
	s.index[cmd] = len(s.commands)
	s.commands = append(s.commands, cmd)
	m.IncCommandLoaded()
	return nil
}

// Len returns the number of distinct commands.
func (s *CommandSet) Len() int { return len(s.commands) }

// Blank returns the number of blank lines that were skipped.
func (s *CommandSet) Blank() int { return s.blank }

// contains reports whether cmd is in the set (exact match).
func (s *CommandSet) contains(cmd string) bool {
	_, ok := s.index[cmd]
	return ok
}

// Commands returns the commands in file order.
func (s *CommandSet) Commands() []string {
	out := make([]string, len(s.commands))
	copy(out, s.commands)
	return out
}
