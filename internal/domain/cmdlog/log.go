// Where: internal/domain/cmdlog/log.go
// What: Append-only, session-scoped log of dispatched commands.
// Why: Give the user a readable history of what ran where, without persisting it.
package cmdlog

import (
	"fmt"
	"io"
)

// ContextMarker formats the working-directory entry written before a command.
func ContextMarker(dir string) string {
	return "cd " + dir
}

// Log keeps every line appended during a session. Lines are never removed.
// When Mirror is set each appended line is also written to it.
type Log struct {
	lines  []string
	Mirror io.Writer
}

// Append adds the context marker for dir followed by the command line.
func (l *Log) Append(dir, commandLine string) {
	l.add(ContextMarker(dir))
	l.add(commandLine)
}

func (l *Log) add(line string) {
	l.lines = append(l.lines, line)
	if l.Mirror != nil {
		_, _ = fmt.Fprintln(l.Mirror, line)
	}
}

// Lines returns a copy of the log in append order.
func (l *Log) Lines() []string {
	out := make([]string, len(l.lines))
	copy(out, l.lines)
	return out
}

// Len is the number of lines appended so far.
func (l *Log) Len() int {
	return len(l.lines)
}

// WriteTo writes one entry per line.
func (l *Log) WriteTo(w io.Writer) (int64, error) {
	var total int64
	for _, line := range l.lines {
		n, err := fmt.Fprintln(w, line)
		total += int64(n)
		if err != nil {
			return total, err
		}
	}
	return total, nil
}
