// Where: internal/infra/interaction/interaction.go
// What: Prompt port and TTY detection for target selection.
// Why: Keep huh and isatty out of the locator and command handlers.
package interaction

import (
	"errors"
	"os"

	"github.com/mattn/go-isatty"
)

// ErrAborted is returned when the user dismisses a prompt.
var ErrAborted = errors.New("prompt aborted")

// SelectOption represents a single option in a selection menu.
type SelectOption struct {
	Label string // Display text
	Value string // Return value
}

// Prompter defines the interface for interactive user input and selection.
type Prompter interface {
	Input(title string, suggestions []string) (string, error)
	SelectValue(title string, options []SelectOption) (string, error)
}

// IsTerminal reports whether the file refers to a terminal device.
var IsTerminal = func(file *os.File) bool {
	if file == nil {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
