// Where: internal/infra/ui/ui.go
// What: UserInterface adapter used by command handlers.
// Why: Keep handlers independent from the concrete console formatting.
package ui

import (
	"io"
	"unicode/utf8"
)

// KeyValue is a key/value pair rendered inside a block.
type KeyValue struct {
	Key   string
	Value any
}

// UserInterface exposes high-level output helpers used by command handlers.
type UserInterface interface {
	Info(msg string)
	Warn(msg string)
	Error(msg string)
	Success(msg string)
	Block(emoji, title string, rows []KeyValue)
}

// NewConsoleUI returns a UserInterface writing to out.
func NewConsoleUI(out io.Writer, emojiEnabled bool) UserInterface {
	return consoleUI{console: NewWithEmoji(out, emojiEnabled)}
}

type consoleUI struct {
	console *Console
}

func (c consoleUI) Info(msg string)    { c.console.Info(msg) }
func (c consoleUI) Warn(msg string)    { c.console.Warn(msg) }
func (c consoleUI) Error(msg string)   { c.console.Error(msg) }
func (c consoleUI) Success(msg string) { c.console.Success(msg) }

func (c consoleUI) Block(emoji, title string, rows []KeyValue) {
	width := 0
	for _, kv := range rows {
		if n := utf8.RuneCountInString(kv.Key) + 1; n > width {
			width = n
		}
	}
	c.console.BlockStart(emoji, title)
	for _, kv := range rows {
		c.console.Item(kv.Key, kv.Value, width)
	}
	c.console.BlockEnd()
}
