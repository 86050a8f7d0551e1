// Where: internal/domain/command/command.go
// What: Structured dotnet invocation and its quoted shell rendering.
// Why: Keep argv construction separate from execution so escaping happens in one place.
package command

import (
	"strings"
)

// Program is the default external toolchain executable.
const Program = "dotnet"

// Token is one argument of a command line. Literal tokens are fixed verbs and
// flags owned by this program; every other token is quoted when rendered.
type Token struct {
	Value   string
	Literal bool
}

// Command is a fully resolved invocation ready for a runner.
type Command struct {
	Dir    string
	Name   string
	Tokens []Token
}

// Argv returns the arguments after the program name, unquoted.
func (c Command) Argv() []string {
	out := make([]string, 0, len(c.Tokens))
	for _, tok := range c.Tokens {
		out = append(out, tok.Value)
	}
	return out
}

// String renders the command as a single shell line. Non-literal tokens are
// always single-quoted so that the line re-parses into exactly Argv.
func (c Command) String() string {
	name := c.Name
	if name == "" {
		name = Program
	}
	parts := make([]string, 0, len(c.Tokens)+1)
	parts = append(parts, quoteIfNeeded(name))
	for _, tok := range c.Tokens {
		if tok.Literal {
			parts = append(parts, tok.Value)
			continue
		}
		parts = append(parts, Quote(tok.Value))
	}
	return strings.Join(parts, " ")
}

// Quote wraps s in single quotes for POSIX shells. Embedded single quotes are
// emitted as '\''.
func Quote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}

func quoteIfNeeded(s string) string {
	if s == "" {
		return "''"
	}
	for _, r := range s {
		if !isSafeRune(r) {
			return Quote(s)
		}
	}
	return s
}

func isSafeRune(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		return true
	}
	return strings.ContainsRune("-_./:+@%,=", r)
}
