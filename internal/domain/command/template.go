// Where: internal/domain/command/template.go
// What: Command templates with a single target slot, and the builder producing them.
// Why: Replace string placeholder substitution with structured argv assembly.
package command

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// Slot is the token that marks the target position in a parsed template.
const Slot = "%s"

var (
	ErrTemplateSlot = errors.New("template must contain exactly one target slot")
	ErrPlainSlot    = errors.New("plain command cannot contain a target slot")
	ErrEmptyTarget  = errors.New("target path is required")
	ErrVerbosity    = errors.New("verbosity must be a single plain word")
)

// Template is a command with exactly one slot for the target path.
type Template struct {
	name   string
	tokens []Token
	slot   int
}

// Expand substitutes targetPath into the slot. The working directory is the
// directory containing the target.
func (t Template) Expand(targetPath string) (Command, error) {
	targetPath = strings.TrimSpace(targetPath)
	if targetPath == "" {
		return Command{}, ErrEmptyTarget
	}
	tokens := make([]Token, len(t.tokens))
	copy(tokens, t.tokens)
	tokens[t.slot] = Token{Value: targetPath}
	return Command{
		Dir:    filepath.Dir(targetPath),
		Name:   t.name,
		Tokens: tokens,
	}, nil
}

// String renders the template with the slot shown as %s.
func (t Template) String() string {
	cmd := Command{Name: t.name, Tokens: make([]Token, len(t.tokens))}
	copy(cmd.Tokens, t.tokens)
	cmd.Tokens[t.slot] = Token{Value: Slot, Literal: true}
	return cmd.String()
}

// Builder assembles a command token by token.
type Builder struct {
	name   string
	tokens []Token
	slots  int
	err    error
}

// New starts a command for the given program. An empty name means Program.
func New(name string) *Builder {
	if strings.TrimSpace(name) == "" {
		name = Program
	}
	return &Builder{name: name}
}

// Verb appends fixed verb tokens such as "sln" "add".
func (b *Builder) Verb(words ...string) *Builder {
	for _, w := range words {
		b.tokens = append(b.tokens, Token{Value: w, Literal: true})
	}
	return b
}

// Flag appends a fixed flag with no value.
func (b *Builder) Flag(name string) *Builder {
	b.tokens = append(b.tokens, Token{Value: name, Literal: true})
	return b
}

// Verbosity appends "-v <level>". The level is not checked against MSBuild's
// vocabulary and is rendered unquoted, so it must be one word of shell-safe
// characters; an empty level omits the pair.
func (b *Builder) Verbosity(level string) *Builder {
	level = strings.TrimSpace(level)
	if level == "" {
		return b
	}
	if strings.IndexFunc(level, func(r rune) bool { return !isSafeRune(r) }) >= 0 {
		b.err = fmt.Errorf("%w: %q", ErrVerbosity, level)
		return b
	}
	b.tokens = append(b.tokens, Token{Value: "-v", Literal: true}, Token{Value: level, Literal: true})
	return b
}

// Arg appends user or filesystem supplied values; they are quoted on render.
func (b *Builder) Arg(values ...string) *Builder {
	for _, v := range values {
		b.tokens = append(b.tokens, Token{Value: v})
	}
	return b
}

// Option appends a fixed flag followed by a quoted value. Empty values are skipped.
func (b *Builder) Option(flag, value string) *Builder {
	if strings.TrimSpace(value) == "" {
		return b
	}
	b.tokens = append(b.tokens, Token{Value: flag, Literal: true}, Token{Value: value})
	return b
}

// Target marks the target slot.
func (b *Builder) Target() *Builder {
	b.tokens = append(b.tokens, Token{Value: Slot, Literal: true})
	b.slots++
	return b
}

// Template validates the slot count and freezes the builder.
func (b *Builder) Template() (Template, error) {
	if b.err != nil {
		return Template{}, b.err
	}
	if b.slots != 1 {
		return Template{}, fmt.Errorf("%w: found %d", ErrTemplateSlot, b.slots)
	}
	tokens := make([]Token, len(b.tokens))
	copy(tokens, b.tokens)
	slot := -1
	for i, tok := range tokens {
		if tok.Literal && tok.Value == Slot {
			slot = i
			break
		}
	}
	return Template{name: b.name, tokens: tokens, slot: slot}, nil
}

// Plain returns a command without target substitution that runs in dir.
func (b *Builder) Plain(dir string) (Command, error) {
	if b.err != nil {
		return Command{}, b.err
	}
	if b.slots != 0 {
		return Command{}, ErrPlainSlot
	}
	tokens := make([]Token, len(b.tokens))
	copy(tokens, b.tokens)
	return Command{Dir: dir, Name: b.name, Tokens: tokens}, nil
}

// ParseTemplate builds a template from already split tokens, treating every
// token except Slot as a quoted argument.
func ParseTemplate(name string, tokens []string) (Template, error) {
	b := New(name)
	for _, tok := range tokens {
		if tok == Slot {
			b.Target()
			continue
		}
		b.Arg(tok)
	}
	return b.Template()
}
