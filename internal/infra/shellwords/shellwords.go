// Where: internal/infra/shellwords/shellwords.go
// What: POSIX word splitting for user-typed argument strings.
// Why: Turn "--args" values and session lines into argv without running a shell.
package shellwords

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"mvdan.cc/sh/v3/expand"
	"mvdan.cc/sh/v3/syntax"
)

var ErrCommandSubstitution = errors.New("command substitution is not allowed")

// Split parses s with POSIX shell quoting rules and returns the resulting
// fields. Parameters expand from the process environment; command
// substitution is rejected and globs are left as written.
func Split(s string) ([]string, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	var words []*syntax.Word
	parser := syntax.NewParser(syntax.Variant(syntax.LangPOSIX))
	err := parser.Words(strings.NewReader(s), func(w *syntax.Word) bool {
		words = append(words, w)
		return true
	})
	if err != nil {
		return nil, fmt.Errorf("parse arguments: %w", err)
	}

	cfg := &expand.Config{
		Env: expand.ListEnviron(os.Environ()...),
		CmdSubst: func(_ io.Writer, _ *syntax.CmdSubst) error {
			return ErrCommandSubstitution
		},
	}
	fields, err := expand.Fields(cfg, words...)
	if err != nil {
		return nil, fmt.Errorf("expand arguments: %w", err)
	}
	return fields, nil
}
