// Where: internal/infra/config/alias.go
// What: Rendering of alias arguments with text/template and sprig.
// Why: Let aliases reference settings and environment values without a shell.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"strings"
	"text/template"

	"github.com/Masterminds/sprig/v3"
)

// TargetSlot is the alias argument replaced by the resolved target.
const TargetSlot = "%s"

var ErrUnknownAlias = errors.New("unknown alias")

// AliasData is the value alias templates are executed against.
type AliasData struct {
	Verbosity string
	Language  string
	Env       map[string]string
}

// NewAliasData builds template data from settings and the process environment.
func NewAliasData(cfg Settings) AliasData {
	env := map[string]string{}
	for _, kv := range os.Environ() {
		if key, value, ok := strings.Cut(kv, "="); ok {
			env[key] = value
		}
	}
	return AliasData{Verbosity: cfg.Verbosity, Language: cfg.DefaultLanguage, Env: env}
}

// Lookup returns the alias with the given name.
func (s Settings) Lookup(name string) (Alias, error) {
	alias, ok := s.Aliases[name]
	if !ok {
		return Alias{}, fmt.Errorf("%w: %s", ErrUnknownAlias, name)
	}
	return alias, nil
}

// Render expands each argument template. The target slot is left untouched
// and rendered values are never re-split.
func (a Alias) Render(data AliasData) ([]string, error) {
	out := make([]string, 0, len(a.Args))
	for i, arg := range a.Args {
		if arg == TargetSlot || !strings.Contains(arg, "{{") {
			out = append(out, arg)
			continue
		}
		tmpl, err := template.New(fmt.Sprintf("arg%d", i)).
			Funcs(sprig.TxtFuncMap()).
			Option("missingkey=error").
			Parse(arg)
		if err != nil {
			return nil, fmt.Errorf("parse alias argument %d: %w", i, err)
		}
		var buf bytes.Buffer
		if err := tmpl.Execute(&buf, data); err != nil {
			return nil, fmt.Errorf("render alias argument %d: %w", i, err)
		}
		out = append(out, buf.String())
	}
	return out, nil
}
