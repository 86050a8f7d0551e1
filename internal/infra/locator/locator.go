// Where: internal/infra/locator/locator.go
// What: Filesystem locator that lists candidate targets and asks the user to pick one.
// Why: Implement the locate port over a fresh scan on every call.
package locator

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/sebasmonia/dotnet.el/internal/domain/target"
	"github.com/sebasmonia/dotnet.el/internal/infra/interaction"
)

var (
	ErrNoMatchingFiles    = errors.New("no matching files")
	ErrSelectionCancelled = errors.New("selection cancelled")
	ErrNotInteractive     = errors.New("selection requires an interactive terminal")
)

var getwd = os.Getwd

// Locator scans the search root and prompts for one candidate.
type Locator struct {
	Root        RootDetector // optional
	Prompter    interaction.Prompter
	ExcludeDirs []string
	Stdin       *os.File
	WorkDir     string // fallback root; the process working directory when empty
	Log         zerolog.Logger
}

// Locate returns the absolute path of the chosen file. A single candidate is
// picked without prompting only when no terminal is attached.
func (l *Locator) Locate(ctx context.Context, c target.Constraint, title string) (string, error) {
	root, err := l.searchRoot()
	if err != nil {
		return "", err
	}
	excludes := l.ExcludeDirs
	if excludes == nil {
		excludes = DefaultExcludeDirs
	}
	candidates, err := Scan(ctx, root, c.Extensions(), excludes)
	if err != nil {
		return "", err
	}
	l.Log.Debug().Str("root", root).Stringer("constraint", c).Int("candidates", len(candidates)).Msg("scan complete")
	if len(candidates) == 0 {
		return "", fmt.Errorf("%w: no %s under %s", ErrNoMatchingFiles, describe(c), root)
	}

	if !interaction.IsTerminal(l.stdin()) {
		if len(candidates) == 1 {
			return candidates[0], nil
		}
		return "", fmt.Errorf("%w: %d candidates under %s", ErrNotInteractive, len(candidates), root)
	}
	if l.Prompter == nil {
		return "", ErrNotInteractive
	}

	options := make([]interaction.SelectOption, len(candidates))
	for i, path := range candidates {
		options[i] = interaction.SelectOption{Label: relativeLabel(root, path), Value: path}
	}
	picked, err := l.Prompter.SelectValue(title, options)
	if err != nil {
		if errors.Is(err, interaction.ErrAborted) {
			return "", ErrSelectionCancelled
		}
		return "", err
	}
	if picked == "" {
		return "", ErrSelectionCancelled
	}
	return picked, nil
}

func (l *Locator) searchRoot() (string, error) {
	cwd := l.WorkDir
	if cwd == "" {
		wd, err := getwd()
		if err != nil {
			return "", fmt.Errorf("get working directory: %w", err)
		}
		cwd = wd
	}
	if l.Root != nil {
		if root, ok := l.Root.DetectRoot(cwd); ok && root != "" {
			return root, nil
		}
	}
	return cwd, nil
}

func (l *Locator) stdin() *os.File {
	if l.Stdin != nil {
		return l.Stdin
	}
	return os.Stdin
}

func relativeLabel(root, path string) string {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return path
	}
	return rel
}

func describe(c target.Constraint) string {
	switch c {
	case target.ProjectOnly:
		return "project files"
	case target.SolutionOnly:
		return "solution files"
	default:
		return "project or solution files"
	}
}
