// Where: internal/infra/locator/scan.go
// What: Recursive enumeration of project and solution files.
// Why: Produce the candidate list shown in the selection prompt.
package locator

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// DefaultExcludeDirs are directory names never descended into.
var DefaultExcludeDirs = []string{"bin", "obj", ".git", ".vs", "node_modules"}

// Scan walks root and returns the absolute paths of files whose extension is
// one of exts, compared case-insensitively. Results are sorted.
func Scan(ctx context.Context, root string, exts, excludeDirs []string) ([]string, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolve search root: %w", err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return nil, fmt.Errorf("stat search root: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("search root is not a directory: %s", abs)
	}

	extSet := make(map[string]bool, len(exts))
	for _, ext := range exts {
		extSet[strings.ToLower(ext)] = true
	}
	skip := make(map[string]bool, len(excludeDirs))
	for _, name := range excludeDirs {
		skip[name] = true
	}

	var found []string
	err = filepath.WalkDir(abs, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			// Unreadable subtrees are skipped.
			if d != nil && d.IsDir() && path != abs {
				return filepath.SkipDir
			}
			return nil
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if d.IsDir() {
			if path != abs && skip[d.Name()] {
				return filepath.SkipDir
			}
			return nil
		}
		if extSet[strings.ToLower(filepath.Ext(d.Name()))] {
			found = append(found, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scan %s: %w", abs, err)
	}
	sort.Strings(found)
	return found, nil
}
