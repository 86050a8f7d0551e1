// Where: internal/architecture/layering_test.go
// What: Layer dependency guard tests for internal packages.
// Why: Keep domain and ports free of adapters, and adapters free of the CLI layer.
package architecture

import (
	"go/ast"
	"go/parser"
	"go/token"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"testing"
)

const internalImportPrefix = "github.com/sebasmonia/dotnet.el/internal/"

// sourceFile is one parsed non-test Go file under internal/.
type sourceFile struct {
	rel  string // slash-separated, relative to internal/
	fset *token.FileSet
	file *ast.File
}

// forEachSource parses every non-test Go file under internal/ with mode.
func forEachSource(t *testing.T, mode parser.Mode, fn func(src sourceFile)) {
	t.Helper()
	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	internalRoot := filepath.Dir(wd)
	fset := token.NewFileSet()
	err = filepath.WalkDir(internalRoot, func(path string, d os.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		name := d.Name()
		if !strings.HasSuffix(name, ".go") || strings.HasSuffix(name, "_test.go") {
			return nil
		}
		rel, err := filepath.Rel(internalRoot, path)
		if err != nil {
			return err
		}
		file, err := parser.ParseFile(fset, path, nil, mode)
		if err != nil {
			return err
		}
		fn(sourceFile{rel: filepath.ToSlash(rel), fset: fset, file: file})
		return nil
	})
	if err != nil {
		t.Fatalf("scan internal packages: %v", err)
	}
}

func importPaths(file *ast.File) []string {
	out := make([]string, 0, len(file.Imports))
	for _, imp := range file.Imports {
		if p, err := strconv.Unquote(imp.Path.Value); err == nil {
			out = append(out, p)
		}
	}
	return out
}

func TestLayeringRules(t *testing.T) {
	t.Parallel()

	var violations []string
	forEachSource(t, parser.ImportsOnly, func(src sourceFile) {
		sourceLayer := topLayer(src.rel)
		for _, importPath := range importPaths(src.file) {
			importLayer := topLayerFromImport(importPath)
			if importLayer != "" && violatesRule(sourceLayer, importLayer) {
				violations = append(violations, src.rel+" -> "+importPath)
			}
		}
	})
	if len(violations) > 0 {
		sort.Strings(violations)
		t.Fatalf("layering rule violations:\n%s", strings.Join(violations, "\n"))
	}
}

func topLayer(rel string) string {
	layer, _, _ := strings.Cut(rel, "/")
	return layer
}

func topLayerFromImport(importPath string) string {
	rest, ok := strings.CutPrefix(importPath, internalImportPrefix)
	if !ok {
		return ""
	}
	return topLayer(rest)
}

func violatesRule(sourceLayer, importLayer string) bool {
	switch sourceLayer {
	case "domain":
		return importLayer != "domain"
	case "ports":
		return importLayer != "domain" && importLayer != "ports"
	case "usecase":
		return importLayer == "infra" || importLayer == "command"
	case "infra":
		return importLayer == "usecase" || importLayer == "command"
	default:
		return false
	}
}

func TestViolatesRule(t *testing.T) {
	cases := []struct {
		source, imported string
		want             bool
	}{
		{"domain", "domain", false},
		{"domain", "ports", true},
		{"domain", "infra", true},
		{"ports", "domain", false},
		{"ports", "usecase", true},
		{"usecase", "ports", false},
		{"usecase", "infra", true},
		{"infra", "domain", false},
		{"infra", "usecase", true},
		{"command", "infra", false},
		{"meta", "command", false},
	}
	for _, tc := range cases {
		if got := violatesRule(tc.source, tc.imported); got != tc.want {
			t.Errorf("violatesRule(%q, %q) = %v, want %v", tc.source, tc.imported, got, tc.want)
		}
	}
}
