// Where: internal/infra/locator/root.go
// What: Project-root detection by walking up to a marker entry.
// Why: Search from the repository root instead of the current directory when possible.
package locator

import (
	"os"
	"path/filepath"
)

// DefaultRootMarkers are the entries that mark a project root.
var DefaultRootMarkers = []string{".git", ".hg", ".projectile", "global.json"}

// RootDetector reports the project root for start, or false when none is known.
type RootDetector interface {
	DetectRoot(start string) (string, bool)
}

// RootDetectorFunc adapts a function to RootDetector.
type RootDetectorFunc func(start string) (string, bool)

func (f RootDetectorFunc) DetectRoot(start string) (string, bool) {
	return f(start)
}

// MarkerRootDetector locates the nearest ancestor directory containing one of Markers.
type MarkerRootDetector struct {
	Markers []string
}

// NewMarkerRootDetector returns a detector for markers, or the defaults when empty.
func NewMarkerRootDetector(markers []string) MarkerRootDetector {
	if len(markers) == 0 {
		markers = DefaultRootMarkers
	}
	return MarkerRootDetector{Markers: append([]string(nil), markers...)}
}

func (d MarkerRootDetector) DetectRoot(start string) (string, bool) {
	abs, err := filepath.Abs(start)
	if err != nil {
		return "", false
	}
	dir := filepath.Clean(abs)
	for {
		for _, marker := range d.Markers {
			if _, err := os.Stat(filepath.Join(dir, marker)); err == nil {
				return dir, true
			}
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false
}
