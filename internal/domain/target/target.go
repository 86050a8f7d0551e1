// Where: internal/domain/target/target.go
// What: Target kinds, constraints, and path classification.
// Why: Keep the project/solution vocabulary free of filesystem and prompt concerns.
package target

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

const (
	ProjectExt  = ".csproj"
	SolutionExt = ".sln"
)

var (
	ErrUnrecognizedTarget = errors.New("unrecognized target")
	ErrUnknownConstraint  = errors.New("unknown target constraint")
)

// Kind classifies a target path.
type Kind int

const (
	KindUnset Kind = iota
	KindProject
	KindSolution
)

func (k Kind) String() string {
	switch k {
	case KindProject:
		return "project"
	case KindSolution:
		return "solution"
	default:
		return "unset"
	}
}

// Constraint restricts which kinds an operation accepts.
type Constraint int

const (
	Any Constraint = iota
	ProjectOnly
	SolutionOnly
)

func (c Constraint) String() string {
	switch c {
	case ProjectOnly:
		return "project"
	case SolutionOnly:
		return "solution"
	default:
		return "any"
	}
}

// ParseConstraint maps the settings/flag vocabulary onto a Constraint.
// An empty value means Any.
func ParseConstraint(value string) (Constraint, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", "any":
		return Any, nil
	case "project", "csproj":
		return ProjectOnly, nil
	case "solution", "sln":
		return SolutionOnly, nil
	default:
		return Any, fmt.Errorf("%w: %q", ErrUnknownConstraint, value)
	}
}

// Allows reports whether a bound target of kind k satisfies the constraint.
// Unset never satisfies a constraint.
func (c Constraint) Allows(k Kind) bool {
	switch k {
	case KindProject:
		return c == Any || c == ProjectOnly
	case KindSolution:
		return c == Any || c == SolutionOnly
	default:
		return false
	}
}

// Extensions is the file filter the locator applies for this constraint.
func (c Constraint) Extensions() []string {
	switch c {
	case ProjectOnly:
		return []string{ProjectExt}
	case SolutionOnly:
		return []string{SolutionExt}
	default:
		return []string{ProjectExt, SolutionExt}
	}
}

// Classify returns the kind implied by the path suffix.
func Classify(path string) (Kind, error) {
	switch strings.ToLower(filepath.Ext(strings.TrimSpace(path))) {
	case ProjectExt:
		return KindProject, nil
	case SolutionExt:
		return KindSolution, nil
	default:
		return KindUnset, fmt.Errorf("%w: %s (expected %s or %s)", ErrUnrecognizedTarget, path, ProjectExt, SolutionExt)
	}
}

// Target is either unset or a path to a project or solution file.
type Target struct {
	Path string
	Kind Kind
}

// New classifies path and returns a bound Target.
func New(path string) (Target, error) {
	path = strings.TrimSpace(path)
	kind, err := Classify(path)
	if err != nil {
		return Target{}, err
	}
	return Target{Path: path, Kind: kind}, nil
}

// IsUnset reports whether no file is bound.
func (t Target) IsUnset() bool {
	return t.Kind == KindUnset
}

// Dir is the working directory for commands run against the target.
func (t Target) Dir() string {
	if t.IsUnset() {
		return ""
	}
	return filepath.Dir(t.Path)
}

func (t Target) String() string {
	if t.IsUnset() {
		return "<unset>"
	}
	return fmt.Sprintf("%s (%s)", t.Path, t.Kind)
}
