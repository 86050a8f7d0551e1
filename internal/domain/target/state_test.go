package target

import (
	"errors"
	"testing"
)

func TestStateBindFromUnset(t *testing.T) {
	var s State
	got, err := s.Bind("/r/Lib.csproj")
	if err != nil {
		t.Fatalf("Bind() error = %v", err)
	}
	if got.Kind != KindProject || got.Path != "/r/Lib.csproj" {
		t.Fatalf("Bind() = %+v", got)
	}
	if s.Current() != got {
		t.Fatalf("Current() = %+v, want %+v", s.Current(), got)
	}
}

func TestStateBindRejectsInvalidPath(t *testing.T) {
	var s State
	if _, err := s.Bind("/r/readme.md"); !errors.Is(err, ErrUnrecognizedTarget) {
		t.Fatalf("expected ErrUnrecognizedTarget, got %v", err)
	}
	if !s.Current().IsUnset() {
		t.Fatalf("invalid path must not persist, got %+v", s.Current())
	}
}

func TestStateBindRequiresUnset(t *testing.T) {
	var s State
	if _, err := s.Bind("/r/App.sln"); err != nil {
		t.Fatalf("Bind() error = %v", err)
	}
	if _, err := s.Bind("/r/Lib.csproj"); !errors.Is(err, ErrAlreadyBound) {
		t.Fatalf("expected ErrAlreadyBound, got %v", err)
	}
	if s.Current().Kind != KindSolution {
		t.Fatalf("rejected bind must keep current target, got %+v", s.Current())
	}
	s.Reset()
	if _, err := s.Bind("/r/Lib.csproj"); err != nil {
		t.Fatalf("Bind() after Reset error = %v", err)
	}
}

func TestStateInvalidateIfViolates(t *testing.T) {
	paths := []string{"", "/r/Lib.csproj", "/r/App.sln"}
	constraints := []Constraint{Any, ProjectOnly, SolutionOnly}

	for _, path := range paths {
		for _, c := range constraints {
			var s State
			if path != "" {
				if _, err := s.Bind(path); err != nil {
					t.Fatalf("Bind(%q) error = %v", path, err)
				}
			}
			before := s.Current()
			cleared := s.InvalidateIfViolates(c)
			after := s.Current()

			violates := !before.IsUnset() && !c.Allows(before.Kind)
			if violates {
				if !cleared || !after.IsUnset() {
					t.Fatalf("%q under %v: want Unset, got %+v (cleared=%v)", path, c, after, cleared)
				}
				continue
			}
			if cleared || after != before {
				t.Fatalf("%q under %v: want unchanged %+v, got %+v (cleared=%v)", path, c, before, after, cleared)
			}
		}
	}
}
