// Where: internal/domain/target/state.go
// What: Session-scoped holder of the current target.
// Why: Replace the editor-global variable with an explicit state machine (Unset <-> Bound).
package target

import (
	"errors"
	"fmt"
)

var ErrAlreadyBound = errors.New("target already bound")

// State holds the single current target of a session.
// It is not safe for concurrent use; a session touches it from one goroutine.
type State struct {
	current Target
}

// Current returns the bound target, or an unset Target.
func (s *State) Current() Target {
	return s.current
}

// Bind moves Unset -> Bound. Binding over a bound target is rejected so that a
// kind change always passes through Unset.
func (s *State) Bind(path string) (Target, error) {
	if !s.current.IsUnset() {
		return s.current, fmt.Errorf("%w: %s", ErrAlreadyBound, s.current.Path)
	}
	t, err := New(path)
	if err != nil {
		return Target{}, err
	}
	s.current = t
	return t, nil
}

// Reset moves any state to Unset.
func (s *State) Reset() {
	s.current = Target{}
}

// InvalidateIfViolates resets the target when it does not satisfy c.
// It reports whether the target was cleared.
func (s *State) InvalidateIfViolates(c Constraint) bool {
	if s.current.IsUnset() || c.Allows(s.current.Kind) {
		return false
	}
	s.Reset()
	return true
}
