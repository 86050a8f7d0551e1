// Where: internal/usecase/resolve/resolver.go
// What: Current-target resolution with constraint checks and prompting.
// Why: Own the session target so every action resolves it the same way.
package resolve

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/sebasmonia/dotnet.el/internal/domain/target"
	"github.com/sebasmonia/dotnet.el/internal/ports"
)

var errLocatorNotConfigured = errors.New("locator is not configured")

// Resolver holds the session target and resolves it on demand.
type Resolver struct {
	state   *target.State
	locator ports.Locator
	log     zerolog.Logger
}

// New returns a Resolver over state. A nil state starts a fresh session.
func New(state *target.State, locator ports.Locator, log zerolog.Logger) *Resolver {
	if state == nil {
		state = &target.State{}
	}
	return &Resolver{state: state, locator: locator, log: log}
}

// Current returns the bound target without prompting.
func (r *Resolver) Current() target.Target {
	return r.state.Current()
}

// InvalidateIfViolates clears the target when it does not satisfy c.
func (r *Resolver) InvalidateIfViolates(c target.Constraint) {
	before := r.state.Current()
	if r.state.InvalidateIfViolates(c) {
		r.log.Debug().Str("target", before.Path).Stringer("constraint", c).Msg("target invalidated")
	}
}

// GetOrPrompt returns the current target when it is bound, satisfies c and
// forcePrompt is false. Otherwise it clears the target, asks the locator and
// binds the answer. On failure the target stays unset.
func (r *Resolver) GetOrPrompt(ctx context.Context, c target.Constraint, forcePrompt bool) (target.Target, error) {
	current := r.state.Current()
	if !forcePrompt && !current.IsUnset() && c.Allows(current.Kind) {
		return current, nil
	}
	if r.locator == nil {
		return target.Target{}, errLocatorNotConfigured
	}

	r.state.Reset()
	path, err := r.locator.Locate(ctx, c, promptTitle(c))
	if err != nil {
		return target.Target{}, err
	}
	bound, err := r.state.Bind(path)
	if err != nil {
		return target.Target{}, fmt.Errorf("bind target: %w", err)
	}
	if !c.Allows(bound.Kind) {
		r.state.Reset()
		return target.Target{}, fmt.Errorf("%w: %s is not a %s", target.ErrUnrecognizedTarget, path, c)
	}
	r.log.Debug().Str("target", bound.Path).Stringer("kind", bound.Kind).Msg("target bound")
	return bound, nil
}

// Set binds path explicitly, replacing any current target.
func (r *Resolver) Set(path string) (target.Target, error) {
	r.state.Reset()
	bound, err := r.state.Bind(path)
	if err != nil {
		return target.Target{}, err
	}
	return bound, nil
}

// SetLocator replaces the locator used by later prompts. The bound target is kept.
func (r *Resolver) SetLocator(locator ports.Locator) {
	r.locator = locator
}

// Clear resets the target to unset.
func (r *Resolver) Clear() {
	r.state.Reset()
}

func promptTitle(c target.Constraint) string {
	switch c {
	case target.ProjectOnly:
		return "Select project"
	case target.SolutionOnly:
		return "Select solution"
	default:
		return "Select project or solution"
	}
}
