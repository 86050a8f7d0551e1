// Where: internal/command/target_cmd.go
// What: Handlers for showing and changing the current target.
// Why: Let session users inspect and reset the target without dispatching.
package command

import (
	"context"
	"fmt"
	"os"

	"github.com/sebasmonia/dotnet.el/internal/domain/target"
	"github.com/sebasmonia/dotnet.el/internal/infra/ui"
)

func runTargetShow(_ context.Context, s *session, _ CLI) error {
	current := s.resolver.Current()
	if current.IsUnset() {
		s.ui.Info("No target set.")
		return nil
	}
	s.ui.Block("🎯", "Target", []ui.KeyValue{
		{Key: "Path", Value: current.Path},
		{Key: "Kind", Value: current.Kind},
		{Key: "Directory", Value: current.Dir()},
	})
	return nil
}

func runTargetSelect(ctx context.Context, s *session, cli CLI) error {
	c, err := target.ParseConstraint(cli.Targets.Select.Constraint)
	if err != nil {
		return err
	}
	bound, err := s.resolver.GetOrPrompt(ctx, c, true)
	if err != nil {
		return err
	}
	s.ui.Success(fmt.Sprintf("Target: %s", bound.Path))
	return nil
}

func runTargetSet(_ context.Context, s *session, cli CLI) error {
	path, err := s.absolute(cli.Targets.Set.Path)
	if err != nil {
		return err
	}
	if _, err := os.Stat(path); err != nil {
		return fmt.Errorf("target file: %w", err)
	}
	bound, err := s.resolver.Set(path)
	if err != nil {
		return err
	}
	s.ui.Success(fmt.Sprintf("Target: %s", bound.Path))
	return nil
}

func runTargetClear(_ context.Context, s *session, _ CLI) error {
	s.resolver.Clear()
	s.ui.Success("Target cleared.")
	return nil
}
