// Where: internal/usecase/dotnet/dispatcher.go
// What: Fire-and-forget dispatch of finished commands with history logging.
// Why: Keep the log ordering and runner hand-off in one place.
package dotnet

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/sebasmonia/dotnet.el/internal/domain/cmdlog"
	"github.com/sebasmonia/dotnet.el/internal/domain/command"
	"github.com/sebasmonia/dotnet.el/internal/ports"
)

// Destination is the output destination every dispatched command is bound to.
const Destination = "dotnet"

var errRunnerNotConfigured = errors.New("runner is not configured")

// Dispatcher appends each command to the session log and starts it.
type Dispatcher struct {
	runner  ports.Runner
	history *cmdlog.Log
	log     zerolog.Logger
}

// NewDispatcher wires a runner and a session log. A nil history gets a fresh log.
func NewDispatcher(runner ports.Runner, history *cmdlog.Log, log zerolog.Logger) *Dispatcher {
	if history == nil {
		history = &cmdlog.Log{}
	}
	return &Dispatcher{runner: runner, history: history, log: log}
}

// History exposes the session log.
func (d *Dispatcher) History() *cmdlog.Log {
	return d.history
}

// Run logs cmd and starts it without waiting for it to exit.
func (d *Dispatcher) Run(cmd command.Command) (ports.Job, error) {
	if d.runner == nil {
		return nil, errRunnerNotConfigured
	}
	line := cmd.String()
	d.history.Append(cmd.Dir, line)
	d.log.Debug().Str("dir", cmd.Dir).Str("command", line).Msg("dispatch")

	job, err := d.runner.Start(cmd, Destination)
	if err != nil {
		return nil, fmt.Errorf("start %s: %w", cmd.Name, err)
	}
	return job, nil
}
