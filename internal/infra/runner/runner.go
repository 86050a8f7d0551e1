// Where: internal/infra/runner/runner.go
// What: Process runner that starts dispatched commands without blocking.
// Why: Hand argv to os/exec directly so no shell ever re-parses a command.
package runner

import (
	"fmt"
	"io"
	"os"
	"os/exec"

	"github.com/rs/zerolog"
	"github.com/sebasmonia/dotnet.el/internal/domain/command"
	"github.com/sebasmonia/dotnet.el/internal/ports"
)

// Sink is the pair of writers a named output destination streams to.
type Sink struct {
	Out    io.Writer
	ErrOut io.Writer
}

// ExecRunner starts commands with os/exec. Output goes to the sink registered
// for the destination, or to Out/ErrOut when none is.
type ExecRunner struct {
	Out    io.Writer
	ErrOut io.Writer
	Stdin  io.Reader
	Sinks  map[string]Sink
	Env    []string // appended to the inherited environment
	Log    zerolog.Logger
}

func (r ExecRunner) Start(cmd command.Command, destination string) (ports.Job, error) {
	sink := r.sink(destination)
	name := cmd.Name
	if name == "" {
		name = command.Program
	}
	proc := exec.Command(name, cmd.Argv()...)
	proc.Dir = cmd.Dir
	proc.Stdout = sink.Out
	proc.Stderr = sink.ErrOut
	proc.Stdin = r.Stdin
	if len(r.Env) > 0 {
		proc.Env = append(os.Environ(), r.Env...)
	}
	if err := proc.Start(); err != nil {
		return nil, fmt.Errorf("run %s: %w", name, err)
	}
	r.Log.Debug().Int("pid", proc.Process.Pid).Str("destination", destination).Msg("process started")

	job := &execJob{done: make(chan struct{})}
	go func() {
		defer close(job.done)
		if err := proc.Wait(); err != nil {
			job.err = fmt.Errorf("run %s: %w", name, err)
		}
	}()
	return job, nil
}

func (r ExecRunner) sink(destination string) Sink {
	sink, ok := r.Sinks[destination]
	if !ok {
		sink = Sink{Out: r.Out, ErrOut: r.ErrOut}
	}
	if sink.Out == nil {
		sink.Out = os.Stdout
	}
	if sink.ErrOut == nil {
		sink.ErrOut = os.Stderr
	}
	return sink
}

type execJob struct {
	done chan struct{}
	err  error
}

// Wait blocks until the process exits and reports how it ended.
func (j *execJob) Wait() error {
	<-j.done
	return j.err
}

// DryRunRunner prints the directory and command instead of running it.
type DryRunRunner struct {
	Out io.Writer
}

func (r DryRunRunner) Start(cmd command.Command, _ string) (ports.Job, error) {
	out := r.Out
	if out == nil {
		out = os.Stdout
	}
	if _, err := fmt.Fprintf(out, "%s\n%s\n", cmd.Dir, cmd.String()); err != nil {
		return nil, fmt.Errorf("write dry run: %w", err)
	}
	return doneJob{}, nil
}

type doneJob struct{}

func (doneJob) Wait() error { return nil }
