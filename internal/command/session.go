// Where: internal/command/session.go
// What: Per-session state shared by command handlers.
// Why: Keep the target and command log alive across commands in session mode.
package command

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/rs/zerolog"
	"github.com/sebasmonia/dotnet.el/internal/domain/cmdlog"
	"github.com/sebasmonia/dotnet.el/internal/infra/config"
	"github.com/sebasmonia/dotnet.el/internal/infra/locator"
	"github.com/sebasmonia/dotnet.el/internal/infra/logging"
	"github.com/sebasmonia/dotnet.el/internal/infra/runner"
	"github.com/sebasmonia/dotnet.el/internal/infra/ui"
	"github.com/sebasmonia/dotnet.el/internal/ports"
	"github.com/sebasmonia/dotnet.el/internal/usecase/dotnet"
	"github.com/sebasmonia/dotnet.el/internal/usecase/resolve"
)

var getwd = os.Getwd

// session owns the target, the command log and the loaded settings. In
// one-shot mode every dispatched job is waited for before returning.
type session struct {
	deps         Dependencies
	settings     config.Settings
	settingsPath string
	workDir      string
	ui           ui.UserInterface
	log          zerolog.Logger
	locator      ports.Locator
	resolver     *resolve.Resolver
	history      *cmdlog.Log
	interactive  bool

	mu   sync.Mutex
	jobs []ports.Job
}

func newSession(cli CLI, deps Dependencies, interactive bool) (*session, error) {
	path := deps.SettingsPath
	if path == "" {
		p, err := config.SettingsPath()
		if err != nil {
			return nil, err
		}
		path = p
	}
	settings, err := config.LoadSettings(path)
	if err != nil {
		return nil, err
	}

	workDir := deps.WorkDir
	if workDir == "" {
		wd, err := getwd()
		if err != nil {
			return nil, fmt.Errorf("get working directory: %w", err)
		}
		workDir = wd
	}

	log := logging.New(cli.Debug, deps.ErrOut)
	loc := deps.Locator
	if loc == nil {
		loc = newLocator(settings, deps, workDir, log)
	}

	history := &cmdlog.Log{}
	if cli.EchoLog {
		history.Mirror = deps.ErrOut
	}

	return &session{
		deps:         deps,
		settings:     settings,
		settingsPath: path,
		workDir:      workDir,
		ui:           newUI(deps.Out, emojiEnabled(deps.Out, cli.NoEmoji)),
		log:          log,
		locator:      loc,
		resolver:     resolve.New(nil, loc, log),
		history:      history,
		interactive:  interactive,
	}, nil
}

// execute runs one parsed command and converts its error into an exit code.
func (s *session) execute(ctx context.Context, command string, cli CLI) int {
	handler, ok := dispatchCommand(command)
	if !ok {
		s.ui.Warn("unknown command")
		return 1
	}
	if cli.Target != "" {
		if err := s.bindExplicit(cli.Target); err != nil {
			return exitWithError(s.deps.Out, err)
		}
	}
	if err := handler(ctx, s, cli); err != nil {
		if isCancelled(err) {
			s.ui.Warn("Cancelled.")
			return 1
		}
		return exitWithError(s.deps.Out, err)
	}
	return 0
}

func newLocator(settings config.Settings, deps Dependencies, workDir string, log zerolog.Logger) *locator.Locator {
	return &locator.Locator{
		Root:        locator.NewMarkerRootDetector(settings.RootMarkers),
		Prompter:    deps.Prompter,
		ExcludeDirs: settings.ExcludeDirs,
		Stdin:       deps.Stdin,
		WorkDir:     workDir,
		Log:         log,
	}
}

// applySettings installs updated settings. The locator is rebuilt so later
// picks in the same session see new root markers and excluded directories;
// an injected locator is left alone.
func (s *session) applySettings(settings config.Settings) {
	s.settings = settings
	if s.deps.Locator != nil {
		return
	}
	loc := newLocator(settings, s.deps, s.workDir, s.log)
	s.locator = loc
	s.resolver.SetLocator(loc)
}

func (s *session) bindExplicit(path string) error {
	abs, err := s.absolute(path)
	if err != nil {
		return err
	}
	if _, err := s.resolver.Set(abs); err != nil {
		return err
	}
	return nil
}

func (s *session) absolute(path string) (string, error) {
	if filepath.IsAbs(path) {
		return filepath.Clean(path), nil
	}
	return filepath.Join(s.workDir, path), nil
}

// service builds the action service for one command. The resolver and the
// command log are shared; program, verbosity and runner follow the flags.
func (s *session) service(cli CLI) *dotnet.Service {
	verbosity := cli.Verbosity
	if verbosity == "" {
		verbosity = s.settings.Verbosity
	}
	dispatcher := dotnet.NewDispatcher(s.runner(cli), s.history, s.log)
	return dotnet.NewService(s.resolver, dispatcher, s.locator, dotnet.Options{
		Program:   cli.Dotnet,
		Verbosity: verbosity,
		WorkDir:   s.workDir,
	})
}

func (s *session) runner(cli CLI) ports.Runner {
	switch {
	case cli.DryRun:
		return runner.DryRunRunner{Out: s.deps.Out}
	case s.deps.Runner != nil:
		return s.deps.Runner
	}
	var stdin io.Reader
	if !s.interactive {
		stdin = s.deps.Stdin
	}
	return runner.ExecRunner{
		Out:    s.deps.Out,
		ErrOut: s.deps.ErrOut,
		Stdin:  stdin,
		Log:    s.log,
	}
}

// finish waits for the job in one-shot mode and tracks it in session mode.
func (s *session) finish(job ports.Job, err error) error {
	if err != nil {
		return err
	}
	if s.interactive {
		s.mu.Lock()
		s.jobs = append(s.jobs, job)
		s.mu.Unlock()
		return nil
	}
	return job.Wait()
}

// drain waits for every background job started in session mode.
func (s *session) drain() {
	s.mu.Lock()
	jobs := s.jobs
	s.jobs = nil
	s.mu.Unlock()
	for _, job := range jobs {
		if err := job.Wait(); err != nil {
			s.log.Debug().Err(err).Msg("background job failed")
		}
	}
}
