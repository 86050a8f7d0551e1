// Where: internal/command/shell.go
// What: Interactive session loop.
// Why: Keep one target and one command log across many commands.
package command

import (
	"bufio"
	"context"
	"fmt"
	"strings"

	"github.com/sebasmonia/dotnet.el/internal/infra/shellwords"
	"github.com/sebasmonia/dotnet.el/internal/meta"
)

const shellPrompt = meta.AppName + "> "

func runShell(ctx context.Context, s *session, _ CLI) error {
	if s.interactive {
		s.ui.Warn("Already in a session.")
		return nil
	}
	s.interactive = true
	defer func() {
		s.drain()
		s.interactive = false
	}()

	s.ui.Info("Type a command (for example `build`), `help`, or `exit`.")
	scanner := bufio.NewScanner(s.deps.In)
	for {
		fmt.Fprint(s.deps.Out, shellPrompt)
		if !scanner.Scan() {
			fmt.Fprintln(s.deps.Out)
			break
		}
		if done := s.runLine(ctx, scanner.Text()); done {
			break
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read session input: %w", err)
	}
	return nil
}

// runLine executes one session line and reports whether the session should end.
func (s *session) runLine(ctx context.Context, line string) bool {
	line = strings.TrimSpace(line)
	if line == "" || strings.HasPrefix(line, "#") {
		return false
	}
	args, err := shellwords.Split(line)
	if err != nil {
		exitWithError(s.deps.Out, err)
		return false
	}
	if len(args) == 0 {
		return false
	}
	switch args[0] {
	case "exit", "quit":
		return true
	case "help":
		args = append([]string{"--help"}, args[1:]...)
	}

	cli := CLI{}
	kctx, exit, err := parse(&cli, args, s.deps)
	if exit != nil {
		return false
	}
	if err != nil {
		handleParseError(err, s.deps.Out)
		return false
	}
	s.execute(ctx, kctx.Command(), cli)
	return false
}
