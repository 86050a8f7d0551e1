// Where: cmd/dotnet-el/cli.go
// What: CLI dependency wiring helpers.
// Why: Centralize construction for testability.
package main

import (
	"os"

	"github.com/sebasmonia/dotnet.el/internal/command"
	"github.com/sebasmonia/dotnet.el/internal/infra/config"
	"github.com/sebasmonia/dotnet.el/internal/infra/interaction"
)

var (
	getwd        = os.Getwd
	settingsPath = config.SettingsPath
)

// buildDependencies constructs the runtime dependencies of the CLI. The
// locator and runner are left nil so the session builds them from settings.
func buildDependencies() (command.Dependencies, error) {
	workDir, err := getwd()
	if err != nil {
		return command.Dependencies{}, err
	}
	path, err := settingsPath()
	if err != nil {
		return command.Dependencies{}, err
	}
	return command.Dependencies{
		Out:          os.Stdout,
		ErrOut:       os.Stderr,
		In:           os.Stdin,
		Stdin:        os.Stdin,
		Prompter:     interaction.HuhPrompter{},
		SettingsPath: path,
		WorkDir:      workDir,
	}, nil
}
