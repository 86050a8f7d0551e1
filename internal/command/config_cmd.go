// Where: internal/command/config_cmd.go
// What: Handlers for the config subcommands.
// Why: Show and edit settings through the locked update path.
package command

import (
	"context"
	"strings"

	"github.com/sebasmonia/dotnet.el/internal/infra/config"
	"github.com/sebasmonia/dotnet.el/internal/infra/ui"
	"github.com/sebasmonia/dotnet.el/internal/version"
)

func runConfigShow(_ context.Context, s *session, _ CLI) error {
	cfg := s.settings
	rows := []ui.KeyValue{
		{Key: "File", Value: s.settingsPath},
		{Key: "verbosity", Value: cfg.Verbosity},
		{Key: "keymap_prefix", Value: cfg.KeymapPrefix},
		{Key: "default_language", Value: cfg.DefaultLanguage},
		{Key: "root_markers", Value: listOrDefault(cfg.RootMarkers)},
		{Key: "exclude_dirs", Value: listOrDefault(cfg.ExcludeDirs)},
	}
	s.ui.Block("⚙️", "Settings", rows)

	if names := cfg.AliasNames(); len(names) > 0 {
		aliasRows := make([]ui.KeyValue, 0, len(names))
		for _, name := range names {
			alias := cfg.Aliases[name]
			aliasRows = append(aliasRows, ui.KeyValue{Key: name, Value: strings.Join(alias.Args, " ")})
		}
		s.ui.Block("🔖", "Aliases", aliasRows)
	}
	return nil
}

func runConfigSet(_ context.Context, s *session, cli CLI) error {
	key, value := cli.Config.Set.Key, cli.Config.Set.Value
	updated, err := config.UpdateSettings(s.settingsPath, func(cfg *config.Settings) error {
		return cfg.Set(key, value)
	})
	if err != nil {
		return err
	}
	s.applySettings(updated)
	s.ui.Success("Saved " + key)
	return nil
}

func runConfigPath(_ context.Context, s *session, _ CLI) error {
	s.ui.Info(s.settingsPath)
	return nil
}

// runVersion prints the version information of the CLI.
func runVersion(_ context.Context, s *session, _ CLI) error {
	s.ui.Info(version.GetVersion())
	return nil
}

func listOrDefault(values []string) string {
	if len(values) == 0 {
		return "(default)"
	}
	return strings.Join(values, ", ")
}
