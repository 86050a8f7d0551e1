// Where: internal/command/dotnet_cmds.go
// What: Handlers for the dotnet actions.
// Why: Translate parsed flags into service calls and wait or track the job.
package command

import (
	"context"
	"errors"
	"fmt"
	"strings"

	domaincommand "github.com/sebasmonia/dotnet.el/internal/domain/command"
	"github.com/sebasmonia/dotnet.el/internal/domain/target"
	"github.com/sebasmonia/dotnet.el/internal/infra/config"
	"github.com/sebasmonia/dotnet.el/internal/infra/interaction"
	"github.com/sebasmonia/dotnet.el/internal/infra/shellwords"
	"github.com/sebasmonia/dotnet.el/internal/ports"
)

var errPromptUnavailable = errors.New("value is required when not running in a terminal")

func runVerb(verb string) commandHandler {
	return func(ctx context.Context, s *session, cli CLI) error {
		svc := s.service(cli)
		actions := map[string]func(context.Context, bool) (ports.Job, error){
			"build":   svc.Build,
			"clean":   svc.Clean,
			"publish": svc.Publish,
			"restore": svc.Restore,
			"test":    svc.Test,
		}
		action, ok := actions[verb]
		if !ok {
			return fmt.Errorf("unknown verb %q", verb)
		}
		return s.finish(action(ctx, cli.Prompt))
	}
}

func runRun(ctx context.Context, s *session, cli CLI) error {
	var args []string
	if cli.Run.ArgString != "" {
		split, err := shellwords.Split(cli.Run.ArgString)
		if err != nil {
			return err
		}
		args = append(args, split...)
	}
	passthrough := cli.Run.Args
	if len(passthrough) > 0 && passthrough[0] == "--" {
		passthrough = passthrough[1:]
	}
	args = append(args, passthrough...)
	return s.finish(s.service(cli).Run(ctx, cli.Prompt, args))
}

func runAddPackage(ctx context.Context, s *session, cli CLI) error {
	pkg := cli.Add.Package
	return s.finish(s.service(cli).AddPackage(ctx, cli.Prompt, pkg.Name, pkg.Version))
}

func runRemovePackage(ctx context.Context, s *session, cli CLI) error {
	return s.finish(s.service(cli).RemovePackage(ctx, cli.Prompt, cli.Remove.Package.Name))
}

func runAddReference(ctx context.Context, s *session, cli CLI) error {
	ref, err := s.optionalPath(cli.Add.Reference.Path)
	if err != nil {
		return err
	}
	return s.finish(s.service(cli).AddReference(ctx, cli.Prompt, ref))
}

func runRemoveReference(ctx context.Context, s *session, cli CLI) error {
	ref, err := s.optionalPath(cli.Remove.Reference.Path)
	if err != nil {
		return err
	}
	return s.finish(s.service(cli).RemoveReference(ctx, cli.Prompt, ref))
}

func runListPackages(ctx context.Context, s *session, cli CLI) error {
	return s.finish(s.service(cli).ListPackages(ctx, cli.Prompt))
}

func runListReferences(ctx context.Context, s *session, cli CLI) error {
	return s.finish(s.service(cli).ListReferences(ctx, cli.Prompt))
}

func runSlnAdd(ctx context.Context, s *session, cli CLI) error {
	project, err := s.optionalPath(cli.Sln.Add.Path)
	if err != nil {
		return err
	}
	return s.finish(s.service(cli).SlnAdd(ctx, cli.Prompt, project))
}

func runSlnRemove(ctx context.Context, s *session, cli CLI) error {
	project, err := s.optionalPath(cli.Sln.Remove.Path)
	if err != nil {
		return err
	}
	return s.finish(s.service(cli).SlnRemove(ctx, cli.Prompt, project))
}

func runSlnList(ctx context.Context, s *session, cli CLI) error {
	return s.finish(s.service(cli).SlnList(ctx, cli.Prompt))
}

func runSlnNew(_ context.Context, s *session, cli CLI) error {
	return s.finish(s.service(cli).SlnNew(cli.Sln.New.Dir, cli.Sln.New.Name))
}

func runNew(_ context.Context, s *session, cli CLI) error {
	tmpl := strings.TrimSpace(cli.New.Template)
	if tmpl == "" {
		options := make([]interaction.SelectOption, len(domaincommand.ProjectTemplates))
		for i, name := range domaincommand.ProjectTemplates {
			options[i] = interaction.SelectOption{Label: name, Value: name}
		}
		picked, err := s.selectValue("Template", options)
		if err != nil {
			return fmt.Errorf("template: %w", err)
		}
		tmpl = picked
	}

	output := strings.TrimSpace(cli.New.Output)
	if output == "" {
		typed, err := s.input("Output directory", nil)
		if err != nil {
			return fmt.Errorf("output directory: %w", err)
		}
		output = typed
	}

	lang := cli.New.Lang
	if lang == "" {
		lang = s.settings.DefaultLanguage
	}
	canonical, ok := domaincommand.CanonicalLanguage(lang)
	if !ok {
		return fmt.Errorf("unsupported language %q (expected one of %s)", lang, strings.Join(domaincommand.Languages, ", "))
	}
	lang = canonical
	return s.finish(s.service(cli).New(tmpl, output, lang))
}

func runExec(ctx context.Context, s *session, cli CLI) error {
	alias, err := s.settings.Lookup(cli.Exec.Alias)
	if err != nil {
		return err
	}
	data := config.NewAliasData(s.settings)
	if cli.Verbosity != "" {
		data.Verbosity = cli.Verbosity
	}
	tokens, err := alias.Render(data)
	if err != nil {
		return err
	}
	c, err := target.ParseConstraint(alias.Constraint)
	if err != nil {
		return err
	}
	return s.finish(s.service(cli).Custom(ctx, tokens, c, cli.Prompt))
}

func runHistory(_ context.Context, s *session, _ CLI) error {
	if s.history.Len() == 0 {
		s.ui.Info("No commands dispatched in this session.")
		return nil
	}
	_, err := s.history.WriteTo(s.deps.Out)
	return err
}

// optionalPath makes a user-supplied path absolute, since dispatched commands
// run in the target's directory rather than the working directory.
func (s *session) optionalPath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return "", nil
	}
	return s.absolute(path)
}

func (s *session) canPrompt() bool {
	return s.deps.Prompter != nil && interaction.IsTerminal(s.deps.Stdin)
}

func (s *session) selectValue(title string, options []interaction.SelectOption) (string, error) {
	if !s.canPrompt() {
		return "", errPromptUnavailable
	}
	picked, err := s.deps.Prompter.SelectValue(title, options)
	if err != nil {
		return "", err
	}
	if picked == "" {
		return "", interaction.ErrAborted
	}
	return picked, nil
}

func (s *session) input(title string, suggestions []string) (string, error) {
	if !s.canPrompt() {
		return "", errPromptUnavailable
	}
	value, err := s.deps.Prompter.Input(title, suggestions)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(value) == "" {
		return "", interaction.ErrAborted
	}
	return value, nil
}
