// Where: internal/command/app.go
// What: CLI entrypoint logic.
// Why: Provide a testable command dispatcher.
package command

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/joho/godotenv"
	"github.com/sebasmonia/dotnet.el/internal/infra/interaction"
	"github.com/sebasmonia/dotnet.el/internal/meta"
	"github.com/sebasmonia/dotnet.el/internal/ports"
)

// Dependencies holds the injected collaborators of a CLI run. Zero values
// select the production implementations.
type Dependencies struct {
	Out          io.Writer
	ErrOut       io.Writer
	In           io.Reader // session-mode input
	Stdin        *os.File  // terminal checks and child process stdin
	Prompter     interaction.Prompter
	Locator      ports.Locator
	Runner       ports.Runner
	SettingsPath string
	WorkDir      string
}

// CLI defines the command-line interface structure parsed by Kong.
type CLI struct {
	Target    string `short:"t" help:"Project or solution file to use as the target"`
	Prompt    bool   `short:"p" help:"Prompt for the target even when one is set"`
	Verbosity string `env:"DOTNET_EL_VERBOSITY" help:"MSBuild verbosity passed as -v (default from settings)"`
	Dotnet    string `name:"dotnet" env:"DOTNET_EL_DOTNET" default:"dotnet" help:"dotnet executable"`
	EnvFile   string `name:"env-file" help:"Path to .env file"`
	Debug     bool   `help:"Write diagnostic logs to stderr"`
	DryRun    bool   `name:"dry-run" help:"Print the working directory and command instead of running it"`
	EchoLog   bool   `name:"echo-log" help:"Mirror the command log to stderr"`
	NoEmoji   bool   `name:"no-emoji" help:"Disable emoji output"`

	Build   VerbCmd    `cmd:"" help:"dotnet build the target"`
	Clean   VerbCmd    `cmd:"" help:"dotnet clean the target"`
	Publish VerbCmd    `cmd:"" help:"dotnet publish the target"`
	Restore VerbCmd    `cmd:"" help:"dotnet restore the target"`
	Test    VerbCmd    `cmd:"" help:"dotnet test the target"`
	Run     RunCmd     `cmd:"" help:"dotnet run a project"`
	Add     AddCmd     `cmd:"" help:"Add a package or project reference"`
	Remove  RemoveCmd  `cmd:"" help:"Remove a package or project reference"`
	List    ListCmd    `cmd:"" help:"List packages or project references"`
	Sln     SlnCmd     `cmd:"" help:"Manage solution files"`
	New     NewCmd     `cmd:"" help:"Create a project from a template"`
	Targets TargetCmd  `cmd:"" name:"target" help:"Show or change the current target"`
	Exec    ExecCmd    `cmd:"" help:"Run a configured alias against the target"`
	History struct{}   `cmd:"" help:"Print the command log of this session"`
	Shell   struct{}   `cmd:"" help:"Start an interactive session that keeps the target"`
	Config  ConfigCmd  `cmd:"" help:"Show or edit settings"`
	Version VersionCmd `cmd:"" help:"Show version information"`
}

type (
	VerbCmd struct{}

	RunCmd struct {
		ArgString string   `name:"args" help:"Arguments for the program, split like a shell would"`
		Args      []string `arg:"" optional:"" passthrough:"" help:"Arguments for the program after --"`
	}

	AddCmd struct {
		Package   AddPackageCmd `cmd:"" help:"dotnet add package"`
		Reference ReferenceCmd  `cmd:"" help:"dotnet add reference"`
	}

	RemoveCmd struct {
		Package   RemovePackageCmd `cmd:"" help:"dotnet remove package"`
		Reference ReferenceCmd     `cmd:"" help:"dotnet remove reference"`
	}

	AddPackageCmd struct {
		Name    string `arg:"" help:"Package id"`
		Version string `help:"Package version"`
	}

	RemovePackageCmd struct {
		Name string `arg:"" help:"Package id"`
	}

	ReferenceCmd struct {
		Path string `arg:"" optional:"" help:"Referenced project (prompted when omitted)"`
	}

	ListCmd struct {
		Packages   struct{} `cmd:"" help:"dotnet list package"`
		References struct{} `cmd:"" help:"dotnet list reference"`
	}

	SlnCmd struct {
		Add    SlnMemberCmd `cmd:"" help:"Add a project to the solution"`
		Remove SlnMemberCmd `cmd:"" help:"Remove a project from the solution"`
		List   struct{}     `cmd:"" help:"List the projects in the solution"`
		New    SlnNewCmd    `cmd:"" help:"Create a solution file"`
	}

	SlnMemberCmd struct {
		Path string `arg:"" optional:"" help:"Project file (prompted when omitted)"`
	}

	SlnNewCmd struct {
		Dir  string `arg:"" help:"Output directory"`
		Name string `short:"n" help:"Solution name"`
	}

	NewCmd struct {
		Template string `arg:"" optional:"" help:"Template short name (prompted when omitted)"`
		Output   string `short:"o" help:"Output directory (prompted when omitted)"`
		Lang     string `name:"lang" help:"Language (default from settings)"`
	}

	TargetCmd struct {
		Show   struct{}        `cmd:"" help:"Show the current target"`
		Select TargetSelectCmd `cmd:"" help:"Pick a new target"`
		Set    TargetSetCmd    `cmd:"" help:"Use a file as the target"`
		Clear  struct{}        `cmd:"" help:"Forget the current target"`
	}

	TargetSelectCmd struct {
		Constraint string `short:"c" default:"any" enum:"any,project,solution" help:"Kind of file to offer"`
	}

	TargetSetCmd struct {
		Path string `arg:"" help:"Project or solution file"`
	}

	ExecCmd struct {
		Alias string `arg:"" help:"Alias name from settings"`
	}

	ConfigCmd struct {
		Show ConfigShowCmd `cmd:"" help:"Show effective settings"`
		Set  ConfigSetCmd  `cmd:"" help:"Change a setting"`
		Path struct{}      `cmd:"" help:"Print the settings file path"`
	}

	ConfigShowCmd struct{}

	ConfigSetCmd struct {
		Key   string `arg:"" help:"verbosity, keymap_prefix, default_language, root_markers or exclude_dirs"`
		Value string `arg:"" optional:"" help:"New value; lists are comma separated"`
	}

	VersionCmd struct{}
)

// Run is the main entry point for CLI command execution.
// It parses the command-line arguments, identifies the requested command,
// and dispatches to the appropriate handler. Returns 0 on success, 1 on error.
func Run(args []string, deps Dependencies) int {
	deps = withDefaults(deps)
	out := deps.Out

	if len(args) == 0 {
		return runNoArgs(out)
	}

	cli := CLI{}
	kctx, exit, err := parse(&cli, args, deps)
	if exit != nil {
		return exit.code
	}
	if err != nil {
		return handleParseError(err, out)
	}

	loadEnvFile(cli.EnvFile, deps)

	s, err := newSession(cli, deps, false)
	if err != nil {
		return exitWithError(out, err)
	}
	return s.execute(context.Background(), kctx.Command(), cli)
}

func withDefaults(deps Dependencies) Dependencies {
	if deps.Out == nil {
		deps.Out = os.Stdout
	}
	if deps.ErrOut == nil {
		deps.ErrOut = os.Stderr
	}
	if deps.Stdin == nil {
		deps.Stdin = os.Stdin
	}
	if deps.In == nil {
		deps.In = deps.Stdin
	}
	if deps.Prompter == nil {
		deps.Prompter = interaction.HuhPrompter{}
	}
	return deps
}

// exitRequest carries the code passed to kong's exit hook, so --help inside a
// session does not terminate the process.
type exitRequest struct{ code int }

func parse(cli *CLI, args []string, deps Dependencies) (kctx *kong.Context, exit *exitRequest, err error) {
	parser, err := kong.New(cli,
		kong.Name(meta.AppName),
		kong.Description("Run dotnet CLI commands against a remembered project or solution."),
		kong.Writers(deps.Out, deps.ErrOut),
		kong.ConfigureHelp(kong.HelpOptions{Compact: true}),
		kong.Exit(func(code int) { panic(exitRequest{code: code}) }),
	)
	if err != nil {
		return nil, nil, err
	}

	defer func() {
		if r := recover(); r != nil {
			if req, ok := r.(exitRequest); ok {
				kctx, exit, err = nil, &req, nil
				return
			}
			panic(r)
		}
	}()
	kctx, err = parser.Parse(args)
	return kctx, nil, err
}

// loadEnvFile loads the given env file, or .env in the working directory.
func loadEnvFile(path string, deps Dependencies) {
	warn := newUI(deps.ErrOut, false).Warn
	if path != "" {
		if err := godotenv.Load(path); err != nil {
			warn(fmt.Sprintf("failed to load env file %s: %v", path, err))
		}
		return
	}
	if _, err := os.Stat(meta.EnvFile); err == nil {
		if err := godotenv.Load(); err != nil {
			warn(fmt.Sprintf("failed to load %s: %v", meta.EnvFile, err))
		}
	}
}

type commandHandler func(ctx context.Context, s *session, cli CLI) error

func dispatchCommand(command string) (commandHandler, bool) {
	exactHandlers := map[string]commandHandler{
		"build":            runVerb("build"),
		"clean":            runVerb("clean"),
		"publish":          runVerb("publish"),
		"restore":          runVerb("restore"),
		"test":             runVerb("test"),
		"run":              runRun,
		"add package":      runAddPackage,
		"add reference":    runAddReference,
		"remove package":   runRemovePackage,
		"remove reference": runRemoveReference,
		"list packages":    runListPackages,
		"list references":  runListReferences,
		"sln add":          runSlnAdd,
		"sln remove":       runSlnRemove,
		"sln list":         runSlnList,
		"sln new":          runSlnNew,
		"new":              runNew,
		"target show":      runTargetShow,
		"target select":    runTargetSelect,
		"target set":       runTargetSet,
		"target clear":     runTargetClear,
		"exec":             runExec,
		"history":          runHistory,
		"shell":            runShell,
		"config show":      runConfigShow,
		"config set":       runConfigSet,
		"config path":      runConfigPath,
		"version":          runVersion,
	}
	handler, ok := exactHandlers[commandKey(command)]
	return handler, ok
}

// commandKey drops positional placeholders such as "<name>" from a kong
// command path, so optional arguments map to one handler.
func commandKey(command string) string {
	fields := strings.Fields(command)
	kept := fields[:0]
	for _, f := range fields {
		if strings.HasPrefix(f, "<") {
			continue
		}
		kept = append(kept, f)
	}
	return strings.Join(kept, " ")
}

// runNoArgs prints a short usage summary.
func runNoArgs(out io.Writer) int {
	ui := newUI(out, false)
	cmd := meta.AppName
	ui.Info("Usage:")
	ui.Info(fmt.Sprintf("  %s [--target <file>] <build|clean|publish|restore|test|run> [flags]", cmd))
	ui.Info(fmt.Sprintf("  %s shell", cmd))
	ui.Info("")
	ui.Info(fmt.Sprintf("Try: %s --help", cmd))
	return 0
}

// handleParseError provides user-friendly error messages for parse failures.
func handleParseError(err error, out io.Writer) int {
	msg := err.Error()
	if strings.Contains(msg, "expected string value") {
		ui := newUI(out, false)
		switch {
		case strings.Contains(msg, "--target"):
			ui.Warn("`-t/--target` expects a value. Provide a .csproj or .sln path, or omit the flag to be prompted.")
			ui.Info(fmt.Sprintf("Example: %s -t ./src/App/App.csproj build", meta.AppName))
			return 1
		case strings.Contains(msg, "--env-file"):
			ui.Warn("`--env-file` expects a value. Provide a file path.")
			return 1
		}
	}
	return exitWithError(out, err)
}
