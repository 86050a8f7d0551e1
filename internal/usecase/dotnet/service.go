// Where: internal/usecase/dotnet/service.go
// What: Target-aware dotnet actions built on the resolver and dispatcher.
// Why: Map each user action to a template, a constraint, and a dispatch.
package dotnet

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/sebasmonia/dotnet.el/internal/domain/command"
	"github.com/sebasmonia/dotnet.el/internal/domain/target"
	"github.com/sebasmonia/dotnet.el/internal/ports"
	"github.com/sebasmonia/dotnet.el/internal/usecase/resolve"
)

var (
	errPackageNameRequired  = errors.New("package name is required")
	errTemplateNameRequired = errors.New("template name is required")
	errOutputDirRequired    = errors.New("output directory is required")
	errLocatorNotConfigured = errors.New("locator is not configured")
)

// Options are the pass-through settings applied to every command.
type Options struct {
	Program   string
	Verbosity string
	WorkDir   string
}

// Service exposes one method per dotnet action.
type Service struct {
	resolver   *resolve.Resolver
	dispatcher *Dispatcher
	locator    ports.Locator
	opts       Options
}

// NewService builds a Service. The locator is also used for secondary picks
// (references, solution members) that never touch the current target.
func NewService(resolver *resolve.Resolver, dispatcher *Dispatcher, locator ports.Locator, opts Options) *Service {
	return &Service{resolver: resolver, dispatcher: dispatcher, locator: locator, opts: opts}
}

// Resolver returns the session resolver.
func (s *Service) Resolver() *resolve.Resolver {
	return s.resolver
}

// Dispatcher returns the session dispatcher.
func (s *Service) Dispatcher() *Dispatcher {
	return s.dispatcher
}

// Targeted resolves the target for c, expands tpl with it and dispatches the result.
func (s *Service) Targeted(ctx context.Context, tpl command.Template, c target.Constraint, force bool) (ports.Job, error) {
	t, err := s.resolveTarget(ctx, c, force)
	if err != nil {
		return nil, err
	}
	return s.dispatchTemplate(tpl, t)
}

// Plain dispatches a command that carries no target.
func (s *Service) Plain(cmd command.Command) (ports.Job, error) {
	return s.dispatcher.Run(cmd)
}

func (s *Service) resolveTarget(ctx context.Context, c target.Constraint, force bool) (target.Target, error) {
	if c != target.Any {
		s.resolver.InvalidateIfViolates(c)
	}
	t, err := s.resolver.GetOrPrompt(ctx, c, force)
	if err != nil {
		return target.Target{}, fmt.Errorf("resolve target: %w", err)
	}
	return t, nil
}

func (s *Service) dispatchTemplate(tpl command.Template, t target.Target) (ports.Job, error) {
	cmd, err := tpl.Expand(t.Path)
	if err != nil {
		return nil, err
	}
	return s.dispatcher.Run(cmd)
}

func (s *Service) builder() *command.Builder {
	return command.New(s.opts.Program)
}

// verbose builds the "<verb> -v <level> <target>" shape shared by build-like verbs.
func (s *Service) verbose(ctx context.Context, verb string, force bool) (ports.Job, error) {
	tpl, err := s.builder().Verb(verb).Verbosity(s.opts.Verbosity).Target().Template()
	if err != nil {
		return nil, err
	}
	return s.Targeted(ctx, tpl, target.Any, force)
}

func (s *Service) Build(ctx context.Context, force bool) (ports.Job, error) {
	return s.verbose(ctx, "build", force)
}

func (s *Service) Clean(ctx context.Context, force bool) (ports.Job, error) {
	return s.verbose(ctx, "clean", force)
}

func (s *Service) Publish(ctx context.Context, force bool) (ports.Job, error) {
	return s.verbose(ctx, "publish", force)
}

func (s *Service) Restore(ctx context.Context, force bool) (ports.Job, error) {
	return s.verbose(ctx, "restore", force)
}

func (s *Service) Test(ctx context.Context, force bool) (ports.Job, error) {
	return s.verbose(ctx, "test", force)
}

// Run starts the project with `dotnet run --project`, forwarding args after "--".
func (s *Service) Run(ctx context.Context, force bool, args []string) (ports.Job, error) {
	b := s.builder().Verb("run").Flag("--project").Target()
	if len(args) > 0 {
		b.Flag("--").Arg(args...)
	}
	tpl, err := b.Template()
	if err != nil {
		return nil, err
	}
	return s.Targeted(ctx, tpl, target.ProjectOnly, force)
}

// AddPackage runs `dotnet add <project> package <name> [--version v]`.
func (s *Service) AddPackage(ctx context.Context, force bool, name, version string) (ports.Job, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, errPackageNameRequired
	}
	tpl, err := s.builder().Verb("add").Target().Verb("package").Arg(name).Option("--version", version).Template()
	if err != nil {
		return nil, err
	}
	return s.Targeted(ctx, tpl, target.ProjectOnly, force)
}

// RemovePackage runs `dotnet remove <project> package <name>`.
func (s *Service) RemovePackage(ctx context.Context, force bool, name string) (ports.Job, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, errPackageNameRequired
	}
	tpl, err := s.builder().Verb("remove").Target().Verb("package").Arg(name).Template()
	if err != nil {
		return nil, err
	}
	return s.Targeted(ctx, tpl, target.ProjectOnly, force)
}

// AddReference runs `dotnet add <project> reference <ref>`. An empty ref is
// picked from the project files under the search root.
func (s *Service) AddReference(ctx context.Context, force bool, ref string) (ports.Job, error) {
	return s.projectMember(ctx, force, target.ProjectOnly, "add", "reference", ref, "Select project to reference")
}

// RemoveReference runs `dotnet remove <project> reference <ref>`.
func (s *Service) RemoveReference(ctx context.Context, force bool, ref string) (ports.Job, error) {
	return s.projectMember(ctx, force, target.ProjectOnly, "remove", "reference", ref, "Select reference to remove")
}

// ListPackages runs `dotnet list <project> package`.
func (s *Service) ListPackages(ctx context.Context, force bool) (ports.Job, error) {
	return s.list(ctx, force, "package")
}

// ListReferences runs `dotnet list <project> reference`.
func (s *Service) ListReferences(ctx context.Context, force bool) (ports.Job, error) {
	return s.list(ctx, force, "reference")
}

func (s *Service) list(ctx context.Context, force bool, what string) (ports.Job, error) {
	tpl, err := s.builder().Verb("list").Target().Verb(what).Template()
	if err != nil {
		return nil, err
	}
	return s.Targeted(ctx, tpl, target.ProjectOnly, force)
}

// SlnAdd runs `dotnet sln <solution> add <project>`.
func (s *Service) SlnAdd(ctx context.Context, force bool, project string) (ports.Job, error) {
	return s.solutionMember(ctx, force, "add", project, "Select project to add")
}

// SlnRemove runs `dotnet sln <solution> remove <project>`.
func (s *Service) SlnRemove(ctx context.Context, force bool, project string) (ports.Job, error) {
	return s.solutionMember(ctx, force, "remove", project, "Select project to remove")
}

// SlnList runs `dotnet sln <solution> list`.
func (s *Service) SlnList(ctx context.Context, force bool) (ports.Job, error) {
	tpl, err := s.builder().Verb("sln").Target().Verb("list").Template()
	if err != nil {
		return nil, err
	}
	return s.Targeted(ctx, tpl, target.SolutionOnly, force)
}

// SlnNew runs `dotnet new sln -o <dir> [-n <name>]` in the working directory.
func (s *Service) SlnNew(dir, name string) (ports.Job, error) {
	if strings.TrimSpace(dir) == "" {
		return nil, errOutputDirRequired
	}
	cmd, err := s.builder().Verb("new", "sln").Option("-o", dir).Option("-n", name).Plain(s.opts.WorkDir)
	if err != nil {
		return nil, err
	}
	return s.Plain(cmd)
}

// New runs `dotnet new <template> -o <dir> -lang <lang>` in the working directory.
func (s *Service) New(templateName, dir, lang string) (ports.Job, error) {
	if strings.TrimSpace(templateName) == "" {
		return nil, errTemplateNameRequired
	}
	if strings.TrimSpace(dir) == "" {
		return nil, errOutputDirRequired
	}
	cmd, err := s.builder().Verb("new").Arg(templateName).Option("-o", dir).Option("-lang", lang).Plain(s.opts.WorkDir)
	if err != nil {
		return nil, err
	}
	return s.Plain(cmd)
}

// Custom dispatches user-defined tokens where the "%s" token is the target.
func (s *Service) Custom(ctx context.Context, tokens []string, c target.Constraint, force bool) (ports.Job, error) {
	tpl, err := command.ParseTemplate(s.opts.Program, tokens)
	if err != nil {
		return nil, err
	}
	return s.Targeted(ctx, tpl, c, force)
}

func (s *Service) projectMember(ctx context.Context, force bool, c target.Constraint, verb, noun, member, title string) (ports.Job, error) {
	t, err := s.resolveTarget(ctx, c, force)
	if err != nil {
		return nil, err
	}
	if member, err = s.pickMember(ctx, member, title); err != nil {
		return nil, err
	}
	tpl, err := s.builder().Verb(verb).Target().Verb(noun).Arg(member).Template()
	if err != nil {
		return nil, err
	}
	return s.dispatchTemplate(tpl, t)
}

func (s *Service) solutionMember(ctx context.Context, force bool, verb, project, title string) (ports.Job, error) {
	t, err := s.resolveTarget(ctx, target.SolutionOnly, force)
	if err != nil {
		return nil, err
	}
	if project, err = s.pickMember(ctx, project, title); err != nil {
		return nil, err
	}
	tpl, err := s.builder().Verb("sln").Target().Verb(verb).Arg(project).Template()
	if err != nil {
		return nil, err
	}
	return s.dispatchTemplate(tpl, t)
}

func (s *Service) pickMember(ctx context.Context, value, title string) (string, error) {
	if v := strings.TrimSpace(value); v != "" {
		return v, nil
	}
	if s.locator == nil {
		return "", errLocatorNotConfigured
	}
	picked, err := s.locator.Locate(ctx, target.ProjectOnly, title)
	if err != nil {
		return "", fmt.Errorf("select project: %w", err)
	}
	return picked, nil
}
