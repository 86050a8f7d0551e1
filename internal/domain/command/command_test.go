package command

import (
	"errors"
	"strings"
	"testing"

	"mvdan.cc/sh/v3/expand"
	"mvdan.cc/sh/v3/syntax"
)

// shellFields parses line the way a POSIX shell would and returns its words.
func shellFields(t *testing.T, line string) []string {
	t.Helper()
	file, err := syntax.NewParser().Parse(strings.NewReader(line), "")
	if err != nil {
		t.Fatalf("parse %q: %v", line, err)
	}
	if len(file.Stmts) != 1 {
		t.Fatalf("parse %q: got %d statements, want 1", line, len(file.Stmts))
	}
	call, ok := file.Stmts[0].Cmd.(*syntax.CallExpr)
	if !ok {
		t.Fatalf("parse %q: not a simple command", line)
	}
	fields, err := expand.Fields(&expand.Config{Env: expand.ListEnviron()}, call.Args...)
	if err != nil {
		t.Fatalf("expand %q: %v", line, err)
	}
	return fields
}

func TestQuoteRoundTripsThroughShell(t *testing.T) {
	paths := []string{
		"/r/Lib.csproj",
		"/home/me/My Projects/App.csproj",
		"/tmp/a;rm -rf ~/x.sln",
		"/tmp/$(whoami)/$HOME.csproj",
		"/tmp/it's \"quoted\".csproj",
		"/tmp/back`tick`\\slash.sln",
		"/tmp/glob*?[x].csproj",
		"",
	}
	tpl, err := New("dotnet").Verb("build").Verbosity("normal").Target().Template()
	if err != nil {
		t.Fatalf("Template() error = %v", err)
	}
	for _, p := range paths {
		cmd := Command{Name: "dotnet", Tokens: []Token{{Value: "build", Literal: true}, {Value: p}}}
		if p != "" {
			cmd, err = tpl.Expand(p)
			if err != nil {
				t.Fatalf("Expand(%q) error = %v", p, err)
			}
		}
		fields := shellFields(t, cmd.String())
		last := fields[len(fields)-1]
		if last != p {
			t.Fatalf("round trip of %q produced %q (line %s)", p, last, cmd.String())
		}
		if want := len(cmd.Tokens) + 1; len(fields) != want {
			t.Fatalf("round trip of %q produced %d fields, want %d: %#v", p, len(fields), want, fields)
		}
	}
}

func TestScenarioCleanRendering(t *testing.T) {
	tpl, err := New("").Verb("clean").Verbosity("normal").Target().Template()
	if err != nil {
		t.Fatalf("Template() error = %v", err)
	}
	cmd, err := tpl.Expand("/r/Lib.csproj")
	if err != nil {
		t.Fatalf("Expand() error = %v", err)
	}
	if got, want := cmd.String(), "dotnet clean -v normal '/r/Lib.csproj'"; got != want {
		t.Fatalf("String() = %q, want %q", got, want)
	}
	if cmd.Dir != "/r" {
		t.Fatalf("Dir = %q, want %q", cmd.Dir, "/r")
	}
}

func TestBuildRoundTrip(t *testing.T) {
	tpl, err := ParseTemplate("dotnet", []string{"build", Slot})
	if err != nil {
		t.Fatalf("ParseTemplate() error = %v", err)
	}
	cmd, err := tpl.Expand("/repo/App.csproj")
	if err != nil {
		t.Fatalf("Expand() error = %v", err)
	}
	if cmd.Dir != "/repo" {
		t.Fatalf("Dir = %q, want /repo", cmd.Dir)
	}
	argv := cmd.Argv()
	if len(argv) != 2 || argv[0] != "build" || argv[1] != "/repo/App.csproj" {
		t.Fatalf("Argv() = %#v", argv)
	}
	if got := tpl.String(); got != "dotnet 'build' %s" {
		t.Fatalf("template String() = %q", got)
	}
}

func TestTemplateSlotCount(t *testing.T) {
	if _, err := New("dotnet").Verb("build").Template(); !errors.Is(err, ErrTemplateSlot) {
		t.Fatalf("expected ErrTemplateSlot for zero slots, got %v", err)
	}
	if _, err := New("dotnet").Target().Target().Template(); !errors.Is(err, ErrTemplateSlot) {
		t.Fatalf("expected ErrTemplateSlot for two slots, got %v", err)
	}
	if _, err := ParseTemplate("dotnet", []string{"watch", "run"}); !errors.Is(err, ErrTemplateSlot) {
		t.Fatalf("expected ErrTemplateSlot from ParseTemplate, got %v", err)
	}
}

func TestTemplateExpandRequiresPath(t *testing.T) {
	tpl, err := New("dotnet").Verb("test").Target().Template()
	if err != nil {
		t.Fatalf("Template() error = %v", err)
	}
	if _, err := tpl.Expand("  "); !errors.Is(err, ErrEmptyTarget) {
		t.Fatalf("expected ErrEmptyTarget, got %v", err)
	}
}

func TestTemplateExpandDoesNotMutateTemplate(t *testing.T) {
	tpl, err := New("dotnet").Verb("add").Target().Verb("package").Arg("Newtonsoft.Json").Template()
	if err != nil {
		t.Fatalf("Template() error = %v", err)
	}
	first, _ := tpl.Expand("/a/A.csproj")
	second, _ := tpl.Expand("/b/B.csproj")
	if first.Argv()[1] != "/a/A.csproj" || second.Argv()[1] != "/b/B.csproj" {
		t.Fatalf("expansions leaked: %v / %v", first.Argv(), second.Argv())
	}
	if got := second.String(); got != "dotnet add '/b/B.csproj' package 'Newtonsoft.Json'" {
		t.Fatalf("String() = %q", got)
	}
}

func TestPlainQuotesEveryArgument(t *testing.T) {
	cmd, err := New("dotnet").Verb("new").Arg("console").Option("-o", "/w/My App").Option("-lang", "C#").Plain("/w")
	if err != nil {
		t.Fatalf("Plain() error = %v", err)
	}
	want := "dotnet new 'console' -o '/w/My App' -lang 'C#'"
	if cmd.String() != want {
		t.Fatalf("String() = %q, want %q", cmd.String(), want)
	}
	if cmd.Dir != "/w" {
		t.Fatalf("Dir = %q", cmd.Dir)
	}
	fields := shellFields(t, cmd.String())
	if strings.Join(fields[1:], "|") != strings.Join(cmd.Argv(), "|") {
		t.Fatalf("shell fields %#v != argv %#v", fields, cmd.Argv())
	}
}

func TestPlainRejectsSlot(t *testing.T) {
	if _, err := New("dotnet").Target().Plain("/w"); !errors.Is(err, ErrPlainSlot) {
		t.Fatalf("expected ErrPlainSlot, got %v", err)
	}
}

func TestBuilderSkipsEmptyOptionalValues(t *testing.T) {
	cmd, err := New("dotnet").Verb("restore").Verbosity("").Option("--version", " ").Plain("/w")
	if err != nil {
		t.Fatalf("Plain() error = %v", err)
	}
	if cmd.String() != "dotnet restore" {
		t.Fatalf("String() = %q", cmd.String())
	}
}

func TestProgramNameQuotedWhenNeeded(t *testing.T) {
	cmd := Command{Name: "/opt/dot net/dotnet", Tokens: []Token{{Value: "build", Literal: true}}}
	if got := cmd.String(); got != "'/opt/dot net/dotnet' build" {
		t.Fatalf("String() = %q", got)
	}
	if got := (Command{}).String(); got != "dotnet" {
		t.Fatalf("empty command String() = %q", got)
	}
}

func TestCanonicalLanguage(t *testing.T) {
	cases := map[string]string{"c#": "C#", " F# ": "F#", "vb": "VB"}
	for in, want := range cases {
		got, ok := CanonicalLanguage(in)
		if !ok || got != want {
			t.Errorf("CanonicalLanguage(%q) = %q, %v; want %q", in, got, ok, want)
		}
	}
	if _, ok := CanonicalLanguage("Rust"); ok {
		t.Error("CanonicalLanguage(Rust) should not match")
	}
}

func TestVerbosityMustBeOneSafeWord(t *testing.T) {
	for _, level := range []string{"normal detailed", "q;rm -rf /", "$(id)", "'quiet'"} {
		if _, err := New("dotnet").Verb("build").Verbosity(level).Target().Template(); !errors.Is(err, ErrVerbosity) {
			t.Errorf("Template() with verbosity %q: error = %v, want ErrVerbosity", level, err)
		}
		if _, err := New("dotnet").Verb("new", "sln").Verbosity(level).Plain("/w"); !errors.Is(err, ErrVerbosity) {
			t.Errorf("Plain() with verbosity %q: error = %v, want ErrVerbosity", level, err)
		}
	}

	tpl, err := New("dotnet").Verb("test").Verbosity("diag").Target().Template()
	if err != nil {
		t.Fatalf("Template() error = %v", err)
	}
	cmd, err := tpl.Expand("/r/My App/App.csproj")
	if err != nil {
		t.Fatalf("Expand() error = %v", err)
	}
	if got := shellFields(t, cmd.String()); strings.Join(got, "|") != strings.Join(append([]string{"dotnet"}, cmd.Argv()...), "|") {
		t.Fatalf("rendered line re-parses to %#v, argv %#v", got, cmd.Argv())
	}
}
