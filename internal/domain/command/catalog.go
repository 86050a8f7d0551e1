// Where: internal/domain/command/catalog.go
// What: Known `dotnet new` template short names and languages.
// Why: Offer prompt choices without shelling out to `dotnet new --list`.
package command

import "strings"

// Languages accepted by `dotnet new -lang`.
var Languages = []string{"C#", "F#", "VB"}

// ProjectTemplates are the short names shipped with the SDK that are offered
// when `new` is invoked without a template.
var ProjectTemplates = []string{
	"console",
	"classlib",
	"wpf",
	"wpflib",
	"winforms",
	"worker",
	"mstest",
	"nunit",
	"xunit",
	"razorclasslib",
	"web",
	"mvc",
	"webapp",
	"angular",
	"react",
	"blazorserver",
	"blazorwasm",
	"webapi",
	"grpc",
	"globaljson",
	"nugetconfig",
	"gitignore",
	"editorconfig",
}

// CanonicalLanguage returns the catalog spelling of lang, matched case-insensitively.
func CanonicalLanguage(lang string) (string, bool) {
	for _, known := range Languages {
		if strings.EqualFold(known, strings.TrimSpace(lang)) {
			return known, true
		}
	}
	return "", false
}
