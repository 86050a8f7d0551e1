// Where: internal/meta/meta.go
// What: CLI-local metadata constants.
// Why: Keep names, directories and env prefixes in one place.
package meta

const (
	// Project Identity
	AppName   = "dotnet-el"
	EnvPrefix = "DOTNET_EL"

	// Directory Layout
	HomeDir      = ".dotnet-el"
	SettingsFile = "settings.yaml"
	EnvFile      = ".env"
)

// Env returns the prefixed environment variable name for key.
func Env(key string) string {
	return EnvPrefix + "_" + key
}
