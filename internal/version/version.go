// Where: internal/version/version.go
// What: Version information retrieval.
// Why: Report the release tag or VCS revision the binary was built from.
package version

import (
	"fmt"
	"runtime/debug"
	"strings"
)

// Version is set at link time with -ldflags "-X <module>/internal/version.Version=v1.2.3".
var Version string

var readBuildInfo = debug.ReadBuildInfo

// Info describes the running binary.
type Info struct {
	Version   string
	Revision  string
	Modified  bool
	GoVersion string
}

// Read collects version data from the linker flag and the embedded build info.
func Read() Info {
	info := Info{Version: Version}
	bi, ok := readBuildInfo()
	if !ok {
		return info
	}
	info.GoVersion = bi.GoVersion
	if info.Version == "" && bi.Main.Version != "" && bi.Main.Version != "(devel)" {
		info.Version = bi.Main.Version
	}
	for _, setting := range bi.Settings {
		switch setting.Key {
		case "vcs.revision":
			info.Revision = setting.Value
			if len(info.Revision) > 7 {
				info.Revision = info.Revision[:7]
			}
		case "vcs.modified":
			info.Modified = setting.Value == "true"
		}
	}
	return info
}

// String renders "<version> (<revision>[, dirty])", falling back to "dev".
func (i Info) String() string {
	name := i.Version
	if name == "" {
		name = "dev"
	}
	var details []string
	if i.Revision != "" {
		details = append(details, i.Revision)
	}
	if i.Modified {
		details = append(details, "dirty")
	}
	if len(details) == 0 {
		return name
	}
	return fmt.Sprintf("%s (%s)", name, strings.Join(details, ", "))
}

// GetVersion returns the printable version of the running binary.
func GetVersion() string {
	return Read().String()
}
