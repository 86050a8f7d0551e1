// Where: internal/command/output.go
// What: Output helpers for command adapters.
// Why: Centralize UserInterface construction and emoji detection.
package command

import (
	"io"
	"os"

	"github.com/sebasmonia/dotnet.el/internal/infra/interaction"
	"github.com/sebasmonia/dotnet.el/internal/infra/ui"
)

func newUI(out io.Writer, emoji bool) ui.UserInterface {
	return ui.NewConsoleUI(out, emoji)
}

func emojiEnabled(out io.Writer, noEmoji bool) bool {
	if noEmoji {
		return false
	}
	f, ok := out.(*os.File)
	return ok && interaction.IsTerminal(f)
}
