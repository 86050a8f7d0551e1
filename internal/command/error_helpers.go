// Where: internal/command/error_helpers.go
// What: Shared CLI error output.
// Why: Keep failure messages and exit codes consistent across commands.
package command

import (
	"errors"
	"fmt"
	"io"

	"github.com/sebasmonia/dotnet.el/internal/infra/interaction"
	"github.com/sebasmonia/dotnet.el/internal/infra/locator"
)

// exitWithError prints an error message to the output writer and returns
// exit code 1 for CLI error handling.
func exitWithError(out io.Writer, err error) int {
	newUI(out, false).Info(fmt.Sprintf("✗ %v", err))
	return 1
}

// isCancelled reports whether err comes from the user dismissing a prompt.
func isCancelled(err error) bool {
	return errors.Is(err, locator.ErrSelectionCancelled) || errors.Is(err, interaction.ErrAborted)
}
