// Where: internal/ports/locator.go
// What: Project/solution locator port.
// Why: Decouple target resolution from filesystem scanning and prompting.
package ports

import (
	"context"

	"github.com/sebasmonia/dotnet.el/internal/domain/target"
)

// Locator finds candidate files allowed by a constraint and asks the user to
// pick one. It returns an absolute path.
type Locator interface {
	Locate(ctx context.Context, c target.Constraint, title string) (string, error)
}
