// Where: internal/ports/runner.go
// What: External process runner port.
// Why: Let the dispatcher hand off commands without owning process lifecycle.
package ports

import "github.com/sebasmonia/dotnet.el/internal/domain/command"

// Job is a dispatched process. Wait blocks until it exits; callers that do not
// care about completion may drop the handle.
type Job interface {
	Wait() error
}

// Runner starts a command asynchronously and streams its output to the named
// destination. Start must not wait for the process to exit.
type Runner interface {
	Start(cmd command.Command, destination string) (Job, error)
}
