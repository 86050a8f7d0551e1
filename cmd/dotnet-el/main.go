// Where: cmd/dotnet-el/main.go
// What: Process entrypoint.
// Why: Wire dependencies and hand control to the command package.
package main

import (
	"fmt"
	"os"

	"github.com/sebasmonia/dotnet.el/internal/command"
)

func main() {
	deps, err := buildDependencies()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	os.Exit(command.Run(os.Args[1:], deps))
}
